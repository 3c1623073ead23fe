// SPDX-License-Identifier: MIT

package experiment_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/qmkp/experiment"
)

// fixedReport is a hand-built report with stable values for rendering tests.
func fixedReport() *experiment.Report {
	db := 10.791812460476248
	zero := 0.0
	rounds := experiment.Summary{Count: 2, Min: 6, Max: 6, Mean: 6}

	return &experiment.Report{
		RunID:      "00000000-0000-0000-0000-000000000000",
		Users:      3,
		Channels:   10,
		Trials:     2,
		Seed:       7,
		Combine:    "mean",
		TieBreak:   "lowest-index",
		Generation: experiment.Summary{Count: 2, Min: 0.001, Max: 0.002, Mean: 0.0015},
		Strategies: []experiment.StrategyReport{
			{
				Name:     "constructive",
				Profit:   experiment.Summary{Count: 2, Min: 10, Max: 14, Mean: 12, Variance: 8},
				Seconds:  experiment.Summary{Count: 2, Mean: 0.000025},
				ProfitDB: &db,
				Rounds:   &rounds,
			},
			{
				Name:    "random",
				Profit:  experiment.Summary{Count: 2, Min: -1, Max: 0, Mean: -0.5, Variance: 0.5},
				Seconds: experiment.Summary{Count: 2, Mean: 0.000002},
			},
			{
				Name:     "round-robin",
				Profit:   experiment.Summary{Count: 2, Min: 1, Max: 1, Mean: 1},
				Seconds:  experiment.Summary{Count: 2, Mean: 0.000001},
				ProfitDB: &zero,
			},
		},
	}
}

// TestReport_TextGolden pins the tab-aligned text layout.
func TestReport_TextGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fixedReport().Render(&buf, experiment.FormatText))

	g := goldie.New(t, goldie.WithFixtureDir("testdata"))
	g.Assert(t, "report_text", buf.Bytes())
}

// TestReport_YAML decodes the YAML rendering back into a Report.
func TestReport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fixedReport().Render(&buf, experiment.FormatYAML))
	assert.Contains(t, buf.String(), "run_id: 00000000-0000-0000-0000-000000000000")
	assert.Contains(t, buf.String(), "profit_db: null", "non-positive mean has no dB value")
	assert.NotContains(t, buf.String(), "records:", "records omitted when empty")

	var back experiment.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, fixedReport(), &back)
}

// TestReport_JSON decodes the JSON rendering back into a Report.
func TestReport_JSON(t *testing.T) {
	r := fixedReport()
	r.Records = []experiment.TrialRecord{{Trial: 0, Profits: map[string]float64{"random": -1}}}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, experiment.FormatJSON))

	var back experiment.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, r, &back)
}

// TestParseFormat accepts the three formats and rejects others.
func TestParseFormat(t *testing.T) {
	for in, want := range map[string]experiment.Format{
		"":     experiment.FormatText,
		"text": experiment.FormatText,
		"yaml": experiment.FormatYAML,
		"json": experiment.FormatJSON,
	} {
		got, err := experiment.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := experiment.ParseFormat("csv")
	assert.ErrorIs(t, err, experiment.ErrInvalidConfig)
	assert.ErrorIs(t, fixedReport().Render(&bytes.Buffer{}, experiment.Format("xml")), experiment.ErrInvalidConfig)
}
