// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger maps the -v count onto a level (0 warn, 1 info, 2+ debug) and
// writes console output to stderr, plus JSON lines to logFile when set.
func newLogger(verbosity int, logFile string, stderr io.Writer) (*zap.Logger, func() error, error) {
	level := zapcore.WarnLevel - zapcore.Level(verbosity)
	if level < zapcore.DebugLevel {
		level = zapcore.DebugLevel
	}

	console := zap.NewDevelopmentEncoderConfig()
	console.EncodeLevel = zapcore.CapitalLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(console), zapcore.AddSync(stderr), level),
	}
	closeFn := func() error { return nil }

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(f),
			level,
		))
		closeFn = f.Close
	}

	return zap.New(zapcore.NewTee(cores...)), closeFn, nil
}
