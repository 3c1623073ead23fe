// SPDX-License-Identifier: MIT

// Package instance produces QMKP-HP problem instances for the knapsack engine.
//
// Two sources are supported:
//   - Generate: a synthetic, seed-deterministic instance (Config). Users get
//     positive standalone channel profits and correlated pairwise terms whose
//     sign models interference (negative) or diversity gain (positive).
//   - Spec.Build: an explicit instance read from YAML or a config file.
//
// The package also owns the random-stream policy shared by the experiment
// driver and the baselines (NewRNG, DeriveRNG, Perm).
package instance
