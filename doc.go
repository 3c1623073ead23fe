// SPDX-License-Identifier: MIT

// Package qmkp assigns frequency channels to radio users with a greedy
// heuristic for the Quadratic Multiple Knapsack Problem with Heterogeneous
// Profits (QMKP-HP).
//
// 🚀 What is qmkp?
//
//	A small, deterministic toolkit that brings together:
//		• Scoring: total profit of any binary item→knapsack assignment
//		• Densities: marginal value of adding an item to a knapsack
//		• Construct: the greedy constructive procedure (explicit tie rules)
//		• Instances: seeded synthetic generator + YAML instance files
//		• Baselines: random and round-robin assignments
//		• Experiments: repeated trials, statistics, text/YAML/JSON reports
//
// Each user k owns a symmetric profit matrix P_k. P_k[i,i] is the standalone
// profit of channel i, P_k[i,j] the (possibly negative) increment for holding
// i and j together:
//
//	profit_k = Σ_i a[i,k]·P_k[i,i] + Σ_{i<j} a[i,k]·a[j,k]·P_k[i,j]
//
// Everything is organized under these subpackages:
//
//	knapsack/   Profits, TotalProfit, Densities, Construct (the engine)
//	instance/   Config, Generate, Spec files, deterministic RNG streams
//	baseline/   Random and RoundRobin reference assignments
//	experiment/ Runner, Report, Prometheus metrics, OpenTelemetry spans
//	cmd/qmkp/   the qmkp CLI (run, solve, generate)
//
// Quick start:
//
//	go install github.com/katalvlaran/qmkp/cmd/qmkp@latest
//	qmkp run -u 3 -f 10 -n 100
package qmkp
