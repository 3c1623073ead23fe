// SPDX-License-Identifier: MIT

// Package knapsack solves the Quadratic Multiple Knapsack Problem with
// Heterogeneous Profits (QMKP-HP) with a greedy constructive procedure.
//
// 🚀 What is QMKP-HP?
//
//	N items (frequency channels) are placed into K knapsacks (radio users).
//	Every knapsack k owns its own symmetric profit matrix P_k:
//	  • P_k[i,i] - standalone profit of item i inside knapsack k
//	  • P_k[i,j] - pairwise increment when i and j share knapsack k
//	               (negative values model interference)
//	Each knapsack holds at most capacity[k] total item weight. Items are
//	NOT exclusive across knapsacks; only per-knapsack capacity is enforced.
//
// ✨ Key features:
//   - TotalProfit: score any binary N×K assignment (constructive, random, …)
//   - Densities / ReducedDensities: marginal profit per unit weight
//   - Construct: greedy rounds committing the best feasible (item, knapsack)
//   - explicit, documented tie rule (TieBreak) and an OnStep hook
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/qmkp/knapsack"
//
//	profits, _ := knapsack.NewProfits([][][]float64{
//	  {{5, 1}, {1, 3}},
//	})
//	a, err := knapsack.Construct([]float64{2}, []float64{1, 1}, profits, nil)
//	total, _ := knapsack.TotalProfit(profits, a, knapsack.Sum)
//
// Performance:
//
//   - TotalProfit: O(K·m²) with m assigned items per knapsack
//   - Densities:   O(K·N·m)
//   - Construct:   O(R·N·K) for R ≤ N committed rounds; densities are
//     maintained incrementally in O(N) per round
//
// Matrices are gonum types: profits are mat.Symmetric, assignments and density
// tables are *mat.Dense with items on rows and knapsacks on columns.
package knapsack
