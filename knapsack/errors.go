// SPDX-License-Identifier: MIT

// Package knapsack: sentinel error set.
// Every exported function returns one of these sentinels, wrapped with the
// operation name and the offending coordinates. Match them via errors.Is.
// No function panics on user input.

package knapsack

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAssignment is returned when an assignment (or starting
	// assignment) holds a value other than 0/1, is nil, or is not N×K.
	ErrInvalidAssignment = errors.New("knapsack: invalid assignment")

	// ErrShapeMismatch indicates inconsistent dimensions between capacities,
	// weights and profits (e.g. len(capacities) != number of profit slices).
	ErrShapeMismatch = errors.New("knapsack: shape mismatch")

	// ErrAsymmetry signals that a raw profit slice handed to NewProfits is not
	// symmetric within symTol.
	ErrAsymmetry = errors.New("knapsack: profit matrix is not symmetric")

	// ErrNonFinite signals a NaN or ±Inf profit entry.
	ErrNonFinite = errors.New("knapsack: NaN or Inf profit")

	// ErrInvalidWeight is returned for a weight that is not finite and > 0.
	ErrInvalidWeight = errors.New("knapsack: weight must be finite and > 0")

	// ErrInvalidCapacity is returned for a capacity that is not finite and >= 0.
	ErrInvalidCapacity = errors.New("knapsack: capacity must be finite and >= 0")

	// ErrInfeasibleStart is returned when a starting assignment already loads a
	// knapsack beyond its capacity.
	ErrInfeasibleStart = errors.New("knapsack: starting assignment exceeds capacity")

	// ErrUnsupportedTieBreak is returned for an unknown Options.TieBreak value.
	ErrUnsupportedTieBreak = errors.New("knapsack: unsupported tie-break rule")
)

// opErrorf wraps a sentinel with the public operation name and a short detail,
// e.g. "Construct: start(0,1)=0.5: knapsack: invalid assignment".
func opErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), err)
}
