// SPDX-License-Identifier: MIT

package instance

import "errors"

var (
	// ErrInvalidConfig is returned by Config.Validate and Generate for a
	// generator configuration that cannot produce a valid instance.
	ErrInvalidConfig = errors.New("instance: invalid generator config")

	// ErrInvalidSpec is returned when an explicit instance description is
	// empty or inconsistent.
	ErrInvalidSpec = errors.New("instance: invalid instance spec")
)
