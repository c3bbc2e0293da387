// Package procgen holds the procedural point-cloud generators: galaxy, planet
// surfaces and cloud layers, the solar corona, rings, the star field, and
// orbit paths.
//
// Every generator is a pure function of its parameters and an entropy.Source.
// Parameters are validated up front; nothing is silently clamped.
package procgen

import (
	"errors"
	"fmt"
)

// MaxPoints caps the number of points a single generator call may produce.
const MaxPoints = 1 << 26

var (
	// ErrInvalidConfig is wrapped by every parameter validation failure.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrTooLarge is returned when a requested point count exceeds MaxPoints.
	ErrTooLarge = errors.New("point count exceeds limit")
)

// ConfigError describes one invalid generator parameter.
type ConfigError struct {
	Generator string
	Field     string
	Value     any
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s = %v: %s", e.Generator, e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func invalid(generator, field string, value any, reason string) error {
	return &ConfigError{Generator: generator, Field: field, Value: value, Reason: reason}
}

// checkCount validates a point budget against a minimum and MaxPoints.
func checkCount(generator, field string, n, min int) error {
	if n < min {
		return invalid(generator, field, n, fmt.Sprintf("must be at least %d", min))
	}
	if n > MaxPoints {
		return fmt.Errorf("%s: %s = %d (limit %d): %w", generator, field, n, MaxPoints, ErrTooLarge)
	}
	return nil
}

func checkPositive(generator, field string, v float64) error {
	if !(v > 0) {
		return invalid(generator, field, v, "must be positive")
	}
	return nil
}

func checkNonNegative(generator, field string, v float64) error {
	if !(v >= 0) {
		return invalid(generator, field, v, "must not be negative")
	}
	return nil
}

// checkOpacity requires an opacity in [0, 1].
func checkOpacity(generator string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return invalid(generator, "opacity", v, "must be within [0, 1]")
	}
	return nil
}
