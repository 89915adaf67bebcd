package pricing

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is the single error kind of the engine. Every validation
// failure wraps it; no partial result is ever returned alongside it.
var ErrInvalidInput = errors.New("pricing: invalid input")

// InputError names the offending field of a rejected calculation.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}

// errTooLarge reports a cost that overflows on its way to a price.
var errTooLarge = invalid("cost", "is too large to price")

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a number")
	}
	return nil
}

func checkNonNegative(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return invalid(field, "must be greater than or equal to 0")
	}
	return nil
}

func checkPositive(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return invalid(field, "must be greater than 0")
	}
	return nil
}

// checkTargetGP accepts [0, 100). 100% would divide by zero and anything above
// gives a negative price.
func checkTargetGP(field string, gp float64) error {
	if err := checkFinite(field, gp); err != nil {
		return err
	}
	if gp < 0 || gp >= 100 {
		return invalid(field, "must be between 0 and 100 (exclusive)")
	}
	return nil
}

// checkForecast rejects a forecast container cost that an increase pushed
// below zero or that overflowed.
func checkForecast(cost float64) error {
	if !isFinite(cost) {
		return errTooLarge
	}
	if cost < 0 {
		return invalid("increase_value", "must not reduce the cost below 0")
	}
	return nil
}
