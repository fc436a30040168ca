// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package param checks the preconditions of sampler and estimator
// arguments.
//
// Every violation is an *Error that wraps ErrInvalid, so callers can
// test for any precondition failure with errors.Is(err, ErrInvalid).
// Nothing is ever clamped or defaulted.
package param

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ErrInvalid is wrapped by every precondition violation.
var ErrInvalid = errors.New("invalid parameter")

// Error describes a single argument that violates its precondition.
type Error struct {
	Name  string      // Argument name
	Value interface{} // Offending value
	Want  string      // Description of the valid range
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s = %v: must be %s", e.Name, e.Value, e.Want)
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

// Positive checks that v > 0.
func Positive(name string, v int) error {
	if v <= 0 {
		return &Error{name, v, "positive"}
	}
	return nil
}

// NonNegative checks that v >= 0.
func NonNegative(name string, v int) error {
	if v < 0 {
		return &Error{name, v, "non-negative"}
	}
	return nil
}

// PositiveFloat checks that v is finite and > 0.
func PositiveFloat(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return &Error{name, v, "positive and finite"}
	}
	return nil
}

// Probability checks that p is in [0, 1]. NaN is rejected.
func Probability(name string, p float64) error {
	if !(p >= 0 && p <= 1) {
		return &Error{name, p, "in [0, 1]"}
	}
	return nil
}

// NonZeroProbability checks that p is in (0, 1].
func NonZeroProbability(name string, p float64) error {
	if !(p > 0 && p <= 1) {
		return &Error{name, p, "in (0, 1]"}
	}
	return nil
}

// Check combines the non-nil errors in errs. It returns nil if there
// are none, the error itself if there is exactly one, and otherwise a
// *multierror.Error listing all of them.
func Check(errs ...error) error {
	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result == nil {
		return nil
	}
	if len(result.Errors) == 1 {
		return result.Errors[0]
	}
	result.ErrorFormat = formatList
	return result
}

func formatList(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
