// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package param

import (
	"errors"
	"math"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecks(t *testing.T) {
	test := func(err error, wantErr bool) {
		t.Helper()
		if !wantErr {
			assert.NoError(t, err)
			return
		}
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalid), "%v does not wrap ErrInvalid", err)
	}
	test(Positive("n", 1), false)
	test(Positive("n", 0), true)
	test(Positive("n", -3), true)
	test(NonNegative("n", 0), false)
	test(NonNegative("n", -1), true)
	test(PositiveFloat("x", 0.5), false)
	test(PositiveFloat("x", 0), true)
	test(PositiveFloat("x", math.NaN()), true)
	test(PositiveFloat("x", math.Inf(1)), true)
	test(Probability("p", 0), false)
	test(Probability("p", 1), false)
	test(Probability("p", 1.01), true)
	test(Probability("p", -0.01), true)
	test(Probability("p", math.NaN()), true)
	test(NonZeroProbability("p", 1), false)
	test(NonZeroProbability("p", 0), true)
}

func TestErrorMessage(t *testing.T) {
	err := Positive("numSteps", 0)
	assert.EqualError(t, err, "numSteps = 0: must be positive")

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "numSteps", perr.Name)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check())
	assert.NoError(t, Check(nil, nil))

	one := Positive("a", 0)
	assert.Same(t, one, Check(nil, one, nil))

	err := Check(Positive("a", 0), nil, Probability("p", 2))
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.EqualError(t, err, "a = 0: must be positive; p = 2: must be in [0, 1]")
}
