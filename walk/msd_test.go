// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package walk

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stochsim/stochsim/param"
	"github.com/stochsim/stochsim/simrand"
)

func TestFitThroughOrigin(t *testing.T) {
	test := func(xs, ys []float64, want float64) {
		t.Helper()
		got, err := FitThroughOrigin(xs, ys)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-12, "fit of %v, %v", xs, ys)
	}
	test([]float64{1, 2, 3}, []float64{2, 4, 6}, 2)
	test([]float64{1000, 2000}, []float64{1900, 4100}, (1000*1900+2000*4100)/(1000*1000+2000*2000.0))
	test([]float64{0, 5}, []float64{7, 5}, 1)

	_, err := FitThroughOrigin([]float64{1}, []float64{1, 2})
	assert.Error(t, err)
	_, err = FitThroughOrigin([]float64{0, 0}, []float64{1, 2})
	assert.True(t, errors.Is(err, param.ErrInvalid))
}

func TestMSDSlope(t *testing.T) {
	const walks = 2000
	for _, kind := range []Kind{Unit, Gaussian} {
		curve, err := MSDvsSteps(simrand.New(42), DefaultSteps, walks, kind)
		require.NoError(t, err)
		require.Equal(t, DefaultSteps, curve.Steps)
		require.Len(t, curve.MSD, len(DefaultSteps))
		assert.Equal(t, walks, curve.Walks)
		tol := SlopeTolerance(DefaultSteps, walks)
		assert.InDelta(t, ExpectedSlope2D, curve.Slope, tol, "%v slope", kind)

		fitted := curve.Fitted()
		for i, s := range curve.Steps {
			assert.Equal(t, curve.Slope*float64(s), fitted[i])
		}
	}
}

func TestMSDSlopeLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("large batch")
	}
	curve, err := MSDvsSteps(simrand.New(2024), DefaultSteps, 100000, Unit)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, curve.Slope, 0.05)
}

func TestSlopeTolerance(t *testing.T) {
	// Quadrupling the batch halves the tolerance.
	a := SlopeTolerance(DefaultSteps, 1000)
	b := SlopeTolerance(DefaultSteps, 4000)
	assert.InDelta(t, a/2, b, 1e-12)
	// The default step set gives 2·sqrt(354)/30 ≈ 1.25 per sqrt(walk).
	assert.InDelta(t, 2*math.Sqrt(354)/30, SlopeStdErr(DefaultSteps, 1), 1e-12)
	assert.True(t, math.IsNaN(SlopeStdErr(nil, 10)))
}

func TestMSDPreconditions(t *testing.T) {
	test := func(steps []int, walks int) {
		t.Helper()
		_, err := MSDvsSteps(simrand.New(1), steps, walks, Unit)
		require.Error(t, err)
		assert.True(t, errors.Is(err, param.ErrInvalid), "got %v", err)
	}
	test(nil, 10)
	test([]int{10, 0}, 10)
	test(DefaultSteps, 0)
}
