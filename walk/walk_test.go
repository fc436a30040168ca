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

func TestFinalsShape(t *testing.T) {
	test := func(numSteps, numWalks int, kind Kind) {
		t.Helper()
		d, err := Finals(simrand.New(1), numSteps, numWalks, kind)
		require.NoError(t, err)
		require.Equal(t, numWalks, d.Len())
		require.Len(t, d.Y, numWalks)
		for i := range d.X {
			if math.IsNaN(d.X[i]) || math.IsInf(d.X[i], 0) || math.IsNaN(d.Y[i]) || math.IsInf(d.Y[i], 0) {
				t.Fatalf("walk %d has non-finite endpoint (%v, %v)", i, d.X[i], d.Y[i])
			}
			if kind == Unit {
				// A ±1 walk of n steps ends at the parity of n.
				for _, v := range []float64{d.X[i], d.Y[i]} {
					if math.Abs(v) > float64(numSteps) || int(math.Abs(v))%2 != numSteps%2 || v != math.Trunc(v) {
						t.Fatalf("walk %d: endpoint coordinate %v impossible after %d unit steps", i, v, numSteps)
					}
				}
			}
		}
	}
	test(1, 1, Unit)
	test(1, 50, Unit)
	test(1000, 100, Unit)
	test(77, 33, Unit)
	test(10, 20, Gaussian)
}

func TestFinalsMoments(t *testing.T) {
	for _, kind := range []Kind{Unit, Gaussian} {
		const steps, walks = 400, 20000
		d, err := Finals(simrand.New(3), steps, walks, kind)
		require.NoError(t, err)

		// Each axis has mean 0 and variance steps.
		var sx, sxx float64
		for _, x := range d.X {
			sx += x
			sxx += x * x
		}
		mean := sx / walks
		assert.InDelta(t, 0, mean, 5*math.Sqrt(steps/float64(walks)), "%v mean", kind)
		assert.InDelta(t, steps, sxx/walks, 5*steps*math.Sqrt(2.0/walks), "%v variance", kind)

		// MSD is 2·steps.
		assert.InDelta(t, 2*steps, MeanSquare(d), 5*2*steps/math.Sqrt(walks), "%v MSD", kind)
	}
}

func TestFinalsPreconditions(t *testing.T) {
	test := func(numSteps, numWalks int, kind Kind) {
		t.Helper()
		_, err := Finals(simrand.New(1), numSteps, numWalks, kind)
		require.Error(t, err)
		assert.True(t, errors.Is(err, param.ErrInvalid), "got %v", err)
	}
	test(0, 10, Unit)
	test(10, 0, Unit)
	test(-1, -1, Unit)
	test(10, 10, Kind(9))
}

func TestReproducible(t *testing.T) {
	a, err := Finals(simrand.New(42), 100, 50, Unit)
	require.NoError(t, err)
	b, err := Finals(simrand.New(42), 100, 50, Unit)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, MeanSquare(a), MeanSquare(b))
}

func TestDerived(t *testing.T) {
	d := Displacements{X: []float64{3, 0, -1}, Y: []float64{4, 0, 1}}
	assert.Equal(t, []float64{25, 0, 2}, SquaredDisplacements(d))
	mags := Magnitudes(d)
	assert.Equal(t, []float64{5, 0, math.Sqrt2}, mags)
	assert.InDelta(t, 9, MeanSquare(d), 1e-12)
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Unit, Gaussian} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("levy")
	assert.True(t, errors.Is(err, param.ErrInvalid))
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
