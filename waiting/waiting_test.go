// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package waiting

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stochsim/stochsim/param"
	"github.com/stochsim/stochsim/simrand"
)

func TestTimes(t *testing.T) {
	test := func(seq []int, wantIdx, want []int) {
		t.Helper()
		assert.Equal(t, wantIdx, SuccessIndices(seq), "indices of %v", seq)
		got := Times(seq)
		require.NotNil(t, got)
		assert.Equal(t, want, got, "waiting times of %v", seq)
	}
	test([]int{0, 1, 0, 0, 0, 1, 0, 1}, []int{1, 5, 7}, []int{3, 1})
	test([]int{1, 1, 1}, []int{0, 1, 2}, []int{0, 0})
	test([]int{1, 0, 0, 0, 0, 0, 0, 0, 0, 1}, []int{0, 9}, []int{8})

	// Degenerate sequences have no waiting times.
	test(nil, nil, []int{})
	test([]int{0, 0, 0}, nil, []int{})
	test([]int{0, 0, 1, 0}, []int{2}, []int{})
}

func TestComparators(t *testing.T) {
	assert.InDelta(t, 11.5, GeometricMean(0.08), 1e-12)
	assert.InDelta(t, 12.5, ExponentialMean(0.08), 1e-12)
	assert.Equal(t, 0.0, GeometricMean(1))
}

func TestAnalyze(t *testing.T) {
	s, err := Analyze([]int{3, 1}, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 2, s.N)
	assert.Equal(t, 2.0, s.Mean)
	assert.Equal(t, 1.0, s.StdDev)
	assert.Equal(t, 3.0, s.GeometricMean)
	assert.Equal(t, 4.0, s.ExponentialMean)

	empty, err := Analyze([]int{}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.N)
	assert.True(t, math.IsNaN(empty.Mean))

	_, err = Analyze([]int{1}, 0)
	assert.True(t, errors.Is(err, param.ErrInvalid))
}

func TestHistogramBins(t *testing.T) {
	times := []int{3, 1, 0, 3, 12}
	h := Histogram(times)
	require.Len(t, h.Counts, 13)
	for _, k := range times {
		bin := h.Bin(float64(k))
		require.GreaterOrEqual(t, bin, 0, "k=%d", k)
		assert.Equal(t, float64(k)-0.5, h.Edges[bin])
		assert.Equal(t, float64(k)+0.5, h.Edges[bin+1])
	}
	assert.Equal(t, 2.0, h.Counts[3])
	assert.Equal(t, 1.0, h.Counts[12])
	assert.Equal(t, float64(len(times)), h.Total())
}

func TestRunConverges(t *testing.T) {
	exp, err := Run(simrand.New(42), 1000000, 0.08)
	require.NoError(t, err)
	assert.Equal(t, exp.Successes-1, exp.Stats.N)
	assert.Len(t, exp.Times, exp.Stats.N)
	assert.InDelta(t, 80000, exp.Successes, 5*math.Sqrt(1e6*0.08*0.92))

	// The empirical mean converges to the geometric mean, not the
	// exponential one.
	assert.InDelta(t, 11.5, exp.Stats.Mean, 0.2)
	assert.Greater(t, math.Abs(exp.Stats.Mean-exp.Stats.ExponentialMean), 0.5)
	// The geometric standard deviation is sqrt(1−p)/p.
	assert.InDelta(t, math.Sqrt(0.92)/0.08, exp.Stats.StdDev, 0.3)
	assert.Equal(t, float64(exp.Stats.N), exp.Histogram.Total())
}

func TestRunSmall(t *testing.T) {
	exp, err := Run(simrand.New(42), 1000, 0.08)
	require.NoError(t, err)
	assert.Equal(t, 1000, exp.NFlips)
	assert.Equal(t, 11.5, exp.Stats.GeometricMean)

	again, err := Run(simrand.New(42), 1000, 0.08)
	require.NoError(t, err)
	assert.Equal(t, exp, again)
}

func TestSequence(t *testing.T) {
	seq, err := Sequence(simrand.New(3), 500, 0.5)
	require.NoError(t, err)
	require.Len(t, seq, 500)
	for _, v := range seq {
		if v != 0 && v != 1 {
			t.Fatalf("sequence value %d", v)
		}
	}

	all, err := Sequence(simrand.New(3), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{}, Times(all))

	_, err = Sequence(simrand.New(3), 0, 0.5)
	assert.True(t, errors.Is(err, param.ErrInvalid))
	_, err = Run(simrand.New(3), 10, 0)
	assert.True(t, errors.Is(err, param.ErrInvalid))
}
