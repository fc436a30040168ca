// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stochsim/stochsim/plot"
	"github.com/stochsim/stochsim/poisson"
	"github.com/stochsim/stochsim/simrand"
	"github.com/stochsim/stochsim/waiting"
	"github.com/stochsim/stochsim/walk"
)

func TestWalkFiguresDensity(t *testing.T) {
	d, err := walk.Finals(simrand.New(1), 50, 200, walk.Unit)
	require.NoError(t, err)
	figs := walkFigures(d, 50)
	require.Len(t, figs, 3)
	for _, fig := range figs[1:] {
		require.Len(t, fig.Series, 1)
		s := fig.Series[0]
		assert.Equal(t, plot.Bars, s.Kind)
		var area float64
		for _, y := range s.Y {
			area += y * s.Width
		}
		assert.InDelta(t, 1, area, 1e-9, fig.Title)
	}
}

func TestTraceFigures(t *testing.T) {
	seeds := []uint64{42, 123}
	paths, err := walk.Traces(30, seeds, walk.Unit)
	require.NoError(t, err)
	single, err := walk.Trace(simrand.New(7), 30, walk.Unit)
	require.NoError(t, err)

	figs := traceFigures(single, paths, seeds)
	require.Len(t, figs, 3)
	assert.Equal(t, "Single random walk", figs[0].Title)
	assert.Equal(t, "Random walk 2 (seed 123)", figs[2].Title)
	for i, p := range append([]walk.Path{single}, paths...) {
		fig := figs[i]
		assert.True(t, fig.EqualAxes)
		require.Len(t, fig.Series, 3)
		assert.Equal(t, p.X, fig.Series[0].X)

		start, end := fig.Series[1], fig.Series[2]
		assert.Equal(t, "green", start.Color)
		assert.Equal(t, "red", end.Color)
		x, y := p.Start()
		assert.Equal(t, []float64{x}, start.X)
		assert.Equal(t, []float64{y}, start.Y)
		x, y = p.End()
		assert.Equal(t, []float64{x}, end.X)
		assert.Equal(t, []float64{y}, end.Y)
	}
}

func TestPoissonFigures(t *testing.T) {
	heads, err := poisson.CoinFlips(simrand.New(1), 500, 100, 0.08)
	require.NoError(t, err)
	c, err := poisson.Compare(heads, 100, 0.08)
	require.NoError(t, err)
	figs, err := poissonFigures(c)
	require.NoError(t, err)
	require.Len(t, figs, 3)

	pmf := figs[0]
	assert.Contains(t, pmf.Title, "λ=8")
	want, err := poisson.PMF(8, 20)
	require.NoError(t, err)
	for _, s := range pmf.Series {
		assert.Equal(t, want, s.Y)
		assert.Equal(t, poisson.Support(20), s.X)
	}
	assert.True(t, figs[2].LogY)

	// Large λ widens the support past 20.
	c.Lambda = 40
	figs, err = poissonFigures(c)
	require.NoError(t, err)
	assert.Len(t, figs[0].Series[0].X, 100)
}

func TestWaitFigures(t *testing.T) {
	e, err := waiting.Run(simrand.New(1), 1000, 0.08)
	require.NoError(t, err)
	figs := waitFigures(e)
	require.Len(t, figs, 2)
	assert.False(t, figs[0].LogY)
	assert.True(t, figs[1].LogY)
	for _, fig := range figs {
		require.Len(t, fig.Series, 1)
		assert.Equal(t, e.Histogram.Counts, fig.Series[0].Y)
	}
}

func TestTraceSVG(t *testing.T) {
	svg := filepath.Join(t.TempDir(), "trace.svg")
	mustRun(t, "trace", "--steps", "20", "--svg", svg)
	data, err := os.ReadFile(svg)
	require.NoError(t, err)
	// A start and an end marker for the standalone walk and each
	// of the four default seeds.
	assert.Equal(t, 10, bytes.Count(data, []byte("<circle ")))
	assert.Contains(t, string(data), "Random walk 4 (seed 789)")
}
