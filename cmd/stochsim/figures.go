// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/vec"

	"github.com/stochsim/stochsim/plot"
	"github.com/stochsim/stochsim/poisson"
	"github.com/stochsim/stochsim/simstat"
	"github.com/stochsim/stochsim/waiting"
	"github.com/stochsim/stochsim/walk"
)

const histBins = 40

// histSeries draws h as bars of height y, which is h.Counts or
// h.Density().
func histSeries(label string, h simstat.Histogram, y []float64) plot.Series {
	var width float64
	if len(h.Edges) > 1 {
		width = h.Edges[1] - h.Edges[0]
	}
	return plot.Series{Label: label, Kind: plot.Bars, X: h.Centers(), Y: y, Width: width}
}

func walkFigures(d walk.Displacements, steps int) []plot.Figure {
	finals := plot.Figure{
		Title:     fmt.Sprintf("Final positions after %d steps", steps),
		XLabel:    "x",
		YLabel:    "y",
		EqualAxes: true,
		Series:    []plot.Series{{Kind: plot.Scatter, X: d.X, Y: d.Y, Size: 1.5}},
	}
	dh := simstat.AutoHistogram(walk.Magnitudes(d), histBins)
	dist := plot.Figure{
		Title:  "Distance from origin",
		XLabel: "distance",
		YLabel: "density",
		Series: []plot.Series{histSeries("", dh, dh.Density())},
	}
	sh := simstat.AutoHistogram(walk.SquaredDisplacements(d), histBins)
	sq := plot.Figure{
		Title:  "Squared displacement",
		XLabel: "x² + y²",
		YLabel: "density",
		Series: []plot.Series{histSeries("", sh, sh.Density())},
	}
	return []plot.Figure{finals, dist, sq}
}

func msdFigures(c walk.MSDCurve) []plot.Figure {
	steps := make([]float64, len(c.Steps))
	maxSteps := 0.0
	for i, s := range c.Steps {
		steps[i] = float64(s)
		if steps[i] > maxSteps {
			maxSteps = steps[i]
		}
	}
	xs := vec.Linspace(0, maxSteps, 50)
	fit := make([]float64, len(xs))
	want := make([]float64, len(xs))
	for i, x := range xs {
		fit[i] = c.Slope * x
		want[i] = walk.ExpectedSlope2D * x
	}
	return []plot.Figure{{
		Title:  "Mean square displacement",
		XLabel: "steps",
		YLabel: "MSD",
		Series: []plot.Series{
			{Label: "simulated", Kind: plot.Scatter, X: steps, Y: c.MSD},
			{Label: fmt.Sprintf("fit k=%.3f", c.Slope), Kind: plot.Line, X: xs, Y: fit},
			{Label: fmt.Sprintf("theory k=%d", walk.ExpectedSlope2D), Kind: plot.Line, X: xs, Y: want},
		},
	}}
}

// pathSeries draws p with markers at its start and end.
func pathSeries(p walk.Path) []plot.Series {
	x0, y0 := p.Start()
	x1, y1 := p.End()
	return []plot.Series{
		{Label: "path", Kind: plot.Line, X: p.X, Y: p.Y, Color: "#1f77b4"},
		{Label: "start", Kind: plot.Scatter, X: []float64{x0}, Y: []float64{y0}, Color: "green", Size: 6},
		{Label: "end", Kind: plot.Scatter, X: []float64{x1}, Y: []float64{y1}, Color: "red", Size: 6},
	}
}

// traceFigures draws single on its own, then one panel per seeded
// path.
func traceFigures(single walk.Path, paths []walk.Path, seeds []uint64) []plot.Figure {
	figs := []plot.Figure{{
		Title:     "Single random walk",
		XLabel:    "x",
		YLabel:    "y",
		EqualAxes: true,
		Series:    pathSeries(single),
	}}
	for i, p := range paths {
		figs = append(figs, plot.Figure{
			Title:     fmt.Sprintf("Random walk %d (seed %d)", i+1, seeds[i]),
			XLabel:    "x",
			YLabel:    "y",
			EqualAxes: true,
			Series:    pathSeries(p),
		})
	}
	return figs
}

// pmfPoints is the minimum support of the standalone PMF figure.
const pmfPoints = 20

func poissonFigures(c poisson.Comparison) ([]plot.Figure, error) {
	n := max(pmfPoints, int(math.Ceil(2.5*c.Lambda)))
	pmf, err := poisson.PMF(c.Lambda, n)
	if err != nil {
		return nil, err
	}
	ls := poisson.Support(n)
	return []plot.Figure{
		{
			Title:  fmt.Sprintf("Poisson probability mass function (λ=%g)", c.Lambda),
			XLabel: "l",
			YLabel: "p(l)",
			Series: []plot.Series{
				{Label: "theoretical distribution", Kind: plot.Line, X: ls, Y: pmf, Color: "blue"},
				{Kind: plot.Scatter, X: ls, Y: pmf, Color: "blue"},
			},
		},
		{
			Title:  fmt.Sprintf("Heads in %d flips, p=%g", c.NFlips, c.PHead),
			XLabel: "heads",
			YLabel: "probability",
			Series: []plot.Series{
				{Label: "simulated", Kind: plot.Bars, X: c.L, Y: c.Empirical, Width: 1},
				{Label: fmt.Sprintf("Poisson λ=%g", c.Lambda), Kind: plot.Scatter, X: c.L, Y: c.Theory},
			},
		},
		{
			Title:  "Log scale",
			XLabel: "heads",
			YLabel: "probability",
			LogY:   true,
			Series: []plot.Series{
				{Label: "simulated", Kind: plot.Scatter, X: c.L, Y: c.Empirical},
				{Label: "Poisson", Kind: plot.Line, X: c.L, Y: c.Theory},
			},
		},
	}, nil
}

// waitFigures draws the waiting-time histogram of e on linear and
// log count axes.
func waitFigures(e waiting.Experiment) []plot.Figure {
	bars := histSeries(fmt.Sprintf("mean %.2f", e.Stats.Mean), e.Histogram, e.Histogram.Counts)
	return []plot.Figure{
		{
			Title:  fmt.Sprintf("Waiting times, %d flips, p=%g", e.NFlips, e.PHead),
			XLabel: "failures before success",
			YLabel: "count",
			Series: []plot.Series{bars},
		},
		{
			Title:  fmt.Sprintf("Waiting times, %d flips, log scale", e.NFlips),
			XLabel: "failures before success",
			YLabel: "count",
			LogY:   true,
			Series: []plot.Series{bars},
		},
	}
}
