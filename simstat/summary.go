// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simstat reduces outcome vectors to summary statistics and
// histograms.
package simstat

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// A Summary is the moments and bounds of an outcome vector.
//
// Variance and StdDev are population statistics (divisor N), matching
// how the experiments compare against theoretical moments.
type Summary struct {
	N        int
	Mean     float64
	Variance float64
	StdDev   float64
	Min, Max float64
}

// Summarize computes the Summary of xs. If xs is empty, the result
// has N == 0 and NaN moments and bounds.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, Variance: nan, StdDev: nan, Min: nan, Max: nan}
	}
	samp := stats.Sample{Xs: xs}
	n := float64(len(xs))
	var variance float64
	if len(xs) > 1 {
		// Sample.Variance uses the N-1 divisor.
		variance = samp.Variance() * (n - 1) / n
	}
	min, max := samp.Bounds()
	return Summary{
		N:        len(xs),
		Mean:     samp.Mean(),
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Min:      min,
		Max:      max,
	}
}

// SummarizeInts is Summarize for integer outcomes.
func SummarizeInts(xs []int) Summary {
	return Summarize(Floats(xs))
}

// Floats converts xs to float64.
func Floats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

// Within reports whether got is within tol of want.
func Within(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}
