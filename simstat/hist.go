// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simstat

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// A Histogram is a set of contiguous bins and the number of samples
// that fell in each.
//
// Bin i covers [Edges[i], Edges[i+1]). Samples outside all bins are
// counted in Under and Over.
type Histogram struct {
	Edges  []float64
	Counts []float64

	Under, Over int
}

// NewHistogram bins xs into nbins equal-width bins over [lo, hi).
func NewHistogram(xs []float64, lo, hi float64, nbins int) Histogram {
	h := stats.NewLinearHist(lo, hi, nbins)
	for _, x := range xs {
		// LinearHist truncates the bin index toward zero, so
		// values just below lo would land in bin 0.
		if x < lo {
			continue
		}
		h.Add(x)
	}
	_, counts, over := h.Counts()
	out := Histogram{
		Edges:  make([]float64, nbins+1),
		Counts: make([]float64, len(counts)),
		Over:   int(over),
	}
	for i, c := range counts {
		out.Counts[i] = float64(c)
	}
	for _, x := range xs {
		if x < lo {
			out.Under++
		}
	}
	for i := range out.Edges {
		out.Edges[i] = h.BinToValue(float64(i))
	}
	return out
}

// AutoHistogram bins xs into nbins equal-width bins spanning the range
// of xs. Unlike NewHistogram, the maximum of xs is counted in the last
// bin, so Under and Over are always zero.
func AutoHistogram(xs []float64, nbins int) Histogram {
	if len(xs) == 0 || nbins <= 0 {
		return Histogram{}
	}
	lo, hi := stats.Bounds(xs)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	h := NewHistogram(xs, lo, hi, nbins)
	h.Counts[nbins-1] += float64(h.Over)
	h.Over = 0
	return h
}

// IntegerHistogram bins integer samples into unit-width bins centered
// on each integer between the minimum and maximum of xs, so bin k
// spans [k-0.5, k+0.5) and every integer value occupies exactly one
// bin.
func IntegerHistogram(xs []int) Histogram {
	if len(xs) == 0 {
		return Histogram{}
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return NewHistogram(Floats(xs), float64(lo)-0.5, float64(hi)+0.5, hi-lo+1)
}

// UnitHistogram bins integer samples into the bins [k, k+1) for k in
// [lo, hi).
func UnitHistogram(xs []int, lo, hi int) Histogram {
	if hi <= lo {
		return Histogram{}
	}
	return NewHistogram(Floats(xs), float64(lo), float64(hi), hi-lo)
}

// Total returns the number of samples in all bins, excluding Under and
// Over.
func (h Histogram) Total() float64 {
	var total float64
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// Centers returns the midpoint of each bin.
func (h Histogram) Centers() []float64 {
	out := make([]float64, len(h.Counts))
	for i := range out {
		out[i] = (h.Edges[i] + h.Edges[i+1]) / 2
	}
	return out
}

// Density returns the counts normalized so the histogram integrates
// to 1 over its bins. Samples in Under and Over count toward the
// normalization, as in a density over the whole sample.
func (h Histogram) Density() []float64 {
	out := make([]float64, len(h.Counts))
	n := h.Total() + float64(h.Under+h.Over)
	if n == 0 {
		return out
	}
	for i, c := range h.Counts {
		out[i] = c / (n * (h.Edges[i+1] - h.Edges[i]))
	}
	return out
}

// Bin returns the index of the bin containing x, or -1 if x is
// outside all bins.
func (h Histogram) Bin(x float64) int {
	if len(h.Counts) == 0 || x < h.Edges[0] || x >= h.Edges[len(h.Edges)-1] || math.IsNaN(x) {
		return -1
	}
	lo, hi := 0, len(h.Counts)
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x < h.Edges[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}
