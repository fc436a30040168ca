// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package poisson compares Binomial coin-flip experiments with their
// Poisson limit.
//
// Binomial(n, p) converges to Poisson(λ = n·p) as n grows with n·p
// fixed. CoinFlips samples the Binomial side; Dist and PMF give the
// Poisson side; Compare puts the two together.
package poisson

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/stochsim/stochsim/param"
)

// Dist is the Poisson distribution with mean Lambda. Lambda must be
// non-negative. The zero Dist is the point mass at 0.
type Dist struct {
	Lambda float64
}

var _ stats.DiscreteDist = Dist{}

// logPMF returns log p(l), computed as l·log λ − λ − log l! so that
// neither λ^l nor l! is ever formed.
func (d Dist) logPMF(l int) float64 {
	if d.Lambda == 0 {
		// 0·log 0 is NaN, but p(0) = 1.
		if l == 0 {
			return 0
		}
		return math.Inf(-1)
	}
	lfact, _ := math.Lgamma(float64(l) + 1)
	return float64(l)*math.Log(d.Lambda) - d.Lambda - lfact
}

// PMF returns Pr[X = floor(x)].
func (d Dist) PMF(x float64) float64 {
	l := math.Floor(x)
	if !(l >= 0) || math.IsInf(l, 1) {
		return 0
	}
	return math.Exp(d.logPMF(int(l)))
}

// CDF returns Pr[X <= x].
func (d Dist) CDF(x float64) float64 {
	if !(x >= 0) {
		return 0
	}
	if math.IsInf(x, 1) {
		return 1
	}
	top := math.Floor(x)
	var sum float64
	for l := 0; float64(l) <= top; l++ {
		term := math.Exp(d.logPMF(l))
		sum += term
		// Past the mode, stop once terms no longer change the
		// sum.
		if float64(l) > d.Lambda && term < sum*1e-17 {
			break
		}
	}
	return math.Min(sum, 1)
}

// Step returns 1: the distribution is defined on the non-negative
// integers.
func (d Dist) Step() float64 {
	return 1
}

// Bounds returns a range covering all but a negligible fraction of
// the probability mass.
func (d Dist) Bounds() (float64, float64) {
	return 0, math.Ceil(d.Lambda + 10*math.Sqrt(d.Lambda) + 10)
}

// Mean returns λ.
func (d Dist) Mean() float64 {
	return d.Lambda
}

// Variance returns λ.
func (d Dist) Variance() float64 {
	return d.Lambda
}

// PMF returns p(l) = λ^l·e^−λ / l! for l = 0 .. maxL-1. The upper
// bound is exclusive, so the result has exactly maxL entries.
//
// The values are computed in log space, so PMF is stable for supports
// far past the point where l! overflows a float64.
func PMF(lambda float64, maxL int) ([]float64, error) {
	err := param.Check(
		param.PositiveFloat("lambda", lambda),
		param.NonNegative("maxL", maxL),
	)
	if err != nil {
		return nil, fmt.Errorf("poisson: %w", err)
	}
	d := Dist{lambda}
	pmf := make([]float64, maxL)
	for l := range pmf {
		pmf[l] = math.Exp(d.logPMF(l))
	}
	return pmf, nil
}

// Support returns the integers 0 .. maxL-1 as float64, the x values
// matching PMF(lambda, maxL).
func Support(maxL int) []float64 {
	if maxL < 0 {
		maxL = 0
	}
	out := make([]float64, maxL)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}
