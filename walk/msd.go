// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package walk

import (
	"fmt"
	"math"

	"github.com/stochsim/stochsim/param"
	"github.com/stochsim/stochsim/simrand"
)

// DefaultSteps is the set of step counts MSDvsSteps is usually
// evaluated at.
var DefaultSteps = []int{1000, 2000, 3000, 4000}

// ExpectedSlope2D is the theoretical slope of mean square
// displacement against step count for a 2D walk: each of the two axes
// contributes variance 1 per step.
const ExpectedSlope2D = 2

// An MSDCurve is the mean square displacement measured at a set of
// step counts and the slope of the through-origin fit MSD ≈ k·steps.
type MSDCurve struct {
	Steps []int
	MSD   []float64
	Slope float64

	// Walks is the number of walks per step count.
	Walks int
}

// Fitted returns Slope·steps at each step count.
func (c MSDCurve) Fitted() []float64 {
	out := make([]float64, len(c.Steps))
	for i, s := range c.Steps {
		out[i] = c.Slope * float64(s)
	}
	return out
}

// MSDvsSteps measures the mean square displacement of numWalks walks
// at each step count in steps and fits MSD ≈ k·steps.
func MSDvsSteps(src *simrand.Source, steps []int, numWalks int, kind Kind) (MSDCurve, error) {
	errs := []error{param.Positive("numWalks", numWalks), kind.check()}
	if len(steps) == 0 {
		errs = append(errs, &param.Error{Name: "steps", Value: steps, Want: "non-empty"})
	}
	for i, s := range steps {
		errs = append(errs, param.Positive(fmt.Sprintf("steps[%d]", i), s))
	}
	if err := param.Check(errs...); err != nil {
		return MSDCurve{}, fmt.Errorf("walk: %w", err)
	}

	curve := MSDCurve{
		Steps: append([]int(nil), steps...),
		MSD:   make([]float64, len(steps)),
		Walks: numWalks,
	}
	xs := make([]float64, len(steps))
	for i, s := range steps {
		d, err := Finals(src, s, numWalks, kind)
		if err != nil {
			return MSDCurve{}, err
		}
		curve.MSD[i] = MeanSquare(d)
		xs[i] = float64(s)
	}
	k, err := FitThroughOrigin(xs, curve.MSD)
	if err != nil {
		return MSDCurve{}, err
	}
	curve.Slope = k
	return curve, nil
}

// FitThroughOrigin returns the ordinary least squares slope k of the
// model y = k·x, which is Σxy / Σx².
func FitThroughOrigin(xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) {
		return 0, fmt.Errorf("walk: fit needs equal length inputs, got %d and %d", len(xs), len(ys))
	}
	var num, den float64
	for i, x := range xs {
		num += x * ys[i]
		den += x * x
	}
	if den == 0 {
		return 0, fmt.Errorf("walk: fit needs at least one non-zero x: %w", param.ErrInvalid)
	}
	return num / den, nil
}

// SlopeStdErr returns the standard error of the MSDvsSteps slope for
// numWalks walks at each step count in steps.
//
// For large step counts each axis endpoint is approximately N(0, s),
// so r² has variance 4s² and the per-step-count MSD has variance
// 4s²/numWalks.
func SlopeStdErr(steps []int, numWalks int) float64 {
	var s2, s4 float64
	for _, s := range steps {
		f := float64(s)
		s2 += f * f
		s4 += f * f * f * f
	}
	if s2 == 0 || numWalks <= 0 {
		return math.NaN()
	}
	return 2 * math.Sqrt(s4) / (s2 * math.Sqrt(float64(numWalks)))
}

// SlopeTolerance returns a 5σ acceptance band for the fitted slope.
// It scales as 1/sqrt(numWalks).
func SlopeTolerance(steps []int, numWalks int) float64 {
	return 5 * SlopeStdErr(steps, numWalks)
}
