// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package walk simulates two-dimensional random walks.
//
// Finals samples only the endpoints of a batch of walks, which is all
// the displacement and mean square displacement estimators need.
// Trace and Traces produce full trajectories.
//
// Each axis takes independent steps. A Unit walk steps uniformly from
// {-1, +1}; a Gaussian walk takes standard normal increments. In both
// cases each axis contributes variance 1 per step.
package walk

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/stochsim/stochsim/param"
	"github.com/stochsim/stochsim/simrand"
)

// Kind is the step distribution of a walk.
type Kind int

const (
	// Unit steps are drawn uniformly from {-1, +1}.
	Unit Kind = iota
	// Gaussian steps are drawn from the standard normal
	// distribution.
	Gaussian
)

func (k Kind) String() string {
	switch k {
	case Unit:
		return "unit"
	case Gaussian:
		return "gaussian"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the String form of a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "unit":
		return Unit, nil
	case "gaussian":
		return Gaussian, nil
	}
	return 0, &param.Error{Name: "kind", Value: s, Want: `"unit" or "gaussian"`}
}

func (k Kind) check() error {
	if k != Unit && k != Gaussian {
		return &param.Error{Name: "kind", Value: k, Want: "Unit or Gaussian"}
	}
	return nil
}

// step draws a single increment.
func (k Kind) step(src *simrand.Source) float64 {
	if k == Gaussian {
		return src.Normal()
	}
	return float64(src.Sign())
}

// sum draws the sum of n increments.
func (k Kind) sum(src *simrand.Source, n int) float64 {
	if k == Unit {
		return float64(src.SignSum(n))
	}
	var s float64
	for i := 0; i < n; i++ {
		s += src.Normal()
	}
	return s
}

// Displacements is the final position of each walk in a batch. X[i]
// and Y[i] are the endpoint of walk i.
type Displacements struct {
	X, Y []float64
}

// Len returns the number of walks.
func (d Displacements) Len() int {
	return len(d.X)
}

// Finals simulates numWalks independent walks of numSteps steps each
// and returns their final displacements from the origin.
func Finals(src *simrand.Source, numSteps, numWalks int, kind Kind) (Displacements, error) {
	err := param.Check(
		param.Positive("numSteps", numSteps),
		param.Positive("numWalks", numWalks),
		kind.check(),
	)
	if err != nil {
		return Displacements{}, fmt.Errorf("walk: %w", err)
	}
	d := Displacements{
		X: make([]float64, numWalks),
		Y: make([]float64, numWalks),
	}
	for i := range d.X {
		d.X[i] = kind.sum(src, numSteps)
		d.Y[i] = kind.sum(src, numSteps)
	}
	return d, nil
}

// SquaredDisplacements returns x²+y² for each walk.
func SquaredDisplacements(d Displacements) []float64 {
	out := make([]float64, d.Len())
	for i := range out {
		out[i] = d.X[i]*d.X[i] + d.Y[i]*d.Y[i]
	}
	return out
}

// Magnitudes returns the radial distance sqrt(x²+y²) of each walk.
func Magnitudes(d Displacements) []float64 {
	return vec.Map(math.Sqrt, SquaredDisplacements(d))
}

// MeanSquare returns the mean square displacement of d. It is NaN if d
// is empty.
func MeanSquare(d Displacements) float64 {
	return stats.Mean(SquaredDisplacements(d))
}
