// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package walk

import (
	"fmt"

	"github.com/stochsim/stochsim/param"
	"github.com/stochsim/stochsim/simrand"
)

// DefaultSeeds seeds the four trajectories of a trace grid.
var DefaultSeeds = []uint64{42, 123, 456, 789}

// A Path is the trajectory of one walk. X[i], Y[i] is the position
// after step i+1; no origin point is prepended, so X[0] is the first
// increment and X[len-1] is the endpoint.
type Path struct {
	X, Y []float64
}

// Len returns the number of points in p.
func (p Path) Len() int {
	return len(p.X)
}

// Start returns the first point of p.
func (p Path) Start() (x, y float64) {
	return p.X[0], p.Y[0]
}

// End returns the last point of p.
func (p Path) End() (x, y float64) {
	n := len(p.X) - 1
	return p.X[n], p.Y[n]
}

// Trace simulates a single walk of steps steps and returns its full
// trajectory. All x increments are drawn before all y increments.
func Trace(src *simrand.Source, steps int, kind Kind) (Path, error) {
	if err := param.Check(param.Positive("steps", steps), kind.check()); err != nil {
		return Path{}, fmt.Errorf("walk: %w", err)
	}
	p := Path{
		X: cumulative(src, steps, kind),
		Y: cumulative(src, steps, kind),
	}
	return p, nil
}

func cumulative(src *simrand.Source, n int, kind Kind) []float64 {
	out := make([]float64, n)
	var pos float64
	for i := range out {
		pos += kind.step(src)
		out[i] = pos
	}
	return out
}

// Traces returns one trajectory per seed. The source is re-seeded
// before each trajectory, so Traces(steps, seeds, kind)[i] is exactly
// Trace(simrand.New(seeds[i]), steps, kind).
func Traces(steps int, seeds []uint64, kind Kind) ([]Path, error) {
	var errs []error
	errs = append(errs, param.Positive("steps", steps), kind.check())
	if len(seeds) == 0 {
		errs = append(errs, &param.Error{Name: "seeds", Value: seeds, Want: "non-empty"})
	}
	if err := param.Check(errs...); err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}

	src := simrand.New(seeds[0])
	paths := make([]Path, len(seeds))
	for i, seed := range seeds {
		src.Reseed(seed)
		p, err := Trace(src, steps, kind)
		if err != nil {
			return nil, err
		}
		paths[i] = p
	}
	return paths, nil
}
