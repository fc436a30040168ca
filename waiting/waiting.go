// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package waiting measures waiting times between successes in a
// Bernoulli sequence.
//
// The waiting time between two consecutive successes is the number of
// failures strictly between them. For success probability p it is
// geometrically distributed with mean (1−p)/p. The continuous-time
// analogue, an exponential waiting time with mean 1/p, is reported as
// a separate reference value.
package waiting

import (
	"fmt"

	"github.com/stochsim/stochsim/param"
	"github.com/stochsim/stochsim/simrand"
	"github.com/stochsim/stochsim/simstat"
)

// Sequence returns nFlips independent Bernoulli(pHead) draws, where 1
// is a success (head) and 0 is a failure (tail).
func Sequence(src *simrand.Source, nFlips int, pHead float64) ([]int, error) {
	err := param.Check(
		param.Positive("nFlips", nFlips),
		param.Probability("pHead", pHead),
	)
	if err != nil {
		return nil, fmt.Errorf("waiting: %w", err)
	}
	seq := make([]int, nFlips)
	for i := range seq {
		seq[i] = src.Bernoulli(pHead)
	}
	return seq, nil
}

// SuccessIndices returns the ordered positions of the non-zero
// elements of seq.
func SuccessIndices(seq []int) []int {
	var idx []int
	for i, v := range seq {
		if v != 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// Times returns the waiting time between each pair of consecutive
// successes in seq. A sequence with fewer than two successes has no
// waiting times; the result is then empty, not nil.
//
// For example, [0 1 0 0 0 1 0 1] has successes at [1 5 7] and waiting
// times [3 1].
func Times(seq []int) []int {
	idx := SuccessIndices(seq)
	if len(idx) < 2 {
		return []int{}
	}
	times := make([]int, len(idx)-1)
	for k := range times {
		times[k] = idx[k+1] - idx[k] - 1
	}
	return times
}

// GeometricMean returns the mean number of failures before a success,
// (1−p)/p.
func GeometricMean(p float64) float64 {
	return (1 - p) / p
}

// ExponentialMean returns the mean of the exponential waiting time
// with rate p, 1/p.
func ExponentialMean(p float64) float64 {
	return 1 / p
}

// Stats is the empirical summary of a set of waiting times together
// with its two theoretical comparators.
type Stats struct {
	N      int
	Mean   float64
	StdDev float64

	GeometricMean   float64
	ExponentialMean float64
}

// Analyze summarizes waiting times observed with success probability
// pHead. With no waiting times, N is 0 and Mean and StdDev are NaN.
func Analyze(times []int, pHead float64) (Stats, error) {
	if err := param.NonZeroProbability("pHead", pHead); err != nil {
		return Stats{}, fmt.Errorf("waiting: %w", err)
	}
	s := simstat.SummarizeInts(times)
	return Stats{
		N:               s.N,
		Mean:            s.Mean,
		StdDev:          s.StdDev,
		GeometricMean:   GeometricMean(pHead),
		ExponentialMean: ExponentialMean(pHead),
	}, nil
}

// Histogram bins waiting times so that each integer k occupies the
// bin [k−0.5, k+0.5).
func Histogram(times []int) simstat.Histogram {
	return simstat.IntegerHistogram(times)
}

// An Experiment is one complete waiting-time run.
type Experiment struct {
	NFlips    int
	PHead     float64
	Successes int
	Times     []int
	Stats     Stats
	Histogram simstat.Histogram
}

// Run flips nFlips coins with success probability pHead and analyzes
// the waiting times between successes.
func Run(src *simrand.Source, nFlips int, pHead float64) (Experiment, error) {
	err := param.Check(
		param.Positive("nFlips", nFlips),
		param.NonZeroProbability("pHead", pHead),
	)
	if err != nil {
		return Experiment{}, fmt.Errorf("waiting: %w", err)
	}
	seq, err := Sequence(src, nFlips, pHead)
	if err != nil {
		return Experiment{}, err
	}
	times := Times(seq)
	stats, err := Analyze(times, pHead)
	if err != nil {
		return Experiment{}, err
	}
	return Experiment{
		NFlips:    nFlips,
		PHead:     pHead,
		Successes: len(SuccessIndices(seq)),
		Times:     times,
		Stats:     stats,
		Histogram: Histogram(times),
	}, nil
}
