// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simrand provides the seedable random source consumed by
// every sampler in stochsim.
//
// There is no package-level generator. Each experiment is handed a
// *Source explicitly, so two experiments never share hidden state and
// the same seed always reproduces the same draws.
package simrand

import (
	"math/bits"
	"math/rand/v2"
)

// stream selects the PCG stream. It is fixed so that a Source is
// fully determined by its seed.
const stream = 0x9e3779b97f4a7c15

// A Source is a deterministic stream of uniform, Bernoulli, and
// normal draws.
//
// A Source is not safe for concurrent use. Independent experiments
// should use independent Sources.
type Source struct {
	seed uint64
	pcg  *rand.PCG
	r    *rand.Rand
}

// New returns a Source seeded with seed.
func New(seed uint64) *Source {
	pcg := rand.NewPCG(seed, stream)
	return &Source{seed: seed, pcg: pcg, r: rand.New(pcg)}
}

// Seed returns the seed s was last seeded with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Reseed resets s to the start of the stream for seed. After Reseed,
// s produces exactly the draws of New(seed).
func (s *Source) Reseed(seed uint64) {
	s.seed = seed
	s.pcg.Seed(seed, stream)
}

// Float64 returns a uniform draw from [0, 1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// Normal returns a draw from the standard normal distribution.
func (s *Source) Normal() float64 {
	return s.r.NormFloat64()
}

// Sign returns -1 or +1 with equal probability.
func (s *Source) Sign() int {
	if s.r.Uint64()&1 == 0 {
		return -1
	}
	return 1
}

// Bernoulli returns 1 with probability p and 0 otherwise. p must be
// in [0, 1].
func (s *Source) Bernoulli(p float64) int {
	if s.r.Float64() < p {
		return 1
	}
	return 0
}

// SignSum returns the sum of n independent draws from {-1, +1}.
//
// This consumes 64 signs per generator call, so it is much faster
// than n calls to Sign, but it does not produce the same draws.
func (s *Source) SignSum(n int) int {
	ones := 0
	rem := n
	for ; rem >= 64; rem -= 64 {
		ones += bits.OnesCount64(s.r.Uint64())
	}
	if rem > 0 {
		ones += bits.OnesCount64(s.r.Uint64() & (1<<uint(rem) - 1))
	}
	return 2*ones - n
}
