// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poisson

import (
	"fmt"
	"math"

	"github.com/stochsim/stochsim/param"
	"github.com/stochsim/stochsim/simrand"
	"github.com/stochsim/stochsim/simstat"
)

// CoinFlips runs nExperiments independent experiments of nFlips coin
// flips each, where each flip is a head (1) with probability pHead,
// and returns the number of heads in each experiment.
func CoinFlips(src *simrand.Source, nExperiments, nFlips int, pHead float64) ([]int, error) {
	err := param.Check(
		param.Positive("nExperiments", nExperiments),
		param.Positive("nFlips", nFlips),
		param.Probability("pHead", pHead),
	)
	if err != nil {
		return nil, fmt.Errorf("poisson: %w", err)
	}
	heads := make([]int, nExperiments)
	for i := range heads {
		n := 0
		for j := 0; j < nFlips; j++ {
			n += src.Bernoulli(pHead)
		}
		heads[i] = n
	}
	return heads, nil
}

// SupportFor returns the PMF support bound used to compare counts
// against Poisson(lambda): at least 2λ, and always past the largest
// observed count.
func SupportFor(lambda float64, counts []int) int {
	top := int(2 * lambda)
	for _, c := range counts {
		if c+1 > top {
			top = c + 1
		}
	}
	return top
}

// Tolerance returns the acceptance band for the empirical mean of n
// samples of Poisson(lambda), at zSigmas standard errors.
func Tolerance(lambda float64, n int) float64 {
	return zSigmas * math.Sqrt(lambda/float64(n))
}

// varianceTolerance is Tolerance for the empirical variance. For a
// Poisson variable the sample variance has standard error
// sqrt((λ + 2λ²)/n), which is still proportional to sqrt(λ/n).
func varianceTolerance(lambda float64, n int) float64 {
	return Tolerance(lambda, n) * math.Sqrt(1+2*lambda)
}

const zSigmas = 5

// A Comparison is the outcome of comparing a batch of head counts
// with the Poisson distribution of the same mean.
type Comparison struct {
	Lambda float64 // λ = nFlips·pHead
	NFlips int
	PHead  float64

	Summary simstat.Summary // Head counts

	// BinomialVariance is the exact variance nFlips·pHead·(1−pHead)
	// of the sampled distribution. It differs from the Poisson
	// variance λ by λ·pHead.
	BinomialVariance float64

	// MeanTolerance and VarianceTolerance are the acceptance bands
	// used by MeanOK and VarianceOK.
	MeanTolerance     float64
	VarianceTolerance float64

	// Support is the exclusive upper bound of L. Empirical[l] is
	// the fraction of experiments with l heads and Theory[l] is the
	// Poisson PMF at l.
	Support   int
	L         []float64
	Empirical []float64
	Theory    []float64
}

// Compare summarizes heads, a vector of head counts from CoinFlips
// with the given nFlips and pHead, against Poisson(nFlips·pHead).
func Compare(heads []int, nFlips int, pHead float64) (Comparison, error) {
	errs := []error{
		param.Positive("nFlips", nFlips),
		param.NonZeroProbability("pHead", pHead),
	}
	if len(heads) == 0 {
		errs = append(errs, &param.Error{Name: "heads", Value: "[]", Want: "non-empty"})
	}
	if err := param.Check(errs...); err != nil {
		return Comparison{}, fmt.Errorf("poisson: %w", err)
	}

	lambda := float64(nFlips) * pHead
	support := SupportFor(lambda, heads)
	theory, err := PMF(lambda, support)
	if err != nil {
		return Comparison{}, err
	}
	hist := simstat.UnitHistogram(heads, 0, support)
	n := len(heads)
	return Comparison{
		Lambda:            lambda,
		NFlips:            nFlips,
		PHead:             pHead,
		Summary:           simstat.SummarizeInts(heads),
		BinomialVariance:  lambda * (1 - pHead),
		MeanTolerance:     Tolerance(lambda, n),
		VarianceTolerance: varianceTolerance(lambda, n),
		Support:           support,
		L:                 Support(support),
		Empirical:         hist.Density(),
		Theory:            theory,
	}, nil
}

// MeanOK reports whether the empirical mean is within tolerance of λ.
func (c Comparison) MeanOK() bool {
	return simstat.Within(c.Summary.Mean, c.Lambda, c.MeanTolerance)
}

// VarianceOK reports whether the empirical variance is within
// tolerance of the Binomial variance of the sampled distribution.
func (c Comparison) VarianceOK() bool {
	return simstat.Within(c.Summary.Variance, c.BinomialVariance, c.VarianceTolerance)
}

// PoissonVarianceOK reports whether the empirical variance is within
// tolerance of the Poisson variance λ. This holds only once pHead is
// small enough that the λ·pHead gap falls inside the tolerance.
func (c Comparison) PoissonVarianceOK() bool {
	return simstat.Within(c.Summary.Variance, c.Lambda, c.VarianceTolerance)
}

// MaxPMFError returns the largest absolute difference between the
// empirical and theoretical PMF over the support.
func (c Comparison) MaxPMFError() float64 {
	var max float64
	for i := range c.Theory {
		if d := math.Abs(c.Empirical[i] - c.Theory[i]); d > max {
			max = d
		}
	}
	return max
}
