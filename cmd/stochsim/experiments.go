// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/stochsim/stochsim/poisson"
	"github.com/stochsim/stochsim/simfmt"
	"github.com/stochsim/stochsim/simrand"
	"github.com/stochsim/stochsim/simstat"
	"github.com/stochsim/stochsim/simunit"
	"github.com/stochsim/stochsim/waiting"
	"github.com/stochsim/stochsim/walk"
)

// kindFlag adds a -kind flag to cmd and returns a function that
// parses it.
func kindFlag(cmd *cobra.Command) func() (walk.Kind, error) {
	s := cmd.Flags().String("kind", "unit", "step `distribution`: unit or gaussian")
	return func() (walk.Kind, error) {
		return walk.ParseKind(*s)
	}
}

func (a *app) walkCmd() *cobra.Command {
	var steps, walks int
	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Final displacement of many independent 2D walks",
		Args:  cobra.NoArgs,
	}
	kind := kindFlag(cmd)
	cmd.Flags().IntVar(&steps, "steps", 1000, "steps per walk")
	cmd.Flags().IntVar(&walks, "walks", 1000, "number of walks")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		k, err := kind()
		if err != nil {
			return err
		}
		a.log.Debug().Int("steps", steps).Int("walks", walks).Stringer("kind", k).Msg("walk")
		res, err := runWalk(a.source(), a.baseConfig("walk"), steps, walks, k)
		if err != nil {
			return err
		}
		return a.emit(res)
	}
	return cmd
}

func runWalk(src *simrand.Source, cfg []simfmt.Config, steps, walks int, kind walk.Kind) (result, error) {
	d, err := walk.Finals(src, steps, walks, kind)
	if err != nil {
		return result{}, err
	}
	dist := simstat.Summarize(walk.Magnitudes(d))
	rec := &simfmt.Record{
		Config: append(cfg, simfmt.Config{Key: "kind", Value: kind.String()}),
		Name:   fmt.Sprintf("Walk/steps=%d", steps),
		N:      walks,
		Values: []simfmt.Value{
			{Value: walk.MeanSquare(d), Unit: simunit.MSD},
			{Value: walk.ExpectedSlope2D * float64(steps), Unit: simunit.Qualify("expected", simunit.MSD)},
			{Value: dist.Mean, Unit: simunit.Qualify(simunit.Mean, simunit.Distance)},
			{Value: dist.StdDev, Unit: simunit.Qualify(simunit.StdDev, simunit.Distance)},
			{Value: dist.Max, Unit: simunit.Qualify("max", simunit.Distance)},
		},
	}
	return result{
		records: []*simfmt.Record{rec},
		figures: walkFigures(d, steps),
	}, nil
}

func (a *app) msdCmd() *cobra.Command {
	var steps []int
	var walks int
	cmd := &cobra.Command{
		Use:   "msd",
		Short: "Mean square displacement against step count",
		Args:  cobra.NoArgs,
	}
	kind := kindFlag(cmd)
	cmd.Flags().IntSliceVar(&steps, "steps", walk.DefaultSteps, "step `counts` to measure")
	cmd.Flags().IntVar(&walks, "walks", 1000, "walks per step count")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		k, err := kind()
		if err != nil {
			return err
		}
		a.log.Debug().Ints("steps", steps).Int("walks", walks).Stringer("kind", k).Msg("msd")
		res, err := runMSD(a.source(), a.baseConfig("msd"), steps, walks, k)
		if err != nil {
			return err
		}
		rec := res.records[len(res.records)-1]
		slope, _ := rec.Value(simunit.Slope)
		tol, _ := rec.Value(simunit.Qualify("tol", simunit.Slope))
		if !simstat.Within(slope, walk.ExpectedSlope2D, tol) {
			a.log.Warn().Float64("slope", slope).Float64("tolerance", tol).Msg("slope outside tolerance")
		}
		return a.emit(res)
	}
	return cmd
}

func runMSD(src *simrand.Source, cfg []simfmt.Config, steps []int, walks int, kind walk.Kind) (result, error) {
	curve, err := walk.MSDvsSteps(src, steps, walks, kind)
	if err != nil {
		return result{}, err
	}
	cfg = append(cfg, simfmt.Config{Key: "kind", Value: kind.String()})
	var recs []*simfmt.Record
	for i, s := range curve.Steps {
		recs = append(recs, &simfmt.Record{
			Config: cfg,
			Name:   fmt.Sprintf("MSD/steps=%d", s),
			N:      walks,
			Values: []simfmt.Value{{Value: curve.MSD[i], Unit: simunit.MSD}},
		})
	}
	recs = append(recs, &simfmt.Record{
		Config: cfg,
		Name:   "MSD/fit",
		N:      walks * len(curve.Steps),
		Values: []simfmt.Value{
			{Value: curve.Slope, Unit: simunit.Slope},
			{Value: walk.ExpectedSlope2D, Unit: simunit.Qualify("expected", simunit.Slope)},
			{Value: walk.SlopeTolerance(curve.Steps, walks), Unit: simunit.Qualify("tol", simunit.Slope)},
		},
	})
	return result{records: recs, figures: msdFigures(curve)}, nil
}

func (a *app) traceCmd() *cobra.Command {
	var steps int
	var seeds []uint
	defSeeds := make([]uint, len(walk.DefaultSeeds))
	for i, s := range walk.DefaultSeeds {
		defSeeds[i] = uint(s)
	}
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Full trajectories of 2D walks, one per seed",
		Long: `Trace generates one trajectory per seed in -seeds. Each trajectory
uses a generator seeded with its own seed, so -seed does not affect
the records. With -svg, trace also draws a standalone walk generated
from -seed.`,
		Args: cobra.NoArgs,
	}
	kind := kindFlag(cmd)
	cmd.Flags().IntVar(&steps, "steps", 1000, "steps per trajectory")
	cmd.Flags().UintSliceVar(&seeds, "seeds", defSeeds, "one `seed` per trajectory")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		k, err := kind()
		if err != nil {
			return err
		}
		seeds64 := make([]uint64, len(seeds))
		for i, s := range seeds {
			seeds64[i] = uint64(s)
		}
		a.log.Debug().Int("steps", steps).Int("paths", len(seeds)).Stringer("kind", k).Msg("trace")
		cfg := []simfmt.Config{{Key: "experiment", Value: "trace"}}
		res, err := runTrace(a.source(), cfg, steps, seeds64, k)
		if err != nil {
			return err
		}
		return a.emit(res)
	}
	return cmd
}

func runTrace(src *simrand.Source, cfg []simfmt.Config, steps int, seeds []uint64, kind walk.Kind) (result, error) {
	paths, err := walk.Traces(steps, seeds, kind)
	if err != nil {
		return result{}, err
	}
	single, err := walk.Trace(src, steps, kind)
	if err != nil {
		return result{}, err
	}
	cfg = append(cfg, simfmt.Config{Key: "kind", Value: kind.String()})
	var recs []*simfmt.Record
	for i, p := range paths {
		x, y := p.End()
		var maxDist float64
		for j := range p.X {
			maxDist = math.Max(maxDist, math.Hypot(p.X[j], p.Y[j]))
		}
		recs = append(recs, &simfmt.Record{
			Config: cfg,
			Name:   fmt.Sprintf("Trace/seed=%d", seeds[i]),
			N:      p.Len(),
			Values: []simfmt.Value{
				{Value: math.Hypot(x, y), Unit: simunit.Qualify("end", simunit.Distance)},
				{Value: maxDist, Unit: simunit.Qualify("max", simunit.Distance)},
			},
		})
	}
	return result{records: recs, figures: traceFigures(single, paths, seeds)}, nil
}

func (a *app) poissonCmd() *cobra.Command {
	var experiments, flips int
	var p float64
	cmd := &cobra.Command{
		Use:   "poisson",
		Short: "Head counts of coin-flip experiments against the Poisson PMF",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().IntVar(&experiments, "experiments", 10000, "number of experiments")
	cmd.Flags().IntVar(&flips, "flips", 100, "coin flips per experiment")
	cmd.Flags().Float64Var(&p, "p", 0.08, "probability of heads")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a.log.Debug().Int("experiments", experiments).Int("flips", flips).Float64("p", p).Msg("poisson")
		res, cmp, err := runPoisson(a.source(), a.baseConfig("poisson"), experiments, flips, p)
		if err != nil {
			return err
		}
		if !cmp.MeanOK() {
			a.log.Warn().Float64("mean", cmp.Summary.Mean).Float64("lambda", cmp.Lambda).Msg("mean outside tolerance")
		}
		if !cmp.VarianceOK() {
			a.log.Warn().Float64("var", cmp.Summary.Variance).Float64("binomial", cmp.BinomialVariance).Msg("variance outside tolerance")
		}
		if !cmp.PoissonVarianceOK() {
			a.log.Debug().Float64("var", cmp.Summary.Variance).Float64("lambda", cmp.Lambda).Msg("variance distinguishable from Poisson")
		}
		return a.emit(res)
	}
	return cmd
}

func runPoisson(src *simrand.Source, cfg []simfmt.Config, experiments, flips int, p float64) (result, poisson.Comparison, error) {
	heads, err := poisson.CoinFlips(src, experiments, flips, p)
	if err != nil {
		return result{}, poisson.Comparison{}, err
	}
	cmp, err := poisson.Compare(heads, flips, p)
	if err != nil {
		return result{}, poisson.Comparison{}, err
	}
	rec := &simfmt.Record{
		Config: cfg,
		Name:   fmt.Sprintf("Poisson/flips=%d/p=%g", flips, p),
		N:      experiments,
		Values: []simfmt.Value{
			{Value: cmp.Summary.Mean, Unit: simunit.Qualify(simunit.Mean, simunit.Heads)},
			{Value: cmp.Summary.Variance, Unit: simunit.Qualify(simunit.Variance, simunit.Heads)},
			{Value: cmp.Lambda, Unit: simunit.Lambda},
			{Value: cmp.BinomialVariance, Unit: simunit.Qualify("binomial", simunit.Variance)},
			{Value: cmp.MaxPMFError(), Unit: simunit.Qualify("maxerr", simunit.Prob)},
		},
	}
	figs, err := poissonFigures(cmp)
	if err != nil {
		return result{}, poisson.Comparison{}, err
	}
	return result{records: []*simfmt.Record{rec}, figures: figs}, cmp, nil
}

func (a *app) waitCmd() *cobra.Command {
	var flips []int
	var p float64
	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Waiting times between successes in Bernoulli sequences",
		Long: `Wait flips one sequence of coins per value of -flips and compares the
waiting times between heads with the geometric mean (1-p)/p and the
exponential mean 1/p.`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().IntSliceVar(&flips, "flips", []int{1000, 1000000}, "sequence `lengths`")
	cmd.Flags().Float64Var(&p, "p", 0.08, "probability of success")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a.log.Debug().Ints("flips", flips).Float64("p", p).Msg("wait")
		res, err := runWait(a.source(), a.baseConfig("wait"), flips, p)
		if err != nil {
			return err
		}
		for _, rec := range res.records {
			if rec.N == 0 {
				a.log.Warn().Str("record", rec.Name).Msg("fewer than two successes")
			}
		}
		return a.emit(res)
	}
	return cmd
}

func runWait(src *simrand.Source, cfg []simfmt.Config, flips []int, p float64) (result, error) {
	if len(flips) == 0 {
		return result{}, fmt.Errorf("no sequence lengths")
	}
	var res result
	for _, n := range flips {
		exp, err := waiting.Run(src, n, p)
		if err != nil {
			return result{}, err
		}
		res.records = append(res.records, &simfmt.Record{
			Config: cfg,
			Name:   fmt.Sprintf("Wait/flips=%d/p=%g", n, p),
			N:      exp.Stats.N,
			Values: []simfmt.Value{
				{Value: float64(exp.Successes), Unit: simunit.Successes},
				{Value: exp.Stats.Mean, Unit: simunit.Qualify(simunit.Mean, simunit.Failures)},
				{Value: exp.Stats.StdDev, Unit: simunit.Qualify(simunit.StdDev, simunit.Failures)},
				{Value: exp.Stats.GeometricMean, Unit: simunit.Qualify("geometric", simunit.Failures)},
				{Value: exp.Stats.ExponentialMean, Unit: simunit.Qualify("exponential", simunit.Failures)},
			},
		})
		res.figures = append(res.figures, waitFigures(exp)...)
	}
	return res, nil
}
