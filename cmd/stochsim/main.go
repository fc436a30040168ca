// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command stochsim simulates elementary stochastic processes and
// compares them with closed-form theory.
//
// Usage:
//
//	stochsim [flags] walk|msd|trace|poisson|wait [flags]
//	stochsim [flags] report [inputs...]
//
// Each experiment subcommand prints its summary records to stdout and,
// with -svg, renders its figures to an SVG file. The report subcommand
// reads records previously written with -format records and prints
// them again in the selected format.
//
// The output format is one of
//
//	text    - aligned, human-readable table (the default)
//	records - the simfmt report format, suitable for "stochsim report"
//	json    - a JSON array with one object per record
//
// Every run takes its randomness from a single generator seeded by
// -seed, so a run is reproducible given its flags.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stochsim/stochsim/plot"
	"github.com/stochsim/stochsim/simfmt"
	"github.com/stochsim/stochsim/simrand"
)

func main() {
	a := newApp(os.Stdout, os.Stderr)
	if err := a.root().Execute(); err != nil {
		a.log.Error().Err(err).Msg("stochsim failed")
		os.Exit(1)
	}
}

// app holds the global flags and output streams of one invocation.
type app struct {
	stdout, stderr io.Writer
	log            zerolog.Logger

	seed       uint64
	format     string
	svgPath    string
	plotConfig string
	svgCols    int
	verbose    bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		log:    newLogger(stderr, false),
	}
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
	}
	return zerolog.New(out).Level(level)
}

func (a *app) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "stochsim",
		Short:         "Simulate stochastic processes and compare them with theory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log = newLogger(a.stderr, a.verbose)
			switch a.format {
			case "text", "records", "json":
			default:
				return fmt.Errorf("unknown -format %q; want text, records or json", a.format)
			}
			return nil
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	f := root.PersistentFlags()
	f.Uint64Var(&a.seed, "seed", 42, "generator `seed`")
	f.StringVar(&a.format, "format", "text", "output `format`: text, records or json")
	f.StringVar(&a.svgPath, "svg", "", "write figures to SVG `file`")
	f.StringVar(&a.plotConfig, "plot-config", "", "read figure styling from YAML `file`")
	f.IntVar(&a.svgCols, "svg-cols", 2, "number of figure columns in the SVG")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.walkCmd(),
		a.msdCmd(),
		a.traceCmd(),
		a.poissonCmd(),
		a.waitCmd(),
		a.reportCmd(),
	)
	return root
}

// source returns a fresh generator seeded by -seed.
func (a *app) source() *simrand.Source {
	return simrand.New(a.seed)
}

// baseConfig returns the configuration shared by every record of an
// experiment.
func (a *app) baseConfig(experiment string) []simfmt.Config {
	return []simfmt.Config{
		{Key: "experiment", Value: experiment},
		{Key: "seed", Value: fmt.Sprint(a.seed)},
	}
}

// A result is the output of one experiment.
type result struct {
	records []*simfmt.Record
	figures []plot.Figure
}

// emit writes res in the selected format and renders its figures if
// -svg is set.
func (a *app) emit(res result) error {
	if err := writeRecords(a.stdout, a.format, res.records); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if a.svgPath == "" {
		return nil
	}
	if len(res.figures) == 0 {
		a.log.Warn().Str("svg", a.svgPath).Msg("nothing to plot")
		return nil
	}
	cfg, err := a.loadPlotConfig()
	if err != nil {
		return err
	}
	f, err := os.Create(a.svgPath)
	if err != nil {
		return err
	}
	if err := plot.Render(f, cfg, a.svgCols, res.figures...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.log.Info().Str("svg", a.svgPath).Int("figures", len(res.figures)).Msg("wrote figures")
	return nil
}

func (a *app) loadPlotConfig() (plot.Config, error) {
	if a.plotConfig == "" {
		return plot.DefaultConfig(), nil
	}
	f, err := os.Open(a.plotConfig)
	if err != nil {
		return plot.Config{}, err
	}
	defer f.Close()
	cfg, err := plot.LoadConfig(f)
	if err != nil {
		return plot.Config{}, fmt.Errorf("%s: %w", a.plotConfig, err)
	}
	a.log.Debug().Str("path", a.plotConfig).Str("font", cfg.FontFamily).Msg("loaded plot config")
	return cfg, nil
}
