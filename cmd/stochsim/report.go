// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stochsim/stochsim/simfmt"
)

func (a *app) reportCmd() *cobra.Command {
	var tagFile bool
	var filter string
	cmd := &cobra.Command{
		Use:   "report [inputs...]",
		Short: "Reformat records written with -format records",
		Long: `Report reads records from the named input files, or from stdin if
there are none, and writes them in the selected format. Malformed
record lines are logged and skipped.

The -filter query selects records and measurements. For example,

	experiment:poisson .unit:(mean-heads lambda)

keeps only the mean head count and λ of Poisson records. Keys are
.name, .fullname, .unit, /key for a name parameter and any
configuration key, including .file with -file-key. Values are
regular expressions. Matches combine with AND, OR, "-" (not) and
parentheses; "*" matches everything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := simfmt.NewFilter(filter)
			if err != nil {
				return fmt.Errorf("parsing -filter: %w", err)
			}
			recs, err := a.readReports(args, f, tagFile)
			if err != nil {
				return err
			}
			return a.emit(result{records: recs})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "*", "select records and units matching `query`")
	cmd.Flags().BoolVar(&tagFile, "file-key", false, `add a ".file" configuration key naming each record's input`)
	return cmd
}

func (a *app) readReports(paths []string, filter *simfmt.Filter, tagFile bool) ([]*simfmt.Record, error) {
	files := simfmt.Files{Paths: paths, AllowStdin: true, TagFile: tagFile}
	var recs []*simfmt.Record
	bad := 0
	for files.Scan() {
		rec, err := files.Record()
		if err != nil {
			// Non-fatal record parse error. Warn but keep going.
			a.log.Warn().Err(err).Msg("skipping record")
			bad++
			continue
		}
		rec = rec.Clone()
		if !filter.Apply(rec) {
			continue
		}
		recs = append(recs, rec)
	}
	if err := files.Err(); err != nil {
		return nil, err
	}
	a.log.Debug().Int("records", len(recs)).Int("skipped", bad).Msg("read reports")
	if len(recs) == 0 {
		return nil, fmt.Errorf("no matching records in input")
	}
	return recs, nil
}
