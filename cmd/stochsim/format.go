// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/goccy/go-json"

	"github.com/stochsim/stochsim/simfmt"
	"github.com/stochsim/stochsim/simunit"
)

// writeRecords writes recs to w in format.
func writeRecords(w io.Writer, format string, recs []*simfmt.Record) error {
	switch format {
	case "records":
		sw := simfmt.NewWriter(w)
		for _, rec := range recs {
			if err := sw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	case "json":
		return writeJSON(w, recs)
	case "text":
		return writeText(w, recs)
	}
	return fmt.Errorf("unknown format %q", format)
}

var (
	nameColor   = color.New(color.Bold)
	configColor = color.New(color.FgCyan)
	nanColor    = color.New(color.FgYellow)
)

// writeText writes recs as an aligned table. Each run of records
// with the same configuration is preceded by that configuration.
func writeText(w io.Writer, recs []*simfmt.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	var last []simfmt.Config
	for i, rec := range recs {
		if i == 0 || !sameConfig(last, rec.Config) {
			if err := tw.Flush(); err != nil {
				return err
			}
			if i > 0 {
				fmt.Fprintln(w)
			}
			for _, c := range rec.Config {
				fmt.Fprintf(w, "%s %s\n", configColor.Sprint(c.Key+":"), c.Value)
			}
			fmt.Fprintln(w)
			last = rec.Config
		}
		fmt.Fprintf(tw, "%s\t%d", nameColor.Sprint(rec.Name), rec.N)
		for _, v := range rec.Values {
			fmt.Fprintf(tw, "\t%s", formatValue(v))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// formatValue formats a measurement with an SI prefix, followed by its
// base unit and, for a qualified unit, the statistic in parentheses.
func formatValue(v simfmt.Value) string {
	stat, base := simunit.Split(v.Unit)
	var num string
	if math.IsNaN(v.Value) {
		num = nanColor.Sprint("NaN")
	} else {
		num = simunit.ScalerFor(v.Unit, []float64{v.Value}).Format(v.Value)
	}
	if stat == "" {
		return num + " " + base
	}
	return fmt.Sprintf("%s %s (%s)", num, base, stat)
}

func sameConfig(a, b []simfmt.Config) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// jsonRecord is the JSON form of a simfmt.Record. NaN measurements,
// which JSON cannot represent, are null.
type jsonRecord struct {
	Name   string            `json:"name"`
	N      int               `json:"n"`
	Config map[string]string `json:"config,omitempty"`
	Values []jsonValue       `json:"values"`
}

type jsonValue struct {
	Value *float64 `json:"value"`
	Unit  string   `json:"unit"`
	Stat  string   `json:"stat,omitempty"`
}

func toJSON(rec *simfmt.Record) jsonRecord {
	out := jsonRecord{Name: rec.Name, N: rec.N, Values: []jsonValue{}}
	if len(rec.Config) > 0 {
		out.Config = make(map[string]string, len(rec.Config))
		for _, c := range rec.Config {
			out.Config[c.Key] = c.Value
		}
	}
	for _, v := range rec.Values {
		stat, base := simunit.Split(v.Unit)
		jv := jsonValue{Unit: base, Stat: stat}
		if !math.IsNaN(v.Value) && !math.IsInf(v.Value, 0) {
			val := v.Value
			jv.Value = &val
		}
		out.Values = append(out.Values, jv)
	}
	return out
}

// writeJSON writes recs as a JSON array.
func writeJSON(w io.Writer, recs []*simfmt.Record) error {
	out := make([]jsonRecord, len(recs))
	for i, rec := range recs {
		out[i] = toJSON(rec)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
