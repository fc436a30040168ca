// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simfmt reads and writes simulation reports.
//
// A report is line oriented. Configuration lines have the form
// "key: value" and apply to every record that follows until the key
// is changed or deleted (with "key:"), so a value is never empty.
// Record lines have the form
//
//	Sim<name> <n> <value> <unit> [<value> <unit>...]
//
// where n is the number of trials the record summarizes. Any other
// line is ignored. For example
//
//	experiment: poisson
//	seed: 42
//
//	SimPoisson/lambda=8 10000 8.0213 mean 7.401 var 8 lambda
package simfmt

// A Record is one summarized experiment and its measurements.
type Record struct {
	// Config is the set of key/value pairs in effect for this
	// record, in the order the keys were first set.
	Config []Config

	// Name identifies the experiment, including any "/key=value"
	// parameters.
	Name string

	// N is the number of trials summarized by this record.
	N int

	// Values is this record's measurements and their units.
	Values []Value
}

// Config is a single key/value configuration pair.
type Config struct {
	Key, Value string
}

// Value is a single measurement and its unit.
type Value struct {
	Value float64
	Unit  string
}

// Clone makes a copy of r that shares no state with r.
func (r *Record) Clone() *Record {
	return &Record{
		Config: append([]Config(nil), r.Config...),
		Name:   r.Name,
		N:      r.N,
		Values: append([]Value(nil), r.Values...),
	}
}

// ConfigValue returns the value of configuration key.
func (r *Record) ConfigValue(key string) (string, bool) {
	for _, cfg := range r.Config {
		if cfg.Key == key {
			return cfg.Value, true
		}
	}
	return "", false
}

// Value returns the measurement for the given unit.
func (r *Record) Value(unit string) (float64, bool) {
	for _, v := range r.Values {
		if v.Unit == unit {
			return v.Value, true
		}
	}
	return 0, false
}

// NameParts returns the base name and the "/..." parameter parts of
// r.Name. Concatenating them reconstructs the name.
func (r *Record) NameParts() (base string, parts []string) {
	prev := -1
	for i := 0; i < len(r.Name); i++ {
		if r.Name[i] != '/' {
			continue
		}
		if prev < 0 {
			base = r.Name[:i]
		} else {
			parts = append(parts, r.Name[prev:i])
		}
		prev = i
	}
	if prev < 0 {
		return r.Name, nil
	}
	return base, append(parts, r.Name[prev:])
}
