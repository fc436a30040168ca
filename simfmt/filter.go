// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simfmt

import (
	"strings"

	"github.com/stochsim/stochsim/simfmt/internal/query"
)

// A Filter selects records, and measurements within records, using a
// boolean query such as
//
//	experiment:poisson .unit:(mean-heads var-heads)
//
// A query is built from key:regexp matches, where the regexp is
// anchored at both ends. Keys are
//
//	.name     - the base name of a record, such as "Poisson"
//	.fullname - the full name, such as "Poisson/flips=100/p=0.08"
//	.unit     - the unit of a measurement
//	/key      - the value of a "/key=value" name parameter
//	key       - a configuration key
//
// Matches combine with AND (or juxtaposition), OR, "-" for negation,
// parentheses, and "*", which matches everything. key:(a b c) is
// shorthand for key:a OR key:b OR key:c.
type Filter struct {
	q query.Node
}

// NewFilter parses a filter query.
func NewFilter(q string) (*Filter, error) {
	n, err := query.Parse(q)
	if err != nil {
		return nil, err
	}
	return &Filter{n}, nil
}

// Match returns, for each value of rec, whether it matches f.
// Matches on keys other than .unit apply to all values alike.
func (f *Filter) Match(rec *Record) []bool {
	return f.match(rec, f.q)
}

func (f *Filter) match(rec *Record, n query.Node) []bool {
	out := make([]bool, len(rec.Values))
	switch n := n.(type) {
	case *query.Op:
		switch n.Kind {
		case query.Not:
			sub := f.match(rec, n.Args[0])
			for i := range out {
				out[i] = !sub[i]
			}
		case query.And:
			for i := range out {
				out[i] = true
			}
			for _, a := range n.Args {
				sub := f.match(rec, a)
				for i := range out {
					out[i] = out[i] && sub[i]
				}
			}
		case query.Or:
			for _, a := range n.Args {
				sub := f.match(rec, a)
				for i := range out {
					out[i] = out[i] || sub[i]
				}
			}
		}
	case *query.Match:
		if n.Key == ".unit" {
			for i, v := range rec.Values {
				out[i] = n.Match(v.Unit)
			}
			break
		}
		val, _ := recordKey(rec, n.Key)
		if n.Match(val) {
			for i := range out {
				out[i] = true
			}
		}
	}
	return out
}

// Apply removes the values of rec that don't match f and reports
// whether any remain.
func (f *Filter) Apply(rec *Record) bool {
	keep := f.Match(rec)
	j := 0
	for i, v := range rec.Values {
		if keep[i] {
			rec.Values[j] = v
			j++
		}
	}
	rec.Values = rec.Values[:j]
	return j > 0
}

// recordKey returns the value of a filter key other than .unit. A
// missing key has the value "".
func recordKey(rec *Record, key string) (string, bool) {
	switch {
	case key == ".name":
		base, _ := rec.NameParts()
		return base, true
	case key == ".fullname":
		return rec.Name, true
	case strings.HasPrefix(key, "/"):
		_, parts := rec.NameParts()
		for _, p := range parts {
			k, v, ok := strings.Cut(p[1:], "=")
			if ok && k == key[1:] {
				return v, true
			}
		}
		return "", false
	}
	return rec.ConfigValue(key)
}
