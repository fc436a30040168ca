// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simunit formats simulation statistics for people.
//
// Values are printed with at least three significant digits and an SI
// prefix, so 100000 walks prints as "100k" and a mean square
// displacement of 2012.7 prints as "2.01k". Count units are printed
// exactly.
package simunit

import (
	"fmt"
	"math"
	"strconv"
)

// A Scaler is a scaling factor and precision chosen for a set of
// numbers.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // SI prefix
}

// Format formats val in s and appends the prefix.
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Prefix...)
	return string(buf)
}

// Exact is a Scaler that formats numbers with the smallest number of
// digits that represent the exact value and no prefix. It is used for
// counts and for machine-readable output.
var Exact = Scaler{-1, 1, ""}

type prefix struct {
	factor float64
	name   string
	// Smallest values printed as 100, 10.0 and 1.00 at this
	// prefix.
	t100, t10, t1 float64
}

var prefixes = mkPrefixes()

func mkPrefixes() []prefix {
	// Derive the thresholds by parsing the rounded representation
	// so they agree exactly with how AppendFloat rounds.
	var out []prefix
	exp := 12
	for _, p := range []string{"T", "G", "M", "k", "", "m", "µ", "n"} {
		t100, _ := strconv.ParseFloat(fmt.Sprintf("99.95e%d", exp), 64)
		t10, _ := strconv.ParseFloat(fmt.Sprintf("9.995e%d", exp), 64)
		t1, _ := strconv.ParseFloat(fmt.Sprintf(".9995e%d", exp), 64)
		out = append(out, prefix{math.Pow(10, float64(exp)), p, t100, t10, t1})
		exp -= 3
	}
	return out
}

// Scale formats val with at least three significant digits and an SI
// prefix.
func Scale(val float64) string {
	return CommonScale([]float64{val}).Format(val)
}

// CommonScale returns a Scaler that shows at least three significant
// digits for every value in vals. NaN and infinite values are ignored.
func CommonScale(vals []float64) Scaler {
	// The scale is set by the non-zero value closest to zero.
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if min == 0 || v < min {
			min = v
		}
	}
	if min == 0 {
		return Scaler{2, 1, ""}
	}

	for i, p := range prefixes {
		last := i == len(prefixes)-1
		switch {
		case min >= p.t100:
			return Scaler{0, p.factor, p.name}
		case min >= p.t10:
			return Scaler{1, p.factor, p.name}
		case min >= p.t1 || last:
			return Scaler{2, p.factor, p.name}
		}
	}
	panic("not reachable")
}

// ScalerFor returns the Scaler to use for vals measured in unit.
func ScalerFor(unit string, vals []float64) Scaler {
	if IsCount(unit) {
		return Exact
	}
	return CommonScale(vals)
}
