// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simunit

import "strings"

// Units of the statistics reported by stochsim.
const (
	Steps     = "steps"
	Walks     = "walks"
	Flips     = "flips"
	Heads     = "heads"
	Successes = "successes"
	Failures  = "failures"
	Samples   = "samples"

	MSD      = "msd"
	Slope    = "slope"
	Distance = "distance"
	Mean     = "mean"
	Variance = "var"
	StdDev   = "stddev"
	Lambda   = "lambda"
	Prob     = "prob"
)

var counts = map[string]bool{
	Steps: true, Walks: true, Flips: true, Heads: true,
	Successes: true, Failures: true, Samples: true,
}

// IsCount reports whether unit counts discrete things. Values in
// count units are integral and are printed exactly.
//
// A unit qualified by a statistic, such as "mean-heads", is not a
// count.
func IsCount(unit string) bool {
	return counts[unit]
}

// Qualify returns unit prefixed by stat, as in "mean-heads".
func Qualify(stat, unit string) string {
	return stat + "-" + unit
}

// Split splits a qualified unit into its statistic and base unit. If
// unit is not qualified, stat is "".
func Split(unit string) (stat, base string) {
	if i := strings.IndexByte(unit, '-'); i > 0 {
		return unit[:i], unit[i+1:]
	}
	return "", unit
}
