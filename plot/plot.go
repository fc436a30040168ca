// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot renders simulation results as SVG.
//
// Figures are built from plain coordinate slices, so the simulation
// packages never depend on this package. All styling comes from the
// Config passed to Render.
package plot

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"

	"github.com/aclements/go-moremath/scale"

	"github.com/stochsim/stochsim/simunit"
)

// Kind is how a Series is drawn.
type Kind int

const (
	// Line connects the points of a series in order.
	Line Kind = iota
	// Scatter draws a marker at each point.
	Scatter
	// Bars draws a bar of width Series.Width centered on each X,
	// rising from the baseline to Y.
	Bars
)

// A Series is one set of points in a Figure.
type Series struct {
	Label string
	Kind  Kind
	X, Y  []float64

	// Width is the width of each bar in data units. It is used
	// only by Bars.
	Width float64

	// Color overrides the palette color. It is any CSS color.
	Color string

	// Size is the marker radius of a Scatter series in pixels.
	// Zero selects a default.
	Size float64
}

// A Figure is a single panel.
type Figure struct {
	Title, XLabel, YLabel string
	Series                []Series

	// LogY plots Y on a log10 scale. Non-positive values are not
	// drawn.
	LogY bool

	// EqualAxes makes one data unit the same length on both axes.
	EqualAxes bool
}

// Render writes figs to w as one SVG document, laid out in a grid
// with cols columns. If cols <= 0, all figures are in one row.
func Render(w io.Writer, cfg Config, cols int, figs ...Figure) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(figs) == 0 {
		return fmt.Errorf("plot: no figures")
	}
	if cols <= 0 || cols > len(figs) {
		cols = len(figs)
	}
	rows := (len(figs) + cols - 1) / cols

	body := new(bytes.Buffer)
	for i, fig := range figs {
		left := float64(i%cols) * cfg.Width
		top := float64(i/cols) * cfg.Height
		fmt.Fprintf(body, "<g transform=\"translate(%g %g)\">\n", left, top)
		if err := renderPanel(body, cfg, fig); err != nil {
			return err
		}
		body.WriteString("</g>\n")
	}

	width, height := float64(cols)*cfg.Width, float64(rows)*cfg.Height
	_, err := fmt.Fprintf(w,
		`<svg version="1.1" width="%g" height="%g" xmlns="http://www.w3.org/2000/svg" font-family="%s" font-size="%d">
<rect width="100%%" height="100%%" fill="%s" />
%s</svg>
`,
		width, height, html.EscapeString(cfg.FontFamily), cfg.FontSize,
		html.EscapeString(cfg.Background), body.Bytes())
	return err
}

// Extents is the data-space bounding box of a figure.
type Extents struct {
	X, Y scale.Linear
	set  bool
}

func (e *Extents) add(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	if !e.set {
		e.X.Min, e.X.Max = x, x
		e.Y.Min, e.Y.Max = y, y
		e.set = true
		return
	}
	expandScale(&e.X, x, x)
	expandScale(&e.Y, y, y)
}

func expandScale(s *scale.Linear, min, max float64) {
	s.Min = math.Min(s.Min, min)
	s.Max = math.Max(s.Max, max)
}

// padScale widens s by frac on each side, and gives a degenerate
// scale a unit range.
func padScale(s *scale.Linear, frac float64) {
	if s.Min == s.Max {
		s.Min, s.Max = s.Min-0.5, s.Max+0.5
		return
	}
	d := (s.Max - s.Min) * frac
	s.Min, s.Max = s.Min-d, s.Max+d
}

// figureExtents returns the data extents of fig, with Y already in
// log10 space if fig.LogY is set.
func figureExtents(fig Figure) Extents {
	var ext Extents
	for _, s := range fig.Series {
		for i := range s.X {
			y, ok := fig.yValue(s.Y[i])
			if !ok {
				continue
			}
			if s.Kind == Bars {
				ext.add(s.X[i]-s.Width/2, y)
				ext.add(s.X[i]+s.Width/2, y)
				if !fig.LogY {
					// Bars rise from zero.
					ext.add(s.X[i], 0)
				}
				continue
			}
			ext.add(s.X[i], y)
		}
	}
	if !ext.set {
		ext.X = scale.Linear{Min: 0, Max: 1}
		ext.Y = scale.Linear{Min: 0, Max: 1}
	}
	return ext
}

func (fig Figure) yValue(y float64) (float64, bool) {
	if !fig.LogY {
		return y, true
	}
	if !(y > 0) {
		return 0, false
	}
	return math.Log10(y), true
}

// equalize widens the narrower axis of ext so that data units have
// the same pixel length on both axes of a w×h plot area.
func equalize(ext *Extents, w, h float64) {
	xr, yr := ext.X.Max-ext.X.Min, ext.Y.Max-ext.Y.Min
	if xr/w > yr/h {
		grow := (xr*h/w - yr) / 2
		ext.Y.Min, ext.Y.Max = ext.Y.Min-grow, ext.Y.Max+grow
	} else {
		grow := (yr*w/h - xr) / 2
		ext.X.Min, ext.X.Max = ext.X.Min-grow, ext.X.Max+grow
	}
}

func renderPanel(w *bytes.Buffer, cfg Config, fig Figure) error {
	for i, s := range fig.Series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("plot: series %d (%q) has %d x values and %d y values", i, s.Label, len(s.X), len(s.Y))
		}
	}

	m := cfg.Margin
	left, right := m, cfg.Width-m/2
	top, bot := m/2+float64(cfg.TitleSize), cfg.Height-m

	ext := figureExtents(fig)
	padScale(&ext.X, 0.03)
	padScale(&ext.Y, 0.05)
	if fig.EqualAxes {
		equalize(&ext, right-left, bot-top)
	}
	xOut := scale.Linear{Min: left, Max: right}
	yOut := scale.Linear{Min: bot, Max: top}
	x := scale.QQ{Src: &ext.X, Dest: &xOut}
	y := scale.QQ{Src: &ext.Y, Dest: &yOut}

	// Frame and title.
	fmt.Fprintf(w, `  <path d="%s" fill="none" stroke="black" stroke-width="1px" />`+"\n", svgPathRect(left, top, right, bot))
	if fig.Title != "" {
		fmt.Fprintf(w, `  <text x="%f" y="%f" font-size="%d" text-anchor="middle">%s</text>`+"\n", mid(left, right), m/2, cfg.TitleSize, html.EscapeString(fig.Title))
	}

	// Axis labels at the extremes of each axis.
	fy := float64(cfg.FontSize)
	xs := simunit.CommonScale([]float64{ext.X.Min, ext.X.Max})
	fmt.Fprintf(w, `  <text x="%f" y="%f" text-anchor="start">%s</text>`+"\n", left, bot+fy*5/4, xs.Format(ext.X.Min))
	fmt.Fprintf(w, `  <text x="%f" y="%f" text-anchor="end">%s</text>`+"\n", right, bot+fy*5/4, xs.Format(ext.X.Max))
	ys := simunit.CommonScale([]float64{yLabel(fig, ext.Y.Min), yLabel(fig, ext.Y.Max)})
	fmt.Fprintf(w, `  <text x="%f" y="%f" text-anchor="end">%s</text>`+"\n", left-fy/2, bot, ys.Format(yLabel(fig, ext.Y.Min)))
	fmt.Fprintf(w, `  <text x="%f" y="%f" text-anchor="end" dy=".8em">%s</text>`+"\n", left-fy/2, top, ys.Format(yLabel(fig, ext.Y.Max)))
	if fig.XLabel != "" {
		fmt.Fprintf(w, `  <text x="%f" y="%f" text-anchor="middle">%s</text>`+"\n", mid(left, right), bot+fy*5/2, html.EscapeString(fig.XLabel))
	}
	if fig.YLabel != "" {
		fmt.Fprintf(w, `  <text text-anchor="middle" transform="translate(%f %f) rotate(-90)">%s</text>`+"\n", left-fy*2, mid(top, bot), html.EscapeString(fig.YLabel))
	}

	// Series.
	for i, s := range fig.Series {
		color := s.Color
		if color == "" {
			color = cfg.Palette[i%len(cfg.Palette)]
		}
		color = html.EscapeString(color)
		fmt.Fprintf(w, "  <g><title>%s</title>\n", html.EscapeString(s.Label))
		switch s.Kind {
		case Line:
			renderLine(w, fig, s, x, y, color)
		case Scatter:
			r := s.Size
			if r == 0 {
				r = 3
			}
			for j := range s.X {
				yv, ok := fig.yValue(s.Y[j])
				if !ok {
					continue
				}
				fmt.Fprintf(w, `    <circle cx="%f" cy="%f" r="%g" fill="%s" />`+"\n", x.Map(s.X[j]), y.Map(yv), r, color)
			}
		case Bars:
			base := 0.0
			if fig.LogY {
				base = ext.Y.Min
			}
			for j := range s.X {
				yv, ok := fig.yValue(s.Y[j])
				if !ok {
					continue
				}
				l, r := x.Map(s.X[j]-s.Width/2), x.Map(s.X[j]+s.Width/2)
				fmt.Fprintf(w, `    <path d="%s" fill="%s" fill-opacity="0.7" stroke="black" stroke-width="0.5px" />`+"\n", svgPathRect(l, y.Map(yv), r, y.Map(base)), color)
			}
		default:
			return fmt.Errorf("plot: series %d (%q) has unknown kind %d", i, s.Label, s.Kind)
		}
		w.WriteString("  </g>\n")
	}

	renderKey(w, cfg, fig, right, top)
	return nil
}

func renderLine(w *bytes.Buffer, fig Figure, s Series, x, y scale.QQ, color string) {
	var path bytes.Buffer
	cmd := byte('M')
	for j := range s.X {
		yv, ok := fig.yValue(s.Y[j])
		if !ok {
			// Break the line at undrawable points.
			cmd = 'M'
			continue
		}
		fmt.Fprintf(&path, "%c%f %f", cmd, x.Map(s.X[j]), y.Map(yv))
		cmd = 'L'
	}
	if path.Len() == 0 {
		return
	}
	fmt.Fprintf(w, `    <path d="%s" fill="none" stroke="%s" stroke-width="1.5px" />`+"\n", path.Bytes(), color)
}

// renderKey draws the legend for labeled series in the top right
// corner of the plot area.
func renderKey(w *bytes.Buffer, cfg Config, fig Figure, right, top float64) {
	fh := float64(cfg.FontSize) * 5 / 4
	row := 0
	for i, s := range fig.Series {
		if s.Label == "" {
			continue
		}
		color := s.Color
		if color == "" {
			color = cfg.Palette[i%len(cfg.Palette)]
		}
		cy := top + fh*(float64(row)+1)
		fmt.Fprintf(w, `  <rect x="%f" y="%f" width="10" height="10" fill="%s" />`+"\n", right-fh*8, cy-9, html.EscapeString(color))
		fmt.Fprintf(w, `  <text x="%f" y="%f">%s</text>`+"\n", right-fh*8+14, cy, html.EscapeString(s.Label))
		row++
	}
}

// yLabel returns the data value shown for a y coordinate in scale
// space.
func yLabel(fig Figure, v float64) float64 {
	if fig.LogY {
		return math.Pow(10, v)
	}
	return v
}

func mid(a, b float64) float64 {
	return (a + b) / 2
}

func svgPathRect(x1, y1, x2, y2 float64) string {
	return fmt.Sprintf("M%f %fH%fV%fH%fz", x1, y1, x2, y2, x1)
}
