// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/stochsim/stochsim/param"
)

// Set1_9 is the qualitative Set1 palette from Color Brewer.
var Set1_9 = []color.Color{color.RGBA{228, 26, 28, 255}, color.RGBA{55, 126, 184, 255}, color.RGBA{77, 175, 74, 255}, color.RGBA{152, 78, 163, 255}, color.RGBA{255, 127, 0, 255}, color.RGBA{255, 255, 51, 255}, color.RGBA{166, 86, 40, 255}, color.RGBA{247, 129, 191, 255}, color.RGBA{153, 153, 153, 255}}

// Config controls how figures are rendered. It is passed to every
// Render call; there is no package-level rendering state.
type Config struct {
	// Width and Height are the size of one panel in pixels.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Margin is the space around the plot area of a panel, which
	// holds the title, axis labels and tick labels.
	Margin float64 `yaml:"margin"`

	// FontFamily is a CSS font-family list. Set it to a font with
	// CJK coverage to render CJK labels.
	FontFamily string `yaml:"font_family"`
	FontSize   int    `yaml:"font_size"`
	TitleSize  int    `yaml:"title_size"`

	// Palette is the sequence of CSS colors assigned to series
	// that don't set their own color.
	Palette []string `yaml:"palette"`

	Background string `yaml:"background"`
}

// DefaultConfig returns the default rendering configuration.
func DefaultConfig() Config {
	pal := make([]string, len(Set1_9))
	for i, c := range Set1_9 {
		pal[i] = svgColor(c)
	}
	return Config{
		Width:      640,
		Height:     480,
		Margin:     56,
		FontFamily: "sans-serif",
		FontSize:   12,
		TitleSize:  14,
		Palette:    pal,
		Background: "white",
	}
}

// LoadConfig reads a YAML rendering configuration from r. Fields not
// present in r keep their DefaultConfig values. Unknown fields are an
// error.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("plot: parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that c can be rendered.
func (c Config) Validate() error {
	errs := []error{
		param.PositiveFloat("width", c.Width),
		param.PositiveFloat("height", c.Height),
		param.Positive("font_size", c.FontSize),
		param.Positive("title_size", c.TitleSize),
	}
	if !(c.Margin >= 0) || 2*c.Margin >= c.Width || 2*c.Margin >= c.Height {
		errs = append(errs, &param.Error{Name: "margin", Value: c.Margin, Want: "non-negative and less than half the panel size"})
	}
	if len(c.Palette) == 0 {
		errs = append(errs, &param.Error{Name: "palette", Value: "[]", Want: "non-empty"})
	}
	if err := param.Check(errs...); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	return nil
}

func svgColor(c color.Color) string {
	c2 := color.NRGBAModel.Convert(c).(color.NRGBA)
	if c2.A == 255 {
		return fmt.Sprintf("rgb(%d,%d,%d)", c2.R, c2.G, c2.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%f)", c2.R, c2.G, c2.B, float64(c2.A)/255)
}
