// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stochsim/stochsim/param"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig(strings.NewReader("font_family: Noto Sans CJK JP\nwidth: 800\npalette: [red, blue]\n"))
	require.NoError(t, err)
	assert.Equal(t, "Noto Sans CJK JP", cfg.FontFamily)
	assert.Equal(t, 800.0, cfg.Width)
	assert.Equal(t, 480.0, cfg.Height)
	assert.Equal(t, []string{"red", "blue"}, cfg.Palette)

	_, err = LoadConfig(strings.NewReader("colour: red\n"))
	assert.Error(t, err)

	_, err = LoadConfig(strings.NewReader("width: -1\nfont_size: 0\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, param.ErrInvalid))
	assert.Contains(t, err.Error(), "width")
	assert.Contains(t, err.Error(), "font_size")
}

func TestDefaultPalette(t *testing.T) {
	cfg := DefaultConfig()
	require.Len(t, cfg.Palette, len(Set1_9))
	assert.Equal(t, "rgb(228,26,28)", cfg.Palette[0])
}

// countElements parses an SVG document and counts elements by name.
func countElements(t *testing.T, doc []byte) map[string]int {
	t.Helper()
	counts := make(map[string]int)
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err, "malformed SVG:\n%s", doc)
		if se, ok := tok.(xml.StartElement); ok {
			counts[se.Name.Local]++
		}
	}
	return counts
}

func TestRender(t *testing.T) {
	fig := Figure{
		Title:  "MSD <vs> steps",
		XLabel: "steps",
		YLabel: "MSD",
		Series: []Series{
			{Label: "simulated", Kind: Scatter, X: []float64{1000, 2000, 3000}, Y: []float64{2010, 3990, 6050}},
			{Label: "fit", Kind: Line, X: []float64{0, 3000}, Y: []float64{0, 6000}},
		},
	}
	hist := Figure{
		Title:  "waiting times",
		LogY:   true,
		Series: []Series{{Label: "counts", Kind: Bars, Width: 1, X: []float64{0, 1, 2, 3}, Y: []float64{10, 0, 4, 1}}},
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, DefaultConfig(), 2, fig, hist))

	counts := countElements(t, buf.Bytes())
	assert.Equal(t, 1, counts["svg"])
	assert.Equal(t, 3, counts["circle"])
	// Two frames, one line and three drawable bars (zero is skipped
	// on a log scale).
	assert.Equal(t, 2+1+3, counts["path"])
	// One background plus one key swatch per labeled series.
	assert.Equal(t, 1+3, counts["rect"])
	assert.Contains(t, buf.String(), "MSD &lt;vs&gt; steps")
	assert.Contains(t, buf.String(), `width="1280" height="480"`)
}

func TestRenderGrid(t *testing.T) {
	fig := Figure{Series: []Series{{Kind: Line, X: []float64{0, 1}, Y: []float64{0, 1}}}}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, DefaultConfig(), 2, fig, fig, fig))
	assert.Contains(t, buf.String(), `width="1280" height="960"`)
	assert.Equal(t, 3, strings.Count(buf.String(), "<g transform="))
}

func TestRenderEqualAxes(t *testing.T) {
	fig := Figure{
		EqualAxes: true,
		Series:    []Series{{Kind: Line, X: []float64{0, 10}, Y: []float64{0, 1}}},
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, DefaultConfig(), 1, fig))
	countElements(t, buf.Bytes())
}

func TestRenderErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, DefaultConfig(), 1))

	bad := Figure{Series: []Series{{X: []float64{1, 2}, Y: []float64{1}}}}
	assert.Error(t, Render(&buf, DefaultConfig(), 1, bad))

	cfg := DefaultConfig()
	cfg.Palette = nil
	err := Render(&buf, cfg, 1, Figure{})
	assert.True(t, errors.Is(err, param.ErrInvalid))
}

func TestEmptyFigure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, DefaultConfig(), 1, Figure{Title: "empty"}))
	counts := countElements(t, buf.Bytes())
	assert.Equal(t, 1, counts["path"])
}
