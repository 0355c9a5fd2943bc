// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colorscale maps data values to colors: multi-stop ramps,
// sequential (optionally logarithmic) palettes and categorical
// palettes.
package colorscale

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-moremath/scale"
)

// Missing is the color for absent values.
var Missing = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}

// A Scale maps a value to a color.
type Scale interface {
	Color(v float64) color.RGBA
}

// blend interpolates from a to b. RGBGradient never interpolates
// within its first segment, so the gradient leads with a repeated a.
func blend(a, b color.RGBA, t float64) color.RGBA {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	g := palette.RGBGradient{Colors: []color.RGBA{a, a, b}}
	return toRGBA(g.Map(0.5 + t/2))
}

func toRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// Piecewise is a linear color ramp with one color per domain stop.
// Domain must be ascending and the same length as Colors. Values
// outside the domain take the end colors.
type Piecewise struct {
	Domain []float64
	Colors []color.RGBA
}

var _ Scale = Piecewise{}

// Color returns the color for v. NaN maps to Missing.
func (p Piecewise) Color(v float64) color.RGBA {
	n := len(p.Domain)
	switch {
	case math.IsNaN(v) || n == 0:
		return Missing
	case n == 1 || v <= p.Domain[0]:
		return p.Colors[0]
	case v >= p.Domain[n-1]:
		return p.Colors[n-1]
	}
	i := sort.SearchFloat64s(p.Domain, v)
	if p.Domain[i] == v {
		return p.Colors[i]
	}
	seg := scale.Linear{Min: p.Domain[i-1], Max: p.Domain[i], Clamp: true}
	return blend(p.Colors[i-1], p.Colors[i], seg.Map(v))
}

// Sequential maps [Min, Max] onto a gradient, linearly or
// logarithmically.
type Sequential struct {
	Min, Max float64

	// Log interpolates in log space. Min and Max must be positive;
	// non-positive values map to Missing.
	Log bool

	Colors []color.RGBA
}

var _ Scale = Sequential{}

func (s Sequential) Color(v float64) color.RGBA {
	if math.IsNaN(v) || len(s.Colors) == 0 {
		return Missing
	}
	lo, hi := s.Min, s.Max
	if s.Log {
		if v <= 0 || lo <= 0 || hi <= 0 {
			return Missing
		}
		v, lo, hi = math.Log(v), math.Log(lo), math.Log(hi)
	}
	t := scale.Linear{Min: lo, Max: hi, Clamp: true}.Map(v)
	return Gradient(s.Colors, t)
}

// Gradient returns the color at t in [0, 1] along evenly spaced
// colors.
func Gradient(colors []color.RGBA, t float64) color.RGBA {
	n := len(colors)
	switch {
	case n == 0:
		return Missing
	case n == 1 || t <= 0:
		return colors[0]
	case t >= 1:
		return colors[n-1]
	}
	f := t * float64(n-1)
	i := int(f)
	return blend(colors[i], colors[i+1], f-float64(i))
}

// Viridis anchors, sampled evenly from matplotlib's viridis map.
var Viridis = []color.RGBA{
	MustHex("#440154"), MustHex("#482878"), MustHex("#3e4989"),
	MustHex("#31688e"), MustHex("#26828e"), MustHex("#1f9e89"),
	MustHex("#35b779"), MustHex("#6ece58"), MustHex("#b5de2b"),
	MustHex("#fde725"),
}

// Category10 is the ten-color categorical palette.
var Category10 = []color.RGBA{
	MustHex("#1f77b4"), MustHex("#ff7f0e"), MustHex("#2ca02c"),
	MustHex("#d62728"), MustHex("#9467bd"), MustHex("#8c564b"),
	MustHex("#e377c2"), MustHex("#7f7f7f"), MustHex("#bcbd22"),
	MustHex("#17becf"),
}

// Ordinal assigns palette colors to keys in order of first use.
type Ordinal struct {
	Palette []color.RGBA
	index   map[string]int
}

// Color returns the color for key, assigning the next palette entry
// (cycling) if key is new.
func (o *Ordinal) Color(key string) color.RGBA {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	i, ok := o.index[key]
	if !ok {
		i = len(o.index)
		o.index[key] = i
	}
	return o.Palette[i%len(o.Palette)]
}

// Fade blends c toward white by t in [0, 1].
func Fade(c color.RGBA, t float64) color.RGBA {
	return blend(c, color.RGBA{0xff, 0xff, 0xff, 0xff}, t)
}

// Darken blends c toward black by t in [0, 1].
func Darken(c color.RGBA, t float64) color.RGBA {
	return blend(c, color.RGBA{0, 0, 0, 0xff}, t)
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses #rgb or #rrggbb.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}

// MustHex is like ParseHex but panics on error.
func MustHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHexes parses a list of colors.
func ParseHexes(ss []string) ([]color.RGBA, error) {
	out := make([]color.RGBA, len(ss))
	for i, s := range ss {
		c, err := ParseHex(s)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
