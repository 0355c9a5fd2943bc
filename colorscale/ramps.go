// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colorscale

import "image/color"

// starColors runs from red through yellow and white to blue, the
// apparent color of stars as they get hotter.
var starColors = []color.RGBA{
	MustHex("#ed1b25"), MustHex("#fff200"), MustHex("#ffffff"),
	MustHex("#00aeef"), MustHex("#525ccc"),
}

// Temperature is the effective-temperature ramp for stars, in kelvin.
func Temperature() Piecewise {
	return Piecewise{
		Domain: []float64{3200, 6000, 9000, 15000, 32000},
		Colors: starColors,
	}
}

// Altitude is the barometric-altitude ramp for aircraft, in feet.
func Altitude() Piecewise {
	return Piecewise{
		Domain: []float64{0, 16000, 32000, 40000, 48000},
		Colors: starColors,
	}
}

// Diverging returns a blue-white-red ramp through 0 over [min, max].
// min is forced below 0 and max above it so the ramp stays ordered.
func Diverging(min, max float64) Piecewise {
	if min >= 0 {
		min = -1e-9
	}
	if max <= 0 {
		max = 1e-9
	}
	return Piecewise{
		Domain: []float64{min, 0, max},
		Colors: []color.RGBA{{0, 51, 255, 0xff}, MustHex("#f5f5f5"), {255, 57, 57, 0xff}},
	}
}

// Categories returns an Ordinal over Category10 with every color
// faded toward white by fade.
func Categories(fade float64) *Ordinal {
	pal := make([]color.RGBA, len(Category10))
	for i, c := range Category10 {
		pal[i] = Fade(c, fade)
	}
	return &Ordinal{Palette: pal}
}
