// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colorscale

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func between(t *testing.T, a, b, c uint8) {
	t.Helper()
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	assert.True(t, int(c) >= int(lo)-1 && int(c) <= int(hi)+1, "%d not in [%d, %d]", c, lo, hi)
}

func TestPiecewiseStops(t *testing.T) {
	ramp := Temperature()
	for i, d := range ramp.Domain {
		assert.Equal(t, ramp.Colors[i], ramp.Color(d), "stop %v", d)
	}
	assert.Equal(t, ramp.Colors[0], ramp.Color(1000))
	assert.Equal(t, ramp.Colors[4], ramp.Color(50000))
	assert.Equal(t, Missing, ramp.Color(math.NaN()))

	mid := ramp.Color(4600)
	a, b := ramp.Colors[0], ramp.Colors[1]
	between(t, a.R, b.R, mid.R)
	between(t, a.G, b.G, mid.G)
	between(t, a.B, b.B, mid.B)
	assert.NotEqual(t, a, mid)
	assert.NotEqual(t, b, mid)
}

func TestDiverging(t *testing.T) {
	d := Diverging(-3, 5)
	assert.Equal(t, MustHex("#f5f5f5"), d.Color(0))
	assert.Equal(t, color.RGBA{0, 51, 255, 255}, d.Color(-3))
	assert.Equal(t, color.RGBA{255, 57, 57, 255}, d.Color(5))

	// Degenerate extents stay ordered.
	d = Diverging(1, 2)
	assert.Less(t, d.Domain[0], d.Domain[1])
}

func TestSequentialLog(t *testing.T) {
	s := Sequential{Min: 1, Max: 1000, Log: true, Colors: Viridis}
	assert.Equal(t, Viridis[0], s.Color(1))
	assert.Equal(t, Viridis[len(Viridis)-1], s.Color(1000))
	assert.Equal(t, Missing, s.Color(0))
	assert.Equal(t, Missing, s.Color(-5))
	assert.Equal(t, Viridis[0], s.Color(0.5))

	lin := Sequential{Min: 0, Max: 9, Colors: Viridis}
	for i := range Viridis {
		assert.Equal(t, Viridis[i], lin.Color(float64(i)))
	}
}

func TestOrdinal(t *testing.T) {
	o := &Ordinal{Palette: Category10[:2]}
	assert.Equal(t, Category10[0], o.Color("GF01"))
	assert.Equal(t, Category10[1], o.Color("GF02"))
	assert.Equal(t, Category10[0], o.Color("GF01"))
	assert.Equal(t, Category10[0], o.Color("GF03"))

	faded := Categories(0.6).Color("x")
	c := Category10[0]
	assert.Greater(t, faded.R, c.R)
	assert.Greater(t, faded.G, c.G)
	assert.GreaterOrEqual(t, faded.B, c.B)
}

func TestHex(t *testing.T) {
	c, err := ParseHex("#ed1b25")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xed, 0x1b, 0x25, 0xff}, c)
	assert.Equal(t, "#ed1b25", Hex(c))

	c, err = ParseHex("#fff")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, c)

	for _, bad := range []string{"", "#12", "#zzzzzz", "#1234567"} {
		_, err := ParseHex(bad)
		assert.Error(t, err, bad)
	}
}
