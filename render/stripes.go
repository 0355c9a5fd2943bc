// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vizlab/go-vizlab/colorscale"
	"github.com/vizlab/go-vizlab/delta"
)

// Stripes configures WriteStripes.
type Stripes struct {
	// RowHeight is the height of each series' strip in pixels and
	// StripeWidth the width of one time step.
	RowHeight, StripeWidth int

	// LabelWidth is the space reserved left of the strips for
	// series names.
	LabelWidth int

	// Label formats series names. If nil, names are used as is.
	Label func(string) string
}

// StripesImage draws one horizontal strip per series of d, one stripe
// per time step colored on the diverging ramp over d's extent.
// Missing values are drawn in colorscale.Missing.
func StripesImage(d delta.Dataset, opts Stripes) (*image.RGBA, error) {
	if len(d.Times) == 0 || len(d.Series) == 0 {
		return nil, errors.New("no values to draw")
	}
	if opts.RowHeight <= 0 || opts.StripeWidth <= 0 {
		return nil, errors.New("stripe size must be positive")
	}
	min, max, err := delta.Extent(d)
	if err != nil {
		return nil, err
	}
	ramp := colorscale.Diverging(min, max)

	// One pixel per value, scaled up afterwards.
	small := image.NewRGBA(image.Rect(0, 0, len(d.Times), len(d.Series)))
	for y, s := range d.Series {
		for x, v := range s.Values {
			small.SetRGBA(x, y, ramp.Color(v))
		}
	}

	w := opts.LabelWidth + len(d.Times)*opts.StripeWidth
	h := len(d.Series) * opts.RowHeight
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	strips := image.Rect(opts.LabelWidth, 0, w, h)
	draw.NearestNeighbor.Scale(dst, strips, small, small.Bounds(), draw.Src, nil)

	if opts.LabelWidth > 0 {
		face := basicfont.Face7x13
		dr := &font.Drawer{Dst: dst, Src: image.NewUniform(color.Black), Face: face}
		for i, s := range d.Series {
			name := s.Name
			if opts.Label != nil {
				name = opts.Label(name)
			}
			base := i*opts.RowHeight + (opts.RowHeight+face.Ascent-face.Descent)/2
			dr.Dot = fixed.P(4, base)
			dr.DrawString(name)
		}
	}
	return dst, nil
}

// WriteStripes encodes StripesImage as PNG.
func WriteStripes(w io.Writer, d delta.Dataset, opts Stripes) error {
	img, err := StripesImage(d, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
