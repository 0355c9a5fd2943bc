// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datasets

import (
	"io"
	"strings"

	"github.com/vizlab/go-vizlab/stats"
)

// Star is one catalog entry with a temperature estimate.
type Star struct {
	Source string  `json:"source"`
	Teff   float64 `json:"teff"`   // effective temperature, K
	SpType string  `json:"spType"` // spectral type, e.g. "G2V"
}

// StarTypes are the spectral classes charted, hottest first, followed
// by the wildcard.
var StarTypes = []string{"O", "B", "A", "F", "G", "K", "M", stats.Wildcard}

// LoadStars reads a Gaia DR3 extract. It keeps stars with a positive
// Teff; the spectral type comes from SpType_ELS.
func LoadStars(r io.Reader) ([]Star, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require("Teff", "SpType_ELS"); err != nil {
		return nil, err
	}
	var stars []Star
	for _, row := range t.rows {
		teff, ok := parseFloat(t.get(row, "Teff"))
		if !ok || !(teff > 0) {
			continue
		}
		stars = append(stars, Star{
			Source: t.get(row, "Source"),
			Teff:   teff,
			SpType: strings.TrimSpace(t.get(row, "SpType_ELS")),
		})
	}
	return stars, nil
}

// SpectralKeys returns the spectral type of each star, for grouping.
func SpectralKeys(stars []Star) []string {
	keys := make([]string, len(stars))
	for i, s := range stars {
		keys[i] = s.SpType
	}
	return keys
}

// Temperatures returns the Teff of each star.
func Temperatures(stars []Star) []float64 {
	xs := make([]float64, len(stars))
	for i, s := range stars {
		xs[i] = s.Teff
	}
	return xs
}

// MatchSpectral matches a spectral type to a class by prefix. Stars
// without a type match no class.
func MatchSpectral(key, class string) bool {
	return key != "" && stats.Prefix(key, class)
}
