// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datasets

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/twpayne/go-geom/encoding/geojson"
)

// DensityRecord is one row of a Eurostat population-density table.
type DensityRecord struct {
	Geo    string
	Year   string
	Value  float64
	Parsed bool // false if OBS_VALUE was blank
}

// LoadDensity reads a CSV with geo, TIME_PERIOD and OBS_VALUE
// columns.
func LoadDensity(r io.Reader) ([]DensityRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require("geo", "TIME_PERIOD", "OBS_VALUE"); err != nil {
		return nil, err
	}
	var out []DensityRecord
	for _, row := range t.rows {
		v, ok := parseFloat(t.get(row, "OBS_VALUE"))
		out = append(out, DensityRecord{
			Geo:    strings.TrimSpace(t.get(row, "geo")),
			Year:   strings.TrimSpace(t.get(row, "TIME_PERIOD")),
			Value:  v,
			Parsed: ok,
		})
	}
	return out, nil
}

// RegionDensity is the joined density of one region. OK is false if
// the table has no value for the region in the requested year.
type RegionDensity struct {
	ID      string  `json:"id"`
	Density float64 `json:"density"`
	OK      bool    `json:"ok"`
}

// JoinDensity looks up each region's density for year. The result is
// in regionIDs order.
func JoinDensity(regionIDs []string, records []DensityRecord, year string) []RegionDensity {
	index := make(map[string]DensityRecord)
	for _, r := range records {
		if r.Year == year && r.Parsed {
			index[r.Geo] = r
		}
	}
	out := make([]RegionDensity, len(regionIDs))
	for i, id := range regionIDs {
		r, ok := index[id]
		out[i] = RegionDensity{ID: id, Density: r.Value, OK: ok}
	}
	return out
}

// DensityValues returns the positive joined densities, the domain of
// a logarithmic color scale.
func DensityValues(ds []RegionDensity) []float64 {
	var out []float64
	for _, d := range ds {
		if d.OK && d.Density > 0 {
			out = append(out, d.Density)
		}
	}
	return out
}

// LoadRegions reads a GeoJSON FeatureCollection.
func LoadRegions(r io.Reader) (*geojson.FeatureCollection, error) {
	fc := new(geojson.FeatureCollection)
	if err := json.NewDecoder(r).Decode(fc); err != nil {
		return nil, err
	}
	return fc, nil
}

// RegionID returns a feature's "id" property, falling back to the
// feature ID.
func RegionID(f *geojson.Feature) string {
	if v, ok := f.Properties["id"]; ok {
		return fmt.Sprint(v)
	}
	return f.ID
}

// RegionIDs returns the ID of every feature of fc.
func RegionIDs(fc *geojson.FeatureCollection) []string {
	ids := make([]string, len(fc.Features))
	for i, f := range fc.Features {
		ids[i] = RegionID(f)
	}
	return ids
}
