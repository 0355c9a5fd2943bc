// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datasets

import (
	"encoding/json"
	"io"
	"math"
	"strings"
)

// Aircraft is one entry of an ADS-B Exchange dump. AltBaro is either
// a number of feet or the string "ground", so it stays raw until
// Planes interprets it.
type Aircraft struct {
	Hex     string          `json:"hex"`
	Flight  string          `json:"flight"`
	Type    string          `json:"t"`
	Lat     *float64        `json:"lat"`
	Lon     *float64        `json:"lon"`
	AltBaro json.RawMessage `json:"alt_baro"`
	Track   *float64        `json:"track"`
}

// Dump is a full ADS-B Exchange snapshot.
type Dump struct {
	Now      float64    `json:"now"`
	Aircraft []Aircraft `json:"aircraft"`
}

// LoadDump reads an ADS-B Exchange JSON snapshot.
func LoadDump(r io.Reader) (*Dump, error) {
	d := new(Dump)
	if err := json.NewDecoder(r).Decode(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Flight status values.
const (
	OnGround = "On Ground"
	InSky    = "In Sky"
)

// Continents, in chart order.
var Continents = []string{
	"Africa", "Europe", "Asia", "Australia",
	"North America", "South America", "Others", "Unknown",
}

// Plane is an aircraft with a usable position and altitude.
type Plane struct {
	ID        string  `json:"id"`
	Callsign  string  `json:"callsign"`
	Type      string  `json:"type,omitempty"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Bearing   float64 `json:"bearing"`
	Alt       float64 `json:"alt"`
	Continent string  `json:"continent"`
	Status    string  `json:"status"`
}

// Planes extracts the aircraft of d that report a numeric altitude
// and a position other than (0, 0).
func Planes(d *Dump) []Plane {
	var out []Plane
	for _, a := range d.Aircraft {
		var altp *float64
		if a.Lat == nil || a.Lon == nil || json.Unmarshal(a.AltBaro, &altp) != nil || altp == nil {
			continue
		}
		lat, lon, alt := *a.Lat, *a.Lon, *altp
		if lat == 0 && lon == 0 {
			continue
		}
		p := Plane{
			ID:        a.Hex,
			Callsign:  strings.TrimSpace(a.Flight),
			Type:      a.Type,
			Lat:       lat,
			Lon:       lon,
			Alt:       alt,
			Continent: Continent(lat, lon),
			Status:    InSky,
		}
		if a.Track != nil {
			p.Bearing = *a.Track
		}
		if alt <= 0 {
			p.Status = OnGround
		}
		out = append(out, p)
	}
	return out
}

// StatusCounts returns the number of planes on the ground and in
// the sky.
func StatusCounts(planes []Plane) (onGround, inSky int) {
	for _, p := range planes {
		if p.Status == OnGround {
			onGround++
		} else {
			inSky++
		}
	}
	return
}

// Continent classifies a position with coarse bounding boxes. Boxes
// are tried in Continents order, so overlaps go to the earlier one.
// Valid positions outside every box are "Others"; invalid positions
// are "Unknown".
func Continent(lat, lon float64) string {
	if !(lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180) {
		return "Unknown"
	}
	in := func(lat0, lat1, lon0, lon1 float64) bool {
		return lat >= lat0 && lat <= lat1 && lon >= lon0 && lon <= lon1
	}
	switch {
	case in(-10, 35, -20, 55):
		return "Africa"
	case in(35, 70, -10, 40):
		return "Europe"
	case in(5, 55, 55, 180):
		return "Asia"
	case in(-55, 15, 110, 180):
		return "Australia"
	case in(15, 75, -170, -50):
		return "North America"
	case in(-60, 15, -80, -30):
		return "South America"
	}
	return "Others"
}

// Nearest returns the index of the plane closest to lat, lon in
// degree space, or -1 if planes is empty.
func Nearest(planes []Plane, lat, lon float64) int {
	best, bestD := -1, math.Inf(1)
	for i, p := range planes {
		dlat, dlon := p.Lat-lat, p.Lon-lon
		if d := dlat*dlat + dlon*dlon; d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// AltitudesByContinent groups plane altitudes by continent.
func AltitudesByContinent(planes []Plane) map[string][]float64 {
	out := make(map[string][]float64)
	for _, p := range planes {
		out[p.Continent] = append(out[p.Continent], p.Alt)
	}
	return out
}
