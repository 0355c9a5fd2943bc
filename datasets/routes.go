// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datasets

import (
	"encoding/json"
	"io"
)

// Airport is one entry of the airports list.
type Airport struct {
	IATA      string  `json:"iata"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Flight is the number of flights on one directed route.
type Flight struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Count       int    `json:"count"`
}

// LoadAirports reads a JSON array of airports.
func LoadAirports(r io.Reader) ([]Airport, error) {
	var out []Airport
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadFlights reads a JSON array of routes.
func LoadFlights(r io.Reader) ([]Flight, error) {
	var out []Flight
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
