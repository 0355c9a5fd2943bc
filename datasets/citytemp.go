// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datasets

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/vizlab/go-vizlab/delta"
)

// LoadCityTemps reads a wide CSV with a "time" column of YYYY-MM-DD
// dates and one temperature column per city. Blank or unparsable
// cells become NaN. Cities appear in column order.
func LoadCityTemps(r io.Reader) (delta.Dataset, error) {
	t, err := readTable(r)
	if err != nil {
		return delta.Dataset{}, err
	}
	if err := t.require("time"); err != nil {
		return delta.Dataset{}, err
	}

	var d delta.Dataset
	var cols []int
	for i, h := range t.header {
		if h == "time" || h == "" {
			continue
		}
		cols = append(cols, i)
		d.Series = append(d.Series, delta.Series{Name: h})
	}
	d.Times = make([]time.Time, 0, len(t.rows))
	for n, row := range t.rows {
		tm, err := delta.ParseDate(strings.TrimSpace(t.get(row, "time")))
		if err != nil {
			return delta.Dataset{}, fmt.Errorf("row %d: %w", n+2, err)
		}
		d.Times = append(d.Times, tm)
		for si, c := range cols {
			v := math.NaN()
			if c < len(row) {
				if f, ok := parseFloat(row[c]); ok {
					v = f
				}
			}
			d.Series[si].Values = append(d.Series[si].Values, v)
		}
	}
	return d, nil
}

// CityLabel turns a column name like "new_york" into "New York".
func CityLabel(name string) string {
	tokens := strings.Split(name, "_")
	for i, tok := range tokens {
		if tok != "" {
			tokens[i] = strings.ToUpper(tok[:1]) + tok[1:]
		}
	}
	return strings.Join(tokens, " ")
}
