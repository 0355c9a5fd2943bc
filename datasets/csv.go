// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package datasets loads the raw inputs of each chart into typed
// records: star catalogs, city temperature series, budget
// classifications, flight routes, aircraft positions and regional
// population densities.
package datasets

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ColumnError is returned when a CSV input lacks a required column.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

// table is a CSV file with a header row.
type table struct {
	header []string
	cols   map[string]int
	rows   [][]string
}

func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	t := &table{header: recs[0], cols: make(map[string]int), rows: recs[1:]}
	for i, h := range t.header {
		h = strings.TrimPrefix(h, "\ufeff")
		t.header[i] = h
		t.cols[h] = i
	}
	return t, nil
}

func (t *table) require(cols ...string) error {
	for _, c := range cols {
		if _, ok := t.cols[c]; !ok {
			return &ColumnError{c}
		}
	}
	return nil
}

// get returns column col of row, or "" if the row is short or the
// column is absent.
func (t *table) get(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}
