// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "strings"

// Wildcard is the category that matches every record.
const Wildcard = "All"

// A Matcher reports whether a record's key belongs to category.
// Matchers are only consulted for categories other than Wildcard.
type Matcher func(key, category string) bool

// Exact matches keys equal to the category.
func Exact(key, category string) bool {
	return key == category
}

// Prefix matches keys that begin with the category, so a spectral
// type "G2V" belongs to class "G".
func Prefix(key, category string) bool {
	return strings.HasPrefix(key, category)
}

// Count is the number of records in one category.
type Count struct {
	Category string
	N        int
}

// GroupCounts returns, for each category in order, the number of keys
// that match it. A nil match defaults to Exact.
func GroupCounts(keys, categories []string, match Matcher) []Count {
	parts := Partition(keys, categories, match)
	counts := make([]Count, len(categories))
	for i, cat := range categories {
		counts[i] = Count{cat, len(parts[i])}
	}
	return counts
}

// Partition returns, for each category, the indexes into keys of
// the records that match it. A record may appear in several
// categories; it always appears in Wildcard.
func Partition(keys, categories []string, match Matcher) [][]int {
	if match == nil {
		match = Exact
	}
	parts := make([][]int, len(categories))
	for ci, cat := range categories {
		idx := []int{}
		for i, key := range keys {
			if cat == Wildcard || match(key, cat) {
				idx = append(idx, i)
			}
		}
		parts[ci] = idx
	}
	return parts
}

// Select returns xs[i] for each i in idx.
func Select(xs []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for j, i := range idx {
		out[j] = xs[i]
	}
	return out
}
