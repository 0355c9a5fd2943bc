// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delta

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizlab/go-vizlab/stats"
)

func monthly(t *testing.T, from string, n int) []time.Time {
	t.Helper()
	start, err := ParseDate(from)
	require.NoError(t, err)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, i, 0)
	}
	return out
}

func TestComputeRoundTrip(t *testing.T) {
	times := monthly(t, "2009-01-01", 36)
	vals := make([]float64, len(times))
	for i := range vals {
		vals[i] = 10 + float64(i%12) + float64(i/12)*0.5
	}
	d := Dataset{Times: times, Series: []Series{{"boston", vals}}}

	out, err := Compute(d, 2010)
	require.NoError(t, err)
	require.Len(t, out.Series, 1)

	ref := Reference(times, d.Series[0], 2010)
	for i, tm := range times {
		got := out.Series[0].Values[i] + ref[tm.Month()-1]
		assert.InDelta(t, vals[i], got, 1e-9)
	}

	// The reference year itself has zero deltas; a year later is
	// +0.5 throughout.
	for i := 12; i < 24; i++ {
		assert.InDelta(t, 0, out.Series[0].Values[i], 1e-9)
		assert.InDelta(t, 0.5, out.Series[0].Values[i+12], 1e-9)
	}

	// The input is not modified.
	assert.Equal(t, 10.0, d.Series[0].Values[0])
}

func TestComputeMissingReference(t *testing.T) {
	times := monthly(t, "2010-01-01", 13)
	vals := make([]float64, 13)
	vals[4] = math.NaN() // May 2010
	d := Dataset{Times: times, Series: []Series{{"denver", vals}}}

	_, err := Compute(d, 2010)
	var mre *MissingReferenceError
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, "denver", mre.Entity)
	assert.Equal(t, time.May, mre.Month)

	_, err = Compute(d, 1999)
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, time.January, mre.Month)
}

func TestComputeMissingValues(t *testing.T) {
	times := monthly(t, "2010-01-01", 24)
	vals := make([]float64, 24)
	for i := range vals {
		vals[i] = float64(i)
	}
	vals[20] = math.NaN()
	out, err := Compute(Dataset{Times: times, Series: []Series{{"x", vals}}}, 2010)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out.Series[0].Values[20]))
	assert.Equal(t, 12.0, out.Series[0].Values[19])
}

func TestMisaligned(t *testing.T) {
	d := Dataset{Times: monthly(t, "2010-01-01", 3), Series: []Series{{"x", []float64{1, 2}}}}
	_, err := Compute(d, 2010)
	var me *MisalignedError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, MisalignedError{"x", 2, 3}, *me)
}

func TestExtent(t *testing.T) {
	d := Dataset{
		Times: monthly(t, "2010-01-01", 2),
		Series: []Series{
			{"a", []float64{-1.5, math.NaN()}},
			{"b", []float64{2, 0}},
		},
	}
	min, max, err := Extent(d)
	require.NoError(t, err)
	assert.Equal(t, -1.5, min)
	assert.Equal(t, 2.0, max)

	_, _, err = Extent(Dataset{})
	assert.ErrorIs(t, err, stats.ErrEmptySample)
}
