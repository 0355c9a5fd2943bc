// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizlab/go-vizlab/colorscale"
	"github.com/vizlab/go-vizlab/datasets"
	"github.com/vizlab/go-vizlab/delta"
	"github.com/vizlab/go-vizlab/geom"
	"github.com/vizlab/go-vizlab/hierarchy"
	"github.com/vizlab/go-vizlab/kde"
	"github.com/vizlab/go-vizlab/routes"
)

var frame = Frame{Width: 600, Height: 400, Margin: Margin{Top: 20, Right: 20, Bottom: 50, Left: 60}}

// wellFormed fails the test if doc is not well-formed XML.
func wellFormed(t *testing.T, doc []byte) {
	t.Helper()
	d := xml.NewDecoder(bytes.NewReader(doc))
	for {
		_, err := d.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err)
	}
}

var stars = []datasets.Star{
	{Source: "1", Teff: 5800, SpType: "G2V"},
	{Source: "2", Teff: 5600, SpType: "G8III"},
	{Source: "3", Teff: 6000, SpType: "G0V"},
	{Source: "4", Teff: 4200, SpType: "K5V"},
	{Source: "5", Teff: 4500, SpType: "K2"},
	{Source: "6", Teff: 9800, SpType: "A0"},
	{Source: "7", Teff: 3100, SpType: ""},
}

func TestStarGroups(t *testing.T) {
	groups, err := StarGroups(stars, datasets.StarTypes, 500, 50)
	require.NoError(t, err)
	require.Len(t, groups, len(datasets.StarTypes))

	count := map[string]int{}
	for _, g := range groups {
		count[g.Class] = g.Count
		assert.Len(t, g.Teff, g.Count, g.Class)
		if g.Count == 0 {
			assert.Empty(t, g.Density, g.Class)
		}
	}
	assert.Equal(t, map[string]int{"O": 0, "B": 0, "A": 1, "F": 0, "G": 3, "K": 2, "M": 0, "All": 7}, count)

	g := groups[4]
	assert.Equal(t, "G", g.Class)
	assert.Equal(t, 5800.0, g.Summary.Median)
	assert.Len(t, g.Density, 50)
}

func TestStarGroupsSharedGrid(t *testing.T) {
	few := []datasets.Star{
		{Source: "1", Teff: 30000, SpType: "O5"},
		{Source: "2", Teff: 5000, SpType: "G2"},
		{Source: "3", Teff: 6000, SpType: "G8"},
	}
	groups, err := StarGroups(few, datasets.StarTypes, 1000, 100)
	require.NoError(t, err)
	o, g := groups[0], groups[4]
	require.Equal(t, 1, o.Count)
	require.Len(t, o.Density, 100)
	require.Len(t, g.Density, 100)

	// A lone star still gets a violin.
	assert.Greater(t, kde.Max(o.Density), 0.0)
	for i := range o.Density {
		assert.Equal(t, o.Density[i].X, g.Density[i].X)
	}
	assert.Equal(t, 0.0, g.Density[0].X)
	assert.InDelta(t, 29700, g.Density[99].X, 1e-9)
	// G's kernel tail reaches past its hottest star.
	assert.Greater(t, g.Density[20].Density, 0.0) // 6000 K
	assert.Greater(t, g.Density[21].Density, 0.0) // 6300 K
}

func TestWriteStarChart(t *testing.T) {
	groups, err := StarGroups(stars, datasets.StarTypes, 500, 50)
	require.NoError(t, err)

	var a, b bytes.Buffer
	require.NoError(t, WriteStarChart(&a, groups, StarChart{Frame: frame, Seed: 1}))
	require.NoError(t, WriteStarChart(&b, groups, StarChart{Frame: frame, Seed: 1}))
	wellFormed(t, a.Bytes())
	assert.Equal(t, a.String(), b.String(), "same seed must give the same chart")

	out := a.String()
	// Every star once in its class and once in "All".
	assert.Equal(t, 6+7, strings.Count(out, "<circle"))
	assert.Contains(t, out, `id="class-g"`)
	assert.Contains(t, out, "n=7")

	assert.Error(t, WriteStarChart(io.Discard, nil, StarChart{Frame: frame}))
}

func TestWriteDensityPlot(t *testing.T) {
	groups, err := StarGroups(stars, datasets.StarTypes, 500, 20)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteDensityPlot(&buf, groups, 500, 350))
	assert.Contains(t, buf.String(), "<svg")

	assert.Error(t, WriteDensityPlot(io.Discard, nil, 500, 350))
}

func TestDecimalYear(t *testing.T) {
	assert.Equal(t, 2000.0, DecimalYear(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.InDelta(t, 2001.5, DecimalYear(time.Date(2001, time.July, 2, 12, 0, 0, 0, time.UTC)), 1e-9)
}

func monthly(year int, n int) []time.Time {
	ts := make([]time.Time, n)
	for i := range ts {
		ts[i] = time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
	}
	return ts
}

func TestStripes(t *testing.T) {
	d := delta.Dataset{
		Times: monthly(2001, 3),
		Series: []delta.Series{
			{Name: "oslo", Values: []float64{-1, 0, 2}},
			{Name: "rome", Values: []float64{math.NaN(), 1, 0.5}},
		},
	}
	img, err := StripesImage(d, Stripes{RowHeight: 10, StripeWidth: 4})
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())

	ramp := colorscale.Diverging(-1, 2)
	assert.Equal(t, ramp.Color(-1), img.RGBAAt(0, 0))
	assert.Equal(t, ramp.Color(0), img.RGBAAt(5, 9))
	assert.Equal(t, ramp.Color(2), img.RGBAAt(11, 0))
	assert.Equal(t, colorscale.Missing, img.RGBAAt(3, 10))

	labelled, err := StripesImage(d, Stripes{RowHeight: 16, StripeWidth: 4, LabelWidth: 50, Label: datasets.CityLabel})
	require.NoError(t, err)
	assert.Equal(t, 62, labelled.Bounds().Dx())
	assert.Equal(t, ramp.Color(-1), labelled.RGBAAt(50, 0))

	var buf bytes.Buffer
	require.NoError(t, WriteStripes(&buf, d, Stripes{RowHeight: 2, StripeWidth: 2}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	_, err = StripesImage(delta.Dataset{}, Stripes{RowHeight: 1, StripeWidth: 1})
	assert.Error(t, err)
	_, err = StripesImage(d, Stripes{})
	assert.Error(t, err)
}

func TestWriteDeltaPlot(t *testing.T) {
	d := delta.Dataset{
		Times:  monthly(2001, 3),
		Series: []delta.Series{{Name: "oslo", Values: []float64{-1, math.NaN(), 2}}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteDeltaPlot(&buf, d, "oslo", 500, 300))
	assert.Contains(t, buf.String(), "<svg")

	empty := delta.Dataset{Times: monthly(2001, 1), Series: []delta.Series{{Name: "x", Values: []float64{math.NaN()}}}}
	assert.Error(t, WriteDeltaPlot(io.Discard, empty, "", 500, 300))
}

type rec struct{ id, parent string }

func tree(t *testing.T) *hierarchy.Node {
	t.Helper()
	root, err := hierarchy.Stratify([]rec{
		{"R", ""}, {"A", "R"}, {"A1", "A"}, {"A2 with a very long description", "A"}, {"B", "R"},
	}, func(r rec) string { return r.id }, func(r rec) (string, bool) { return r.parent, r.parent != "" })
	require.NoError(t, err)
	return hierarchy.Aggregate(root, func(*hierarchy.Node) float64 { return 1 }, nil)
}

func TestTruncate(t *testing.T) {
	for _, test := range []struct {
		in, want string
	}{
		{"", ""},
		{"short", "short"},
		{"exactly twenty chars", "exactly twenty chars"},
		{"twenty-one characters", "twenty-one character..."},
		{"ééééééééééééééééééééé", "éééééééééééééééééééé..."},
	} {
		assert.Equal(t, test.want, truncate(test.in, MaxLabel), test.in)
	}
}

func TestWriteTreemap(t *testing.T) {
	root := tree(t)
	placed := hierarchy.Treemap{Width: 400, Height: 300}.Layout(root)
	var buf bytes.Buffer
	require.NoError(t, WriteTreemap(&buf, placed, 400, 300, nil))
	wellFormed(t, buf.Bytes())
	out := buf.String()
	assert.Equal(t, len(root.Leaves()), strings.Count(out, "<rect"))

	// Leaves under the same top-level node share a color.
	a := colorscale.Categories(0.6)
	assert.Equal(t, 2, strings.Count(out, "fill:"+colorscale.Hex(a.Color("A"))))
	assert.Equal(t, 1, strings.Count(out, "fill:"+colorscale.Hex(a.Color("B"))))

	assert.Error(t, WriteTreemap(io.Discard, nil, 1, 1, nil))
}

func TestWriteRadialTree(t *testing.T) {
	root := tree(t)
	placed := hierarchy.RadialCluster{Degrees: 360, Radius: 100}.Layout(root)
	var buf bytes.Buffer
	require.NoError(t, WriteRadialTree(&buf, placed, 300, 300, nil))
	wellFormed(t, buf.Bytes())
	out := buf.String()
	assert.Equal(t, len(placed), strings.Count(out, "<circle"))
	assert.Equal(t, len(placed)-1, strings.Count(out, "<line"))
	assert.Contains(t, out, "A2 with a very long ...")
	assert.NotContains(t, out, "description")
	assert.Contains(t, out, `text-anchor="end"`)
	assert.Contains(t, out, `text-anchor="start"`)
}

func TestWriteRouteGraph(t *testing.T) {
	g, err := routes.Build([]datasets.Airport{
		{IATA: "ATL", City: "Atlanta", Latitude: 33.64, Longitude: -84.43},
		{IATA: "ORD", City: "Chicago", Latitude: 41.98, Longitude: -87.90},
		{IATA: "LAX", City: "Los Angeles", Latitude: 33.94, Longitude: -118.41},
	}, []datasets.Flight{
		{Origin: "ATL", Destination: "ORD", Count: 5000},
		{Origin: "ORD", Destination: "ATL", Count: 4900},
		{Origin: "ATL", Destination: "LAX", Count: 3000},
	}, routes.Options{
		MinCount:   2600,
		Projection: geom.AlbersUSA{Scale: 1000, Translate: geom.Point{X: 480, Y: 300}},
		Simulation: routes.DefaultSimulation(480, 300),
	})
	require.NoError(t, err)

	for _, mode := range []routes.Mode{routes.ForceMode, routes.MapMode} {
		var buf bytes.Buffer
		require.NoError(t, WriteRouteGraph(&buf, g, mode, 960, 600))
		wellFormed(t, buf.Bytes())
		out := buf.String()
		assert.Equal(t, 3, strings.Count(out, "<path"))
		assert.Equal(t, 3, strings.Count(out, "<circle"))
		// ATL has the highest degree and gets the top of the ramp.
		assert.Contains(t, out, "fill:"+colorscale.Hex(colorscale.Viridis[len(colorscale.Viridis)-1]))
	}
}

var planes = []datasets.Plane{
	{ID: "a", Lat: 50, Lon: 8, Alt: 36000, Continent: "Europe", Status: datasets.InSky},
	{ID: "b", Lat: 48, Lon: 2, Alt: 12000, Continent: "Europe", Status: datasets.InSky},
	{ID: "c", Lat: 40, Lon: -74, Alt: 0, Continent: "North America", Status: datasets.OnGround},
	{ID: "d", Lat: 41, Lon: -87, Alt: 30000, Continent: "North America", Status: datasets.InSky},
}

func TestFlightCharts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFlightMap(&buf, planes, frame))
	wellFormed(t, buf.Bytes())
	assert.Equal(t, len(planes), strings.Count(buf.String(), "<circle"))

	groups, err := AltitudeGroups(planes, 5000, 30)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Europe", groups[0].Continent)
	assert.Equal(t, "North America", groups[1].Continent)
	assert.Equal(t, 36000.0, groups[0].Summary.Max)

	buf.Reset()
	require.NoError(t, WriteAltitudeViolins(&buf, groups, frame, 7))
	wellFormed(t, buf.Bytes())
	assert.Equal(t, len(planes), strings.Count(buf.String(), "<circle"))
	assert.Error(t, WriteAltitudeViolins(io.Discard, nil, frame, 7))

	buf.Reset()
	require.NoError(t, WriteStatusBars(&buf, planes, frame))
	wellFormed(t, buf.Bytes())
	out := buf.String()
	assert.Contains(t, out, ">1</text>")
	assert.Contains(t, out, ">3</text>")
	assert.Contains(t, out, datasets.OnGround)
}

const regionsJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"id": "NO01"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]}},
    {"type": "Feature", "properties": {"id": "NO02"},
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[10,0],[20,0],[20,10],[10,0]]], [[[30,0],[40,0],[40,5],[30,0]]]]}},
    {"type": "Feature", "properties": {"id": "NO03"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,10],[10,10],[10,20],[0,10]]]}}
  ]
}`

func TestWriteChoropleth(t *testing.T) {
	fc, err := datasets.LoadRegions(strings.NewReader(regionsJSON))
	require.NoError(t, err)
	ds := datasets.JoinDensity(datasets.RegionIDs(fc), []datasets.DensityRecord{
		{Geo: "NO01", Year: "2020", Value: 10, Parsed: true},
		{Geo: "NO02", Year: "2020", Value: 1000, Parsed: true},
	}, "2020")

	var buf bytes.Buffer
	require.NoError(t, WriteChoropleth(&buf, fc, ds, Frame{Width: 400, Height: 200}))
	wellFormed(t, buf.Bytes())
	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "<path"))
	assert.Contains(t, out, `fill:`+colorscale.Hex(colorscale.Viridis[0])+`" id="NO01"`)
	assert.Contains(t, out, `fill:`+colorscale.Hex(colorscale.Viridis[len(colorscale.Viridis)-1])+`" id="NO02"`)
	assert.Contains(t, out, `fill:#cccccc" id="NO03"`)

	// y is flipped: the northern region NO03 sits at the top.
	proj := fitIdentity(regionBounds(fc), Frame{Width: 400, Height: 200})
	_, top := proj.point([]float64{0, 20})
	_, bottom := proj.point([]float64{0, 0})
	assert.Less(t, top, bottom)

	assert.Error(t, WriteChoropleth(io.Discard, fc, ds[:1], frame))
}

func TestAltitudeGroupsSingle(t *testing.T) {
	ps := []datasets.Plane{
		{ID: "x", Lat: 5, Lon: 20, Alt: 10000, Continent: "Africa", Status: datasets.InSky},
		{ID: "y", Lat: 50, Lon: 8, Alt: 36000, Continent: "Europe", Status: datasets.InSky},
	}
	groups, err := AltitudeGroups(ps, 1000, 50)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	africa, europe := groups[0], groups[1]
	assert.Equal(t, "Africa", africa.Continent)
	require.Len(t, africa.Density, 50)
	require.Len(t, europe.Density, 50)
	assert.Greater(t, kde.Max(africa.Density), 0.0)
	assert.Equal(t, africa.Density[49].X, europe.Density[49].X)
	assert.Equal(t, 0.0, africa.Density[0].X)
}
