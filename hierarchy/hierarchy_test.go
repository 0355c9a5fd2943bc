// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hierarchy

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID, Parent, Amount string
}

func rowID(r row) string { return r.ID }

func rowParent(r row) (string, bool) { return r.Parent, r.Parent != "" }

func rowValue(n *Node) float64 { return ParseAmount(n.Data.(row).Amount) }

var sample = []row{
	{"R", "", ""},
	{"A", "R", ""},
	{"A1", "A", "2"},
	{"A2", "A", "3"},
	{"B", "R", "5"},
}

func mustStratify(t *testing.T, rows []row) *Node {
	t.Helper()
	root, err := Stratify(rows, rowID, rowParent)
	require.NoError(t, err)
	return root
}

func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestStratify(t *testing.T) {
	root := mustStratify(t, sample)
	assert.Equal(t, "R", root.ID)
	assert.Nil(t, root.Parent)
	assert.Equal(t, []string{"R", "A", "A1", "A2", "B"}, ids(root.Descendants()))
	assert.Equal(t, []string{"A1", "A2", "B"}, ids(root.Leaves()))
	assert.Equal(t, 2, root.Height)

	a1 := root.Find("A1")
	require.NotNil(t, a1)
	assert.Equal(t, 2, a1.Depth)
	assert.Equal(t, 0, a1.Height)
	assert.Equal(t, "A", a1.ParentID)
	assert.Equal(t, []string{"A1", "A", "R"}, ids(a1.Ancestors()))
	assert.Equal(t, "A", a1.AncestorAt(1).ID)
	assert.Nil(t, a1.AncestorAt(3))
	assert.Len(t, root.Links(), len(sample)-1)

	// Record order does not need to be parent-first.
	rev := []row{sample[4], sample[3], sample[2], sample[1], sample[0]}
	root = mustStratify(t, rev)
	assert.Equal(t, []string{"R", "B", "A", "A2", "A1"}, ids(root.Descendants()))
}

func TestStratifyErrors(t *testing.T) {
	_, err := Stratify([]row{{"A", "B", ""}, {"B", "A", ""}}, rowID, rowParent)
	assert.ErrorIs(t, err, ErrNoRoot)

	_, err = Stratify([]row{{"A", "", ""}, {"B", "", ""}}, rowID, rowParent)
	var mr *MultipleRootsError
	require.True(t, errors.As(err, &mr))
	assert.Equal(t, []string{"A", "B"}, mr.IDs)

	_, err = Stratify([]row{{"R", "", ""}, {"A", "X", ""}}, rowID, rowParent)
	var dp *DanglingParentError
	require.True(t, errors.As(err, &dp))
	assert.Equal(t, DanglingParentError{"A", "X"}, *dp)

	_, err = Stratify([]row{{"R", "", ""}, {"A", "R", ""}, {"A", "R", ""}}, rowID, rowParent)
	var dup *DuplicateIDError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "A", dup.ID)

	_, err = Stratify([]row{{"R", "", ""}, {"A", "B", ""}, {"B", "A", ""}, {"C", "R", ""}}, rowID, rowParent)
	var cyc *CycleError
	require.True(t, errors.As(err, &cyc))
	assert.Equal(t, []string{"A", "B"}, cyc.IDs)
}

func TestAggregate(t *testing.T) {
	root := mustStratify(t, sample)
	agg := Aggregate(root, rowValue, nil)

	assert.Equal(t, 10.0, agg.Value)
	assert.Equal(t, 5.0, agg.Find("A").Value)
	assert.Equal(t, 5.0, agg.Find("B").Value)
	assert.Same(t, agg, agg.Find("A").Parent)

	// Leaf values sum to the root.
	sum := 0.0
	for _, l := range agg.Leaves() {
		sum += l.Value
	}
	assert.Equal(t, agg.Value, sum)

	// The input tree is untouched.
	assert.Equal(t, 0.0, root.Value)
	assert.Equal(t, 0.0, root.Find("A1").Value)

	max := Aggregate(root, rowValue, func(a, b float64) float64 {
		if b > a {
			return b
		}
		return a
	})
	assert.Equal(t, 5.0, max.Value)
	assert.Equal(t, 3.0, max.Find("A").Value)
}

func TestParseAmount(t *testing.T) {
	for _, test := range []struct {
		in   string
		want float64
	}{
		{"", 0}, {"  ", 0}, {"12.5", 12.5}, {" 7 ", 7}, {"n/a", 0}, {"NaN", 0}, {"-3", -3},
	} {
		assert.Equal(t, test.want, ParseAmount(test.in), "%q", test.in)
	}
}

func TestTreeString(t *testing.T) {
	root := Aggregate(mustStratify(t, sample), rowValue, nil)
	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "tree", []byte(root.String()))
}

func TestMarshalJSON(t *testing.T) {
	root := Aggregate(mustStratify(t, []row{{"R", "", ""}, {"A", "R", "4"}}), rowValue, nil)
	root.Data = nil
	root.Children[0].Data = nil
	b, err := json.Marshal(root)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"R","value":4,"depth":0,"height":1,"children":[{"id":"A","value":4,"depth":1,"height":0}]}`, string(b))
}

func TestTreemapProportional(t *testing.T) {
	rows := []row{{"R", "", ""}, {"A", "R", "1"}, {"B", "R", "1"}, {"C", "R", "2"}}
	root := Aggregate(mustStratify(t, rows), rowValue, nil)
	placed := Treemap{Width: 400, Height: 100}.Layout(root)

	got := map[string]Rect{}
	for _, p := range placed {
		got[p.Node.ID] = p.Rect
	}
	assert.Equal(t, map[string]Rect{
		"R": {0, 0, 400, 100},
		"A": {0, 0, 100, 100},
		"B": {100, 0, 200, 100},
		"C": {200, 0, 400, 100},
	}, got)
	assert.Equal(t, 50.0, placed[1].X)
	assert.Equal(t, 50.0, placed[1].Y)
}

func TestTreemapPadding(t *testing.T) {
	rows := []row{
		{"COFOG", "", ""},
		{"GF01", "COFOG", ""}, {"GF0101", "GF01", "10"}, {"GF0102", "GF01", "30"},
		{"GF02", "COFOG", ""}, {"GF0201", "GF02", "25"},
		{"GF03", "COFOG", "5"},
	}
	root := Aggregate(mustStratify(t, rows), rowValue, nil)
	placed := Treemap{Width: 960, Height: 600, PaddingInner: 2, PaddingOuter: 5, Round: true}.Layout(root)
	require.Len(t, placed, len(rows))

	rects := map[*Node]Rect{}
	for _, p := range placed {
		rects[p.Node] = p.Rect
	}
	assert.Equal(t, Rect{0, 0, 960, 600}, rects[root])
	for n, r := range rects {
		assert.True(t, r.X0 <= r.X1 && r.Y0 <= r.Y1, "%s inverted: %+v", n.ID, r)
		if n.Parent == nil {
			continue
		}
		pr := rects[n.Parent]
		assert.True(t, pr.X0 <= r.X0 && r.X1 <= pr.X1 && pr.Y0 <= r.Y0 && r.Y1 <= pr.Y1,
			"%s %+v outside parent %+v", n.ID, r, pr)
	}

	// Layout is pure.
	assert.Equal(t, placed, Treemap{Width: 960, Height: 600, PaddingInner: 2, PaddingOuter: 5, Round: true}.Layout(root))
}

func TestRadialCluster(t *testing.T) {
	root := mustStratify(t, sample)
	var l Layout = RadialCluster{Degrees: 360, Radius: 100}
	placed := l.Layout(root)

	byID := map[string]Placed{}
	for _, p := range placed {
		byID[p.Node.ID] = p
	}
	for _, test := range []struct {
		id            string
		angle, radius float64
	}{
		{"R", 198, 0},
		{"A", 108, 50},
		{"A1", 72, 100},
		{"A2", 144, 100},
		{"B", 288, 50},
	} {
		p := byID[test.id]
		assert.InDelta(t, test.angle, p.Angle, 1e-9, test.id)
		assert.InDelta(t, test.radius, p.Radius, 1e-9, test.id)
	}
	assert.InDelta(t, 0, byID["R"].X, 1e-9)
	assert.InDelta(t, 0, byID["R"].Y, 1e-9)
}

func TestPolar(t *testing.T) {
	for _, test := range []struct {
		angle, x, y float64
	}{
		{0, 0, -10}, {90, 10, 0}, {180, 0, 10}, {270, -10, 0},
	} {
		x, y := polar(test.angle, 10)
		assert.InDelta(t, test.x, x, 1e-9)
		assert.InDelta(t, test.y, y, 1e-9)
	}
}
