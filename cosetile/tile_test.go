package cosetile

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pathviz/cose/cosegraph"
	"github.com/pathviz/cose/lib/geo"
	"github.com/pathviz/cose/lib/log"
)

func members(n int, w, h float64) []*cosegraph.Node {
	ms := make([]*cosegraph.Node, n)
	for i := range ms {
		ms[i] = &cosegraph.Node{
			Pos:    geo.NewPoint(0, 0),
			Width:  w,
			Height: h,
		}
	}
	return ms
}

func TestPackEqualSizes(t *testing.T) {
	// five 10x10 members settle into two rows:
	// . ┌──┐ ┌──┐ ┌──┐
	// . └──┘ └──┘ └──┘
	// . ┌──┐ ┌──┐
	// . └──┘ └──┘
	org := pack(members(5, 10, 10))

	assert.Len(t, org.rows, 2)
	assert.Len(t, org.rows[0], 3)
	assert.Len(t, org.rows[1], 2)
	assert.Equal(t, 50., org.width)
	assert.Equal(t, 30., org.height)
}

func TestPackIdempotent(t *testing.T) {
	ms1 := members(7, 20, 10)
	ms1[2].Width, ms1[2].Height = 40, 30
	ms1[5].Width = 10
	ms2 := make([]*cosegraph.Node, len(ms1))
	for i, m := range ms1 {
		ms2[i] = &cosegraph.Node{Pos: m.Pos.Copy(), Width: m.Width, Height: m.Height}
	}

	org1 := pack(ms1)
	org2 := pack(ms2)

	assert.Equal(t, org1.width, org2.width)
	assert.Equal(t, org1.height, org2.height)
	assert.Equal(t, len(org1.rows), len(org2.rows))
	for i := range org1.rows {
		assert.Equal(t, len(org1.rows[i]), len(org2.rows[i]), "row %d", i)
	}
}

func TestBalanceShrinksUniqueLongestRow(t *testing.T) {
	// . ┌──┐ ┌──┐ ┌──┐        ┌──┐ ┌──┐
	// . └──┘ └──┘ └──┘   =>   └──┘ └──┘
	// . ┌──┐                  ┌──┐ ┌──┐
	// . └──┘                  └──┘ └──┘
	org := &organization{rows: [][]*cosegraph.Node{
		members(3, 20, 10),
		members(1, 20, 10),
	}}
	org.recompute()
	assert.Equal(t, 80., org.width)

	org.balance()
	assert.Len(t, org.rows[0], 2)
	assert.Len(t, org.rows[1], 2)
	assert.Equal(t, 50., org.width)
}

func TestBalanceKeepsTiedLongestRows(t *testing.T) {
	// two rows tied at the bounding width: shedding a node from either
	// cannot shrink it, so the tile stays as is even though the last row
	// has room
	org := &organization{rows: [][]*cosegraph.Node{
		members(2, 20, 10),
		members(2, 20, 10),
		members(1, 10, 10),
	}}
	org.recompute()

	org.balance()
	assert.Len(t, org.rows[0], 2)
	assert.Len(t, org.rows[1], 2)
	assert.Len(t, org.rows[2], 1)
	assert.Equal(t, 50., org.width)
}

func TestPlaceInsideTile(t *testing.T) {
	ms := members(6, 15, 10)
	org := pack(ms)
	org.place()

	tile := geo.NewBox(geo.NewPoint(0, 0), org.width+2*TILE_MARGIN, org.height+2*TILE_MARGIN)
	for i, m := range ms {
		assert.True(t, m.Pos.X-m.Width/2 >= TILE_MARGIN, "member %d sticks out left", i)
		assert.True(t, m.Pos.Y-m.Height/2 >= TILE_MARGIN, "member %d sticks out top", i)
		assert.True(t, m.Pos.X+m.Width/2 <= tile.Width-TILE_MARGIN, "member %d sticks out right", i)
		assert.True(t, m.Pos.Y+m.Height/2 <= tile.Height-TILE_MARGIN, "member %d sticks out bottom", i)
	}
}

func complexDefs() ([]cosegraph.NodeDef, []cosegraph.EdgeDef) {
	nodes := []cosegraph.NodeDef{
		{ID: "C", Complex: true, Padding: geo.Spacing{Top: 5, Right: 5, Bottom: 5, Left: 5}},
		{ID: "other", Width: 30, Height: 30, X: 200, Y: 0},
	}
	for _, id := range []string{"m1", "m2", "m3", "m4"} {
		nodes = append(nodes, cosegraph.NodeDef{ID: id, Parent: "C", Width: 10, Height: 10})
	}
	return nodes, nil
}

func TestClearCollapsesComplex(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	nodes, edges := complexDefs()
	info, err := cosegraph.Build(ctx, nodes, edges, 10, 5)
	assert.Nil(t, err)

	st := Clear(ctx, info)
	assert.Len(t, st.tiled, 1)

	c := info.Node("C")
	assert.False(t, c.IsContainer())
	assert.True(t, c.Width > 0 && c.Height > 0)
	for _, id := range []string{"m1", "m2", "m3", "m4"} {
		assert.True(t, info.Node(id).Detached, "%s should be detached", id)
	}
	assert.False(t, c.Detached)
}

func TestRoundTrip(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	nodes, edges := complexDefs()
	info, err := cosegraph.Build(ctx, nodes, edges, 10, 5)
	assert.Nil(t, err)

	st := Clear(ctx, info)

	// pretend the simulation moved the collapsed complex
	c := info.Node("C")
	c.Pos = geo.NewPoint(77, -33)
	c.RefreshExtents()

	Repopulate(ctx, info, st)

	ids := append([]string{}, c.Children...)
	sort.Strings(ids)
	assert.Equal(t, []string{"m1", "m2", "m3", "m4"}, ids)

	box := geo.NewCenteredBox(c.Pos, c.Width, c.Height)
	for _, id := range c.Children {
		m := info.Node(id)
		assert.False(t, m.Detached)
		assert.True(t, box.Contains(m.Pos), "%s at %s should be inside %s", id, m.Pos.ToString(), box.ToString())
	}
}

func TestNestedComplexRoundTrip(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	nodes := []cosegraph.NodeDef{
		{ID: "outer", Complex: true},
		{ID: "inner", Parent: "outer", Complex: true},
		{ID: "a", Parent: "outer", Width: 10, Height: 10},
		{ID: "x", Parent: "inner", Width: 10, Height: 10},
		{ID: "y", Parent: "inner", Width: 10, Height: 10},
	}
	info, err := cosegraph.Build(ctx, nodes, nil, 10, 5)
	assert.Nil(t, err)

	st := Clear(ctx, info)
	// innermost first: inner collapses before outer measures it
	assert.Len(t, st.tiled, 2)
	assert.Equal(t, "inner", st.tiled[0].node.ID)
	assert.Equal(t, "outer", st.tiled[1].node.ID)

	outer := info.Node("outer")
	outer.Pos = geo.NewPoint(500, 500)
	outer.RefreshExtents()

	Repopulate(ctx, info, st)

	for _, id := range []string{"inner", "a", "x", "y"} {
		assert.False(t, info.Node(id).Detached, "%s should be live again", id)
	}

	outerBox := geo.NewCenteredBox(outer.Pos, outer.Width, outer.Height)
	innerBox := geo.NewCenteredBox(info.Node("inner").Pos, info.Node("inner").Width, info.Node("inner").Height)
	assert.True(t, outerBox.Contains(info.Node("inner").Pos))
	assert.True(t, outerBox.Contains(info.Node("a").Pos))
	assert.True(t, innerBox.Contains(info.Node("x").Pos))
	assert.True(t, innerBox.Contains(info.Node("y").Pos))
}
