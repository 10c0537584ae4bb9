// Package cosetile compacts the children of complex containers into rows so
// the simulation can treat each complex as a single sized leaf, and restores
// them at the container's final position afterwards.
package cosetile

import (
	"context"

	"cdr.dev/slog"

	"github.com/pathviz/cose/cosegraph"
	"github.com/pathviz/cose/lib/geo"
	"github.com/pathviz/cose/lib/log"
)

const (
	// spacing between members of the same row and between rows
	HORIZONTAL_PADDING = 10
	VERTICAL_PADDING   = 10
	// margin surrounding the whole tile
	TILE_MARGIN = 10
)

// State remembers everything needed to undo the detachment after the
// simulation. It only lives between Clear and Repopulate.
type State struct {
	tiled []*tiledComplex
}

type tiledComplex struct {
	node     *cosegraph.Node
	children []string
	// pre-tiling absolute center of every direct child, so nested live
	// subtrees can be shifted coherently on repopulation
	prePos map[string]*geo.Point
}

// Clear finds every complex container, innermost first, detaches its direct
// children from the live graph and packs them into rows. The complex's
// width and height are overwritten with the tile's bounding size.
func Clear(ctx context.Context, info *cosegraph.Info) *State {
	st := &State{}

	// depth-first from the root level so that nested complexes collapse
	// before their enclosing complex is measured
	var visit func(id string)
	visit = func(id string) {
		n := info.Node(id)
		for _, c := range n.Children {
			visit(c)
		}
		if n.Complex && n.IsContainer() {
			st.tiled = append(st.tiled, detachAndTile(ctx, info, n))
		}
	}
	for _, id := range info.Groups[0] {
		visit(id)
	}
	return st
}

func detachAndTile(ctx context.Context, info *cosegraph.Info, n *cosegraph.Node) *tiledComplex {
	tc := &tiledComplex{
		node:     n,
		children: n.Children,
		prePos:   make(map[string]*geo.Point, len(n.Children)),
	}

	members := make([]*cosegraph.Node, 0, len(n.Children))
	for _, id := range n.Children {
		child := info.Node(id)
		tc.prePos[id] = child.Pos.Copy()
		markDetached(info, child)
		members = append(members, child)
	}
	n.Children = nil

	org := pack(members)
	org.place()
	n.Width = org.width + 2*TILE_MARGIN
	n.Height = org.height + 2*TILE_MARGIN
	n.RefreshExtents()

	log.Debug(ctx, "tiled complex",
		slog.F("complex", n.ID),
		slog.F("members", len(members)),
		slog.F("rows", len(org.rows)),
		slog.F("width", n.Width),
		slog.F("height", n.Height),
	)
	return tc
}

func markDetached(info *cosegraph.Info, n *cosegraph.Node) {
	n.Detached = true
	for _, c := range n.Children {
		markDetached(info, info.Node(c))
	}
}

// Repopulate restores each complex's children, innermost last, offsetting
// every tiled child (and its subtree) by the complex's final position.
func Repopulate(ctx context.Context, info *cosegraph.Info, st *State) {
	for i := len(st.tiled) - 1; i >= 0; i-- {
		tc := st.tiled[i]
		n := tc.node
		n.Children = tc.children

		topLeft := geo.NewPoint(n.Pos.X-n.Width/2, n.Pos.Y-n.Height/2)
		for _, id := range tc.children {
			child := info.Node(id)
			// tiling left the child at tile-relative coordinates
			final := geo.NewPoint(topLeft.X+child.Pos.X, topLeft.Y+child.Pos.Y)
			// the child's own descendants never moved during tiling, so
			// they shift by however far the child traveled overall
			dx := final.X - tc.prePos[id].X
			dy := final.Y - tc.prePos[id].Y
			child.Pos = final
			for _, c := range child.Children {
				shiftSubtree(info, info.Node(c), dx, dy)
			}
			reattach(info, child)
		}
		log.Debug(ctx, "repopulated complex",
			slog.F("complex", n.ID),
			slog.F("members", len(tc.children)),
		)
	}
}

func shiftSubtree(info *cosegraph.Info, n *cosegraph.Node, dx, dy float64) {
	n.Pos.X += dx
	n.Pos.Y += dy
	for _, c := range n.Children {
		shiftSubtree(info, info.Node(c), dx, dy)
	}
}

func reattach(info *cosegraph.Info, n *cosegraph.Node) {
	n.Detached = false
	for _, c := range n.Children {
		reattach(info, info.Node(c))
	}
}
