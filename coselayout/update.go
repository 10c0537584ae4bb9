package coselayout

import (
	"github.com/pathviz/cose/cosegraph"
	"github.com/pathviz/cose/lib/geo"
	"github.com/pathviz/cose/lib/queue"
)

// propagateForces walks the hierarchy breadth-first and pushes every
// container's accumulated offset down onto its direct children, then zeroes
// the container's own offset. Containers never move themselves, so a force
// applied at a container must ultimately displace its leaf descendants.
func propagateForces(info *cosegraph.Info) {
	var q queue.Queue[string]
	for _, id := range info.Groups[0] {
		q.Enqueue(id)
	}
	for {
		id, ok := q.Dequeue()
		if !ok {
			return
		}
		n := info.Node(id)
		if n.Detached || !n.IsContainer() {
			continue
		}
		for _, c := range n.Children {
			child := info.Node(c)
			child.OffsetX += n.OffsetX
			child.OffsetY += n.OffsetY
			q.Enqueue(c)
		}
		n.OffsetX = 0
		n.OffsetY = 0
	}
}

// updatePositions applies every leaf's accumulated offset, capped at the
// current temperature, then rebuilds container extents bottom-up. Container
// centers and sizes are rederived from the new extents; this is the only
// place container geometry changes.
func updatePositions(info *cosegraph.Info, temperature float64) {
	// container extents can only be regrown from scratch: they must
	// tightly contain the new child extents, including shrinkage
	for _, n := range info.Nodes {
		if !n.Detached && n.IsContainer() {
			n.ResetExtents()
		}
	}

	for _, n := range info.Nodes {
		if n.Detached || n.IsContainer() {
			continue
		}
		v := geo.NewVector(n.OffsetX, n.OffsetY).Cap(temperature)
		n.Pos = n.Pos.AddVector(v)
		n.OffsetX = 0
		n.OffsetY = 0
		n.RefreshExtents()
		updateAncestorBounds(info, n)
	}

	for _, n := range info.Nodes {
		if n.Detached || !n.IsContainer() {
			continue
		}
		n.Pos = geo.NewPoint((n.MinX+n.MaxX)/2, (n.MinY+n.MaxY)/2)
		n.Width = n.MaxX - n.MinX
		n.Height = n.MaxY - n.MinY
	}
}

// updateAncestorBounds grows each ancestor's extents to contain the child's
// extents plus the ancestor's own padding, walking up through parent links.
// The walk stops at the first ancestor that needed no expansion.
func updateAncestorBounds(info *cosegraph.Info, child *cosegraph.Node) {
	for parentID := child.ParentID; parentID != ""; {
		p := info.Node(parentID)
		changed := false
		if child.MinX-p.Padding.Left < p.MinX {
			p.MinX = child.MinX - p.Padding.Left
			changed = true
		}
		if child.MaxX+p.Padding.Right > p.MaxX {
			p.MaxX = child.MaxX + p.Padding.Right
			changed = true
		}
		if child.MinY-p.Padding.Top < p.MinY {
			p.MinY = child.MinY - p.Padding.Top
			changed = true
		}
		if child.MaxY+p.Padding.Bottom > p.MaxY {
			p.MaxY = child.MaxY + p.Padding.Bottom
			changed = true
		}
		if !changed {
			return
		}
		child = p
		parentID = p.ParentID
	}
}
