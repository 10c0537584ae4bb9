package coselayout

import (
	"math"

	"github.com/pathviz/cose/cosegraph"
)

// applyRepulsionForces pushes apart every pair of live nodes sharing a
// sibling group. Overlapping boxes repel proportionally to the overlap;
// disjoint boxes repel with the inverse square of the distance between
// their clipping points. Nodes in different groups never repel directly.
func applyRepulsionForces(info *cosegraph.Info, opts Options) {
	for _, group := range info.Groups {
		for i := 0; i < len(group); i++ {
			n1 := info.Node(group[i])
			if n1.Detached {
				continue
			}
			for j := i + 1; j < len(group); j++ {
				n2 := info.Node(group[j])
				if n2.Detached {
					continue
				}
				repel(n1, n2, opts)
			}
		}
	}
}

func repel(n1, n2 *cosegraph.Node, opts Options) {
	dx := n2.Pos.X - n1.Pos.X
	dy := n2.Pos.Y - n1.Pos.Y
	if dx == 0 && dy == 0 {
		// coincident centers have no direction to push along
		return
	}

	var fx, fy float64
	if overlap := n1.Box().Overlap(n2.Box()); overlap > 0 {
		force := opts.NodeOverlap * overlap
		d := math.Sqrt(dx*dx + dy*dy)
		fx = force * dx / d
		fy = force * dy / d
	} else {
		p1 := n1.Box().ClippingPoint(n2.Pos)
		p2 := n2.Box().ClippingPoint(n1.Pos)
		cx := p2.X - p1.X
		cy := p2.Y - p1.Y
		dSqr := cx*cx + cy*cy
		if dSqr == 0 {
			// boxes touch; no distance to derive a force from
			return
		}
		force := opts.NodeRepulsion / dSqr
		d := math.Sqrt(dSqr)
		fx = force * cx / d
		fy = force * cy / d
	}

	n1.OffsetX -= fx
	n1.OffsetY -= fy
	n2.OffsetX += fx
	n2.OffsetY += fy
}

// applyEdgeForces pulls each edge's endpoints toward their ideal length.
// The force is quadratic in the deviation and always attracts: it is
// directed along the line between the clipping points, never flipped.
func applyEdgeForces(info *cosegraph.Info, opts Options) {
	for _, e := range info.Edges {
		src := info.Node(e.Src)
		dst := info.Node(e.Dst)
		if src.Detached || dst.Detached {
			continue
		}
		if src.Pos.X == dst.Pos.X && src.Pos.Y == dst.Pos.Y {
			// degenerate edge, skip it (only this edge, not the rest of
			// the pass)
			continue
		}

		p1 := src.Box().ClippingPoint(dst.Pos)
		p2 := dst.Box().ClippingPoint(src.Pos)
		lx := p2.X - p1.X
		ly := p2.Y - p1.Y
		l := math.Sqrt(lx*lx + ly*ly)
		if l == 0 {
			continue
		}

		force := (e.IdealLength - l) * (e.IdealLength - l) / opts.EdgeElasticity
		fx := force * lx / l
		fy := force * ly / l

		src.OffsetX += fx
		src.OffsetY += fy
		dst.OffsetX -= fx
		dst.OffsetY -= fy
	}
}

// gravityCenterThreshold is how close to the group center a node can be
// before gravity is skipped, to avoid oscillating around the center.
const gravityCenterThreshold = 1.0

// applyGravityForces pulls every member of a sibling group toward the
// group's center with constant magnitude: the canvas center for the root
// group, the container's position for nested groups.
func applyGravityForces(info *cosegraph.Info, opts Options) {
	for g, group := range info.Groups {
		var center struct{ x, y float64 }
		if g == 0 {
			c := info.Canvas.Center()
			center.x, center.y = c.X, c.Y
		} else {
			container := info.GroupContainer(g)
			if container.Detached || !container.IsContainer() {
				continue
			}
			center.x, center.y = container.Pos.X, container.Pos.Y
		}

		for _, id := range group {
			n := info.Node(id)
			if n.Detached {
				continue
			}
			dx := center.x - n.Pos.X
			dy := center.y - n.Pos.Y
			d := math.Sqrt(dx*dx + dy*dy)
			if d > gravityCenterThreshold {
				n.OffsetX += opts.Gravity * dx / d
				n.OffsetY += opts.Gravity * dy / d
			}
		}
	}
}
