// Package cosegraph models a compound graph the way the spring embedder
// consumes it: flat node and edge records indexed into a hierarchy of
// sibling groups.
package cosegraph

import (
	"math"

	"github.com/pathviz/cose/lib/geo"
)

// Node is one layout participant. A node is either a leaf (no children,
// directly movable) or a container (>=1 child); a container's position and
// size are always derived from its children's extents plus padding, never
// set by force application.
type Node struct {
	ID       string
	ParentID string
	Children []string

	// Pos is the center of the node.
	Pos *geo.Point
	// OffsetX, OffsetY accumulate force displacement within one iteration.
	OffsetX float64
	OffsetY float64

	Width  float64
	Height float64

	// Extents of the axis-aligned bounding box. For containers these are
	// rebuilt bottom-up from children on every position update.
	MinX, MaxX, MinY, MaxY float64

	// Padding applies to containers only.
	Padding geo.Spacing

	// Complex containers get their children tiled into rows before
	// simulation and restored afterwards.
	Complex bool

	// Detached marks nodes lifted out of the live graph by the tiler.
	Detached bool
}

func (n *Node) IsContainer() bool {
	return len(n.Children) > 0
}

// Box returns the node's current bounding box.
func (n *Node) Box() *geo.Box {
	return geo.NewBox(geo.NewPoint(n.MinX, n.MinY), n.MaxX-n.MinX, n.MaxY-n.MinY)
}

// ResetExtents marks the extents as undefined so they can only grow.
func (n *Node) ResetExtents() {
	n.MinX = math.Inf(1)
	n.MaxX = math.Inf(-1)
	n.MinY = math.Inf(1)
	n.MaxY = math.Inf(-1)
}

// RefreshExtents recomputes a leaf's extents from its center and fixed size.
func (n *Node) RefreshExtents() {
	n.MinX = n.Pos.X - n.Width/2
	n.MaxX = n.Pos.X + n.Width/2
	n.MinY = n.Pos.Y - n.Height/2
	n.MaxY = n.Pos.Y + n.Height/2
}

// Edge connects two nodes by id. IdealLength is precomputed once at build
// time: the base ideal edge length, scaled by nesting depth when the
// endpoints live in different sibling groups.
type Edge struct {
	ID  string
	Src string
	Dst string

	IdealLength float64
}

// Info is the exclusive working set of one layout run.
type Info struct {
	Nodes []*Node
	Edges []*Edge

	// Groups holds the sibling groups in breadth-first discovery order.
	// Groups[0] is the root-level set; every other group is the children
	// list of some container.
	Groups [][]string

	// Canvas is the viewport the root group gravitates toward. Optional;
	// the layout defaults it to the initial bounding box when nil.
	Canvas *geo.Box

	indexByID   map[string]int
	groupOf     map[string]int
	groupParent []string
}

// Node returns the node with the given id, or nil.
func (info *Info) Node(id string) *Node {
	ix, ok := info.indexByID[id]
	if !ok {
		return nil
	}
	return info.Nodes[ix]
}

// GroupOf returns the index of the sibling group containing id.
func (info *Info) GroupOf(id string) int {
	return info.groupOf[id]
}

// GroupContainer returns the container node whose children form group g,
// or nil for the root group.
func (info *Info) GroupContainer(g int) *Node {
	if info.groupParent[g] == "" {
		return nil
	}
	return info.Node(info.groupParent[g])
}

// BoundingBox returns the bounding box of all live nodes.
func (info *Info) BoundingBox() *geo.Box {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range info.Nodes {
		if n.Detached {
			continue
		}
		minX = math.Min(minX, n.MinX)
		maxX = math.Max(maxX, n.MaxX)
		minY = math.Min(minY, n.MinY)
		maxY = math.Max(maxY, n.MaxY)
	}
	if minX > maxX {
		return geo.NewBox(geo.NewPoint(0, 0), 0, 0)
	}
	return geo.NewBox(geo.NewPoint(minX, minY), maxX-minX, maxY-minY)
}

// RefreshHierarchyExtents recomputes every node's extents: leaves from
// their fixed size, containers bottom-up as the union of their children's
// extents expanded by the container's padding. Container centers and sizes
// are rederived from the result.
func (info *Info) RefreshHierarchyExtents() {
	for _, n := range info.Nodes {
		if n.Detached {
			continue
		}
		if n.IsContainer() {
			n.ResetExtents()
		} else {
			n.RefreshExtents()
		}
	}
	// groups are in breadth-first order, so walking them backwards sizes
	// the deepest containers first
	for g := len(info.Groups) - 1; g >= 0; g-- {
		container := info.GroupContainer(g)
		if container == nil || container.Detached || !container.IsContainer() {
			// a tiled complex keeps its group registered but carries no
			// live children; it is sized by the tiler, not by this pass
			continue
		}
		for _, id := range info.Groups[g] {
			child := info.Node(id)
			if child.Detached {
				continue
			}
			container.MinX = math.Min(container.MinX, child.MinX-container.Padding.Left)
			container.MaxX = math.Max(container.MaxX, child.MaxX+container.Padding.Right)
			container.MinY = math.Min(container.MinY, child.MinY-container.Padding.Top)
			container.MaxY = math.Max(container.MaxY, child.MaxY+container.Padding.Bottom)
		}
		container.Pos = geo.NewPoint((container.MinX+container.MaxX)/2, (container.MinY+container.MaxY)/2)
		container.Width = container.MaxX - container.MinX
		container.Height = container.MaxY - container.MinY
	}
}
