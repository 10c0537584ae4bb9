package cosegraph

import (
	"context"
	"fmt"

	"oss.terrastruct.com/xdefer"

	"cdr.dev/slog"

	"github.com/pathviz/cose/lib/geo"
	"github.com/pathviz/cose/lib/log"
	"github.com/pathviz/cose/lib/queue"
)

// NodeDef is one node record from the external graph provider. Containers
// are declared implicitly by being referenced as a Parent.
type NodeDef struct {
	ID     string `json:"id"`
	Parent string `json:"parent,omitempty"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`

	Padding geo.Spacing `json:"padding"`
	Complex bool        `json:"complex,omitempty"`
}

// EdgeDef is one edge record. Endpoints must already be resolved to node
// ids; port resolution is the caller's responsibility.
type EdgeDef struct {
	ID  string `json:"id"`
	Src string `json:"src"`
	Dst string `json:"dst"`
}

// Build indexes the flat records into a hierarchy of sibling groups and
// annotates every edge with its ideal length. It validates the whole input
// before constructing anything, so a returned error guarantees no partial
// state.
func Build(ctx context.Context, nodes []NodeDef, edges []EdgeDef, idealEdgeLength, nestingFactor float64) (_ *Info, err error) {
	defer xdefer.Errorf(&err, "failed to build graph hierarchy")

	if err := validate(nodes, edges); err != nil {
		return nil, err
	}

	info := &Info{
		indexByID: make(map[string]int, len(nodes)),
		groupOf:   make(map[string]int, len(nodes)),
	}

	// first pass: node records and children lists, in input order
	for i, nd := range nodes {
		n := &Node{
			ID:       nd.ID,
			ParentID: nd.Parent,
			Pos:      geo.NewPoint(nd.X, nd.Y),
			Width:    nd.Width,
			Height:   nd.Height,
			Padding:  nd.Padding,
			Complex:  nd.Complex,
		}
		info.Nodes = append(info.Nodes, n)
		info.indexByID[nd.ID] = i
	}
	for _, nd := range nodes {
		if nd.Parent != "" {
			p := info.Node(nd.Parent)
			p.Children = append(p.Children, nd.ID)
		}
	}

	// breadth-first discovery of sibling groups: roots seed group 0, each
	// visited container contributes its children as a new group
	var roots []string
	for _, nd := range nodes {
		if nd.Parent == "" {
			roots = append(roots, nd.ID)
		}
	}
	if len(roots) == 0 && len(nodes) > 0 {
		return nil, fmt.Errorf("no root-level nodes: parent references form a cycle")
	}
	info.Groups = append(info.Groups, roots)
	info.groupParent = append(info.groupParent, "")
	var q queue.Queue[string]
	for _, id := range roots {
		info.groupOf[id] = 0
		q.Enqueue(id)
	}
	for {
		id, ok := q.Dequeue()
		if !ok {
			break
		}
		n := info.Node(id)
		if !n.IsContainer() {
			continue
		}
		g := len(info.Groups)
		info.Groups = append(info.Groups, n.Children)
		info.groupParent = append(info.groupParent, id)
		for _, c := range n.Children {
			info.groupOf[c] = g
			q.Enqueue(c)
		}
	}
	if len(info.groupOf) != len(info.Nodes) {
		return nil, fmt.Errorf("%d nodes unreachable from any root: parent references form a cycle", len(info.Nodes)-len(info.groupOf))
	}

	// second pass: ideal edge lengths, scaled by nesting depth relative to
	// the lowest common ancestor group for group-crossing edges
	for _, ed := range edges {
		e := &Edge{
			ID:          ed.ID,
			Src:         ed.Src,
			Dst:         ed.Dst,
			IdealLength: idealEdgeLength,
		}
		if info.groupOf[e.Src] != info.groupOf[e.Dst] {
			lca := info.findLCA(e.Src, e.Dst)
			depth := info.depthFrom(e.Src, lca) + info.depthFrom(e.Dst, lca)
			if depth > 0 {
				e.IdealLength = idealEdgeLength * float64(depth) * nestingFactor
			}
			log.Debug(ctx, "edge crosses sibling groups",
				slog.F("edge", e.ID),
				slog.F("lca_group", lca),
				slog.F("depth", depth),
				slog.F("ideal_length", e.IdealLength),
			)
		}
		info.Edges = append(info.Edges, e)
	}

	info.RefreshHierarchyExtents()

	log.Debug(ctx, "built graph hierarchy",
		slog.F("nodes", len(info.Nodes)),
		slog.F("edges", len(info.Edges)),
		slog.F("groups", len(info.Groups)),
	)
	return info, nil
}

func validate(nodes []NodeDef, edges []EdgeDef) error {
	seen := make(map[string]struct{}, len(nodes))
	for _, nd := range nodes {
		if nd.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if _, ok := seen[nd.ID]; ok {
			return fmt.Errorf("duplicate node id %q", nd.ID)
		}
		seen[nd.ID] = struct{}{}
		if nd.Width < 0 || nd.Height < 0 {
			return fmt.Errorf("node %q has negative size %vx%v", nd.ID, nd.Width, nd.Height)
		}
		if nd.Parent == nd.ID {
			return fmt.Errorf("node %q is its own parent", nd.ID)
		}
	}
	for _, nd := range nodes {
		if nd.Parent != "" {
			if _, ok := seen[nd.Parent]; !ok {
				return fmt.Errorf("node %q references missing parent %q", nd.ID, nd.Parent)
			}
		}
	}
	edgeIDs := make(map[string]struct{}, len(edges))
	for _, ed := range edges {
		if _, ok := edgeIDs[ed.ID]; ok {
			return fmt.Errorf("duplicate edge id %q", ed.ID)
		}
		edgeIDs[ed.ID] = struct{}{}
		if _, ok := seen[ed.Src]; !ok {
			return fmt.Errorf("edge %q references missing node %q", ed.ID, ed.Src)
		}
		if _, ok := seen[ed.Dst]; !ok {
			return fmt.Errorf("edge %q references missing node %q", ed.ID, ed.Dst)
		}
	}
	return nil
}

// findLCA returns the index of the lowest sibling group that contains both
// endpoints in its subtree. Descends from the root group, counting how many
// of the two endpoints each subgroup can reach: the first group whose
// members account for both endpoints through disjoint subgroups is the LCA.
func (info *Info) findLCA(a, b string) int {
	g, count := info.findLCAGroup(a, b, 0)
	if count < 2 {
		return 0
	}
	return g
}

func (info *Info) findLCAGroup(a, b string, g int) (lca int, count int) {
	for _, id := range info.Groups[g] {
		if id == a {
			count++
		}
		if id == b {
			count++
		}
		if count == 2 {
			return g, 2
		}
		n := info.Node(id)
		if !n.IsContainer() {
			continue
		}
		sub, subCount := info.findLCAGroup(a, b, info.groupOf[n.Children[0]])
		if subCount == 2 {
			// both endpoints live under this single member, so the LCA
			// is deeper than g
			return sub, 2
		}
		count += subCount
		if count == 2 {
			return g, 2
		}
	}
	return g, count
}

// depthFrom counts parent hops from id up to a node whose sibling group is
// lca.
func (info *Info) depthFrom(id string, lca int) int {
	depth := 0
	for info.groupOf[id] != lca {
		id = info.Node(id).ParentID
		depth++
	}
	return depth
}
