package cosegraph

import (
	"encoding/json"

	"oss.terrastruct.com/util-go/xjson"
	"oss.terrastruct.com/xdefer"

	"github.com/pathviz/cose/lib/geo"
)

// Doc is the JSON shape of an input graph.
type Doc struct {
	Nodes  []NodeDef  `json:"nodes"`
	Edges  []EdgeDef  `json:"edges"`
	Canvas *CanvasDef `json:"canvas,omitempty"`
}

type CanvasDef struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PlacedNode is the JSON shape of one laid-out node.
type PlacedNode struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func ParseDoc(b []byte) (_ *Doc, err error) {
	defer xdefer.Errorf(&err, "failed to parse graph doc")
	var doc Doc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (doc *Doc) CanvasBox() *geo.Box {
	if doc.Canvas == nil {
		return nil
	}
	return geo.NewBox(geo.NewPoint(doc.Canvas.X, doc.Canvas.Y), doc.Canvas.Width, doc.Canvas.Height)
}

// SerializeResult renders the final position and size of every node, in
// input order.
func SerializeResult(info *Info) []byte {
	placed := make([]PlacedNode, 0, len(info.Nodes))
	for _, n := range info.Nodes {
		placed = append(placed, PlacedNode{
			ID:     n.ID,
			X:      n.Pos.X,
			Y:      n.Pos.Y,
			Width:  n.Width,
			Height: n.Height,
		})
	}
	return xjson.Marshal(placed)
}
