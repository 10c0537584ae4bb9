package cosegraph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/diff"

	"github.com/pathviz/cose/cosegraph"
	"github.com/pathviz/cose/lib/log"
)

func TestParseDoc(t *testing.T) {
	doc, err := cosegraph.ParseDoc([]byte(`{
	"nodes": [
		{"id": "p", "padding": {"top": 2, "right": 2, "bottom": 2, "left": 2}, "complex": true},
		{"id": "a", "parent": "p", "width": 10, "height": 10, "x": 1, "y": 2}
	],
	"edges": [
		{"id": "e", "src": "a", "dst": "p"}
	],
	"canvas": {"x": 0, "y": 0, "width": 800, "height": 600}
}`))
	assert.Nil(t, err)
	assert.Len(t, doc.Nodes, 2)
	assert.True(t, doc.Nodes[0].Complex)
	assert.Equal(t, 2., doc.Nodes[0].Padding.Left)
	assert.Equal(t, "p", doc.Nodes[1].Parent)
	assert.Len(t, doc.Edges, 1)
	assert.Equal(t, 800., doc.CanvasBox().Width)

	_, err = cosegraph.ParseDoc([]byte(`{"nodes": [`))
	assert.NotNil(t, err)
}

func TestSerializeResult(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	info, err := cosegraph.Build(ctx, []cosegraph.NodeDef{
		{ID: "a", Width: 10, Height: 10, X: 5, Y: 5},
		{ID: "b", Width: 20, Height: 10, X: 50, Y: 5},
	}, nil, 10, 5)
	assert.Nil(t, err)

	exp := `[{"id":"a","x":5,"y":5,"width":10,"height":10},{"id":"b","x":50,"y":5,"width":20,"height":10}]`
	diff.AssertStringEq(t, exp, string(cosegraph.SerializeResult(info)))
}
