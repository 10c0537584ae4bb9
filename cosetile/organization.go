package cosetile

import (
	"oss.terrastruct.com/util-go/go2"

	"github.com/pathviz/cose/cosegraph"
	"github.com/pathviz/cose/lib/geo"
)

// organization is the transient row arrangement of one complex's detached
// children. width and height track the tile bounding box without the outer
// margin.
type organization struct {
	rows       [][]*cosegraph.Node
	rowWidths  []float64
	rowHeights []float64
	width      float64
	height     float64
}

// pack arranges members into rows, in input order: each member goes into
// the shortest row unless that would unbalance the tile's aspect, in which
// case it starts a new row. Every insertion is followed by a balancing pass
// shifting trailing nodes of the longest row into the last row while that
// shrinks the bounding width.
func pack(members []*cosegraph.Node) *organization {
	org := &organization{}
	for _, m := range members {
		if len(org.rows) == 0 || !org.canAddHorizontal(m) {
			org.rows = append(org.rows, []*cosegraph.Node{m})
		} else {
			sri := org.shortestRowIndex()
			org.rows[sri] = append(org.rows[sri], m)
		}
		org.recompute()
		org.balance()
	}
	return org
}

func (org *organization) recompute() {
	org.rowWidths = org.rowWidths[:0]
	org.rowHeights = org.rowHeights[:0]
	org.width = 0
	org.height = 0
	for _, row := range org.rows {
		w := 0.0
		h := 0.0
		for _, n := range row {
			w += n.Width
			h = go2.Max(h, n.Height)
		}
		w += HORIZONTAL_PADDING * float64(len(row)-1)
		org.rowWidths = append(org.rowWidths, w)
		org.rowHeights = append(org.rowHeights, h)
		org.width = go2.Max(org.width, w)
		org.height += h
	}
	org.height += VERTICAL_PADDING * float64(len(org.rows)-1)
}

func (org *organization) shortestRowIndex() int {
	sri := 0
	for i, w := range org.rowWidths {
		if w < org.rowWidths[sri] {
			sri = i
		}
	}
	return sri
}

func (org *organization) longestRowIndex() int {
	lri := 0
	for i, w := range org.rowWidths {
		if w > org.rowWidths[lri] {
			lri = i
		}
	}
	return lri
}

func (org *organization) uniqueLongest(longest int) bool {
	for i, w := range org.rowWidths {
		if i != longest && w == org.rowWidths[longest] {
			return false
		}
	}
	return true
}

// canAddHorizontal decides between growing the shortest row and starting a
// new row, by whichever keeps the tile's aspect closer to square. Members
// that fit inside the current bounding width always extend the row.
func (org *organization) canAddHorizontal(n *cosegraph.Node) bool {
	sri := org.shortestRowIndex()
	grownRowWidth := org.rowWidths[sri] + HORIZONTAL_PADDING + n.Width
	if grownRowWidth <= org.width {
		return true
	}

	grownWidth := go2.Max(org.width, grownRowWidth)
	grownHeight := org.height + go2.Max(0, n.Height-org.rowHeights[sri])

	newRowWidth := go2.Max(org.width, n.Width)
	newRowHeight := org.height + VERTICAL_PADDING + n.Height

	return aspect(grownWidth, grownHeight) <= aspect(newRowWidth, newRowHeight)
}

// aspect is the imbalance of a w x h box: 1 means square, larger means more
// lopsided in either direction.
func aspect(w, h float64) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return go2.Max(w/h, h/w)
}

// balance repeatedly shifts the last node of the longest row into the last
// row while doing so shrinks the bounding width: the grown last row must
// stay strictly inside it, and the longest row must be the unique maximum,
// otherwise a tied row keeps the width where it is.
func (org *organization) balance() {
	for len(org.rows) > 1 {
		longest := org.longestRowIndex()
		last := len(org.rows) - 1
		if longest == last {
			return
		}
		row := org.rows[longest]
		n := row[len(row)-1]
		if org.rowWidths[last]+HORIZONTAL_PADDING+n.Width >= org.width {
			return
		}
		if !org.uniqueLongest(longest) {
			return
		}
		org.rows[longest] = row[:len(row)-1]
		org.rows[last] = append(org.rows[last], n)
		org.recompute()
	}
}

// place positions every member at tile-relative coordinates, leaving a
// TILE_MARGIN border on all sides.
func (org *organization) place() {
	y := float64(TILE_MARGIN)
	for i, row := range org.rows {
		x := float64(TILE_MARGIN)
		for _, n := range row {
			n.Pos = geo.NewPoint(x+n.Width/2, y+n.Height/2)
			x += n.Width + HORIZONTAL_PADDING
		}
		y += org.rowHeights[i] + VERTICAL_PADDING
	}
}
