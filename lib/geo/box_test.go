package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pathviz/cose/lib/geo"
)

func TestClippingPoint(t *testing.T) {
	// 100x50 box centered at the origin:
	// .        ┌────────────┐
	// .        │            │
	// .        │     ·──────┼──► (200, 0) clips at (50, 0)
	// .        │            │
	// .        └────────────┘
	b := geo.NewCenteredBox(geo.NewPoint(0, 0), 100, 50)

	assert.Equal(t, geo.NewPoint(50, 0), b.ClippingPoint(geo.NewPoint(200, 0)))
	assert.Equal(t, geo.NewPoint(-50, 0), b.ClippingPoint(geo.NewPoint(-200, 0)))
	assert.Equal(t, geo.NewPoint(0, 25), b.ClippingPoint(geo.NewPoint(0, 200)))
	assert.Equal(t, geo.NewPoint(0, -25), b.ClippingPoint(geo.NewPoint(0, -200)))

	// slope 1 is steeper than the box's 50/100 aspect, so the line exits
	// through the bottom border (y grows downward-agnostic here)
	assert.Equal(t, geo.NewPoint(25, 25), b.ClippingPoint(geo.NewPoint(100, 100)))
	assert.Equal(t, geo.NewPoint(-25, -25), b.ClippingPoint(geo.NewPoint(-100, -100)))

	// shallow slope exits through the right border
	p := b.ClippingPoint(geo.NewPoint(250, 50))
	assert.Equal(t, 50., p.X)
	assert.InDelta(t, 10, p.Y, 1e-9)

	// coincident point clips to the center itself
	assert.Equal(t, geo.NewPoint(0, 0), b.ClippingPoint(geo.NewPoint(0, 0)))
}

func TestClippingPointStaysOnBorder(t *testing.T) {
	b := geo.NewCenteredBox(geo.NewPoint(3, -7), 40, 60)
	targets := []*geo.Point{
		geo.NewPoint(100, 100),
		geo.NewPoint(-100, 13),
		geo.NewPoint(3, 500),
		geo.NewPoint(4, -6),
	}
	for _, target := range targets {
		p := b.ClippingPoint(target)
		assert.True(t, b.Contains(p), "clipping point %s toward %s is outside %s", p.ToString(), target.ToString(), b.ToString())
	}
}

func TestOverlap(t *testing.T) {
	b1 := geo.NewCenteredBox(geo.NewPoint(0, 0), 10, 10)

	// half-overlapping horizontally, fully vertically
	b2 := geo.NewCenteredBox(geo.NewPoint(5, 0), 10, 10)
	assert.InDelta(t, 11.1803, b1.Overlap(b2), 0.001) // sqrt(5^2 + 10^2)
	assert.Equal(t, b1.Overlap(b2), b2.Overlap(b1))

	// disjoint on x
	b3 := geo.NewCenteredBox(geo.NewPoint(20, 0), 10, 10)
	assert.Zero(t, b1.Overlap(b3))

	// touching borders count as no overlap
	b4 := geo.NewCenteredBox(geo.NewPoint(10, 0), 10, 10)
	assert.Zero(t, b1.Overlap(b4))
}

func TestExpand(t *testing.T) {
	b := geo.NewBox(geo.NewPoint(10, 10), 20, 20)
	e := b.Expand(geo.Spacing{Top: 1, Right: 2, Bottom: 3, Left: 4})
	assert.Equal(t, geo.NewPoint(6, 9), e.TopLeft)
	assert.Equal(t, 26., e.Width)
	assert.Equal(t, 24., e.Height)
}

func TestVectorCap(t *testing.T) {
	v := geo.NewVector(3, 4)
	capped := v.Cap(2.5)
	assert.InDelta(t, 2.5, capped.Length(), 1e-9)
	assert.InDelta(t, 1.5, capped[0], 1e-9)
	assert.InDelta(t, 2.0, capped[1], 1e-9)

	// short vectors pass through untouched
	assert.Equal(t, v, v.Cap(10))
	// zero vectors have no direction to preserve
	assert.Equal(t, geo.NewVector(0, 0), geo.NewVector(0, 0).Cap(5))
}
