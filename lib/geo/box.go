package geo

import (
	"fmt"
	"math"
)

type Box struct {
	TopLeft *Point
	Width   float64
	Height  float64
}

// Spacing is a per-side inset, e.g. a container's padding around its children
type Spacing struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

func NewBox(tl *Point, width, height float64) *Box {
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

// NewCenteredBox builds a Box whose center is at center
func NewCenteredBox(center *Point, width, height float64) *Box {
	return NewBox(NewPoint(center.X-width/2, center.Y-height/2), width, height)
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

func (b *Box) Center() *Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

func (b *Box) Contains(p *Point) bool {
	return b.TopLeft.X <= p.X && p.X <= b.TopLeft.X+b.Width &&
		b.TopLeft.Y <= p.Y && p.Y <= b.TopLeft.Y+b.Height
}

// Expand grows the box by the given spacing on each side
func (b *Box) Expand(s Spacing) *Box {
	return NewBox(
		NewPoint(b.TopLeft.X-s.Left, b.TopLeft.Y-s.Top),
		b.Width+s.Left+s.Right,
		b.Height+s.Top+s.Bottom,
	)
}

// ClippingPoint returns the point where the line from the box center toward
// the given point crosses the box border. The border is chosen by comparing
// the slope of the line against the box's own height/width ratio:
// steeper lines exit through the top or bottom, shallower ones through the
// left or right side. Coincident points clip to the center itself.
func (b *Box) ClippingPoint(toward *Point) *Point {
	c := b.Center()
	dx := toward.X - c.X
	dy := toward.Y - c.Y

	if dx == 0 && dy == 0 {
		return c
	}
	if dx == 0 {
		return NewPoint(c.X, c.Y+float64(Sign(dy))*b.Height/2)
	}
	if dy == 0 {
		return NewPoint(c.X+float64(Sign(dx))*b.Width/2, c.Y)
	}

	slope := dy / dx
	if math.Abs(slope) > b.Height/b.Width {
		// crosses the top or bottom border
		return NewPoint(
			c.X+float64(Sign(dx))*(b.Height/2)/math.Abs(slope),
			c.Y+float64(Sign(dy))*b.Height/2,
		)
	}
	// crosses the left or right border
	return NewPoint(
		c.X+float64(Sign(dx))*b.Width/2,
		c.Y+float64(Sign(dy))*(b.Width/2)*math.Abs(slope),
	)
}

// Overlap measures how much two boxes overlap: the euclidean norm of the
// positive per-axis overlaps, or 0 if the boxes are disjoint on either axis.
func (b *Box) Overlap(other *Box) float64 {
	c1, c2 := b.Center(), other.Center()
	overlapX := (b.Width+other.Width)/2 - math.Abs(c1.X-c2.X)
	overlapY := (b.Height+other.Height)/2 - math.Abs(c1.Y-c2.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return 0
	}
	return math.Sqrt(overlapX*overlapX + overlapY*overlapY)
}

func (b *Box) ToString() string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("{TopLeft: %s, Width: %.0f, Height: %.0f}", b.TopLeft.ToString(), b.Width, b.Height)
}
