// Package contour extracts isolines from height fields with marching squares
// and stitches the resulting segments into polylines.
package contour

import (
	"fmt"

	"github.com/Faultbox/topograph/pkg/math"
	"github.com/Faultbox/topograph/pkg/terrain"
)

// Edge identifies one side of a grid cell.
type Edge uint8

// Cell edges.
const (
	Top Edge = iota
	Right
	Bottom
	Left
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("Edge(%d)", uint8(e))
	}
}

// Corner bits of the configuration index, clockwise from top-left.
const (
	TopLeft     = 1
	TopRight    = 2
	BottomRight = 4
	BottomLeft  = 8
)

// Cases maps a 4-bit configuration index to the edge pairs that form its
// segments. Saddles (5 and 10) always pair edges as listed; the cell center is
// not sampled to disambiguate them.
var Cases = [16][][2]Edge{
	0:  nil,
	1:  {{Top, Left}},
	2:  {{Top, Right}},
	3:  {{Left, Right}},
	4:  {{Right, Bottom}},
	5:  {{Top, Right}, {Bottom, Left}},
	6:  {{Top, Bottom}},
	7:  {{Left, Bottom}},
	8:  {{Left, Bottom}},
	9:  {{Top, Bottom}},
	10: {{Top, Left}, {Right, Bottom}},
	11: {{Right, Bottom}},
	12: {{Left, Right}},
	13: {{Top, Right}},
	14: {{Top, Left}},
	15: nil,
}

// Cell holds the four corner values of a grid cell at (X, Y).
type Cell struct {
	X, Y           int
	TL, TR, BR, BL float32
}

// Config returns the configuration index of the cell against threshold t.
func (c Cell) Config(t float32) int {
	idx := 0
	if c.TL > t {
		idx |= TopLeft
	}
	if c.TR > t {
		idx |= TopRight
	}
	if c.BR > t {
		idx |= BottomRight
	}
	if c.BL > t {
		idx |= BottomLeft
	}
	return idx
}

// endpoints returns the edge endpoints ordered from the lower coordinate, so
// two cells sharing an edge interpolate it with identical operands.
func (c Cell) endpoints(e Edge) (p1, p2 math.Point, v1, v2 float32) {
	x0, y0 := float32(c.X), float32(c.Y)
	x1, y1 := x0+1, y0+1
	switch e {
	case Top:
		return math.Point{X: x0, Y: y0}, math.Point{X: x1, Y: y0}, c.TL, c.TR
	case Right:
		return math.Point{X: x1, Y: y0}, math.Point{X: x1, Y: y1}, c.TR, c.BR
	case Bottom:
		return math.Point{X: x0, Y: y1}, math.Point{X: x1, Y: y1}, c.BL, c.BR
	default:
		return math.Point{X: x0, Y: y0}, math.Point{X: x0, Y: y1}, c.TL, c.BL
	}
}

// Crossing returns the point where edge e crosses threshold t.
// It panics if the edge endpoints do not straddle t, which can only happen if
// the case table paired the wrong edges.
func (c Cell) Crossing(e Edge, t float32) math.Point {
	p1, p2, v1, v2 := c.endpoints(e)
	if (v1 > t) == (v2 > t) {
		panic(fmt.Sprintf("contour: %s edge of cell (%d,%d) does not straddle %v (%v, %v)", e, c.X, c.Y, t, v1, v2))
	}
	return math.Lerp(p1, p2, (t-v1)/(v2-v1))
}

// Segments appends the crossing segments of the cell to dst.
func (c Cell) Segments(dst []math.Segment, t float32) []math.Segment {
	for _, pair := range Cases[c.Config(t)] {
		dst = append(dst, math.Segment{
			A: c.Crossing(pair[0], t),
			B: c.Crossing(pair[1], t),
		})
	}
	return dst
}

// cellAt reads the corners of the cell whose top-left sample is (x, y).
func cellAt(h *terrain.HeightField, x, y int) Cell {
	n := h.Size
	i := x + y*n
	return Cell{
		X:  x,
		Y:  y,
		TL: h.Data[i],
		TR: h.Data[i+1],
		BR: h.Data[i+n+1],
		BL: h.Data[i+n],
	}
}

// Extract returns every segment where h crosses threshold t, scanning cells row
// by row.
func Extract(h *terrain.HeightField, t float32) []math.Segment {
	var segments []math.Segment
	for y := 0; y < h.Size-1; y++ {
		for x := 0; x < h.Size-1; x++ {
			segments = cellAt(h, x, y).Segments(segments, t)
		}
	}
	return segments
}

// Threshold returns the elevation of level out of levels.
func Threshold(level, levels int) float32 {
	return float32(level) / float32(levels)
}

// ExtractLevels extracts one segment set per level with t = level/levels.
func ExtractLevels(h *terrain.HeightField, levels int) [][]math.Segment {
	out := make([][]math.Segment, levels)
	for level := range levels {
		out[level] = Extract(h, Threshold(level, levels))
	}
	return out
}
