// Package math provides the 2-D geometry value types shared by the terrain packages.
package math

// Point is a position in grid-cell coordinates.
// Points are compared by exact value, so they can be used as map keys.
type Point struct {
	X, Y float32
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

// Scale returns p * s.
func (p Point) Scale(s float32) Point {
	return Point{p.X * s, p.Y * s}
}

// Segment is a directed edge between two points.
type Segment struct {
	A, B Point
}

// Reverse returns the segment with its endpoints swapped.
func (s Segment) Reverse() Segment {
	return Segment{s.B, s.A}
}

// Other returns the endpoint opposite p. If p is not an endpoint, A is returned.
func (s Segment) Other(p Point) Point {
	if s.A == p {
		return s.B
	}
	return s.A
}

// Polyline is an ordered sequence of connected points.
type Polyline []Point

// Closed reports whether the polyline ends where it starts.
func (pl Polyline) Closed() bool {
	return len(pl) > 2 && pl[0] == pl[len(pl)-1]
}

// Edges returns the number of point-pair edges in the polyline.
func (pl Polyline) Edges() int {
	if len(pl) < 2 {
		return 0
	}
	return len(pl) - 1
}

// Clone returns a copy that shares no memory with pl.
func (pl Polyline) Clone() Polyline {
	if pl == nil {
		return nil
	}
	out := make(Polyline, len(pl))
	copy(out, pl)
	return out
}

// Lerp interpolates between a and b.
func Lerp(a, b Point, t float32) Point {
	return a.Add(b.Sub(a).Scale(t))
}
