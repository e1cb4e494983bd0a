package contour

import (
	"github.com/Faultbox/topograph/pkg/math"
)

// Stitch joins segments that share an exact endpoint into maximal polylines.
//
// Segments are consumed in insertion order. Each chain starts from the lowest
// unvisited segment, grows forward from its B end and then backward from its A
// end. At a branch point the unvisited incident segment with the lowest index
// is taken. A chain that returns to its starting point is closed and its first
// and last points coincide. Every segment contributes exactly one edge to
// exactly one polyline.
func Stitch(segments []math.Segment) []math.Polyline {
	if len(segments) == 0 {
		return nil
	}

	incident := make(map[math.Point][]int, len(segments)*2)
	for i, s := range segments {
		incident[s.A] = append(incident[s.A], i)
		if s.B != s.A {
			incident[s.B] = append(incident[s.B], i)
		}
	}

	visited := make([]bool, len(segments))

	// next pops the lowest unvisited segment touching p.
	next := func(p math.Point) (int, bool) {
		for _, i := range incident[p] {
			if !visited[i] {
				visited[i] = true
				return i, true
			}
		}
		return 0, false
	}

	var polylines []math.Polyline
	for i, s := range segments {
		if visited[i] {
			continue
		}
		visited[i] = true

		start := s.A
		forward := math.Polyline{s.A, s.B}
		closed := s.A == s.B

		for !closed {
			tail := forward[len(forward)-1]
			j, ok := next(tail)
			if !ok {
				break
			}
			p := segments[j].Other(tail)
			forward = append(forward, p)
			closed = p == start
		}

		if closed {
			polylines = append(polylines, forward)
			continue
		}

		var backward []math.Point
		head := start
		for {
			j, ok := next(head)
			if !ok {
				break
			}
			head = segments[j].Other(head)
			backward = append(backward, head)
		}

		if len(backward) == 0 {
			polylines = append(polylines, forward)
			continue
		}

		line := make(math.Polyline, 0, len(backward)+len(forward))
		for k := len(backward) - 1; k >= 0; k-- {
			line = append(line, backward[k])
		}
		line = append(line, forward...)
		polylines = append(polylines, line)
	}

	return polylines
}

// StitchLevels stitches every level of segments independently.
func StitchLevels(levels [][]math.Segment) [][]math.Polyline {
	out := make([][]math.Polyline, len(levels))
	for i, segments := range levels {
		out[i] = Stitch(segments)
	}
	return out
}

// EdgeCount returns the total number of edges across polylines.
func EdgeCount(polylines []math.Polyline) int {
	n := 0
	for _, pl := range polylines {
		n += pl.Edges()
	}
	return n
}
