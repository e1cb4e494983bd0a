package formats

import (
	"errors"
	"fmt"

	"github.com/Faultbox/topograph/pkg/math"
)

// Separator is the coordinate value that terminates a flattened polyline.
// Valid grid coordinates are never negative.
const Separator float32 = -1

// ErrMalformedBorders reports a flat border buffer that cannot be split.
var ErrMalformedBorders = errors.New("malformed border buffer")

// FlattenBorders encodes polylines as x0,y0,x1,y1,...,-1,-1 with one separator
// pair after every polyline.
func FlattenBorders(polylines []math.Polyline) []float32 {
	n := 0
	for _, pl := range polylines {
		n += 2*len(pl) + 2
	}

	buf := make([]float32, 0, n)
	for _, pl := range polylines {
		for _, p := range pl {
			buf = append(buf, p.X, p.Y)
		}
		buf = append(buf, Separator, Separator)
	}
	return buf
}

// SplitBorders decodes a buffer produced by FlattenBorders.
func SplitBorders(buf []float32) ([]math.Polyline, error) {
	if len(buf)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrMalformedBorders, len(buf))
	}

	var polylines []math.Polyline
	var current math.Polyline
	for i := 0; i < len(buf); i += 2 {
		x, y := buf[i], buf[i+1]
		if x == Separator && y == Separator {
			if len(current) < 2 {
				return nil, fmt.Errorf("%w: polyline %d has %d points", ErrMalformedBorders, len(polylines), len(current))
			}
			polylines = append(polylines, current)
			current = nil
			continue
		}
		if x < 0 || y < 0 {
			return nil, fmt.Errorf("%w: negative coordinate (%v, %v) at %d", ErrMalformedBorders, x, y, i)
		}
		current = append(current, math.Point{X: x, Y: y})
	}

	if len(current) != 0 {
		return nil, fmt.Errorf("%w: unterminated polyline", ErrMalformedBorders)
	}
	return polylines, nil
}
