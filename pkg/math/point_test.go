package math

import (
	"testing"
)

func TestPointAdd(t *testing.T) {
	a := Point{1, 2}
	b := Point{3, 4}
	got := a.Add(b)
	want := Point{4, 6}
	if got != want {
		t.Errorf("Point.Add() = %v, want %v", got, want)
	}
}

func TestLerp(t *testing.T) {
	a := Point{0, 2}
	b := Point{1, 2}
	got := Lerp(a, b, 0.25)
	want := Point{0.25, 2}
	if got != want {
		t.Errorf("Lerp() = %v, want %v", got, want)
	}
}

func TestSegmentOther(t *testing.T) {
	s := Segment{Point{0, 0}, Point{1, 1}}
	if got := s.Other(Point{0, 0}); got != (Point{1, 1}) {
		t.Errorf("Other(A) = %v, want B", got)
	}
	if got := s.Other(Point{1, 1}); got != (Point{0, 0}) {
		t.Errorf("Other(B) = %v, want A", got)
	}
	if r := s.Reverse(); r.A != s.B || r.B != s.A {
		t.Errorf("Reverse() = %v", r)
	}
}

func TestPolylineClosed(t *testing.T) {
	tests := []struct {
		name string
		pl   Polyline
		want bool
	}{
		{"empty", nil, false},
		{"open", Polyline{{0, 0}, {1, 0}}, false},
		{"degenerate pair", Polyline{{0, 0}, {0, 0}}, false},
		{"triangle", Polyline{{0, 0}, {1, 0}, {0, 1}, {0, 0}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pl.Closed(); got != tt.want {
				t.Errorf("Closed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolylineClone(t *testing.T) {
	pl := Polyline{{0, 0}, {1, 1}}
	c := pl.Clone()
	c[0] = Point{5, 5}
	if pl[0] != (Point{0, 0}) {
		t.Error("Clone shares memory with the original")
	}
	if pl.Edges() != 1 {
		t.Errorf("Edges() = %d, want 1", pl.Edges())
	}
}
