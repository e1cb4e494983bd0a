// Package terrain provides height field synthesis and post-processing.
package terrain

import (
	"errors"
	"fmt"
)

// Height field errors.
var (
	ErrInvalidSize = errors.New("invalid height field size: size-1 must be a power of two and size >= 3")
)

// HeightField is a square grid of elevation samples stored row-major.
type HeightField struct {
	Size int       // Samples per axis
	Data []float32 // Size*Size samples, index = x + y*Size
}

// ValidSize reports whether n can back a height field.
func ValidSize(n int) bool {
	if n < 3 {
		return false
	}
	m := n - 1
	return m&(m-1) == 0
}

// NewHeightField allocates a zero-filled height field of the given size.
func NewHeightField(size int) (*HeightField, error) {
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	return &HeightField{
		Size: size,
		Data: make([]float32, size*size),
	}, nil
}

// Index returns the buffer offset of (x, y).
func (h *HeightField) Index(x, y int) int {
	return x + y*h.Size
}

// At returns the sample at (x, y).
func (h *HeightField) At(x, y int) float32 {
	return h.Data[x+y*h.Size]
}

// Set writes the sample at (x, y).
func (h *HeightField) Set(x, y int, v float32) {
	h.Data[x+y*h.Size] = v
}

// Levels returns k for a field of size 2^k+1.
func (h *HeightField) Levels() int {
	k := 0
	for m := h.Size - 1; m > 1; m >>= 1 {
		k++
	}
	return k
}

// Reset zero-fills the field.
func (h *HeightField) Reset() {
	clear(h.Data)
}

// Snapshot returns a copy of the sample buffer.
func (h *HeightField) Snapshot() []float32 {
	out := make([]float32, len(h.Data))
	copy(out, h.Data)
	return out
}

// Range returns the minimum and maximum sample.
func (h *HeightField) Range() (min, max float32) {
	if len(h.Data) == 0 {
		return 0, 0
	}

	min = h.Data[0]
	max = h.Data[0]

	for _, v := range h.Data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return min, max
}
