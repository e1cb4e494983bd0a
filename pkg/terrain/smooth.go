package terrain

// Smooth applies a box blur of the given radius to h, iterations times.
// The window is clamped at the borders, so edge samples average fewer neighbours.
func Smooth(h *HeightField, radius, iterations int) {
	if radius <= 0 || iterations <= 0 {
		return
	}

	n := h.Size
	scratch := make([]float32, len(h.Data))

	for it := 0; it < iterations; it++ {
		// Horizontal pass into scratch, vertical pass back into h.
		for y := 0; y < n; y++ {
			row := h.Data[y*n : y*n+n]
			for x := 0; x < n; x++ {
				lo, hi := clampi(x-radius, 0, n-1), clampi(x+radius, 0, n-1)
				var sum float32
				for i := lo; i <= hi; i++ {
					sum += row[i]
				}
				scratch[y*n+x] = sum / float32(hi-lo+1)
			}
		}
		for x := 0; x < n; x++ {
			for y := 0; y < n; y++ {
				lo, hi := clampi(y-radius, 0, n-1), clampi(y+radius, 0, n-1)
				var sum float32
				for i := lo; i <= hi; i++ {
					sum += scratch[i*n+x]
				}
				h.Data[y*n+x] = sum / float32(hi-lo+1)
			}
		}
	}
}

func clampi(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
