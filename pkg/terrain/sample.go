package terrain

// Sample returns the bilinearly interpolated elevation at grid coordinates
// (fx, fy). Coordinates outside the field are clamped to its border.
func (h *HeightField) Sample(fx, fy float32) float32 {
	last := float32(h.Size - 1)
	fx = clampf(fx, 0, last)
	fy = clampf(fy, 0, last)

	cellX := int(fx)
	cellY := int(fy)

	// Points on the far border interpolate within the last cell.
	if cellX >= h.Size-1 {
		cellX = h.Size - 2
	}
	if cellY >= h.Size-1 {
		cellY = h.Size - 2
	}

	fracX := fx - float32(cellX)
	fracY := fy - float32(cellY)

	top := h.At(cellX, cellY)*(1-fracX) + h.At(cellX+1, cellY)*fracX
	bottom := h.At(cellX, cellY+1)*(1-fracX) + h.At(cellX+1, cellY+1)*fracX
	return top*(1-fracY) + bottom*fracY
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
