package terrain

// Normalize rescales h linearly so its minimum maps to 0 and its maximum to 1.
// A constant field has no range to stretch; every sample is set to 0 instead.
// It returns the range observed before rescaling.
func Normalize(h *HeightField) (min, max float32) {
	min, max = h.Range()
	span := max - min
	if span == 0 {
		clear(h.Data)
		return min, max
	}

	for i, v := range h.Data {
		h.Data[i] = (v - min) / span
	}
	return min, max
}
