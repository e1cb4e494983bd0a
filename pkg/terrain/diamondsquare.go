package terrain

import (
	"math"

	"github.com/Faultbox/topograph/pkg/random"
)

// DiamondSquare fills height fields with midpoint-displacement fractal terrain.
type DiamondSquare struct {
	Roughness float32 // Initial displacement amplitude
	Hurst     float32 // Amplitude decays by 2^-Hurst per iteration

	sample  random.Sampler
	written []bool
}

// NewDiamondSquare creates a generator drawing from sample.
func NewDiamondSquare(roughness, hurst float32, sample random.Sampler) *DiamondSquare {
	if sample == nil {
		sample = random.Default()
	}
	return &DiamondSquare{
		Roughness: roughness,
		Hurst:     hurst,
		sample:    sample,
	}
}

// Generate overwrites every sample of h.
//
// Samples are drawn in a fixed order: the four corners (TL, TR, BL, BR), then per
// iteration the edge midpoints row by row followed by the cell centers row by
// row. The result is therefore a pure function of the sampler sequence.
func (g *DiamondSquare) Generate(h *HeightField) {
	n := h.Size
	if cap(g.written) < len(h.Data) {
		g.written = make([]bool, len(h.Data))
	}
	g.written = g.written[:len(h.Data)]
	clear(g.written)

	last := n - 1
	g.set(h, 0, 0, g.sample())
	g.set(h, last, 0, g.sample())
	g.set(h, 0, last, g.sample())
	g.set(h, last, last, g.sample())

	decay := float32(math.Pow(2, -float64(g.Hurst)))
	amp := g.Roughness

	for chunk := last; chunk > 1; chunk /= 2 {
		half := chunk / 2
		g.edgeStep(h, chunk, half, amp)
		g.centerStep(h, chunk, half, amp)
		amp *= decay
	}
}

// edgeStep sets the midpoint of every edge between lattice points at chunk spacing.
func (g *DiamondSquare) edgeStep(h *HeightField, chunk, half int, amp float32) {
	n := h.Size
	for y := 0; y < n; y += half {
		start := half
		if (y/half)%2 == 1 {
			start = 0
		}
		for x := start; x < n; x += chunk {
			avg := g.neighbourMean(h, x, y, half)
			g.set(h, x, y, avg+g.displacement(amp))
		}
	}
}

// centerStep sets the center of every chunk×chunk cell.
func (g *DiamondSquare) centerStep(h *HeightField, chunk, half int, amp float32) {
	n := h.Size
	for y := half; y < n; y += chunk {
		for x := half; x < n; x += chunk {
			sum := h.At(x-half, y-half) + h.At(x+half, y-half) +
				h.At(x+half, y+half) + h.At(x-half, y+half)
			g.set(h, x, y, sum/4+g.displacement(amp))
		}
	}
}

// neighbourMean averages the in-grid, already written samples at distance d
// along both axes.
func (g *DiamondSquare) neighbourMean(h *HeightField, x, y, d int) float32 {
	var sum float32
	count := 0
	for _, off := range [4][2]int{{0, -d}, {d, 0}, {0, d}, {-d, 0}} {
		nx, ny := x+off[0], y+off[1]
		if nx < 0 || ny < 0 || nx >= h.Size || ny >= h.Size {
			continue
		}
		i := h.Index(nx, ny)
		if !g.written[i] {
			continue
		}
		sum += h.Data[i]
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float32(count)
}

func (g *DiamondSquare) displacement(amp float32) float32 {
	return (g.sample() - 0.5) * amp
}

func (g *DiamondSquare) set(h *HeightField, x, y int, v float32) {
	i := h.Index(x, y)
	h.Data[i] = v
	g.written[i] = true
}
