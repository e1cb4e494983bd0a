// Package topography ties terrain generation and contour extraction together
// behind a single engine consumed by rendering hosts.
package topography

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/topograph/pkg/contour"
	"github.com/Faultbox/topograph/pkg/math"
	"github.com/Faultbox/topograph/pkg/random"
	"github.com/Faultbox/topograph/pkg/terrain"
)

// Engine errors.
var (
	ErrInvalidLevels = errors.New("invalid level count: must be at least 1")
)

// Engine owns a height field and the contour polylines extracted from it.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	field     *terrain.HeightField
	generator *terrain.DiamondSquare
	levels    int
	borders   [][]math.Polyline

	sample         random.Sampler
	blurRadius     int
	blurIterations int
	autoNormalize  bool
	workers        int
	log            *zap.Logger
}

// New creates an engine for a size×size field with the given number of
// contour levels. size-1 must be a power of two and size at least 3.
func New(size, levels int, roughness, hurst float32, opts ...Option) (*Engine, error) {
	field, err := terrain.NewHeightField(size)
	if err != nil {
		return nil, err
	}
	if levels < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLevels, levels)
	}

	e := &Engine{
		field:   field,
		levels:  levels,
		borders: make([][]math.Polyline, levels),
		sample:  random.Default(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.generator = terrain.NewDiamondSquare(roughness, hurst, e.sample)

	return e, nil
}

// Size returns the number of samples per axis.
func (e *Engine) Size() int { return e.field.Size }

// Levels returns the number of contour levels.
func (e *Engine) Levels() int { return e.levels }

// Threshold returns the elevation traced by level.
func (e *Engine) Threshold(level int) float32 {
	return contour.Threshold(level, e.levels)
}

// Compute regenerates the field and replaces the contour polylines of every
// level. If ctx is cancelled before all levels finish, the previous polylines
// are kept and ctx.Err() is returned; the field has been regenerated regardless.
func (e *Engine) Compute(ctx context.Context) error {
	start := time.Now()

	e.field.Reset()
	e.generator.Generate(e.field)
	terrain.Smooth(e.field, e.blurRadius, e.blurIterations)
	if e.autoNormalize {
		terrain.Normalize(e.field)
	}
	generated := time.Since(start)

	borders := make([][]math.Polyline, e.levels)
	g, ctx := errgroup.WithContext(ctx)
	if e.workers > 0 {
		g.SetLimit(e.workers)
	} else {
		g.SetLimit(1)
	}

	for level := range e.levels {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			segments := contour.Extract(e.field, e.Threshold(level))
			borders[level] = contour.Stitch(segments)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	e.borders = borders

	e.log.Debug("terrain computed",
		zap.Int("size", e.field.Size),
		zap.Int("levels", e.levels),
		zap.Duration("generate", generated),
		zap.Duration("total", time.Since(start)),
	)
	return nil
}

// Normalize rescales the live field to [0, 1]. A constant field becomes all
// zeros. Contour polylines are not recomputed.
func (e *Engine) Normalize() {
	min, max := terrain.Normalize(e.field)
	if min == max {
		e.log.Debug("normalized constant field", zap.Float32("value", min))
	}
}

// Field returns the live height field. Callers must not modify it.
func (e *Engine) Field() *terrain.HeightField {
	return e.field
}

// Map returns a copy of the row-major height buffer.
func (e *Engine) Map() []float32 {
	return e.field.Snapshot()
}

// LevelBorders returns a copy of the polylines for level. Levels outside
// [0, Levels()) have no data and yield an empty result.
func (e *Engine) LevelBorders(level int) []math.Polyline {
	if level < 0 || level >= e.levels {
		return []math.Polyline{}
	}
	src := e.borders[level]
	out := make([]math.Polyline, len(src))
	for i, pl := range src {
		out[i] = pl.Clone()
	}
	return out
}
