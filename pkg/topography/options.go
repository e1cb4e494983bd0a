package topography

import (
	"go.uber.org/zap"

	"github.com/Faultbox/topograph/pkg/random"
)

// Option configures an Engine.
type Option func(*Engine)

// WithSampler injects the uniform sampler used for generation.
func WithSampler(s random.Sampler) Option {
	return func(e *Engine) {
		if s != nil {
			e.sample = s
		}
	}
}

// WithSeed uses a deterministic PCG sampler seeded with seed.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.sample = random.New(seed)
	}
}

// WithSmoothing blurs the generated field before extraction.
func WithSmoothing(radius, iterations int) Option {
	return func(e *Engine) {
		e.blurRadius = radius
		e.blurIterations = iterations
	}
}

// WithAutoNormalize normalizes the field as part of Compute.
func WithAutoNormalize(enabled bool) Option {
	return func(e *Engine) {
		e.autoNormalize = enabled
	}
}

// WithWorkers bounds how many levels are extracted concurrently.
// Values below 1 extract levels sequentially.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithLogger sets the logger used for compute diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}
