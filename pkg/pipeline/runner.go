package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/starposter/pkg/observability"
	"github.com/matzehuels/starposter/pkg/render/sink"
	"github.com/matzehuels/starposter/pkg/rng"
	"github.com/matzehuels/starposter/pkg/scene"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options; every run owns its generator and scene.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete validate → compose → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	result := &Result{RunID: opts.RunID}

	// Stage 1: Compose
	composeStart := time.Now()
	s, seed, err := r.Compose(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Scene = s
	result.Seed = seed
	result.Stats.Shapes = s.Len()
	result.Stats.ComposeTime = time.Since(composeStart)

	r.Logger.Debug("composed scene",
		"run", opts.RunID,
		"stars", s.Len(),
		"seed", seed,
		"duration", result.Stats.ComposeTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	for _, data := range artifacts {
		result.Stats.Bytes += len(data)
	}

	r.Logger.Debug("rendered outputs",
		"run", opts.RunID,
		"formats", opts.Formats,
		"bytes", result.Stats.Bytes,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Compose validates opts and builds the scene. It returns the seed that was used:
// the configured one when UseSeed is set, otherwise a freshly drawn one.
func (r *Runner) Compose(ctx context.Context, opts Options) (*scene.Scene, uint64, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	gen, seed := newGenerator(opts)
	opts.Logger.Debug("composing", "config", opts.Config.String(), "seed", seed)

	hooks := observability.Pipeline()
	hooks.OnComposeStart(ctx, opts.RunID, opts.Config.Stars)
	start := time.Now()
	s, err := scene.ComposeSeeded(opts.Config, gen, seed)
	shapes := 0
	if s != nil {
		shapes = s.Len()
	}
	hooks.OnComposeComplete(ctx, opts.RunID, shapes, time.Since(start), err)
	if err != nil {
		return nil, 0, err
	}
	return s, seed, nil
}

// Render exports s in every format of opts. It stops between formats when ctx is
// cancelled.
func (r *Runner) Render(ctx context.Context, s *scene.Scene, opts Options) (map[sink.Format][]byte, error) {
	r.applyLogger(&opts)
	opts.SetRenderDefaults()

	hooks := observability.Pipeline()
	artifacts := make(map[sink.Format][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hooks.OnRenderStart(ctx, opts.RunID, string(format))
		start := time.Now()
		data, err := Render(s, format, opts)
		hooks.OnRenderComplete(ctx, opts.RunID, string(format), len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		opts.Logger.Debug("rendered", "format", format, "bytes", len(data), "duration", time.Since(start))
		artifacts[format] = data
	}
	return artifacts, nil
}

// newGenerator returns the single generator for one run.
func newGenerator(opts Options) (*rand.Rand, uint64) {
	if opts.Config.UseSeed {
		return rng.New(opts.Config.Seed), opts.Config.Seed
	}
	return rng.Fresh()
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
