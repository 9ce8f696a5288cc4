// Package pipeline provides the core render pipeline for starposter.
//
// This package implements the complete validate → compose → render pipeline that
// is shared by the generate, batch and panel commands. By centralizing this
// logic, every entry point seeds, composes and exports the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Validate: Check the configuration record once, at the boundary
//  2. Compose: Draw the palette and star placements into a frozen scene
//  3. Render: Export the scene in each requested format (PNG, SVG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Config:  cfg,
//	    Formats: []sink.Format{sink.FormatPNG, sink.FormatSVG},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts[sink.FormatPNG]
//
// Run individual stages:
//
//	// Compose only
//	s, seed, err := runner.Compose(ctx, opts)
//
//	// Render an existing scene
//	artifacts, err := runner.Render(ctx, s, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starposter/pkg/config"
	"github.com/matzehuels/starposter/pkg/render/sink"
	"github.com/matzehuels/starposter/pkg/scene"
)

// DefaultFormats is used when Options.Formats is empty.
var DefaultFormats = []sink.Format{sink.FormatPNG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Config is the render configuration. It is validated once by
	// ValidateAndSetDefaults.
	Config config.Config `json:"config"`

	// Formats lists the artifacts to produce, in order.
	Formats []sink.Format `json:"formats,omitempty"`

	// RunID identifies the run in logs and exports. Generated when empty.
	RunID string `json:"run_id,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run.
	RunID string

	// Seed is the seed the scene was generated from. For unseeded runs it is the
	// freshly drawn seed, so the render can be reproduced.
	Seed uint64

	// Scene is the frozen composition.
	Scene *scene.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[sink.Format][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Shapes      int
	Bytes       int
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the configuration and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Filename returns the default output name for format f under these options.
func (o *Options) Filename(f sink.Format) string {
	return sink.DefaultFilename(f, o.Config.Poster())
}
