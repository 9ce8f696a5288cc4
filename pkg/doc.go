// Package pkg provides the core libraries for starposter, a generator of
// decorative star-polygon posters.
//
// # Overview
//
// A render scatters many wobbly, semi-transparent star polygons over a canvas
// and exports the result. The pkg directory is organized by stage:
//
//  1. [config] - The configuration record, file loading and validation
//  2. [rng], [geom], [palette] - Seeded randomness, star geometry and colors
//  3. [scene] - Composition of a frozen, immutable scene
//  4. [render/sink] - PNG, SVG, PDF and JSON exporters
//  5. [pipeline] - Orchestration (validate → compose → render)
//
// # Architecture
//
// The data flow of one render:
//
//	config.Config (defaults → file → flags)
//	         ↓
//	    [config] Validate (reject, never correct)
//	         ↓
//	    [rng] one generator per render
//	         ↓
//	    [scene] palette first, then N stars in draw order
//	         ↓
//	    [render/sink] PNG/SVG/PDF/JSON
//
// One seed reproduces the whole scene: the palette and every star draw from
// the same generator in a fixed order, and no sink touches randomness.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/starposter/pkg/config"
//	    "github.com/matzehuels/starposter/pkg/rng"
//	    "github.com/matzehuels/starposter/pkg/render/sink"
//	    "github.com/matzehuels/starposter/pkg/scene"
//	)
//
//	cfg := config.Default()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	s, err := scene.Compose(cfg, rng.New(cfg.Seed))
//	if err != nil {
//	    return err
//	}
//	png, err := sink.RenderPNG(s, sink.WithDPI(200), sink.WithTight(true))
//
// For runs with IDs, hooks and several formats use [pipeline.Runner].
//
// # Supporting Packages
//
//   - [errors] - Coded errors (INVALID_CONFIG, RENDER_FAILED, ...)
//   - [fonts] - Embedded Go fonts for text overlays
//   - [observability] - Optional hooks for compose, render and batch events
//   - [buildinfo] - Version information injected at build time
//
// [config]: https://pkg.go.dev/github.com/matzehuels/starposter/pkg/config
// [rng]: https://pkg.go.dev/github.com/matzehuels/starposter/pkg/rng
// [geom]: https://pkg.go.dev/github.com/matzehuels/starposter/pkg/geom
// [palette]: https://pkg.go.dev/github.com/matzehuels/starposter/pkg/palette
// [scene]: https://pkg.go.dev/github.com/matzehuels/starposter/pkg/scene
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/starposter/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/starposter/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/starposter/pkg/pipeline#Runner
// [errors]: https://pkg.go.dev/github.com/matzehuels/starposter/pkg/errors
// [fonts]: https://pkg.go.dev/github.com/matzehuels/starposter/pkg/fonts
// [observability]: https://pkg.go.dev/github.com/matzehuels/starposter/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/starposter/pkg/buildinfo
package pkg
