// Package render groups the output stages of a poster render.
//
// Rendering always starts from a frozen [scene.Scene]; nothing in this tree draws
// random numbers or changes geometry. The format-specific exporters live in the
// [sink] subpackage:
//
//	s, err := scene.Compose(cfg, rng.New(cfg.Seed))
//	png, err := sink.RenderPNG(s, sink.WithDPI(float64(cfg.DPI)), sink.WithTight(cfg.Tight))
//	svg := sink.RenderSVG(s)
//	pdf, err := sink.RenderPDF(s)
//
// [scene.Scene]: github.com/matzehuels/starposter/pkg/scene.Scene
// [sink]: github.com/matzehuels/starposter/pkg/render/sink
package render
