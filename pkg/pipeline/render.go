package pipeline

import (
	"github.com/matzehuels/starposter/pkg/buildinfo"
	"github.com/matzehuels/starposter/pkg/errors"
	"github.com/matzehuels/starposter/pkg/render/sink"
	"github.com/matzehuels/starposter/pkg/scene"
)

// Render generates one artifact for s in format f.
func Render(s *scene.Scene, f sink.Format, opts Options) ([]byte, error) {
	cfg := opts.Config
	switch f {
	case sink.FormatPNG:
		return sink.RenderPNG(s, sink.WithDPI(float64(cfg.DPI)), sink.WithTight(cfg.Tight))
	case sink.FormatSVG:
		return sink.RenderSVG(s, buildSVGOptions(opts)...), nil
	case sink.FormatPDF:
		return sink.RenderPDF(s, sink.WithPDFTitle(documentTitle(cfg.Title, cfg.Poster())))
	case sink.FormatJSON:
		return sink.RenderJSON(s, buildJSONOptions(opts)...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", f)
	}
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithMetadata()}
	if opts.RunID != "" {
		svgOpts = append(svgOpts, sink.WithRunID(opts.RunID+" "+buildinfo.Short()))
	}
	return svgOpts
}

// buildJSONOptions builds JSON manifest options.
func buildJSONOptions(opts Options) []sink.JSONOption {
	jsonOpts := []sink.JSONOption{sink.WithJSONRunID(opts.RunID)}
	if opts.Config.NoVertices {
		jsonOpts = append(jsonOpts, sink.WithoutVertices())
	}
	return jsonOpts
}

func documentTitle(title string, poster bool) string {
	if poster && title != "" {
		return title
	}
	return "Pastel Stars"
}
