package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/starposter/pkg/fonts"
	"github.com/matzehuels/starposter/pkg/scene"
)

// svgUnitsPerInch matches the CSS pixel so browsers show the figure at its real size.
const svgUnitsPerInch = 96.0

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	runID    string
	metadata bool
}

// WithRunID records the pipeline run ID in a leading comment.
func WithRunID(id string) SVGOption { return func(r *svgRenderer) { r.runID = id } }

// WithMetadata adds data attributes with the seed and scene fingerprint.
func WithMetadata() SVGOption { return func(r *svgRenderer) { r.metadata = true } }

// RenderSVG writes the scene as a standalone SVG document sized in CSS pixels,
// one filled polygon per star in draw order followed by the text overlay.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	f := newFrame(s, svgUnitsPerInch)

	var buf bytes.Buffer
	if r.runID != "" {
		fmt.Fprintf(&buf, "<!-- starposter run %s -->\n", r.runID)
	}
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f"`,
		f.width, f.height, f.width, f.height)
	if r.metadata {
		fmt.Fprintf(&buf, ` data-seed="%d" data-fingerprint="%s"`, s.Seed(), s.Fingerprint())
	}
	buf.WriteString(">\n")

	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", s.Background().Hex())
	for _, sh := range s.Shapes() {
		renderPolygon(&buf, f, sh)
	}
	for _, t := range s.Texts() {
		renderText(&buf, f, t)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderPolygon(buf *bytes.Buffer, f frame, sh scene.Shape) {
	buf.WriteString(`  <polygon points="`)
	for i, p := range f.polygon(sh.Polygon) {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%.2f,%.2f", p.X, p.Y)
	}
	fmt.Fprintf(buf, `" fill="%s" fill-opacity="%.3f"/>`+"\n", sh.Color.Hex(), sh.Alpha)
}

func renderText(buf *bytes.Buffer, f frame, t scene.Text) {
	x, y := f.rel(t.RelX, t.RelY)
	weight := "normal"
	if t.Bold {
		weight = "bold"
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%.1f" font-weight="%s" fill="%s">`,
		x, y, fonts.FallbackFontFamily, f.points(t.Size), weight, t.Color.Hex())
	_ = xml.EscapeText(buf, []byte(t.Content))
	buf.WriteString("</text>\n")
}
