// Package sink provides output format renderers for frozen scenes.
//
// # Overview
//
// A "sink" transforms a [scene.Scene] into a final output format. Scenes are
// immutable, so any number of sinks may run over the same scene concurrently.
//
//   - PNG: raster output at a fixed DPI, optionally cropped to the content
//   - SVG: scalable vector graphics, one polygon element per star
//   - PDF: single-page vector document sized to the figure
//   - JSON: scene manifest with the seed, palette and every star
//
// Every sink maps scene coordinates the same way: one scale for both axes, bounds
// centered in the figure, y flipped so larger scene y is higher on the page.
//
// # PNG Output
//
// [RenderPNG] rasterizes with github.com/fogleman/gg. [RenderImage] returns the
// decoded raster for previews:
//
//	png, err := sink.RenderPNG(s, sink.WithDPI(200), sink.WithTight(true))
//	img, err := sink.RenderImage(s, sink.WithDPI(12))
//
// Without [WithTight] an 8×8 inch figure at 200 DPI is 1600×1600 pixels. A tight
// crop keeps the whole canvas and any text outside it, plus a 0.1 inch pad, so its
// size never depends on where the stars landed.
//
// # SVG and PDF Output
//
// [RenderSVG] writes plain SVG with fill-opacity per star. [RenderPDF] draws the
// same shapes with codeberg.org/go-pdf/fpdf, using the page's alpha state for
// transparency and the embedded Go fonts for text.
//
// # Files
//
// [ContentType] and [DefaultFilename] describe the artifact for downloads:
// "pastel_stars.png" for a plain field, "generative_star_poster.png" when the
// scene carries a title overlay.
package sink
