package sink

import (
	"bytes"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/matzehuels/starposter/pkg/errors"
	"github.com/matzehuels/starposter/pkg/fonts"
	"github.com/matzehuels/starposter/pkg/palette"
	"github.com/matzehuels/starposter/pkg/scene"
)

// pdfEpoch is stamped as creation date so equal scenes give equal documents.
var pdfEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	title string
}

// WithPDFTitle sets the document title metadata.
func WithPDFTitle(title string) PDFOption {
	return func(r *pdfRenderer) { r.title = title }
}

// RenderPDF renders the scene as a single-page vector PDF sized to the figure.
func RenderPDF(s *scene.Scene, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	f := newFrame(s, 1) // fpdf works in inches
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           fpdf.SizeType{Wd: f.width, Ht: f.height},
	})
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetModificationDate(pdfEpoch)
	pdf.SetCatalogSort(true)
	pdf.SetProducer("starposter", false)
	if r.title != "" {
		pdf.SetTitle(r.title, true)
	}
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	setFill(pdf, s.Background())
	pdf.Rect(0, 0, f.width, f.height, "F")

	for _, sh := range s.Shapes() {
		pts := f.polygon(sh.Polygon)
		poly := make([]fpdf.PointType, len(pts))
		for i, p := range pts {
			poly[i] = fpdf.PointType{X: p.X, Y: p.Y}
		}
		pdf.SetAlpha(sh.Alpha, "Normal")
		setFill(pdf, sh.Color)
		pdf.Polygon(poly, "F")
	}
	pdf.SetAlpha(1, "Normal")

	if len(s.Texts()) > 0 {
		pdf.AddUTF8FontFromBytes(fonts.FontFamily, "", fonts.RegularTTF())
		pdf.AddUTF8FontFromBytes(fonts.FontFamily, "B", fonts.BoldTTF())
	}
	for _, t := range s.Texts() {
		style := ""
		if t.Bold {
			style = "B"
		}
		pdf.SetFont(fonts.FontFamily, style, t.Size)
		cr, cg, cb := t.Color.Clamped().RGB255()
		pdf.SetTextColor(int(cr), int(cg), int(cb))

		x, y := f.rel(t.RelX, t.RelY)
		w := pdf.GetStringWidth(t.Content)
		// Text places the baseline; shift by about half the cap height to center.
		pdf.Text(x-w/2, y+0.35*f.points(t.Size), t.Content)
	}

	if err := pdf.Error(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "build pdf")
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "write pdf")
	}
	return buf.Bytes(), nil
}

func setFill(pdf *fpdf.Fpdf, c palette.Color) {
	r, g, b := c.Clamped().RGB255()
	pdf.SetFillColor(int(r), int(g), int(b))
}
