// Package fonts provides the embedded fonts used for poster titles.
//
// The Go font family ships inside golang.org/x/image, so every sink can draw text
// without looking up system fonts. Raster sinks use [Face]; the PDF sink embeds the
// TTF bytes directly.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the family name used when embedding the fonts in PDF output.
const FontFamily = "Go"

// FallbackFontFamily is the CSS font-family list for SVG output.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

// RegularTTF returns the regular weight TTF data.
func RegularTTF() []byte { return goregular.TTF }

// BoldTTF returns the bold weight TTF data.
func BoldTTF() []byte { return gobold.TTF }

var (
	parseOnce sync.Once
	regular   *truetype.Font
	bold      *truetype.Font
	parseErr  error
)

func parsed() (*truetype.Font, *truetype.Font, error) {
	parseOnce.Do(func() {
		if regular, parseErr = truetype.Parse(goregular.TTF); parseErr != nil {
			return
		}
		bold, parseErr = truetype.Parse(gobold.TTF)
	})
	return regular, bold, parseErr
}

// Face returns a font face of the given size in points, scaled for dpi.
// Faces are not safe for concurrent use; callers create one per render.
func Face(isBold bool, points, dpi float64) (font.Face, error) {
	r, b, err := parsed()
	if err != nil {
		return nil, err
	}
	f := r
	if isBold {
		f = b
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    points,
		DPI:     dpi,
		Hinting: font.HintingFull,
	}), nil
}
