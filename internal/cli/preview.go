package cli

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// halfBlock draws the upper pixel in the foreground and the lower one in the background.
const halfBlock = "▀"

// previewSize returns the pixel size of a cols-wide preview for a figure of
// width×height inches. Each terminal cell shows two vertically stacked pixels.
func previewSize(cols int, width, height float64) (w, h int) {
	w = max(cols, 1)
	h = int(math.Round(float64(w) * height / width))
	if h%2 == 1 {
		h++
	}
	return w, max(h, 2)
}

// halfBlocks downsamples img to cols columns and encodes it as rows of half-block
// characters, two pixels per cell.
func halfBlocks(img image.Image, cols int) string {
	b := img.Bounds()
	w, h := previewSize(cols, float64(b.Dx()), float64(b.Dy()))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	var sb strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			top, bottom := hexOf(dst.NRGBAAt(x, y)), hexOf(dst.NRGBAAt(x, y+1))
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(halfBlock))
		}
	}
	return sb.String()
}

func hexOf(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
