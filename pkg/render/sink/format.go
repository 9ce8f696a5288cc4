package sink

import (
	"slices"
	"strings"

	"github.com/matzehuels/starposter/pkg/errors"
)

// Format names an export format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// Default output basenames.
const (
	PlainBasename  = "pastel_stars"
	PosterBasename = "generative_star_poster"
)

// Formats returns every supported format, PNG first.
func Formats() []Format {
	return []Format{FormatPNG, FormatSVG, FormatPDF, FormatJSON}
}

// ParseFormat converts a user-supplied name (case-insensitive) into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats(), f) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, pdf, json)", s)
	}
	return f, nil
}

// ParseFormats parses a list of format names, dropping duplicates but keeping order.
func ParseFormats(names []string) ([]Format, error) {
	out := make([]Format, 0, len(names))
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ContentType returns the MIME type of an artifact in format f.
func ContentType(f Format) string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// DefaultFilename returns the download name for an artifact. Posters with a text
// overlay get a different basename from plain star fields.
func DefaultFilename(f Format, poster bool) string {
	if poster {
		return PosterBasename + f.Ext()
	}
	return PlainBasename + f.Ext()
}
