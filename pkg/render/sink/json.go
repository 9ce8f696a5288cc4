package sink

import (
	"encoding/json"

	"github.com/matzehuels/starposter/pkg/errors"
	"github.com/matzehuels/starposter/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	runID    string
	vertices bool
}

// WithJSONRunID records the pipeline run ID in the manifest.
func WithJSONRunID(id string) JSONOption { return func(r *jsonRenderer) { r.runID = id } }

// WithoutVertices omits polygon vertices, keeping only per-star parameters.
func WithoutVertices() JSONOption { return func(r *jsonRenderer) { r.vertices = false } }

type jsonOutput struct {
	RunID        string     `json:"run_id,omitempty"`
	Seed         uint64     `json:"seed"`
	WobblePolicy string     `json:"wobble_policy"`
	Fingerprint  string     `json:"fingerprint"`
	Width        float64    `json:"width_in"`
	Height       float64    `json:"height_in"`
	Bounds       [4]float64 `json:"bounds"` // min x, min y, max x, max y
	Background   string     `json:"background"`
	Palette      []string   `json:"palette"`
	Stars        []jsonStar `json:"stars"`
	Texts        []jsonText `json:"texts,omitempty"`
}

type jsonStar struct {
	Center   [2]float64   `json:"center"`
	Points   int          `json:"points"`
	Wobble   float64      `json:"wobble"`
	Color    string       `json:"color"`
	Alpha    float64      `json:"alpha"`
	Vertices [][2]float64 `json:"vertices,omitempty"`
}

type jsonText struct {
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size_pt"`
	Bold    bool    `json:"bold,omitempty"`
}

// RenderJSON exports the scene as a pretty-printed manifest: generation metadata,
// the palette and every star in draw order. Vertices are in scene coordinates with
// the closing vertex included.
func RenderJSON(s *scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{vertices: true}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := s.Size()
	b := s.Bounds()
	out := jsonOutput{
		RunID:        r.runID,
		Seed:         s.Seed(),
		WobblePolicy: s.WobblePolicy().String(),
		Fingerprint:  s.Fingerprint(),
		Width:        w,
		Height:       h,
		Bounds:       [4]float64{b.MinX, b.MinY, b.MaxX, b.MaxY},
		Background:   s.Background().Hex(),
		Palette:      s.Palette().Hex(),
		Stars:        make([]jsonStar, 0, s.Len()),
	}

	for _, sh := range s.Shapes() {
		js := jsonStar{
			Center: [2]float64{sh.Center.X, sh.Center.Y},
			Points: sh.Points,
			Wobble: sh.Wobble,
			Color:  sh.Color.Hex(),
			Alpha:  sh.Alpha,
		}
		if r.vertices {
			js.Vertices = make([][2]float64, len(sh.Polygon))
			for i, p := range sh.Polygon {
				js.Vertices[i] = [2]float64{p.X, p.Y}
			}
		}
		out.Stars = append(out.Stars, js)
	}
	for _, t := range s.Texts() {
		out.Texts = append(out.Texts, jsonText{Content: t.Content, X: t.RelX, Y: t.RelY, Size: t.Size, Bold: t.Bold})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode json")
	}
	return data, nil
}
