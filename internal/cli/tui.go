package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/starposter/pkg/config"
	"github.com/matzehuels/starposter/pkg/geom"
	"github.com/matzehuels/starposter/pkg/pipeline"
	"github.com/matzehuels/starposter/pkg/render/sink"
	"github.com/matzehuels/starposter/pkg/rng"
)

// Panel styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	defaultPreviewCols = 48
	minPreviewCols     = 16
	maxPreviewCols     = 96
	controlsWidth      = 40
)

// =============================================================================
// Controls
// =============================================================================

// control is one editable row of the panel. adjust moves the value by steps
// slider steps (negative to decrease); the result is clamped by the model.
type control struct {
	label  string
	value  func(c *config.Config) string
	adjust func(c *config.Config, steps int)
}

func sliderControl(label string, s config.Slider, field func(c *config.Config) *float64) control {
	return control{
		label:  label,
		value:  func(c *config.Config) string { return fmt.Sprintf("%.2f", *field(c)) },
		adjust: func(c *config.Config, steps int) { *field(c) = s.Clamp(*field(c) + float64(steps)*s.Step) },
	}
}

func intControl(label string, s config.Slider, field func(c *config.Config) *int) control {
	return control{
		label:  label,
		value:  func(c *config.Config) string { return fmt.Sprint(*field(c)) },
		adjust: func(c *config.Config, steps int) { *field(c) = int(s.Clamp(float64(*field(c) + steps*int(s.Step)))) },
	}
}

// minMax keeps the other handle of a range slider in order after one moved.
func minMax(lo, hi *float64, movedLo bool) {
	if *lo <= *hi {
		return
	}
	if movedLo {
		*hi = *lo
	} else {
		*lo = *hi
	}
}

var panelControls = []control{
	intControl("Stars", config.StarsSlider, func(c *config.Config) *int { return &c.Stars }),
	rangeControl("Size min", config.SizeSlider, true, func(c *config.Config) (*float64, *float64) { return &c.SizeMin, &c.SizeMax }),
	rangeControl("Size max", config.SizeSlider, false, func(c *config.Config) (*float64, *float64) { return &c.SizeMin, &c.SizeMax }),
	rangeControl("Wobble min", config.WobbleSlider, true, func(c *config.Config) (*float64, *float64) { return &c.WobbleMin, &c.WobbleMax }),
	rangeControl("Wobble max", config.WobbleSlider, false, func(c *config.Config) (*float64, *float64) { return &c.WobbleMin, &c.WobbleMax }),
	rangeControl("Inner min", config.InnerRatioSlider, true, func(c *config.Config) (*float64, *float64) { return &c.InnerRatioMin, &c.InnerRatioMax }),
	rangeControl("Inner max", config.InnerRatioSlider, false, func(c *config.Config) (*float64, *float64) { return &c.InnerRatioMin, &c.InnerRatioMax }),
	rangeControl("Alpha min", config.AlphaSlider, true, func(c *config.Config) (*float64, *float64) { return &c.AlphaMin, &c.AlphaMax }),
	rangeControl("Alpha max", config.AlphaSlider, false, func(c *config.Config) (*float64, *float64) { return &c.AlphaMin, &c.AlphaMax }),
	intControl("Width in", config.InchesSlider, func(c *config.Config) *int { return &c.Width }),
	intControl("Height in", config.InchesSlider, func(c *config.Config) *int { return &c.Height }),
	{
		label: "Palette",
		value: func(c *config.Config) string { return c.Palette },
		adjust: func(c *config.Config, steps int) {
			for range abs(steps) {
				c.Palette = string(c.Mode().Next())
			}
		},
	},
	{
		label:  "Wobble policy",
		value:  func(c *config.Config) string { return c.WobblePolicy },
		adjust: func(c *config.Config, _ int) { c.WobblePolicy = togglePolicy(c.WobblePolicy) },
	},
	{
		label: "Seed",
		value: func(c *config.Config) string {
			if !c.UseSeed {
				return "random"
			}
			return fmt.Sprint(c.Seed)
		},
		adjust: func(c *config.Config, steps int) {
			c.UseSeed = true
			c.Seed = uint64(config.SeedSlider.Clamp(float64(c.Seed) + float64(steps)))
		},
	},
	{
		label:  "Show text",
		value:  func(c *config.Config) string { return onOff(c.ShowText) },
		adjust: func(c *config.Config, _ int) { c.ShowText = !c.ShowText },
	},
}

func rangeControl(label string, s config.Slider, lo bool, pair func(c *config.Config) (*float64, *float64)) control {
	field := func(c *config.Config) *float64 {
		l, h := pair(c)
		if lo {
			return l
		}
		return h
	}
	base := sliderControl(label, s, field)
	return control{
		label: label,
		value: base.value,
		adjust: func(c *config.Config, steps int) {
			base.adjust(c, steps)
			l, h := pair(c)
			minMax(l, h, lo)
		},
	}
}

func togglePolicy(p string) string {
	if p == geom.WobbleHalf.String() {
		return geom.WobbleFull.String()
	}
	return geom.WobbleHalf.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// =============================================================================
// PanelModel - Interactive control panel
// =============================================================================

// previewMsg carries a finished preview render.
type previewMsg struct {
	gen  int
	seed uint64
	text string
	err  error
}

// exportMsg carries the result of an export.
type exportMsg struct {
	paths []string
	err   error
}

// PanelModel is the bubbletea model for the interactive control panel.
type PanelModel struct {
	Config  config.Config
	Cursor  int
	Formats []sink.Format
	Output  string

	runner  *pipeline.Runner
	ctx     context.Context
	seed    uint64 // seed used while Config.UseSeed is off
	gen     int    // increments per requested preview; stale results are dropped
	cols    int
	preview string
	status  string
	err     error
}

// NewPanelModel creates a panel editing cfg. Exports write formats to output
// (default filenames when output is empty).
func NewPanelModel(ctx context.Context, runner *pipeline.Runner, cfg config.Config, formats []sink.Format, output string) PanelModel {
	_, seed := rng.Fresh()
	return PanelModel{
		Config:  cfg.Clamp(),
		Formats: formats,
		Output:  output,
		runner:  runner,
		ctx:     ctx,
		seed:    seed,
		cols:    defaultPreviewCols,
	}
}

// renderConfig is the configuration the preview and exports use. An unseeded
// panel keeps its drawn seed until the user regenerates.
func (m PanelModel) renderConfig() config.Config {
	cfg := m.Config.Clone()
	if !cfg.UseSeed {
		cfg.UseSeed, cfg.Seed = true, m.seed
	}
	return cfg
}

func (m PanelModel) Init() tea.Cmd {
	return m.renderPreview()
}

func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.cols = max(minPreviewCols, min(maxPreviewCols, msg.Width-controlsWidth-4))
		m.gen++
		return m, m.renderPreview()
	case previewMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.err = msg.err
		if msg.err == nil {
			m.preview = msg.text
		}
	case exportMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = "exported " + strings.Join(msg.paths, ", ")
		}
	}
	return m, nil
}

func (m PanelModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	steps := 0
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(panelControls)-1 {
			m.Cursor++
		}
		return m, nil
	case "left", "h":
		steps = -1
	case "right", "l":
		steps = 1
	case "shift+left", "H":
		steps = -10
	case "shift+right", "L":
		steps = 10
	case "p":
		m.Config.Palette = string(m.Config.Mode().Next())
	case "w":
		m.Config.WobblePolicy = togglePolicy(m.Config.WobblePolicy)
	case "t":
		m.Config.ShowText = !m.Config.ShowText
	case "u":
		if m.Config.UseSeed {
			m.Config.UseSeed = false
		} else {
			m.Config.UseSeed, m.Config.Seed = true, m.seed
		}
	case "r", "enter", " ":
		if !m.Config.UseSeed {
			_, m.seed = rng.Fresh()
		}
	case "e":
		m.status = "exporting..."
		return m, m.export()
	default:
		return m, nil
	}
	if steps != 0 {
		panelControls[m.Cursor].adjust(&m.Config, steps)
	}
	m.Config = m.Config.Clamp()
	m.status = ""
	m.gen++
	return m, m.renderPreview()
}

// renderPreview composes the current configuration and rasterizes it for the terminal.
func (m PanelModel) renderPreview() tea.Cmd {
	cfg, gen, cols := m.renderConfig(), m.gen, m.cols
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		s, seed, err := runner.Compose(ctx, pipeline.Options{Config: cfg})
		if err != nil {
			return previewMsg{gen: gen, err: err}
		}
		w, _ := s.Size()
		img, err := sink.RenderImage(s, sink.WithDPI(float64(cols)/w))
		if err != nil {
			return previewMsg{gen: gen, err: err}
		}
		return previewMsg{gen: gen, seed: seed, text: halfBlocks(img, cols)}
	}
}

// export renders the current configuration at full resolution and writes it.
func (m PanelModel) export() tea.Cmd {
	cfg, formats, output := m.renderConfig(), m.Formats, m.Output
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		result, err := runner.Execute(ctx, pipeline.Options{Config: cfg, Formats: formats})
		if err != nil {
			return exportMsg{err: err}
		}
		paths := outputPaths(output, formats, cfg.Poster())
		var written []string
		for _, f := range formats {
			if err := writeFile(paths[f], result.Artifacts[f]); err != nil {
				return exportMsg{err: err}
			}
			written = append(written, paths[f])
		}
		return exportMsg{paths: written}
	}
}

func (m PanelModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Starposter Control Panel"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  ←/→ adjust  p palette  w wobble  t text  u seed  r regenerate  e export  q quit"))
	b.WriteString("\n\n")

	left := lipgloss.NewStyle().Width(controlsWidth).Render(m.controlsView())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, m.preview))
	b.WriteString("\n\n")

	cfg := m.renderConfig()
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  seed %d · %s", cfg.Seed, formatList(m.Formats))))
	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case m.status != "":
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + m.status)
	}
	return b.String()
}

func (m PanelModel) controlsView() string {
	var b strings.Builder
	for i, c := range panelControls {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		line := fmt.Sprintf("%s%-14s %s", cursor, c.label, c.value(&m.Config))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
