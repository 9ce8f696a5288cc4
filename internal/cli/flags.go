package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/starposter/pkg/config"
)

// configFlags binds every configuration field to a command flag.
//
// Flag values are parsed into a scratch Config. resolve layers the flags
// that were actually set on top of the config file, so an unset flag never
// overrides a value from the file.
type configFlags struct {
	values config.Config
	path   string
	random bool
	cmd    *cobra.Command
}

// flagField copies one flag's value from the scratch config into dst.
type flagField struct {
	name  string
	apply func(dst, src *config.Config)
}

var flagFields = []flagField{
	{"stars", func(d, s *config.Config) { d.Stars = s.Stars }},
	{"size-min", func(d, s *config.Config) { d.SizeMin = s.SizeMin }},
	{"size-max", func(d, s *config.Config) { d.SizeMax = s.SizeMax }},
	{"wobble-min", func(d, s *config.Config) { d.WobbleMin = s.WobbleMin }},
	{"wobble-max", func(d, s *config.Config) { d.WobbleMax = s.WobbleMax }},
	{"wobble-policy", func(d, s *config.Config) { d.WobblePolicy = s.WobblePolicy }},
	{"inner-ratio-min", func(d, s *config.Config) { d.InnerRatioMin = s.InnerRatioMin }},
	{"inner-ratio-max", func(d, s *config.Config) { d.InnerRatioMax = s.InnerRatioMax }},
	{"points", func(d, s *config.Config) { d.Points = append([]int(nil), s.Points...) }},
	{"alpha-min", func(d, s *config.Config) { d.AlphaMin = s.AlphaMin }},
	{"alpha-max", func(d, s *config.Config) { d.AlphaMax = s.AlphaMax }},
	{"width", func(d, s *config.Config) { d.Width = s.Width }},
	{"height", func(d, s *config.Config) { d.Height = s.Height }},
	{"margin", func(d, s *config.Config) { d.Margin = s.Margin }},
	{"palette", func(d, s *config.Config) { d.Palette = s.Palette }},
	{"palette-size", func(d, s *config.Config) { d.PaletteSize = s.PaletteSize }},
	{"background", func(d, s *config.Config) { d.Background = s.Background }},
	{"seed", func(d, s *config.Config) { d.Seed, d.UseSeed = s.Seed, true }},
	{"text", func(d, s *config.Config) { d.ShowText = s.ShowText }},
	{"title", func(d, s *config.Config) { d.Title, d.ShowText = s.Title, true }},
	{"subtitle", func(d, s *config.Config) { d.Subtitle, d.ShowText = s.Subtitle, true }},
	{"dpi", func(d, s *config.Config) { d.DPI = s.DPI }},
	{"tight", func(d, s *config.Config) { d.Tight = s.Tight }},
	{"no-vertices", func(d, s *config.Config) { d.NoVertices = s.NoVertices }},
}

// bindConfigFlags registers the configuration flags on cmd.
func bindConfigFlags(cmd *cobra.Command) *configFlags {
	f := &configFlags{values: config.Default(), cmd: cmd}
	v := &f.values
	fs := cmd.Flags()

	fs.StringVarP(&f.path, "config", "c", "", "config file (.toml, .yaml); defaults to the user config if present")

	fs.IntVarP(&v.Stars, "stars", "n", v.Stars, "number of stars")
	fs.Float64Var(&v.SizeMin, "size-min", v.SizeMin, "minimum outer radius")
	fs.Float64Var(&v.SizeMax, "size-max", v.SizeMax, "maximum outer radius")
	fs.Float64Var(&v.WobbleMin, "wobble-min", v.WobbleMin, "minimum wobble")
	fs.Float64Var(&v.WobbleMax, "wobble-max", v.WobbleMax, "maximum wobble")
	fs.StringVar(&v.WobblePolicy, "wobble-policy", v.WobblePolicy, "wobble policy: full, half")
	fs.Float64Var(&v.InnerRatioMin, "inner-ratio-min", v.InnerRatioMin, "minimum inner/outer radius ratio")
	fs.Float64Var(&v.InnerRatioMax, "inner-ratio-max", v.InnerRatioMax, "maximum inner/outer radius ratio")
	fs.IntSliceVar(&v.Points, "points", v.Points, "point counts to choose from (comma-separated)")
	fs.Float64Var(&v.AlphaMin, "alpha-min", v.AlphaMin, "minimum opacity")
	fs.Float64Var(&v.AlphaMax, "alpha-max", v.AlphaMax, "maximum opacity")
	fs.IntVar(&v.Width, "width", v.Width, "figure width in inches")
	fs.IntVar(&v.Height, "height", v.Height, "figure height in inches")
	fs.Float64Var(&v.Margin, "margin", v.Margin, "inset of star centers from the canvas edge")
	fs.StringVarP(&v.Palette, "palette", "p", v.Palette, "palette mode: pastel, vivid, mixed, fixed")
	fs.IntVar(&v.PaletteSize, "palette-size", v.PaletteSize, "number of palette colors")
	fs.StringVar(&v.Background, "background", v.Background, "background color as #RRGGBB")
	fs.Uint64VarP(&v.Seed, "seed", "s", v.Seed, "random seed for a reproducible render")
	fs.BoolVar(&f.random, "random", false, "ignore any configured seed and draw a fresh one")
	fs.BoolVar(&v.ShowText, "text", v.ShowText, "draw the title and subtitle overlay")
	fs.StringVar(&v.Title, "title", "", "poster title (implies --text)")
	fs.StringVar(&v.Subtitle, "subtitle", "", "poster subtitle (implies --text)")
	fs.IntVar(&v.DPI, "dpi", v.DPI, "PNG resolution")
	fs.BoolVar(&v.Tight, "tight", v.Tight, "crop PNG output to the canvas and text plus a small pad")
	fs.BoolVar(&v.NoVertices, "no-vertices", v.NoVertices, "omit star vertices from JSON output")

	cmd.MarkFlagsMutuallyExclusive("seed", "random")
	_ = cmd.MarkFlagFilename("config", "toml", "yaml", "yml")
	return f
}

// resolve builds the effective configuration: the --config file (or the
// user config when present, else defaults), then every flag that was set.
// The result is validated.
func (f *configFlags) resolve() (config.Config, string, error) {
	var (
		cfg  config.Config
		from string
		err  error
	)
	if f.path != "" {
		cfg, err = config.Load(f.path)
		from = f.path
	} else {
		cfg, from, err = config.LoadDefault()
	}
	if err != nil {
		return config.Config{}, "", err
	}

	for _, field := range flagFields {
		if f.cmd.Flags().Changed(field.name) {
			field.apply(&cfg, &f.values)
		}
	}
	if f.random {
		cfg.UseSeed = false
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, from, nil
}
