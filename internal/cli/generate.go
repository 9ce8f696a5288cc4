package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/starposter/pkg/config"
	"github.com/matzehuels/starposter/pkg/pipeline"
	"github.com/matzehuels/starposter/pkg/render/sink"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output  string // output file (single format) or base path (several formats)
	formats string // comma-separated output formats
	flags   *configFlags
}

// generateCommand creates the generate command for rendering a single poster.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render one star poster",
		Long: `Render one star poster and write it to disk.

Without --output, files get their default names: pastel_stars.<ext>, or
generative_star_poster.<ext> when the text overlay is shown.`,
		Example: `  starposter generate
  starposter generate -f png,svg,pdf -o out/poster
  starposter generate --palette vivid --stars 40 --seed 7
  starposter generate --title "Pastel Stars" --subtitle "generative poster"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png (default), svg, pdf, json (comma-separated)")
	opts.flags = bindConfigFlags(cmd)
	registerValueCompletions(cmd)

	return cmd
}

// runGenerate resolves the configuration, renders every requested format and
// writes the files.
func (c *CLI) runGenerate(ctx context.Context, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	formats, err := parseFormats(opts.formats)
	if err != nil {
		return err
	}
	cfg, from, err := opts.flags.resolve()
	if err != nil {
		return err
	}
	if from != "" {
		logger.Debug("loaded config", "path", from)
	}

	start := time.Now()
	spinner := newSpinnerWithContext(ctx, "Rendering "+formatList(formats)+"...")
	spinner.Start()
	result, err := c.newRunner().Execute(ctx, pipeline.Options{
		Config:  cfg,
		Formats: formats,
		Logger:  logger,
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, formats, cfg.Poster())
	var written []string
	for _, f := range formats {
		if err := writeFile(paths[f], result.Artifacts[f]); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
		written = append(written, paths[f])
	}

	printSuccess("Rendered %s", StyleHighlight.Render(posterKind(cfg)))
	printStats(result.Stats.Shapes, result.Seed, cfg.UseSeed, time.Since(start))
	for _, f := range formats {
		printFile(paths[f], len(result.Artifacts[f]))
	}
	if !cfg.UseSeed {
		printNewline()
		printNextStep("Reproduce this render", fmt.Sprintf("%s generate --seed %d", appName, result.Seed))
	}
	logger.Debug("wrote files", "paths", written, "run", result.RunID)
	return nil
}

// posterKind names the render for status output.
func posterKind(cfg config.Config) string {
	if cfg.Poster() {
		return "star poster"
	}
	return "pastel stars"
}

// formatList joins format names for display, e.g. "png, svg".
func formatList(formats []sink.Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
