package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/starposter/pkg/buildinfo"
	"github.com/matzehuels/starposter/pkg/errors"
	"github.com/matzehuels/starposter/pkg/observability"
	"github.com/matzehuels/starposter/pkg/pipeline"
	"github.com/matzehuels/starposter/pkg/render/sink"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "starposter"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger  *log.Logger
	verbose bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Starposter generates pastel star-polygon posters",
		Long:         `Starposter is a CLI tool for generating decorative star-polygon artwork: many wobbly, semi-transparent stars scattered over a canvas and exported as PNG, SVG, PDF or a JSON scene manifest.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.SetPipelineHooks(&logHooks{logger: c.Logger})
				observability.SetBatchHooks(&logHooks{logger: c.Logger})
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.panelCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Output Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string selects PNG.
func parseFormats(s string) ([]sink.Format, error) {
	if strings.TrimSpace(s) == "" {
		return []sink.Format{sink.FormatPNG}, nil
	}
	return sink.ParseFormats(strings.Split(s, ","))
}

// basePath strips a known format extension from output.
func basePath(output string) string {
	ext := filepath.Ext(output)
	if _, err := sink.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to.
//
// With no output, files get their default download names. A single format
// writes to output as given; several formats share output's base path.
func outputPaths(output string, formats []sink.Format, poster bool) map[sink.Format]string {
	paths := make(map[sink.Format]string, len(formats))
	for _, f := range formats {
		switch {
		case output == "":
			paths[f] = sink.DefaultFilename(f, poster)
		case len(formats) == 1:
			paths[f] = output
		default:
			paths[f] = basePath(output) + f.Ext()
		}
	}
	return paths
}

// writeFile writes data, creating parent directories.
func writeFile(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
