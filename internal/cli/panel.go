package cli

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/starposter/pkg/errors"
)

// panelOpts holds the command-line flags for the panel command.
type panelOpts struct {
	output  string
	formats string
	flags   *configFlags
}

// panelCommand creates the panel command, an interactive terminal control panel.
func (c *CLI) panelCommand() *cobra.Command {
	var opts panelOpts

	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Tune parameters interactively with a live preview",
		Long: `Open an interactive control panel. Every edit re-renders a low resolution
preview in the terminal; press e to export at full resolution.

Values are clamped to the panel's slider ranges. Flags and the config file
set the starting values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPanel(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "export file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "export format(s): png (default), svg, pdf, json (comma-separated)")
	opts.flags = bindConfigFlags(cmd)
	registerValueCompletions(cmd)

	return cmd
}

func (c *CLI) runPanel(ctx context.Context, opts *panelOpts) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrCodeUnsupported, "the panel needs an interactive terminal; use generate instead")
	}

	formats, err := parseFormats(opts.formats)
	if err != nil {
		return err
	}
	cfg, _, err := opts.flags.resolve()
	if err != nil {
		return err
	}

	// the panel owns the screen; keep pipeline logs out of it
	runner := c.newRunner()
	runner.Logger = newLogger(io.Discard, LogInfo)

	m := NewPanelModel(ctx, runner, cfg, formats, opts.output)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if pm, ok := final.(PanelModel); ok && pm.status != "" {
		printInfo("%s", pm.status)
	}
	return nil
}
