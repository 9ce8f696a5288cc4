package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/starposter/pkg/palette"
	"github.com/matzehuels/starposter/pkg/rng"
)

// paletteOpts holds the command-line flags for the palette command.
type paletteOpts struct {
	mode string
	size int
	seed uint64
}

// paletteCommand creates the palette command for previewing palette modes.
func (c *CLI) paletteCommand() *cobra.Command {
	opts := paletteOpts{mode: string(palette.Pastel), size: palette.DefaultSize, seed: 42}

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Print the colors a palette mode produces",
		Long: `Print the colors a palette mode produces for a seed, with swatches and
their hue, saturation and value. Use --mode all to compare every mode.`,
		Example: `  starposter palette --mode vivid --size 8
  starposter palette --mode all --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalette(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", opts.mode, "palette mode: pastel, vivid, mixed, fixed, all")
	cmd.Flags().IntVarP(&opts.size, "size", "k", opts.size, "number of colors")
	cmd.Flags().Uint64VarP(&opts.seed, "seed", "s", opts.seed, "random seed")
	registerValueCompletions(cmd)

	return cmd
}

func runPalette(ctx context.Context, opts *paletteOpts) error {
	modes := palette.Modes()
	if opts.mode != "all" {
		m, err := palette.ParseMode(opts.mode)
		if err != nil {
			return err
		}
		modes = []palette.Mode{m}
	}

	for i, m := range modes {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := palette.Generate(opts.size, m, rng.New(opts.seed))
		if err != nil {
			return err
		}
		if i > 0 {
			printNewline()
		}
		fmt.Println(StyleTitle.Render(string(m)) + "  " + swatches(p))
		fmt.Println(paletteTable(m, p))
	}
	return nil
}

// paletteTable renders one row per color with its HSV components.
func paletteTable(m palette.Mode, p palette.Palette) string {
	rows := make([][]string, len(p))
	for i, c := range p {
		h, s, v := c.HSV()
		rows[i] = []string{
			fmt.Sprint(i + 1),
			swatch(c),
			strings.ToUpper(c.Hex()),
			fmt.Sprintf("%5.1f°", h*360),
			fmt.Sprintf("%.2f", s),
			fmt.Sprintf("%.2f", v),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "", "Hex", "H", "S", "V").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col >= 4 && outOfRange(m, p[row], col) {
				return cellStyle.Foreground(colorYellow)
			}
			return cellStyle.Foreground(colorWhite)
		})
	return t.Render()
}

// outOfRange flags a saturation (col 4) or value (col 5) outside the mode's range.
func outOfRange(m palette.Mode, c palette.Color, col int) bool {
	_, s, v := c.HSV()
	if col == 4 {
		r, ok := m.SaturationRange()
		return ok && !r.Contains(s, 1e-6)
	}
	r, ok := m.ValueRange()
	return ok && !r.Contains(v, 1e-6)
}
