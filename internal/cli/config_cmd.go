package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/starposter/pkg/config"
)

// configCommand creates the config command with show and path subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())
	return cmd
}

// configShowCommand prints the effective configuration as TOML, after the
// config file and flags are applied. The output can be saved as a config file.
func (c *CLI) configShowCommand() *cobra.Command {
	var flags *configFlags
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Example: `  starposter config show > ~/.config/starposter/config.toml
  starposter config show --palette vivid --stars 40`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, from, err := flags.resolve()
			if err != nil {
				return err
			}
			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			if from != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", from)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	flags = bindConfigFlags(cmd)
	registerValueCompletions(cmd)
	return cmd
}

// configPathCommand prints where the default config file is looked up.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
