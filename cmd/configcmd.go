package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/config"
)

// NewConfigCommand creates the config command with its subcommands.
func NewConfigCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize chatlens configuration",
		Long: `Inspect and initialize chatlens configuration.

Configuration is read from ~/.chatlens/config.yaml (override the
directory with $CHATLENS_CONFIG_DIR) and CHATLENS_* environment
variables, in that order.

Examples:
  chatlens config show
  chatlens config show -o yaml
  chatlens config init
  chatlens config path`,
	}

	cmd.AddCommand(newConfigShowCommand(deps))
	cmd.AddCommand(newConfigInitCommand(deps))
	cmd.AddCommand(newConfigPathCommand())
	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), cfg.OutputFormat, cfg, func(w io.Writer) error {
				fmt.Fprintf(w, "Language:       %s\n", cfg.Language)
				fmt.Fprintf(w, "Output format:  %s\n", cfg.OutputFormat)
				fmt.Fprintf(w, "Debug:          %t\n", cfg.Debug)
				fmt.Fprintf(w, "Starter gap:    %s\n", cfg.Analysis.StarterGap)
				fmt.Fprintf(w, "Activity years: %d\n", cfg.Analysis.ActivityYears)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format: text, json, yaml")
	cmd.Flags().StringVarP(&flagLanguage, "lang", "l", "", "Export language: English, Turkish, German")
	return cmd
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps)
			if err != nil {
				return err
			}

			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}

// newConfigPathCommand creates the config path subcommand.
func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
