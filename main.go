// Package main provides the chatlens CLI entry point.
// chatlens analyzes exported chat transcripts: it cleans and classifies
// the raw export, then derives per-author and time-series statistics.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/cmd"
	"github.com/otherjamesbrown/chatlens/pkg/buildinfo"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chatlens",
	Short: "Chat transcript analyzer",
	Long: `chatlens analyzes exported chat transcripts.

It parses the raw export, normalizes timestamps, classifies every
message (links, media placeholders, deletions, edits, emojis, shared
locations), and derives statistics: who talks, when, to whom, and
about what.

COMMON WORKFLOWS:
  Full report:        chatlens analyze chat.txt
  Headline numbers:   chatlens summary chat.txt
  Author profiles:    chatlens authors chat.txt
  Activity patterns:  chatlens activity weekday chat.txt
  Response behavior:  chatlens response matrix chat.txt

Exports in English, Turkish, and German are supported; pick one with
--lang or set it in ~/.chatlens/config.yaml. Every command accepts
--output json for machine-readable results.`,
	SilenceUsage: true,
}

// Version command flags.
var versionOutputJSON bool

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the version, commit hash, and build time of the chatlens CLI.

Examples:
  chatlens version
  chatlens version --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := buildinfo.Get("chatlens")

		if versionOutputJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "chatlens %s\n", buildinfo.String())
		fmt.Fprintf(cmd.OutOrStdout(), "go: %s\n", info.GoVersion)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionOutputJSON, "output-json", false, "Output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cmd.NewAnalyzeCommand(nil))
	rootCmd.AddCommand(cmd.NewSummaryCommand(nil))
	rootCmd.AddCommand(cmd.NewAuthorsCommand(nil))
	rootCmd.AddCommand(cmd.NewActivityCommand(nil))
	rootCmd.AddCommand(cmd.NewResponseCommand(nil))
	rootCmd.AddCommand(cmd.NewStreakCommand(nil))
	rootCmd.AddCommand(cmd.NewContentCommand(nil))
	rootCmd.AddCommand(cmd.NewConfigCommand(nil))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
