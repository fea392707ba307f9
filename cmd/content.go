package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/pkg/analysis"
)

// Content command flags.
var contentLimit int

// NewContentCommand creates the content command with its subcommands.
func NewContentCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "content",
		Short: "What the chat is about: words, emojis, and volume",
		Long: `Content statistics over a chat export.

Examples:
  chatlens content words chat.txt
  chatlens content words chat.txt --limit 50
  chatlens content emojis chat.txt
  chatlens content monthly chat.txt -o yaml`,
	}

	cmd.AddCommand(newWordsCommand(deps))
	cmd.AddCommand(newEmojisCommand(deps))
	cmd.AddCommand(newMonthlyCommand(deps))
	return cmd
}

// newWordsCommand creates the content words subcommand.
func newWordsCommand(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words <transcript>",
		Short: "Most frequent words, short filler tokens excluded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, cfg, err := loadResult(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			words := analysis.WordStats(result.Records)
			if contentLimit > 0 && len(words) > contentLimit {
				words = words[:contentLimit]
			}

			return render(cmd.OutOrStdout(), cfg.OutputFormat, words, func(w io.Writer) error {
				table := newTable(w)
				fmt.Fprintln(table, "WORD\tCOUNT\tSHARE")
				for _, word := range words {
					fmt.Fprintf(table, "%s\t%d\t%s\n", word.Word, word.Count, word.Share)
				}
				return table.Flush()
			})
		},
	}

	cmd.Flags().IntVar(&contentLimit, "limit", 25, "Maximum rows to print (0 for all)")
	addRunFlags(cmd)
	return cmd
}

// newEmojisCommand creates the content emojis subcommand.
func newEmojisCommand(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emojis <transcript>",
		Short: "Ten most used emojis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, cfg, err := loadResult(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			emojis := analysis.EmojiStats(result.Records)

			return render(cmd.OutOrStdout(), cfg.OutputFormat, emojis, func(w io.Writer) error {
				if len(emojis) == 0 {
					fmt.Fprintln(w, "No emojis found.")
					return nil
				}
				for _, e := range emojis {
					fmt.Fprintf(w, "%s  %d\n", e.Emoji, e.Count)
				}
				return nil
			})
		},
	}

	addRunFlags(cmd)
	return cmd
}

// newMonthlyCommand creates the content monthly subcommand.
func newMonthlyCommand(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monthly <transcript>",
		Short: "Message volume per calendar month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, cfg, err := loadResult(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			volume := analysis.MonthlyMessageVolume(result.Records)

			return render(cmd.OutOrStdout(), cfg.OutputFormat, volume, func(w io.Writer) error {
				table := newTable(w)
				fmt.Fprintln(table, "MONTH\tMESSAGES")
				for _, m := range volume.Months {
					marker := ""
					if m.Month == volume.PeakMonth {
						marker = "  *"
					}
					fmt.Fprintf(table, "%s\t%d%s\n", m.Month, m.Count, marker)
				}
				return table.Flush()
			})
		},
	}

	addRunFlags(cmd)
	return cmd
}
