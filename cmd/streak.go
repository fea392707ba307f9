package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/pkg/analysis"
)

// NewStreakCommand creates the streak command.
func NewStreakCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "streak <transcript>",
		Short: "Longest run of consecutive messages from one author",
		Long: `Longest run of consecutive messages from one author,
uninterrupted by anyone else. Ties go to the earliest run.

Examples:
  chatlens streak chat.txt
  chatlens streak chat.txt --messages`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStreak(cmd, deps, args[0])
		},
	}

	cmd.Flags().BoolVar(&streakMessages, "messages", false, "Print the streak's messages")
	addRunFlags(cmd)
	return cmd
}

// Streak command flags.
var streakMessages bool

func runStreak(cmd *cobra.Command, deps *Deps, path string) error {
	result, cfg, err := loadResult(cmd.Context(), deps, path)
	if err != nil {
		return err
	}

	streak := analysis.LongestStreak(result.Records)

	return render(cmd.OutOrStdout(), cfg.OutputFormat, streak, func(w io.Writer) error {
		if streak.Length == 0 {
			fmt.Fprintln(w, "No messages.")
			return nil
		}
		fmt.Fprintf(w, "%s sent %d messages in a row, %s to %s\n",
			streak.Author, streak.Length,
			streak.Start.Format("2006-01-02 15:04"),
			streak.End.Format("2006-01-02 15:04"))
		if streakMessages {
			for _, m := range streak.Messages {
				fmt.Fprintf(w, "  [%s] %s\n", m.Timestamp.Format("15:04"), m.Text())
			}
		}
		return nil
	})
}
