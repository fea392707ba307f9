package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/pkg/analysis"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "summary <transcript>",
		Short: "Show the headline numbers for a chat export",
		Long: `Show the headline numbers for a chat export: total volume,
author count, date span, daily average, and the most active author.

Examples:
  chatlens summary chat.txt
  chatlens summary chat.txt -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, deps, args[0])
		},
	}

	addRunFlags(cmd)
	return cmd
}

func runSummary(cmd *cobra.Command, deps *Deps, path string) error {
	result, cfg, err := loadResult(cmd.Context(), deps, path)
	if err != nil {
		return err
	}

	summary, err := analysis.ChatSummary(result.Records)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), cfg.OutputFormat, summary, func(w io.Writer) error {
		fmt.Fprintf(w, "Messages:     %d\n", summary.TotalMessages)
		fmt.Fprintf(w, "Authors:      %d\n", summary.UniqueAuthors)
		fmt.Fprintf(w, "Period:       %s to %s (%d days)\n",
			summary.StartDate, summary.EndDate, summary.TotalDays)
		fmt.Fprintf(w, "Per day:      %.1f messages\n", summary.AvgMessagesPerDay)
		fmt.Fprintf(w, "Most active:  %s (%d messages, %.1f%%)\n",
			summary.MostActiveAuthor, summary.MostActiveMessages, summary.MostActivePercent)
		return nil
	})
}
