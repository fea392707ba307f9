package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/pkg/analysis"
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "analyze <transcript>",
		Short: "Run the full analysis suite over a chat export",
		Long: `Run the full analysis suite over a chat export.

Parses the transcript, runs the preprocessing pipeline, and computes
every derived statistic in one pass: summary, per-author profiles with
trends, activity rates, response behavior, the longest streak, word and
emoji frequencies, and monthly volume.

Examples:
  chatlens analyze chat.txt
  chatlens analyze chat.txt --lang Turkish
  chatlens analyze chat.txt --authors Alice,Bob -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, deps, args[0])
		},
	}

	addRunFlags(cmd)
	return cmd
}

func runAnalyze(cmd *cobra.Command, deps *Deps, path string) error {
	result, cfg, err := loadResult(cmd.Context(), deps, path)
	if err != nil {
		return err
	}

	suite := analysis.NewSuite(newLogger(cfg))
	report, err := suite.Run(cmd.Context(), result)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), cfg.OutputFormat, report, func(w io.Writer) error {
		return printReport(w, report)
	})
}

func printReport(w io.Writer, report *analysis.Report) error {
	s := report.Summary
	fmt.Fprintf(w, "Chat Summary\n")
	fmt.Fprintf(w, "  Messages:     %d from %d authors\n", s.TotalMessages, s.UniqueAuthors)
	fmt.Fprintf(w, "  Period:       %s to %s (%d days)\n", s.StartDate, s.EndDate, s.TotalDays)
	fmt.Fprintf(w, "  Per day:      %.1f messages\n", s.AvgMessagesPerDay)
	fmt.Fprintf(w, "  Most active:  %s (%d messages, %.1f%%)\n\n",
		s.MostActiveAuthor, s.MostActiveMessages, s.MostActivePercent)

	fmt.Fprintln(w, "Authors")
	table := newTable(w)
	fmt.Fprintln(table, "  NAME\tMESSAGES\tSHARE\tTALKATIVENESS\tTREND (12M)")
	for _, a := range report.AuthorStats {
		fmt.Fprintf(table, "  %s\t%d\t%.1f%%\t%s\t%s\n",
			a.Author, a.Messages, a.TotalPercent, a.Talkativeness, a.Trend12Months)
	}
	if err := table.Flush(); err != nil {
		return err
	}

	if report.Streak.Length > 0 {
		fmt.Fprintf(w, "\nLongest streak: %d messages by %s (%s to %s)\n",
			report.Streak.Length, report.Streak.Author,
			report.Streak.Start.Format("2006-01-02 15:04"),
			report.Streak.End.Format("2006-01-02 15:04"))
	}
	if report.Response.SlowestResponder != "" {
		fmt.Fprintf(w, "Slowest responder: %s\n", report.Response.SlowestResponder)
	}
	if report.Monthly.PeakMonth != "" {
		fmt.Fprintf(w, "Busiest month: %s (%d messages)\n",
			report.Monthly.PeakMonth, report.Monthly.PeakCount)
	}

	if len(report.Words) > 0 {
		fmt.Fprintln(w, "\nTop words")
		table = newTable(w)
		for _, word := range report.Words {
			fmt.Fprintf(table, "  %s\t%d\t%s\n", word.Word, word.Count, word.Share)
		}
		if err := table.Flush(); err != nil {
			return err
		}
	}

	if len(report.Emojis) > 0 {
		fmt.Fprintln(w, "\nTop emojis")
		for _, e := range report.Emojis {
			fmt.Fprintf(w, "  %s  %d\n", e.Emoji, e.Count)
		}
	}

	fmt.Fprintf(w, "\nRun %s finished in %s\n", report.RunID, report.Duration)
	return nil
}
