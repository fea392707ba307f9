package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/pkg/analysis"
)

// NewResponseCommand creates the response command with its subcommands.
func NewResponseCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "response <transcript>",
		Short: "Response latency and who-responds-to-whom",
		Long: `Response behavior between authors.

The bare command reports each author's median response time. Rapid
same-author follow-ups within three minutes are treated as multi-part
messages, not responses. The matrix subcommand shows, for each author,
what fraction of their responses went to every other author.

Examples:
  chatlens response chat.txt
  chatlens response matrix chat.txt -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, cfg, err := loadResult(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			stats := analysis.ResponseTimes(result.Records)

			return render(cmd.OutOrStdout(), cfg.OutputFormat, stats, func(w io.Writer) error {
				table := newTable(w)
				fmt.Fprintln(table, "NAME\tMEDIAN RESPONSE")
				for _, m := range stats.Medians {
					fmt.Fprintf(table, "%s\t%.1f min\n", m.Author, m.MedianMinutes)
				}
				if err := table.Flush(); err != nil {
					return err
				}
				if stats.SlowestResponder != "" {
					fmt.Fprintf(w, "\nSlowest responder: %s\n", stats.SlowestResponder)
				}
				return nil
			})
		},
	}

	addRunFlags(cmd)
	cmd.AddCommand(newResponseMatrixCommand(deps))
	return cmd
}

// newResponseMatrixCommand creates the response matrix subcommand.
func newResponseMatrixCommand(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix <transcript>",
		Short: "Row-normalized respondent to responded-to table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, cfg, err := loadResult(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			matrix := analysis.Responses(result.Records)

			return render(cmd.OutOrStdout(), cfg.OutputFormat, matrix, func(w io.Writer) error {
				table := newTable(w)
				fmt.Fprint(table, "RESPONDS TO")
				for _, a := range matrix.Authors {
					fmt.Fprintf(table, "\t%s", a)
				}
				fmt.Fprintln(table)
				for row, author := range matrix.Authors {
					fmt.Fprint(table, author)
					for col := range matrix.Authors {
						fmt.Fprintf(table, "\t%.0f%%", 100*matrix.Values[row][col])
					}
					fmt.Fprintln(table)
				}
				return table.Flush()
			})
		},
	}

	addRunFlags(cmd)
	return cmd
}
