package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/pkg/analysis"
)

// NewAuthorsCommand creates the authors command with its subcommands.
func NewAuthorsCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "authors <transcript>",
		Short: "Per-author message profiles with activity trends",
		Long: `Per-author message profiles: message count, share of total,
talkativeness tier, daily average, and activity trends over the
trailing 12, 6, and 3 months.

Examples:
  chatlens authors chat.txt
  chatlens authors chat.txt -o yaml
  chatlens authors averages chat.txt
  chatlens authors distribution chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthors(cmd, deps, args[0])
		},
	}

	addRunFlags(cmd)
	cmd.AddCommand(newAveragesCommand(deps))
	cmd.AddCommand(newDistributionCommand(deps))
	return cmd
}

func runAuthors(cmd *cobra.Command, deps *Deps, path string) error {
	result, cfg, err := loadResult(cmd.Context(), deps, path)
	if err != nil {
		return err
	}

	stats := analysis.TrendStats(result.Records)

	return render(cmd.OutOrStdout(), cfg.OutputFormat, stats, func(w io.Writer) error {
		table := newTable(w)
		fmt.Fprintln(table, "NAME\tMESSAGES\tSHARE\tPER DAY\tTALKATIVENESS\t12M\t6M\t3M")
		for _, a := range stats {
			fmt.Fprintf(table, "%s\t%d\t%.1f%%\t%.2f\t%s\t%s\t%s\t%s\n",
				a.Author, a.Messages, a.TotalPercent, a.AvgPerDay,
				a.Talkativeness, a.Trend12Months, a.Trend6Months, a.Trend3Months)
		}
		return table.Flush()
	})
}

// newAveragesCommand creates the authors averages subcommand.
func newAveragesCommand(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "averages <transcript>",
		Short: "Per-author mean message length and classification rates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, cfg, err := loadResult(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			averages := analysis.Averages(result.Records)

			return render(cmd.OutOrStdout(), cfg.OutputFormat, averages, func(w io.Writer) error {
				table := newTable(w)
				fmt.Fprintln(table, "NAME\tAVG LENGTH\tLINKS\tMEDIA\tEMOJI\tDELETED\tSTARTERS")
				for _, a := range averages {
					media := a.ImageRate + a.VideoRate + a.GIFRate +
						a.StickerRate + a.AudioRate + a.MediaRate
					fmt.Fprintf(table, "%s\t%.1f\t%.1f%%\t%.1f%%\t%.1f%%\t%.1f%%\t%.1f%%\n",
						a.Author, a.AvgMsgLength, 100*a.LinkRate, 100*media,
						100*a.EmojiRate, 100*a.DeletedRate, 100*a.StarterRate)
				}
				return table.Flush()
			})
		},
	}

	addRunFlags(cmd)
	return cmd
}

// newDistributionCommand creates the authors distribution subcommand.
func newDistributionCommand(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribution <transcript>",
		Short: "Each author's share of every classification flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, cfg, err := loadResult(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			dist := analysis.Distribution(result.Records)

			return render(cmd.OutOrStdout(), cfg.OutputFormat, dist, func(w io.Writer) error {
				table := newTable(w)
				fmt.Fprint(table, "NAME")
				for _, flag := range dist.Flags {
					fmt.Fprintf(table, "\t%s", flag)
				}
				fmt.Fprintln(table)
				for row, author := range dist.Authors {
					fmt.Fprint(table, author)
					for col := range dist.Flags {
						fmt.Fprintf(table, "\t%.0f%%", 100*dist.Values[row][col])
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
