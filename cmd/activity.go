package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/pkg/analysis"
)

// NewActivityCommand creates the activity command with its subcommands.
func NewActivityCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "activity <transcript>",
		Short: "Per-author activity rates and time profiles",
		Long: `Per-author activity over time.

The bare command reports activity rates: the share of days each author
wrote at least one message, measured from that author's own first day.
Subcommands expose the smoothed time profiles.

Examples:
  chatlens activity chat.txt
  chatlens activity daily chat.txt
  chatlens activity weekday chat.txt -o json
  chatlens activity timeofday chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, cfg, err := loadResult(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			rates := analysis.ActivityRates(result.Records)

			return render(cmd.OutOrStdout(), cfg.OutputFormat, rates, func(w io.Writer) error {
				table := newTable(w)
				fmt.Fprintln(table, "NAME\tACTIVE DAYS")
				for _, r := range rates {
					fmt.Fprintf(table, "%s\t%.1f%%\n", r.Author, r.Percent)
				}
				return table.Flush()
			})
		},
	}

	addRunFlags(cmd)
	cmd.AddCommand(newActivityDailyCommand(deps))
	cmd.AddCommand(newActivityWeekdayCommand(deps))
	cmd.AddCommand(newActivityTimeOfDayCommand(deps))
	return cmd
}

// Activity subcommand flags.
var activityRelative bool

// newActivityDailyCommand creates the activity daily subcommand.
func newActivityDailyCommand(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily <transcript>",
		Short: "Smoothed daily activity per author",
		Long: `Smoothed daily activity per author over the configured trailing
window of calendar years. With --relative, each day is normalized so
the columns show who dominates that day rather than absolute volume.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, cfg, err := loadResult(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			var series analysis.TimeSeries
			if activityRelative {
				series = analysis.RelativeActivity(result.Records, cfg.Analysis.ActivityYears)
			} else {
				series = analysis.SmoothedDailyActivity(result.Records, cfg.Analysis.ActivityYears)
			}

			return render(cmd.OutOrStdout(), cfg.OutputFormat, series, func(w io.Writer) error {
				return printTimeSeries(w, series)
			})
		},
	}

	cmd.Flags().BoolVar(&activityRelative, "relative", false, "Normalize each day across authors")
	addRunFlags(cmd)
	return cmd
}

func printTimeSeries(w io.Writer, series analysis.TimeSeries) error {
	table := newTable(w)
	fmt.Fprint(table, "DATE")
	for _, a := range series.Authors {
		fmt.Fprintf(table, "\t%s", a)
	}
	fmt.Fprintln(table)
	for row, date := range series.Dates {
		fmt.Fprint(table, date)
		for col := range series.Authors {
			fmt.Fprintf(table, "\t%.2f", series.Values[row][col])
		}
		fmt.Fprintln(table)
	}
	return table.Flush()
}

// newActivityWeekdayCommand creates the activity weekday subcommand.
func newActivityWeekdayCommand(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weekday <transcript>",
		Short: "Relative activity by day of week per author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, cfg, err := loadResult(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			profile := analysis.ActivityByDayOfWeek(result.Records)

			return render(cmd.OutOrStdout(), cfg.OutputFormat, profile, func(w io.Writer) error {
				table := newTable(w)
				fmt.Fprint(table, "DAY")
				for _, a := range profile.Authors {
					fmt.Fprintf(table, "\t%s", a)
				}
				fmt.Fprintln(table)
				for row, day := range profile.Days {
					fmt.Fprint(table, day)
					for col := range profile.Authors {
						fmt.Fprintf(table, "\t%.0f%%", 100*profile.Values[row][col])
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

// newActivityTimeOfDayCommand creates the activity timeofday subcommand.
func newActivityTimeOfDayCommand(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeofday <transcript>",
		Short: "Smoothed activity by time of day per author",
		Long: `Smoothed activity by time of day per author, hourly rows.
The underlying profile is minute-resolution and wraps across midnight,
so late-night activity is not cut off at the day boundary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, cfg, err := loadResult(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			profile := analysis.ActivityByTimeOfDay(result.Records)

			return render(cmd.OutOrStdout(), cfg.OutputFormat, profile, func(w io.Writer) error {
				table := newTable(w)
				fmt.Fprint(table, "HOUR")
				for _, a := range profile.Authors {
					fmt.Fprintf(table, "\t%s", a)
				}
				fmt.Fprintln(table)
				// Sum minute bins into hourly rows for the table view.
				for hour := 0; hour < 24; hour++ {
					fmt.Fprintf(table, "%02d:00", hour)
					for col := range profile.Authors {
						var sum float64
						for m := hour * 60; m < (hour+1)*60; m++ {
							sum += profile.Values[m][col]
						}
						fmt.Fprintf(table, "\t%.1f", sum)
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
