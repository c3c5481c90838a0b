package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-chailights/internal/config"
	"github.com/tartampluch/go-chailights/internal/engine"
)

func newTodayCmd(o *options) *cobra.Command {
	var withEve bool
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Photos taken on today's Hebrew date in past years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			idx, _, err := o.library(cmd.Context())
			if err != nil {
				return err
			}
			report, err := o.expander().TodayReport(idx, withEve, o.flags())
			if err != nil {
				return err
			}
			return o.printReport(cmd, report)
		},
	}
	cmd.Flags().BoolVar(&withEve, config.FlagRange, false, "Also match the day before")
	return cmd
}

func newMatchCmd(o *options) *cobra.Command {
	var (
		day, month int
		withEve    bool
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Photos taken on a given Hebrew day",
		Long:  "Months are numbered from 0 (Nisan) to 12 (Adar II).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := engine.NewDateKey(month, day)
			if err != nil {
				return err
			}
			idx, _, err := o.library(cmd.Context())
			if err != nil {
				return err
			}
			return o.printReport(cmd, o.expander().DateReport(idx, key, "", withEve, o.flags()))
		},
	}
	cmd.Flags().IntVar(&day, config.FlagDay, 0, "Hebrew day of month (1-30, required)")
	cmd.Flags().IntVar(&month, config.FlagMonth, 0, "Hebrew month (0-12, required)")
	cmd.Flags().BoolVar(&withEve, config.FlagRange, false, "Also match the day before")
	_ = cmd.MarkFlagRequired(config.FlagDay)
	_ = cmd.MarkFlagRequired(config.FlagMonth)
	return cmd
}

func newHolidayCmd(o *options) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "holiday NAME",
		Short: "Photos taken on any date of a holiday",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			// Fail on unknown names before touching the library.
			if _, err := o.holidays.Lookup(name); err != nil {
				return err
			}
			idx, _, err := o.library(cmd.Context())
			if err != nil {
				return err
			}
			report, err := o.expander().HolidayReport(idx, name, o.flags(), year)
			if err != nil {
				return err
			}
			return o.printReport(cmd, report)
		},
	}
	cmd.Flags().IntVar(&year, config.FlagHebrewYear, 0, "Hebrew year resolving the eve and extra days (default: current)")
	return cmd
}

// holidayEntry is a table row with the dates effective under the flags.
type holidayEntry struct {
	engine.Holiday
	Effective []engine.DateKey `json:"effective"`
}

func newHolidaysCmd(o *options) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List the known holidays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exp := o.expander()
			var entries []holidayEntry
			for _, h := range o.holidays.All() {
				set, err := exp.Expand(h.ID, o.flags(), year)
				if err != nil {
					return err
				}
				entries = append(entries, holidayEntry{Holiday: h, Effective: set.Keys()})
			}
			return o.printHolidays(cmd, entries)
		},
	}
	cmd.Flags().IntVar(&year, config.FlagHebrewYear, 0, "Hebrew year resolving the eve and extra days (default: current)")
	return cmd
}

func newICSCmd(o *options) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Write the holiday feed as iCalendar",
		Long:  "Writes one all-day event per holiday date, titled with the number of matching photos. --format is ignored.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			idx, res, err := o.library(cmd.Context())
			if err != nil {
				return err
			}
			ics := res.Calendar
			if year > 0 {
				ics, err = engine.BuildHolidayCalendar(o.expander(), o.flags(), year, idx, nil)
				if err != nil {
					return err
				}
			}
			return write(cmd.OutOrStdout(), ics)
		},
	}
	cmd.Flags().IntVar(&year, config.FlagHebrewYear, 0, "Hebrew year of the feed (default: current)")
	return cmd
}
