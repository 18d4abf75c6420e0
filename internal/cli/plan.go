package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwhite/daybrief/internal/engine"
	"github.com/mwhite/daybrief/internal/store"
)

var planCmd = &cobra.Command{
	Use:   "plan [date]",
	Short: "Morning plan: today's meeting load, free blocks, and open items",
	Long:  "Build the morning plan for a date (default today): merged meeting load, free-time blocks, back-to-back warnings, and open items ordered by neglect.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateArg(args)
		if err != nil {
			return err
		}

		return withEngine(func(eng *engine.Engine, db *store.DB) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			plan, err := eng.PlanDay(ctx, date)
			if err != nil {
				return err
			}

			printPlan(plan)
			return nil
		})
	},
}

func printPlan(plan *engine.DayPlan) {
	a := plan.Analysis

	fmt.Println(styleHeader.Render("## Plan for " + plan.Date.Format("Monday, Jan 2")))
	fmt.Println()

	fmt.Printf("Meetings: %s", formatDuration(a.TotalMeeting))
	if a.MeetingHeavy {
		fmt.Printf(" %s", styleWarn.Render("(meeting-heavy day)"))
	}
	fmt.Println()

	if len(a.BackToBack) > 0 {
		for _, b := range a.BackToBack {
			fmt.Println(styleWarn.Render(fmt.Sprintf("  back-to-back: %s → %s (%s gap)",
				b.First.Title, b.Second.Title, formatDuration(b.Gap))))
		}
	}
	fmt.Println()

	if len(a.FreeIntervals) == 0 {
		fmt.Println("No free blocks today.")
	} else {
		fmt.Println("Free blocks:")
		for _, f := range a.FreeIntervals {
			fmt.Printf("  %s – %s  %s\n",
				f.Start.Format("15:04"), f.End.Format("15:04"),
				styleDim.Render(formatDuration(f.Duration())))
		}
	}
	fmt.Println()

	fmt.Println("Open items:")
	printReport(plan.Items)
}

// formatDuration renders a duration as "1h10m" / "45m", dropping the noise
// humanize adds for sub-day spans.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
