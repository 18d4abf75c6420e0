package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwhite/daybrief/internal/engine"
	"github.com/mwhite/daybrief/internal/store"
)

var reviewHistory bool

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Weekly review of the last 7 days",
	Long:  "Summarize the week ending today: items added and completed, what went stale, and per-day meeting load. The review is recorded. Use --history to browse past reviews instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine, db *store.DB) error {
			if reviewHistory {
				return printReviewHistory(db)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			review, err := eng.WeeklyReview(ctx, time.Now())
			if err != nil {
				return err
			}

			fmt.Println(styleHeader.Render(fmt.Sprintf("## Week of %s – %s",
				review.PeriodStart.Format("Jan 2"), review.PeriodEnd.AddDate(0, 0, -1).Format("Jan 2"))))
			fmt.Println()
			fmt.Printf("Captured: %d   Completed: %d\n", len(review.Added), len(review.Completed))
			fmt.Println()

			if len(review.MeetingLoad) > 0 {
				fmt.Println("Meeting load:")
				for _, d := range review.MeetingLoad {
					line := fmt.Sprintf("  %s  %s", d.Date.Format("Mon Jan 2"), formatDuration(d.TotalMeeting))
					if d.MeetingHeavy {
						line += " " + styleWarn.Render("(heavy)")
					}
					fmt.Println(line)
				}
				fmt.Println()
			}

			fmt.Println("Open items:")
			printReport(review.Open)
			return nil
		})
	},
}

func printReviewHistory(db *store.DB) error {
	reviews, err := db.RecentReviews("", 20)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Println("No reviews recorded yet.")
		return nil
	}
	for _, r := range reviews {
		fmt.Printf("%-6s %s – %s  %s\n", r.Kind,
			time.UnixMilli(r.PeriodStart).Format("2006-01-02"),
			time.UnixMilli(r.PeriodEnd).Format("2006-01-02"),
			styleDim.Render(r.Summary))
	}
	return nil
}

func init() {
	reviewCmd.Flags().BoolVar(&reviewHistory, "history", false, "Show past reviews instead of running one")
}
