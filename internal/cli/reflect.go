package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwhite/daybrief/internal/engine"
	"github.com/mwhite/daybrief/internal/store"
)

var reflectCmd = &cobra.Command{
	Use:   "reflect [date]",
	Short: "End-of-day reflection",
	Long:  "Summarize what moved today (items touched, completed, notes taken) plus a preview of tomorrow's meeting load. The reflection is recorded as a daily review.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateArg(args)
		if err != nil {
			return err
		}

		return withEngine(func(eng *engine.Engine, db *store.DB) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			ref, err := eng.Reflect(ctx, date)
			if err != nil {
				return err
			}

			fmt.Println(styleHeader.Render("## Reflection — " + ref.Date.Format("Monday, Jan 2")))
			fmt.Println()

			if len(ref.Completed) == 0 && len(ref.Touched) == 0 {
				fmt.Println("Nothing moved today.")
			}
			if len(ref.Completed) > 0 {
				fmt.Println("Completed:")
				for _, it := range ref.Completed {
					fmt.Printf("  ✓ %s\n", it.Description)
				}
			}
			if len(ref.Touched) > 0 {
				fmt.Println("Touched:")
				for _, it := range ref.Touched {
					if it.Status == "done" {
						continue // already listed above
					}
					fmt.Printf("  · %s\n", it.Description)
				}
			}
			if len(ref.Notes) > 0 {
				fmt.Printf("Notes taken: %d\n", len(ref.Notes))
			}

			if ref.Tomorrow != nil {
				fmt.Println()
				fmt.Printf("Tomorrow: %s of meetings", formatDuration(ref.Tomorrow.TotalMeeting))
				if ref.Tomorrow.MeetingHeavy {
					fmt.Printf(" %s", styleWarn.Render("(heavy)"))
				}
				fmt.Println()
			}
			return nil
		})
	},
}
