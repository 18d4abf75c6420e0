package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mwhite/daybrief/internal/engine"
	"github.com/mwhite/daybrief/internal/store"
)

var captureCmd = &cobra.Command{
	Use:   "capture <description>",
	Short: "Capture a new commitment",
	Long:  "Capture a commitment as an open work item. The description is stored verbatim.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine, db *store.DB) error {
			it, err := db.CreateItem(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("capture: %w", err)
			}
			fmt.Printf("captured %s: %s\n", shortID(it.ID), it.Description)
			return nil
		})
	},
}

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List work items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine, db *store.DB) error {
			if listAll {
				items, err := db.ListItems()
				if err != nil {
					return err
				}
				for _, it := range items {
					marker := " "
					if it.Status == "done" {
						marker = styleDim.Render("✓")
					}
					fmt.Printf("%s %s %s %s\n", marker, shortID(it.ID), it.Description,
						styleDim.Render(humanize.Time(it.LastTouched())))
				}
				return nil
			}

			report, err := eng.Status(time.Now())
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		})
	},
}

var touchCmd = &cobra.Command{
	Use:   "touch <id>",
	Short: "Record progress on an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine, db *store.DB) error {
			return mutateItem(db, args[0], db.TouchItem, "touched")
		})
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark an item complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine, db *store.DB) error {
			return mutateItem(db, args[0], db.CompleteItem, "done")
		})
	},
}

func mutateItem(db *store.DB, id string, op func(string) error, verb string) error {
	it, err := db.GetItem(id)
	if err != nil {
		return err
	}
	if it == nil {
		return fmt.Errorf("no item matching %q", id)
	}
	if err := op(it.ID); err != nil {
		return err
	}
	fmt.Printf("%s %s: %s\n", verb, shortID(it.ID), it.Description)
	return nil
}

func printReport(report *engine.StalenessReport) {
	if len(report.Classified) == 0 {
		fmt.Println("No open items. Capture one with `daybrief capture`.")
		return
	}

	for _, c := range report.Classified {
		label := freshnessStyle(string(c.Freshness)).Render(fmt.Sprintf("%-5s", c.Freshness))
		fmt.Printf("%s %s %s %s\n", label, shortID(c.Item.ID), c.Item.Description,
			styleDim.Render(humanize.Time(c.Item.LastTouchedAt)))
	}
	fmt.Printf("\n%d fresh, %d aging, %d stale\n",
		report.Counts[engine.Fresh], report.Counts[engine.Aging], report.Counts[engine.Stale])

	for _, err := range report.Errors {
		fmt.Println(styleWarn.Render("skipped: " + err.Error()))
	}
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include completed items")
}
