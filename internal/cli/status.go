package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mwhite/daybrief/internal/engine"
	"github.com/mwhite/daybrief/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Staleness review of all open items",
	Long:  "Classify every open item as fresh, aging, or stale and print the report, most neglected first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine, db *store.DB) error {
			report, err := eng.Status(time.Now())
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		})
	},
}
