package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "daybrief",
	Short: "Personal work-management routines from the terminal",
	Long:  "Daybrief tracks commitments, reads your calendar feeds, and turns both into morning plans, staleness reviews, and end-of-day reflections. Single Go binary, local SQLite.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(touchCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(debriefCmd)
	rootCmd.AddCommand(reflectCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
