package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwhite/daybrief/internal/engine"
	"github.com/mwhite/daybrief/internal/store"
)

var (
	debriefItem string
	debriefBody string
)

var debriefCmd = &cobra.Command{
	Use:   "debrief <title>",
	Short: "Record a meeting debrief note",
	Long: `Record a debrief note after a meeting. With --item the note attaches to a
work item and counts as progress on it. Without --body the note text is
read from stdin until EOF.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")

		return withEngine(func(eng *engine.Engine, db *store.DB) error {
			body := debriefBody
			if body == "" {
				stat, _ := os.Stdin.Stat()
				if stat != nil && stat.Mode()&os.ModeCharDevice == 0 {
					var b strings.Builder
					scanner := bufio.NewScanner(os.Stdin)
					for scanner.Scan() {
						b.WriteString(scanner.Text())
						b.WriteString("\n")
					}
					body = strings.TrimSpace(b.String())
				}
			}

			itemID := ""
			if debriefItem != "" {
				it, err := db.GetItem(debriefItem)
				if err != nil {
					return err
				}
				if it == nil {
					return fmt.Errorf("no item matching %q", debriefItem)
				}
				itemID = it.ID
			}

			n, err := db.AddNote(itemID, title, body)
			if err != nil {
				return fmt.Errorf("record debrief: %w", err)
			}

			// A debrief on an item is progress on it.
			if itemID != "" {
				if err := db.TouchItem(itemID); err != nil {
					fmt.Fprintf(os.Stderr, "note recorded, but touch failed: %v\n", err)
				}
			}

			fmt.Printf("recorded debrief #%d: %s\n", n.ID, n.Title)
			return nil
		})
	},
}

func init() {
	debriefCmd.Flags().StringVarP(&debriefItem, "item", "i", "", "Attach the note to an item (ID or prefix)")
	debriefCmd.Flags().StringVarP(&debriefBody, "body", "b", "", "Note body (otherwise read from stdin)")
}
