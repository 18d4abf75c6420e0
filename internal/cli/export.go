package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mwhite/daybrief/internal/engine"
	"github.com/mwhite/daybrief/internal/store"
)

// yamlItem is the export/import representation of a work item.
type yamlItem struct {
	ID            string     `yaml:"id"`
	Description   string     `yaml:"description"`
	Status        string     `yaml:"status"`
	AddedAt       time.Time  `yaml:"added_at"`
	LastTouchedAt time.Time  `yaml:"last_touched_at"`
	CompletedAt   *time.Time `yaml:"completed_at,omitempty"`
}

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all items as YAML",
	Long:  "Dump every item (open and done) as YAML to stdout or --output, preserving timestamps, for backup or moving between machines.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine, db *store.DB) error {
			items, err := db.ListItems()
			if err != nil {
				return err
			}

			out := make([]yamlItem, 0, len(items))
			for _, it := range items {
				y := yamlItem{
					ID:            it.ID,
					Description:   it.Description,
					Status:        it.Status,
					AddedAt:       it.Added().UTC(),
					LastTouchedAt: it.LastTouched().UTC(),
				}
				if it.CompletedAt != nil {
					t := time.UnixMilli(*it.CompletedAt).UTC()
					y.CompletedAt = &t
				}
				out = append(out, y)
			}

			data, err := yaml.Marshal(out)
			if err != nil {
				return fmt.Errorf("marshal items: %w", err)
			}

			if exportOutput == "" {
				os.Stdout.Write(data)
				return nil
			}
			if err := os.WriteFile(exportOutput, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", exportOutput, err)
			}
			fmt.Fprintf(os.Stderr, "exported %d items to %s\n", len(out), exportOutput)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import items from a YAML export",
	Long:  "Load items from a previous export. Items whose ID already exists are skipped; timestamps are preserved.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine, db *store.DB) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			var items []yamlItem
			if err := yaml.Unmarshal(data, &items); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			imported, skipped := 0, 0
			for _, y := range items {
				existing, err := db.GetItem(y.ID)
				if err != nil {
					return err
				}
				if existing != nil {
					skipped++
					continue
				}

				it := store.Item{
					ID:            y.ID,
					Description:   y.Description,
					Status:        y.Status,
					AddedAt:       y.AddedAt.UnixMilli(),
					LastTouchedAt: y.LastTouchedAt.UnixMilli(),
				}
				if y.CompletedAt != nil {
					ms := y.CompletedAt.UnixMilli()
					it.CompletedAt = &ms
				}
				if err := db.ImportItem(it); err != nil {
					return fmt.Errorf("import item %s: %w", shortID(y.ID), err)
				}
				imported++
			}

			fmt.Printf("imported %d items (%d already present)\n", imported, skipped)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
}
