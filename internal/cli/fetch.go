package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ve7ltx/rssdos/internal/feed"
	"github.com/ve7ltx/rssdos/internal/logging"
)

var fetchLimit int

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run one refresh cycle and print the merged headlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logging.Close()

		eng, _, err := buildEngine(false)
		if err != nil {
			return err
		}

		eng.RunOnce(context.Background())

		items := eng.Items()
		if len(items) > fetchLimit {
			items = items[:fetchLimit]
		}
		for _, it := range items {
			fmt.Println(formatItem(it))
		}
		if eng.Degraded() {
			fmt.Println("(warning: snapshots not persisted, see log)")
		}
		return nil
	},
}

func formatItem(it feed.Item) string {
	ts := "--:--"
	if !it.Published.IsZero() {
		ts = it.Published.Local().Format("15:04")
	}
	marker := " "
	if it.New {
		marker = "*"
	}
	return fmt.Sprintf("%s%s [%-8s] %-6s %s", ts, marker, it.Category, it.SourceCode, it.Title)
}

func init() {
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 40, "maximum headlines to print")
	rootCmd.AddCommand(fetchCmd)
}
