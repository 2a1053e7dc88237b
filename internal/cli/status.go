package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ve7ltx/rssdos/internal/feed"
	"github.com/ve7ltx/rssdos/internal/logging"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Run one refresh cycle and print per-feed health",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logging.Close()

		eng, _, err := buildEngine(false)
		if err != nil {
			return err
		}

		eng.RunOnce(context.Background())

		ok, fail := 0, 0
		for _, st := range eng.Statuses() {
			if st.State == feed.StateOK {
				ok++
			} else {
				fail++
			}
			fmt.Printf("%-4s [%-8s] %s (%d)\n", st.State, st.Category, st.Name, st.ItemCount)
			fmt.Printf("     %s\n", st.ActiveURL)
			if st.LastError != "" {
				fmt.Printf("     %s\n", st.LastError)
			}
		}
		fmt.Printf("summary: OK %d · FAIL %d\n", ok, fail)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
