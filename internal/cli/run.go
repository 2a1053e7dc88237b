package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ve7ltx/rssdos/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the aggregation daemon",
	Long: `Run starts the refresh scheduler: an immediate first cycle, then one
per refresh interval. New newest headlines are announced through the
configured speech engine. Stops on SIGINT/SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logging.Close()

		eng, worker, err := buildEngine(true)
		if err != nil {
			return err
		}
		if worker != nil {
			defer worker.Shutdown()
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		eng.Start(ctx)
		fmt.Printf("rssdos running, data dir %s (ctrl-c to stop)\n", cfg.DataDir)

		// Surface announcements on the console as well.
		go func() {
			for it := range eng.Notifications() {
				fmt.Printf("headline: [%s] %s: %s\n", it.Category, it.SourceCode, it.Title)
			}
		}()

		<-ctx.Done()
		eng.Wait()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
