// Package cli contains the rssdos commands.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ve7ltx/rssdos/internal/cache"
	"github.com/ve7ltx/rssdos/internal/config"
	"github.com/ve7ltx/rssdos/internal/engine"
	"github.com/ve7ltx/rssdos/internal/feed"
	"github.com/ve7ltx/rssdos/internal/fetch"
	"github.com/ve7ltx/rssdos/internal/logging"
	"github.com/ve7ltx/rssdos/internal/parse"
	"github.com/ve7ltx/rssdos/internal/seen"
	"github.com/ve7ltx/rssdos/internal/speech"
	"github.com/ve7ltx/rssdos/internal/status"
)

var (
	cfgFile string
	cfg     *config.Config
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "rssdos",
	Short: "RSS/Atom aggregator with spoken headlines",
	Long: `rssdos ingests RSS/Atom feeds on a timer, deduplicates and caches
items locally, tracks per-feed health, and announces the newest headline
through the system speech synthesizer exactly once per change.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.rssdos/config.yaml)")
}

func initConfig() error {
	path := cfgFile
	if path == "" {
		path = config.Path()
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		// Fail open: defaults are already in cfg, just mention the problem.
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return logging.Init(cfg.DataDir, cfg.LogLevel)
}

// buildEngine wires the full pipeline from the loaded config. The speaker
// is optional; one-shot commands pass withSpeech=false.
func buildEngine(withSpeech bool) (*engine.Engine, *speech.Worker, error) {
	registry := feed.NewRegistry(cfg.Sources())

	tracker := seen.New(cfg.SeenFile())
	if err := tracker.Load(); err != nil {
		// Corrupt snapshot: start empty rather than refuse to start.
		logging.Warn("seen snapshot unreadable, starting empty", "error", err)
	}

	store := cache.New(cfg.CacheFile())
	if err := store.Load(); err != nil {
		logging.Warn("cache snapshot unreadable, starting empty", "error", err)
	}

	var worker *speech.Worker
	var speaker engine.Speaker
	if withSpeech && cfg.Speech.Enabled {
		worker = speech.NewWorker(speech.NewExecEngine(cfg.Speech.Command, cfg.Speech.Args...))
		speaker = worker
	}

	eng := engine.New(
		registry,
		fetch.New(time.Duration(cfg.HTTPTimeoutSeconds)*time.Second),
		parse.New(cfg.MaxItemsPerFeed),
		tracker,
		store,
		status.New(registry.All()),
		speaker,
		engine.Options{
			RefreshInterval: time.Duration(cfg.RefreshSeconds) * time.Second,
			MaxItemsTotal:   cfg.MaxItemsTotal,
			SpeakOnStart:    cfg.Speech.SpeakOnStart,
			IncludeSummary:  cfg.Speech.IncludeSummary,
		},
	)
	return eng, worker, nil
}
