package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ve7ltx/rssdos/internal/logging"
	"github.com/ve7ltx/rssdos/internal/speech"
)

var speakCmd = &cobra.Command{
	Use:   "speak [text...]",
	Short: "Speak a line through the configured engine",
	Long:  `Speak runs the configured synthesizer once. Useful for checking audio output.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logging.Close()

		engine := speech.NewExecEngine(cfg.Speech.Command, cfg.Speech.Args...)
		return engine.Speak(cmd.Context(), strings.Join(args, " "))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rssdos version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("rssdos " + version)
	},
}

func init() {
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(versionCmd)
}
