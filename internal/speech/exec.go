package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ExecEngine speaks through an external synthesizer command that takes the
// text as its final argument ("say" on macOS, "espeak" elsewhere).
type ExecEngine struct {
	command string
	args    []string
}

// NewExecEngine creates an ExecEngine. An empty command selects the
// platform default.
func NewExecEngine(command string, args ...string) *ExecEngine {
	if command == "" {
		if runtime.GOOS == "darwin" {
			command = "say"
		} else {
			command = "espeak"
		}
	}
	return &ExecEngine{command: command, args: args}
}

// Speak runs the synthesizer and waits for it to finish. Cancelling ctx
// kills the process, which is how Stop cuts off playback mid-utterance.
func (e *ExecEngine) Speak(ctx context.Context, text string) error {
	args := append(append([]string(nil), e.args...), text)
	cmd := exec.CommandContext(ctx, e.command, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", e.command, err, msg)
		}
		return fmt.Errorf("%s: %w", e.command, err)
	}
	return nil
}
