package speech

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// CommandEngine pipes text into a local synthesizer binary (espeak-ng
// and friends). The text is passed as the final argument.
type CommandEngine struct {
	name string
	args []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

var _ Engine = (*CommandEngine)(nil)

// NewCommandEngine builds an engine around the given binary and fixed
// arguments.
func NewCommandEngine(name string, args ...string) *CommandEngine {
	return &CommandEngine{name: name, args: args}
}

// Speak runs the synthesizer and blocks until it exits or ctx cancels.
func (e *CommandEngine) Speak(ctx context.Context, text string) error {
	if e.name == "" {
		return fmt.Errorf("speech command not configured")
	}

	cmd := exec.CommandContext(ctx, e.name, append(append([]string(nil), e.args...), text)...)

	e.mu.Lock()
	e.cmd = cmd
	e.mu.Unlock()

	err := cmd.Run()

	e.mu.Lock()
	e.cmd = nil
	e.mu.Unlock()

	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("run %s: %w", e.name, err)
	}
	return nil
}

// Stop kills a still-running synthesizer process, if any.
func (e *CommandEngine) Stop(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd != nil && e.cmd.Process != nil {
		return e.cmd.Process.Kill()
	}
	return nil
}
