// Package executor spawns validated commands as plain argument vectors.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
	"github.com/luminous-dynamics/ask-nix/internal/ports"
)

// TimeoutMarker is appended to stderr when a command is killed on expiry.
// The word "timeout" is part of the CLI contract and must survive rewording.
const TimeoutMarker = "ask-nix: timeout: command killed"

// Subprocess implements ports.CommandExecutor on top of os/exec. Commands run
// in their own process group so that a timeout or caller cancellation kills
// the whole tree, not just the direct child.
type Subprocess struct {
	Logger ports.Logger
}

// NewSubprocess builds a new executor.
func NewSubprocess(logger ports.Logger) *Subprocess {
	return &Subprocess{Logger: logger}
}

// Execute implements ports.CommandExecutor. It never goes through a shell.
func (e *Subprocess) Execute(ctx context.Context, cmd domain.Command, timeout time.Duration) domain.ExecutionResult {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGKILL)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	duration := time.Since(start).Milliseconds()

	result := domain.ExecutionResult{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMS: duration,
		Success:    err == nil,
		ExitCode:   0,
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.Success = false
		result.ExitCode = -1
		result.Stderr = appendLine(result.Stderr, fmt.Sprintf("%s after %s", TimeoutMarker, timeout))
	case err != nil:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
			result.Stderr = appendLine(result.Stderr, err.Error())
		}
	}

	if e.Logger != nil {
		e.Logger.Debug("command finished", map[string]interface{}{
			"program":     cmd.Program,
			"exit_code":   result.ExitCode,
			"duration_ms": result.DurationMS,
		})
	}
	return result
}

func appendLine(existing, line string) string {
	if existing == "" {
		return line + "\n"
	}
	if existing[len(existing)-1] != '\n' {
		existing += "\n"
	}
	return existing + line + "\n"
}

var _ ports.CommandExecutor = (*Subprocess)(nil)
