package executor

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
)

func TestExecuteCapturesStdout(t *testing.T) {
	e := NewSubprocess(nil)
	result := e.Execute(context.Background(), domain.Command{
		Program: "echo",
		Args:    []string{"hello"},
	}, 5*time.Second)

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if strings.TrimSpace(result.Stdout) != "hello" {
		t.Fatalf("Stdout = %q, want hello", result.Stdout)
	}
	if result.ExitCode != 0 {
		t.Fatalf("ExitCode = %d, want 0", result.ExitCode)
	}
}

func TestExecuteReportsNonZeroExit(t *testing.T) {
	e := NewSubprocess(nil)
	result := e.Execute(context.Background(), domain.Command{Program: "false"}, 5*time.Second)

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ExitCode == 0 {
		t.Fatalf("ExitCode = %d, want non-zero", result.ExitCode)
	}
}

func TestExecuteKillsOnTimeout(t *testing.T) {
	e := NewSubprocess(nil)
	start := time.Now()
	result := e.Execute(context.Background(), domain.Command{
		Program: "sleep",
		Args:    []string{"5"},
	}, 200*time.Millisecond)

	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("timeout was not enforced, took %s", elapsed)
	}
	if result.Success {
		t.Fatal("expected failure on timeout")
	}
	if result.ExitCode != -1 {
		t.Fatalf("ExitCode = %d, want -1", result.ExitCode)
	}
	if !strings.Contains(result.Stderr, "timeout") {
		t.Fatalf("Stderr = %q, want the literal word \"timeout\"", result.Stderr)
	}
}

func TestExecuteMissingProgram(t *testing.T) {
	e := NewSubprocess(nil)
	result := e.Execute(context.Background(), domain.Command{Program: "definitely-not-a-real-binary"}, time.Second)

	if result.Success {
		t.Fatal("expected failure for missing program")
	}
	if result.ExitCode != -1 {
		t.Fatalf("ExitCode = %d, want -1", result.ExitCode)
	}
}

func TestExecuteHonorsCallerCancellation(t *testing.T) {
	e := NewSubprocess(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	result := e.Execute(ctx, domain.Command{Program: "sleep", Args: []string{"5"}}, 0)
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("cancellation was not honored, took %s", elapsed)
	}
	if result.Success {
		t.Fatal("expected failure on cancellation")
	}
}
