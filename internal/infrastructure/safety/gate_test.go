package safety

import (
	"reflect"
	"testing"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
)

func TestGateBlocksProtectedPathRemoval(t *testing.T) {
	gate, err := NewGate("")
	if err != nil {
		t.Fatalf("NewGate error: %v", err)
	}

	// Adversarial command targeting the store root: must never execute.
	err = gate.Check(domain.Command{Program: "nix-env", Args: []string{"-e", "/nix"}})
	blocked, ok := domain.AsBlocked(err)
	if !ok {
		t.Fatalf("expected BlockedError, got %v", err)
	}
	if blocked.Reason == "" {
		t.Fatal("blocked error must carry a reason")
	}
}

func TestGateBlocksUnlistedProgram(t *testing.T) {
	gate, err := NewGate("")
	if err != nil {
		t.Fatalf("NewGate error: %v", err)
	}

	err = gate.Check(domain.Command{Program: "rm", Args: []string{"-rf", "/"}})
	if _, ok := domain.AsBlocked(err); !ok {
		t.Fatalf("expected BlockedError for unlisted program, got %v", err)
	}
}

func TestGateAllowsOrdinaryInstall(t *testing.T) {
	gate, err := NewGate("")
	if err != nil {
		t.Fatalf("NewGate error: %v", err)
	}

	cmd := domain.Command{Program: "nix-env", Args: []string{"-iA", "nixpkgs.firefox"}}
	if err := gate.Check(cmd); err != nil {
		t.Fatalf("expected install to pass, got %v", err)
	}
}

func TestGateBlocksGenerationWipe(t *testing.T) {
	gate, err := NewGate("")
	if err != nil {
		t.Fatalf("NewGate error: %v", err)
	}

	cmd := domain.Command{Program: "nix-env", Args: []string{"--delete-generations", "old"}}
	if _, ok := domain.AsBlocked(gate.Check(cmd)); !ok {
		t.Fatal("expected generation wipe to be blocked")
	}
}

func TestGateCheckIsIdempotent(t *testing.T) {
	gate, err := NewGate("")
	if err != nil {
		t.Fatalf("NewGate error: %v", err)
	}

	cmd := domain.Command{Program: "nix-env", Args: []string{"-e", "/etc"}}
	first := gate.Check(cmd)
	second := gate.Check(cmd)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Check is not idempotent: %v vs %v", first, second)
	}
}
