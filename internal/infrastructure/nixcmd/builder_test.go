package nixcmd

import (
	"errors"
	"reflect"
	"testing"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
)

func TestBuildInstallCommand(t *testing.T) {
	b := NewBuilder()
	cmd, err := b.Build(domain.Intent{Type: domain.IntentInstall, Package: "firefox"}, domain.BuildOptions{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if cmd.Program != "nix-env" {
		t.Fatalf("Program = %q, want nix-env", cmd.Program)
	}
	if want := []string{"-iA", "nixpkgs.firefox"}; !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("Args = %v, want %v", cmd.Args, want)
	}
	if cmd.IsDestructive {
		t.Fatal("install must not be destructive")
	}
}

func TestBuildDryRunAppendsNativeFlag(t *testing.T) {
	b := NewBuilder()
	cmd, err := b.Build(domain.Intent{Type: domain.IntentInstall, Package: "firefox"}, domain.BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if want := []string{"-iA", "nixpkgs.firefox", "--dry-run"}; !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("Args = %v, want %v", cmd.Args, want)
	}
}

func TestBuildRemoveIsDestructive(t *testing.T) {
	b := NewBuilder()
	cmd, err := b.Build(domain.Intent{Type: domain.IntentRemove, Package: "firefox"}, domain.BuildOptions{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !cmd.IsDestructive {
		t.Fatal("remove must be destructive")
	}
	if want := []string{"-e", "firefox"}; !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("Args = %v, want %v", cmd.Args, want)
	}
}

func TestBuildSystemModeRequiresPrivilege(t *testing.T) {
	b := NewBuilder()
	tests := []struct {
		name   string
		intent domain.Intent
		dryRun bool
		want   []string
	}{
		{
			name:   "system install",
			intent: domain.Intent{Type: domain.IntentInstall, Package: "firefox"},
			want:   []string{"switch"},
		},
		{
			name:   "system update",
			intent: domain.Intent{Type: domain.IntentUpdate},
			want:   []string{"switch", "--upgrade"},
		},
		{
			name:   "system update dry run",
			intent: domain.Intent{Type: domain.IntentUpdate},
			dryRun: true,
			want:   []string{"dry-run", "--upgrade"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := b.Build(tt.intent, domain.BuildOptions{System: true, DryRun: tt.dryRun})
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if cmd.Program != "nixos-rebuild" {
				t.Fatalf("Program = %q, want nixos-rebuild", cmd.Program)
			}
			if !cmd.RequiresPrivilege {
				t.Fatal("system commands must require privilege")
			}
			if !reflect.DeepEqual(cmd.Args, tt.want) {
				t.Fatalf("Args = %v, want %v", cmd.Args, tt.want)
			}
		})
	}
}

func TestBuildRejectsUnusableIntents(t *testing.T) {
	b := NewBuilder()
	tests := []struct {
		name    string
		intent  domain.Intent
		wantErr error
	}{
		{name: "unknown intent", intent: domain.Intent{Type: domain.IntentUnknown}, wantErr: domain.ErrInsufficientInformation},
		{name: "help intent", intent: domain.Intent{Type: domain.IntentHelp}, wantErr: domain.ErrInsufficientInformation},
		{name: "missing package", intent: domain.Intent{Type: domain.IntentInstall}, wantErr: domain.ErrInsufficientInformation},
		{name: "path traversal entity", intent: domain.Intent{Type: domain.IntentRemove, Package: "/nix"}, wantErr: domain.ErrInvalidEntity},
		{name: "shell metacharacters", intent: domain.Intent{Type: domain.IntentInstall, Package: "firefox; rm -rf ~"}, wantErr: domain.ErrInvalidEntity},
		{name: "command substitution", intent: domain.Intent{Type: domain.IntentInstall, Package: "$(reboot)"}, wantErr: domain.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Build(tt.intent, domain.BuildOptions{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
