package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
	"github.com/luminous-dynamics/ask-nix/internal/pkg/filesystem"
	"github.com/luminous-dynamics/ask-nix/internal/ports"
)

// IndexRefresher rebuilds the package name index from the live channel.
type IndexRefresher interface {
	Refresh(ctx context.Context, executor ports.CommandExecutor) error
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Gate           ports.SafetyGate
	Store          ports.LearningStore
	Index          ports.PackageIndex
	Refresher      IndexRefresher
	Executor       ports.CommandExecutor
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	checks = append(checks, toolchainChecks()...)
	checks = append(checks, dataDirCheck())

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("persona %q, privilege mode %q", cfg.Preferences.DefaultPersona, cfg.Preferences.PrivilegeMode)))

	if s.Gate != nil {
		probe := domain.Command{Program: "nix-env", Args: []string{"-q"}}
		if err := s.Gate.Check(probe); err != nil {
			checks = append(checks, fail("Safety rules", fmt.Sprintf("benign probe rejected: %v", err)))
		} else {
			checks = append(checks, ok("Safety rules", "loaded, benign probe passes"))
		}
	} else {
		checks = append(checks, fail("Safety rules", "validator not initialized"))
	}

	checks = append(checks, s.learningCheck())
	checks = append(checks, s.indexCheck())

	return domain.HealthReport{Checks: checks}, nil
}

// RefreshIndex rebuilds the package index by querying the live channel.
func (s *Service) RefreshIndex(ctx context.Context) error {
	if s.Refresher == nil || s.Executor == nil {
		return fmt.Errorf("package index refresh not available")
	}
	return s.Refresher.Refresh(ctx, s.Executor)
}

func toolchainChecks() []domain.HealthCheck {
	var checks []domain.HealthCheck
	for _, tool := range []string{"nix", "nix-env", "nixos-rebuild"} {
		path, err := exec.LookPath(tool)
		switch {
		case err == nil:
			checks = append(checks, ok(tool, path))
		case tool == "nixos-rebuild":
			// Absent on non-NixOS hosts where user-level nix-env still works.
			checks = append(checks, warn(tool, "not found (system mode unavailable)"))
		default:
			checks = append(checks, fail(tool, "not found in PATH"))
		}
	}
	return checks
}

func dataDirCheck() domain.HealthCheck {
	dir := filesystem.DataDir()
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fail("Data directory", fmt.Sprintf("%s: %v", dir, err))
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), domain.SecureFilePermissions); err != nil {
		return fail("Data directory", fmt.Sprintf("%s not writable: %v", dir, err))
	}
	os.Remove(probe)
	return ok("Data directory", dir)
}

func (s *Service) learningCheck() domain.HealthCheck {
	if s.Store == nil {
		return warn("Learning store", "disabled")
	}
	if _, err := s.Store.Bias(domain.IntentInstall, "doctor-probe"); err != nil {
		return warn("Learning store", fmt.Sprintf("%s: %v", s.Store.Path(), err))
	}
	return ok("Learning store", s.Store.Path())
}

func (s *Service) indexCheck() domain.HealthCheck {
	if s.Index == nil {
		return warn("Package index", "not initialized")
	}
	count := len(s.Index.Known())
	if count == 0 {
		return warn("Package index", "empty, run `ask-nix doctor --refresh-index`")
	}
	return ok("Package index", fmt.Sprintf("%d package names", count))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
