package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
)

func TestRunReportsHealthyEnvironment(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: domain.Config{
			Preferences: domain.Preferences{DefaultPersona: "friendly", PrivilegeMode: domain.PrivilegeModeUser},
		}},
		Gate:  stubGate{},
		Index: stubIndex{names: []string{"firefox", "git"}},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := find(report, "Safety rules"); got.Status != domain.HealthOK {
		t.Fatalf("Safety rules = %+v, want ok", got)
	}
	if got := find(report, "Data directory"); got.Status != domain.HealthOK {
		t.Fatalf("Data directory = %+v, want ok", got)
	}
	if got := find(report, "Package index"); got.Status != domain.HealthOK {
		t.Fatalf("Package index = %+v, want ok", got)
	}
	if got := find(report, "Learning store"); got.Status != domain.HealthWarn {
		t.Fatalf("Learning store = %+v, want warn when disabled", got)
	}
}

func TestRunFlagsBrokenSafetyRules(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: domain.Config{}},
		Gate:           stubGate{err: &domain.BlockedError{Reason: "bad rule", Rule: "broken"}},
		Index:          stubIndex{},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := find(report, "Safety rules"); got.Status != domain.HealthError {
		t.Fatalf("Safety rules = %+v, want error", got)
	}
	if got := find(report, "Package index"); got.Status != domain.HealthWarn {
		t.Fatalf("Package index = %+v, want warn when empty", got)
	}
}

func TestRunStopsOnConfigFailure(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	svc := &Service{
		ConfigProvider: stubConfigProvider{err: errors.New("yaml: line 3")},
	}

	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected config load error to propagate")
	}
	if got := find(report, "Config file"); got.Status != domain.HealthError {
		t.Fatalf("Config file = %+v, want error", got)
	}
}

func TestRefreshIndexRequiresWiring(t *testing.T) {
	svc := &Service{}
	if err := svc.RefreshIndex(context.Background()); err == nil {
		t.Fatal("expected error when refresher is not wired")
	}
}

func find(report domain.HealthReport, name string) domain.HealthCheck {
	for _, check := range report.Checks {
		if check.Name == name {
			return check
		}
	}
	return domain.HealthCheck{}
}

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubGate struct {
	err error
}

func (s stubGate) Check(domain.Command) error { return s.err }

type stubIndex struct {
	names []string
}

func (s stubIndex) Known() []string              { return s.names }
func (s stubIndex) Contains(name string) bool    { return false }
func (s stubIndex) Closest(string, int) []string { return nil }
