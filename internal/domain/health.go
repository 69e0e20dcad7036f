package domain

// HealthStatus grades a single `ask-nix doctor` probe.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck is one diagnostic result: a named probe (nix binary on PATH,
// data directory writable, safety rules loaded) with its status and detail.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport collects every probe run by the doctor service.
type HealthReport struct {
	Checks []HealthCheck
}
