// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and the
// infrastructure adapters. The pipeline orchestration depends only on these
// abstractions, never on concrete storage, subprocess, or CLI details.
package ports

import (
	"context"
	"time"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.local/share/ask-nix/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// IntentRecognizer maps free text to a classified intent. Pure over static
// pattern tables, optionally consulting the learning store to re-rank
// ambiguous matches.
type IntentRecognizer interface {
	Recognize(text string) domain.Intent
}

// CommandBuilder maps an intent to a concrete package-manager invocation.
// Returns domain.ErrInsufficientInformation or domain.ErrInvalidEntity when
// the intent cannot produce a safe argument vector.
type CommandBuilder interface {
	Build(intent domain.Intent, opts domain.BuildOptions) (domain.Command, error)
}

// SafetyGate checks a constructed command against the centralized policy.
// It must be consulted for every command regardless of origin; a returned
// *domain.BlockedError is fatal for the request.
type SafetyGate interface {
	Check(cmd domain.Command) error
}

// CommandExecutor spawns the command as an argument vector (never via a
// shell), enforcing the timeout and honoring caller cancellation.
type CommandExecutor interface {
	Execute(ctx context.Context, cmd domain.Command, timeout time.Duration) domain.ExecutionResult
}

// ErrorTranslator maps raw execution output to a user-facing message.
type ErrorTranslator interface {
	Translate(result domain.ExecutionResult) domain.UserMessage
}

// LearningStore persists feedback records and serves the bias read path.
// Record is fire-and-forget and must never block the response path; all
// methods degrade gracefully when the backing store is unavailable.
type LearningStore interface {
	Record(rec domain.LearningRecord)
	Bias(intent domain.IntentType, entity string) (domain.BiasStats, error)
	Recent(limit int) ([]domain.LearningRecord, error)
	Search(query string, limit int) ([]domain.LearningRecord, error)
	Prune(olderThan time.Duration) (int64, error)
	Clear() error
	ExportJSON(dest string) error
	Close() error
	Path() string
}

// PackageIndex serves known package names for entity extraction and
// did-you-mean suggestions.
type PackageIndex interface {
	Known() []string
	Contains(name string) bool
	Closest(name string, limit int) []string
}

// ConfirmationPrompter asks the user to approve a destructive command.
type ConfirmationPrompter interface {
	Confirm(cmd domain.Command, reasons []string) (bool, error)
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
