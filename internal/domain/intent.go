// Package domain defines core business entities and value objects for ask-nix.
//
// The domain layer is independent of infrastructure concerns and represents
// pure data structures shared across the pipeline.
package domain

// IntentType enumerates recognized user goals.
type IntentType string

const (
	IntentInstall IntentType = "install"
	IntentRemove  IntentType = "remove"
	IntentSearch  IntentType = "search"
	IntentUpdate  IntentType = "update"
	IntentHelp    IntentType = "help"
	IntentUnknown IntentType = "unknown"
)

// Intent is the classified interpretation of a free-text request.
type Intent struct {
	Type       IntentType
	Package    string
	RawText    string
	Confidence float64
}

// NeedsPackage reports whether the intent type requires an extracted package name
// before a command can be built.
func (t IntentType) NeedsPackage() bool {
	switch t {
	case IntentInstall, IntentRemove, IntentSearch:
		return true
	default:
		return false
	}
}
