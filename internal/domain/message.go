package domain

// MessageCategory buckets raw package-manager failures into a small set of
// human-readable causes.
type MessageCategory string

const (
	CategorySuccess          MessageCategory = "success"
	CategoryAlreadyInstalled MessageCategory = "already_installed"
	CategoryNotFound         MessageCategory = "package_not_found"
	CategoryPermissionDenied MessageCategory = "permission_denied"
	CategoryNetwork          MessageCategory = "network_error"
	CategoryDiskSpace        MessageCategory = "disk_space"
	CategoryTimeout          MessageCategory = "timeout"
	CategoryBlocked          MessageCategory = "blocked"
	CategoryClarification    MessageCategory = "clarification"
	CategoryBuildError       MessageCategory = "build_error"
	CategoryFailure          MessageCategory = "failure"
)

// UserMessage is the translated, user-facing outcome of a request.
type UserMessage struct {
	Category   MessageCategory `json:"category"`
	Text       string          `json:"text"`
	Suggestion string          `json:"suggestion,omitempty"`
	// ExitCode is the process exit code mandated by the CLI contract:
	// 0 success, 1 general failure, 2 invalid arguments, 3 permission denied,
	// 4 package not found, 5 network error.
	ExitCode int `json:"exit_code"`
}
