package domain

import "time"

// File permission constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Privilege modes
const (
	PrivilegeModeUser   = "user"
	PrivilegeModeSystem = "system"
)

// Pipeline defaults
const (
	// DefaultTimeoutSeconds bounds one package-manager invocation.
	DefaultTimeoutSeconds = 120
	// DefaultConfidenceThreshold is the clarification floor for recognized intents.
	DefaultConfidenceThreshold = 0.55
	// DefaultRetentionDays is how long learning records are kept.
	DefaultRetentionDays = 90
	// DefaultIndexRefreshTimeout bounds the package index refresh subprocess.
	DefaultIndexRefreshTimeout = 60 * time.Second
)

// History constants
const (
	// DefaultHistoryLimit is the default number of learning records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
)

// Exit codes mandated by the CLI contract.
const (
	ExitSuccess          = 0
	ExitFailure          = 1
	ExitInvalidArguments = 2
	ExitPermissionDenied = 3
	ExitPackageNotFound  = 4
	ExitNetworkError     = 5
)
