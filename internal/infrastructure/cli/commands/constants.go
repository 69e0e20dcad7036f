package commands

// Error messages shared across subcommands.
const (
	ErrLearningStoreUnavailable = "learning is disabled, enable it in config.yaml"
	ErrDoctorUnavailable        = "doctor service unavailable"
	ErrQueryRequired            = "--query required"
	ErrInvalidPruneDays         = "--days must be > 0"
)

// Informational messages.
const (
	MsgNoHistoryRecorded = "No interactions recorded yet."
)
