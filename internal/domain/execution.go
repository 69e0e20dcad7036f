package domain

// ExecutionResult wraps details from the command executor. It lives for one
// request only; the learning store keeps its own derived record.
type ExecutionResult struct {
	ExitCode   int    `json:"exit_code"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	DurationMS int64  `json:"duration_ms"`
	Success    bool   `json:"success"`
}
