package domain

import (
	"context"
	"time"
)

// Request captures one free-text request originating from the CLI or an
// embedding frontend.
type Request struct {
	Context   context.Context
	Text      string
	DryRun    bool
	System    bool
	AssumeYes bool
	Timeout   time.Duration
}

// PipelineOutcome names the terminal state of one pipeline invocation.
type PipelineOutcome string

const (
	OutcomeExecutedSuccess PipelineOutcome = "executed-success"
	OutcomeExecutedFailure PipelineOutcome = "executed-failure"
	OutcomeBlocked         PipelineOutcome = "blocked-by-validator"
	OutcomeInsufficient    PipelineOutcome = "insufficient-information"
	OutcomeBuildError      PipelineOutcome = "build-error"
	OutcomeClarification   PipelineOutcome = "clarification-needed"
	OutcomeDeclined        PipelineOutcome = "declined"
	OutcomeHelp            PipelineOutcome = "help"
)

// Response is the canonical result propagated back to the caller.
type Response struct {
	Intent          Intent           `json:"intent"`
	Command         *Command         `json:"command,omitempty"`
	ExecutionResult *ExecutionResult `json:"execution,omitempty"`
	Message         UserMessage      `json:"message"`
	Outcome         PipelineOutcome  `json:"outcome"`
}

// AskService exposes the use-case boundary for handling a request.
type AskService interface {
	Run(Request) (Response, error)
}
