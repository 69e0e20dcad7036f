// Package ask orchestrates the request pipeline end-to-end:
// recognize, build, validate, execute, translate, record.
package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
	"github.com/luminous-dynamics/ask-nix/internal/ports"
)

const helpText = `Tell me what you want in plain words, for example:
  ask-nix "install firefox"
  ask-nix "remove vim"
  ask-nix "search markdown editor"
  ask-nix "update everything"
Add --dry-run to see what would happen without changing anything.`

// Service runs one request through the pipeline. Each invocation is
// independent; the learning store is the only shared mutable state and
// serializes its own writes.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Recognizer     ports.IntentRecognizer
	Builder        ports.CommandBuilder
	Gate           ports.SafetyGate
	Executor       ports.CommandExecutor
	Translator     ports.ErrorTranslator
	Store          ports.LearningStore
	Prompter       ports.ConfirmationPrompter
	Logger         ports.Logger
}

// Run processes a single natural-language request.
func (s *Service) Run(req domain.Request) (domain.Response, error) {
	if s.ConfigProvider == nil || s.Recognizer == nil || s.Builder == nil ||
		s.Gate == nil || s.Executor == nil || s.Translator == nil || s.Logger == nil {
		return domain.Response{}, errors.New("ask.Service dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.Response{}, fmt.Errorf("load config: %w", err)
	}

	intent := s.Recognizer.Recognize(req.Text)
	resp := domain.Response{Intent: intent}

	s.Logger.Debug("recognized intent", map[string]interface{}{
		"type":       string(intent.Type),
		"package":    intent.Package,
		"confidence": intent.Confidence,
	})

	switch {
	case intent.Type == domain.IntentHelp:
		resp.Outcome = domain.OutcomeHelp
		resp.Message = domain.UserMessage{
			Category: domain.CategorySuccess,
			Text:     helpText,
			ExitCode: domain.ExitSuccess,
		}
		return resp, nil
	case intent.Type == domain.IntentUnknown:
		resp.Outcome = domain.OutcomeInsufficient
		resp.Message = domain.UserMessage{
			Category: domain.CategoryClarification,
			Text:     "I did not understand that. Tell me what to install, remove, search or update.",
			ExitCode: domain.ExitInvalidArguments,
		}
		return resp, nil
	case intent.Confidence < cfg.EffectiveConfidenceThreshold():
		resp.Outcome = domain.OutcomeClarification
		resp.Message = domain.UserMessage{
			Category: domain.CategoryClarification,
			Text:     fmt.Sprintf("I think you want to %s, but I am not sure. Could you rephrase?", intent.Type),
			ExitCode: domain.ExitInvalidArguments,
		}
		return resp, nil
	}

	opts := domain.BuildOptions{
		DryRun: req.DryRun || cfg.Preferences.DryRunDefault,
		System: req.System || cfg.SystemMode(),
	}

	cmd, err := s.Builder.Build(intent, opts)
	if err != nil {
		return s.buildFailure(resp, err), nil
	}
	resp.Command = &cmd

	if err := s.Gate.Check(cmd); err != nil {
		blocked, ok := domain.AsBlocked(err)
		if !ok {
			return resp, fmt.Errorf("safety check: %w", err)
		}
		s.Logger.Warn("command blocked", map[string]interface{}{
			"command": cmd.String(),
			"rule":    blocked.Rule,
			"reason":  blocked.Reason,
		})
		resp.Outcome = domain.OutcomeBlocked
		resp.Message = domain.UserMessage{
			Category: domain.CategoryBlocked,
			Text:     fmt.Sprintf("This action was blocked for safety: %s.", blocked.Reason),
			ExitCode: domain.ExitFailure,
		}
		return resp, nil
	}

	if cmd.IsDestructive && !opts.DryRun {
		approved, err := s.confirmDestructive(req, cmd)
		if err != nil {
			return resp, err
		}
		if !approved {
			resp.Outcome = domain.OutcomeDeclined
			resp.Message = domain.UserMessage{
				Category: domain.CategoryClarification,
				Text:     "Not executed. Rerun with --yes to confirm, or --dry-run to preview.",
				ExitCode: domain.ExitFailure,
			}
			return resp, nil
		}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = time.Duration(cfg.EffectiveTimeoutSeconds()) * time.Second
	}

	result := s.Executor.Execute(ctx, cmd, timeout)
	resp.ExecutionResult = &result
	resp.Message = s.Translator.Translate(result)
	if result.Success {
		resp.Outcome = domain.OutcomeExecutedSuccess
	} else {
		resp.Outcome = domain.OutcomeExecutedFailure
	}

	s.record(intent, result)
	return resp, nil
}

// confirmDestructive applies the destructive-command invariant: explicit
// user confirmation or nothing.
func (s *Service) confirmDestructive(req domain.Request, cmd domain.Command) (bool, error) {
	if req.AssumeYes {
		return true, nil
	}
	if s.Prompter == nil || !s.Prompter.Enabled() {
		return false, nil
	}
	return s.Prompter.Confirm(cmd, []string{cmd.Description})
}

func (s *Service) buildFailure(resp domain.Response, err error) domain.Response {
	switch {
	case errors.Is(err, domain.ErrInvalidEntity) && strings.HasPrefix(resp.Intent.Package, "/"):
		// A filesystem path as the target is a policy refusal, not a typo.
		// Report it the same way the validator reports a blocked command.
		s.Logger.Warn("path-shaped target refused", map[string]interface{}{
			"entity": resp.Intent.Package,
		})
		resp.Outcome = domain.OutcomeBlocked
		resp.Message = domain.UserMessage{
			Category: domain.CategoryBlocked,
			Text:     fmt.Sprintf("This action was blocked for safety: %q is a filesystem path, not a package.", resp.Intent.Package),
			ExitCode: domain.ExitFailure,
		}
	case errors.Is(err, domain.ErrInvalidEntity):
		resp.Outcome = domain.OutcomeBuildError
		resp.Message = domain.UserMessage{
			Category: domain.CategoryBuildError,
			Text:     "That package name contains characters I will not pass to the package manager.",
			ExitCode: domain.ExitInvalidArguments,
		}
	default:
		resp.Outcome = domain.OutcomeInsufficient
		resp.Message = domain.UserMessage{
			Category: domain.CategoryClarification,
			Text:     "I need a package name for that. Which package did you mean?",
			ExitCode: domain.ExitInvalidArguments,
		}
	}
	return resp
}

// record feeds the learning store. Best-effort: the store's Record never
// blocks, and a nil store is fine. Entity-less commands (update) are recorded
// with an empty entity; the bias read path matches on entity so they never
// skew disambiguation.
func (s *Service) record(intent domain.Intent, result domain.ExecutionResult) {
	if s.Store == nil {
		return
	}
	outcome := domain.OutcomeFailure
	if result.Success {
		outcome = domain.OutcomeSuccess
	}
	s.Store.Record(domain.LearningRecord{
		IntentType: intent.Type,
		Entity:     intent.Package,
		Outcome:    outcome,
	})
}

var _ domain.AskService = (*Service)(nil)
