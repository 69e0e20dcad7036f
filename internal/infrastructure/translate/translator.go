// Package translate maps raw package-manager output onto short, human
// messages and the CLI exit-code contract.
package translate

import (
	"fmt"
	"regexp"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
	"github.com/luminous-dynamics/ask-nix/internal/ports"
)

// Translator implements ports.ErrorTranslator against a fixed signature table.
type Translator struct {
	Index ports.PackageIndex
}

// NewTranslator builds a translator. The index powers did-you-mean
// suggestions and may be nil.
func NewTranslator(index ports.PackageIndex) *Translator {
	return &Translator{Index: index}
}

type signature struct {
	re       *regexp.Regexp
	category domain.MessageCategory
	text     string
	exitCode int
}

// attributeRe captures the attribute name out of nix's "attribute 'x' ..."
// error shapes so the suggester has something to match against.
var attributeRe = regexp.MustCompile(`attribute '(?:nixpkgs\.)?([^']+)'`)

// Signatures are checked in order; the first match wins.
var signatures = []signature{
	{
		re:       regexp.MustCompile(`attribute '[^']*' (?:missing|not found)|does not (?:provide|contain) attribute`),
		category: domain.CategoryNotFound,
		text:     "That package was not found in nixpkgs.",
		exitCode: domain.ExitPackageNotFound,
	},
	{
		re:       regexp.MustCompile(`(?i)already installed`),
		category: domain.CategoryAlreadyInstalled,
		text:     "That package is already installed.",
		exitCode: domain.ExitFailure,
	},
	{
		re:       regexp.MustCompile(`(?i)permission denied|operation not permitted|must be run as root`),
		category: domain.CategoryPermissionDenied,
		text:     "Permission denied. This operation needs elevated privileges (try sudo).",
		exitCode: domain.ExitPermissionDenied,
	},
	{
		re:       regexp.MustCompile(`(?i)unable to download|couldn't resolve host|network is unreachable|connection (?:refused|timed out)|ssl`),
		category: domain.CategoryNetwork,
		text:     "A download failed. Check your network connection and try again.",
		exitCode: domain.ExitNetworkError,
	},
	{
		re:       regexp.MustCompile(`(?i)no space left on device`),
		category: domain.CategoryDiskSpace,
		text:     "The disk is full. Freeing Nix store space may help (nix-collect-garbage).",
		exitCode: domain.ExitFailure,
	},
	{
		re:       regexp.MustCompile(`ask-nix: timeout:`),
		category: domain.CategoryTimeout,
		text:     "The command hit its timeout and was stopped.",
		exitCode: domain.ExitFailure,
	},
}

// Translate implements ports.ErrorTranslator. Failures are never swallowed:
// unmatched stderr falls back to a generic message carrying the exit code.
func (t *Translator) Translate(result domain.ExecutionResult) domain.UserMessage {
	if result.Success {
		return domain.UserMessage{
			Category: domain.CategorySuccess,
			Text:     "Done.",
			ExitCode: domain.ExitSuccess,
		}
	}

	for _, sig := range signatures {
		if !sig.re.MatchString(result.Stderr) {
			continue
		}
		msg := domain.UserMessage{
			Category: sig.category,
			Text:     sig.text,
			ExitCode: sig.exitCode,
		}
		if sig.category == domain.CategoryNotFound {
			msg.Suggestion = t.suggest(result.Stderr)
		}
		return msg
	}

	return domain.UserMessage{
		Category: domain.CategoryFailure,
		Text:     fmt.Sprintf("The command failed (exit code %d).", result.ExitCode),
		ExitCode: domain.ExitFailure,
	}
}

// suggest extracts the missing attribute name and looks up the closest known
// package names.
func (t *Translator) suggest(stderr string) string {
	if t.Index == nil {
		return ""
	}
	match := attributeRe.FindStringSubmatch(stderr)
	if match == nil {
		return ""
	}
	closest := t.Index.Closest(match[1], 1)
	if len(closest) == 0 {
		return ""
	}
	return fmt.Sprintf("Did you mean %q?", closest[0])
}

var _ ports.ErrorTranslator = (*Translator)(nil)
