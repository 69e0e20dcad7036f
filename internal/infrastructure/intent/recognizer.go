// Package intent classifies free-text requests into package-manager intents.
package intent

import (
	"strings"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
	"github.com/luminous-dynamics/ask-nix/internal/ports"
)

const (
	baseScore   = 0.6
	prefixBonus = 0.2
	// phraseBonus rewards multi-word keywords so that "get rid of" outranks
	// "get" instead of tying with it.
	phraseBonus = 0.1
	entityBonus = 0.15
	maxScore    = 0.99

	// biasMinSamples is the minimum number of recorded outcomes before
	// historical success rate nudges confidence.
	biasMinSamples = 3
	biasWeight     = 0.2
)

// Recognizer implements ports.IntentRecognizer over ordered pattern tables.
type Recognizer struct {
	index    ports.PackageIndex
	store    ports.LearningStore
	logger   ports.Logger
	patterns []Pattern
}

// NewRecognizer builds a recognizer from the built-in tables plus optional
// user extensions. The store may be nil; bias is then skipped entirely.
func NewRecognizer(index ports.PackageIndex, store ports.LearningStore, logger ports.Logger, extra ...Pattern) *Recognizer {
	return &Recognizer{
		index:    index,
		store:    store,
		logger:   logger,
		patterns: append(defaultPatterns(), extra...),
	}
}

// Recognize implements ports.IntentRecognizer. Ties between equally scored
// patterns resolve to the first declared pattern.
func (r *Recognizer) Recognize(text string) domain.Intent {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return domain.Intent{Type: domain.IntentUnknown, RawText: text, Confidence: 0}
	}

	lowered := strings.ToLower(raw)
	best := domain.Intent{Type: domain.IntentUnknown, RawText: raw, Confidence: 0}
	bestScore := 0.0
	bestKeyword := ""

	for _, pattern := range r.patterns {
		for _, keyword := range pattern.Keywords {
			if !containsPhrase(lowered, keyword) {
				continue
			}
			score := baseScore
			if strings.HasPrefix(lowered, keyword) {
				score += prefixBonus
			}
			if words := strings.Count(keyword, " "); words > 0 {
				score += phraseBonus * float64(words)
			}
			if score > bestScore {
				bestScore = score
				best.Type = pattern.Intent
				bestKeyword = keyword
			}
		}
	}

	if best.Type == domain.IntentUnknown {
		return best
	}

	best.Package = r.extractEntity(lowered, bestKeyword)
	if best.Type.NeedsPackage() && best.Package != "" {
		bestScore += entityBonus
	}
	best.Confidence = clamp(bestScore + r.bias(best.Type, best.Package))
	return best
}

// bias consults the learning store for historical outcomes of this
// (intent, entity) pair. Store failures degrade to zero adjustment.
func (r *Recognizer) bias(intentType domain.IntentType, entity string) float64 {
	if r.store == nil || entity == "" {
		return 0
	}
	stats, err := r.store.Bias(intentType, entity)
	if err != nil {
		if r.logger != nil {
			r.logger.Debug("bias lookup failed", map[string]interface{}{"error": err.Error()})
		}
		return 0
	}
	if stats.Total() < biasMinSamples {
		return 0
	}
	return (stats.SuccessRate() - 0.5) * biasWeight
}

// extractEntity pulls the package name out of the request: the longest known
// package name appearing as a whole token wins, else the trailing token that
// is neither a keyword word nor a stop word.
func (r *Recognizer) extractEntity(lowered, keyword string) string {
	if r.index != nil {
		longest := ""
		for _, name := range r.index.Known() {
			if len(name) > len(longest) && containsPhrase(lowered, name) {
				longest = name
			}
		}
		if longest != "" {
			return longest
		}
	}

	skip := map[string]bool{}
	for _, w := range strings.Fields(keyword) {
		skip[w] = true
	}
	tokens := strings.Fields(lowered)
	for i := len(tokens) - 1; i >= 0; i-- {
		token := strings.Trim(tokens[i], `"'?.,!`)
		if token == "" || skip[token] || stopWords[token] {
			continue
		}
		return token
	}
	return ""
}

func containsPhrase(text, phrase string) bool {
	return strings.Contains(" "+text+" ", " "+phrase+" ")
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxScore {
		return maxScore
	}
	return v
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "please": true, "me": true,
	"my": true, "i": true, "to": true, "for": true, "on": true,
	"can": true, "you": true, "would": true, "like": true, "want": true,
	"need": true, "it": true, "now": true, "again": true, "latest": true,
	"version": true, "of": true, "app": true, "application": true,
	"program": true, "package": true, "software": true, "computer": true,
	"system": true, "from": true, "nixpkgs": true, "everything": true,
	"all": true, "packages": true,
}

var _ ports.IntentRecognizer = (*Recognizer)(nil)
