// Package safety centralizes the allow-list and deny-rule policy. Every
// constructed command passes through here before execution, whatever its
// origin.
package safety

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/luminous-dynamics/ask-nix/assets"
	"github.com/luminous-dynamics/ask-nix/internal/domain"
	"github.com/luminous-dynamics/ask-nix/internal/pkg/filesystem"
	"github.com/luminous-dynamics/ask-nix/internal/ports"
)

// allowedPrograms is the closed set of binaries a command may invoke.
var allowedPrograms = map[string]bool{
	"nix-env":             true,
	"nix":                 true,
	"nixos-rebuild":       true,
	"nix-channel":         true,
	"nix-collect-garbage": true,
}

// Gate implements ports.SafetyGate.
type Gate struct {
	rules []compiledRule
}

type compiledRule struct {
	re   *regexp.Regexp
	rule DenyRule
}

// DenyRule describes a regex-based deny pattern.
type DenyRule struct {
	Pattern string `yaml:"pattern"`
	Level   string `yaml:"level"`
	Message string `yaml:"message"`
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		DenyPatterns []DenyRule `yaml:"deny_patterns"`
	} `yaml:"rules"`
}

// NewGate loads deny rules from disk, falling back to the embedded defaults
// when the rules file is missing or empty.
func NewGate(path string) (*Gate, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}

	compiled := make([]compiledRule, 0, len(rules.Rules.DenyPatterns))
	for _, rule := range rules.Rules.DenyPatterns {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile deny pattern %q: %w", rule.Pattern, err)
		}
		compiled = append(compiled, compiledRule{re: re, rule: rule})
	}

	return &Gate{rules: compiled}, nil
}

// Check implements ports.SafetyGate. It is a pure function: calling it twice
// on the same command yields the same result.
func (g *Gate) Check(cmd domain.Command) error {
	if !allowedPrograms[cmd.Program] {
		return &domain.BlockedError{
			Reason: fmt.Sprintf("program %q is not a recognized package-manager binary", cmd.Program),
			Rule:   "program-allow-list",
		}
	}

	rendered := cmd.Program + " " + strings.Join(cmd.Args, " ")
	for _, rule := range g.rules {
		if rule.re.MatchString(rendered) {
			return &domain.BlockedError{
				Reason: rule.rule.Message,
				Rule:   rule.rule.Pattern,
			}
		}
	}
	return nil
}

// Rules lists the loaded deny rules for inspection.
func (g *Gate) Rules() []DenyRule {
	rules := make([]DenyRule, 0, len(g.rules))
	for _, c := range g.rules {
		rules = append(rules, c.rule)
	}
	return rules
}

func loadRules(path string) (RulesFile, error) {
	var rules RulesFile
	data, err := os.ReadFile(expandPath(path))
	if err != nil {
		// fall back to embedded defaults
		data = assets.DefaultSafetyYAML
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, fmt.Errorf("parse safety rules: %w", err)
	}
	if len(rules.Rules.DenyPatterns) == 0 {
		if err := yaml.Unmarshal(assets.DefaultSafetyYAML, &rules); err != nil {
			return RulesFile{}, err
		}
	}
	return rules, nil
}

func expandPath(path string) string {
	if path == "" {
		return filepath.Join(filesystem.DataDir(), "safety.yaml")
	}
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.SafetyGate = (*Gate)(nil)
