package domain

// Config mirrors ~/.local/share/ask-nix/config.yaml.
type Config struct {
	ConfigFormatVersion string              `yaml:"config_format_version"`
	Preferences         Preferences         `yaml:"preferences"`
	Recognition         RecognitionSettings `yaml:"recognition"`
	Safety              SafetySettings      `yaml:"safety"`
	Learning            LearningSettings    `yaml:"learning"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultPersona string `yaml:"default_persona"`
	DryRunDefault  bool   `yaml:"dry_run_default"`
	// PrivilegeMode selects the command strategy: "user" (nix-env) or
	// "system" (nixos-rebuild).
	PrivilegeMode  string `yaml:"privilege_mode"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// RecognitionSettings configures the intent recognizer.
type RecognitionSettings struct {
	// ConfidenceThreshold is the floor below which an intent is answered with
	// a clarification prompt instead of a command.
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	// PatternsFile points at an optional user pattern extension file (JSON).
	PatternsFile string `yaml:"patterns_file"`
}

// SafetySettings defines safety gate behavior. The gate itself is always
// consulted; only the rules file location is configurable.
type SafetySettings struct {
	RulesFile string `yaml:"rules_file"`
}

// LearningSettings controls the feedback store.
type LearningSettings struct {
	Enabled       bool `yaml:"enabled"`
	RetentionDays int  `yaml:"retention_days"`
}

// EffectiveTimeoutSeconds returns the command execution timeout with default fallback.
func (c *Config) EffectiveTimeoutSeconds() int {
	if c.Preferences.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds
	}
	return c.Preferences.TimeoutSeconds
}

// EffectiveConfidenceThreshold returns the clarification floor with default fallback.
func (c *Config) EffectiveConfidenceThreshold() float64 {
	if c.Recognition.ConfidenceThreshold <= 0 {
		return DefaultConfidenceThreshold
	}
	return c.Recognition.ConfidenceThreshold
}

// EffectiveRetentionDays returns the learning record retention with default fallback.
func (c *Config) EffectiveRetentionDays() int {
	if c.Learning.RetentionDays <= 0 {
		return DefaultRetentionDays
	}
	return c.Learning.RetentionDays
}

// SystemMode reports whether the declarative strategy is configured.
func (c *Config) SystemMode() bool {
	return c.Preferences.PrivilegeMode == PrivilegeModeSystem
}
