// Package config loads the YAML configuration from the ask-nix data
// directory. Config is read at startup, not hot-reloaded.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/luminous-dynamics/ask-nix/assets"
	"github.com/luminous-dynamics/ask-nix/internal/domain"
	"github.com/luminous-dynamics/ask-nix/internal/pkg/filesystem"
	"github.com/luminous-dynamics/ask-nix/internal/ports"
)

// FileLoader loads ~/.local/share/ask-nix/config.yaml (overridable via
// ASK_NIX_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is seeded with the
// embedded defaults on first run.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
				return domain.Config{}, err
			}
			data = assets.DefaultConfigYAML
		} else {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("ASK_NIX_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.DataDir(), "config.yaml")
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.PrivilegeMode == "" {
		cfg.Preferences.PrivilegeMode = domain.PrivilegeModeUser
	}
	if cfg.Preferences.TimeoutSeconds == 0 {
		cfg.Preferences.TimeoutSeconds = domain.DefaultTimeoutSeconds
	}
	if cfg.Recognition.ConfidenceThreshold == 0 {
		cfg.Recognition.ConfidenceThreshold = domain.DefaultConfidenceThreshold
	}
	if cfg.Learning.RetentionDays == 0 {
		cfg.Learning.RetentionDays = domain.DefaultRetentionDays
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
