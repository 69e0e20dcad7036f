package filesystem

import (
	"os"
	"path/filepath"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// DataDir returns the ask-nix state directory, honoring XDG_DATA_HOME.
// The directory holds config.yaml, learning.db, safety.yaml and packages.txt.
func DataDir() string {
	if base := os.Getenv("XDG_DATA_HOME"); base != "" {
		return filepath.Join(base, "ask-nix")
	}
	return filepath.Join(UserHomeDir(), ".local", "share", "ask-nix")
}
