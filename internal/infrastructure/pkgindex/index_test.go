package pkgindex

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIndexFallsBackToSeedList(t *testing.T) {
	idx := NewFileIndex(filepath.Join(t.TempDir(), "missing.txt"), nil)
	if !idx.Contains("firefox") {
		t.Fatal("seed list must contain firefox")
	}
	if len(idx.Known()) == 0 {
		t.Fatal("seed list must not be empty")
	}
}

func TestIndexLoadsCachedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\n\nalpha\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	idx := NewFileIndex(path, nil)
	if got := len(idx.Known()); got != 2 {
		t.Fatalf("Known() has %d names, want 2 (deduplicated)", got)
	}
	if !idx.Contains("beta") || idx.Contains("firefox") {
		t.Fatal("cached file must replace the seed list")
	}
}

func TestClosestFindsMisspelledPackage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.txt")
	if err := os.WriteFile(path, []byte("firefox\ngit\nvim\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	idx := NewFileIndex(path, nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "subsequence typo", input: "firefx", want: "firefox"},
		{name: "trailing duplicate letter", input: "firefoxx", want: "firefox"},
		{name: "exact", input: "git", want: "git"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Closest(tt.input, 1)
			if len(got) == 0 || got[0] != tt.want {
				t.Fatalf("Closest(%q) = %v, want [%s]", tt.input, got, tt.want)
			}
		})
	}
}

func TestClosestUnmatchable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.txt")
	if err := os.WriteFile(path, []byte("firefox\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	idx := NewFileIndex(path, nil)
	if got := idx.Closest("zzzz", 1); len(got) != 0 {
		t.Fatalf("Closest(zzzz) = %v, want empty", got)
	}
}
