// Package pkgindex serves known package names for entity extraction and
// did-you-mean suggestions.
package pkgindex

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/luminous-dynamics/ask-nix/assets"
	"github.com/luminous-dynamics/ask-nix/internal/domain"
	"github.com/luminous-dynamics/ask-nix/internal/ports"
)

// FileIndex implements ports.PackageIndex over a one-name-per-line text file,
// falling back to the embedded seed list when no cache exists yet.
type FileIndex struct {
	path   string
	logger ports.Logger

	mu    sync.RWMutex
	names []string
	set   map[string]bool
}

// NewFileIndex loads the cached index at path, or the embedded seed list.
func NewFileIndex(path string, logger ports.Logger) *FileIndex {
	idx := &FileIndex{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		data = assets.DefaultPackagesTxt
	}
	idx.load(data)
	return idx
}

func (x *FileIndex) load(data []byte) {
	names := make([]string, 0, 64)
	set := make(map[string]bool, 64)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || set[name] {
			continue
		}
		names = append(names, name)
		set[name] = true
	}
	sort.Strings(names)

	x.mu.Lock()
	x.names = names
	x.set = set
	x.mu.Unlock()
}

// Known implements ports.PackageIndex.
func (x *FileIndex) Known() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.names
}

// Contains implements ports.PackageIndex.
func (x *FileIndex) Contains(name string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.set[name]
}

// Closest implements ports.PackageIndex using fuzzy ranking. When the input
// is a superstring of a known name (the common trailing-typo case), the
// forward match finds nothing and the reverse direction is tried.
func (x *FileIndex) Closest(name string, limit int) []string {
	if limit <= 0 {
		limit = 1
	}
	names := x.Known()

	matches := fuzzy.Find(name, names)
	out := make([]string, 0, limit)
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == limit {
			return out
		}
	}
	if len(out) > 0 {
		return out
	}

	type candidate struct {
		name  string
		score int
	}
	var candidates []candidate
	for _, known := range names {
		if m := fuzzy.Find(known, []string{name}); len(m) > 0 {
			candidates = append(candidates, candidate{name: known, score: m[0].Score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	for _, c := range candidates {
		out = append(out, c.name)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Refresh rebuilds the cache from `nix-env -qaP` output and reloads it.
func (x *FileIndex) Refresh(ctx context.Context, exec ports.CommandExecutor) error {
	result := exec.Execute(ctx, domain.Command{
		Program:     "nix-env",
		Args:        []string{"-qaP"},
		Description: "Query all available package attributes",
	}, domain.DefaultIndexRefreshTimeout)
	if !result.Success {
		return fmt.Errorf("nix-env -qaP failed (exit %d)", result.ExitCode)
	}

	var buf bytes.Buffer
	scanner := bufio.NewScanner(strings.NewReader(result.Stdout))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		attr := strings.TrimPrefix(fields[0], "nixpkgs.")
		if attr == "" {
			continue
		}
		buf.WriteString(attr)
		buf.WriteByte('\n')
	}
	if buf.Len() == 0 {
		return fmt.Errorf("nix-env -qaP produced no package names")
	}

	if err := os.WriteFile(x.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write package index: %w", err)
	}
	x.load(buf.Bytes())
	if x.logger != nil {
		x.logger.Info("package index refreshed", map[string]interface{}{"count": len(x.Known())})
	}
	return nil
}

var _ ports.PackageIndex = (*FileIndex)(nil)
