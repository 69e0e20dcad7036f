package intent

import (
	"errors"
	"testing"
	"time"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
)

func newTestRecognizer(extra ...Pattern) *Recognizer {
	return NewRecognizer(stubIndex{names: []string{"firefox", "git", "obs-studio"}}, nil, nil, extra...)
}

func TestRecognizeClassifiesCoreIntents(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantType    domain.IntentType
		wantPackage string
	}{
		{name: "plain install", text: "install firefox", wantType: domain.IntentInstall, wantPackage: "firefox"},
		{name: "install synonym", text: "get me firefox please", wantType: domain.IntentInstall, wantPackage: "firefox"},
		{name: "remove", text: "uninstall firefox", wantType: domain.IntentRemove, wantPackage: "firefox"},
		{name: "phrase beats shorter keyword", text: "get rid of firefox", wantType: domain.IntentRemove, wantPackage: "firefox"},
		{name: "search", text: "is there a markdown editor", wantType: domain.IntentSearch, wantPackage: "editor"},
		{name: "update", text: "update everything", wantType: domain.IntentUpdate, wantPackage: ""},
		{name: "help", text: "help", wantType: domain.IntentHelp},
		{name: "longest known name wins", text: "install obs-studio now", wantType: domain.IntentInstall, wantPackage: "obs-studio"},
		{name: "trailing token fallback", text: "install superniche", wantType: domain.IntentInstall, wantPackage: "superniche"},
		{name: "gibberish", text: "flibber jabberwock", wantType: domain.IntentUnknown},
	}

	r := newTestRecognizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Recognize(tt.text)
			if got.Type != tt.wantType {
				t.Fatalf("Recognize(%q).Type = %s, want %s", tt.text, got.Type, tt.wantType)
			}
			if got.Package != tt.wantPackage {
				t.Fatalf("Recognize(%q).Package = %q, want %q", tt.text, got.Package, tt.wantPackage)
			}
		})
	}
}

func TestRecognizeEmptyInput(t *testing.T) {
	r := newTestRecognizer()
	got := r.Recognize("")
	if got.Type != domain.IntentUnknown {
		t.Fatalf("expected unknown intent, got %s", got.Type)
	}
	if got.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %f", got.Confidence)
	}
}

func TestRecognizeUnknownHasZeroConfidence(t *testing.T) {
	r := newTestRecognizer()
	got := r.Recognize("xyzzy plugh")
	if got.Type != domain.IntentUnknown || got.Confidence != 0 {
		t.Fatalf("expected unknown with zero confidence, got %+v", got)
	}
}

func TestRecognizeTieBreakIsDeclarationOrder(t *testing.T) {
	// Two equally scored extension patterns: the first declared wins.
	r := newTestRecognizer(
		Pattern{Intent: domain.IntentSearch, Keywords: []string{"peruse"}},
		Pattern{Intent: domain.IntentRemove, Keywords: []string{"peruse"}},
	)
	got := r.Recognize("could you peruse firefox")
	if got.Type != domain.IntentSearch {
		t.Fatalf("expected first declared pattern to win tie, got %s", got.Type)
	}
}

func TestRecognizeBiasRaisesConfidence(t *testing.T) {
	index := stubIndex{names: []string{"firefox"}}
	static := NewRecognizer(index, nil, nil).Recognize("install firefox")

	store := &stubStore{stats: domain.BiasStats{Successes: 6, Failures: 0}}
	biased := NewRecognizer(index, store, nil).Recognize("install firefox")

	if biased.Confidence <= static.Confidence {
		t.Fatalf("expected bias to raise confidence: static=%f biased=%f", static.Confidence, biased.Confidence)
	}
}

func TestRecognizeBiasDegradesOnStoreError(t *testing.T) {
	index := stubIndex{names: []string{"firefox"}}
	static := NewRecognizer(index, nil, nil).Recognize("install firefox")

	store := &stubStore{err: errors.New("db unavailable")}
	degraded := NewRecognizer(index, store, nil).Recognize("install firefox")

	if degraded.Confidence != static.Confidence {
		t.Fatalf("store error must fall back to static confidence: static=%f got=%f", static.Confidence, degraded.Confidence)
	}
}

type stubIndex struct {
	names []string
}

func (s stubIndex) Known() []string { return s.names }

func (s stubIndex) Contains(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

func (s stubIndex) Closest(string, int) []string { return nil }

type stubStore struct {
	stats domain.BiasStats
	err   error
}

func (s *stubStore) Record(domain.LearningRecord) {}

func (s *stubStore) Bias(domain.IntentType, string) (domain.BiasStats, error) {
	return s.stats, s.err
}

func (s *stubStore) Recent(int) ([]domain.LearningRecord, error)         { return nil, nil }
func (s *stubStore) Search(string, int) ([]domain.LearningRecord, error) { return nil, nil }
func (s *stubStore) Prune(time.Duration) (int64, error)                  { return 0, nil }
func (s *stubStore) Clear() error                                        { return nil }
func (s *stubStore) ExportJSON(string) error                             { return nil }
func (s *stubStore) Close() error                                        { return nil }
func (s *stubStore) Path() string                                        { return "" }
