package complete

import (
	"sync"
	"testing"

	"github.com/kana-tools/kanaq/internal/model"
)

func TestMatchesSubstring(t *testing.T) {
	cs := NewCandidateSet([]string{"neko", "nezumi", "inu"}, model.ModeRomaji)
	got := cs.Matches("NE")
	if len(got) != 2 || got[0] != "neko" || got[1] != "nezumi" {
		t.Fatalf("unexpected matches: %v", got)
	}
	if got := cs.Matches(""); got != nil {
		t.Fatalf("empty input should match nothing, got %v", got)
	}
}

func TestMatchesKanaMode(t *testing.T) {
	cs := NewCandidateSet([]string{"neko", "inu"}, model.ModeKana)
	// Candidates are stored converted; input is converted before matching.
	got := cs.Matches("ne")
	if len(got) != 1 || got[0] != "ねこ" {
		t.Fatalf("unexpected matches: %v", got)
	}
}

func TestMatchesFuzzyFallback(t *testing.T) {
	cs := NewCandidateSet([]string{"neko", "inu"}, model.ModeRomaji)
	got := cs.Matches("neak")
	if len(got) == 0 || got[0] != "neko" {
		t.Fatalf("expected fuzzy fallback to neko, got %v", got)
	}
}

func TestCloseMatches(t *testing.T) {
	candidates := []string{"neko", "nezumi", "inu"}
	got := CloseMatches("nekko", candidates, 1, 0.6)
	if len(got) != 1 || got[0] != "neko" {
		t.Fatalf("unexpected close matches: %v", got)
	}
	if got := CloseMatches("zzzzz", candidates, 1, 0.6); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("neko", "neko"); got != 1 {
		t.Errorf("identical similarity = %v", got)
	}
	if got := Similarity("", ""); got != 1 {
		t.Errorf("empty similarity = %v", got)
	}
	if got := Similarity("neko", "nekko"); got != 0.8 {
		t.Errorf("similarity = %v, want 0.8", got)
	}
}

func TestCandidateSetConcurrent(t *testing.T) {
	cs := NewCandidateSet([]string{"neko"}, model.ModeRomaji)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cs.Set([]string{"neko", "inu"})
			_ = cs.Matches("ne")
			_ = cs.All()
		}()
	}
	wg.Wait()
	if len(cs.All()) != 2 {
		t.Fatalf("unexpected candidates: %v", cs.All())
	}
}
