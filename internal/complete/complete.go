// Package complete seeds external autocompletion with candidate answers
// and provides fuzzy close-matching.
package complete

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/kana-tools/kanaq/internal/kana"
	"github.com/kana-tools/kanaq/internal/model"
)

// Fuzzy-match cutoffs mirror the suggestion and completion behavior of the
// readline-era UI: a strict cutoff for "almost correct" hints, a loose one
// for completion fallback.
const (
	SuggestCutoff  = 0.6
	FallbackCutoff = 0.4
)

// CandidateSet holds the current answer candidates. It is shared by
// reference with UI layers and safe for concurrent use.
type CandidateSet struct {
	mu         sync.RWMutex
	mode       model.Mode
	candidates []string
}

// NewCandidateSet builds a candidate set from bank answers. In kana mode
// the candidates are stored pre-converted.
func NewCandidateSet(answers []string, mode model.Mode) *CandidateSet {
	cs := &CandidateSet{mode: mode}
	cs.Set(answers)
	return cs
}

// Set replaces the candidates, converting them in kana mode.
func (cs *CandidateSet) Set(answers []string) {
	converted := make([]string, len(answers))
	for i, a := range answers {
		if cs.mode == model.ModeKana {
			converted[i] = kana.Convert(a)
		} else {
			converted[i] = a
		}
	}
	cs.mu.Lock()
	cs.candidates = converted
	cs.mu.Unlock()
}

// All returns a copy of the current candidates.
func (cs *CandidateSet) All() []string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make([]string, len(cs.candidates))
	copy(out, cs.candidates)
	return out
}

// Matches returns candidates containing the input anywhere, normalizing
// the input first (kana conversion in kana mode, lowercase otherwise).
// When nothing contains the input, close matches at the fallback cutoff
// are returned instead.
func (cs *CandidateSet) Matches(input string) []string {
	if input == "" {
		return nil
	}
	search := cs.Normalize(input)
	candidates := cs.All()

	var out []string
	for _, c := range candidates {
		if strings.Contains(c, search) {
			out = append(out, c)
		}
	}
	if len(out) > 0 {
		return out
	}
	return CloseMatches(search, candidates, len(candidates), FallbackCutoff)
}

// Normalize maps raw input to the candidate alphabet.
func (cs *CandidateSet) Normalize(input string) string {
	if cs.mode == model.ModeKana {
		return kana.Convert(input)
	}
	return strings.ToLower(input)
}

// CloseMatches returns up to n candidates whose similarity to s reaches
// the cutoff, best first. Similarity is 1 - distance/maxLen over runes.
func CloseMatches(s string, candidates []string, n int, cutoff float64) []string {
	if n <= 0 || s == "" {
		return nil
	}
	type scored struct {
		value string
		sim   float64
	}
	matches := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		sim := Similarity(s, c)
		if sim >= cutoff {
			matches = append(matches, scored{value: c, sim: sim})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].sim > matches[j].sim
	})
	if n > len(matches) {
		n = len(matches)
	}
	out := make([]string, 0, n)
	for _, m := range matches[:n] {
		out = append(out, m.value)
	}
	return out
}

// Similarity scores two strings in [0, 1] from their edit distance.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}
