package tui

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kana-tools/kanaq/internal/bank"
	"github.com/kana-tools/kanaq/internal/complete"
	"github.com/kana-tools/kanaq/internal/model"
	"github.com/kana-tools/kanaq/internal/quiz"
	"github.com/kana-tools/kanaq/internal/stats"
)

func newTestModel(t *testing.T, questions []model.Question, count int) *Model {
	t.Helper()
	cfg := model.Config{Mode: model.ModeRomaji, Questions: count}
	candidates := complete.NewCandidateSet(bank.Answers(questions), cfg.Mode)
	session, err := quiz.New(questions, stats.Store{}, cfg, rand.New(rand.NewSource(1)), candidates)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return NewModel(session, candidates, nil, "bank.txt")
}

func typeRunes(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestModelAnswerFlow(t *testing.T) {
	questions := []model.Question{{Prompt: "猫 (animal)", Answer: "neko"}}
	m := newTestModel(t, questions, 2)

	if m.visible != "猫" {
		t.Fatalf("visible prompt = %q, want stripped key", m.visible)
	}

	typeRunes(m, "neko")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phaseFeedback {
		t.Fatalf("phase = %v, want feedback", m.phase)
	}
	if !strings.Contains(m.feedback, "Correct!") {
		t.Errorf("feedback = %q", m.feedback)
	}

	// Enter moves on to the next question.
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phaseAnswer {
		t.Fatalf("phase = %v, want answer", m.phase)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
}

func TestModelSuggestions(t *testing.T) {
	questions := []model.Question{
		{Prompt: "猫", Answer: "neko"},
		{Prompt: "鼠", Answer: "nezumi"},
	}
	m := newTestModel(t, questions, 1)

	typeRunes(m, "ne")
	if len(m.suggestions) != 2 {
		t.Fatalf("suggestions = %v", m.suggestions)
	}

	// Tab completes to the first suggestion.
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.input.Value() != "neko" {
		t.Errorf("input after tab = %q", m.input.Value())
	}
}

func TestModelFinishesAfterCount(t *testing.T) {
	questions := []model.Question{{Prompt: "猫", Answer: "neko"}}
	m := newTestModel(t, questions, 1)

	typeRunes(m, "neko")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := m.continueAfterFeedback()
	if cmd == nil {
		t.Fatal("expected quit command after final question")
	}
	if m.phase != phaseDone {
		t.Fatalf("phase = %v, want done", m.phase)
	}
}
