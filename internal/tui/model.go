// Package tui provides the Bubble Tea quiz interfaces.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kana-tools/kanaq/internal/bank"
	"github.com/kana-tools/kanaq/internal/complete"
	"github.com/kana-tools/kanaq/internal/model"
	"github.com/kana-tools/kanaq/internal/quiz"
	statsPkg "github.com/kana-tools/kanaq/internal/stats"
	"github.com/kana-tools/kanaq/internal/store"
)

const maxSuggestions = 5

var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	correctStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	wrongStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	almostStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type phase int

const (
	phaseAnswer phase = iota
	phaseFeedback
	phaseDone
)

// Model implements the Bubble Tea quiz UI for sequential sessions.
type Model struct {
	session    *quiz.Session
	candidates *complete.CandidateSet
	store      *store.Store
	bankPath   string

	input       textinput.Model
	current     model.Question
	visible     string
	startedAt   time.Time
	phase       phase
	feedback    string
	suggestions []string

	width  int
	height int

	sessionCorrect int
	sessionWrong   int
	allAcc         float64
	hasAllTime     bool
}

// NewModel constructs a quiz TUI model. The store may be nil when history
// is unavailable; the footer then omits the all-time line.
func NewModel(session *quiz.Session, candidates *complete.CandidateSet, st *store.Store, bankPath string) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Focus()
	m := &Model{
		session:    session,
		candidates: candidates,
		store:      st,
		bankPath:   bankPath,
		input:      input,
	}
	m.loadFooterStats()
	m.advance()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.phase == phaseAnswer {
				m.submit()
				return m, nil
			}
			return m.continueAfterFeedback()
		case tea.KeyTab:
			if m.phase == phaseAnswer && len(m.suggestions) > 0 {
				m.input.SetValue(m.suggestions[0])
				m.input.CursorEnd()
				m.refreshSuggestions()
			}
			return m, nil
		default:
			if m.phase == phaseFeedback || m.phase == phaseDone {
				return m.continueAfterFeedback()
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.refreshSuggestions()
			return m, cmd
		}
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render(m.visible))
	b.WriteString("\n\n")
	switch m.phase {
	case phaseAnswer:
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if len(m.suggestions) > 0 {
			b.WriteString(suggestionStyle.Render(strings.Join(m.suggestions, "  ")))
		}
		b.WriteString("\n")
	default:
		b.WriteString(m.feedback)
		b.WriteString("\n\n")
		b.WriteString(suggestionStyle.Render("press enter to continue"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.renderFooter()))
	return b.String()
}

func (m *Model) submit() {
	elapsed := time.Since(m.startedAt)
	out := m.session.Submit(m.current, m.input.Value(), elapsed)
	if out.Result == model.ResultCorrect {
		m.sessionCorrect++
		m.feedback = correctStyle.Render(fmt.Sprintf("Correct! %s means %q", m.current.Prompt, out.CorrectAnswer))
	} else {
		m.sessionWrong++
		msg := wrongStyle.Render(fmt.Sprintf("Wrong! %s means %q", m.current.Prompt, out.CorrectAnswer))
		if out.AlmostCorrect {
			msg = almostStyle.Render("Almost correct! It seems your spelling was off.") + "\n" + msg
		}
		m.feedback = msg
	}
	m.phase = phaseFeedback
}

func (m *Model) continueAfterFeedback() (tea.Model, tea.Cmd) {
	if m.phase == phaseDone {
		return m, tea.Quit
	}
	m.advance()
	if m.phase == phaseDone {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) advance() {
	q, ok := m.session.Next()
	if !ok {
		m.phase = phaseDone
		return
	}
	m.current = q
	m.visible = bank.VisibleKey(q.Prompt)
	m.input.SetValue("")
	m.suggestions = nil
	m.startedAt = time.Now()
	m.phase = phaseAnswer
}

func (m *Model) refreshSuggestions() {
	matches := m.candidates.Matches(m.input.Value())
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	m.suggestions = matches
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	ctx := context.Background()
	sessions, err := m.store.ListSessions(ctx, model.HistoryConfig{Bank: m.bankPath})
	if err != nil {
		logErrf("failed to load session history: %v\n", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	var correct, incorrect int
	for _, s := range sessions {
		correct += s.Correct
		incorrect += s.Incorrect
	}
	m.allAcc = statsPkg.SessionAccuracy(correct, incorrect)
	m.hasAllTime = true
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Question %d/%d", m.session.Asked(), m.session.Count()),
	}
	answered := m.sessionCorrect + m.sessionWrong
	if answered > 0 {
		acc := statsPkg.SessionAccuracy(m.sessionCorrect, m.sessionWrong)
		segments = append(segments, fmt.Sprintf("Session %.1f%%", acc*100))
	}
	if m.hasAllTime {
		segments = append(segments, fmt.Sprintf("All-time %.1f%%", m.allAcc*100))
	}
	return strings.Join(segments, "  ")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
