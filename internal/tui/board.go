package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kana-tools/kanaq/internal/bank"
	"github.com/kana-tools/kanaq/internal/model"
	"github.com/kana-tools/kanaq/internal/quiz"
)

var (
	openCardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	focusedCardStyle = openCardStyle.
				BorderForeground(lipgloss.Color("#C89A3A"))
)

type boardEntry struct {
	open  *quiz.OpenQuestion
	input textinput.Model
}

// BoardModel implements the Bubble Tea UI for the concurrent board: every
// open question has its own answer field, tab cycles focus, and resolved
// questions are replaced by fresh draws.
type BoardModel struct {
	board   *quiz.Board
	size    int
	entries []boardEntry
	focus   int

	feedback string

	width  int
	height int
}

// NewBoardModel constructs a board TUI model presenting size questions
// at once.
func NewBoardModel(board *quiz.Board, size int) *BoardModel {
	if size < 1 {
		size = 1
	}
	m := &BoardModel{board: board, size: size}
	m.fill()
	m.applyFocus()
	return m
}

// Init implements tea.Model.
func (m *BoardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.board.Close()
			return m, tea.Quit
		case tea.KeyTab:
			m.cycleFocus()
			return m, nil
		case tea.KeyEnter:
			return m, m.resolveFocused()
		default:
			if len(m.entries) == 0 {
				return m, nil
			}
			var cmd tea.Cmd
			m.entries[m.focus].input, cmd = m.entries[m.focus].input.Update(msg)
			return m, cmd
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *BoardModel) View() string {
	if len(m.entries) == 0 {
		return "No open questions.\n"
	}
	cards := make([]string, 0, len(m.entries))
	for i, entry := range m.entries {
		style := openCardStyle
		if i == m.focus {
			style = focusedCardStyle
		}
		content := promptStyle.Render(bank.VisibleKey(entry.open.Question.Prompt)) +
			"\n" + entry.input.View()
		cards = append(cards, style.Render(content))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, cards...)

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	if m.feedback != "" {
		b.WriteString(m.feedback)
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("tab: next question  enter: answer  esc: quit"))
	return b.String()
}

func (m *BoardModel) fill() {
	for len(m.entries) < m.size {
		oq := m.board.Ask()
		if oq == nil {
			return
		}
		input := textinput.New()
		input.Prompt = "> "
		m.entries = append(m.entries, boardEntry{open: oq, input: input})
	}
}

func (m *BoardModel) cycleFocus() {
	if len(m.entries) == 0 {
		return
	}
	m.focus = (m.focus + 1) % len(m.entries)
	m.applyFocus()
}

func (m *BoardModel) applyFocus() {
	for i := range m.entries {
		if i == m.focus {
			m.entries[i].input.Focus()
		} else {
			m.entries[i].input.Blur()
		}
	}
}

func (m *BoardModel) resolveFocused() tea.Cmd {
	if len(m.entries) == 0 {
		return nil
	}
	entry := m.entries[m.focus]
	elapsed := time.Since(entry.open.AskedAt)
	out, ok := m.board.Resolve(entry.open, entry.input.Value(), elapsed)
	if !ok {
		return nil
	}
	prompt := entry.open.Question.Prompt
	if out.Result == model.ResultCorrect {
		m.feedback = correctStyle.Render(fmt.Sprintf("Correct! %s means %q", prompt, out.CorrectAnswer))
	} else {
		m.feedback = wrongStyle.Render(fmt.Sprintf("Wrong! %s means %q", prompt, out.CorrectAnswer))
		if out.AlmostCorrect {
			m.feedback = almostStyle.Render("Almost correct! (spelling issue)") + "\n" + m.feedback
		}
	}

	m.entries = append(m.entries[:m.focus], m.entries[m.focus+1:]...)
	m.fill()
	if len(m.entries) == 0 {
		// Budget drained and nothing left open.
		m.board.Close()
		return tea.Quit
	}
	if m.focus >= len(m.entries) {
		m.focus = 0
	}
	m.applyFocus()
	return nil
}
