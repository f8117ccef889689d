package stats

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/kana-tools/kanaq/internal/model"
	"github.com/kana-tools/kanaq/internal/store"
)

const sparkChars = " .:-=+*#%@"

const fallbackTermWidth = 80

// History contains precomputed data for history rendering.
type History struct {
	Sessions  []model.SessionAggregate
	Questions []model.QuestionAggregate
}

// BuildHistory loads and prepares stored session data for rendering.
func BuildHistory(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (History, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return History{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	questions, err := st.ListQuestionAggregates(ctx, ids)
	if err != nil {
		return History{}, err
	}
	return History{Sessions: sessions, Questions: questions}, nil
}

// RenderHistory prints a summary, an accuracy trend sparkline, and the
// per-question aggregate table.
func RenderHistory(w io.Writer, h History, curveWindow int) error {
	if len(h.Sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}

	var totalCorrect, totalIncorrect int
	accs := make([]float64, len(h.Sessions))
	for i, s := range h.Sessions {
		totalCorrect += s.Correct
		totalIncorrect += s.Incorrect
		accs[i] = SessionAccuracy(s.Correct, s.Incorrect) * 100
	}
	overall := SessionAccuracy(totalCorrect, totalIncorrect)

	if _, err := fmt.Fprintf(w, "Sessions: %d\n", len(h.Sessions)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Overall Accuracy: %.1f%%\n\n", overall*100); err != nil {
		return err
	}

	curve := MovingAverage(accs, curveWindow)
	width := terminalWidth() - 2
	if len(curve) > width && width > 0 {
		curve = curve[len(curve)-width:]
	}
	if _, err := fmt.Fprintln(w, "Accuracy Trend:"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  %s\n\n", Sparkline(curve)); err != nil {
		return err
	}

	return renderQuestionTable(w, h.Questions)
}

func renderQuestionTable(w io.Writer, aggs []model.QuestionAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No question stats found.")
		return err
	}
	rows := make([]model.QuestionAggregate, len(aggs))
	copy(rows, aggs)
	sort.Slice(rows, func(i, j int) bool {
		ai := SessionAccuracy(rows[i].Correct, rows[i].Incorrect)
		aj := SessionAccuracy(rows[j].Correct, rows[j].Incorrect)
		if ai == aj {
			return rows[i].Prompt < rows[j].Prompt
		}
		return ai < aj
	})

	if _, err := fmt.Fprintln(w, "Per-Question:"); err != nil {
		return err
	}
	headers := []string{"Question", "Accuracy", "Asked", "Wrong"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		acc := SessionAccuracy(r.Correct, r.Incorrect)
		tableRows = append(tableRows, []string{
			r.Prompt,
			fmt.Sprintf("%.1f%%", acc*100),
			fmt.Sprintf("%d", r.Asked),
			fmt.Sprintf("%d", r.Incorrect),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// SessionAccuracy computes the correct ratio, or 0 when nothing was asked.
func SessionAccuracy(correct, incorrect int) float64 {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}
