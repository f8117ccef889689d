package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/kana-tools/kanaq/internal/model"
)

// RenderAccuracy prints the questions asked at least once with accuracy
// below 100%, sorted worst-first. Fully-correct questions are omitted.
func RenderAccuracy(w io.Writer, store Store, title string) error {
	type row struct {
		prompt   string
		asked    int
		accuracy float64
	}
	rows := make([]row, 0, len(store))
	for prompt, stat := range store {
		if stat.Asked == 0 {
			continue
		}
		accuracy := float64(stat.Correct) / float64(stat.Asked)
		if accuracy >= 1.0 {
			continue
		}
		rows = append(rows, row{prompt: prompt, asked: stat.Asked, accuracy: accuracy})
	}
	if len(rows) == 0 {
		return nil
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].accuracy == rows[j].accuracy {
			return rows[i].prompt < rows[j].prompt
		}
		return rows[i].accuracy < rows[j].accuracy
	})

	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	headers := []string{"Question", "Accuracy", "Asked"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.prompt,
			fmt.Sprintf("%5.1f%%", r.accuracy*100),
			fmt.Sprintf("%d", r.asked),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderReview prints the detailed session review: wrong answers first,
// then the five slowest and five fastest responses.
func RenderReview(w io.Writer, log []model.ReviewEntry) error {
	if len(log) == 0 {
		return nil
	}
	var wrong []model.ReviewEntry
	for _, e := range log {
		if e.Result == model.ResultWrong {
			wrong = append(wrong, e)
		}
	}
	if len(wrong) > 0 {
		if _, err := fmt.Fprintln(w, "Wrong Answers:"); err != nil {
			return err
		}
		for _, e := range wrong {
			line := fmt.Sprintf("  %s | %s | %.2fs",
				padCell(e.FullPrompt, 40, false),
				padCell(e.CorrectAnswer, 15, false),
				e.TimeTaken)
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	} else {
		if _, err := fmt.Fprintln(w, "All correct!"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	if err := renderTimed(w, "Slowest:", sortedByTime(log, true)); err != nil {
		return err
	}
	return renderTimed(w, "Fastest:", sortedByTime(log, false))
}

func renderTimed(w io.Writer, title string, entries []model.ReviewEntry) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	limit := 5
	if len(entries) < limit {
		limit = len(entries)
	}
	for _, e := range entries[:limit] {
		line := fmt.Sprintf("  %s %.2fs", padCell(e.FullPrompt, 40, false), e.TimeTaken)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func sortedByTime(log []model.ReviewEntry, slowestFirst bool) []model.ReviewEntry {
	out := make([]model.ReviewEntry, len(log))
	copy(out, log)
	sort.SliceStable(out, func(i, j int) bool {
		if slowestFirst {
			return out[i].TimeTaken > out[j].TimeTaken
		}
		return out[i].TimeTaken < out[j].TimeTaken
	})
	return out
}
