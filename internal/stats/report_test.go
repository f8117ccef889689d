package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kana-tools/kanaq/internal/model"
)

func TestRenderAccuracy(t *testing.T) {
	store := Store{
		"猫": {Asked: 4, Correct: 1, Incorrect: 3, Score: 1},
		"犬": {Asked: 2, Correct: 1, Incorrect: 1, Score: 1},
		"鳥": {Asked: 2, Correct: 2, Incorrect: 0, Score: 1},
		"魚": {Score: 1},
	}
	var buf bytes.Buffer
	if err := RenderAccuracy(&buf, store, "Session Statistics"); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Session Statistics") {
		t.Errorf("missing title:\n%s", out)
	}
	// Fully-correct and never-asked questions are omitted.
	if strings.Contains(out, "鳥") || strings.Contains(out, "魚") {
		t.Errorf("unexpected rows:\n%s", out)
	}
	// Worst accuracy first.
	if strings.Index(out, "猫") > strings.Index(out, "犬") {
		t.Errorf("rows not sorted by accuracy:\n%s", out)
	}
}

func TestRenderAccuracyAllCorrect(t *testing.T) {
	store := Store{"猫": {Asked: 2, Correct: 2, Score: 1}}
	var buf bytes.Buffer
	if err := RenderAccuracy(&buf, store, "Session Statistics"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got:\n%s", buf.String())
	}
}

func TestRenderReview(t *testing.T) {
	log := []model.ReviewEntry{
		{FullPrompt: "猫", CorrectAnswer: "ねこ", TimeTaken: 1.5, Result: model.ResultCorrect},
		{FullPrompt: "犬", CorrectAnswer: "いぬ", TimeTaken: 4.2, Result: model.ResultWrong},
		{FullPrompt: "鳥", CorrectAnswer: "とり", TimeTaken: 0.8, Result: model.ResultCorrect},
	}
	var buf bytes.Buffer
	if err := RenderReview(&buf, log); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Wrong Answers:") || !strings.Contains(out, "いぬ") {
		t.Errorf("missing wrong answers:\n%s", out)
	}
	if !strings.Contains(out, "Slowest:") || !strings.Contains(out, "Fastest:") {
		t.Errorf("missing timing sections:\n%s", out)
	}
}

func TestRenderReviewAllCorrect(t *testing.T) {
	log := []model.ReviewEntry{
		{FullPrompt: "猫", CorrectAnswer: "ねこ", TimeTaken: 1.5, Result: model.ResultCorrect},
	}
	var buf bytes.Buffer
	if err := RenderReview(&buf, log); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "All correct!") {
		t.Errorf("missing all-correct notice:\n%s", buf.String())
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	out := MovingAverage(values, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	for i := range want {
		if !almostEqual(out[i], want[i]) {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Errorf("empty sparkline = %q", got)
	}
	flat := Sparkline([]float64{5, 5, 5})
	if len(flat) != 3 {
		t.Errorf("flat sparkline = %q", flat)
	}
	rising := Sparkline([]float64{0, 50, 100})
	if rising[0] != ' ' || rising[2] != '@' {
		t.Errorf("rising sparkline = %q", rising)
	}
}
