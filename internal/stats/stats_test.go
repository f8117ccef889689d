package stats

import (
	"math"
	"testing"

	"github.com/kana-tools/kanaq/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewSession(t *testing.T) {
	questions := []model.Question{
		{Prompt: "猫 (animal)", Answer: "neko"},
		{Prompt: "猫 (feline)", Answer: "neko"},
		{Prompt: "犬", Answer: "inu"},
	}
	store := NewSession(questions)
	if len(store) != 2 {
		t.Fatalf("expected 2 records, got %d", len(store))
	}
	for key, stat := range store {
		if stat.Asked != 0 || stat.Correct != 0 || stat.Incorrect != 0 {
			t.Errorf("record %q not zeroed: %+v", key, stat)
		}
		if !almostEqual(stat.Score, 1) {
			t.Errorf("record %q score = %v, want 1", key, stat.Score)
		}
	}
}

func TestRecordKeepsInvariant(t *testing.T) {
	store := Store{"猫": &model.QuestionStat{Score: 1}}
	store.RecordCorrect("猫", KanaPolicy)
	store.RecordCorrect("猫", KanaPolicy)
	store.RecordWrong("猫", KanaPolicy)
	stat := store["猫"]
	if stat.Asked != stat.Correct+stat.Incorrect {
		t.Fatalf("invariant broken: asked=%d correct=%d incorrect=%d", stat.Asked, stat.Correct, stat.Incorrect)
	}
	if !almostEqual(stat.Score, 2) { // 1 +1 +1 -1
		t.Errorf("score = %v, want 2", stat.Score)
	}
}

func TestScorePolicies(t *testing.T) {
	store := Store{"a": &model.QuestionStat{Score: 1}}
	store.RecordCorrect("a", RomajiPolicy)
	if !almostEqual(store["a"].Score, 1.1) {
		t.Errorf("romaji success score = %v, want 1.1", store["a"].Score)
	}
	store.RecordWrong("a", RomajiPolicy)
	if !almostEqual(store["a"].Score, 0.55) {
		t.Errorf("romaji fail score = %v, want 0.55", store["a"].Score)
	}

	board := Store{"b": &model.QuestionStat{Score: 1}}
	board.RecordCorrect("b", BoardPolicy)
	if !almostEqual(board["b"].Score, 1.5) {
		t.Errorf("board success score = %v, want 1.5", board["b"].Score)
	}
	board.RecordWrong("b", BoardPolicy)
	if !almostEqual(board["b"].Score, 1.125) {
		t.Errorf("board fail score = %v, want 1.125", board["b"].Score)
	}
}

func TestMerge(t *testing.T) {
	persistent := Store{}
	session := Store{
		"猫": {Asked: 3, Correct: 2, Incorrect: 1, Score: 1.21},
	}
	merged := Merge(persistent, session)
	stat, ok := merged["猫"]
	if !ok {
		t.Fatal("merged record missing")
	}
	if stat.Asked != 3 || stat.Correct != 2 || stat.Incorrect != 1 {
		t.Errorf("unexpected counts: %+v", stat)
	}
	if !almostEqual(stat.Score, 12.1) {
		t.Errorf("score = %v, want 12.1", stat.Score)
	}
}

func TestMergeExisting(t *testing.T) {
	persistent := Store{
		"犬": {Asked: 10, Correct: 7, Incorrect: 3, Score: 4},
	}
	session := Store{
		"犬": {Asked: 2, Correct: 1, Incorrect: 1, Score: 0.5},
		"鳥": {Asked: 0, Correct: 0, Incorrect: 0, Score: 1},
	}
	Merge(persistent, session)
	dog := persistent["犬"]
	if dog.Asked != 12 || dog.Correct != 8 || dog.Incorrect != 4 {
		t.Errorf("unexpected counts: %+v", dog)
	}
	if !almostEqual(dog.Score, 2) {
		t.Errorf("score = %v, want 2", dog.Score)
	}
	// Untouched session records still seed the persistent store at 10.
	bird := persistent["鳥"]
	if bird == nil || !almostEqual(bird.Score, 10) {
		t.Errorf("fresh record score = %+v, want 10", bird)
	}
}
