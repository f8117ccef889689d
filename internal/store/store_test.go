package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kana-tools/kanaq/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "kanaq.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insertTestSession(t *testing.T, st *Store, i int, bankPath string) int64 {
	t.Helper()
	start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
	end := start.Add(30 * time.Second)
	rec := model.SessionRecord{
		StartedAt:  start,
		EndedAt:    end,
		BankPath:   bankPath,
		Mode:       model.ModeKana,
		Questions:  5,
		Correct:    4,
		Incorrect:  1,
		DurationMs: end.Sub(start).Milliseconds(),
	}
	results := []model.QuestionResult{
		{Prompt: "猫", Asked: 3, Correct: 3, Incorrect: 0},
		{Prompt: "犬", Asked: 2, Correct: 1, Incorrect: 1},
	}
	id, err := st.InsertSession(context.Background(), rec, results)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	return id
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		ids = append(ids, insertTestSession(t, st, i, "animals.txt"))
	}
	insertTestSession(t, st, 3, "verbs.txt")

	sessions, err := st.ListSessions(ctx, model.HistoryConfig{Bank: "animals.txt"})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID != ids[0] {
		t.Errorf("sessions not ordered by ended_at: %+v", sessions)
	}
	if sessions[0].Correct != 4 || sessions[0].Incorrect != 1 {
		t.Errorf("unexpected counts: %+v", sessions[0])
	}
}

func TestListSessionsSince(t *testing.T) {
	st := openTestStore(t)
	for i := 0; i < 3; i++ {
		insertTestSession(t, st, i, "animals.txt")
	}
	since := time.Unix(0, 0).Add(90 * time.Second)
	sessions, err := st.ListSessions(context.Background(), model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
}

func TestListQuestionAggregates(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 2; i++ {
		ids = append(ids, insertTestSession(t, st, i, "animals.txt"))
	}

	aggs, err := st.ListQuestionAggregates(ctx, ids)
	if err != nil {
		t.Fatalf("aggregates: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(aggs))
	}
	byPrompt := map[string]model.QuestionAggregate{}
	for _, agg := range aggs {
		byPrompt[agg.Prompt] = agg
	}
	cat := byPrompt["猫"]
	if cat.Asked != 6 || cat.Correct != 6 || cat.Incorrect != 0 {
		t.Errorf("unexpected aggregate: %+v", cat)
	}

	if aggs, err := st.ListQuestionAggregates(ctx, nil); err != nil || aggs != nil {
		t.Errorf("empty id list should yield nothing, got %v, %v", aggs, err)
	}
}
