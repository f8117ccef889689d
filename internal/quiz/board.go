package quiz

import (
	"sync"
	"time"

	"github.com/kana-tools/kanaq/internal/model"
)

// OpenQuestion is a question presented but not yet answered. Its outcome
// channel resolves exactly once, when the answer is submitted.
type OpenQuestion struct {
	ID       int64
	Question model.Question
	AskedAt  time.Time

	once    sync.Once
	outcome chan Outcome
}

// Outcome returns a channel that yields the resolution of this question.
// It never yields for abandoned questions.
func (oq *OpenQuestion) Outcome() <-chan Outcome {
	return oq.outcome
}

// Board presents several questions concurrently over one session. Each
// open question resolves independently; only the resolving caller updates
// that question's stats, and the open set supports concurrent add/remove.
type Board struct {
	mu      sync.Mutex
	session *Session
	open    map[int64]*OpenQuestion
	order   []int64
	nextID  int64
	closed  bool
}

// NewBoard wraps a session for concurrent question presentation. The
// session should be constructed with Board config so the board score
// policy applies.
func NewBoard(session *Session) *Board {
	return &Board{
		session: session,
		open:    make(map[int64]*OpenQuestion),
	}
}

// Ask draws a new question and adds it to the open set. It returns nil
// when the board is closed or the session's question budget is spent.
func (b *Board) Ask() *OpenQuestion {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	q, ok := b.session.Next()
	if !ok {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.nextID++
	oq := &OpenQuestion{
		ID:       b.nextID,
		Question: q,
		AskedAt:  time.Now(),
		outcome:  make(chan Outcome, 1),
	}
	b.open[oq.ID] = oq
	b.order = append(b.order, oq.ID)
	return oq
}

// Resolve submits an answer for an open question, removes it from the
// open set, and delivers the outcome on the question's channel. Resolving
// a question twice is a no-op returning the zero Outcome with ok=false.
func (b *Board) Resolve(oq *OpenQuestion, rawAnswer string, elapsed time.Duration) (Outcome, bool) {
	b.mu.Lock()
	_, present := b.open[oq.ID]
	if present {
		b.remove(oq.ID)
	}
	b.mu.Unlock()
	if !present {
		return Outcome{}, false
	}

	var out Outcome
	oq.once.Do(func() {
		out = b.session.Submit(oq.Question, rawAnswer, elapsed)
		oq.outcome <- out
	})
	return out, true
}

// Abandon drops an open question without recording anything.
func (b *Board) Abandon(oq *OpenQuestion) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.remove(oq.ID)
}

func (b *Board) remove(id int64) {
	delete(b.open, id)
	for i, other := range b.order {
		if other == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Open returns the open questions in presentation order.
func (b *Board) Open() []*OpenQuestion {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*OpenQuestion, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.open[id])
	}
	return out
}

// Size returns the number of open questions.
func (b *Board) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.open)
}

// Close abandons every open question and finishes the session. Already
// recorded stats are untouched; abandoned questions leave no trace.
func (b *Board) Close() {
	b.mu.Lock()
	b.closed = true
	b.open = make(map[int64]*OpenQuestion)
	b.order = nil
	b.mu.Unlock()
	b.session.Finish()
}
