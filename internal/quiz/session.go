// Package quiz runs adaptive quiz sessions over a question bank.
package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/kana-tools/kanaq/internal/bank"
	"github.com/kana-tools/kanaq/internal/complete"
	"github.com/kana-tools/kanaq/internal/kana"
	"github.com/kana-tools/kanaq/internal/model"
	"github.com/kana-tools/kanaq/internal/stats"
)

// State tracks the session lifecycle.
type State int

const (
	// Idle means the session is constructed but no question was drawn.
	Idle State = iota
	// Running means at least one question was drawn.
	Running
	// Finished means the configured question count is exhausted or the
	// session was closed.
	Finished
)

// Outcome reports the result of a submitted answer.
type Outcome struct {
	Result        model.Result
	UserAnswer    string
	CorrectAnswer string
	AlmostCorrect bool
}

// Session orchestrates one quiz run. Construct with New, draw questions
// with Next, resolve them with Submit, and collect results with Finish.
// Methods are safe for concurrent use so the board variant can resolve
// questions independently.
type Session struct {
	mu sync.Mutex

	questions  []model.Question
	mode       model.Mode
	policy     stats.ScorePolicy
	count      int
	rnd        *rand.Rand
	candidates *complete.CandidateSet

	weights []float64
	total   float64

	session stats.Store
	review  []model.ReviewEntry
	asked   int
	state   State
}

// New builds a session over the bank. Weights are evaluated once, here,
// from the persistent store; this may annotate persistent records (Study/
// Known) as a side effect. count <= 0 means unlimited (board use). The
// random source is injected so draws are reproducible in tests.
func New(questions []model.Question, persistent stats.Store, cfg model.Config, rnd *rand.Rand, candidates *complete.CandidateSet) (*Session, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions loaded")
	}
	multiplier := cfg.Multiplier
	if multiplier <= 0 {
		multiplier = stats.DefaultMultiplier
	}
	weights := stats.SessionWeights(questions, persistent, multiplier)
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("every question is excluded from the draw")
	}
	policy := stats.PolicyForMode(cfg.Mode)
	if cfg.Board {
		policy = stats.BoardPolicy
	}
	return &Session{
		questions:  questions,
		mode:       cfg.Mode,
		policy:     policy,
		count:      cfg.Questions,
		rnd:        rnd,
		candidates: candidates,
		weights:    weights,
		total:      total,
		session:    stats.NewSession(questions),
	}, nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Asked returns how many questions were drawn so far.
func (s *Session) Asked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asked
}

// Count returns the configured question count (0 = unlimited).
func (s *Session) Count() int {
	return s.count
}

// Next draws the next weighted random question. It returns false once the
// configured count is exhausted. Draws are independent; a question may
// repeat.
func (s *Session) Next() (model.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Finished {
		return model.Question{}, false
	}
	if s.count > 0 && s.asked >= s.count {
		s.state = Finished
		return model.Question{}, false
	}
	s.state = Running
	s.asked++
	return s.draw(), true
}

// draw picks a question by cumulative weight scan. Caller holds the lock.
func (s *Session) draw() model.Question {
	r := s.rnd.Float64() * s.total
	acc := 0.0
	idx := -1
	for i, w := range s.weights {
		if w <= 0 {
			continue
		}
		acc += w
		idx = i
		if r <= acc {
			break
		}
	}
	// idx ends on the last positive-weight question when r lands past
	// acc by floating-point error; total > 0 guarantees idx >= 0.
	return s.questions[idx]
}

// Submit resolves a drawn question with the user's raw answer and the
// elapsed response time, updating session stats and the review log.
func (s *Session) Submit(q model.Question, rawAnswer string, elapsed time.Duration) Outcome {
	userAnswer, correctAnswer := s.normalize(rawAnswer, q.Answer)
	visible := bank.VisibleKey(q.Prompt)

	outcome := Outcome{UserAnswer: userAnswer, CorrectAnswer: correctAnswer}
	if s.isCorrect(userAnswer, correctAnswer) {
		outcome.Result = model.ResultCorrect
	} else {
		outcome.Result = model.ResultWrong
		outcome.AlmostCorrect = s.almostCorrect(userAnswer, correctAnswer)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if outcome.Result == model.ResultCorrect {
		s.session.RecordCorrect(visible, s.policy)
	} else {
		s.session.RecordWrong(visible, s.policy)
	}
	s.review = append(s.review, model.ReviewEntry{
		VisiblePrompt: visible,
		FullPrompt:    q.Prompt,
		UserAnswer:    userAnswer,
		CorrectAnswer: correctAnswer,
		TimeTaken:     elapsed.Seconds(),
		Result:        outcome.Result,
	})
	return outcome
}

func (s *Session) normalize(rawAnswer, correct string) (string, string) {
	raw := strings.TrimSpace(rawAnswer)
	if s.mode == model.ModeKana {
		return kana.Convert(raw), kana.Convert(correct)
	}
	return strings.ToLower(raw), correct
}

func (s *Session) isCorrect(user, correct string) bool {
	if user == "" {
		return false
	}
	if s.mode == model.ModeKana {
		// Containment, not equality: multi-reading vocabulary accepts
		// any reading present in the full answer.
		return strings.Contains(correct, user)
	}
	return user == correct
}

// almostCorrect checks whether the closest candidate to the user's answer
// is the correct one. Purely informational; never affects scoring.
func (s *Session) almostCorrect(user, correct string) bool {
	if s.candidates == nil {
		return false
	}
	match := complete.CloseMatches(user, s.candidates.All(), 1, complete.SuggestCutoff)
	return len(match) > 0 && match[0] == correct
}

// Presenter shows a visible prompt and returns the user's raw answer
// along with the measured response time. The core never performs
// terminal or window I/O itself.
type Presenter interface {
	Present(visiblePrompt string) (answer string, elapsed time.Duration, err error)
}

// Run drives a full session through the presenter, one question at a
// time. It stops early when the context is cancelled between question
// resolutions; stats recorded so far are kept.
func (s *Session) Run(ctx context.Context, p Presenter) ([]Outcome, error) {
	var outcomes []Outcome
	for {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		q, ok := s.Next()
		if !ok {
			return outcomes, nil
		}
		answer, elapsed, err := p.Present(bank.VisibleKey(q.Prompt))
		if err != nil {
			return outcomes, fmt.Errorf("failed to present question: %w", err)
		}
		outcomes = append(outcomes, s.Submit(q, answer, elapsed))
	}
}

// Finish closes the session and returns the session store and the ordered
// review log. It is safe to call between question resolutions; open board
// questions are simply never recorded.
func (s *Session) Finish() (stats.Store, []model.ReviewEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Finished
	return s.session, s.review
}

// Totals sums session-wide correct and incorrect counts.
func (s *Session) Totals() (correct, incorrect int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stat := range s.session {
		correct += stat.Correct
		incorrect += stat.Incorrect
	}
	return correct, incorrect
}

// QuestionResults converts the session store into per-question rows for
// the history store, skipping untouched questions.
func (s *Session) QuestionResults() []model.QuestionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.QuestionResult
	for prompt, stat := range s.session {
		if stat.Asked == 0 {
			continue
		}
		out = append(out, model.QuestionResult{
			Prompt:    prompt,
			Asked:     stat.Asked,
			Correct:   stat.Correct,
			Incorrect: stat.Incorrect,
		})
	}
	return out
}

// Review returns a copy of the review log so far.
func (s *Session) Review() []model.ReviewEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ReviewEntry, len(s.review))
	copy(out, s.review)
	return out
}
