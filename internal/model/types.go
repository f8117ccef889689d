// Package model defines shared data structures.
package model

import "time"

// Mode selects how answers are normalized and compared.
type Mode string

const (
	// ModeRomaji compares answers verbatim (lowercased).
	ModeRomaji Mode = "romaji"
	// ModeKana converts both answers to kana and accepts substring matches.
	ModeKana Mode = "kana"
)

// Extra annotates a question stat record when a weight override fires.
type Extra string

const (
	// ExtraNone means no annotation.
	ExtraNone Extra = ""
	// ExtraStudy marks a question due for isolated study (score < 1).
	ExtraStudy Extra = "Study"
	// ExtraKnown marks a mastered question (score > 200).
	ExtraKnown Extra = "Known"
)

// Question is an immutable prompt/answer pair from a bank file.
type Question struct {
	Prompt string
	Answer string
}

// QuestionStat tracks historical performance for a visible prompt.
type QuestionStat struct {
	Asked     int     `json:"asked"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Score     float64 `json:"score"`
	Extra     Extra   `json:"extra,omitempty"`
}

// Result is the outcome of a single answer.
type Result string

const (
	// ResultCorrect marks an accepted answer.
	ResultCorrect Result = "correct"
	// ResultWrong marks a rejected answer.
	ResultWrong Result = "wrong"
)

// ReviewEntry records one asked question for end-of-session reporting.
type ReviewEntry struct {
	VisiblePrompt string
	FullPrompt    string
	UserAnswer    string
	CorrectAnswer string
	TimeTaken     float64
	Result        Result
}

// Config defines quiz settings.
type Config struct {
	BankPath   string
	Mode       Mode
	Questions  int
	Multiplier float64
	Board      bool
	BoardSize  int
}

// HistoryConfig defines filters for history output.
type HistoryConfig struct {
	Bank        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionRecord captures a completed quiz session for the history store.
type SessionRecord struct {
	StartedAt  time.Time
	EndedAt    time.Time
	BankPath   string
	Mode       Mode
	Questions  int
	Correct    int
	Incorrect  int
	DurationMs int64
}

// QuestionResult stores per-question counters for one session.
type QuestionResult struct {
	Prompt    string
	Asked     int
	Correct   int
	Incorrect int
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Correct    int
	Incorrect  int
	DurationMs int64
}

// QuestionAggregate aggregates question results across sessions.
type QuestionAggregate struct {
	Prompt    string
	Asked     int
	Correct   int
	Incorrect int
}
