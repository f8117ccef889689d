// Package stats tracks per-question statistics and renders reports.
package stats

import (
	"github.com/kana-tools/kanaq/internal/bank"
	"github.com/kana-tools/kanaq/internal/model"
)

// Store maps visible prompt keys to stat records.
type Store map[string]*model.QuestionStat

// NewSession builds a fresh session store with one zeroed record per
// distinct visible prompt, each starting at score 1.
func NewSession(questions []model.Question) Store {
	store := make(Store)
	for _, key := range bank.VisibleKeys(questions) {
		store[key] = &model.QuestionStat{Score: 1}
	}
	return store
}

// RecordCorrect updates the record for key after an accepted answer.
// The score delta follows the active policy: multiplicative policies pass
// factor > 0, additive policies pass step.
func (s Store) RecordCorrect(key string, policy ScorePolicy) {
	stat := s.ensure(key, 1)
	stat.Asked++
	stat.Correct++
	policy.applyCorrect(stat)
}

// RecordWrong updates the record for key after a rejected answer.
func (s Store) RecordWrong(key string, policy ScorePolicy) {
	stat := s.ensure(key, 1)
	stat.Asked++
	stat.Incorrect++
	policy.applyWrong(stat)
}

func (s Store) ensure(key string, initialScore float64) *model.QuestionStat {
	stat, ok := s[key]
	if !ok {
		stat = &model.QuestionStat{Score: initialScore}
		s[key] = stat
	}
	return stat
}

// Merge folds session statistics into persistent statistics. Counts add;
// scores multiply. Absent persistent records are initialized at score 10
// before merging. The persistent store is returned for convenience.
func Merge(persistent, session Store) Store {
	for key, data := range session {
		stat, ok := persistent[key]
		if !ok {
			stat = &model.QuestionStat{Score: 10}
			persistent[key] = stat
		}
		stat.Asked += data.Asked
		stat.Correct += data.Correct
		stat.Incorrect += data.Incorrect
		stat.Score *= data.Score
	}
	return persistent
}

// ScorePolicy describes how a question's score moves on each answer.
// Multiplicative policies compound (romaji and board modes); additive
// policies step linearly (kana mode).
type ScorePolicy struct {
	SuccessFactor float64
	FailFactor    float64
	Step          float64
}

// RomajiPolicy is the literal-comparison scoring policy.
var RomajiPolicy = ScorePolicy{SuccessFactor: 1.1, FailFactor: 0.5}

// KanaPolicy is the phonetic-comparison scoring policy.
var KanaPolicy = ScorePolicy{Step: 1}

// BoardPolicy is the concurrent-board scoring policy.
var BoardPolicy = ScorePolicy{SuccessFactor: 1.5, FailFactor: 0.75}

// PolicyForMode returns the sequential-session policy for a mode.
func PolicyForMode(mode model.Mode) ScorePolicy {
	if mode == model.ModeKana {
		return KanaPolicy
	}
	return RomajiPolicy
}

func (p ScorePolicy) applyCorrect(stat *model.QuestionStat) {
	if p.Step != 0 {
		stat.Score += p.Step
		return
	}
	stat.Score *= p.SuccessFactor
}

func (p ScorePolicy) applyWrong(stat *model.QuestionStat) {
	if p.Step != 0 {
		stat.Score -= p.Step
		return
	}
	stat.Score *= p.FailFactor
}
