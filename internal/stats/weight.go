package stats

import (
	"github.com/kana-tools/kanaq/internal/bank"
	"github.com/kana-tools/kanaq/internal/model"
)

// DefaultMultiplier scales how strongly past mistakes boost a weight.
const DefaultMultiplier = 4

const (
	studyThreshold = 1
	knownThreshold = 200
)

// Weight computes the sampling weight for a visible prompt key from the
// persistent store. Unseen or never-asked questions get a flat boost;
// otherwise lower accuracy and fewer askings raise the weight. Questions
// whose score crossed a threshold are excluded from the draw, and the
// record's Extra field is annotated in place as a side effect.
func Weight(key string, persistent Store, multiplier float64) float64 {
	stat, ok := persistent[key]
	if !ok || stat.Asked == 0 {
		return 1 + multiplier*2
	}

	accuracy := float64(stat.Correct) / float64(stat.Asked)
	recency := 1 + 1/float64(stat.Asked+1)
	weight := 1 + (1-accuracy)*multiplier*recency

	if stat.Score < studyThreshold {
		stat.Extra = model.ExtraStudy
		return 0
	}
	if stat.Score > knownThreshold {
		stat.Extra = model.ExtraKnown
		return 0
	}
	if weight < 0 {
		return 0
	}
	return weight
}

// SessionWeights evaluates Weight for every question in the bank, in
// order. Weights are computed once per session, before the first draw.
// Like Weight, this may annotate persistent records.
func SessionWeights(questions []model.Question, persistent Store, multiplier float64) []float64 {
	weights := make([]float64, len(questions))
	for i, q := range questions {
		weights[i] = Weight(bank.VisibleKey(q.Prompt), persistent, multiplier)
	}
	return weights
}
