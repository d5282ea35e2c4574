package phrase

import (
	"fmt"
	"math"

	"github.com/textkit/prepline/pkg/prepline/internalerr"
)

// Scoring names for the supported formulas.
const (
	ScoringDefault = "default"
	ScoringNPMI    = "npmi"
)

// ScoringFunc rates a candidate bigram from its counts. Inputs are the
// unigram counts of both components, the joint count, the current vocab
// size, the corpus word count and the configured min_count. Higher is a
// stronger collocation.
type ScoringFunc func(nA, nB, nAB, vocabLen, corpusWords int64, minCount int) float64

// defaultScore is the count-ratio formula:
//
//	(N_ab − min_count) · |V| / (N_a · N_b)
//
// min_count acts as a discount, so rare pairs score at or below zero.
func defaultScore(nA, nB, nAB, vocabLen, _ int64, minCount int) float64 {
	denom := float64(nA) * float64(nB)
	if denom == 0 {
		return 0
	}
	return float64(nAB-int64(minCount)) * float64(vocabLen) / denom
}

// npmiScore is normalized pointwise mutual information over corpus word
// probabilities, in the range [-1, 1]:
//
//	ln(P(a,b) / (P(a)·P(b))) / −ln(P(a,b))
func npmiScore(nA, nB, nAB, _, corpusWords int64, _ int) float64 {
	if corpusWords == 0 || nAB == 0 || nA == 0 || nB == 0 {
		return math.Inf(-1)
	}
	pA := float64(nA) / float64(corpusWords)
	pB := float64(nB) / float64(corpusWords)
	pAB := float64(nAB) / float64(corpusWords)

	logPAB := math.Log(pAB)
	if logPAB == 0 {
		return math.Inf(-1)
	}
	return math.Log(pAB/(pA*pB)) / -logPAB
}

// scoringByName resolves a configured scoring name to its formula.
func scoringByName(name string) (ScoringFunc, error) {
	switch name {
	case ScoringDefault:
		return defaultScore, nil
	case ScoringNPMI:
		return npmiScore, nil
	default:
		return nil, fmt.Errorf("unknown scoring %q: %w", name, internalerr.ErrInvalidConfig)
	}
}
