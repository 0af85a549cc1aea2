package matching

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrNonFinite = errors.New("non-finite similarity")

const (
	StrategyTFIDF   = "tfidf"
	StrategyOverlap = "overlap"
	StrategyEmpty   = "empty"
)

// Strategy turns a requester skill set and the skill sets of a catalog into
// one percentage score per catalog entry, rounded to one decimal and in input order.
type Strategy interface {
	Name() string
	Score(requester []string, items [][]string) ([]float64, error)
}

// TFIDF scores items by the cosine similarity of their TF-IDF vectors to the
// requester's vector, computed over one batch with the requester last.
type TFIDF struct{}

func (TFIDF) Name() string { return StrategyTFIDF }

func (TFIDF) Score(requester []string, items [][]string) ([]float64, error) {
	docs := make([]string, 0, len(items)+1)
	for _, skills := range items {
		docs = append(docs, strings.Join(skills, " "))
	}
	docs = append(docs, strings.Join(requester, " "))

	m, err := Vectorize(docs)
	if err != nil {
		return nil, fmt.Errorf("vectorize: %w", err)
	}
	if len(m.Vectors) != len(docs) {
		return nil, fmt.Errorf("vectorize: got %d vectors for %d documents", len(m.Vectors), len(docs))
	}

	query := m.Vectors[len(m.Vectors)-1]
	scores := make([]float64, len(items))
	for i := range items {
		sim, err := CosineSimilarity(m.Vectors[i], query)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if math.IsNaN(sim) || math.IsInf(sim, 0) {
			return nil, fmt.Errorf("item %d: %w", i, ErrNonFinite)
		}
		scores[i] = roundHalfUp(sim*1000) / 10
	}
	return scores, nil
}

// Overlap scores items by the share of their skills the requester has,
// compared case-insensitively. It never fails.
type Overlap struct{}

func (Overlap) Name() string { return StrategyOverlap }

func (Overlap) Score(requester []string, items [][]string) ([]float64, error) {
	have := make(map[string]struct{}, len(requester))
	for _, s := range requester {
		have[strings.ToLower(s)] = struct{}{}
	}

	scores := make([]float64, len(items))
	for i, skills := range items {
		scores[i] = overlapPercent(have, skills)
	}
	return scores, nil
}

func overlapPercent(have map[string]struct{}, skills []string) float64 {
	if len(skills) == 0 {
		return 0
	}
	required := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		required[strings.ToLower(s)] = struct{}{}
	}
	matched := 0
	for s := range have {
		if _, ok := required[s]; ok {
			matched++
		}
	}
	pct := float64(matched) / float64(len(skills)) * 100
	return roundHalfUp(pct*10) / 10
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
