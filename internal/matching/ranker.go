// Package matching ranks catalog entries by how well their skill tags match a
// requester's skills.
//
// Scoring runs a primary TF-IDF/cosine strategy and, when it reports a
// failure, recomputes every score with a keyword-overlap strategy. Callers
// always get a ranked list; Result records which strategy produced it.
package matching

import (
	"cmp"
	"errors"
	"io"
	"log/slog"
	"slices"
)

// Skilled is a catalog entry that carries skill tags and can copy itself.
type Skilled[T any] interface {
	SkillTags() []string
	Clone() T
}

// Scored annotates a deep copy of a catalog item with its match score (0-100, one decimal).
type Scored[T any] struct {
	Item       T
	MatchScore float64
}

// Result is the ranked output of one scoring call.
type Result[T any] struct {
	Items    []Scored[T]
	Strategy string
	// Fallback is the primary strategy's error when the fallback produced Items.
	Fallback error
}

// Ranker holds the two scoring strategies. It keeps no state between calls
// and is safe for concurrent use.
type Ranker struct {
	Primary  Strategy
	Fallback Strategy
	Log      *slog.Logger
}

// NewRanker returns a Ranker using TF-IDF with keyword-overlap fallback.
func NewRanker(log *slog.Logger) Ranker {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Ranker{Primary: TFIDF{}, Fallback: Overlap{}, Log: log}
}

// ScoreMatches scores every catalog item against requester and returns them
// sorted by score, highest first. Items with equal scores keep their input order.
// The catalog and its skill slices are never modified.
func ScoreMatches[T Skilled[T]](r Ranker, requester []string, catalog []T) Result[T] {
	requester = slices.Clone(requester)
	skills := make([][]string, len(catalog))
	for i, item := range catalog {
		skills[i] = slices.Clone(item.SkillTags())
	}

	scores, strategy, fallbackErr := r.score(requester, skills)

	items := make([]Scored[T], len(catalog))
	for i, item := range catalog {
		items[i] = Scored[T]{Item: item.Clone(), MatchScore: scores[i]}
	}
	slices.SortStableFunc(items, func(a, b Scored[T]) int {
		return cmp.Compare(b.MatchScore, a.MatchScore)
	})

	return Result[T]{Items: items, Strategy: strategy, Fallback: fallbackErr}
}

// ScorePair scores a single item's skills against requester.
func (r Ranker) ScorePair(requester, itemSkills []string) float64 {
	scores, _, _ := r.score(slices.Clone(requester), [][]string{slices.Clone(itemSkills)})
	return scores[0]
}

func (r Ranker) score(requester []string, items [][]string) ([]float64, string, error) {
	if len(requester) == 0 {
		return make([]float64, len(items)), StrategyEmpty, nil
	}

	primary, fallback := r.Primary, r.Fallback
	if primary == nil {
		primary = TFIDF{}
	}
	if fallback == nil {
		fallback = Overlap{}
	}

	scores, err := primary.Score(requester, items)
	if err == nil && len(scores) != len(items) {
		err = ErrInvalidInput
	}
	if err == nil {
		return scores, primary.Name(), nil
	}

	r.logger().Warn("primary scoring failed, using fallback",
		"strategy", primary.Name(),
		"fallback", fallback.Name(),
		"items", len(items),
		"err", err,
	)

	scores, fbErr := fallback.Score(requester, items)
	if fbErr != nil || len(scores) != len(items) {
		r.logger().Error("fallback scoring failed", "strategy", fallback.Name(), "err", fbErr)
		return make([]float64, len(items)), fallback.Name(), errors.Join(err, fbErr)
	}
	return scores, fallback.Name(), err
}

func (r Ranker) logger() *slog.Logger {
	if r.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Log
}
