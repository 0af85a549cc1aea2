// Package recommend ranks the internship catalog for a student (and students
// for an internship) on top of the store, the result cache and the matching ranker.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"internship-matcher/internal/cache"
	"internship-matcher/internal/logger"
	"internship-matcher/internal/matching"
	"internship-matcher/internal/queue"
	"internship-matcher/internal/store"
)

const (
	ScopeInternships = "internships"
	ScopeCandidates  = "candidates"
)

// Match is the public shape of a scored internship.
type Match struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Ministry       string   `json:"ministry"`
	Location       string   `json:"location"`
	RequiredSkills []string `json:"required_skills"`
	MatchScore     float64  `json:"match_score"`
}

// Candidate is the public shape of a scored student.
type Candidate struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Skills     []string `json:"skills"`
	MatchScore float64  `json:"match_score"`
}

// Outcome is a ranked list plus how it was produced.
type Outcome[T any] struct {
	Items    []T
	Strategy string
	Cached   bool
}

type Service struct {
	store  store.Store
	cache  cache.Cache
	ranker matching.Ranker
	log    *slog.Logger
	ttl    time.Duration
}

func New(st store.Store, c cache.Cache, log *slog.Logger, ttl time.Duration) *Service {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		store:  st,
		cache:  c,
		ranker: matching.NewRanker(log),
		log:    log,
		ttl:    ttl,
	}
}

// ForSkills ranks all internships against skills.
func (s *Service) ForSkills(ctx context.Context, skills []string) (Outcome[Match], error) {
	return rank(ctx, s, ScopeInternships, skills, false, s.store.ListInternships, toMatch)
}

// ForStudent ranks all internships against a stored student's skills.
func (s *Service) ForStudent(ctx context.Context, studentID string) (store.Student, Outcome[Match], error) {
	st, err := s.store.GetStudent(ctx, studentID)
	if err != nil {
		return store.Student{}, Outcome[Match]{}, err
	}
	out, err := s.ForSkills(ctx, st.Skills)
	return st, out, err
}

// CandidatesFor ranks all students against an internship's required skills.
func (s *Service) CandidatesFor(ctx context.Context, internshipID int) (store.Internship, Outcome[Candidate], error) {
	in, err := s.store.GetInternship(ctx, internshipID)
	if err != nil {
		return store.Internship{}, Outcome[Candidate]{}, err
	}
	out, err := rank(ctx, s, ScopeCandidates, in.RequiredSkills, false, s.store.ListStudents, toCandidate)
	return in, out, err
}

// Warm recomputes and caches a student's recommendations and drops cached
// candidate lists, which no longer include every student.
func (s *Service) Warm(ctx context.Context, studentID string) error {
	st, err := s.store.GetStudent(ctx, studentID)
	if err != nil {
		return fmt.Errorf("load student %s: %w", studentID, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := rank(ctx, s, ScopeInternships, st.Skills, true, s.store.ListInternships, toMatch)
		return err
	})
	g.Go(func() error {
		if err := s.cache.InvalidateScope(ctx, ScopeCandidates); err != nil {
			s.log.Warn("failed to invalidate candidate cache", "err", err)
		}
		return nil
	})
	return g.Wait()
}

// StudentAdded drops cached candidate lists so the next ranking includes the
// new student. It runs whether or not a rescore task could be queued.
func (s *Service) StudentAdded(ctx context.Context, studentID string) {
	if err := s.cache.InvalidateScope(ctx, ScopeCandidates); err != nil {
		s.log.Warn("failed to invalidate candidate cache", "student_id", studentID, "err", err)
	}
}

func rank[T matching.Skilled[T], P any](
	ctx context.Context,
	s *Service,
	scope string,
	requester []string,
	refresh bool,
	load func(context.Context) ([]T, error),
	project func(matching.Scored[T]) P,
) (Outcome[P], error) {
	key := cache.GenerateCacheKey(scope, requester)

	if !refresh {
		if out, ok := s.cached(ctx, key, scope); ok {
			var items []P
			err := json.Unmarshal(out.Matches, &items)
			if err == nil {
				return Outcome[P]{Items: items, Strategy: out.Strategy, Cached: true}, nil
			}
			s.log.Warn("failed to decode cached matches", "scope", scope, "err", err)
		}
	}

	catalog, err := load(ctx)
	if err != nil {
		return Outcome[P]{}, fmt.Errorf("load %s: %w", scope, err)
	}

	res := matching.ScoreMatches(s.ranker, requester, catalog)
	if res.Fallback != nil {
		s.log.Warn("ranking served by fallback strategy", "scope", scope, "strategy", res.Strategy, "err", res.Fallback)
	}

	items := make([]P, len(res.Items))
	for i, it := range res.Items {
		items[i] = project(it)
	}

	s.remember(ctx, key, scope, res.Strategy, items)
	return Outcome[P]{Items: items, Strategy: res.Strategy}, nil
}

func (s *Service) cached(ctx context.Context, key, scope string) (*cache.Entry, bool) {
	entry, err := s.cache.GetMatches(ctx, key)
	if err != nil {
		s.log.Warn("cache read failed", "scope", scope, "err", err)
		return nil, false
	}
	if entry == nil {
		return nil, false
	}
	s.log.Debug("cache hit", "scope", scope)
	return entry, true
}

func (s *Service) remember(ctx context.Context, key, scope, strategy string, items any) {
	data, err := json.Marshal(items)
	if err != nil {
		s.log.Warn("failed to marshal matches, skipping cache", "scope", scope, "err", err)
		return
	}
	if err := s.cache.SetMatches(ctx, key, &cache.Entry{Strategy: strategy, Matches: data}, s.ttl); err != nil {
		s.log.Warn("failed to cache matches", "scope", scope, "err", err)
	}
}

func toMatch(sc matching.Scored[store.Internship]) Match {
	return Match{
		ID:             sc.Item.ID,
		Title:          sc.Item.Title,
		Ministry:       sc.Item.Ministry,
		Location:       sc.Item.Location,
		RequiredSkills: sc.Item.RequiredSkills,
		MatchScore:     sc.MatchScore,
	}
}

func toCandidate(sc matching.Scored[store.Student]) Candidate {
	return Candidate{
		ID:         sc.Item.ID,
		Name:       sc.Item.Name,
		Skills:     sc.Item.Skills,
		MatchScore: sc.MatchScore,
	}
}

// HandleRescore is the queue handler for rescore tasks.
func (s *Service) HandleRescore(ctx context.Context, task queue.Task) error {
	p, err := queue.DecodeRescore(task)
	if err != nil {
		// A malformed task will never succeed; drop it instead of retrying.
		s.log.Error("dropping malformed rescore task", "id", task.ID, "err", err)
		return nil
	}
	if err := s.Warm(ctx, p.StudentID); err != nil {
		return err
	}
	s.log.Info("recommendations warmed", "student_id", p.StudentID, "task_id", task.ID, "attempt", task.Attempts)
	return nil
}
