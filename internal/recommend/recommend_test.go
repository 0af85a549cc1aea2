package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"internship-matcher/internal/cache"
	"internship-matcher/internal/matching"
	"internship-matcher/internal/queue"
	"internship-matcher/internal/store"
)

const ttl = time.Minute

func TestForSkillsCacheMiss(t *testing.T) {
	st := new(store.MockStore)
	c := new(cache.MockCache)
	skills := []string{"Python", "Machine Learning", "Data Analysis"}
	key := cache.GenerateCacheKey(ScopeInternships, skills)

	c.On("GetMatches", mock.Anything, key).Return(nil, nil).Once()
	st.On("ListInternships", mock.Anything).Return(store.DefaultInternships(), nil).Once()
	c.On("SetMatches", mock.Anything, key, mock.MatchedBy(func(e *cache.Entry) bool {
		var items []Match
		return e.Strategy == matching.StrategyTFIDF && json.Unmarshal(e.Matches, &items) == nil && len(items) == 8
	}), ttl).Return(nil).Once()

	out, err := New(st, c, nil, ttl).ForSkills(context.Background(), skills)

	require.NoError(t, err)
	assert.False(t, out.Cached)
	assert.Equal(t, matching.StrategyTFIDF, out.Strategy)
	require.Len(t, out.Items, 8)
	assert.Equal(t, 1, out.Items[0].ID)
	assert.Equal(t, 100.0, out.Items[0].MatchScore)
	for i := 1; i < len(out.Items); i++ {
		assert.LessOrEqual(t, out.Items[i].MatchScore, out.Items[i-1].MatchScore)
	}
	st.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestForSkillsCacheHit(t *testing.T) {
	st := new(store.MockStore)
	c := new(cache.MockCache)
	skills := []string{"Excel"}
	cached, _ := json.Marshal([]Match{{ID: 8, Title: "Data Analytics Intern", MatchScore: 42.5}})

	c.On("GetMatches", mock.Anything, cache.GenerateCacheKey(ScopeInternships, skills)).
		Return(&cache.Entry{Strategy: matching.StrategyTFIDF, Matches: cached}, nil).Once()

	out, err := New(st, c, nil, ttl).ForSkills(context.Background(), skills)

	require.NoError(t, err)
	assert.True(t, out.Cached)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 42.5, out.Items[0].MatchScore)
	st.AssertNotCalled(t, "ListInternships", mock.Anything)
	c.AssertExpectations(t)
}

func TestForSkillsCacheFailuresAreIgnored(t *testing.T) {
	st := new(store.MockStore)
	c := new(cache.MockCache)

	c.On("GetMatches", mock.Anything, mock.Anything).Return(nil, errors.New("redis down")).Once()
	st.On("ListInternships", mock.Anything).Return(store.DefaultInternships(), nil).Once()
	c.On("SetMatches", mock.Anything, mock.Anything, mock.Anything, ttl).Return(errors.New("redis down")).Once()

	out, err := New(st, c, nil, ttl).ForSkills(context.Background(), []string{"SQL"})

	require.NoError(t, err)
	assert.Equal(t, 8, out.Items[0].ID)
	c.AssertExpectations(t)
}

func TestForSkillsCorruptCacheEntry(t *testing.T) {
	st := new(store.MockStore)
	c := new(cache.MockCache)

	c.On("GetMatches", mock.Anything, mock.Anything).Return(&cache.Entry{Matches: []byte("{")}, nil).Once()
	st.On("ListInternships", mock.Anything).Return([]store.Internship{}, nil).Once()
	c.On("SetMatches", mock.Anything, mock.Anything, mock.Anything, ttl).Return(nil).Once()

	out, err := New(st, c, nil, ttl).ForSkills(context.Background(), []string{"SQL"})

	require.NoError(t, err)
	assert.False(t, out.Cached)
	assert.Empty(t, out.Items)
}

func TestForSkillsStoreError(t *testing.T) {
	st := new(store.MockStore)
	c := new(cache.MockCache)
	dbErr := errors.New("db error")

	c.On("GetMatches", mock.Anything, mock.Anything).Return(nil, nil).Once()
	st.On("ListInternships", mock.Anything).Return(nil, dbErr).Once()

	_, err := New(st, c, nil, ttl).ForSkills(context.Background(), []string{"SQL"})

	assert.ErrorIs(t, err, dbErr)
	c.AssertNotCalled(t, "SetMatches", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestForSkillsEmptyRequester(t *testing.T) {
	svc := New(store.NewSeededMemory(), nil, nil, ttl)

	out, err := svc.ForSkills(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, matching.StrategyEmpty, out.Strategy)
	for i, m := range out.Items {
		assert.Equal(t, i+1, m.ID)
		assert.Zero(t, m.MatchScore)
	}
}

func TestForStudent(t *testing.T) {
	svc := New(store.NewSeededMemory(), nil, nil, ttl)

	st, out, err := svc.ForStudent(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Sneha Patel", st.Name)
	assert.Equal(t, 2, out.Items[0].ID)

	_, _, err = svc.ForStudent(context.Background(), "404")
	assert.ErrorIs(t, err, store.ErrStudentNotFound)
}

func TestCandidatesFor(t *testing.T) {
	svc := New(store.NewSeededMemory(), nil, nil, ttl)

	in, out, err := svc.CandidatesFor(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "AI Research Intern", in.Title)
	require.Len(t, out.Items, 3)
	assert.Equal(t, []string{"2", "1", "3"}, []string{out.Items[0].ID, out.Items[1].ID, out.Items[2].ID})
	assert.Greater(t, out.Items[0].MatchScore, 0.0)

	_, _, err = svc.CandidatesFor(context.Background(), 99)
	assert.ErrorIs(t, err, store.ErrInternshipNotFound)
}

func TestWarm(t *testing.T) {
	st := new(store.MockStore)
	c := new(cache.MockCache)
	student := store.Student{ID: "s1", Skills: []string{"React", "JavaScript"}}

	st.On("GetStudent", mock.Anything, "s1").Return(student, nil).Once()
	st.On("ListInternships", mock.Anything).Return(store.DefaultInternships(), nil).Once()
	c.On("SetMatches", mock.Anything, cache.GenerateCacheKey(ScopeInternships, student.Skills), mock.Anything, ttl).Return(nil).Once()
	c.On("InvalidateScope", mock.Anything, ScopeCandidates).Return(nil).Once()

	err := New(st, c, nil, ttl).Warm(context.Background(), "s1")

	require.NoError(t, err)
	c.AssertNotCalled(t, "GetMatches", mock.Anything, mock.Anything)
	st.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestWarmUnknownStudent(t *testing.T) {
	st := new(store.MockStore)
	st.On("GetStudent", mock.Anything, "nope").Return(store.Student{}, store.ErrStudentNotFound).Once()

	err := New(st, nil, nil, ttl).Warm(context.Background(), "nope")

	assert.ErrorIs(t, err, store.ErrStudentNotFound)
}

func TestHandleRescore(t *testing.T) {
	st := new(store.MockStore)
	c := new(cache.MockCache)
	student := store.Student{ID: "s1", Skills: []string{"SQL"}}

	st.On("GetStudent", mock.Anything, "s1").Return(student, nil).Once()
	st.On("ListInternships", mock.Anything).Return(store.DefaultInternships(), nil).Once()
	c.On("SetMatches", mock.Anything, mock.Anything, mock.Anything, ttl).Return(nil).Once()
	c.On("InvalidateScope", mock.Anything, ScopeCandidates).Return(nil).Once()

	svc := New(st, c, nil, ttl)
	task, err := queue.NewRescoreTask("s1")
	require.NoError(t, err)

	require.NoError(t, svc.HandleRescore(context.Background(), task))
	st.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestHandleRescoreErrors(t *testing.T) {
	st := new(store.MockStore)
	svc := New(st, nil, nil, ttl)

	// malformed payloads are dropped, not retried
	assert.NoError(t, svc.HandleRescore(context.Background(), queue.Task{Type: queue.TaskTypeRescore, Payload: []byte("{")}))

	st.On("GetStudent", mock.Anything, "gone").Return(store.Student{}, store.ErrStudentNotFound).Once()
	task, err := queue.NewRescoreTask("gone")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.HandleRescore(context.Background(), task), store.ErrStudentNotFound)
}

func TestStudentAdded(t *testing.T) {
	c := new(cache.MockCache)
	c.On("InvalidateScope", mock.Anything, ScopeCandidates).Return(nil).Once()

	New(store.NewSeededMemory(), c, nil, ttl).StudentAdded(context.Background(), "s9")

	c.AssertExpectations(t)
}

func TestStudentAddedCacheErrorIsIgnored(t *testing.T) {
	c := new(cache.MockCache)
	c.On("InvalidateScope", mock.Anything, ScopeCandidates).Return(errors.New("redis down")).Once()

	assert.NotPanics(t, func() {
		New(store.NewSeededMemory(), c, nil, ttl).StudentAdded(context.Background(), "s9")
	})
	c.AssertExpectations(t)
}
