package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps the catalog in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	internships []Internship
	students    []Student
}

// NewMemory returns a MemoryStore holding copies of internships and students.
func NewMemory(internships []Internship, students []Student) *MemoryStore {
	s := &MemoryStore{}
	for _, in := range internships {
		s.internships = append(s.internships, in.Clone())
	}
	for _, st := range students {
		s.students = append(s.students, st.Clone())
	}
	return s
}

// NewSeededMemory returns a MemoryStore with the default catalog.
func NewSeededMemory() *MemoryStore {
	return NewMemory(DefaultInternships(), DefaultStudents())
}

func (s *MemoryStore) ListInternships(_ context.Context) ([]Internship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Internship, len(s.internships))
	for i, in := range s.internships {
		out[i] = in.Clone()
	}
	return out, nil
}

func (s *MemoryStore) GetInternship(_ context.Context, id int) (Internship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := slices.IndexFunc(s.internships, func(in Internship) bool { return in.ID == id })
	if idx < 0 {
		return Internship{}, ErrInternshipNotFound
	}
	return s.internships[idx].Clone(), nil
}

func (s *MemoryStore) ListStudents(_ context.Context) ([]Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Student, len(s.students))
	for i, st := range s.students {
		out[i] = st.Clone()
	}
	return out, nil
}

func (s *MemoryStore) GetStudent(_ context.Context, id string) (Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := slices.IndexFunc(s.students, func(st Student) bool { return st.ID == id })
	if idx < 0 {
		return Student{}, ErrStudentNotFound
	}
	return s.students[idx].Clone(), nil
}

func (s *MemoryStore) CreateStudent(_ context.Context, name string, skills []string) (Student, error) {
	st := Student{
		ID:        uuid.NewString(),
		Name:      name,
		Skills:    slices.Clone(skills),
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.students = append(s.students, st)
	s.mu.Unlock()
	return st.Clone(), nil
}
