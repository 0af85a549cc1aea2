package store

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListInternships(ctx context.Context) ([]Internship, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Internship), args.Error(1)
}

func (m *MockStore) GetInternship(ctx context.Context, id int) (Internship, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Internship), args.Error(1)
}

func (m *MockStore) ListStudents(ctx context.Context) ([]Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Student), args.Error(1)
}

func (m *MockStore) GetStudent(ctx context.Context, id string) (Student, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Student), args.Error(1)
}

func (m *MockStore) CreateStudent(ctx context.Context, name string, skills []string) (Student, error) {
	args := m.Called(ctx, name, skills)
	return args.Get(0).(Student), args.Error(1)
}
