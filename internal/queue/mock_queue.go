package queue

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockQueue is a testify mock of Queue.
type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(ctx context.Context, task Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockQueue) Worker(ctx context.Context, taskType TaskType, handler Handler) error {
	args := m.Called(ctx, taskType, handler)
	return args.Error(0)
}

// RescoredStudents returns the student ids of every rescore task passed to
// Enqueue, in call order. Tasks that fail to decode are skipped.
func (m *MockQueue) RescoredStudents() []string {
	var ids []string
	for _, call := range m.Calls {
		if call.Method != "Enqueue" {
			continue
		}
		task, ok := call.Arguments.Get(1).(Task)
		if !ok {
			continue
		}
		if p, err := DecodeRescore(task); err == nil {
			ids = append(ids, p.StudentID)
		}
	}
	return ids
}
