package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"internship-matcher/internal/retry"
)

// TaskType enumerates supported task categories.
type TaskType string

const (
	// TaskTypeRescore asks a worker to precompute a student's recommendations.
	TaskTypeRescore TaskType = "rescore"
)

const (
	defaultMaxAttempts = 5
	maxRetryDelay      = time.Minute
)

var ErrTaskTypeRequired = errors.New("task type required")

// Task represents a unit of work handed to a worker.
type Task struct {
	ID          uuid.UUID
	Type        TaskType
	Payload     []byte
	Attempts    int
	MaxAttempts int
	NotBefore   time.Time
}

type Handler func(context.Context, Task) error

// Queue exposes a minimal contract to enqueue and consume tasks.
type Queue interface {
	Enqueue(ctx context.Context, task Task) error
	Worker(ctx context.Context, taskType TaskType, handler Handler) error
}

type RescorePayload struct {
	StudentID string `json:"student_id"`
}

// NewRescoreTask builds a rescore task for studentID.
func NewRescoreTask(studentID string) (Task, error) {
	body, err := json.Marshal(RescorePayload{StudentID: studentID})
	if err != nil {
		return Task{}, err
	}
	return Task{ID: uuid.New(), Type: TaskTypeRescore, Payload: body}, nil
}

// DecodeRescore extracts the payload of a rescore task.
func DecodeRescore(task Task) (RescorePayload, error) {
	var p RescorePayload
	if task.Type != TaskTypeRescore {
		return p, fmt.Errorf("unexpected task type %q", task.Type)
	}
	if err := json.Unmarshal(task.Payload, &p); err != nil {
		return p, fmt.Errorf("decode rescore payload: %w", err)
	}
	if p.StudentID == "" {
		return p, errors.New("rescore payload missing student_id")
	}
	return p, nil
}

// EnqueueWithRetry attempts to enqueue with retries and exponential backoff.
func EnqueueWithRetry(ctx context.Context, q Queue, task Task, attempts int, base time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		if err := q.Enqueue(ctx, task); err == nil {
			return nil
		} else if attempt == attempts-1 {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retry.ExponentialBackoff(attempt, base)):
		}
	}
	return nil
}

// nextAttempt prepares a failed task for redelivery. It reports false once
// the task has used all its attempts.
func nextAttempt(task Task, now time.Time, base time.Duration) (Task, bool) {
	task.Attempts++
	if task.MaxAttempts == 0 {
		task.MaxAttempts = defaultMaxAttempts
	}
	if task.Attempts >= task.MaxAttempts {
		return task, false
	}
	task.NotBefore = now.Add(retry.CappedBackoff(task.Attempts, base, maxRetryDelay))
	return task, true
}

func waitUntil(ctx context.Context, t time.Time) error {
	if !t.After(time.Now()) {
		return nil
	}
	timer := time.NewTimer(time.Until(t))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
