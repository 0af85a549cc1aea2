package queue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var ErrQueueFull = errors.New("queue full")

// Local is an in-process queue for single-binary deployments. Tasks are lost
// on restart.
type Local struct {
	log   *slog.Logger
	tasks chan Task
	// RetryBase is the backoff base for failed tasks.
	RetryBase time.Duration
}

// NewLocal returns a Local queue holding up to size pending tasks.
func NewLocal(log *slog.Logger, size int) *Local {
	if size <= 0 {
		size = 64
	}
	return &Local{log: log, tasks: make(chan Task, size), RetryBase: time.Second}
}

func (q *Local) Enqueue(ctx context.Context, task Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.Type == "" {
		return ErrTaskTypeRequired
	}
	select {
	case q.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// Worker handles tasks of taskType until ctx is done. Tasks of other types
// are dropped.
func (q *Local) Worker(ctx context.Context, taskType TaskType, handler Handler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case task := <-q.tasks:
			if task.Type != taskType {
				q.log.Warn("dropping task with unexpected type", "id", task.ID, "type", task.Type)
				continue
			}
			if task.NotBefore.After(time.Now()) {
				q.later(task)
				continue
			}
			if err := handler(ctx, task); err != nil {
				q.retry(task, err)
			}
		}
	}
}

func (q *Local) retry(task Task, handlerErr error) {
	next, ok := nextAttempt(task, time.Now(), q.RetryBase)
	if !ok {
		q.log.Error("task permanently failed", "id", task.ID, "type", task.Type, "original_err", handlerErr)
		return
	}
	q.later(next)
}

// later puts task back on the channel once it is due, leaving the worker
// free to handle newer tasks in the meantime.
func (q *Local) later(task Task) {
	time.AfterFunc(time.Until(task.NotBefore), func() {
		select {
		case q.tasks <- task:
		default:
			q.log.Error("failed to re-enqueue delayed task", "id", task.ID, "type", task.Type, "attempt", task.Attempts, "enqueue_err", ErrQueueFull)
		}
	})
}
