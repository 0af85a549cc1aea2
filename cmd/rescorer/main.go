package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"internship-matcher/internal/app"
	"internship-matcher/internal/httputil"
	"internship-matcher/internal/queue"
)

var errNoBroker = errors.New("rescorer needs a shared broker (QUEUE_PROVIDER=nats)")

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	deps.Log.Info("rescore worker starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, deps); err != nil {
		deps.Log.Error("rescore service stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, deps app.Deps) error {
	if err := checkQueue(deps.Queue); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return deps.Queue.Worker(ctx, queue.TaskTypeRescore, deps.Recommend.HandleRescore)
	})

	g.Go(func() error {
		return httputil.ServeHealth(ctx, deps.Log, deps.Config.Port, "rescorer")
	})

	return g.Wait()
}

// checkQueue rejects queues that cannot receive tasks from another process.
func checkQueue(q queue.Queue) error {
	if q == nil {
		return errNoBroker
	}
	if _, ok := q.(*queue.Local); ok {
		return errNoBroker
	}
	return nil
}
