package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"golang.org/x/sync/errgroup"
)

// Task is a unit of work whose result lands in a fixed slot
type Task[T any] func(ctx context.Context) T

// Collect runs tasks concurrently and returns their results in input order.
// limit caps concurrent tasks; limit <= 0 runs all at once. A panicking task
// is recovered and its slot filled by recovered(i, r).
func Collect[T any](ctx context.Context, limit int, tasks []Task[T], recovered func(i int, r any) T) []T {
	results := make([]T, len(tasks))

	var eg errgroup.Group
	if limit > 0 {
		eg.SetLimit(limit)
	}

	for i, task := range tasks {
		eg.Go(func() error {
			results[i] = Run(ctx, task, func(r any) T { return recovered(i, r) })
			return nil
		})
	}
	_ = eg.Wait()

	return results
}

// Run executes task on the calling goroutine, converting a panic into recovered(r)
func Run[T any](ctx context.Context, task Task[T], recovered func(r any) T) (result T) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.From(ctx).Error("Panic in task",
				"recover", r,
				"stack", string(debug.Stack()),
			)
			result = recovered(r)
		}
	}()

	return task(ctx)
}
