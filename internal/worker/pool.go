package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Pool runs a batch of independent tasks on a bounded number of goroutines.
type Pool struct {
	size   int
	logger *zap.Logger
}

func NewPool(size int, logger *zap.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{size: size, logger: logger}
}

// Outcome aggregates a batch. Errors holds one entry per failed task, in no particular order.
type Outcome struct {
	Succeeded int
	Failed    int
	Errors    []error
}

// Run calls fn once for every item and waits for all of them. A failing or
// panicking task never stops the others.
func Run[T any](ctx context.Context, p *Pool, items []T, fn func(ctx context.Context, item T) error) Outcome {
	if len(items) == 0 {
		return Outcome{}
	}

	jobs := make(chan T, len(items))

	var succeeded int32
	var mu sync.Mutex
	var errs []error

	var wg sync.WaitGroup

	numWorkers := min(len(items), p.size)

	for w := 1; w <= numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for item := range jobs {
				if err := safeCall(ctx, p.logger, workerID, item, fn); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				} else {
					atomic.AddInt32(&succeeded, 1)
				}
			}
		}(w)
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)

	wg.Wait()

	return Outcome{
		Succeeded: int(atomic.LoadInt32(&succeeded)),
		Failed:    len(errs),
		Errors:    errs,
	}
}

func safeCall[T any](ctx context.Context, logger *zap.Logger, workerID int, item T, fn func(context.Context, T) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("worker task panicked", zap.Int("worker", workerID), zap.Any("panic", r))
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn(ctx, item)
}
