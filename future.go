package pathplanning

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Future is the handle of one planning run executing on its own goroutine.
// The worker sends exactly one Result on a channel of capacity one and then
// closes it, so it never blocks on a caller that dropped the handle.
type Future struct {
	results chan Result
	done    chan struct{}

	mu      sync.Mutex
	settled bool
	result  *Result
	err     error
}

func startFuture(run func() Result, logger *zap.SugaredLogger) *Future {
	f := &Future{
		results: make(chan Result, 1),
		done:    make(chan struct{}),
	}

	go func() {
		defer close(f.done)
		defer close(f.results)
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("planner worker panicked", "panic", r)
			}
		}()
		f.results <- run()
	}()

	return f
}

// Poll never blocks. It returns (nil, nil) while the run is in progress, the
// Result once it has completed, and ErrWorkerLost if the worker stopped
// without producing one. Once completed, every later call returns the same values.
func (f *Future) Poll() (*Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.settled {
		return f.result, f.err
	}

	select {
	case res, ok := <-f.results:
		f.settled = true
		if !ok {
			f.err = ErrWorkerLost
			return nil, f.err
		}
		f.result = &res
		return f.result, nil
	default:
		return nil, nil
	}
}

// Wait blocks until the run completes or ctx is done. Giving up on the wait
// does not stop the run.
func (f *Future) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-f.done:
		return f.Poll()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done is closed when the worker has finished, with or without a result.
func (f *Future) Done() <-chan struct{} {
	return f.done
}
