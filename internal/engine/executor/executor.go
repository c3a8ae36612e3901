// Package executor implements the generic bounded-concurrency task runner
// used by every scheduling component in the engine.
package executor

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxConcurrency bounds parallel workers when unset.
	DefaultMaxConcurrency = 4
	// DefaultBatchSize bounds the outer batch grouping when unset.
	DefaultBatchSize = 16
	// interBatchYield is the pause between outer batches so other
	// scheduled work is not starved.
	interBatchYield = 10 * time.Millisecond
)

// Worker processes one item and returns its result.
type Worker[T, R any] func(ctx context.Context, item T, index int) (R, error)

// Options configures a Run call.
type Options struct {
	// MaxConcurrency bounds parallel workers within a batch.
	MaxConcurrency int
	// Timeout bounds a single attempt; zero disables it.
	Timeout time.Duration
	// Retries is the number of retries per failed item.
	Retries int
	// RetryDelay is the base delay before a retry, scaled linearly with
	// the attempt number.
	RetryDelay time.Duration
	// BatchSize is the outer grouping that bounds peak memory.
	BatchSize int
	// ID derives a result identifier from an item's index. Optional.
	ID func(index int) string
}

// OptionsFor builds Options from configured executor settings.
func OptionsFor(s domain.ExecutorSettings) Options {
	return Options{
		MaxConcurrency: s.MaxConcurrency,
		Timeout:        s.Timeout,
		Retries:        s.Retries,
		RetryDelay:     s.RetryDelay,
	}
}

// Stats accumulates execution counters across Run calls.
type Stats struct {
	// Processed is the total number of items run.
	Processed int64
	// Failed is the number of items that exhausted their retries.
	Failed int64
	// TotalDuration is the summed wall time of all items.
	TotalDuration time.Duration
}

// AverageDuration returns the mean item duration, or zero before any run.
func (s Stats) AverageDuration() time.Duration {
	if s.Processed == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Processed)
}

// Runner executes item slices with bounded concurrency, retries and
// per-attempt timeouts. Failures never propagate out of Run; they are
// encoded in the result slice, which always has one entry per input item.
type Runner struct {
	mu      sync.Mutex
	stats   Stats
	reduced bool
}

// NewRunner creates a Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Stats returns a copy of the accumulated counters.
func (r *Runner) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// ReduceConcurrency halves the effective concurrency (never below 1) until
// RestoreConcurrency is called. Used as a memory-pressure response.
func (r *Runner) ReduceConcurrency() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reduced = true
}

// RestoreConcurrency resets the effective concurrency to the configured value.
func (r *Runner) RestoreConcurrency() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reduced = false
}

// Reduced reports whether the runner is currently in its halved state.
func (r *Runner) Reduced() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reduced
}

func (r *Runner) effectiveConcurrency(configured int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.reduced {
		return configured
	}
	half := configured / 2
	if half < 1 {
		half = 1
	}
	return half
}

func (r *Runner) record(results int, failed int, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.Processed += int64(results)
	r.stats.Failed += int64(failed)
	r.stats.TotalDuration += elapsed
}

// Run executes worker over items. Items are split into outer batches of
// BatchSize; within a batch, work runs in waves of min(MaxConcurrency,
// BatchSize) that are awaited together, with a short yield between batches.
// Each attempt races the worker against the timeout; failed attempts retry
// with linear backoff until Retries is exhausted, after which the slot is
// marked failed without aborting the batch.
//
// Run returns an error only for invalid options. The result slice always
// has exactly one entry per input item.
func Run[T, R any](ctx context.Context, r *Runner, items []T, worker Worker[T, R], opts Options) ([]domain.TaskResult[R], error) {
	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}

	results := make([]domain.TaskResult[R], len(items))
	failed := 0
	var elapsed time.Duration

	for start := 0; start < len(items); start += opts.BatchSize {
		end := min(start+opts.BatchSize, len(items))
		wave := min(r.effectiveConcurrency(opts.MaxConcurrency), opts.BatchSize)

		for ws := start; ws < end; ws += wave {
			we := min(ws+wave, end)
			var g errgroup.Group
			for i := ws; i < we; i++ {
				g.Go(func() error {
					results[i] = attempt(ctx, items[i], i, worker, opts)
					return nil
				})
			}
			// Workers never return errors; failures live in results.
			_ = g.Wait()
		}

		if end < len(items) {
			select {
			case <-time.After(interBatchYield):
			case <-ctx.Done():
			}
		}
	}

	for i := range results {
		elapsed += results[i].Duration
		if !results[i].OK {
			failed++
		}
	}
	r.record(len(results), failed, elapsed)

	return results, nil
}

// normalize validates options and fills defaults. Misconfiguration is the
// only hard failure surfaced to Run callers.
func normalize(opts Options) (Options, error) {
	if opts.MaxConcurrency < 0 {
		return opts, zerr.With(domain.ErrExecutorMisconfigured, "max_concurrency", strconv.Itoa(opts.MaxConcurrency))
	}
	if opts.Retries < 0 {
		return opts, zerr.With(domain.ErrExecutorMisconfigured, "retries", strconv.Itoa(opts.Retries))
	}
	if opts.BatchSize < 0 {
		return opts, zerr.With(domain.ErrExecutorMisconfigured, "batch_size", strconv.Itoa(opts.BatchSize))
	}
	if opts.MaxConcurrency == 0 {
		opts.MaxConcurrency = DefaultMaxConcurrency
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = DefaultBatchSize
	}
	return opts, nil
}

// attempt runs one item through all its attempts and finalizes its result.
func attempt[T, R any](ctx context.Context, item T, index int, worker Worker[T, R], opts Options) domain.TaskResult[R] {
	res := domain.TaskResult[R]{Index: index}
	if opts.ID != nil {
		res.ID = opts.ID(index)
	}

	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	var lastErr error
	for att := 0; att <= opts.Retries; att++ {
		if att > 0 {
			res.Retries = att
			select {
			case <-time.After(opts.RetryDelay * time.Duration(att)):
			case <-ctx.Done():
				res.Err = zerr.Wrap(ctx.Err(), domain.ErrTaskFailed.Error())
				return res
			}
		}

		out, err := runOnce(ctx, item, index, worker, opts.Timeout)
		if err == nil {
			res.Result = out
			res.OK = true
			return res
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	res.Err = zerr.Wrap(lastErr, domain.ErrTaskFailed.Error())
	return res
}

// runOnce races a single worker invocation against the attempt timeout.
// A timed-out worker is abandoned, not killed: it may still hold resources
// until it naturally completes, so a timeout means "unknown final state".
func runOnce[T, R any](ctx context.Context, item T, index int, worker Worker[T, R], timeout time.Duration) (R, error) {
	attemptCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		result R
		err    error
	}
	// Buffered so an abandoned worker can complete its send and exit.
	done := make(chan outcome, 1)

	go func() {
		result, err := worker(attemptCtx, item, index)
		done <- outcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		return out.result, out.err
	case <-attemptCtx.Done():
		var zero R
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return zero, domain.ErrTaskTimeout
		}
		return zero, attemptCtx.Err()
	}
}
