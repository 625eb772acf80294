// Package parallel runs per-file work on a bounded pool of goroutines.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/HueCodes/vuelint/internal/logger"
)

// FileResult holds the outcome of processing one file
type FileResult[T any] struct {
	Filename string
	Result   T
	Error    error
}

// ProcessFunc processes a single file
type ProcessFunc[T any] func(ctx context.Context, filename string) (T, error)

// Processor bounds how many files are processed at once
type Processor struct {
	workers int
}

// Option configures a Processor
type Option func(*Processor)

// New creates a Processor using GOMAXPROCS workers unless configured
func New(opts ...Option) *Processor {
	p := &Processor{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithWorkers sets the number of workers. Values below 1 keep the default.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// Workers returns the configured worker limit
func (p *Processor) Workers() int {
	return p.workers
}

// Process runs fn for every file and returns the results in input order.
// A failing file records its error and does not stop the others; files not
// yet started when ctx is cancelled record ctx.Err().
func Process[T any](ctx context.Context, p *Processor, files []string, fn ProcessFunc[T]) []FileResult[T] {
	if len(files) == 0 {
		return nil
	}

	// each goroutine owns one index, so no lock is needed
	results := make([]FileResult[T], len(files))

	g := new(errgroup.Group)
	g.SetLimit(min(p.workers, len(files)))

	for i, filename := range files {
		g.Go(func() error {
			results[i].Filename = filename
			if err := ctx.Err(); err != nil {
				results[i].Error = err
				return nil
			}

			res, err := fn(ctx, filename)
			results[i].Result = res
			results[i].Error = err
			if err != nil {
				logger.Log.Debug("file failed", "file", filename, "error", err)
			} else {
				logger.Log.Debug("file done", "file", filename)
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// AggregateError collects the per-file errors of one run
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d files failed:\n  %s", len(e.Errors), strings.Join(msgs, "\n  "))
}

// Unwrap exposes the individual errors to errors.Is and errors.As
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// HasErrors returns true if there are any errors
func (e *AggregateError) HasErrors() bool {
	return len(e.Errors) > 0
}

// CollectErrors gathers the errors of results, or returns nil when there are none
func CollectErrors[T any](results []FileResult[T]) *AggregateError {
	var errs []error
	for _, r := range results {
		if r.Error != nil {
			errs = append(errs, r.Error)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: errs}
}
