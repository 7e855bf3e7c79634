// Package logpipe fetches remote log files concurrently and aggregates
// their lines into a time-bucketed exception report.
package logpipe

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/divvyup/divvyup/internal/models"
)

// Failure kinds surfaced to the boundary layer. Wrapped errors carry the
// detail; callers dispatch with errors.Is.
var (
	// ErrValidation reports malformed input: an out-of-range parallelism
	// or an empty source list. Raised before any I/O is attempted.
	ErrValidation = errors.New("invalid log request")

	// ErrFetch reports a network, timeout, or non-2xx failure on any
	// single source. Fatal to the whole call; no partial results.
	ErrFetch = errors.New("log fetch failed")

	// ErrParse reports a fetched line that does not match the expected
	// "<source> <timestampMillis> <text>" shape. Fatal to the call.
	ErrParse = errors.New("malformed log line")
)

const (
	// maxParallelism bounds the request-supplied concurrency value.
	maxParallelism = 30

	// maxWorkers is the hard ceiling on in-flight fetches regardless of
	// the requested parallelism.
	maxWorkers = 32
)

// Pipeline turns a list of log file locators into a bucketed report.
// The fetcher is the only stage that performs I/O; everything after it is
// a pure function over the merged line sequence.
type Pipeline struct {
	fetcher ContentFetcher
}

// New creates a Pipeline backed by the given fetcher.
func New(fetcher ContentFetcher) *Pipeline {
	return &Pipeline{fetcher: fetcher}
}

// Process fetches every source with at most min(32, parallelism) requests
// in flight, merges the lines, sorts them by their raw timestamp token,
// buckets them into 15-minute intervals, and counts exception occurrences
// per bucket. Any single fetch or parse failure aborts the whole call.
func (p *Pipeline) Process(ctx context.Context, sources []string, parallelism int) ([]models.BucketEntry, error) {
	if parallelism <= 0 || parallelism > maxParallelism {
		return nil, fmt.Errorf("%w: parallel processing count %d out of expected bounds (0, %d]",
			ErrValidation, parallelism, maxParallelism)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no log files provided", ErrValidation)
	}

	lines, err := p.fetchAll(ctx, sources, parallelism)
	if err != nil {
		return nil, err
	}

	sortByTimestamp(lines)
	records, err := transform(lines)
	if err != nil {
		return nil, err
	}
	return formatReport(aggregate(records)), nil
}

// fetchAll fans the sources out over a bounded worker pool and joins on
// all results. The first fetch failure cancels the context so outstanding
// fetches are abandoned; the pool is always fully drained before return.
func (p *Pipeline) fetchAll(ctx context.Context, sources []string, parallelism int) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := parallelism
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if workers > len(sources) {
		workers = len(sources)
	}

	jobs := make(chan string, len(sources))
	results := make(chan []string, len(sources))
	errs := make(chan error, len(sources))

	for _, src := range sources {
		jobs <- src
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				if ctx.Err() != nil {
					return
				}
				lines, err := p.fetcher.Fetch(ctx, src)
				if err != nil {
					errs <- err
					cancel()
					return
				}
				results <- lines
			}
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	// The root failure is buffered ahead of any cancellation artifacts
	// from sibling workers.
	if err := <-errs; err != nil {
		return nil, err
	}

	var all []string
	for lines := range results {
		all = append(all, lines...)
	}
	return all, nil
}
