package assets

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/carousel-generator/internal/planner"
)

// imageGenerator defines the interface for the external image service.
type imageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// Fetch policy: a hard worker ceiling to respect the external ~5 req/min
// quota, three attempts per job with linear pauses, and a fixed per-attempt
// deadline.
const (
	MaxWorkers     = 4
	MaxAttempts    = 3
	backoffStep    = 2 * time.Second
	attemptTimeout = 30 * time.Second
)

// Fetcher resolves image jobs against the external service in parallel.
type Fetcher struct {
	generator imageGenerator
	backoff   time.Duration // pause unit: attempt n sleeps n*backoff
	timeout   time.Duration // per-attempt deadline
}

// NewFetcher creates a new Fetcher using the given image service client.
func NewFetcher(g imageGenerator) *Fetcher {
	return &Fetcher{generator: g, backoff: backoffStep, timeout: attemptTimeout}
}

// result is the terminal state of one job: resolved bytes or a final error.
type result struct {
	key  string
	data []byte
	err  error
}

// FetchAll resolves every job and returns a map holding entries only for the
// jobs that produced decodable image bytes; a missing key tells the caller to
// substitute placeholder art. The call blocks until every job has reached a
// terminal state. A job's retry pauses block only its own worker; dispatched
// jobs always run to their own terminal attempt, there is no cross-job
// cancellation.
func (f *Fetcher) FetchAll(ctx context.Context, jobs []planner.Job) map[string][]byte {
	images := make(map[string][]byte, len(jobs))
	if len(jobs) == 0 {
		return images
	}

	workers := MaxWorkers
	if len(jobs) < workers {
		workers = len(jobs)
	}

	sem := make(chan struct{}, workers)
	results := make(chan result, len(jobs))

	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		go func(job planner.Job) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			data, err := f.fetchOne(ctx, job)
			results <- result{key: job.Key, data: data, err: err}
		}(job)
	}

	// Full join barrier: fold results only after every worker is done.
	wg.Wait()
	close(results)

	for r := range results {
		if r.err != nil {
			continue
		}
		images[r.key] = r.data
	}

	zlog.Logger.Info().
		Int("resolved", len(images)).
		Int("jobs", len(jobs)).
		Msg("image jobs fetched")

	return images
}

// fetchOne runs the attempt loop for a single job. Only quota failures are
// retried; the pause runs after the final failed attempt as well. Any other
// failure, including an undecodable payload, is terminal on first occurrence.
func (f *Fetcher) fetchOne(ctx context.Context, job planner.Job) ([]byte, error) {
	var err error

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		var data []byte
		data, err = f.generate(ctx, job.Prompt)
		if err == nil {
			if _, decodeErr := imaging.Decode(bytes.NewReader(data)); decodeErr != nil {
				zlog.Logger.Warn().
					Str("job", job.Key).
					Err(decodeErr).
					Msg("image service returned undecodable bytes")
				return nil, decodeErr
			}

			return data, nil
		}

		if !IsQuota(err) {
			zlog.Logger.Warn().
				Str("job", job.Key).
				Err(err).
				Msg("image generation failed")
			return nil, err
		}

		pause := time.Duration(attempt+1) * f.backoff
		zlog.Logger.Info().
			Str("job", job.Key).
			Int("attempt", attempt+1).
			Dur("pause", pause).
			Msg("image service rate-limited, backing off")
		time.Sleep(pause)
	}

	zlog.Logger.Warn().
		Str("job", job.Key).
		Msg("image generation rate-limited on all attempts")

	return nil, err
}

func (f *Fetcher) generate(ctx context.Context, prompt string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	return f.generator.Generate(attemptCtx, prompt)
}
