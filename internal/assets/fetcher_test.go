package assets

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/carousel-generator/internal/planner"
)

func jobList(n int) []planner.Job {
	jobs := make([]planner.Job, 0, n)
	for i := 0; i < n; i++ {
		jobs = append(jobs, planner.Job{Key: planner.SlideKey(i), Prompt: fmt.Sprintf("prompt %d", i)})
	}

	return jobs
}

func TestFetchAll(t *testing.T) {
	ctx := context.Background()

	t.Run("successful jobs resolve to their bytes", func(t *testing.T) {
		png := validPNG()
		svc := newFakeImageService(func(string, int) ([]byte, error) {
			return png, nil
		})

		images := newTestFetcher(svc).FetchAll(ctx, jobList(3))

		require.Len(t, images, 3)
		assert.Equal(t, png, images["slide_0"])
	})

	t.Run("quota failure on all attempts leaves no entry after three calls", func(t *testing.T) {
		svc := newFakeImageService(func(string, int) ([]byte, error) {
			return nil, errors.New("429 too many requests")
		})

		jobs := []planner.Job{{Key: "cover", Prompt: "p"}}
		images := newTestFetcher(svc).FetchAll(ctx, jobs)

		assert.Empty(t, images)
		assert.Equal(t, MaxAttempts, svc.callCount("p"))
	})

	t.Run("quota failure then success resolves on the retry", func(t *testing.T) {
		png := validPNG()
		svc := newFakeImageService(func(_ string, call int) ([]byte, error) {
			if call == 1 {
				return nil, errors.New("generate: quota exceeded for model")
			}
			return png, nil
		})

		jobs := []planner.Job{{Key: "cover", Prompt: "p"}}
		images := newTestFetcher(svc).FetchAll(ctx, jobs)

		assert.Equal(t, png, images["cover"])
		assert.Equal(t, 2, svc.callCount("p"))
	})

	t.Run("non-quota failure is terminal after one call", func(t *testing.T) {
		svc := newFakeImageService(func(string, int) ([]byte, error) {
			return nil, errors.New("prompt rejected by safety filter")
		})

		jobs := []planner.Job{{Key: "cover", Prompt: "p"}}
		images := newTestFetcher(svc).FetchAll(ctx, jobs)

		assert.Empty(t, images)
		assert.Equal(t, 1, svc.callCount("p"))
	})

	t.Run("undecodable payload is terminal after one call", func(t *testing.T) {
		svc := newFakeImageService(func(string, int) ([]byte, error) {
			return []byte("not an image"), nil
		})

		jobs := []planner.Job{{Key: "cover", Prompt: "p"}}
		images := newTestFetcher(svc).FetchAll(ctx, jobs)

		assert.Empty(t, images)
		assert.Equal(t, 1, svc.callCount("p"))
	})

	t.Run("one failing job does not affect siblings", func(t *testing.T) {
		png := validPNG()
		svc := newFakeImageService(func(prompt string, _ int) ([]byte, error) {
			if prompt == "prompt 1" {
				return nil, errors.New("429")
			}
			return png, nil
		})

		images := newTestFetcher(svc).FetchAll(ctx, jobList(4))

		require.Len(t, images, 3)
		assert.NotContains(t, images, "slide_1")
	})

	t.Run("no jobs returns an empty map", func(t *testing.T) {
		svc := newFakeImageService(func(string, int) ([]byte, error) {
			t.Fatal("service must not be called")
			return nil, nil
		})

		assert.Empty(t, newTestFetcher(svc).FetchAll(ctx, nil))
	})

	t.Run("concurrency never exceeds the worker ceiling", func(t *testing.T) {
		var cur, peak int32
		png := validPNG()
		svc := newFakeImageService(func(string, int) ([]byte, error) {
			n := atomic.AddInt32(&cur, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&cur, -1)
			return png, nil
		})

		images := newTestFetcher(svc).FetchAll(ctx, jobList(12))

		assert.Len(t, images, 12)
		assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(MaxWorkers))
	})
}

func TestIsQuota(t *testing.T) {
	assert.False(t, IsQuota(nil))
	assert.False(t, IsQuota(errors.New("invalid argument")))

	assert.True(t, IsQuota(errors.New("HTTP 429 returned")))
	assert.True(t, IsQuota(errors.New("Quota exceeded for requests")))
	assert.True(t, IsQuota(errors.New("rate limit hit")))
	assert.True(t, IsQuota(errors.New("code = RESOURCE_EXHAUSTED desc = out of tokens")))

	wrapped := fmt.Errorf("generate: %w", &QuotaError{Err: errors.New("slow down")})
	assert.True(t, IsQuota(wrapped))

	assert.False(t, IsQuota(context.DeadlineExceeded))
}
