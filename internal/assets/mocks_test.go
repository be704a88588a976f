package assets

import (
	"bytes"
	"context"
	"image"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// fakeImageService scripts per-prompt responses and records call counts.
type fakeImageService struct {
	mu      sync.Mutex
	calls   map[string]int
	respond func(prompt string, call int) ([]byte, error)
}

func newFakeImageService(respond func(prompt string, call int) ([]byte, error)) *fakeImageService {
	return &fakeImageService{calls: make(map[string]int), respond: respond}
}

func (f *fakeImageService) Generate(_ context.Context, prompt string) ([]byte, error) {
	f.mu.Lock()
	f.calls[prompt]++
	n := f.calls[prompt]
	f.mu.Unlock()

	return f.respond(prompt, n)
}

func (f *fakeImageService) callCount(prompt string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[prompt]
}

// validPNG returns a small well-formed PNG payload.
func validPNG() []byte {
	var buf bytes.Buffer
	_ = imaging.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), imaging.PNG)

	return buf.Bytes()
}

// newTestFetcher returns a fetcher with pauses shrunk to keep tests fast.
func newTestFetcher(g imageGenerator) *Fetcher {
	f := NewFetcher(g)
	f.backoff = time.Millisecond

	return f
}
