package carousel

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/aliskhannn/carousel-generator/internal/compose"
	"github.com/aliskhannn/carousel-generator/internal/model"
	"github.com/aliskhannn/carousel-generator/internal/planner"
	"github.com/aliskhannn/carousel-generator/internal/styles"
	"github.com/aliskhannn/carousel-generator/internal/translate"
)

type mockFetcher struct {
	gotJobs []planner.Job
	images  map[string][]byte
}

func (m *mockFetcher) FetchAll(_ context.Context, jobs []planner.Job) map[string][]byte {
	m.gotJobs = jobs
	return m.images
}

type mockTranslator struct {
	calls     int
	gotCover  string
	gotSlides []model.Slide
	titles    translate.Titles
}

func (m *mockTranslator) TranslateTitles(_ context.Context, coverTitle string, slides []model.Slide) translate.Titles {
	m.calls++
	m.gotCover = coverTitle
	m.gotSlides = slides
	return m.titles
}

type mockComposer struct {
	gotReq    model.CarouselRequest
	gotStyle  styles.Spec
	gotImages map[string][]byte
	gotTitles translate.Titles
	doc       compose.Document
}

func (m *mockComposer) Compose(req model.CarouselRequest, style styles.Spec, images map[string][]byte, titles translate.Titles) compose.Document {
	m.gotReq = req
	m.gotStyle = style
	m.gotImages = images
	m.gotTitles = titles
	return m.doc
}

type mockAssembler struct {
	gotDoc compose.Document
	data   []byte
	err    error
}

func (m *mockAssembler) Assemble(doc compose.Document) ([]byte, error) {
	m.gotDoc = doc
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

type mockStorage struct {
	gotKey     string
	gotType    string
	gotData    []byte
	url        string
	stored     []byte
	deletedKey string
	err        error
}

func (m *mockStorage) Save(_ context.Context, key, contentType string, data []byte) (string, error) {
	m.gotKey = key
	m.gotType = contentType
	m.gotData = data
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

func (m *mockStorage) Load(_ context.Context, key string) (io.ReadCloser, error) {
	m.gotKey = key
	if m.err != nil {
		return nil, m.err
	}
	return io.NopCloser(bytes.NewReader(m.stored)), nil
}

func (m *mockStorage) Delete(_ context.Context, key string) error {
	m.deletedKey = key
	return m.err
}

type mockProducer struct {
	calls int
	got   model.GenerationTask
	err   error
}

func (m *mockProducer) Produce(_ context.Context, task model.GenerationTask) error {
	m.calls++
	m.got = task
	return m.err
}

// failingGenerator simulates the image service being down.
type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, string) ([]byte, error) {
	return nil, errors.New("image service unavailable")
}

// failingTranslator simulates the translation service being down.
type failingTranslator struct{}

func (failingTranslator) TranslateBatch(context.Context, []string) ([]string, error) {
	return nil, errors.New("translation service unavailable")
}
