package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/carousel-generator/internal/model"
)

// fakeTranslator records the batch it receives and replays a scripted reply.
type fakeTranslator struct {
	got   []string
	reply []string
	err   error
	calls int
}

func (f *fakeTranslator) TranslateBatch(_ context.Context, lines []string) ([]string, error) {
	f.calls++
	f.got = lines

	return f.reply, f.err
}

func TestTranslateTitles(t *testing.T) {
	ctx := context.Background()

	slides := []model.Slide{
		{Title: "Point A", Content: model.Bilingual("en", "es")},
		{Title: "", Content: model.Bilingual("en", "es")},
		{Title: "Key Point 3", Content: model.Bilingual("en", "es")},
		{Title: "Margins", Content: model.Bilingual("en", "es")},
	}

	t.Run("batches cover plus authored titles in one call", func(t *testing.T) {
		tr := &fakeTranslator{reply: []string{"Crecimiento Q3", "Punto A", "Márgenes"}}
		b := NewBatcher(tr)

		titles := b.TranslateTitles(ctx, "Q3 Growth", slides)

		require.Equal(t, 1, tr.calls)
		assert.Equal(t, []string{"Q3 Growth", "Point A", "Margins"}, tr.got)

		assert.Equal(t, "Crecimiento Q3", titles.Cover)
		assert.Equal(t, "Punto A", titles.SlideTitle(0, "Point A"))
		assert.Equal(t, "Márgenes", titles.SlideTitle(3, "Margins"))
	})

	t.Run("untitled and auto-generated slides keep their fallback", func(t *testing.T) {
		tr := &fakeTranslator{reply: []string{"c", "a", "m"}}
		titles := NewBatcher(tr).TranslateTitles(ctx, "Q3 Growth", slides)

		assert.Equal(t, "fallback", titles.SlideTitle(1, "fallback"))
		assert.Equal(t, "Key Point 3", titles.SlideTitle(2, "Key Point 3"))
	})

	t.Run("failed call keeps every source title", func(t *testing.T) {
		tr := &fakeTranslator{err: errors.New("model unavailable")}
		titles := NewBatcher(tr).TranslateTitles(ctx, "Q3 Growth", slides)

		assert.Equal(t, "Q3 Growth", titles.Cover)
		assert.Empty(t, titles.Slides)
		assert.Equal(t, "Point A", titles.SlideTitle(0, "Point A"))
	})

	t.Run("five titles failing entirely fall back to all five sources", func(t *testing.T) {
		many := make([]model.Slide, 5)
		for i := range many {
			many[i] = model.Slide{Title: string(rune('A' + i)), Content: model.Bilingual("en", "es")}
		}

		tr := &fakeTranslator{err: errors.New("down")}
		titles := NewBatcher(tr).TranslateTitles(ctx, "Cover", many)

		assert.Equal(t, "Cover", titles.Cover)
		for i := range many {
			assert.Equal(t, many[i].Title, titles.SlideTitle(i, many[i].Title))
		}
	})

	t.Run("short reply maps leading slots only", func(t *testing.T) {
		tr := &fakeTranslator{reply: []string{"Crecimiento Q3", "Punto A"}}
		titles := NewBatcher(tr).TranslateTitles(ctx, "Q3 Growth", slides)

		assert.Equal(t, "Crecimiento Q3", titles.Cover)
		assert.Equal(t, "Punto A", titles.SlideTitle(0, "Point A"))
		assert.Equal(t, "Margins", titles.SlideTitle(3, "Margins"))
	})

	t.Run("empty reply keeps the source cover title", func(t *testing.T) {
		tr := &fakeTranslator{reply: nil}
		titles := NewBatcher(tr).TranslateTitles(ctx, "Q3 Growth", slides)

		assert.Equal(t, "Q3 Growth", titles.Cover)
	})
}
