package translate

import (
	"context"
	"strings"

	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/carousel-generator/internal/model"
)

// translator defines the interface for the external translation service.
type translator interface {
	TranslateBatch(ctx context.Context, lines []string) ([]string, error)
}

// AutoTitlePrefix marks slide titles synthesized by upstream post tooling
// rather than written by the author; such titles are not sent for translation.
const AutoTitlePrefix = "Key Point"

// Titles is the position-correlated output of one batched translation: the
// cover title plus per-slide titles. Slots the batch could not fill stay on
// their source-language text.
type Titles struct {
	Cover  string
	Slides map[int]string // slide index -> translated title
}

// SlideTitle returns the translated title for slide i, or fallback when the
// batch produced none for it.
func (t Titles) SlideTitle(i int, fallback string) string {
	if s, ok := t.Slides[i]; ok {
		return s
	}

	return fallback
}

// Batcher issues one batched title translation per carousel.
type Batcher struct {
	translator translator
}

// NewBatcher creates a new Batcher using the given translation client.
func NewBatcher(tr translator) *Batcher {
	return &Batcher{translator: tr}
}

// TranslateTitles collects the display cover title plus every authored,
// non-empty slide title into one ordered batch, issues a single call, and
// correlates the returned lines by position: line 0 is the cover, the rest
// map to qualifying slides in order. A failed call, or fewer lines than
// requested, leaves the unmapped slots on their source text. This component
// never fails the pipeline; it only degrades.
func (b *Batcher) TranslateTitles(ctx context.Context, coverTitle string, slides []model.Slide) Titles {
	out := Titles{Cover: coverTitle, Slides: make(map[int]string)}

	lines := []string{coverTitle}
	var indexes []int
	for i, slide := range slides {
		if slide.Title != "" && !strings.HasPrefix(slide.Title, AutoTitlePrefix) {
			lines = append(lines, slide.Title)
			indexes = append(indexes, i)
		}
	}

	translated, err := b.translator.TranslateBatch(ctx, lines)
	if err != nil {
		zlog.Logger.Warn().
			Err(err).
			Int("titles", len(lines)).
			Msg("batch title translation failed, keeping source titles")
		return out
	}

	if len(translated) == 0 {
		return out
	}

	out.Cover = translated[0]

	next := 1
	for _, i := range indexes {
		if next >= len(translated) {
			break
		}
		out.Slides[i] = translated[next]
		next++
	}

	zlog.Logger.Info().
		Int("requested", len(lines)).
		Int("translated", len(translated)).
		Msg("carousel titles translated in one batch")

	return out
}
