package pdf

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/signintech/gopdf"

	"github.com/aliskhannn/carousel-generator/internal/compose"
)

// Metrics measures text with the same faces the assembler embeds, so line
// break decisions made during composition hold in the rendered output. Safe
// for concurrent use.
type Metrics struct {
	mu  sync.Mutex
	doc *gopdf.GoPdf
}

// NewMetrics loads the configured fonts into a scratch document used purely
// for measurement.
func NewMetrics(cfg FontConfig) (*Metrics, error) {
	fonts, err := loadFonts(cfg)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	doc := &gopdf.GoPdf{}
	doc.Start(gopdf.Config{PageSize: *gopdf.PageSizeLetter})
	if err := fonts.register(doc); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	return &Metrics{doc: doc}, nil
}

// WidthOf reports the rendered width of one line, in points. Glyphs the face
// cannot measure fall back to a half-em estimate.
func (m *Metrics) WidthOf(font compose.Font, size float64, text string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.doc.SetFont(familyFor(font), "", size); err != nil {
		return estimateWidth(size, text)
	}
	w, err := m.doc.MeasureTextWidth(text)
	if err != nil {
		return estimateWidth(size, text)
	}
	return w
}

func estimateWidth(size float64, text string) float64 {
	return 0.5 * size * float64(utf8.RuneCountInString(text))
}
