package pdf

import (
	"bytes"
	"image/color"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/carousel-generator/internal/compose"
	"github.com/aliskhannn/carousel-generator/internal/styles"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 30, G: 60, B: 120, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func samplePage(t *testing.T) compose.Page {
	t.Helper()
	white := styles.Color{R: 1, G: 1, B: 1}
	blue := styles.Color{R: 0.29, G: 0.62, B: 1}
	return compose.Page{Ops: []compose.Op{
		compose.RectOp{W: compose.PageWidth, H: compose.PageHeight, Color: styles.Color{R: 0.12, G: 0.12, B: 0.12}, Fill: true},
		compose.TextOp{X: 100, Y: 120, Text: "Q3 Growth", Font: compose.FontBold, Size: 36, Color: blue},
		compose.TextOp{X: 100, Y: 200, Text: "Revenue grew.", Font: compose.FontRegular, Size: 11, Color: white},
		compose.TextOp{X: 100, Y: 220, Text: "Más detalles aquí.", Font: compose.FontOblique, Size: 11, Color: white},
		compose.ImageOp{X: 46, Y: 260, W: 120, H: 80, PNG: pngOf(t, 120, 80)},
		compose.LineOp{X1: 306, Y1: 300, X2: 306, Y2: 700, Color: blue, Width: 1},
		compose.RectOp{X: 10, Y: 10, W: 592, H: 772, Color: blue, LineWidth: 3},
	}}
}

func TestAssembler_Assemble(t *testing.T) {
	asm, err := NewAssembler(FontConfig{})
	require.NoError(t, err)

	t.Run("renders every page into one pdf", func(t *testing.T) {
		doc := compose.Document{Pages: []compose.Page{samplePage(t), samplePage(t)}}

		out, err := asm.Assemble(doc)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		assert.Greater(t, len(out), 1000)
	})

	t.Run("empty document still serializes", func(t *testing.T) {
		out, err := asm.Assemble(compose.Document{})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	})

	t.Run("bad draw op skipped, document survives", func(t *testing.T) {
		page := samplePage(t)
		page.Ops = append(page.Ops, compose.ImageOp{X: 0, Y: 0, W: 10, H: 10, PNG: []byte("not an image")})
		out, err := asm.Assemble(compose.Document{Pages: []compose.Page{page}})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	})
}

func TestNewAssembler_BadFontPath(t *testing.T) {
	_, err := NewAssembler(FontConfig{Bold: "/nonexistent/font.ttf"})
	assert.Error(t, err)
}

func TestMetrics_WidthOf(t *testing.T) {
	m, err := NewMetrics(FontConfig{})
	require.NoError(t, err)

	t.Run("longer text is wider", func(t *testing.T) {
		short := m.WidthOf(compose.FontRegular, 12, "ab")
		long := m.WidthOf(compose.FontRegular, 12, "abcdef")
		assert.Greater(t, short, 0.0)
		assert.Greater(t, long, short)
	})

	t.Run("larger size is wider", func(t *testing.T) {
		small := m.WidthOf(compose.FontBold, 12, "Growth")
		big := m.WidthOf(compose.FontBold, 24, "Growth")
		assert.Greater(t, big, small)
	})

	t.Run("concurrent measurement", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					m.WidthOf(compose.FontOblique, 14, "concurrent text")
				}
			}()
		}
		wg.Wait()
	})
}
