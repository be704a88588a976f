package compose

import "github.com/aliskhannn/carousel-generator/internal/styles"

// Page dimensions: letter size, in points.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
)

// Font selects one of the three registered document faces.
type Font int

const (
	FontRegular Font = iota
	FontBold
	FontOblique
)

// Op is a single draw instruction. Coordinates are top-left based, y grows
// downward; a TextOp's y is the top of the rendered line.
type Op interface {
	isOp()
}

// TextOp draws one line of text.
type TextOp struct {
	X, Y  float64
	Text  string
	Font  Font
	Size  float64
	Color styles.Color
}

// ImageOp draws pre-encoded PNG bytes into a fixed box.
type ImageOp struct {
	X, Y, W, H float64
	PNG        []byte
}

// RectOp draws a rectangle, filled when Fill is set, stroked otherwise.
type RectOp struct {
	X, Y, W, H float64
	Color      styles.Color
	LineWidth  float64
	Fill       bool
}

// LineOp draws a straight stroked line.
type LineOp struct {
	X1, Y1, X2, Y2 float64
	Color          styles.Color
	Width          float64
}

func (TextOp) isOp()  {}
func (ImageOp) isOp() {}
func (RectOp) isOp()  {}
func (LineOp) isOp()  {}

// Page is the ordered draw list for one output page.
type Page struct {
	Ops []Op
}

// Document is the composed carousel: the cover page followed by one page per
// slide, all letter sized.
type Document struct {
	Pages []Page
}
