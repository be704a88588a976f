package pdf

import (
	"fmt"
	"os"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/aliskhannn/carousel-generator/internal/compose"
)

// Registered font family names, one per document face.
const (
	familyRegular = "sans"
	familyBold    = "sans-bold"
	familyOblique = "sans-oblique"
)

// FontConfig points at the TTF files embedded into every document. Empty
// paths fall back to the bundled Go fonts.
type FontConfig struct {
	Regular string
	Bold    string
	Oblique string
}

type fontSet struct {
	regular []byte
	bold    []byte
	oblique []byte
}

func loadFonts(cfg FontConfig) (fontSet, error) {
	set := fontSet{regular: goregular.TTF, bold: gobold.TTF, oblique: goitalic.TTF}

	for _, f := range []struct {
		path string
		dst  *[]byte
	}{
		{cfg.Regular, &set.regular},
		{cfg.Bold, &set.bold},
		{cfg.Oblique, &set.oblique},
	} {
		if f.path == "" {
			continue
		}
		data, err := os.ReadFile(f.path)
		if err != nil {
			return fontSet{}, fmt.Errorf("read font %s: %w", f.path, err)
		}
		*f.dst = data
	}
	return set, nil
}

// register adds all three faces to a document.
func (s fontSet) register(doc *gopdf.GoPdf) error {
	for _, f := range []struct {
		family string
		data   []byte
	}{
		{familyRegular, s.regular},
		{familyBold, s.bold},
		{familyOblique, s.oblique},
	} {
		if err := doc.AddTTFFontData(f.family, f.data); err != nil {
			return fmt.Errorf("register font %s: %w", f.family, err)
		}
	}
	return nil
}

func familyFor(f compose.Font) string {
	switch f {
	case compose.FontBold:
		return familyBold
	case compose.FontOblique:
		return familyOblique
	default:
		return familyRegular
	}
}
