package styles

// Color is an RGB triple with channels in the 0..1 range.
type Color struct {
	R, G, B float64
}

// RGB255 returns the color quantized to 8-bit channels for the PDF layer.
func (c Color) RGB255() (uint8, uint8, uint8) {
	return uint8(c.R*255 + 0.5), uint8(c.G*255 + 0.5), uint8(c.B*255 + 0.5)
}

// ArtPalette holds the colors used for procedural placeholder art.
type ArtPalette struct {
	GradientStart  Color // slide art: top of the vertical gradient
	GradientEnd    Color // slide art: bottom of the vertical gradient
	GradientAccent Color // slide art: circles and midline

	CoverDeep   Color // cover art: three-stop gradient, top
	CoverMid    Color // cover art: gradient middle stop
	CoverHigh   Color // cover art: gradient bottom stop
	CoverAccent Color // cover art: curves, rings, bottom bar
}

// Spec is the complete visual theme for one named style: page colors, the
// prompt descriptor used for image generation, and placeholder art colors.
type Spec struct {
	Name       string
	Background Color
	Accent     Color
	Text       Color
	Secondary  Color
	Descriptor string
	Art        ArtPalette
}

// Default is the style applied when a request names an unknown style.
const Default = "professional"

var catalog = map[string]Spec{
	"professional": {
		Name:       "professional",
		Background: Color{0.12, 0.12, 0.12},
		Accent:     Color{0.29, 0.62, 1.0},
		Text:       Color{1, 1, 1},
		Secondary:  Color{0.8, 0.8, 0.8},
		Descriptor: "clean, modern, professional business",
		Art: ArtPalette{
			GradientStart:  rgb255(15, 25, 50),
			GradientEnd:    rgb255(30, 80, 160),
			GradientAccent: rgb255(74, 158, 255),
			CoverDeep:      rgb255(8, 15, 40),
			CoverMid:       rgb255(20, 60, 130),
			CoverHigh:      rgb255(45, 100, 200),
			CoverAccent:    rgb255(74, 158, 255),
		},
	},
	"relaxed": {
		Name:       "relaxed",
		Background: Color{0.95, 0.94, 0.92},
		Accent:     Color{0.4, 0.7, 0.5},
		Text:       Color{0.2, 0.2, 0.2},
		Secondary:  Color{0.4, 0.4, 0.4},
		Descriptor: "warm, natural, organic",
		Art: ArtPalette{
			GradientStart:  rgb255(220, 230, 215),
			GradientEnd:    rgb255(180, 210, 190),
			GradientAccent: rgb255(102, 179, 128),
			CoverDeep:      rgb255(200, 215, 195),
			CoverMid:       rgb255(160, 195, 170),
			CoverHigh:      rgb255(120, 180, 140),
			CoverAccent:    rgb255(80, 160, 100),
		},
	},
	"corporate": {
		Name:       "corporate",
		Background: Color{0.05, 0.08, 0.15},
		Accent:     Color{0.0, 0.4, 0.7},
		Text:       Color{1, 1, 1},
		Secondary:  Color{0.7, 0.7, 0.7},
		Descriptor: "sleek, corporate, executive",
		Art: ArtPalette{
			GradientStart:  rgb255(10, 15, 35),
			GradientEnd:    rgb255(20, 50, 100),
			GradientAccent: rgb255(0, 102, 179),
			CoverDeep:      rgb255(5, 10, 25),
			CoverMid:       rgb255(15, 35, 80),
			CoverHigh:      rgb255(25, 60, 120),
			CoverAccent:    rgb255(0, 100, 180),
		},
	},
	"creative": {
		Name:       "creative",
		Background: Color{0.15, 0.05, 0.2},
		Accent:     Color{0.9, 0.3, 0.6},
		Text:       Color{1, 1, 1},
		Secondary:  Color{0.9, 0.9, 0.9},
		Descriptor: "vibrant, artistic, creative",
		Art: ArtPalette{
			GradientStart:  rgb255(40, 10, 55),
			GradientEnd:    rgb255(80, 20, 100),
			GradientAccent: rgb255(230, 77, 153),
			CoverDeep:      rgb255(30, 5, 45),
			CoverMid:       rgb255(65, 15, 85),
			CoverHigh:      rgb255(120, 30, 130),
			CoverAccent:    rgb255(230, 80, 160),
		},
	},
	"minimal": {
		Name:       "minimal",
		Background: Color{1, 1, 1},
		Accent:     Color{0, 0, 0},
		Text:       Color{0, 0, 0},
		Secondary:  Color{0.5, 0.5, 0.5},
		Descriptor: "minimalist, simple, clean",
		Art: ArtPalette{
			GradientStart:  rgb255(240, 240, 245),
			GradientEnd:    rgb255(220, 225, 235),
			GradientAccent: rgb255(100, 100, 120),
			CoverDeep:      rgb255(245, 245, 250),
			CoverMid:       rgb255(230, 232, 240),
			CoverHigh:      rgb255(210, 215, 228),
			CoverAccent:    rgb255(120, 125, 145),
		},
	},
}

// Resolve maps a style name to its Spec. Unknown names resolve to the
// professional spec, never an error.
func Resolve(name string) Spec {
	if s, ok := catalog[name]; ok {
		return s
	}
	return catalog[Default]
}

func rgb255(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}
