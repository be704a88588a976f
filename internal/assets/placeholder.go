package assets

import (
	"bytes"
	"hash/fnv"
	"image"
	"math"
	"math/rand"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/aliskhannn/carousel-generator/internal/styles"
)

// SlideArt renders placeholder art for a slide image box: a vertical themed
// gradient with diagonal hatching, seeded accent circles, and a midline.
// It never fails; identical arguments produce byte-identical PNG output,
// with the random seed derived from the style name alone.
func SlideArt(style styles.Spec, width, height int) []byte {
	pal := style.Art
	dc := gg.NewContext(width, height)

	// Vertical gradient, drawn row by row.
	for y := 0; y < height; y++ {
		c := lerpColor(pal.GradientStart, pal.GradientEnd, float64(y)/float64(height))
		dc.SetRGB(c.R, c.G, c.B)
		dc.DrawRectangle(0, float64(y), float64(width), 1)
		dc.Fill()
	}

	// Diagonal hatching.
	dc.SetRGBA(1, 1, 1, 6.0/255)
	dc.SetLineWidth(1)
	for i := 0; i < width+height; i += 60 {
		dc.DrawLine(float64(i-height), 0, float64(i), float64(height))
		dc.Stroke()
	}

	// Seeded accent circles within the inner 80% box.
	rng := rand.New(rand.NewSource(seed(style.Name)))
	ac := pal.GradientAccent
	dc.SetRGBA(ac.R, ac.G, ac.B, 25.0/255)
	dc.SetLineWidth(2)
	for i := 0; i < 3; i++ {
		cx := randBetween(rng, int(float64(width)*0.1), int(float64(width)*0.9))
		cy := randBetween(rng, int(float64(height)*0.1), int(float64(height)*0.9))
		r := randBetween(rng, 30, 80)
		dc.DrawCircle(float64(cx), float64(cy), float64(r))
		dc.Stroke()
	}

	// Horizontal accent midline.
	dc.SetRGBA(ac.R, ac.G, ac.B, 20.0/255)
	dc.SetLineWidth(1)
	mid := float64(height / 2)
	dc.DrawLine(float64(width)*0.15, mid, float64(width)*0.85, mid)
	dc.Stroke()

	return encodePNG(dc.Image())
}

// CoverArt renders the richer cover-page variant: a blurred three-stop
// gradient decorated with a dot grid, seeded sine curves, glass circles,
// and a bottom accent bar. Never fails; deterministic like SlideArt.
func CoverArt(style styles.Spec, width, height int) []byte {
	pal := style.Art
	dc := gg.NewContext(width, height)

	// Three-stop vertical gradient: deep to mid over the top half,
	// mid to high over the bottom.
	for y := 0; y < height; y++ {
		f := float64(y) / float64(height)
		var c styles.Color
		if f < 0.5 {
			c = lerpColor(pal.CoverDeep, pal.CoverMid, f*2)
		} else {
			c = lerpColor(pal.CoverMid, pal.CoverHigh, (f-0.5)*2)
		}
		dc.SetRGB(c.R, c.G, c.B)
		dc.DrawRectangle(0, float64(y), float64(width), 1)
		dc.Fill()
	}

	// Soften banding before decorating.
	dc = gg.NewContextForImage(imaging.Blur(dc.Image(), 2))

	// Dot grid.
	dc.SetRGBA(1, 1, 1, 8.0/255)
	for x := 0; x < width; x += 40 {
		for y := 0; y < height; y += 40 {
			dc.DrawCircle(float64(x), float64(y), 1)
			dc.Fill()
		}
	}

	rng := rand.New(rand.NewSource(seed(style.Name) + 42))
	ac := pal.CoverAccent

	// Flowing sine curves across thirds of the height.
	dc.SetRGBA(ac.R, ac.G, ac.B, 18.0/255)
	dc.SetLineWidth(2)
	for curve := 0; curve < 3; curve++ {
		base := float64(height) * (0.25 + float64(curve)*0.25)
		for x := 0; x < width; x += 4 {
			y := base + math.Sin(float64(x)/80+float64(curve)*2)*30 + math.Cos(float64(x)/120)*15
			if x == 0 {
				dc.MoveTo(0, y)
			} else {
				dc.LineTo(float64(x), y)
			}
		}
		dc.Stroke()
	}

	// Glass circles with inner rings.
	for i := 0; i < 5; i++ {
		cx := float64(randBetween(rng, 0, width))
		cy := float64(randBetween(rng, 0, height))
		r := float64(randBetween(rng, 40, 120))

		dc.SetRGBA(ac.R, ac.G, ac.B, 15.0/255)
		dc.SetLineWidth(2)
		dc.DrawCircle(cx, cy, r)
		dc.Stroke()

		dc.SetRGBA(1, 1, 1, 8.0/255)
		dc.SetLineWidth(1)
		dc.DrawCircle(cx, cy, r*0.7)
		dc.Stroke()
	}

	// Bottom accent bar.
	dc.SetRGBA(ac.R, ac.G, ac.B, 40.0/255)
	dc.DrawRectangle(float64(width)*0.1, float64(height)-14, float64(width)*0.8, 4)
	dc.Fill()

	return encodePNG(dc.Image())
}

func seed(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))

	return int64(h.Sum64())
}

func lerpColor(a, b styles.Color, t float64) styles.Color {
	return styles.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

// randBetween returns a value in [lo, hi], both ends inclusive.
func randBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}

	return lo + rng.Intn(hi-lo+1)
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	_ = imaging.Encode(&buf, img, imaging.PNG)

	return buf.Bytes()
}
