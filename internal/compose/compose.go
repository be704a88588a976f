package compose

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/carousel-generator/internal/assets"
	"github.com/aliskhannn/carousel-generator/internal/model"
	"github.com/aliskhannn/carousel-generator/internal/planner"
	"github.com/aliskhannn/carousel-generator/internal/styles"
	"github.com/aliskhannn/carousel-generator/internal/translate"
)

// Layout policy. Letter pages with a top-left origin; values are points
// unless they are character or line counts.
const (
	coverTitleChars       = 70
	slideTitleChars       = 65
	maxTitleLines         = 2
	bilingualCharsPerLine = 28
	maxBulletUnits        = 10
	minBulletChars        = 10

	coverTitleTop    = 120.0
	coverTitleSize   = 36.0
	coverTitleStep   = 45.0
	coverTitleMargin = 100.0

	coverSubtitleSize     = 18.0
	coverSubtitleMaxWidth = 550.0
	coverSubtitleStep     = 28.0
	coverSubtitleWrapStep = 24.0

	coverImageGap   = 40.0
	coverImageWFrac = 0.85
	coverImageHFrac = 0.40
	coverArtHFrac   = 0.38

	slideTitleTop    = 40.0
	slideTitleSize   = 20.0
	slideTitleStep   = 26.0
	slideTitleBudget = 520.0

	slideSubtitleSize = 14.0
	slideSubtitleStep = 25.0

	slideImageGap   = 15.0
	slideImageWFrac = 0.65
	slideImageHFrac = 0.28

	contentGap          = 50.0
	contentFallbackTop  = 200.0
	contentLead         = 10.0
	labelRise           = 20.0
	dividerBottomMargin = 80.0
	contentBottomMargin = 100.0

	labelTextSize     = 12.0
	bilingualTextSize = 11.0
	bilingualLineStep = 16.0

	bulletTextSize = 13.0
	bulletStep     = 22.0

	columnLeftX = 50.0
	columnPad   = 25.0

	pageIndexInsetX = 60.0
	pageIndexInsetY = 30.0
	pageIndexSize   = 12.0

	borderInset = 10.0
	borderWidth = 3.0
)

const (
	labelEnglish = "English"
	labelSpanish = "Español"
)

// Composer lays a carousel out into page draw lists. It is pure layout: the
// only inputs are the request, the resolved style, the fetched image bytes
// and the translated titles, and the output is a Document ready for
// assembly.
type Composer struct {
	measure measurer
}

// NewComposer creates a composer that sizes text with m.
func NewComposer(m measurer) *Composer {
	return &Composer{measure: m}
}

// CoverTitle returns the display form of a carousel title: the raw title
// when it fits the cover budget, otherwise its condensed summary.
func CoverTitle(title string) string {
	if utf8.RuneCountInString(title) <= coverTitleChars {
		return title
	}
	return summaryTitle(title, coverTitleChars)
}

// Compose builds the whole document: one cover page followed by one page per
// slide. Missing image keys get placeholder art, so composition never fails.
func (c *Composer) Compose(req model.CarouselRequest, style styles.Spec, images map[string][]byte, titles translate.Titles) Document {
	doc := Document{Pages: make([]Page, 0, len(req.Slides)+1)}
	doc.Pages = append(doc.Pages, c.coverPage(req, style, images, titles))
	for i, slide := range req.Slides {
		doc.Pages = append(doc.Pages, c.slidePage(i, len(req.Slides), slide, style, images, titles))
	}
	return doc
}

func (c *Composer) coverPage(req model.CarouselRequest, style styles.Spec, images map[string][]byte, titles translate.Titles) Page {
	ops := []Op{RectOp{W: PageWidth, H: PageHeight, Color: style.Background, Fill: true}}

	cur := coverTitleTop
	for _, line := range wrapByWidth(c.measure, FontBold, coverTitleSize, CoverTitle(req.Title), PageWidth-coverTitleMargin) {
		if line != "" {
			ops = append(ops, c.centered(line, FontBold, coverTitleSize, style.Accent, cur))
		}
		cur += coverTitleStep
	}

	if req.Bilingual() && titles.Cover != "" {
		ops, cur = c.coverSubtitle(ops, titles.Cover, style, cur)
	}

	if op, ok := c.coverImage(images[planner.CoverKey], style, cur); ok {
		ops = append(ops, op)
	}

	return Page{Ops: ops}
}

// coverSubtitle places the Spanish cover title below the main title, split
// over two lines when it overruns the single-line width.
func (c *Composer) coverSubtitle(ops []Op, subtitle string, style styles.Spec, cur float64) ([]Op, float64) {
	if c.measure.WidthOf(FontOblique, coverSubtitleSize, subtitle) <= coverSubtitleMaxWidth {
		ops = append(ops, c.centered(subtitle, FontOblique, coverSubtitleSize, style.Secondary, cur))
		return ops, cur + coverSubtitleStep
	}

	head, tail := splitTwoLines(c.measure, FontOblique, coverSubtitleSize, subtitle, coverSubtitleMaxWidth)
	for _, line := range []string{head, tail} {
		if line == "" {
			continue
		}
		ops = append(ops, c.centered(line, FontOblique, coverSubtitleSize, style.Secondary, cur))
		cur += coverSubtitleWrapStep
	}
	return ops, cur
}

func (c *Composer) slidePage(i, total int, slide model.Slide, style styles.Spec, images map[string][]byte, titles translate.Titles) Page {
	ops := []Op{RectOp{W: PageWidth, H: PageHeight, Color: style.Background, Fill: true}}

	ops = append(ops, TextOp{
		X:     PageWidth - pageIndexInsetX,
		Y:     PageHeight - pageIndexInsetY,
		Text:  fmt.Sprintf("%d/%d", i+1, total),
		Font:  FontRegular,
		Size:  pageIndexSize,
		Color: style.Secondary,
	})

	title := slideTitle(slide)
	cur := slideTitleTop
	lines := wrapByWidth(c.measure, FontBold, slideTitleSize, title, slideTitleBudget)
	if len(lines) > maxTitleLines {
		lines = lines[:maxTitleLines]
	}
	for _, line := range lines {
		if line != "" {
			ops = append(ops, c.centered(line, FontBold, slideTitleSize, style.Accent, cur))
		}
		cur += slideTitleStep
	}

	bilingual := slide.Content.IsBilingual()
	if bilingual {
		ops = append(ops, c.centered(titles.SlideTitle(i, title), FontOblique, slideSubtitleSize, style.Secondary, cur))
		cur += slideSubtitleStep
	}

	contentTop, imgOp, ok := c.slideImage(images[planner.SlideKey(i)], style, cur+slideImageGap)
	if ok {
		ops = append(ops, imgOp)
	}

	if bilingual {
		ops = c.bilingualBody(ops, slide, style, contentTop)
	} else {
		y := contentTop
		for _, unit := range bulletUnits(slide.Content.Text()) {
			ops = append(ops, c.centered("• "+unit, FontRegular, bulletTextSize, style.Text, y))
			y += bulletStep
		}
	}

	ops = append(ops, RectOp{
		X:         borderInset,
		Y:         borderInset,
		W:         PageWidth - 2*borderInset,
		H:         PageHeight - 2*borderInset,
		Color:     style.Accent,
		LineWidth: borderWidth,
	})

	return Page{Ops: ops}
}

// bilingualBody draws the divided two-column layout: column labels and the
// divider sit above the content origin, then both languages run down their
// columns until the bottom margin.
func (c *Composer) bilingualBody(ops []Op, slide model.Slide, style styles.Spec, contentTop float64) []Op {
	divider := PageWidth / 2
	ops = append(ops, LineOp{
		X1:    divider,
		Y1:    contentTop - labelRise,
		X2:    divider,
		Y2:    PageHeight - dividerBottomMargin,
		Color: style.Accent,
		Width: 1,
	})
	ops = append(ops,
		TextOp{X: columnLeftX, Y: contentTop - labelRise, Text: labelEnglish, Font: FontBold, Size: labelTextSize, Color: style.Accent},
		TextOp{X: divider + columnPad, Y: contentTop - labelRise, Text: labelSpanish, Font: FontBold, Size: labelTextSize, Color: style.Accent},
	)

	ops = c.column(ops, ensureTerminal(slide.Content.EN()), style, columnLeftX, contentTop)
	ops = c.column(ops, ensureTerminal(slide.Content.ES()), style, divider+columnPad, contentTop)
	return ops
}

// column draws one language column top to bottom, stopping at the bottom
// margin. Empty wrapped lines still advance the cursor.
func (c *Composer) column(ops []Op, text string, style styles.Spec, x, contentTop float64) []Op {
	y := contentTop + contentLead
	for _, line := range wrapByChars(text, bilingualCharsPerLine) {
		if y > PageHeight-contentBottomMargin {
			break
		}
		if line != "" {
			ops = append(ops, TextOp{X: x, Y: y, Text: line, Font: FontRegular, Size: bilingualTextSize, Color: style.Text})
		}
		y += bilingualLineStep
	}
	return ops
}

// slideTitle picks the display title for a slide: the authored title when it
// is real and fits, a condensed form when it overruns, and a title
// synthesized from the content when the authored one is missing or an
// auto-generated stub.
func slideTitle(slide model.Slide) string {
	title := slide.Title
	if title == "" || strings.HasPrefix(title, translate.AutoTitlePrefix) {
		return summaryTitle(slide.Content.Primary(), slideTitleChars)
	}
	if utf8.RuneCountInString(title) > slideTitleChars {
		return summaryTitle(title, slideTitleChars)
	}
	return title
}

// coverImage resolves the cover art box: fetched bytes are decoded and
// scaled down to fit, missing bytes become generated cover art, and
// undecodable bytes drop the image from the page.
func (c *Composer) coverImage(data []byte, style styles.Spec, cur float64) (ImageOp, bool) {
	top := cur + coverImageGap
	if data == nil {
		artW, artH := PageWidth*coverImageWFrac, PageHeight*coverArtHFrac
		w := int(artW)
		h := int(artH)
		return ImageOp{
			X:   (PageWidth - float64(w)) / 2,
			Y:   top,
			W:   float64(w),
			H:   float64(h),
			PNG: assets.CoverArt(style, w, h),
		}, true
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		zlog.Logger.Warn().Err(err).Msg("compose: cover image undecodable, dropping it")
		return ImageOp{}, false
	}
	maxW, maxH := PageWidth*coverImageWFrac, PageHeight*coverImageHFrac
	fitted := imaging.Fit(img, int(maxW), int(maxH), imaging.Lanczos)
	w, h := fitted.Bounds().Dx(), fitted.Bounds().Dy()
	return ImageOp{
		X:   (PageWidth - float64(w)) / 2,
		Y:   top,
		W:   float64(w),
		H:   float64(h),
		PNG: encodePNG(fitted),
	}, true
}

// slideImage resolves the slide art box and reports where content starts:
// below the image on success, at the fixed fallback offset when the fetched
// bytes cannot be decoded.
func (c *Composer) slideImage(data []byte, style styles.Spec, top float64) (float64, ImageOp, bool) {
	if data == nil {
		artW, artH := PageWidth*slideImageWFrac, PageHeight*slideImageHFrac
		w := int(artW)
		h := int(artH)
		op := ImageOp{
			X:   (PageWidth - float64(w)) / 2,
			Y:   top,
			W:   float64(w),
			H:   float64(h),
			PNG: assets.SlideArt(style, w, h),
		}
		return top + float64(h) + contentGap, op, true
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		zlog.Logger.Warn().Err(err).Msg("compose: slide image undecodable, dropping it")
		return contentFallbackTop, ImageOp{}, false
	}
	maxW, maxH := PageWidth*slideImageWFrac, PageHeight*slideImageHFrac
	fitted := imaging.Fit(img, int(maxW), int(maxH), imaging.Lanczos)
	w, h := fitted.Bounds().Dx(), fitted.Bounds().Dy()
	op := ImageOp{
		X:   (PageWidth - float64(w)) / 2,
		Y:   top,
		W:   float64(w),
		H:   float64(h),
		PNG: encodePNG(fitted),
	}
	return top + float64(h) + contentGap, op, true
}

func (c *Composer) centered(text string, font Font, size float64, color styles.Color, y float64) TextOp {
	w := c.measure.WidthOf(font, size, text)
	return TextOp{X: (PageWidth - w) / 2, Y: y, Text: text, Font: font, Size: size, Color: color}
}

// splitTwoLines splits text into a greedy first line within the budget and a
// second line carrying everything left over.
func splitTwoLines(m measurer, font Font, size float64, text string, budget float64) (string, string) {
	words := strings.Fields(text)
	current := ""
	for i, word := range words {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if m.WidthOf(font, size, test) <= budget {
			current = test
			continue
		}
		return current, strings.Join(words[i:], " ")
	}
	return current, ""
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	_ = imaging.Encode(&buf, img, imaging.PNG)
	return buf.Bytes()
}
