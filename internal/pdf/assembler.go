package pdf

import (
	"errors"
	"fmt"

	"github.com/signintech/gopdf"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/carousel-generator/internal/compose"
)

// ErrSerialization marks a failure to serialize the finished document.
var ErrSerialization = errors.New("serialize pdf document")

// Assembler renders composed documents into PDF bytes.
type Assembler struct {
	fonts fontSet
}

// NewAssembler loads the configured fonts once; every assembled document
// embeds the same set.
func NewAssembler(cfg FontConfig) (*Assembler, error) {
	fonts, err := loadFonts(cfg)
	if err != nil {
		return nil, fmt.Errorf("assembler: %w", err)
	}
	return &Assembler{fonts: fonts}, nil
}

// Assemble renders the document page by page in order. A failed draw op is
// logged and skipped so one bad image or glyph cannot lose the deck; only
// serialization of the finished document can fail the call.
func (a *Assembler) Assemble(doc compose.Document) ([]byte, error) {
	out := &gopdf.GoPdf{}
	out.Start(gopdf.Config{PageSize: *gopdf.PageSizeLetter})
	if err := a.fonts.register(out); err != nil {
		return nil, fmt.Errorf("assembler: %w", err)
	}

	for i, page := range doc.Pages {
		out.AddPage()
		for _, op := range page.Ops {
			if err := draw(out, op); err != nil {
				zlog.Logger.Warn().Err(err).Int("page", i+1).Msg("assembler: draw failed, op skipped")
			}
		}
	}

	data, err := out.GetBytesPdfReturnErr()
	if err != nil {
		return nil, fmt.Errorf("assembler: %w: %v", ErrSerialization, err)
	}
	return data, nil
}

func draw(out *gopdf.GoPdf, op compose.Op) error {
	switch o := op.(type) {
	case compose.TextOp:
		if err := out.SetFont(familyFor(o.Font), "", o.Size); err != nil {
			return fmt.Errorf("set font: %w", err)
		}
		out.SetTextColor(o.Color.RGB255())
		out.SetXY(o.X, o.Y)
		if err := out.Cell(nil, o.Text); err != nil {
			return fmt.Errorf("draw text: %w", err)
		}
		return nil

	case compose.ImageOp:
		holder, err := gopdf.ImageHolderByBytes(o.PNG)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		if err := out.ImageByHolder(holder, o.X, o.Y, &gopdf.Rect{W: o.W, H: o.H}); err != nil {
			return fmt.Errorf("draw image: %w", err)
		}
		return nil

	case compose.RectOp:
		if o.Fill {
			out.SetFillColor(o.Color.RGB255())
			out.RectFromUpperLeftWithStyle(o.X, o.Y, o.W, o.H, "F")
			return nil
		}
		out.SetStrokeColor(o.Color.RGB255())
		out.SetLineWidth(o.LineWidth)
		out.RectFromUpperLeftWithStyle(o.X, o.Y, o.W, o.H, "D")
		return nil

	case compose.LineOp:
		out.SetStrokeColor(o.Color.RGB255())
		out.SetLineWidth(o.Width)
		out.Line(o.X1, o.Y1, o.X2, o.Y2)
		return nil

	default:
		return fmt.Errorf("unknown draw op %T", op)
	}
}
