package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

// PNGContentType is the MIME type of contact sheets
const PNGContentType = "image/png"

// DefaultPixelsPerInch gives 640x360 thumbnails
const DefaultPixelsPerInch = 48

const (
	sheetGutter     = 16
	sheetBackground = "#D9D9D9"
)

// ImageRenderer draws every planned slide as a thumbnail on one PNG contact sheet
type ImageRenderer struct {
	pixelsPerInch float64
	regular       *truetype.Font
	bold          *truetype.Font
}

// NewImageRenderer creates a contact sheet renderer. Non-positive pixelsPerInch uses the default.
func NewImageRenderer(pixelsPerInch int) (*ImageRenderer, error) {
	if pixelsPerInch <= 0 {
		pixelsPerInch = DefaultPixelsPerInch
	}

	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded bold font: %w", err)
	}

	return &ImageRenderer{
		pixelsPerInch: float64(pixelsPerInch),
		regular:       regular,
		bold:          bold,
	}, nil
}

// ContentType returns the MIME type for image exports
func (r *ImageRenderer) ContentType() string {
	return PNGContentType
}

// Extension returns the file extension for image exports
func (r *ImageRenderer) Extension() string {
	return "png"
}

// SlideSize returns the pixel size of one thumbnail
func (r *ImageRenderer) SlideSize() (width, height int) {
	return int(pptx.CanvasWidth * r.pixelsPerInch), int(pptx.CanvasHeight * r.pixelsPerInch)
}

// SlideOrigin returns the top-left pixel of the thumbnail at index
func (r *ImageRenderer) SlideOrigin(index int) (x, y int) {
	_, height := r.SlideSize()
	return sheetGutter, sheetGutter + index*(height+sheetGutter)
}

// Render exports the deck as a PNG contact sheet with slides stacked top to bottom
func (r *ImageRenderer) Render(ctx context.Context, deck *entities.Deck) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if deck == nil || len(deck.Slides) == 0 {
		return nil, errors.New("deck has no slides")
	}

	plans := pptx.PlanDeck(deck)
	width, height := r.SlideSize()
	dc := gg.NewContext(width+2*sheetGutter, sheetGutter+len(plans)*(height+sheetGutter))

	dc.SetHexColor(sheetBackground)
	dc.Clear()

	for i, plan := range plans {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		x, y := r.SlideOrigin(i)
		dc.Push()
		dc.Translate(float64(x), float64(y))
		dc.SetHexColor("#FFFFFF")
		dc.DrawRectangle(0, 0, float64(width), float64(height))
		dc.Fill()
		for _, shape := range plan.Shapes {
			r.drawShape(dc, shape)
		}
		dc.Pop()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *ImageRenderer) drawShape(dc *gg.Context, shape pptx.Shape) {
	px := r.pixelsPerInch
	b := shape.Bounds
	x, y, w, h := b.X*px, b.Y*px, b.W*px, b.H*px

	if shape.Fill != "" {
		r.rect(dc, shape, x, y, w, h)
		dc.SetHexColor("#" + shape.Fill)
		dc.Fill()
	}
	if shape.BorderColor != "" && shape.BorderWidth > 0 {
		r.rect(dc, shape, x, y, w, h)
		dc.SetHexColor("#" + shape.BorderColor)
		dc.SetLineWidth(shape.BorderWidth / pointsPerInch * px)
		dc.Stroke()
	}

	tx := x + shape.Margins.Left*px
	ty := y + shape.Margins.Top*px
	tw := w - (shape.Margins.Left+shape.Margins.Right)*px

	for _, para := range shape.Paragraphs {
		dc.SetFontFace(r.face(para))
		dc.SetHexColor("#" + para.Color)

		align, anchorX, ax := gg.AlignLeft, tx, 0.0
		if para.Centered {
			align, anchorX, ax = gg.AlignCenter, tx+tw/2, 0.5
		}
		dc.DrawStringWrapped(para.Text, anchorX, ty, ax, 0, tw, 1.2, align)

		lines := max(1, len(dc.WordWrap(para.Text, tw)))
		ty += float64(lines) * lineHeight(para.Size) * px
	}
}

func (r *ImageRenderer) rect(dc *gg.Context, shape pptx.Shape, x, y, w, h float64) {
	if shape.Rounded {
		dc.DrawRoundedRectangle(x, y, w, h, 0.1*r.pixelsPerInch)
		return
	}
	dc.DrawRectangle(x, y, w, h)
}

// face returns the font face for a paragraph at thumbnail scale
func (r *ImageRenderer) face(para pptx.Paragraph) font.Face {
	f := r.regular
	if para.Bold {
		f = r.bold
	}
	return truetype.NewFace(f, &truetype.Options{
		Size: float64(para.Size) / pointsPerInch * r.pixelsPerInch,
	})
}

var _ ports.DeckRenderer = (*ImageRenderer)(nil)
