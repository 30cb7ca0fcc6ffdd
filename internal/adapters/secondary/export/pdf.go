package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

// PDFContentType is the MIME type of PDF decks
const PDFContentType = "application/pdf"

// PDFRenderer draws the planned slides as pages of a PDF, one page per slide
type PDFRenderer struct {
	creator string
}

// NewPDFRenderer creates a PDF renderer
func NewPDFRenderer(creator string) *PDFRenderer {
	return &PDFRenderer{creator: creator}
}

// ContentType returns the MIME type for PDF exports
func (r *PDFRenderer) ContentType() string {
	return PDFContentType
}

// Extension returns the file extension for PDF exports
func (r *PDFRenderer) Extension() string {
	return "pdf"
}

// Render exports the deck to PDF
func (r *PDFRenderer) Render(ctx context.Context, deck *entities.Deck) ([]byte, error) {
	pdf, err := r.document(ctx, deck)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// document lays out every slide on its own canvas-sized page
func (r *PDFRenderer) document(ctx context.Context, deck *entities.Deck) (*gofpdf.Fpdf, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if deck == nil || len(deck.Slides) == 0 {
		return nil, errors.New("deck has no slides")
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: pptx.CanvasWidth, Ht: pptx.CanvasHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(r.creator, true)
	pdf.SetTitle(deck.Topic, true)

	// Core fonts are cp1252; the bullet and smart quotes survive the translation.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, plan := range pptx.PlanDeck(deck) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pdf.AddPage()
		for _, shape := range plan.Shapes {
			if err := drawPDFShape(pdf, shape, tr); err != nil {
				return nil, fmt.Errorf("slide %d: %w", plan.Index+1, err)
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("building pdf: %w", err)
	}
	return pdf, nil
}

func drawPDFShape(pdf *gofpdf.Fpdf, shape pptx.Shape, tr func(string) string) error {
	b := shape.Bounds

	style := ""
	if shape.Fill != "" {
		r, g, bl, err := parseHex(shape.Fill)
		if err != nil {
			return err
		}
		pdf.SetFillColor(r, g, bl)
		style += "F"
	}
	if shape.BorderColor != "" && shape.BorderWidth > 0 {
		r, g, bl, err := parseHex(shape.BorderColor)
		if err != nil {
			return err
		}
		pdf.SetDrawColor(r, g, bl)
		pdf.SetLineWidth(shape.BorderWidth / pointsPerInch)
		style += "D"
	}
	if style != "" {
		pdf.Rect(b.X, b.Y, b.W, b.H, style)
	}

	x := b.X + shape.Margins.Left
	y := b.Y + shape.Margins.Top
	width := b.W - shape.Margins.Left - shape.Margins.Right

	for _, para := range shape.Paragraphs {
		r, g, bl, err := parseHex(para.Color)
		if err != nil {
			return err
		}
		fontStyle := ""
		if para.Bold {
			fontStyle = "B"
		}
		align := "L"
		if para.Centered {
			align = "C"
		}

		pdf.SetFont("Helvetica", fontStyle, float64(para.Size))
		pdf.SetTextColor(r, g, bl)
		pdf.SetXY(x, y)
		pdf.MultiCell(width, lineHeight(para.Size), tr(para.Text), "", align, false)
		y = pdf.GetY()
	}

	return nil
}

var _ ports.DeckRenderer = (*PDFRenderer)(nil)
