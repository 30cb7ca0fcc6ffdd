package pptx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

// ContentType is the media type of a PowerPoint 2007+ document
const ContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

const (
	emuPerInch  = 914400
	emuPerPoint = 12700
)

// Renderer writes decks as .pptx documents
type Renderer struct {
	creator string
	logger  ports.Logger
}

// NewRenderer creates a pptx renderer. creator is stored in the document properties.
func NewRenderer(creator string, logger ports.Logger) *Renderer {
	return &Renderer{creator: creator, logger: logger}
}

// ContentType returns the pptx media type
func (r *Renderer) ContentType() string {
	return ContentType
}

// Extension returns "pptx"
func (r *Renderer) Extension() string {
	return "pptx"
}

// Render lays out deck and serializes it
func (r *Renderer) Render(ctx context.Context, deck *entities.Deck) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if deck == nil || len(deck.Slides) == 0 {
		return nil, errors.New("deck has no slides")
	}

	plans := PlanDeck(deck)
	r.logger.Debug("Planned %d slides for %q", len(plans), deck.Topic)

	p := ppt.New()
	p.GetLayout().SetLayout(ppt.LayoutScreen16x9)
	title := deck.Topic
	if title == "" {
		title = deck.TitleSlide().Title
	}
	p.GetDocumentProperties().Title = title
	p.GetDocumentProperties().Creator = r.creator

	for i, plan := range plans {
		var slide *ppt.Slide
		if i == 0 {
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}
		for _, shape := range plan.Shapes {
			drawShape(slide, shape)
		}
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("creating pptx writer: %w", err)
	}

	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing pptx: %w", err)
	}

	return buf.Bytes(), nil
}

func drawShape(slide *ppt.Slide, shape Shape) {
	bounds := shape.Bounds

	if shape.Rounded || shape.BorderWidth > 0 {
		panel := slide.CreateAutoShape()
		if shape.Rounded {
			panel.SetAutoShapeType(ppt.AutoShapeRoundedRect)
		}
		placeShape(&panel.BaseShape, bounds)
		if shape.Fill != "" {
			panel.SetFill(solidFill(shape.Fill))
		}
		if shape.BorderColor != "" && shape.BorderWidth > 0 {
			panel.GetBorder().
				SetSolidFill(ppt.NewColor("FF" + shape.BorderColor)).
				SetWidth(int(math.Round(shape.BorderWidth * emuPerPoint)))
		}
		if len(shape.Paragraphs) > 0 {
			writeText(slide, inset(bounds, shape.Margins), shape)
		}
		return
	}

	body := addRect(slide, bounds)
	if shape.Fill != "" {
		body.SetFill(solidFill(shape.Fill))
	}
	if len(shape.Paragraphs) == 0 {
		return
	}
	if shape.Margins != (Insets{}) {
		writeText(slide, inset(bounds, shape.Margins), shape)
		return
	}
	body.SetWordWrap(shape.WordWrap)
	writeParagraphs(body, shape.Paragraphs)
}

func writeText(slide *ppt.Slide, bounds Rect, shape Shape) {
	text := addRect(slide, bounds)
	text.SetWordWrap(shape.WordWrap)
	writeParagraphs(text, shape.Paragraphs)
}

func writeParagraphs(shape *ppt.RichTextShape, paragraphs []Paragraph) {
	for i, para := range paragraphs {
		if i > 0 {
			shape.CreateParagraph()
		}
		run := shape.CreateTextRun(para.Text)
		run.GetFont().
			SetSize(para.Size).
			SetBold(para.Bold).
			SetColor(ppt.NewColor("FF" + para.Color))
		if para.Centered {
			shape.GetActiveParagraph().SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
		}
	}
}

func addRect(slide *ppt.Slide, r Rect) *ppt.RichTextShape {
	shape := slide.CreateRichTextShape()
	placeShape(&shape.BaseShape, r)
	return shape
}

func placeShape(shape *ppt.BaseShape, r Rect) {
	shape.SetPosition(toEMU(r.X), toEMU(r.Y)).SetSize(toEMU(r.W), toEMU(r.H))
}

func solidFill(rgb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor("FF" + rgb))
}

func inset(r Rect, in Insets) Rect {
	return Rect{
		X: r.X + in.Left,
		Y: r.Y + in.Top,
		W: r.W - in.Left - in.Right,
		H: r.H - in.Top - in.Bottom,
	}
}

// toEMU converts canvas inches to EMU
func toEMU(inches float64) int64 {
	return int64(math.Round(inches * emuPerInch))
}

var _ ports.DeckRenderer = (*Renderer)(nil)
