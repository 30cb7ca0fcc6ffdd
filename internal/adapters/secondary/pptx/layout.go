package pptx

import (
	"strconv"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
)

// Canvas size of the planned slides, in inches
const (
	CanvasWidth  = 13.333
	CanvasHeight = 7.5
)

// Palette, as RGB hex
const (
	ThemeColor    = "2F5597"
	AccentColor   = "C00000"
	TextColor     = "000000"
	QuestionColor = "7030A0"
	ActivityColor = "00B050"
	PanelColor    = "F2F2F2"
	FooterColor   = "FFFFFF"
)

// Font sizes in points
const (
	titleSlideTitleSize    = 54
	titleSlideSubtitleSize = 32
	contentTitleSize       = 44
	contentSubtitleSize    = 28
	bulletSize             = 24
	footerSize             = 18
)

// Panel border width in points
const panelBorderWidth = 2.0

// Rect is a position and size in inches
type Rect struct {
	X, Y, W, H float64
}

// Insets are text margins inside a shape, in inches
type Insets struct {
	Left, Right, Top, Bottom float64
}

// Paragraph is one run of styled text
type Paragraph struct {
	Text     string
	Size     int
	Bold     bool
	Color    string
	Centered bool
}

// ShapeKind names the role of a planned shape
type ShapeKind string

const (
	ShapeBand     ShapeKind = "band"
	ShapeSidebar  ShapeKind = "sidebar"
	ShapeTitle    ShapeKind = "title"
	ShapeSubtitle ShapeKind = "subtitle"
	ShapePanel    ShapeKind = "panel"
	ShapeFooter   ShapeKind = "footer"
)

// Shape is a rectangle with optional fill, border and paragraphs
type Shape struct {
	Kind        ShapeKind
	Bounds      Rect
	Fill        string
	BorderColor string
	BorderWidth float64
	Rounded     bool
	WordWrap    bool
	Margins     Insets
	Paragraphs  []Paragraph
}

// SlidePlan is the ordered list of shapes making up one slide
type SlidePlan struct {
	Index  int
	Shapes []Shape
}

// Find returns the first shape of kind, or nil
func (p *SlidePlan) Find(kind ShapeKind) *Shape {
	for i := range p.Shapes {
		if p.Shapes[i].Kind == kind {
			return &p.Shapes[i]
		}
	}
	return nil
}

// PlanDeck lays out every slide of deck. It is a pure function of the deck.
func PlanDeck(deck *entities.Deck) []SlidePlan {
	plans := make([]SlidePlan, 0, len(deck.Slides))
	for i := range deck.Slides {
		slide := &deck.Slides[i]
		if entities.IsTitleSlide(i) {
			plans = append(plans, planTitleSlide(slide))
			continue
		}
		plans = append(plans, planContentSlide(i, slide))
	}
	return plans
}

func planTitleSlide(slide *entities.SlideSpec) SlidePlan {
	plan := SlidePlan{Index: 0}

	plan.Shapes = append(plan.Shapes,
		Shape{Kind: ShapeBand, Bounds: Rect{0, 5.5, CanvasWidth, 2}, Fill: ThemeColor},
		Shape{
			Kind:   ShapeTitle,
			Bounds: Rect{0.5, 5.75, CanvasWidth - 1, 1.5},
			Paragraphs: []Paragraph{{
				Text: slide.Title, Size: titleSlideTitleSize, Bold: true, Color: TextColor, Centered: true,
			}},
		},
	)

	if slide.HasSubtitle() {
		plan.Shapes = append(plan.Shapes, Shape{
			Kind:   ShapeSubtitle,
			Bounds: Rect{1, 3.5, 11.333, 1},
			Paragraphs: []Paragraph{{
				Text: slide.Subtitle, Size: titleSlideSubtitleSize, Color: AccentColor, Centered: true,
			}},
		})
	}

	return plan
}

func planContentSlide(index int, slide *entities.SlideSpec) SlidePlan {
	plan := SlidePlan{Index: index}

	plan.Shapes = append(plan.Shapes,
		Shape{Kind: ShapeSidebar, Bounds: Rect{0, 0, 2, CanvasHeight}, Fill: ThemeColor},
		Shape{
			Kind:   ShapeTitle,
			Bounds: Rect{2.5, 0.5, 10, 1},
			Paragraphs: []Paragraph{{
				Text: slide.Title, Size: contentTitleSize, Bold: true, Color: TextColor,
			}},
		},
	)

	top := 1.5
	if slide.HasSubtitle() {
		plan.Shapes = append(plan.Shapes, Shape{
			Kind:   ShapeSubtitle,
			Bounds: Rect{2.5, 1.5, 10, 0.5},
			Paragraphs: []Paragraph{{
				Text: slide.Subtitle, Size: contentSubtitleSize, Color: AccentColor,
			}},
		})
		top = 2
	}

	if slide.HasContent() {
		bullets := slide.Bullets
		if bullets == nil {
			for _, part := range entities.SplitBullets(slide.Content) {
				bullets = append(bullets, entities.Segment{Text: part, Kind: entities.ClassifyBullet(part)})
			}
		}

		panel := Shape{
			Kind:        ShapePanel,
			Bounds:      Rect{2.5, top, 10, 5},
			Fill:        PanelColor,
			BorderColor: ThemeColor,
			BorderWidth: panelBorderWidth,
			Rounded:     true,
			WordWrap:    true,
			Margins:     Insets{Left: 0.2, Right: 0.2, Top: 0.1, Bottom: 0.1},
		}
		for _, seg := range bullets {
			panel.Paragraphs = append(panel.Paragraphs, bulletParagraph(seg))
		}
		plan.Shapes = append(plan.Shapes, panel)
	}

	plan.Shapes = append(plan.Shapes, Shape{
		Kind:   ShapeFooter,
		Bounds: Rect{0.5, 6.8, 1, 0.5},
		Paragraphs: []Paragraph{{
			Text: strconv.Itoa(index), Size: footerSize, Color: FooterColor, Centered: true,
		}},
	})

	return plan
}

func bulletParagraph(seg entities.Segment) Paragraph {
	p := Paragraph{Text: seg.Text, Size: bulletSize, Color: TextColor}
	switch seg.Kind {
	case entities.SegmentQuestion:
		p.Color = QuestionColor
		p.Bold = true
	case entities.SegmentActivity:
		p.Color = ActivityColor
		p.Bold = true
	}
	return p
}
