package entities

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DeckSlideCount is the number of slides every generated lesson deck has
	DeckSlideCount = 5

	// BulletMarker separates bullet points inside a slide's content string
	BulletMarker = "•"
)

// SlideSpec is the structured content of one slide as produced by the model
type SlideSpec struct {
	// Title is required on every slide
	Title string `json:"title"`

	// Subtitle is optional
	Subtitle string `json:"subtitle,omitempty"`

	// Content holds the bullet points, delimited by BulletMarker
	Content string `json:"content,omitempty"`

	// Bullets is the tagged form of Content (populated by TagBullets)
	Bullets []Segment `json:"-"`
}

// IsTitleSlide reports whether the slide at index is the deck's title slide
func IsTitleSlide(index int) bool {
	return index == 0
}

// HasSubtitle reports whether the slide carries a non-blank subtitle
func (s *SlideSpec) HasSubtitle() bool {
	return strings.TrimSpace(s.Subtitle) != ""
}

// HasContent reports whether the slide carries a non-blank content string
func (s *SlideSpec) HasContent() bool {
	return strings.TrimSpace(s.Content) != ""
}

// TagBullets splits Content into tagged segments and stores them in Bullets
func (s *SlideSpec) TagBullets() {
	parts := SplitBullets(s.Content)
	s.Bullets = make([]Segment, 0, len(parts))
	for _, part := range parts {
		s.Bullets = append(s.Bullets, Segment{Text: part, Kind: ClassifyBullet(part)})
	}
}

// Validate checks the slide has the fields the renderer relies on
func (s *SlideSpec) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("slide title cannot be empty")
	}
	return nil
}

// Deck is an ordered lesson deck: index 0 is the title slide, the rest are content slides
type Deck struct {
	Topic  string      `json:"topic"`
	Slides []SlideSpec `json:"slides"`
}

// Validate enforces the fixed deck shape
func (d *Deck) Validate() error {
	if len(d.Slides) != DeckSlideCount {
		return fmt.Errorf("expected %d slides, got %d", DeckSlideCount, len(d.Slides))
	}

	for i := range d.Slides {
		if err := d.Slides[i].Validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i, err)
		}
	}

	return nil
}

// TitleSlide returns the first slide, or nil for an empty deck
func (d *Deck) TitleSlide() *SlideSpec {
	if len(d.Slides) == 0 {
		return nil
	}
	return &d.Slides[0]
}

// SplitBullets splits content on BulletMarker, trims each part and drops empty ones
func SplitBullets(content string) []string {
	var bullets []string
	for _, part := range strings.Split(content, BulletMarker) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			bullets = append(bullets, trimmed)
		}
	}
	return bullets
}
