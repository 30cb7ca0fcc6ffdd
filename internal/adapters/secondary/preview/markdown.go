package preview

import (
	"context"
	"errors"
	"strings"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

// MarkdownContentType is the media type of the markdown outline
const MarkdownContentType = "text/markdown; charset=utf-8"

const slideSeparator = "---"

// MarkdownRenderer renders a deck as a markdown outline, one section per slide
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a markdown outline renderer
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// ContentType returns the markdown media type
func (r *MarkdownRenderer) ContentType() string {
	return MarkdownContentType
}

// Extension returns "md"
func (r *MarkdownRenderer) Extension() string {
	return "md"
}

// Render writes the outline
func (r *MarkdownRenderer) Render(ctx context.Context, deck *entities.Deck) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := Outline(deck)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// Outline returns the markdown text of deck
func Outline(deck *entities.Deck) (string, error) {
	if deck == nil || len(deck.Slides) == 0 {
		return "", errors.New("deck has no slides")
	}

	sections := make([]string, 0, len(deck.Slides))
	for i := range deck.Slides {
		sections = append(sections, slideSection(&deck.Slides[i]))
	}

	return strings.Join(sections, "\n\n"+slideSeparator+"\n\n") + "\n", nil
}

func slideSection(slide *entities.SlideSpec) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(singleLine(slide.Title))

	if slide.HasSubtitle() {
		b.WriteString("\n\n## ")
		b.WriteString(singleLine(slide.Subtitle))
	}

	bullets := slide.Bullets
	if bullets == nil {
		for _, part := range entities.SplitBullets(slide.Content) {
			bullets = append(bullets, entities.Segment{Text: part, Kind: entities.ClassifyBullet(part)})
		}
	}
	if len(bullets) > 0 {
		b.WriteString("\n")
		for _, seg := range bullets {
			b.WriteString("\n- ")
			b.WriteString(bulletText(seg))
		}
	}

	return b.String()
}

// bulletText emphasizes the first line of question and activity bullets.
// Continuation lines such as "  - point" stay as nested list items.
func bulletText(seg entities.Segment) string {
	first, rest, found := strings.Cut(seg.Text, "\n")
	first = strings.TrimSpace(first)
	if seg.Emphasized() && first != "" {
		first = "**" + first + "**"
	}
	if !found {
		return first
	}
	return first + "\n" + strings.TrimRight(rest, " \t")
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var _ ports.DeckRenderer = (*MarkdownRenderer)(nil)
