package builders

import (
	"encoding/json"
	"strings"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
)

// DeckBuilder helps build Deck entities for testing
type DeckBuilder struct {
	deck *entities.Deck
}

// NewDeckBuilder creates a new deck builder with a complete five-slide lesson
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{
		deck: &entities.Deck{
			Topic: "Photosynthesis",
			Slides: []entities.SlideSpec{
				{Title: "Photosynthesis", Subtitle: "How plants make food"},
				{
					Title:    "Let's Get Started!",
					Subtitle: "Starter Activity",
					Content:  "• Think-Pair-Share Activity:\n• Question: where does a tree get its mass?\n• Discuss with your partner",
				},
				{
					Title:    "Main Content",
					Subtitle: "Understanding chlorophyll",
					Content:  "• Chlorophyll absorbs light\n• Light energy splits water\n• Knowledge Check: what gas is released?",
				},
				{
					Title:    "Exploring Further",
					Subtitle: "Real-world Applications",
					Content:  "• Greenhouses raise CO2\n• Knowledge Check: why do farmers heat greenhouses?",
				},
				{
					Title:    "Plenary",
					Subtitle: "Let's Review",
					Content:  "• What have we learned today?\n• Key takeaways:\n  - Light is needed\n  - Glucose is made\n• Exit Ticket: write the word equation",
				},
			},
		},
	}
}

// WithTopic sets the deck topic and the title slide heading
func (b *DeckBuilder) WithTopic(topic string) *DeckBuilder {
	b.deck.Topic = topic
	b.deck.Slides[0].Title = topic
	return b
}

// WithSlide replaces the slide at index
func (b *DeckBuilder) WithSlide(index int, slide entities.SlideSpec) *DeckBuilder {
	b.deck.Slides[index] = slide
	return b
}

// WithoutSubtitles clears every slide's subtitle
func (b *DeckBuilder) WithoutSubtitles() *DeckBuilder {
	for i := range b.deck.Slides {
		b.deck.Slides[i].Subtitle = ""
	}
	return b
}

// WithSlideCount truncates or pads the deck, which makes it invalid for anything but five
func (b *DeckBuilder) WithSlideCount(count int) *DeckBuilder {
	for len(b.deck.Slides) < count {
		b.deck.Slides = append(b.deck.Slides, entities.SlideSpec{Title: "Extra", Content: "• more"})
	}
	b.deck.Slides = b.deck.Slides[:count]
	return b
}

// Build creates the final Deck with tagged bullets
func (b *DeckBuilder) Build() *entities.Deck {
	slides := make([]entities.SlideSpec, len(b.deck.Slides))
	copy(slides, b.deck.Slides)
	for i := range slides {
		slides[i].TagBullets()
	}
	return &entities.Deck{Topic: b.deck.Topic, Slides: slides}
}

// JSON renders the deck's slides the way the model returns them
func (b *DeckBuilder) JSON() string {
	data, err := json.Marshal(b.deck.Slides)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Fenced wraps the slides JSON in a markdown code fence
func (b *DeckBuilder) Fenced() string {
	return "```json\n" + b.JSON() + "\n```"
}

// Unbracketed drops the enclosing brackets from the slides JSON
func (b *DeckBuilder) Unbracketed() string {
	return strings.TrimSuffix(strings.TrimPrefix(b.JSON(), "["), "]")
}

// MinimalDeck creates a valid deck with the default lesson content
func MinimalDeck() *entities.Deck {
	return NewDeckBuilder().Build()
}
