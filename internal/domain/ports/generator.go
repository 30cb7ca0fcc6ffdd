package ports

import (
	"context"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
)

// TextModel is a generative-language model that completes a prompt
type TextModel interface {
	// Generate sends the prompt and returns the model's raw text
	Generate(ctx context.Context, prompt string) (string, error)
}

// ContentGenerator produces the structured slides of a lesson deck for a topic
type ContentGenerator interface {
	GenerateContent(ctx context.Context, topic string) (*entities.Deck, error)
}
