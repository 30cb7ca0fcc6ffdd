package ports

import (
	"context"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
)

// DeckRenderer turns a validated, tagged deck into a downloadable document
type DeckRenderer interface {
	// Render serializes the deck
	Render(ctx context.Context, deck *entities.Deck) ([]byte, error)

	// ContentType returns the media type of the rendered document
	ContentType() string

	// Extension returns the file extension, without the dot
	Extension() string
}
