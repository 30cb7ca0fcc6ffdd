package ports

import (
	"context"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
)

// DeckService runs the full topic-to-document pipeline
type DeckService interface {
	// Generate validates the request, generates and renders the deck and stores the result
	Generate(ctx context.Context, req entities.DeckRequest) (*entities.Artifact, error)

	// Discard releases an artifact once it has been delivered
	Discard(artifact *entities.Artifact)
}
