package ports

import (
	"time"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
)

// DeckMetrics receives timings and outcomes of the deck pipeline
type DeckMetrics interface {
	RecordGeneration(duration time.Duration)
	RecordRender(format entities.DeckFormat, duration time.Duration)
	RecordSuccess()
	RecordFailure(kind entities.DeckErrorType)
}
