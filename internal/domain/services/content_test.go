package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/test/builders"
)

func TestNormalizeResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "already an array", raw: `[{"title":"A"}]`, want: `[{"title":"A"}]`},
		{name: "missing brackets", raw: `{"title":"A"},{"title":"B"}`, want: `[{"title":"A"},{"title":"B"}]`},
		{name: "missing closing bracket", raw: `[{"title":"A"}`, want: `[{"title":"A"}]`},
		{name: "fenced", raw: "```json\n[{\"title\":\"A\"}]\n```", want: `[{"title":"A"}]`},
		{name: "bare fence", raw: "```\n{\"title\":\"A\"}\n```", want: `[{"title":"A"}]`},
		{name: "surrounding whitespace", raw: "  \n[{\"title\":\"A\"}]\n ", want: `[{"title":"A"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeResponse(tt.raw))
		})
	}
}

func TestParseSlides(t *testing.T) {
	t.Run("object list without brackets", func(t *testing.T) {
		slides, err := ParseSlides(`{"title":"A"},{"title":"B"}`)

		require.NoError(t, err)
		require.Len(t, slides, 2)
		assert.Equal(t, "A", slides[0].Title)
		assert.Equal(t, "B", slides[1].Title)
	})

	t.Run("invalid json is a parse error carrying the normalized text", func(t *testing.T) {
		_, err := ParseSlides(`{"title": oops}`)

		require.Error(t, err)
		var deckErr *entities.DeckError
		require.True(t, errors.As(err, &deckErr))
		assert.Equal(t, entities.ErrorTypeParse, deckErr.Type)
		assert.Equal(t, `[{"title": oops}]`, deckErr.Raw)
		assert.Contains(t, err.Error(), "Failed to parse AI response into valid JSON")
	})
}

func TestContentService_GenerateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("fenced reply becomes a tagged deck", func(t *testing.T) {
		model := new(MockTextModel)
		model.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
			return assert.ObjectsAreEqual(BuildPrompt("Photosynthesis"), p)
		})).Return(builders.NewDeckBuilder().Fenced(), nil)

		svc := NewContentService(model, testLogger(), 0)
		deck, err := svc.GenerateContent(ctx, "Photosynthesis")

		require.NoError(t, err)
		assert.Equal(t, "Photosynthesis", deck.Topic)
		require.Len(t, deck.Slides, entities.DeckSlideCount)
		require.Len(t, deck.Slides[2].Bullets, 3)
		assert.Equal(t, entities.SegmentQuestion, deck.Slides[2].Bullets[2].Kind)
		model.AssertExpectations(t)
	})

	t.Run("reply without brackets is accepted", func(t *testing.T) {
		model := new(MockTextModel)
		model.On("Generate", mock.Anything, mock.Anything).Return(builders.NewDeckBuilder().Unbracketed(), nil)

		deck, err := NewContentService(model, testLogger(), 0).GenerateContent(ctx, "Photosynthesis")

		require.NoError(t, err)
		assert.Len(t, deck.Slides, entities.DeckSlideCount)
	})

	t.Run("wrong slide count is a schema error", func(t *testing.T) {
		model := new(MockTextModel)
		model.On("Generate", mock.Anything, mock.Anything).Return(builders.NewDeckBuilder().WithSlideCount(4).JSON(), nil)

		_, err := NewContentService(model, testLogger(), 0).GenerateContent(ctx, "Photosynthesis")

		require.Error(t, err)
		assert.Equal(t, entities.ErrorTypeSchema, entities.ErrorTypeOf(err))
		assert.Contains(t, err.Error(), "expected 5 slides, got 4")
	})

	t.Run("invalid json is a parse error", func(t *testing.T) {
		model := new(MockTextModel)
		model.On("Generate", mock.Anything, mock.Anything).Return("Sorry, I cannot help with that.", nil)

		_, err := NewContentService(model, testLogger(), 0).GenerateContent(ctx, "Photosynthesis")

		require.Error(t, err)
		assert.Equal(t, entities.ErrorTypeParse, entities.ErrorTypeOf(err))
	})

	t.Run("model failure is a generation error", func(t *testing.T) {
		cause := errors.New("quota exceeded")
		model := new(MockTextModel)
		model.On("Generate", mock.Anything, mock.Anything).Return("", cause)

		_, err := NewContentService(model, testLogger(), 0).GenerateContent(ctx, "Photosynthesis")

		require.Error(t, err)
		assert.Equal(t, entities.ErrorTypeGeneration, entities.ErrorTypeOf(err))
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "Failed to generate presentation content: quota exceeded", err.Error())
	})

	t.Run("empty reply is a generation error", func(t *testing.T) {
		model := new(MockTextModel)
		model.On("Generate", mock.Anything, mock.Anything).Return("  \n", nil)

		_, err := NewContentService(model, testLogger(), 0).GenerateContent(ctx, "Photosynthesis")

		require.Error(t, err)
		assert.Equal(t, entities.ErrorTypeGeneration, entities.ErrorTypeOf(err))
	})

	t.Run("timeout abandons a slow model", func(t *testing.T) {
		release := make(chan time.Time)
		defer close(release)

		model := new(MockTextModel)
		model.On("Generate", mock.Anything, mock.Anything).
			WaitUntil(release).
			Return(builders.NewDeckBuilder().JSON(), nil)

		_, err := NewContentService(model, testLogger(), 20*time.Millisecond).GenerateContent(ctx, "Photosynthesis")

		require.Error(t, err)
		assert.Equal(t, entities.ErrorTypeGeneration, entities.ErrorTypeOf(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		release := make(chan time.Time)
		defer close(release)

		model := new(MockTextModel)
		model.On("Generate", mock.Anything, mock.Anything).
			WaitUntil(release).
			Return(builders.NewDeckBuilder().JSON(), nil)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewContentService(model, testLogger(), 0).GenerateContent(cancelled, "Photosynthesis")

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
