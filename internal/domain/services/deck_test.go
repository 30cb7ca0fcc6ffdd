package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/test/builders"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

type deckFixture struct {
	generator *MockContentGenerator
	renderer  *MockDeckRenderer
	store     *MockArtifactStore
	service   *DeckService
}

func newDeckFixture(keepArtifacts bool) *deckFixture {
	f := &deckFixture{
		generator: new(MockContentGenerator),
		renderer:  &MockDeckRenderer{ext: "pptx", contentType: pptxContentType},
		store:     new(MockArtifactStore),
	}
	f.service = NewDeckService(f.generator, f.store, testLogger(), keepArtifacts)
	f.service.RegisterRenderer(entities.FormatPowerPoint, f.renderer)

	ids := 0
	f.service.newID = func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}
	return f
}

func TestDeckService_Validate(t *testing.T) {
	f := newDeckFixture(false)

	tests := []struct {
		name    string
		req     entities.DeckRequest
		wantErr string
	}{
		{name: "valid", req: entities.DeckRequest{Topic: "Volcanoes"}},
		{name: "explicit pptx", req: entities.DeckRequest{Topic: "Volcanoes", Format: "pptx"}},
		{name: "empty topic", req: entities.DeckRequest{}, wantErr: "Topic is required"},
		{name: "blank topic", req: entities.DeckRequest{Topic: " \t\n"}, wantErr: "Topic is required"},
		{name: "unknown format", req: entities.DeckRequest{Topic: "Volcanoes", Format: "docx"}, wantErr: "Unsupported format: docx"},
		{name: "known format without renderer", req: entities.DeckRequest{Topic: "Volcanoes", Format: "html"}, wantErr: "Unsupported format: html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, err := f.service.Validate(tt.req)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, f.renderer, renderer)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, entities.ErrorTypeValidation, entities.ErrorTypeOf(err))
		})
	}
}

func TestDeckService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the rendered deck", func(t *testing.T) {
		f := newDeckFixture(false)
		deck := builders.MinimalDeck()
		data := []byte("PK\x03\x04deck")

		f.generator.On("GenerateContent", mock.Anything, "Photosynthesis").Return(deck, nil)
		f.renderer.On("Render", mock.Anything, deck).Return(data, nil)
		f.store.On("Save", mock.Anything, "id-1", "pptx", data).Return("generated/id-1.pptx", nil)

		artifact, err := f.service.Generate(ctx, entities.DeckRequest{Topic: "Photosynthesis"})

		require.NoError(t, err)
		assert.Equal(t, "id-1", artifact.ID)
		assert.Equal(t, "generated/id-1.pptx", artifact.Path)
		assert.Equal(t, "presentation.pptx", artifact.FileName)
		assert.Equal(t, pptxContentType, artifact.ContentType)
		assert.Equal(t, int64(len(data)), artifact.Size)
		f.generator.AssertExpectations(t)
		f.renderer.AssertExpectations(t)
		f.store.AssertExpectations(t)
	})

	t.Run("blank topic never reaches the model", func(t *testing.T) {
		f := newDeckFixture(false)

		_, err := f.service.Generate(ctx, entities.DeckRequest{Topic: "   "})

		require.Error(t, err)
		assert.Equal(t, entities.ErrorTypeValidation, entities.ErrorTypeOf(err))
		f.generator.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything)
	})

	t.Run("generation errors pass through", func(t *testing.T) {
		f := newDeckFixture(false)
		genErr := entities.NewGenerationError(errors.New("boom"))
		f.generator.On("GenerateContent", mock.Anything, "Volcanoes").Return(nil, genErr)

		_, err := f.service.Generate(ctx, entities.DeckRequest{Topic: "Volcanoes"})

		assert.Equal(t, genErr, err)
		f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	})

	t.Run("renderer failures become render errors", func(t *testing.T) {
		f := newDeckFixture(false)
		deck := builders.MinimalDeck()
		f.generator.On("GenerateContent", mock.Anything, "Photosynthesis").Return(deck, nil)
		f.renderer.On("Render", mock.Anything, deck).Return(nil, errors.New("zip failed"))

		_, err := f.service.Generate(ctx, entities.DeckRequest{Topic: "Photosynthesis"})

		require.Error(t, err)
		assert.Equal(t, entities.ErrorTypeRender, entities.ErrorTypeOf(err))
		assert.Contains(t, err.Error(), "zip failed")
		f.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failures become storage errors", func(t *testing.T) {
		f := newDeckFixture(false)
		deck := builders.MinimalDeck()
		f.generator.On("GenerateContent", mock.Anything, "Photosynthesis").Return(deck, nil)
		f.renderer.On("Render", mock.Anything, deck).Return([]byte("x"), nil)
		f.store.On("Save", mock.Anything, "id-1", "pptx", []byte("x")).Return("", errors.New("disk full"))

		_, err := f.service.Generate(ctx, entities.DeckRequest{Topic: "Photosynthesis"})

		require.Error(t, err)
		assert.Equal(t, entities.ErrorTypeStorage, entities.ErrorTypeOf(err))
	})

	t.Run("each request gets its own artifact id", func(t *testing.T) {
		f := newDeckFixture(false)
		deck := builders.MinimalDeck()
		f.generator.On("GenerateContent", mock.Anything, "Photosynthesis").Return(deck, nil)
		f.renderer.On("Render", mock.Anything, deck).Return([]byte("x"), nil)
		f.store.On("Save", mock.Anything, "id-1", "pptx", []byte("x")).Return("generated/id-1.pptx", nil)
		f.store.On("Save", mock.Anything, "id-2", "pptx", []byte("x")).Return("generated/id-2.pptx", nil)

		first, err := f.service.Generate(ctx, entities.DeckRequest{Topic: "Photosynthesis"})
		require.NoError(t, err)
		second, err := f.service.Generate(ctx, entities.DeckRequest{Topic: "Photosynthesis"})
		require.NoError(t, err)

		assert.NotEqual(t, first.Path, second.Path)
		assert.Equal(t, first.FileName, second.FileName)
	})
}

func TestDeckService_Metrics(t *testing.T) {
	ctx := context.Background()

	t.Run("success records timings", func(t *testing.T) {
		f := newDeckFixture(false)
		metrics := new(MockDeckMetrics)
		f.service.SetMetrics(metrics)

		deck := builders.MinimalDeck()
		f.generator.On("GenerateContent", ctx, "Volcanoes").Return(deck, nil)
		f.renderer.On("Render", ctx, deck).Return([]byte("pptx"), nil)
		f.store.On("Save", ctx, "id-1", "pptx", []byte("pptx")).Return("generated/id-1.pptx", nil)
		metrics.On("RecordGeneration", mock.AnythingOfType("time.Duration")).Return()
		metrics.On("RecordRender", entities.FormatPowerPoint, mock.AnythingOfType("time.Duration")).Return()
		metrics.On("RecordSuccess").Return()

		_, err := f.service.Generate(ctx, entities.DeckRequest{Topic: "Volcanoes"})
		require.NoError(t, err)
		metrics.AssertExpectations(t)
		metrics.AssertNotCalled(t, "RecordFailure", mock.Anything)
	})

	t.Run("failure records error type", func(t *testing.T) {
		f := newDeckFixture(false)
		metrics := new(MockDeckMetrics)
		f.service.SetMetrics(metrics)

		metrics.On("RecordFailure", entities.ErrorTypeValidation).Return()

		_, err := f.service.Generate(ctx, entities.DeckRequest{})
		require.Error(t, err)
		metrics.AssertExpectations(t)
		metrics.AssertNotCalled(t, "RecordSuccess")
	})

	t.Run("nil metrics is ignored", func(t *testing.T) {
		f := newDeckFixture(false)
		f.service.SetMetrics(nil)

		_, err := f.service.Generate(ctx, entities.DeckRequest{})
		require.Error(t, err)
	})
}

func TestDeckService_Discard(t *testing.T) {
	artifact := &entities.Artifact{ID: "id-1", Path: "generated/id-1.pptx"}

	t.Run("removes the file", func(t *testing.T) {
		f := newDeckFixture(false)
		f.store.On("Remove", artifact.Path).Return(nil)

		f.service.Discard(artifact)

		f.store.AssertCalled(t, "Remove", artifact.Path)
	})

	t.Run("removal failure is only logged", func(t *testing.T) {
		f := newDeckFixture(false)
		f.store.On("Remove", artifact.Path).Return(errors.New("permission denied"))

		assert.NotPanics(t, func() { f.service.Discard(artifact) })
	})

	t.Run("keeps artifacts when configured", func(t *testing.T) {
		f := newDeckFixture(true)

		f.service.Discard(artifact)

		f.store.AssertNotCalled(t, "Remove", mock.Anything)
	})

	t.Run("nil artifact", func(t *testing.T) {
		f := newDeckFixture(false)

		f.service.Discard(nil)

		f.store.AssertNotCalled(t, "Remove", mock.Anything)
	})
}
