package services

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/logging"
	"github.com/fredcamaral/lessondeck/internal/domain/entities"
)

type MockTextModel struct {
	mock.Mock
}

func (m *MockTextModel) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockContentGenerator struct {
	mock.Mock
}

func (m *MockContentGenerator) GenerateContent(ctx context.Context, topic string) (*entities.Deck, error) {
	args := m.Called(ctx, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Deck), args.Error(1)
}

type MockDeckRenderer struct {
	mock.Mock
	ext         string
	contentType string
}

func (m *MockDeckRenderer) Render(ctx context.Context, deck *entities.Deck) ([]byte, error) {
	args := m.Called(ctx, deck)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDeckRenderer) ContentType() string { return m.contentType }

func (m *MockDeckRenderer) Extension() string { return m.ext }

type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Save(ctx context.Context, id, ext string, data []byte) (string, error) {
	args := m.Called(ctx, id, ext, data)
	return args.String(0), args.Error(1)
}

func (m *MockArtifactStore) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockArtifactStore) Dir() string { return "generated" }

type MockDeckMetrics struct {
	mock.Mock
}

func (m *MockDeckMetrics) RecordGeneration(duration time.Duration) { m.Called(duration) }

func (m *MockDeckMetrics) RecordRender(format entities.DeckFormat, duration time.Duration) {
	m.Called(format, duration)
}

func (m *MockDeckMetrics) RecordSuccess() { m.Called() }

func (m *MockDeckMetrics) RecordFailure(kind entities.DeckErrorType) { m.Called(kind) }

func testLogger() *logging.Logger {
	return logging.NewWithWriter("test", entities.LogLevelDebug, io.Discard)
}
