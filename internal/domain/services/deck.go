package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

// ArtifactBaseName is the download name of every rendered deck, before the extension
const ArtifactBaseName = "presentation"

// DeckService orchestrates content generation, rendering and artifact storage
type DeckService struct {
	generator     ports.ContentGenerator
	store         ports.ArtifactStore
	logger        ports.Logger
	keepArtifacts bool
	newID         func() string
	metrics       ports.DeckMetrics

	mu        sync.RWMutex
	renderers map[entities.DeckFormat]ports.DeckRenderer
}

// NewDeckService creates a deck service. Renderers are added with RegisterRenderer.
func NewDeckService(generator ports.ContentGenerator, store ports.ArtifactStore, logger ports.Logger, keepArtifacts bool) *DeckService {
	return &DeckService{
		generator:     generator,
		store:         store,
		logger:        logger,
		keepArtifacts: keepArtifacts,
		newID:         uuid.NewString,
		metrics:       nopMetrics{},
		renderers:     make(map[entities.DeckFormat]ports.DeckRenderer),
	}
}

// RegisterRenderer makes a renderer available for format
func (s *DeckService) RegisterRenderer(format entities.DeckFormat, renderer ports.DeckRenderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderers[format] = renderer
}

// SetMetrics sends pipeline timings and outcomes to metrics
func (s *DeckService) SetMetrics(metrics ports.DeckMetrics) {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	s.metrics = metrics
}

func (s *DeckService) renderer(format entities.DeckFormat) (ports.DeckRenderer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.renderers[format]
	return r, ok
}

// Validate checks a request before any work is done and resolves its renderer
func (s *DeckService) Validate(req entities.DeckRequest) (ports.DeckRenderer, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, entities.NewValidationError("Topic is required")
	}

	format, ok := entities.ParseDeckFormat(req.Format)
	if !ok {
		return nil, entities.NewValidationError(fmt.Sprintf("Unsupported format: %s", req.Format))
	}

	renderer, ok := s.renderer(format)
	if !ok {
		return nil, entities.NewValidationError(fmt.Sprintf("Unsupported format: %s", req.Format))
	}

	return renderer, nil
}

// Generate runs the whole pipeline for one request. Either a complete deck is stored or an error is returned.
func (s *DeckService) Generate(ctx context.Context, req entities.DeckRequest) (*entities.Artifact, error) {
	artifact, err := s.generate(ctx, req)
	if err != nil {
		s.metrics.RecordFailure(entities.ErrorTypeOf(err))
		return nil, err
	}
	s.metrics.RecordSuccess()
	return artifact, nil
}

func (s *DeckService) generate(ctx context.Context, req entities.DeckRequest) (*entities.Artifact, error) {
	renderer, err := s.Validate(req)
	if err != nil {
		return nil, err
	}
	format, _ := entities.ParseDeckFormat(req.Format)

	start := time.Now()
	deck, err := s.generator.GenerateContent(ctx, req.Topic)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordGeneration(time.Since(start))
	s.logger.Info("Content generation completed")

	start = time.Now()
	data, err := renderer.Render(ctx, deck)
	if err != nil {
		s.logger.Error("Error creating presentation: %v", err)
		if entities.ErrorTypeOf(err) != "" {
			return nil, err
		}
		return nil, entities.NewRenderError(err)
	}
	s.metrics.RecordRender(format, time.Since(start))
	s.logger.Info("Presentation rendering completed (%d bytes)", len(data))

	id := s.newID()
	path, err := s.store.Save(ctx, id, renderer.Extension(), data)
	if err != nil {
		s.logger.Error("Error storing presentation %s: %v", id, err)
		return nil, entities.NewStorageError(err)
	}

	return &entities.Artifact{
		ID:          id,
		Path:        path,
		FileName:    ArtifactBaseName + "." + renderer.Extension(),
		ContentType: renderer.ContentType(),
		Size:        int64(len(data)),
	}, nil
}

// Discard removes the artifact file unless artifacts are kept
func (s *DeckService) Discard(artifact *entities.Artifact) {
	if artifact == nil || s.keepArtifacts {
		return
	}
	if err := s.store.Remove(artifact.Path); err != nil {
		s.logger.Warn("Failed to remove artifact %s: %v", artifact.Path, err)
	}
}

type nopMetrics struct{}

func (nopMetrics) RecordGeneration(time.Duration)                  {}
func (nopMetrics) RecordRender(entities.DeckFormat, time.Duration) {}
func (nopMetrics) RecordSuccess()                                  {}
func (nopMetrics) RecordFailure(entities.DeckErrorType)            {}

var _ ports.DeckService = (*DeckService)(nil)
