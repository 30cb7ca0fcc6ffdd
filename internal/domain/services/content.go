package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

// ContentService asks the model for slide content and coerces the reply into a deck
type ContentService struct {
	model   ports.TextModel
	logger  ports.Logger
	timeout time.Duration
}

// NewContentService creates a content generator. A zero timeout waits on the model indefinitely.
func NewContentService(model ports.TextModel, logger ports.Logger, timeout time.Duration) *ContentService {
	return &ContentService{
		model:   model,
		logger:  logger,
		timeout: timeout,
	}
}

// GenerateContent builds the prompt, calls the model and returns the validated, tagged deck
func (s *ContentService) GenerateContent(ctx context.Context, topic string) (*entities.Deck, error) {
	s.logger.Info("Generating presentation content for topic: %s", topic)

	prompt := BuildPrompt(topic)
	s.logger.Debug("Sending prompt to model (%d bytes)", len(prompt))

	raw, err := s.callModel(ctx, prompt)
	if err != nil {
		s.logger.Error("Model call failed for topic %q: %v", topic, err)
		return nil, entities.NewGenerationError(err)
	}
	if strings.TrimSpace(raw) == "" {
		s.logger.Error("Model returned an empty response for topic %q", topic)
		return nil, entities.NewGenerationError(errors.New("model returned an empty response"))
	}
	s.logger.Debug("Raw response from model: %s", raw)

	slides, err := ParseSlides(raw)
	if err != nil {
		var deckErr *entities.DeckError
		if errors.As(err, &deckErr) {
			s.logger.Error("JSON parsing error: %v", deckErr.Cause)
			s.logger.Error("Attempted to parse: %s", deckErr.Raw)
		}
		return nil, err
	}
	s.logger.Info("Successfully parsed JSON content (%d slides)", len(slides))

	deck, err := BuildDeck(topic, slides)
	if err != nil {
		s.logger.Error("Slide schema check failed: %v", err)
		return nil, err
	}

	return deck, nil
}

// callModel runs the blocking model call on its own goroutine so the caller can
// give up when ctx is cancelled.
func (s *ContentService) callModel(ctx context.Context, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	type result struct {
		text string
		err  error
	}

	done := make(chan result, 1)
	go func() {
		text, err := s.model.Generate(ctx, prompt)
		done <- result{text: text, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// NormalizeResponse strips markdown fences and completes the enclosing brackets of a model reply
func NormalizeResponse(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "[") {
		text = "[" + text
	}
	if !strings.HasSuffix(text, "]") {
		text += "]"
	}

	return text
}

// ParseSlides normalizes raw model text and decodes it as a slide array
func ParseSlides(raw string) ([]entities.SlideSpec, error) {
	normalized := NormalizeResponse(raw)

	var slides []entities.SlideSpec
	if err := json.Unmarshal([]byte(normalized), &slides); err != nil {
		return nil, entities.NewParseError(normalized, err)
	}

	return slides, nil
}

// BuildDeck checks the deck shape and tags every slide's bullets
func BuildDeck(topic string, slides []entities.SlideSpec) (*entities.Deck, error) {
	deck := &entities.Deck{Topic: topic, Slides: slides}
	if err := deck.Validate(); err != nil {
		return nil, entities.NewSchemaError(err)
	}

	for i := range deck.Slides {
		deck.Slides[i].TagBullets()
	}

	return deck, nil
}

var _ ports.ContentGenerator = (*ContentService)(nil)
