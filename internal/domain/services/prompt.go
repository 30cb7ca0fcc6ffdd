package services

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
)

const topicPlaceholder = "{topic}"

//go:embed templates/lesson.yaml
var lessonTemplateYAML []byte

// LessonTemplate is the fixed instruction set sent to the model
type LessonTemplate struct {
	Intro        string          `yaml:"intro"`
	Slides       []TemplateSlide `yaml:"slides"`
	Requirements []string        `yaml:"requirements"`
}

// TemplateSlide is one example slide object shown to the model
type TemplateSlide struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	Content  string `yaml:"content" json:"content"`
}

var lessonTemplate = mustLoadLessonTemplate(lessonTemplateYAML)

// LoadLessonTemplate parses and checks a lesson template
func LoadLessonTemplate(data []byte) (*LessonTemplate, error) {
	var tmpl LessonTemplate
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing lesson template: %w", err)
	}

	if !strings.Contains(tmpl.Intro, topicPlaceholder) {
		return nil, fmt.Errorf("lesson template intro must contain %s", topicPlaceholder)
	}

	if len(tmpl.Slides) != entities.DeckSlideCount {
		return nil, fmt.Errorf("lesson template must have %d example slides, has %d", entities.DeckSlideCount, len(tmpl.Slides))
	}

	return &tmpl, nil
}

func mustLoadLessonTemplate(data []byte) *LessonTemplate {
	tmpl, err := LoadLessonTemplate(data)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// BuildPrompt embeds topic into the lesson template
func BuildPrompt(topic string) string {
	return lessonTemplate.Render(topic)
}

// Render produces the prompt text for topic
func (t *LessonTemplate) Render(topic string) string {
	examples := make([]TemplateSlide, len(t.Slides))
	for i, slide := range t.Slides {
		examples[i] = TemplateSlide{
			Title:    strings.ReplaceAll(slide.Title, topicPlaceholder, topic),
			Subtitle: strings.ReplaceAll(slide.Subtitle, topicPlaceholder, topic),
			Content:  strings.ReplaceAll(slide.Content, topicPlaceholder, topic),
		}
	}

	var b strings.Builder
	b.WriteString(strings.ReplaceAll(t.Intro, topicPlaceholder, topic))
	b.WriteString("\n")
	b.WriteString(encodeExamples(examples))
	b.WriteString("\nMake sure to:\n")
	for i, req := range t.Requirements {
		fmt.Fprintf(&b, "%d. %s\n", i+1, req)
	}

	return strings.TrimRight(b.String(), "\n")
}

// encodeExamples renders the example slides as indented JSON without HTML escaping
func encodeExamples(slides []TemplateSlide) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	// Encoding plain string fields cannot fail.
	_ = enc.Encode(slides)
	return buf.String()
}
