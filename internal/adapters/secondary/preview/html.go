package preview

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

// HTMLContentType is the media type of the HTML preview
const HTMLContentType = "text/html; charset=utf-8"

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Calibri, Arial, sans-serif; max-width: 960px; margin: 2rem auto; color: #000000; }
h1 { color: #2F5597; }
h2 { color: #C00000; }
hr { border: 0; border-top: 4px solid #2F5597; margin: 2rem 0; }
ul { background: #F2F2F2; border: 2px solid #2F5597; border-radius: 8px; padding: 1rem 2rem; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`

// HTMLRenderer renders the markdown outline of a deck to a standalone, sanitized HTML page
type HTMLRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	page   *template.Template
}

// NewHTMLRenderer creates an HTML preview renderer
func NewHTMLRenderer() (*HTMLRenderer, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	page, err := template.New("preview").Parse(documentTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing preview template: %w", err)
	}

	return &HTMLRenderer{
		md:     md,
		policy: newSanitizer(),
		page:   page,
	}, nil
}

// newSanitizer allows the elements the outline can produce and nothing else
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h1", "h2", "p", "br", "hr")
	p.AllowElements("strong", "em", "del", "code")
	p.AllowElements("ul", "ol", "li")
	p.AllowAttrs("id").OnElements("h1", "h2")
	return p
}

// ContentType returns the HTML media type
func (r *HTMLRenderer) ContentType() string {
	return HTMLContentType
}

// Extension returns "html"
func (r *HTMLRenderer) Extension() string {
	return "html"
}

// Render converts the deck outline to sanitized HTML inside a page
func (r *HTMLRenderer) Render(ctx context.Context, deck *entities.Deck) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outline, err := Outline(deck)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := r.md.Convert([]byte(outline), &body); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	data := struct {
		Title string
		Body  template.HTML
	}{
		Title: deck.Topic,
		Body:  template.HTML(r.policy.SanitizeBytes(body.Bytes())), // #nosec G203 - sanitized by bluemonday
	}

	var page bytes.Buffer
	if err := r.page.Execute(&page, data); err != nil {
		return nil, fmt.Errorf("executing preview template: %w", err)
	}

	return page.Bytes(), nil
}

var _ ports.DeckRenderer = (*HTMLRenderer)(nil)
