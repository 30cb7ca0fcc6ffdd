package entities

import "strings"

// DeckFormat selects the renderer used for a request
type DeckFormat string

const (
	FormatPowerPoint DeckFormat = "pptx"
	FormatMarkdown   DeckFormat = "markdown"
	FormatHTML       DeckFormat = "html"
	FormatPDF        DeckFormat = "pdf"
	FormatPNG        DeckFormat = "png"
)

// ParseDeckFormat maps a request value to a format; empty means pptx
func ParseDeckFormat(value string) (DeckFormat, bool) {
	switch DeckFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatPowerPoint:
		return FormatPowerPoint, true
	case FormatMarkdown, "md":
		return FormatMarkdown, true
	case FormatHTML:
		return FormatHTML, true
	case FormatPDF:
		return FormatPDF, true
	case FormatPNG:
		return FormatPNG, true
	default:
		return "", false
	}
}

// DeckRequest is the input of one deck generation
type DeckRequest struct {
	Topic  string `json:"topic"`
	Format string `json:"format,omitempty"`
}

// Artifact is a rendered deck stored on local disk for a single response
type Artifact struct {
	ID          string
	Path        string
	FileName    string
	ContentType string
	Size        int64
}
