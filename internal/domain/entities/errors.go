package entities

import (
	"errors"
	"fmt"
)

// DeckErrorType categorizes failures of the deck pipeline
type DeckErrorType string

const (
	ErrorTypeValidation DeckErrorType = "validation"
	ErrorTypeGeneration DeckErrorType = "generation"
	ErrorTypeParse      DeckErrorType = "parse"
	ErrorTypeSchema     DeckErrorType = "schema"
	ErrorTypeRender     DeckErrorType = "render"
	ErrorTypeStorage    DeckErrorType = "storage"
)

// DeckError provides categorized error information for a pipeline stage
type DeckError struct {
	Type    DeckErrorType
	Message string
	Details string
	// Raw holds the offending model text for parse failures. It is logged, never sent to clients.
	Raw   string
	Cause error
}

func (e *DeckError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func (e *DeckError) Unwrap() error {
	return e.Cause
}

// IsClientError reports whether the caller can fix the request
func (e *DeckError) IsClientError() bool {
	return e.Type == ErrorTypeValidation
}

// NewValidationError creates a client-fixable error
func NewValidationError(message string) *DeckError {
	return &DeckError{Type: ErrorTypeValidation, Message: message}
}

// NewGenerationError wraps a failed or unusable model call
func NewGenerationError(cause error) *DeckError {
	e := &DeckError{
		Type:    ErrorTypeGeneration,
		Message: "Failed to generate presentation content",
		Cause:   cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// NewParseError wraps a JSON decoding failure of the normalized model text
func NewParseError(raw string, cause error) *DeckError {
	e := &DeckError{
		Type:    ErrorTypeParse,
		Message: "Failed to parse AI response into valid JSON",
		Raw:     raw,
		Cause:   cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// NewSchemaError reports parsed content that does not have the deck shape
func NewSchemaError(cause error) *DeckError {
	return &DeckError{
		Type:    ErrorTypeSchema,
		Message: "AI response does not match the slide schema",
		Details: cause.Error(),
		Cause:   cause,
	}
}

// NewRenderError wraps a document assembly failure
func NewRenderError(cause error) *DeckError {
	return &DeckError{
		Type:    ErrorTypeRender,
		Message: "Error creating presentation",
		Details: cause.Error(),
		Cause:   cause,
	}
}

// NewStorageError wraps a failure to write or read a rendered artifact
func NewStorageError(cause error) *DeckError {
	return &DeckError{
		Type:    ErrorTypeStorage,
		Message: "Error storing presentation",
		Details: cause.Error(),
		Cause:   cause,
	}
}

// ErrorTypeOf returns the DeckErrorType in err's chain, or "" when there is none
func ErrorTypeOf(err error) DeckErrorType {
	var deckErr *DeckError
	if errors.As(err, &deckErr) {
		return deckErr.Type
	}
	return ""
}
