package ports

import "context"

// ArtifactStore keeps rendered decks on local disk for the duration of a response
type ArtifactStore interface {
	// Save writes data as <id>.<ext> and returns its path
	Save(ctx context.Context, id, ext string, data []byte) (string, error)

	// Remove deletes a previously saved artifact
	Remove(path string) error

	// Dir returns the directory artifacts are written to
	Dir() string
}
