package ports

// FileOpener opens a local file with the desktop's default application
type FileOpener interface {
	// Open starts the application for path without waiting for it to exit
	Open(path string) error
	// Detect returns the name of the opener that would be used
	Detect() (string, error)
}
