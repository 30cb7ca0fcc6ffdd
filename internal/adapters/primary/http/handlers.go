package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

// maxRequestBodySize bounds the generate request body
const maxRequestBodySize = 1 << 20

// handleGenerateSlides runs the deck pipeline and streams the stored artifact
func (s *Server) handleGenerateSlides(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	// An empty body decodes to an empty request and fails topic validation.
	var req entities.DeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.logger.Warn("Invalid generate request body: %v", err)
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.logger.Info("Received request for topic: %s", req.Topic)

	artifact, err := s.decks.Generate(r.Context(), req)
	if err != nil {
		s.handleDeckError(w, err)
		return
	}
	defer s.decks.Discard(artifact)

	s.serveArtifact(w, r, artifact)
}

// serveArtifact streams the artifact file as an attachment
func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, artifact *entities.Artifact) {
	file, err := os.Open(artifact.Path) // #nosec G304 - path comes from the artifact store
	if err != nil {
		s.logger.Error("Opening artifact %s: %v", artifact.Path, err)
		s.writeError(w, http.StatusInternalServerError, entities.NewStorageError(err).Error())
		return
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		s.logger.Error("Reading artifact %s: %v", artifact.Path, err)
		s.writeError(w, http.StatusInternalServerError, entities.NewStorageError(err).Error())
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.FileName))

	s.logger.Info("Sending %s (%d bytes)", artifact.FileName, info.Size())
	http.ServeContent(w, r, artifact.FileName, info.ModTime(), file)
}

// handleHealth reports liveness and whether the model credential is present
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	check := s.apiKeyConfigured
	s.mu.RUnlock()

	s.writeJSON(w, http.StatusOK, ports.HealthResponse{
		Status:                 "healthy",
		GoogleAPIKeyConfigured: check(),
	})
}

// handleStats reports pipeline and runtime metrics
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	stats := s.stats
	s.mu.RUnlock()

	s.writeJSON(w, http.StatusOK, stats())
}

// handleDeckError maps pipeline errors to a status and a detail message
func (s *Server) handleDeckError(w http.ResponseWriter, err error) {
	var deckErr *entities.DeckError
	if errors.As(err, &deckErr) && deckErr.IsClientError() {
		s.logger.Warn("Rejected request: %v", err)
		s.writeError(w, http.StatusBadRequest, deckErr.Error())
		return
	}

	s.logger.Error("Error in generate_slides: %v", err)
	s.writeError(w, http.StatusInternalServerError, err.Error())
}

// writeError writes a JSON error body
func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, ports.ErrorResponse{Detail: detail})
}

// writeJSON writes data as JSON with the given status
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode JSON response: %v", err)
	}
}
