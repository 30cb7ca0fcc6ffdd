package entities

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// APIKeyEnv is the environment variable holding the model credential
const APIKeyEnv = "GOOGLE_API_KEY"

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Model   ModelConfig   `toml:"model"`
	Output  OutputConfig  `toml:"output"`
	Logging LoggingConfig `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Model.Validate(); err != nil {
		return fmt.Errorf("model config: %w", err)
	}

	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" {
		if ip := net.ParseIP(s.Host); ip == nil {
			if _, err := net.LookupHost(s.Host); err != nil {
				return fmt.Errorf("invalid host: %w", err)
			}
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown timeout must be non-negative")
	}

	for _, origin := range s.CORSOrigins {
		if origin == "" {
			return errors.New("CORS origin cannot be empty")
		}
		if origin == "*" {
			continue
		}
		if len(origin) < 7 || (!strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://")) {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, fmt.Sprintf("%d", s.Port))
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration. Zero disables it,
// since a deck request waits on the model for as long as the model takes.
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		return 0
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GetCORSOrigins returns CORS origins with defaults if empty
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return DefaultCORSOrigins()
	}
	return s.CORSOrigins
}

// DefaultCORSOrigins returns the local development front-end origins
func DefaultCORSOrigins() []string {
	return []string{
		"http://localhost:5173",
		"http://localhost:3000",
		"http://127.0.0.1:5173",
		"http://127.0.0.1:3000",
	}
}

// ModelConfig contains generative model configuration
type ModelConfig struct {
	Name           string   `toml:"name"`
	BaseURL        string   `toml:"base_url"`
	Temperature    float32  `toml:"temperature"`
	TopP           float32  `toml:"top_p"`
	TopK           float32  `toml:"top_k"`
	CandidateCount int32    `toml:"candidate_count"`
	StopSequences  []string `toml:"stop_sequences"`
	// Timeout in seconds for one model call; 0 waits indefinitely
	Timeout int `toml:"timeout"`
}

// Validate validates model configuration
func (m ModelConfig) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("model name cannot be empty")
	}

	if m.Temperature < 0 || m.Temperature > 2 {
		return errors.New("temperature must be between 0 and 2")
	}

	if m.TopP < 0 || m.TopP > 1 {
		return errors.New("top_p must be between 0 and 1")
	}

	if m.TopK < 0 {
		return errors.New("top_k must be non-negative")
	}

	if m.CandidateCount < 0 {
		return errors.New("candidate count must be non-negative")
	}

	if m.Timeout < 0 {
		return errors.New("timeout must be non-negative")
	}

	if m.BaseURL != "" && !strings.HasPrefix(m.BaseURL, "http://") && !strings.HasPrefix(m.BaseURL, "https://") {
		return fmt.Errorf("base URL must start with http:// or https://: %s", m.BaseURL)
	}

	return nil
}

// GetTimeout returns the per-call timeout; zero means none
func (m ModelConfig) GetTimeout() time.Duration {
	if m.Timeout <= 0 {
		return 0
	}
	return time.Duration(m.Timeout) * time.Second
}

// GetCandidateCount returns the candidate count with default
func (m ModelConfig) GetCandidateCount() int32 {
	if m.CandidateCount <= 0 {
		return 1
	}
	return m.CandidateCount
}

// OutputConfig controls where rendered decks are written
type OutputConfig struct {
	Directory     string `toml:"directory"`
	KeepArtifacts bool   `toml:"keep_artifacts"`
}

// Validate validates output configuration
func (o OutputConfig) Validate() error {
	if strings.TrimSpace(o.Directory) == "" {
		return errors.New("output directory cannot be empty")
	}
	return nil
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level   string `toml:"level"`   // debug, info, warn, error
	Verbose bool   `toml:"verbose"` // Enable debug output regardless of level
	File    string `toml:"file"`    // Also log to this file (optional)
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}

	if l.File != "" {
		dir := filepath.Dir(l.File)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("log file directory does not exist: %s", dir)
		}
	}

	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Verbose {
		return LogLevelDebug
	}
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}
