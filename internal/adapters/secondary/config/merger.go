package config

import (
	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	// The first non-nil config is the base
	var result *entities.Config
	for _, config := range configs {
		if config == nil {
			continue
		}
		if result == nil {
			result = deepCopy(config)
			continue
		}
		m.mergeInto(result, config)
	}

	if result == nil {
		return GetDefaultConfig()
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	if model, ok := flags["model"].(string); ok && model != "" {
		result.Model.Name = model
	}

	if timeout, ok := flags["model-timeout"].(int); ok && timeout > 0 {
		result.Model.Timeout = timeout
	}

	if output, ok := flags["output-dir"].(string); ok && output != "" {
		result.Output.Directory = output
	}

	if keep, ok := flags["keep-artifacts"].(bool); ok && keep {
		result.Output.KeepArtifacts = true
	}

	if level, ok := flags["log-level"].(string); ok && level != "" {
		result.Logging.Level = level
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Verbose = true
	}

	if logFile, ok := flags["log-file"].(string); ok {
		// An explicit empty value turns file logging off
		result.Logging.File = logFile
	}

	return result
}

// mergeInto merges source configuration into target configuration
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Server config
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = copyStrings(source.Server.CORSOrigins)
	}

	// Model config
	if source.Model.Name != "" {
		target.Model.Name = source.Model.Name
	}
	if source.Model.BaseURL != "" {
		target.Model.BaseURL = source.Model.BaseURL
	}
	if source.Model.Temperature != 0 {
		target.Model.Temperature = source.Model.Temperature
	}
	if source.Model.TopP != 0 {
		target.Model.TopP = source.Model.TopP
	}
	if source.Model.TopK != 0 {
		target.Model.TopK = source.Model.TopK
	}
	if source.Model.CandidateCount != 0 {
		target.Model.CandidateCount = source.Model.CandidateCount
	}
	if len(source.Model.StopSequences) > 0 {
		target.Model.StopSequences = copyStrings(source.Model.StopSequences)
	}
	if source.Model.Timeout != 0 {
		target.Model.Timeout = source.Model.Timeout
	}

	// Output config
	if source.Output.Directory != "" {
		target.Output.Directory = source.Output.Directory
	}
	// TOML cannot tell false from unset, so a true anywhere wins
	target.Output.KeepArtifacts = target.Output.KeepArtifacts || source.Output.KeepArtifacts

	// Logging config
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	target.Logging.Verbose = target.Logging.Verbose || source.Logging.Verbose
	if source.Logging.File != "" {
		target.Logging.File = source.Logging.File
	}
}

// deepCopy creates a deep copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := *src
	dst.Server.CORSOrigins = copyStrings(src.Server.CORSOrigins)
	dst.Model.StopSequences = copyStrings(src.Model.StopSequences)

	return &dst
}

func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
