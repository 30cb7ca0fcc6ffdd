package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDefaultConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := GetDefaultConfig()

		assert.Equal(t, 8000, config.Server.Port)
		assert.Equal(t, 0, config.Server.WriteTimeout)
		assert.Len(t, config.Server.CORSOrigins, 4)
		assert.Equal(t, "gemini-2.0-flash", config.Model.Name)
		assert.InDelta(t, 0.7, config.Model.Temperature, 0.0001)
		assert.InDelta(t, 0.8, config.Model.TopP, 0.0001)
		assert.InDelta(t, 40, config.Model.TopK, 0.0001)
		assert.Equal(t, int32(1), config.Model.CandidateCount)
		assert.Equal(t, []string{"],"}, config.Model.StopSequences)
		assert.Equal(t, "generated", config.Output.Directory)
		assert.Equal(t, "app.log", config.Logging.File)
		assert.NoError(t, config.Validate())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("LESSONDECK_PORT", "9001")
		t.Setenv("LESSONDECK_MODEL", "gemini-1.5-flash")
		t.Setenv("LESSONDECK_TEMPERATURE", "0.2")
		t.Setenv("LESSONDECK_KEEP_ARTIFACTS", "true")
		t.Setenv("LESSONDECK_CORS_ORIGINS", "https://a.example.com, ,https://b.example.com")

		config := GetDefaultConfig()

		assert.Equal(t, 9001, config.Server.Port)
		assert.Equal(t, "gemini-1.5-flash", config.Model.Name)
		assert.InDelta(t, 0.2, config.Model.Temperature, 0.0001)
		assert.True(t, config.Output.KeepArtifacts)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, config.Server.CORSOrigins)
	})

	t.Run("ignore invalid environment values", func(t *testing.T) {
		t.Setenv("LESSONDECK_PORT", "not-a-number")
		t.Setenv("LESSONDECK_TEMPERATURE", "warm")
		t.Setenv("LESSONDECK_KEEP_ARTIFACTS", "maybe")

		config := GetDefaultConfig()

		assert.Equal(t, 8000, config.Server.Port)
		assert.InDelta(t, 0.7, config.Model.Temperature, 0.0001)
		assert.False(t, config.Output.KeepArtifacts)
	})
}
