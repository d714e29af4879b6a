package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.False(t, cfg.AI.Enabled)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, "rules.yaml", cfg.Data.RulesFile)
	assert.Equal(t, "overrides.yaml", cfg.Data.OverridesFile)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	t.Setenv("SPENDSIGHT_LOG_LEVEL", "debug")
	t.Setenv("SPENDSIGHT_AI_MODEL", "gemini-2.5-pro")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "gemini-2.5-pro", cfg.AI.Model)
}

func TestInitializeConfigGeminiKeyBinding(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.AI.APIKey)
}

func TestInitializeConfigValidation(t *testing.T) {
	t.Setenv("SPENDSIGHT_LOG_FORMAT", "xml")

	_, err := InitializeConfig()
	assert.Error(t, err)
}

func TestInitializeConfigAIEnabledRequiresKey(t *testing.T) {
	t.Setenv("SPENDSIGHT_AI_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := InitializeConfig()
	assert.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SPENDSIGHT_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("SPENDSIGHT_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("SPENDSIGHT_TEST_MISSING", "fallback"))
}
