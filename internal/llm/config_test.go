package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskPatientReply))
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskFeedback))
}

func TestLoadConfig_APIKeySelectsOpenAI(t *testing.T) {
	t.Setenv("MIPRACTICE_LLM_API_KEY", "secret")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, defaultOpenAIEndpoint, cfg.Endpoint)
	assert.Equal(t, defaultOpenAIModel, cfg.Model)
}

func TestLoadConfig_ExplicitSettingsWin(t *testing.T) {
	t.Setenv("MIPRACTICE_LLM_API_KEY", "secret")
	t.Setenv("MIPRACTICE_LLM_ENABLED", "false")
	t.Setenv("MIPRACTICE_LLM_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta/openai/")
	t.Setenv("MIPRACTICE_LLM_MODEL", "gemini-2.0-flash")
	t.Setenv("MIPRACTICE_LLM_MAX_RETRIES", "0")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/openai", cfg.Endpoint)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, 0, cfg.MaxRetries)
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	t.Setenv("MIPRACTICE_LLM_REPLY_TIMEOUT_MS", "4000")
	t.Setenv("MIPRACTICE_LLM_FEEDBACK_TIMEOUT_MS", "nope")

	cfg := LoadConfig()
	assert.Equal(t, 4000, cfg.TaskTimeout(TaskPatientReply))
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskFeedback))
}

func TestLoadConfig_UnknownProviderIgnored(t *testing.T) {
	t.Setenv("MIPRACTICE_LLM_PROVIDER", "bard")
	assert.Equal(t, ProviderOllama, LoadConfig().Provider)
}
