package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskPatientReply TaskType = "patient_reply"
	TaskFeedback     TaskType = "feedback"
)

// Provider selects the wire protocol used to reach the model.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai" // any OpenAI-compatible chat endpoint
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   Provider
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default, so patients answer from the canned banks.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  15000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskPatientReply: {Temperature: 0.8, MaxTokens: 256, TimeoutMs: 15000},
			TaskFeedback:     {Temperature: 0.2, MaxTokens: 1024, TimeoutMs: 30000},
		},
	}
}

// Default endpoint and model for the OpenAI provider when none are set.
const (
	defaultOpenAIEndpoint = "https://api.openai.com/v1"
	defaultOpenAIModel    = "gpt-4o-mini"
)

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
//
// Setting MIPRACTICE_LLM_API_KEY without an explicit provider selects the
// OpenAI-compatible provider and enables the LLM.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	cfg.APIKey = os.Getenv("MIPRACTICE_LLM_API_KEY")
	if cfg.APIKey != "" {
		cfg.Enabled = true
		cfg.Provider = ProviderOpenAI
	}

	if v := os.Getenv("MIPRACTICE_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("MIPRACTICE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("MIPRACTICE_LLM_PROVIDER"); v != "" {
		switch Provider(strings.ToLower(v)) {
		case ProviderOllama:
			cfg.Provider = ProviderOllama
		case ProviderOpenAI:
			cfg.Provider = ProviderOpenAI
		}
	}
	if cfg.Provider == ProviderOpenAI {
		cfg.Endpoint = defaultOpenAIEndpoint
		cfg.Model = defaultOpenAIModel
	}
	if v := os.Getenv("MIPRACTICE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("MIPRACTICE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("MIPRACTICE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("MIPRACTICE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskPatientReply, "MIPRACTICE_LLM_REPLY_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskFeedback, "MIPRACTICE_LLM_FEEDBACK_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
