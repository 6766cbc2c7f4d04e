package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:11434", cfg.Endpoint)
	assert.Equal(t, "llama3.2", cfg.Model)
	assert.Equal(t, 15000, cfg.TimeoutMs)
	assert.Equal(t, 1, cfg.MaxRetries)
	assert.False(t, cfg.LogCalls)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("INFLOW_LLM_ENDPOINT", "http://model-host:9999")
	t.Setenv("INFLOW_LLM_MODEL", "qwen2.5")
	t.Setenv("INFLOW_LLM_TIMEOUT_MS", "30000")
	t.Setenv("INFLOW_LLM_MAX_RETRIES", "3")
	t.Setenv("INFLOW_LLM_LOG_CALLS", "true")
	t.Setenv("INFLOW_LLM_INTERPRET_TIMEOUT_MS", "45000")

	cfg := LoadConfig()

	assert.Equal(t, "http://model-host:9999", cfg.Endpoint)
	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, 30000, cfg.TimeoutMs)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.True(t, cfg.LogCalls)
	assert.Equal(t, 45000, cfg.Tasks[TaskInterpret].TimeoutMs)
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("INFLOW_LLM_TIMEOUT_MS", "not-a-number")
	t.Setenv("INFLOW_LLM_MAX_RETRIES", "-2")

	cfg := LoadConfig()

	assert.Equal(t, 15000, cfg.TimeoutMs)
	assert.Equal(t, 1, cfg.MaxRetries)
}

func TestTaskTimeout(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 20000, cfg.TaskTimeout(TaskInterpret))
	assert.Equal(t, 8000, cfg.TaskTimeout(TaskSuggest))

	// Unknown tasks fall back to the global timeout.
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskType("unknown")))
}
