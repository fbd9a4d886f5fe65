package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("SERVICENOW_BASE_URL", "https://instance.service-now.com")
	t.Setenv("SERVICENOW_USERNAME", "svc")
	t.Setenv("SERVICENOW_PASSWORD", "secret")
	t.Setenv("LLM_BASE_URL", "https://llm.example.com/v1")
	t.Setenv("LLM_MODEL", "gpt-test")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9300, cfg.Server.Port)
		assert.Equal(t, "kb_knowledge", cfg.ServiceNow.Table)
		assert.Equal(t, "text", cfg.ServiceNow.BodyField)
		assert.True(t, cfg.ServiceNow.VerifySSL)
		assert.Equal(t, 0.2, cfg.LLM.Temperature)
		assert.Equal(t, 2048, cfg.LLM.MaxTokens)
		assert.True(t, cfg.App.LogErrors)
		assert.False(t, cfg.App.LogLLMResponses)
	})

	t.Run("rewrite profile falls back field by field", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("LLM_REWRITE_MODEL", "gpt-rewrite")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "gpt-rewrite", cfg.LLMRewrite.Model)
		// Everything else inherits the assessment profile.
		assert.Equal(t, cfg.LLM.BaseURL, cfg.LLMRewrite.BaseURL)
		assert.Equal(t, cfg.LLM.Temperature, cfg.LLMRewrite.Temperature)
		assert.Equal(t, cfg.LLM.MaxTokens, cfg.LLMRewrite.MaxTokens)
	})

	t.Run("missing servicenow credentials fail validation", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SERVICENOW_PASSWORD", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "servicenow")
	})

	t.Run("missing llm model fails validation", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("LLM_MODEL", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm")
	})

	t.Run("invalid port fails validation", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SERVER_PORT", "70000")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "port")
	})

	t.Run("prompts file overrides env prompts", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PROMPT_ASSESSMENT_SYSTEM", "from env")
		t.Setenv("PROMPT_ORGANIZATION_CONTEXT", "env context")

		path := filepath.Join(t.TempDir(), "prompts.yaml")
		require.NoError(t, os.WriteFile(path, []byte("assessment_system: from file\n"), 0o600))
		t.Setenv("PROMPTS_FILE", path)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "from file", cfg.Prompts.AssessmentSystem)
		// Blocks absent from the file keep their env values.
		assert.Equal(t, "env context", cfg.Prompts.OrganizationContext)
	})

	t.Run("unreadable prompts file fails load", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PROMPTS_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

		_, err := Load()
		assert.Error(t, err)
	})
}
