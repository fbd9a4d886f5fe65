// Package config resolves the immutable service configuration once at
// startup. Values come from environment variables with defaults; the prompt
// text blocks can alternatively be loaded from a YAML file because they are
// multi-line. The resulting Config is passed by reference into every
// component constructor; nothing reads the environment after Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	App        AppConfig
	ServiceNow ServiceNowConfig
	LLM        LLMConfig
	LLMRewrite LLMConfig
	Prompts    PromptsConfig
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

type AppConfig struct {
	UserAgent         string
	RequestTimeout    time.Duration
	AssessmentTimeout time.Duration
	LogLLMResponses   bool
	LogErrors         bool
}

type ServiceNowConfig struct {
	BaseURL   string
	Username  string
	Password  string
	Table     string
	BodyField string
	// Query is the base sysparm_query appended to every list request.
	Query     string
	VerifySSL bool
	CABundle  string
}

type LLMConfig struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float64
	MaxTokens   int
	VerifySSL   bool
	CABundle    string
}

// PromptsConfig holds the four operator-editable prompt text blocks plus the
// shared organization context. Empty blocks are skipped when prompts are
// assembled.
type PromptsConfig struct {
	OrganizationContext string `yaml:"organization_context"`
	AssessmentSystem    string `yaml:"assessment_system"`
	AssessmentFormat    string `yaml:"assessment_format"`
	RewriteSystem       string `yaml:"rewrite_system"`
	RewriteFormat       string `yaml:"rewrite_format"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvAsIntOrDefault("SERVER_PORT", 9300),
			ShutdownTimeout: getEnvAsDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			ReadTimeout:     getEnvAsDurationOrDefault("SERVER_READ_TIMEOUT", 10*time.Second),
			// Assessments run an LLM round-trip inside the request.
			WriteTimeout: getEnvAsDurationOrDefault("SERVER_WRITE_TIMEOUT", 300*time.Second),
		},
		App: AppConfig{
			UserAgent:         getEnvOrDefault("APP_USER_AGENT", "ServiceNowKB-Assessor/1.0"),
			RequestTimeout:    getEnvAsDurationOrDefault("APP_REQUEST_TIMEOUT", 30*time.Second),
			AssessmentTimeout: getEnvAsDurationOrDefault("APP_ASSESSMENT_TIMEOUT", 120*time.Second),
			LogLLMResponses:   getEnvAsBoolOrDefault("APP_LOG_LLM_RESPONSES", false),
			LogErrors:         getEnvAsBoolOrDefault("APP_LOG_ERRORS", true),
		},
		ServiceNow: ServiceNowConfig{
			BaseURL:   os.Getenv("SERVICENOW_BASE_URL"),
			Username:  os.Getenv("SERVICENOW_USERNAME"),
			Password:  os.Getenv("SERVICENOW_PASSWORD"),
			Table:     getEnvOrDefault("SERVICENOW_TABLE", "kb_knowledge"),
			BodyField: getEnvOrDefault("SERVICENOW_BODY_FIELD", "text"),
			Query:     os.Getenv("SERVICENOW_QUERY"),
			VerifySSL: getEnvAsBoolOrDefault("SERVICENOW_VERIFY_SSL", true),
			CABundle:  os.Getenv("SERVICENOW_CA_BUNDLE"),
		},
		LLM: LLMConfig{
			BaseURL:     os.Getenv("LLM_BASE_URL"),
			Model:       os.Getenv("LLM_MODEL"),
			APIKey:      os.Getenv("LLM_API_KEY"),
			Temperature: getEnvAsFloatOrDefault("LLM_TEMPERATURE", 0.2),
			MaxTokens:   getEnvAsIntOrDefault("LLM_MAX_TOKENS", 2048),
			VerifySSL:   getEnvAsBoolOrDefault("LLM_VERIFY_SSL", true),
			CABundle:    os.Getenv("LLM_CA_BUNDLE"),
		},
		Prompts: PromptsConfig{
			OrganizationContext: os.Getenv("PROMPT_ORGANIZATION_CONTEXT"),
			AssessmentSystem:    os.Getenv("PROMPT_ASSESSMENT_SYSTEM"),
			AssessmentFormat:    os.Getenv("PROMPT_ASSESSMENT_FORMAT"),
			RewriteSystem:       os.Getenv("PROMPT_REWRITE_SYSTEM"),
			RewriteFormat:       os.Getenv("PROMPT_REWRITE_FORMAT"),
		},
	}

	// The rewrite step may use a separate generation profile; any unset
	// LLM_REWRITE_* value falls back to the assessment profile.
	cfg.LLMRewrite = LLMConfig{
		BaseURL:     getEnvOrDefault("LLM_REWRITE_BASE_URL", cfg.LLM.BaseURL),
		Model:       getEnvOrDefault("LLM_REWRITE_MODEL", cfg.LLM.Model),
		APIKey:      getEnvOrDefault("LLM_REWRITE_API_KEY", cfg.LLM.APIKey),
		Temperature: getEnvAsFloatOrDefault("LLM_REWRITE_TEMPERATURE", cfg.LLM.Temperature),
		MaxTokens:   getEnvAsIntOrDefault("LLM_REWRITE_MAX_TOKENS", cfg.LLM.MaxTokens),
		VerifySSL:   getEnvAsBoolOrDefault("LLM_REWRITE_VERIFY_SSL", cfg.LLM.VerifySSL),
		CABundle:    getEnvOrDefault("LLM_REWRITE_CA_BUNDLE", cfg.LLM.CABundle),
	}

	if path := os.Getenv("PROMPTS_FILE"); path != "" {
		prompts, err := loadPromptsFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load prompts file: %w", err)
		}

		cfg.Prompts = mergePrompts(cfg.Prompts, prompts)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if cfg.ServiceNow.BaseURL == "" || cfg.ServiceNow.Username == "" || cfg.ServiceNow.Password == "" {
		return fmt.Errorf("servicenow configuration incomplete")
	}

	if cfg.LLM.BaseURL == "" || cfg.LLM.Model == "" {
		return fmt.Errorf("llm configuration incomplete")
	}

	if cfg.App.RequestTimeout <= 0 || cfg.App.AssessmentTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}

	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}

	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}

	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}

	return defaultValue
}
