package generateadvice

import (
	"fmt"
	"time"

	"advice-service/internal/common/config"
)

type Config struct {
	Enabled      bool          `mapstructure:"enabled"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`

	GeminiBaseURL string        `mapstructure:"gemini_base_url"`
	GeminiAPIKey  string        `mapstructure:"gemini_api_key"`
	GeminiModel   string        `mapstructure:"gemini_model"`
	GeminiTimeout time.Duration `mapstructure:"gemini_timeout"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
	BaseDelay     time.Duration `mapstructure:"base_delay"`

	SectionCharLimit int    `mapstructure:"section_char_limit"`
	ResponseLanguage string `mapstructure:"response_language"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:          true,
		Timeout:          90 * time.Second,
		MaxBodyBytes:     64 << 10,
		GeminiBaseURL:    config.DefaultGeminiBaseURL,
		GeminiModel:      config.DefaultGeminiModel,
		GeminiTimeout:    60 * time.Second,
		MaxAttempts:      5,
		BaseDelay:        time.Second,
		SectionCharLimit: 200,
		ResponseLanguage: "Japanese",
	}
}

// Validate checks the settings the handler cannot run without.
// An empty API key is allowed; each request then fails with a configuration error.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be positive")
	}
	if c.BaseDelay < 0 {
		return fmt.Errorf("base_delay must not be negative")
	}
	if c.GeminiBaseURL == "" {
		return fmt.Errorf("gemini_base_url is required")
	}
	if c.GeminiModel == "" {
		return fmt.Errorf("gemini_model is required")
	}
	return nil
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig == nil {
		return cfg
	}

	if workerCfg, exists := appConfig.Workers[TaskType]; exists {
		cfg.Enabled = workerCfg.Enabled
		if workerCfg.Timeout > 0 {
			cfg.Timeout = config.GetDuration(workerCfg.Timeout)
		}
	}

	if appConfig.Server.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = int64(appConfig.Server.MaxBodyBytes)
	}

	g := appConfig.Gemini
	cfg.GeminiAPIKey = g.APIKey
	if g.BaseURL != "" {
		cfg.GeminiBaseURL = g.BaseURL
	}
	if g.Model != "" {
		cfg.GeminiModel = g.Model
	}
	if g.Timeout > 0 {
		cfg.GeminiTimeout = config.GetDuration(g.Timeout)
	}
	if g.MaxAttempts > 0 {
		cfg.MaxAttempts = g.MaxAttempts
	}
	if g.BaseDelay > 0 {
		cfg.BaseDelay = config.GetDuration(g.BaseDelay)
	}

	if appConfig.Prompt.SectionCharLimit > 0 {
		cfg.SectionCharLimit = appConfig.Prompt.SectionCharLimit
	}
	if appConfig.Prompt.ResponseLanguage != "" {
		cfg.ResponseLanguage = appConfig.Prompt.ResponseLanguage
	}

	return cfg
}
