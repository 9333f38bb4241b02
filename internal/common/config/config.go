// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig               `mapstructure:"app"`
	Server  ServerConfig            `mapstructure:"server"`
	Gemini  GeminiConfig            `mapstructure:"gemini"`
	Prompt  PromptConfig            `mapstructure:"prompt"`
	Workers map[string]WorkerConfig `mapstructure:"workers"`
	Logging LoggingConfig           `mapstructure:"logging"`
	Tracing TracingConfig           `mapstructure:"tracing"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
	MaxBodyBytes    int `mapstructure:"max_body_bytes"`
}

// GeminiConfig holds the generateContent endpoint settings.
// APIKey may be empty at load time; requests then fail with a configuration error.
type GeminiConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Timeout     int    `mapstructure:"timeout"` // milliseconds, per attempt
	MaxAttempts int    `mapstructure:"max_attempts"`
	BaseDelay   int    `mapstructure:"base_delay"` // milliseconds
}

// PromptConfig tunes the instructions sent to the model.
type PromptConfig struct {
	SectionCharLimit int    `mapstructure:"section_char_limit"`
	ResponseLanguage string `mapstructure:"response_language"`
}

// WorkerConfig holds the settings applicable to every request handler.
type WorkerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Timeout int  `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// TracingConfig enables span export when JaegerEndpoint is set.
type TracingConfig struct {
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}
