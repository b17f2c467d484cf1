package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "capecc-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for components that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// WindowConfig holds settings for the context windowing engine.
type WindowConfig struct {
	// WindowSize is the number of tokens in each window (default 200).
	WindowSize int `json:"window_size" yaml:"window_size"`

	// Overlap is the number of tokens shared between consecutive windows
	// (default 20). Must be smaller than WindowSize.
	Overlap int `json:"overlap" yaml:"overlap"`
}

// FillConfig holds settings for the form-fill pipeline.
type FillConfig struct {
	AIConfig `yaml:",inline"`

	HTTPConfig `yaml:",inline"`
}

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// BodyLimit caps the accepted request body size in bytes (default 1 MiB).
	BodyLimit int `json:"body_limit" yaml:"body_limit"`
}

// LogConfig holds settings for structured logging.
type LogConfig struct {
	// File is the rotated log file path. Empty disables file output.
	File string `json:"file" yaml:"file"`

	// Debug enables debug-level logging.
	Debug bool `json:"debug" yaml:"debug"`
}

// PipelineConfig groups all component configurations.
type PipelineConfig struct {
	Window WindowConfig `json:"window" yaml:"window"`
	Fill   FillConfig   `json:"fill" yaml:"fill"`
	Server ServerConfig `json:"server" yaml:"server"`
	Log    LogConfig    `json:"log" yaml:"log"`
}
