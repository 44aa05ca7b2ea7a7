// Package config provides configuration management for the urbanai chat.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cchalm/urbanai/internal/ai"
)

// Supported providers
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Config holds the configuration for the chat
type Config struct {
	// Provider
	Provider string
	Model    string // Empty selects the provider's default model
	APIKey   string // Resolved by the CLI, never read from flags

	// Files
	ContextFile     string
	ConversationLog string

	// Behavior
	AssistantName  string
	RequestTimeout time.Duration // Zero waits indefinitely
	Markdown       bool

	// Diagnostics
	Verbose          bool
	DiagnosticsFile  string
	TelemetryEnabled bool
	OTLPEndpoint     string
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		Provider:        ProviderGemini,
		ContextFile:     "context.txt",
		ConversationLog: "conversation_log.json",
		AssistantName:   "UrbanAI",
	}
}

// envBinding ties a flag to the environment variable that supplies its value when the flag is not set explicitly
type envBinding struct {
	flag  string
	key   string
	apply func(c *Config, value string) error
}

var envBindings = []envBinding{
	{"provider", "URBANAI_PROVIDER", func(c *Config, v string) error { return assign(&c.Provider, v, parseProvider) }},
	{"model", "URBANAI_MODEL", func(c *Config, v string) error { return assign(&c.Model, v, parseString) }},
	{"context", "URBANAI_CONTEXT_FILE", func(c *Config, v string) error { return assign(&c.ContextFile, v, parseString) }},
	{"log", "URBANAI_CONVERSATION_LOG", func(c *Config, v string) error { return assign(&c.ConversationLog, v, parseString) }},
	{"name", "URBANAI_ASSISTANT_NAME", func(c *Config, v string) error { return assign(&c.AssistantName, v, parseString) }},
	{"timeout", "URBANAI_TIMEOUT", func(c *Config, v string) error { return assign(&c.RequestTimeout, v, time.ParseDuration) }},
	{"markdown", "URBANAI_MARKDOWN", func(c *Config, v string) error { return assign(&c.Markdown, v, strconv.ParseBool) }},
	{"verbose", "URBANAI_VERBOSE", func(c *Config, v string) error { return assign(&c.Verbose, v, strconv.ParseBool) }},
	{"log-file", "URBANAI_LOG_FILE", func(c *Config, v string) error { return assign(&c.DiagnosticsFile, v, parseString) }},
	{"telemetry", "URBANAI_TELEMETRY", func(c *Config, v string) error { return assign(&c.TelemetryEnabled, v, strconv.ParseBool) }},
	{"otlp-endpoint", "URBANAI_OTLP_ENDPOINT", func(c *Config, v string) error { return assign(&c.OTLPEndpoint, v, parseString) }},
}

func assign[T any](dest *T, value string, parseFn func(string) (T, error)) error {
	v, err := parseFn(value)
	if err != nil {
		return err
	}
	*dest = v
	return nil
}

func parseString(v string) (string, error) {
	return v, nil
}

func parseProvider(v string) (string, error) {
	provider := strings.ToLower(strings.TrimSpace(v))
	switch provider {
	case ProviderGemini, ProviderAnthropic, ProviderOpenAI:
		return provider, nil
	default:
		return "", fmt.Errorf("unknown provider '%s'", v)
	}
}

// LoadFromEnv overrides fields of c from environment variables. Fields whose flag reports as explicitly set are left
// alone, so flags take precedence over the environment
func (c *Config) LoadFromEnv(explicit func(flag string) bool) error {
	for _, binding := range envBindings {
		if explicit != nil && explicit(binding.flag) {
			continue
		}
		err := parseOptionalFromEnv(c, binding)
		if err != nil {
			return err
		}
	}
	return nil
}

func parseOptionalFromEnv(c *Config, binding envBinding) error {
	str := os.Getenv(binding.key)
	if str == "" {
		return nil // Leave default value
	}
	err := binding.apply(c, str)
	if err != nil {
		return fmt.Errorf("failed to parse environment variable '%s' value '%s': %w", binding.key, str, err)
	}
	return nil
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if _, err := parseProvider(c.Provider); err != nil {
		return err
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.ConversationLog == "" {
		return fmt.Errorf("conversation log path must not be empty")
	}
	return nil
}

// ModelOrDefault returns the configured model, or the provider's default model if none is configured
func (c Config) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderAnthropic:
		return ai.DefaultAnthropicModel
	case ProviderOpenAI:
		return ai.DefaultOpenAIModel
	default:
		return ai.DefaultGeminiModel
	}
}

// APIKeyEnvVar returns the environment variable holding the API key for the configured provider
func (c Config) APIKeyEnvVar() string {
	switch c.Provider {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}
