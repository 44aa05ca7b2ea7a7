package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cchalm/urbanai/internal/config"
	"github.com/spf13/cobra"
)

var cfg = config.Default()

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.Provider, "provider", cfg.Provider, "Chat provider: gemini, anthropic or openai")
	flags.StringVar(&cfg.Model, "model", cfg.Model, "Model identifier (default depends on the provider)")
	flags.StringVar(&cfg.ContextFile, "context", cfg.ContextFile, "File containing the system prompt")
	flags.StringVar(&cfg.ConversationLog, "log", cfg.ConversationLog, "File the conversation is saved to")
	flags.StringVar(&cfg.AssistantName, "name", cfg.AssistantName, "Name the assistant is shown with")
	flags.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "Maximum time to wait for each reply (0 waits indefinitely)")
	flags.BoolVar(&cfg.Markdown, "markdown", cfg.Markdown, "Render replies as markdown")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Write diagnostic logs to stderr")
	flags.StringVar(&cfg.DiagnosticsFile, "log-file", cfg.DiagnosticsFile, "Append diagnostic logs to this file")
	flags.BoolVar(&cfg.TelemetryEnabled, "telemetry", cfg.TelemetryEnabled, "Export traces over OTLP/HTTP")
	flags.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", cfg.OTLPEndpoint, "OTLP/HTTP traces endpoint URL")
}

// resolveConfig applies environment overrides to every flag that was not set on the command line
func resolveConfig(cmd *cobra.Command) error {
	err := cfg.LoadFromEnv(func(flag string) bool {
		f := cmd.Flags().Lookup(flag)
		return f != nil && f.Changed
	})
	if err != nil {
		return err
	}
	cfg.Provider = strings.ToLower(cfg.Provider)
	return cfg.Validate()
}

// configureLogging routes diagnostic logs. They are discarded unless requested, to keep the chat readable
func configureLogging() (io.Closer, error) {
	switch {
	case cfg.DiagnosticsFile != "":
		f, err := os.OpenFile(cfg.DiagnosticsFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		log.SetOutput(f)
		return f, nil
	case cfg.Verbose:
		log.SetOutput(os.Stderr)
	default:
		log.SetOutput(io.Discard)
	}
	return io.NopCloser(nil), nil
}
