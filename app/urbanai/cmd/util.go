package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cchalm/urbanai/internal/ai"
	"github.com/cchalm/urbanai/internal/config"
	"github.com/cchalm/urbanai/internal/telemetry"
	"github.com/cchalm/urbanai/internal/transport"
)

// setupContext returns a context that is canceled on the first interrupt. A second interrupt exits immediately
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-interrupt:
		case <-ctx.Done():
			signal.Stop(interrupt)
			return
		}
		log.Println("Interrupt signal detected, shutting down gracefully...")
		cancel()
		<-interrupt
		log.Fatal("Forcing shutdown")
	}()

	return ctx, cancel
}

func createTelemetryProvider(ctx context.Context) (*telemetry.Provider, error) {
	telemetryConfig := telemetry.TelemetryConfig{
		Enabled:        cfg.TelemetryEnabled,
		Endpoint:       cfg.OTLPEndpoint,
		ServiceVersion: versionInfo.version,
	}
	return telemetry.NewProvider(ctx, telemetryConfig)
}

func createHTTPClient(tel *telemetry.Provider) *http.Client {
	return &http.Client{
		Transport: transport.WithTracing(nil, tel.TracerProvider()),
	}
}

func createProvider(ctx context.Context, apiKey string, httpClient *http.Client) (ai.Provider, error) {
	model := cfg.ModelOrDefault()
	switch cfg.Provider {
	case config.ProviderGemini:
		return ai.NewGeminiProvider(ctx, apiKey, model, httpClient)
	case config.ProviderAnthropic:
		client := anthropic.NewClient(
			option.WithHTTPClient(httpClient),
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		)
		return ai.NewAnthropicProvider(client, model), nil
	case config.ProviderOpenAI:
		return ai.NewOpenAIProvider(apiKey, model, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown provider '%s'", cfg.Provider)
	}
}

// passwordReader reads a line without echoing it
type passwordReader interface {
	ReadPassword(prompt string) (string, error)
}

// resolveAPIKey returns the provider's API key from the environment, prompting for it if it is not set
func resolveAPIKey(input passwordReader, warn func(string)) (string, error) {
	envVar := cfg.APIKeyEnvVar()
	if key := os.Getenv(envVar); key != "" {
		return key, nil
	}

	warn(fmt.Sprintf("%s non trovata nelle variabili d'ambiente", envVar))
	key, err := input.ReadPassword("Inserisci la tua API key: ")
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return strings.TrimSpace(key), nil
}
