package ai

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

const (
	// DefaultAnthropicModel is the model used by the Anthropic provider when none is configured
	DefaultAnthropicModel = string(anthropic.ModelClaudeSonnet4_0)

	anthropicMaxOutputTokens = 8192
)

// AnthropicProvider creates chat sessions backed by Anthropic's Messages API. The API is stateless, so each session
// keeps the message list it resends on every turn
type AnthropicProvider struct {
	sender          messageSender
	model           anthropic.Model
	maxOutputTokens int64
}

func NewAnthropicProvider(client anthropic.Client, model string) *AnthropicProvider {
	return &AnthropicProvider{
		sender:          NewStreamingMessageSender(client),
		model:           anthropic.Model(model),
		maxOutputTokens: anthropicMaxOutputTokens,
	}
}

func (ap *AnthropicProvider) NewSession(_ context.Context, config SessionConfig) (RemoteSession, error) {
	return &anthropicChatSession{
		sender:          ap.sender,
		model:           ap.model,
		maxOutputTokens: ap.maxOutputTokens,
		systemPrompt:    config.SystemPrompt,
		temperature:     float64(config.Temperature),
	}, nil
}

func (ap *AnthropicProvider) Name() string {
	return "Claude"
}

func (ap *AnthropicProvider) Model() string {
	return string(ap.model)
}

type anthropicChatSession struct {
	sender          messageSender
	model           anthropic.Model
	maxOutputTokens int64
	systemPrompt    string
	temperature     float64

	messages []anthropic.MessageParam // Every message sent and received, resent with each request
	history  []Entry
}

func (acs *anthropicChatSession) SendMessage(ctx context.Context, message string) (string, error) {
	userMessage := anthropic.NewUserMessage(anthropic.NewTextBlock(message))

	params := anthropic.MessageNewParams{
		Model:     acs.model,
		MaxTokens: acs.maxOutputTokens,
		System: []anthropic.TextBlockParam{
			{Text: acs.systemPrompt},
		},
		Messages:    append(slices.Clip(acs.messages), userMessage),
		Temperature: anthropic.Float(acs.temperature),
	}

	response, err := acs.sender.SendMessage(ctx, params)
	if err != nil {
		return "", fmt.Errorf("Anthropic API SendMessage error: %w", err)
	}

	var text strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("Anthropic API response contained no text (stop reason '%s')", response.StopReason)
	}

	log.Printf("Token usage - Input: %d, Output: %d", response.Usage.InputTokens, response.Usage.OutputTokens)

	acs.messages = append(acs.messages, userMessage, response.ToParam())
	acs.history = append(acs.history,
		Entry{Role: RoleUser, Content: message},
		Entry{Role: RoleModel, Content: text.String()},
	)
	return text.String(), nil
}

func (acs *anthropicChatSession) History(_ context.Context) ([]Entry, error) {
	history := slices.Clone(acs.history)
	if history == nil {
		history = []Entry{}
	}
	return history, nil
}
