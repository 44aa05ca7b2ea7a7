package ai

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the model used by the OpenAI provider when none is configured
const DefaultOpenAIModel = openai.GPT4oMini

// chatCompleter is the subset of *openai.Client used by openAIChatSession
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider creates chat sessions backed by OpenAI's chat completions API. Like the Messages API it is stateless,
// so sessions keep their own message list
type OpenAIProvider struct {
	client chatCompleter
	model  string
}

// NewOpenAIProvider creates an OpenAI client authenticated with apiKey. If httpClient is nil the SDK's default client
// is used
func NewOpenAIProvider(apiKey string, model string, httpClient *http.Client) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(apiKey)
	if httpClient != nil {
		clientConfig.HTTPClient = httpClient
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

func (op *OpenAIProvider) NewSession(_ context.Context, config SessionConfig) (RemoteSession, error) {
	return &openAIChatSession{
		client:      op.client,
		model:       op.model,
		temperature: config.Temperature,
		messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: config.SystemPrompt},
		},
	}, nil
}

func (op *OpenAIProvider) Name() string {
	return "OpenAI"
}

func (op *OpenAIProvider) Model() string {
	return op.model
}

type openAIChatSession struct {
	client      chatCompleter
	model       string
	temperature float32

	messages []openai.ChatCompletionMessage // Starts with the system message
}

func (ocs *openAIChatSession) SendMessage(ctx context.Context, message string) (string, error) {
	userMessage := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message}

	resp, err := ocs.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       ocs.model,
		Messages:    append(slices.Clip(ocs.messages), userMessage),
		Temperature: ocs.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API CreateChatCompletion error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("OpenAI API returned no valid choices")
	}

	reply := resp.Choices[0].Message
	ocs.messages = append(ocs.messages, userMessage, reply)
	return reply.Content, nil
}

func (ocs *openAIChatSession) History(_ context.Context) ([]Entry, error) {
	history := []Entry{}
	for _, msg := range ocs.messages {
		switch msg.Role {
		case openai.ChatMessageRoleSystem:
			continue
		case openai.ChatMessageRoleUser:
			history = append(history, Entry{Role: RoleUser, Content: msg.Content})
		case openai.ChatMessageRoleAssistant:
			history = append(history, Entry{Role: RoleModel, Content: msg.Content})
		default:
			return nil, fmt.Errorf("unexpected message role '%s' in OpenAI chat history", msg.Role)
		}
	}
	return history, nil
}
