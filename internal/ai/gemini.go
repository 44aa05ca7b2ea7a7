package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the model used by the Gemini provider when none is configured
const DefaultGeminiModel = "gemini-2.5-flash"

// geminiChat is the subset of *genai.Chat used by geminiChatSession
type geminiChat interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
	History(curated bool) []*genai.Content
}

type geminiChatSession struct {
	chat geminiChat
}

func (gcs *geminiChatSession) SendMessage(ctx context.Context, message string) (string, error) {
	if gcs.chat == nil {
		return "", ErrNoSession
	}

	resp, err := gcs.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("Gemini API SendMessage error: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("Gemini API returned no valid candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("Gemini API response part was not text")
	}
	return text.String(), nil
}

func (gcs *geminiChatSession) History(_ context.Context) ([]Entry, error) {
	if gcs.chat == nil {
		return nil, ErrNoSession
	}

	history := []Entry{}
	for _, content := range gcs.chat.History(false) {
		if content == nil {
			return nil, fmt.Errorf("Gemini chat history contains an empty message")
		}
		entry := Entry{Role: Role(content.Role)}
		if len(content.Parts) > 0 && content.Parts[0] != nil {
			entry.Content = content.Parts[0].Text
		}
		history = append(history, entry)
	}
	return history, nil
}

// GeminiProvider creates chat sessions with Google's Gemini API
type GeminiProvider struct {
	client    *genai.Client
	modelName string
}

// NewGeminiProvider creates a Gemini client authenticated with apiKey. If httpClient is nil the SDK's default client
// is used
func NewGeminiProvider(ctx context.Context, apiKey string, modelName string, httpClient *http.Client) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:    client,
		modelName: modelName,
	}, nil
}

func (gp *GeminiProvider) NewSession(ctx context.Context, config SessionConfig) (RemoteSession, error) {
	genaiChat, err := gp.client.Chats.Create(ctx, gp.modelName, geminiConfig(config), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating chat session: %w", err)
	}
	return &geminiChatSession{chat: genaiChat}, nil
}

func geminiConfig(config SessionConfig) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: config.SystemPrompt}},
		},
		Temperature: genai.Ptr(config.Temperature),
	}
}

func (gp *GeminiProvider) Name() string {
	return "Gemini"
}

func (gp *GeminiProvider) Model() string {
	return gp.modelName
}
