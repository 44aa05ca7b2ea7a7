package ai

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Temperature is the sampling temperature every session is created with
const Temperature = 0.7

var tracer = otel.Tracer("github.com/cchalm/urbanai/internal/ai")

// Session owns the single active chat session with a remote model and a local mirror of its transcript
type Session struct {
	provider     Provider
	systemPrompt string

	id         string // Regenerated on every Initialize
	remote     RemoteSession
	transcript []Entry

	requestTimeout time.Duration // Zero means wait indefinitely
}

// SessionOption configures optional Session behavior
type SessionOption func(*Session)

// WithRequestTimeout bounds how long a single Send may wait for the remote model. A zero timeout waits indefinitely
func WithRequestTimeout(timeout time.Duration) SessionOption {
	return func(s *Session) {
		s.requestTimeout = timeout
	}
}

// NewSession creates a Session and initializes its remote chat session
func NewSession(ctx context.Context, provider Provider, systemPrompt string, opts ...SessionOption) (*Session, error) {
	s := &Session{
		provider:     provider,
		systemPrompt: systemPrompt,
	}
	for _, opt := range opts {
		opt(s)
	}

	err := s.Initialize(ctx)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize creates a new remote chat session, replacing the current one if there is one. The local transcript is
// left untouched
func (s *Session) Initialize(ctx context.Context) error {
	remote, err := s.provider.NewSession(ctx, SessionConfig{
		SystemPrompt: s.systemPrompt,
		Temperature:  Temperature,
	})
	if err != nil {
		return fmt.Errorf("failed to create chat session: %w", err)
	}

	s.remote = remote
	s.id = uuid.New().String()
	log.Printf("Chat session %s initialized with %s model %s", s.id, s.provider.Name(), s.provider.Model())
	return nil
}

// Send sends a user message to the remote session and returns the reply. On success the message and the reply are
// appended to the transcript as a pair. On failure nothing is appended
func (s *Session) Send(ctx context.Context, message string) (reply string, err error) {
	ctx, span := tracer.Start(ctx, "chat.send", trace.WithAttributes(
		attribute.String("chat.provider", s.provider.Name()),
		attribute.String("chat.model", s.provider.Model()),
		attribute.String("chat.session_id", s.id),
		attribute.Int("chat.turn_index", len(s.transcript)/2),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			reply, err = "", fmt.Errorf("panic while sending message: %v", r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if s.remote == nil {
		return "", ErrNoSession
	}

	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	reply, err = s.remote.SendMessage(ctx, message)
	if err != nil {
		return "", err
	}

	s.transcript = append(s.transcript,
		Entry{Role: RoleUser, Content: message},
		Entry{Role: RoleModel, Content: reply},
	)
	span.SetAttributes(attribute.Int("chat.reply_length", len(reply)))
	return reply, nil
}

// History returns the conversation so far. The remote session's own history takes precedence; if it cannot be
// fetched for any reason, the local transcript is returned instead
func (s *Session) History(ctx context.Context) []Entry {
	if s.remote != nil {
		history, err := s.remote.History(ctx)
		if err == nil {
			return history
		}
		log.Printf("Failed to fetch remote history for session %s, using local transcript: %v", s.id, err)
	}
	return slices.Clone(s.transcript)
}

// Transcript returns the locally recorded transcript
func (s *Session) Transcript() []Entry {
	return slices.Clone(s.transcript)
}

// Save writes the model, the system prompt and the current history to path, replacing the file
func (s *Session) Save(ctx context.Context, path string) error {
	err := WriteConversationLog(path, ConversationLog{
		Model:    s.provider.Model(),
		Context:  s.systemPrompt,
		Messages: s.History(ctx),
	})
	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	log.Printf("Conversation %s saved to %s", s.id, path)
	return nil
}

// Reset replaces the remote session with a fresh one carrying the same system prompt and clears the transcript. If a
// new session cannot be created, the current session and transcript are kept
func (s *Session) Reset(ctx context.Context) error {
	err := s.Initialize(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset chat: %w", err)
	}
	s.transcript = nil
	return nil
}

// ID returns the identifier of the current remote session
func (s *Session) ID() string {
	return s.id
}

// Model returns the identifier of the model the session talks to
func (s *Session) Model() string {
	return s.provider.Model()
}

// ProviderName returns the name of the provider the session talks to
func (s *Session) ProviderName() string {
	return s.provider.Name()
}

// SystemPrompt returns the system prompt the session was created with
func (s *Session) SystemPrompt() string {
	return s.systemPrompt
}
