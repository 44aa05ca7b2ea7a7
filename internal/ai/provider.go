package ai

import (
	"context"
	"errors"
)

// ErrNoSession is returned when a remote session is used before it has been created
var ErrNoSession = errors.New("chat session is not initialized")

// SessionConfig is the fixed configuration a remote chat session is created with
type SessionConfig struct {
	SystemPrompt string
	Temperature  float32
}

// Provider creates chat sessions with a remote model
type Provider interface {
	// Name returns a human-readable provider name, e.g. "Gemini"
	Name() string
	// Model returns the identifier of the model sessions are created with
	Model() string
	// NewSession creates a new remote chat session. Sessions are independent of each other
	NewSession(ctx context.Context, config SessionConfig) (RemoteSession, error)
}

// RemoteSession is a single chat session held by a remote model
type RemoteSession interface {
	// SendMessage sends a user message and returns the model's reply text
	SendMessage(ctx context.Context, message string) (string, error)
	// History returns the session's canonical history as seen by the remote side
	History(ctx context.Context) ([]Entry, error)
}
