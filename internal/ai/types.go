// Package ai provides the chat session manager and the remote model providers it talks to.
package ai

// Role identifies the author of a transcript entry
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Entry is a single message in a conversation transcript. Entries are never modified once appended
type Entry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ConversationLog is the document written to disk when a conversation is saved
type ConversationLog struct {
	Model    string  `json:"model"`
	Context  string  `json:"context"`
	Messages []Entry `json:"messages"`
}
