package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// WriteConversationLog writes the log to path as indented JSON, replacing any existing file
func WriteConversationLog(path string, value ConversationLog) error {
	if value.Messages == nil {
		value.Messages = []Entry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	err := enc.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation log: %w", err)
	}
	err = os.WriteFile(path, buf.Bytes(), 0666)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ReadConversationLog reads a log previously written by WriteConversationLog
func ReadConversationLog(path string) (*ConversationLog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	var value ConversationLog
	err = json.Unmarshal(b, &value)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation log: %w", err)
	}
	return &value, nil
}
