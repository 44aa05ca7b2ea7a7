package ai

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"
)

//go:embed conversation_template.tmpl
var conversationMarkdownTemplate string

// conversationMarkdownData is the data the markdown template is rendered with
type conversationMarkdownData struct {
	Model        string
	SystemPrompt string
	Messages     []Entry
	TurnCount    int
	ExportedAt   string
}

// ToMarkdown renders a saved conversation log as a markdown document
func (cl ConversationLog) ToMarkdown(exportedAt time.Time) (string, error) {
	turns := 0
	for _, msg := range cl.Messages {
		if msg.Role == RoleUser {
			turns++
		}
	}

	data := conversationMarkdownData{
		Model:        cl.Model,
		SystemPrompt: cl.Context,
		Messages:     cl.Messages,
		TurnCount:    turns,
		ExportedAt:   exportedAt.Format("2006-01-02 15:04:05 MST"),
	}
	return renderConversationMarkdown(data)
}

func renderConversationMarkdown(data conversationMarkdownData) (string, error) {
	funcMap := template.FuncMap{
		"speaker": func(role Role) string {
			switch role {
			case RoleUser:
				return "👤 User"
			case RoleModel:
				return "🤖 Model"
			default:
				return string(role)
			}
		},
		"indent": func(prefix string, text string) string {
			prefixed := strings.Builder{}
			for line := range strings.Lines(text) {
				prefixed.WriteString(prefix)
				prefixed.WriteString(line)
			}
			return prefixed.String()
		},
	}

	tmpl, err := template.New("conversation").Funcs(funcMap).Parse(conversationMarkdownTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse conversation template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute conversation template: %w", err)
	}

	return buf.String(), nil
}
