package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMarkdown(t *testing.T) {
	cl := ConversationLog{
		Model:   "gemini-2.5-flash",
		Context: "Sei UrbanAI.\nRispondi in italiano.",
		Messages: []Entry{
			{Role: RoleUser, Content: "ciao"},
			{Role: RoleModel, Content: "Ciao! Come posso aiutarti?"},
		},
	}
	exportedAt := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	md, err := cl.ToMarkdown(exportedAt)

	require.NoError(t, err)
	assert.Contains(t, md, "# Conversation with gemini-2.5-flash")
	assert.Contains(t, md, "2025-06-01 12:30:00 UTC")
	assert.Contains(t, md, "1 turns")
	assert.Contains(t, md, "> Sei UrbanAI.\n> Rispondi in italiano.")
	assert.Contains(t, md, "### 👤 User\n\nciao\n")
	assert.Contains(t, md, "### 🤖 Model\n\nCiao! Come posso aiutarti?\n")
	assert.NotContains(t, md, "No messages")
}

func TestToMarkdown_NoMessages(t *testing.T) {
	md, err := ConversationLog{Model: "m", Context: "c"}.ToMarkdown(time.Now())

	require.NoError(t, err)
	assert.Contains(t, md, "*No messages.*")
	assert.Contains(t, md, "0 turns")
}
