package ai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteConversationLog_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	err := WriteConversationLog(path, ConversationLog{
		Model:   "gemini-2.5-flash",
		Context: "Sei <UrbanAI> & co.",
		Messages: []Entry{
			{Role: RoleUser, Content: "perché?"},
		},
	})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := `{
  "model": "gemini-2.5-flash",
  "context": "Sei <UrbanAI> & co.",
  "messages": [
    {
      "role": "user",
      "content": "perché?"
    }
  ]
}
`
	assert.Equal(t, expected, string(b))
}

func TestWriteConversationLog_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, WriteConversationLog(path, ConversationLog{
		Model:    "m",
		Messages: []Entry{{Role: RoleUser, Content: "a"}, {Role: RoleModel, Content: "b"}},
	}))

	require.NoError(t, WriteConversationLog(path, ConversationLog{Model: "m"}))

	saved, err := ReadConversationLog(path)
	require.NoError(t, err)
	assert.Empty(t, saved.Messages)
}

func TestReadConversationLog_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := ReadConversationLog(path)

	assert.Error(t, err)
}

func TestReadConversationLog_Missing(t *testing.T) {
	_, err := ReadConversationLog(filepath.Join(t.TempDir(), "log.json"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}
