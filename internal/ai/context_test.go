package ai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadContext_MissingFile(t *testing.T) {
	context, found := LoadContext(filepath.Join(t.TempDir(), "context.txt"))

	assert.False(t, found)
	assert.Equal(t, DefaultContext, context)
}

func TestLoadContext_Directory(t *testing.T) {
	context, found := LoadContext(t.TempDir())

	assert.False(t, found)
	assert.Equal(t, DefaultContext, context)
}

func TestLoadContext_ReadsFileVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "context.txt")
	content := "Sei UrbanAI, l'assistente della città.\nRispondi in italiano.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	context, found := LoadContext(path)

	assert.True(t, found)
	assert.Equal(t, content, context)
}
