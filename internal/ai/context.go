package ai

import (
	"log"
	"os"
)

// DefaultContext is the system prompt used when no context file can be read
const DefaultContext = "Sei un assistente AI utile e cordiale."

// LoadContext reads the system prompt from the file at path. If the file cannot be read for any reason, DefaultContext
// is returned and found is false
func LoadContext(path string) (context string, found bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Could not read context file '%s', using default context: %v", path, err)
		return DefaultContext, false
	}
	return string(b), true
}
