package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "urbanai",
	Short: "Chat with UrbanAI from the terminal",
	Long: `UrbanAI is a terminal chat with a large language model. The system prompt is read
from a context file, and the conversation is saved as JSON when you quit.

Commands available during the chat:
  esci, quit, exit   save the conversation and quit
  salva              save the conversation
  reset              start a new chat with the same context
  history            show the conversation so far`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: loadRootConfig,
	RunE:              runChat,
	SilenceUsage:      true,
}

func Execute() error {
	return rootCmd.Execute()
}

func loadRootConfig(cmd *cobra.Command, _ []string) error {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return resolveConfig(cmd)
}
