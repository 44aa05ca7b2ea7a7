package cmd

import (
	"fmt"

	"github.com/cchalm/urbanai/internal/ai"
	"github.com/cchalm/urbanai/internal/console"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a saved conversation",
	Long: `Prints a conversation saved during a chat. Without a file argument, the
conversation log configured with --log is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func logPathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.ConversationLog
}

func runShow(cmd *cobra.Command, args []string) error {
	saved, err := ai.ReadConversationLog(logPathArg(args))
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}

	ui, err := console.NewPrinter(cmd.OutOrStdout(), cfg.AssistantName)
	if err != nil {
		return err
	}
	ui.Banner(fmt.Sprintf("%s (%s)", cfg.AssistantName, saved.Model))
	ui.Context(saved.Context)
	for _, entry := range saved.Messages {
		ui.Message(entry.Role == ai.RoleUser, entry.Content)
	}
	return nil
}
