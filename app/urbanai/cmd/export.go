package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cchalm/urbanai/internal/ai"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Convert a saved conversation to markdown",
	Long: `Renders a conversation saved during a chat as a markdown document. Without a
file argument, the conversation log configured with --log is exported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write the markdown to this file instead of stdout")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	saved, err := ai.ReadConversationLog(logPathArg(args))
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}

	md, err := saved.ToMarkdown(time.Now())
	if err != nil {
		return fmt.Errorf("failed to render conversation: %w", err)
	}

	var out io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	_, err = io.WriteString(out, md)
	if err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}
