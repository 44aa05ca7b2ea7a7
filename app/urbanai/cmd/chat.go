package cmd

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/cchalm/urbanai/internal/ai"
	"github.com/cchalm/urbanai/internal/console"
	"github.com/cchalm/urbanai/internal/repl"
	"github.com/cchalm/urbanai/internal/telemetry"
	"github.com/spf13/cobra"
)

const markdownWidth = 80

func runChat(cmd *cobra.Command, _ []string) error {
	logFile, err := configureLogging()
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, cancel := setupContext()
	defer cancel()

	var printerOpts []console.Option
	if cfg.Markdown {
		printerOpts = append(printerOpts, console.WithMarkdown(markdownWidth))
	}
	ui, err := console.NewPrinter(cmd.OutOrStdout(), cfg.AssistantName, printerOpts...)
	if err != nil {
		return err
	}

	tel, err := createTelemetryProvider(ctx)
	if err != nil {
		ui.Warning(fmt.Sprintf("Telemetria non disponibile: %v", err))
		tel = &telemetry.Provider{}
	}
	defer func() {
		if err := tel.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	ui.Banner(fmt.Sprintf("%s (%s)", cfg.AssistantName, cfg.ModelOrDefault()))

	input, err := repl.NewReadlineInput(ui.UserLabel() + ": ")
	if err != nil {
		ui.Error(err)
		return nil
	}
	closeInput := sync.OnceFunc(func() { _ = input.Close() })
	defer closeInput()
	go func() {
		// Unblocks a pending read when the interrupt arrives as a signal rather than as terminal input
		<-ctx.Done()
		closeInput()
	}()

	session, err := newChatSession(ctx, input, ui, tel)
	if err != nil {
		ui.Error(fmt.Errorf("errore nell'inizializzazione: %w", err))
		return nil
	}
	ui.Success(fmt.Sprintf("Chat %s inizializzata con modello %s", cfg.AssistantName, session.Model()))
	ui.Commands()

	err = repl.NewLoop(session, input, ui, cfg.ConversationLog).Run(ctx)
	if err != nil {
		log.Printf("Chat loop ended with error: %v", err)
	}
	return nil
}

func newChatSession(ctx context.Context, input *repl.ReadlineInput, ui *console.Printer, tel *telemetry.Provider) (*ai.Session, error) {
	apiKey, err := resolveAPIKey(input, ui.Warning)
	if err != nil {
		return nil, err
	}

	systemPrompt, found := ai.LoadContext(cfg.ContextFile)
	if found {
		ui.Success("Contesto caricato da " + cfg.ContextFile)
	} else {
		ui.Warning(fmt.Sprintf("File %s non trovato, uso il contesto predefinito", cfg.ContextFile))
	}

	provider, err := createProvider(ctx, apiKey, createHTTPClient(tel))
	if err != nil {
		return nil, err
	}

	return ai.NewSession(ctx, provider, systemPrompt, ai.WithRequestTimeout(cfg.RequestTimeout))
}
