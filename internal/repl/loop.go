// Package repl implements the interactive chat loop.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/cchalm/urbanai/internal/ai"
	"github.com/cchalm/urbanai/internal/console"
)

// Conversation is the chat session the loop drives
type Conversation interface {
	Send(ctx context.Context, message string) (string, error)
	History(ctx context.Context) []ai.Entry
	Save(ctx context.Context, path string) error
	Reset(ctx context.Context) error
	ProviderName() string
}

// Loop reads user input line by line and dispatches it to commands or to the conversation
type Loop struct {
	conv    Conversation
	input   LineReader
	ui      *console.Printer
	logPath string // Where the conversation is saved
}

func NewLoop(conv Conversation, input LineReader, ui *console.Printer, logPath string) *Loop {
	return &Loop{
		conv:    conv,
		input:   input,
		ui:      ui,
		logPath: logPath,
	}
}

// Run reads and handles lines until the user quits, input ends or ctx is canceled. Failures within an iteration are
// reported and do not end the loop. The conversation is saved before Run returns
func (l *Loop) Run(ctx context.Context) error {
	for {
		stop, err := l.iterate(ctx)
		if stop {
			return err
		}
	}
}

func (l *Loop) iterate(ctx context.Context) (stop bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			l.handleFailure(ctx, fmt.Errorf("%v", r))
			stop, err = false, nil
		}
	}()

	l.ui.Separator()
	line, err := l.input.ReadLine()
	switch {
	case ctx.Err() != nil || errors.Is(err, ErrInterrupt):
		l.interrupt(ctx)
		return true, nil
	case errors.Is(err, io.EOF):
		l.quit(ctx)
		return true, nil
	case err != nil:
		err = fmt.Errorf("failed to read input: %w", err)
		l.handleFailure(ctx, err)
		return true, err
	}

	return l.dispatch(ctx, strings.TrimSpace(line)), nil
}

// dispatch handles one trimmed line of input and reports whether the loop should stop
func (l *Loop) dispatch(ctx context.Context, line string) bool {
	switch strings.ToLower(line) {
	case "quit", "exit", "esci":
		l.quit(ctx)
		return true

	case "salva":
		err := l.save(ctx)
		if err != nil {
			l.ui.Error(err)
		}

	case "reset":
		err := l.conv.Reset(ctx)
		if err != nil {
			l.handleFailure(ctx, err)
			return false
		}
		l.ui.Success("Chat resettata")

	case "history":
		l.ui.HistoryHeader()
		for _, entry := range l.conv.History(ctx) {
			l.ui.HistoryEntry(entry.Role == ai.RoleUser, entry.Content)
		}

	case "":
		l.ui.Warning("Inserisci un messaggio valido")

	default:
		reply, err := l.conv.Send(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				l.interrupt(ctx)
				return true
			}
			log.Printf("Failed to send message: %v", err)
			reply = FormatSendError(l.conv.ProviderName(), err)
		}
		l.ui.Reply(reply)
	}

	return false
}

// FormatSendError renders a failed send as the text shown in place of the model's reply
func FormatSendError(providerName string, err error) string {
	return fmt.Sprintf("Errore nella comunicazione con %s: %v", providerName, err)
}

func (l *Loop) save(ctx context.Context) error {
	// Saving must still work while shutting down after an interrupt
	err := l.conv.Save(context.WithoutCancel(ctx), l.logPath)
	if err != nil {
		return err
	}
	l.ui.SaveConfirmation(l.logPath)
	return nil
}

func (l *Loop) quit(ctx context.Context) {
	l.ui.Say("Arrivederci! 👋")
	err := l.save(ctx)
	if err != nil {
		l.ui.Error(err)
	}
}

func (l *Loop) interrupt(ctx context.Context) {
	l.ui.Say("Interruzione ricevuta. Salvataggio in corso...")
	err := l.save(ctx)
	if err != nil {
		l.ui.Error(err)
	}
	l.ui.Say("Arrivederci! 👋")
}

// handleFailure reports an unexpected failure and makes one attempt to save the conversation
func (l *Loop) handleFailure(ctx context.Context, cause error) {
	log.Printf("Chat loop iteration failed: %v", cause)
	l.ui.Error(cause)
	err := l.save(ctx)
	if err != nil {
		l.ui.Error(err)
	}
}
