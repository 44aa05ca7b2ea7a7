// Package console renders the chat's terminal output.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	ruleWidth = 60

	// HistoryPreviewLength is the number of characters of each message shown when listing the history
	HistoryPreviewLength = 100
)

// Printer writes styled chat output. Styles degrade to plain text when out is not a terminal
type Printer struct {
	out           io.Writer
	assistantName string
	markdown      *glamour.TermRenderer // nil when replies are printed verbatim

	titleStyle     lipgloss.Style
	ruleStyle      lipgloss.Style
	userStyle      lipgloss.Style
	assistantStyle lipgloss.Style
	successStyle   lipgloss.Style
	warningStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	dimStyle       lipgloss.Style
}

// Option configures a Printer
type Option func(*Printer) error

// WithMarkdown renders model replies as terminal markdown wrapped at width columns
func WithMarkdown(width int) Option {
	return func(p *Printer) error {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		p.markdown = renderer
		return nil
	}
}

// NewPrinter creates a Printer writing to out. assistantName labels the model's messages
func NewPrinter(out io.Writer, assistantName string, opts ...Option) (*Printer, error) {
	r := lipgloss.NewRenderer(out)
	p := &Printer{
		out:           out,
		assistantName: assistantName,

		titleStyle:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		ruleStyle:      r.NewStyle().Foreground(lipgloss.Color("242")),
		userStyle:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		assistantStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		successStyle:   r.NewStyle().Foreground(lipgloss.Color("42")),
		warningStyle:   r.NewStyle().Foreground(lipgloss.Color("214")),
		errorStyle:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		dimStyle:       r.NewStyle().Foreground(lipgloss.Color("242")),
	}
	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Printer) println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// UserLabel is the label shown before the user's messages, also used as the input prompt
func (p *Printer) UserLabel() string {
	return p.userStyle.Render("👤 Tu")
}

func (p *Printer) assistantLabel() string {
	return p.assistantStyle.Render("🍃 " + p.assistantName)
}

// Banner prints the title shown at startup
func (p *Printer) Banner(title string) {
	rule := p.ruleStyle.Render(strings.Repeat("=", ruleWidth))
	p.println(rule)
	p.println(p.titleStyle.Render("  " + title))
	p.println(rule)
}

// Commands prints the list of available commands
func (p *Printer) Commands() {
	p.println()
	p.println("📝 Comandi disponibili:")
	p.println(p.dimStyle.Render("  - 'esci' o 'quit' per terminare"))
	p.println(p.dimStyle.Render("  - 'salva' per salvare la conversazione"))
	p.println(p.dimStyle.Render("  - 'reset' per resettare la chat"))
	p.println(p.dimStyle.Render("  - 'history' per vedere la cronologia"))
	p.println(p.ruleStyle.Render(strings.Repeat("=", ruleWidth)))
}

// Separator prints the rule shown before each prompt
func (p *Printer) Separator() {
	p.println()
	p.println(p.ruleStyle.Render(strings.Repeat("─", ruleWidth)))
}

// Success prints a confirmation
func (p *Printer) Success(msg string) {
	p.println(p.successStyle.Render("✓ " + msg))
}

// Warning prints a recoverable problem
func (p *Printer) Warning(msg string) {
	p.println(p.warningStyle.Render("⚠ " + msg))
}

// Error prints a failure
func (p *Printer) Error(err error) {
	p.println()
	p.println(p.errorStyle.Render(fmt.Sprintf("❌ Errore: %v", err)))
}

// Say prints a message from the assistant that is not a model reply
func (p *Printer) Say(msg string) {
	p.println()
	p.println(p.assistantLabel() + ": " + msg)
}

// Reply prints a model reply, or an error rendered in its place
func (p *Printer) Reply(text string) {
	if p.markdown != nil {
		rendered, err := p.markdown.Render(text)
		if err == nil {
			p.println()
			p.println(p.assistantLabel() + ":")
			fmt.Fprint(p.out, rendered)
			return
		}
	}
	p.Say(text)
}

// SaveConfirmation reports that the conversation was written to path
func (p *Printer) SaveConfirmation(path string) {
	p.println()
	p.Success("Conversazione salvata in " + path)
}

// HistoryHeader prints the heading of the history listing
func (p *Printer) HistoryHeader() {
	p.println()
	p.println("📜 Cronologia conversazione:")
}

// HistoryEntry prints a preview of one message in the history listing
func (p *Printer) HistoryEntry(fromUser bool, content string) {
	label := p.assistantLabel()
	if fromUser {
		label = p.UserLabel()
	}
	p.println()
	p.println(label + ": " + Preview(content, HistoryPreviewLength))
}

// Context prints the system prompt of a saved conversation
func (p *Printer) Context(systemPrompt string) {
	p.println()
	p.println(p.dimStyle.Render("Contesto:"))
	p.println(systemPrompt)
}

// Message prints one complete message of a saved conversation
func (p *Printer) Message(fromUser bool, content string) {
	label := p.assistantLabel()
	if fromUser {
		label = p.UserLabel()
	}
	p.println()
	p.println(label + ": " + content)
}

// Preview truncates text to at most n characters, marking the cut with an ellipsis
func Preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
