// Package chatcmder implements the terminal chat client: a small TUI that
// drives the relay's streaming chat endpoint and renders the transcript.
package chatcmder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/foliodev/folio/pkg/chat"
	"github.com/foliodev/folio/pkg/llm"
)

const chatLongDesc string = `Chat with the portfolio assistant from the terminal.

Connects to a running folio server and streams replies into the
transcript as they arrive.

Examples:
  folio chat
  folio chat --server http://localhost:3000`

const chatShortDesc string = "Chat with the portfolio assistant"

type chatCommander struct {
	serverURL string
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.serverURL, "server", "s", "http://localhost:8080", "folio server URL")

	return cmd
}

func (c *chatCommander) run() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("chat requires an interactive terminal")
	}

	endpoint := strings.TrimRight(c.serverURL, "/") + "/api/chat"
	client := chat.NewClient(endpoint)

	p := tea.NewProgram(initialModel(client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#5A56E0")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

var suggestedQuestions = []string{
	"What technologies do you work with?",
	"Tell me about your experience",
	"What kind of projects have you built?",
}

// streamEventMsg signals that at least one fragment arrived.
type streamEventMsg struct{}

// exchangeDoneMsg signals that the in-flight exchange finished.
type exchangeDoneMsg struct {
	err error
}

type model struct {
	client *chat.Client
	events chan struct{}

	viewport viewport.Model
	textarea textarea.Model
	renderer *glamour.TermRenderer
	width    int
	height   int
}

func initialModel(client *chat.Client) model {
	ta := textarea.New()
	ta.Placeholder = "Ask about this portfolio..."
	ta.Focus()
	ta.Prompt = "┃ "
	ta.CharLimit = 500
	ta.SetWidth(80)
	ta.SetHeight(2)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)

	// Standard style avoids terminal queries that leak into input
	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(80),
	)

	m := model{
		client:   client,
		events:   make(chan struct{}, 16),
		viewport: vp,
		textarea: ta,
		renderer: r,
	}
	m.viewport.SetContent(m.renderTranscript())
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitForStream(m.events))
}

// startExchange runs one full submit-and-stream exchange off the UI
// goroutine. Fragment arrivals are forwarded through m.events so the UI
// re-renders per chunk.
func (m model) startExchange(text string) tea.Cmd {
	client := m.client
	events := m.events
	return func() tea.Msg {
		err := client.Submit(context.Background(), text, func(string) {
			events <- struct{}{}
		})
		return exchangeDoneMsg{err: err}
	}
}

// waitForStream blocks for the next fragment signal. Exactly one of these
// is pending at all times; each streamEventMsg re-arms it.
func waitForStream(events chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-events
		return streamEventMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	var tiCmd, vpCmd tea.Cmd
	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, tiCmd, vpCmd)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(msg.Width)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - m.textarea.Height() - 3
		if m.viewport.Height < 0 {
			m.viewport.Height = 0
		}

		m.renderer, _ = glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(m.width-4),
		)
		m.viewport.SetContent(m.renderTranscript())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.textarea.Value())
			if text == "" || m.client.State() != chat.StateIdle {
				return m, tea.Batch(cmds...)
			}
			m.textarea.Reset()
			cmds = append(cmds, m.startExchange(text))
		}

	case streamEventMsg:
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		cmds = append(cmds, waitForStream(m.events))

	case exchangeDoneMsg:
		// Failures already substituted the fallback message client-side.
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
	}

	return m, tea.Batch(cmds...)
}

func (m model) renderTranscript() string {
	transcript := m.client.Transcript()
	if len(transcript) == 0 {
		var b strings.Builder
		b.WriteString(hintStyle.Render("Hi! Ask me anything about this developer's work.") + "\n\n")
		for _, q := range suggestedQuestions {
			b.WriteString(hintStyle.Render("  · "+q) + "\n")
		}
		return b.String()
	}

	var b strings.Builder
	for _, turn := range transcript {
		switch turn.Role {
		case llm.RoleUser:
			b.WriteString(userStyle.Render("You") + "\n")
			b.WriteString(turn.Content + "\n\n")
		case llm.RoleAssistant:
			b.WriteString(assistantStyle.Render("Assistant") + "\n")
			if turn.Content == "" {
				b.WriteString(hintStyle.Render("thinking...") + "\n\n")
				continue
			}
			rendered, err := m.renderer.Render(turn.Content)
			if err != nil {
				rendered = turn.Content + "\n"
			}
			b.WriteString(rendered + "\n")
		}
	}
	return b.String()
}

func (m model) View() string {
	return fmt.Sprintf("%s\n%s\n%s\n%s",
		titleStyle.Render("folio chat"),
		m.viewport.View(),
		m.textarea.View(),
		hintStyle.Render("enter: send · esc: quit"),
	)
}
