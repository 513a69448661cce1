// Package tui is the terminal chat client.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

// Asker answers one chat turn and blocks until the answer is ready.
type Asker func(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error)

type answerMsg struct{ resp *types.ChatResponse }

type errMsg struct{ err error }

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB000"))
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#05A8FF"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#05FFA1"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	hintStyle      = lipgloss.NewStyle().Faint(true)
)

type Model struct {
	ctx       context.Context
	ask       Asker
	onClear   func(sessionID string)
	sessionID string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	transcript []string
	waiting    bool
	ready      bool
}

// New builds the chat model. onClear may be nil.
func New(ctx context.Context, ask Asker, onClear func(string), sessionID string) Model {
	input := textinput.New()
	input.Prompt = "❯ "
	input.Placeholder = "Ask about destinations, hotels, food or flights..."
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = assistantStyle

	return Model{
		ctx:       ctx,
		ask:       ask,
		onClear:   onClear,
		sessionID: sessionID,
		input:     input,
		viewport:  viewport.New(80, 20),
		spinner:   sp,
		transcript: []string{
			titleStyle.Render("Sri Lanka Travel Guide"),
			hintStyle.Render("Enter to send, /clear to reset the conversation, Esc to quit."),
		},
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) askCmd(question string) tea.Cmd {
	req := types.ChatRequest{SessionID: m.sessionID, Message: question}
	return func() tea.Msg {
		resp, err := m.ask(m.ctx, req)
		if err != nil {
			return errMsg{err: err}
		}
		return answerMsg{resp: resp}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 3)
		m.input.Width = max(msg.Width-4, 10)
		m.ready = true
		m.refresh()
		return m, nil

	case answerMsg:
		m.waiting = false
		m.append(assistantStyle.Render("Guide: ") + msg.resp.Answer)
		if len(msg.resp.Sources) > 0 {
			titles := make([]string, len(msg.resp.Sources))
			for i, s := range msg.resp.Sources {
				titles[i] = s.Title
			}
			m.append(hintStyle.Render("Sources: " + strings.Join(titles, ", ")))
		}
		return m, nil

	case errMsg:
		m.waiting = false
		m.append(errorStyle.Render("Error: " + msg.err.Error()))
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var inputCmd, vpCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(inputCmd, vpCmd)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(m.input.Value())
	if question == "" || m.waiting {
		return m, nil
	}
	m.input.Reset()

	if question == "/clear" {
		if m.onClear != nil {
			m.onClear(m.sessionID)
		}
		m.append(hintStyle.Render("Conversation cleared."))
		return m, nil
	}

	m.append(userStyle.Render("You: ") + question)
	m.waiting = true
	return m, tea.Batch(m.askCmd(question), m.spinner.Tick)
}

func (m *Model) append(line string) {
	m.transcript = append(m.transcript, line)
	m.refresh()
}

func (m *Model) refresh() {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(width).Render(strings.Join(m.transcript, "\n\n")))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	status := ""
	if m.waiting {
		status = fmt.Sprintf("%s thinking...", m.spinner.View())
	}
	return fmt.Sprintf("%s\n%s\n%s", m.viewport.View(), status, m.input.View())
}

// Run starts the full-screen chat program and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, ask Asker, onClear func(string), sessionID string) error {
	p := tea.NewProgram(New(ctx, ask, onClear, sessionID), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
