package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

func typeText(m tea.Model, text string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestModel_SubmitRunsAsker(t *testing.T) {
	var got types.ChatRequest
	ask := func(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error) {
		got = req
		return &types.ChatResponse{Answer: "Try Ella.", Sources: []types.Source{{Title: "Nine Arch Bridge"}}}, nil
	}

	var m tea.Model = New(context.Background(), ask, nil, "session-1")
	m = typeText(m, "Where should I hike?")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.(Model).waiting)
	assert.Empty(t, m.(Model).input.Value())

	// Enter while waiting is ignored.
	_, again := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, again)

	msg := m.(Model).askCmd("Where should I hike?")()
	assert.Equal(t, types.ChatRequest{SessionID: "session-1", Message: "Where should I hike?"}, got)

	m, _ = m.Update(msg)
	final := m.(Model)
	assert.False(t, final.waiting)
	transcript := strings.Join(final.transcript, "\n")
	assert.Contains(t, transcript, "Where should I hike?")
	assert.Contains(t, transcript, "Try Ella.")
	assert.Contains(t, transcript, "Sources: Nine Arch Bridge")
}

func TestModel_ErrorIsShown(t *testing.T) {
	var m tea.Model = New(context.Background(), nil, nil, "s")
	m, _ = m.Update(errMsg{err: errors.New("bridge: timed out waiting for task result")})
	assert.Contains(t, strings.Join(m.(Model).transcript, "\n"), "timed out")
}

func TestModel_ClearCommand(t *testing.T) {
	cleared := ""
	var m tea.Model = New(context.Background(), nil, func(id string) { cleared = id }, "s-42")

	m = typeText(m, "/clear")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "s-42", cleared)
	assert.False(t, m.(Model).waiting)
}

func TestModel_EmptyInputIgnored(t *testing.T) {
	var m tea.Model = New(context.Background(), nil, nil, "s")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestModel_QuitKeys(t *testing.T) {
	var m tea.Model = New(context.Background(), nil, nil, "s")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowResize(t *testing.T) {
	var m tea.Model = New(context.Background(), nil, nil, "s")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 36, m.(Model).viewport.Height)
	assert.True(t, m.(Model).ready)
}
