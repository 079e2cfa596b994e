package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"yoi_chat/pkg/chat"
	"yoi_chat/pkg/chat/markup"
	"yoi_chat/pkg/config"
	"yoi_chat/pkg/logging"
	"yoi_chat/pkg/ui/components/chatbox"
	"yoi_chat/pkg/ui/components/welcome"
	"yoi_chat/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

const (
	launcherLabel = "💬 Chat with YOI"
	launcherHint  = "Enter open | q quit"
	maxBoxWidth   = 56
	maxBoxHeight  = 28
	copiedNotice  = "Reply copied to clipboard"

	// launcherHeight reserves room for the button and its hint line.
	launcherHeight = 2
)

// Options configures the UI model.
type Options struct {
	Theme     styles.Theme
	Renderer  *markup.Renderer
	Position  string    // config.PositionBottomLeft or config.PositionBottomRight
	Clipboard io.Writer // receives OSC 52 sequences; defaults to stdout
	Logger    *slog.Logger
}

// Model represents the Bubble Tea application state
type Model struct {
	ctx    context.Context
	client *chat.Client

	// UI Components
	chatBox *chatbox.ChatBox

	theme     styles.Theme
	position  string
	clipboard io.Writer
	logger    *slog.Logger

	// UI state
	width  int
	height int
	ready  bool
	notice string
}

// NewModel creates a new Bubble Tea model around client. Exchanges started
// from the UI run with ctx.
func NewModel(ctx context.Context, client *chat.Client, opts Options) Model {
	if opts.Theme.Brand == nil {
		opts.Theme = styles.DefaultTheme()
	}
	if opts.Position == "" {
		opts.Position = config.PositionBottomRight
	}
	if opts.Clipboard == nil {
		opts.Clipboard = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	m := Model{
		ctx:       ctx,
		client:    client,
		chatBox:   chatbox.New(opts.Theme, opts.Renderer, client.QuickReplies()),
		theme:     opts.Theme,
		position:  opts.Position,
		clipboard: opts.Clipboard,
		logger:    opts.Logger,
	}
	m.sync()
	return m
}

// Init initializes the model (Bubble Tea lifecycle method)
func (m Model) Init() tea.Cmd {
	return listenForChanges(m.ctx, m.client)
}

// clientChangedMsg signals that the chat client state moved on, for example
// after the delayed greeting.
type clientChangedMsg struct{}

// exchangeDoneMsg is returned once a request started from the UI resolves.
type exchangeDoneMsg struct {
	reply chat.Message
}

// listenForChanges waits for the next client change notification.
func listenForChanges(ctx context.Context, client *chat.Client) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-client.Changes():
			return clientChangedMsg{}
		}
	}
}

// completeExchange runs the network half of a send off the event loop.
func completeExchange(ctx context.Context, p *chat.Pending) tea.Cmd {
	return func() tea.Msg {
		return exchangeDoneMsg{reply: p.Complete(ctx)}
	}
}

// Update handles messages and updates model state (Bubble Tea lifecycle method)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case clientChangedMsg:
		m.sync()
		return m, listenForChanges(m.ctx, m.client)

	case exchangeDoneMsg:
		m.sync()
		return m, nil

	case tea.PasteMsg:
		if m.client.IsOpen() {
			m.chatBox.HandlePaste(msg.Content)
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if !m.client.IsOpen() {
		switch key {
		case "enter", "space", "o":
			m.client.Open()
			m.sync()
			return m, m.chatBox.Focus()
		case "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	}

	switch key {
	case "esc":
		m.client.Close()
		m.sync()
		return m, nil

	case "ctrl+y":
		return m, m.copyLastReply()

	case "tab":
		m.chatBox.ToggleQuickReplies()
		return m, nil

	case "enter":
		if m.chatBox.QuickRepliesFocused() {
			return m, m.sendQuickReply(m.chatBox.SelectedQuickReply())
		}
		return m, m.sendInput()
	}

	if m.chatBox.QuickRepliesFocused() {
		switch key {
		case "left", "shift+tab":
			m.chatBox.MoveQuickReply(-1)
			return m, nil
		case "right":
			m.chatBox.MoveQuickReply(1)
			return m, nil
		}
	}

	return m, m.chatBox.Update(msg)
}

func (m Model) sendInput() tea.Cmd {
	p, ok := m.client.Begin(m.chatBox.Value())
	m.chatBox.Reset()
	if !ok {
		return nil
	}
	m.sync()
	return completeExchange(m.ctx, p)
}

func (m Model) sendQuickReply(index int) tea.Cmd {
	p, ok := m.client.BeginQuickReply(index)
	if !ok {
		return nil
	}
	m.sync()
	return completeExchange(m.ctx, p)
}

func (m *Model) copyLastReply() tea.Cmd {
	text, ok := m.client.LastReply()
	if !ok {
		return nil
	}
	m.notice = copiedNotice
	w := m.clipboard
	logger := m.logger
	return func() tea.Msg {
		if _, err := fmt.Fprint(w, osc52.New(text)); err != nil {
			logger.Warn("clipboard copy failed", "error", err)
		}
		return nil
	}
}

// sync copies client state into the chat box.
func (m Model) sync() {
	m.chatBox.SetEntries(m.client.Entries(), m.client.QuickRepliesVisible())
}

func (m *Model) resize() {
	w := m.width - 2
	if w > maxBoxWidth {
		w = maxBoxWidth
	}
	h := m.height - launcherHeight
	if h > maxBoxHeight {
		h = maxBoxHeight
	}
	m.chatBox.SetSize(w, h)
}

// View renders the UI (Bubble Tea lifecycle method)
func (m Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}

// Render returns the screen contents: the launcher in the configured bottom
// corner, with the chat box stacked above it while open.
func (m Model) Render() string {
	if !m.ready {
		return "Initializing..."
	}

	align := lipgloss.Right
	if m.position == config.PositionBottomLeft {
		align = lipgloss.Left
	}

	var sections []string
	if m.client.IsOpen() {
		sections = append(sections, m.chatBox.View())
	} else {
		sections = append(sections, welcome.Card(m.theme))
	}
	sections = append(sections, m.renderLauncher())

	content := lipgloss.JoinVertical(align, sections...)
	return lipgloss.Place(m.width, m.height, align, lipgloss.Bottom, content)
}

func (m Model) renderLauncher() string {
	hint := launcherHint
	if m.client.IsOpen() {
		hint = ""
	}
	if m.notice != "" {
		hint = m.notice
	}

	button := m.theme.Launcher.Render(launcherLabel)
	if hint == "" {
		return button
	}

	align := lipgloss.Right
	if m.position == config.PositionBottomLeft {
		align = lipgloss.Left
	}
	return lipgloss.JoinVertical(align, button, m.theme.Footer.Render(hint))
}
