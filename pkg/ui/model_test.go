package ui

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"yoi_chat/pkg/chat"
	"yoi_chat/pkg/chat/chattest"
	"yoi_chat/pkg/chat/markup"
	"yoi_chat/pkg/config"
	"yoi_chat/pkg/store"
	"yoi_chat/pkg/ui/components/testutils"
	"yoi_chat/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

type testEnv struct {
	srv       *chattest.Server
	client    *chat.Client
	clipboard *bytes.Buffer
}

func newTestModel(t *testing.T, position string) (Model, *testEnv) {
	t.Helper()

	srv := chattest.NewServer(t)
	tr, err := chat.NewHTTPTransport(srv.ChatURL(), 5*time.Second)
	if err != nil {
		t.Fatalf("NewHTTPTransport() failed: %v", err)
	}
	client, err := chat.NewClient(context.Background(), tr, store.NewMemoryStore(),
		chat.WithAfterFunc(func(_ time.Duration, f func()) { f() }))
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}

	env := &testEnv{srv: srv, client: client, clipboard: &bytes.Buffer{}}
	m := NewModel(context.Background(), client, Options{
		Theme:     styles.DefaultTheme(),
		Renderer:  markup.New(markup.ModeEscape),
		Position:  position,
		Clipboard: env.clipboard,
	})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), env
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, k := range testutils.TextKeys(text) {
		m, _ = update(t, m, k)
	}
	return m
}

func plain(m Model) string {
	return ansi.Strip(m.Render())
}

func TestModel_InitListensForChanges(t *testing.T) {
	m, env := newTestModel(t, config.PositionBottomRight)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Expected Init() to return a command")
	}

	env.client.Open()
	if _, ok := cmd().(clientChangedMsg); !ok {
		t.Fatal("Expected clientChangedMsg after the client changed")
	}

	m, next := update(t, m, clientChangedMsg{})
	if next == nil {
		t.Error("Expected the listener to be re-armed")
	}
	if !strings.Contains(plain(m), "Online • Ready to help") {
		t.Error("Expected chat box after change notification")
	}
}

func TestModel_RenderBeforeSize(t *testing.T) {
	srv := chattest.NewServer(t)
	tr, _ := chat.NewHTTPTransport(srv.ChatURL(), 0)
	client, _ := chat.NewClient(context.Background(), tr, store.NewMemoryStore())

	m := NewModel(context.Background(), client, Options{})
	if got := m.Render(); got != "Initializing..." {
		t.Errorf("Expected placeholder before first size, got %q", got)
	}
}

func TestModel_LauncherWhenClosed(t *testing.T) {
	m, _ := newTestModel(t, config.PositionBottomRight)

	view := plain(m)
	if !strings.Contains(view, "Chat with YOI") {
		t.Errorf("Expected launcher, got:\n%s", view)
	}
	if !strings.Contains(view, "YOI AI Assistant") {
		t.Errorf("Expected intro card, got:\n%s", view)
	}
	if strings.Contains(view, "Online • Ready to help") {
		t.Error("Chat box should be hidden before opening")
	}

	v := m.View()
	if !v.AltScreen {
		t.Error("Expected alt screen view")
	}
}

func TestModel_OpenGreetsOnce(t *testing.T) {
	m, env := newTestModel(t, config.PositionBottomRight)

	m, _ = update(t, m, testutils.TestKeyEnter)
	if !env.client.IsOpen() {
		t.Fatal("Expected Enter to open the chat")
	}
	view := plain(m)
	if !strings.Contains(view, "YOI AI") || !strings.Contains(view, "Online • Ready to help") {
		t.Errorf("Expected header, got:\n%s", view)
	}
	if !strings.Contains(view, "I'm YOI Bot.") {
		t.Errorf("Expected greeting, got:\n%s", view)
	}
	if !strings.Contains(view, "Our Services") {
		t.Errorf("Expected quick replies, got:\n%s", view)
	}

	m, _ = update(t, m, testutils.TestKeyEsc)
	if env.client.IsOpen() {
		t.Fatal("Expected Esc to close the chat")
	}
	if strings.Contains(plain(m), "Online • Ready to help") {
		t.Error("Chat box should be hidden after closing")
	}

	m, _ = update(t, m, testutils.TestKeyEnter)
	if got := len(env.client.Messages()); got != 1 {
		t.Errorf("Expected a single greeting after reopening, got %d messages", got)
	}
}

func TestModel_SendMessage(t *testing.T) {
	m, env := newTestModel(t, config.PositionBottomRight)
	m, _ = update(t, m, testutils.TestKeyEnter)

	m = typeText(t, m, "hello")
	m, cmd := update(t, m, testutils.TestKeyEnter)
	if cmd == nil {
		t.Fatal("Expected a command to complete the exchange")
	}

	view := plain(m)
	if !strings.Contains(view, "hello") || !strings.Contains(view, "YOI is typing") {
		t.Errorf("Expected user message and typing indicator, got:\n%s", view)
	}
	if strings.Contains(view, "Our Services") {
		t.Error("Quick replies should hide after sending")
	}

	done := cmd()
	if _, ok := done.(exchangeDoneMsg); !ok {
		t.Fatalf("Expected exchangeDoneMsg, got %T", done)
	}
	m, _ = update(t, m, done)

	view = plain(m)
	if !strings.Contains(view, "echo: hello") {
		t.Errorf("Expected reply, got:\n%s", view)
	}
	if strings.Contains(view, "YOI is typing") {
		t.Error("Typing indicator should be removed")
	}

	reqs := env.srv.Requests()
	if len(reqs) != 1 || reqs[0].Message != "hello" || !reqs[0].SessionIDNull {
		t.Errorf("Unexpected requests: %+v", reqs)
	}
}

func TestModel_BlankInputSendsNothing(t *testing.T) {
	m, env := newTestModel(t, config.PositionBottomRight)
	m, _ = update(t, m, testutils.TestKeyEnter)

	m = typeText(t, m, "   ")
	_, cmd := update(t, m, testutils.TestKeyEnter)
	if cmd != nil {
		t.Error("Expected no command for blank input")
	}
	if len(env.srv.Requests()) != 0 {
		t.Error("Expected no request for blank input")
	}
	if got := len(env.client.Messages()); got != 1 {
		t.Errorf("Expected only the greeting, got %d messages", got)
	}
}

func TestModel_QuickReply(t *testing.T) {
	m, env := newTestModel(t, config.PositionBottomRight)
	m, _ = update(t, m, testutils.TestKeyEnter)

	m, _ = update(t, m, testutils.TestKeyTab)
	m, _ = update(t, m, testutils.TestKeyRight)
	m, cmd := update(t, m, testutils.TestKeyEnter)
	if cmd == nil {
		t.Fatal("Expected quick reply to start an exchange")
	}
	m, _ = update(t, m, cmd())

	if env.client.QuickRepliesVisible() {
		t.Error("Quick replies should be hidden after use")
	}
	msgs := env.client.Messages()
	if len(msgs) != 3 || msgs[1].Text != "How can YOI help my business?" {
		t.Errorf("Unexpected messages: %+v", msgs)
	}
	if !strings.Contains(plain(m), "echo: How can YOI help my business?") {
		t.Errorf("Expected reply in view, got:\n%s", plain(m))
	}
}

func TestModel_Position(t *testing.T) {
	tests := []struct {
		position string
		check    func(line string) bool
	}{
		{config.PositionBottomLeft, func(line string) bool {
			return strings.HasPrefix(line, "  💬 Chat with YOI")
		}},
		{config.PositionBottomRight, func(line string) bool {
			return strings.HasSuffix(line, "Chat with YOI  ") && strings.Index(line, "💬") > 50
		}},
	}

	for _, tt := range tests {
		t.Run(tt.position, func(t *testing.T) {
			m, _ := newTestModel(t, tt.position)
			lines := strings.Split(plain(m), "\n")

			found := false
			for i, line := range lines {
				if strings.Contains(line, "Chat with YOI") {
					found = true
					if i < len(lines)-3 {
						t.Errorf("Launcher should sit at the bottom, found on line %d of %d", i, len(lines))
					}
					if !tt.check(line) {
						t.Errorf("Launcher misplaced: %q", line)
					}
				}
			}
			if !found {
				t.Fatal("Launcher not rendered")
			}
		})
	}
}

func TestModel_CopyLastReply(t *testing.T) {
	m, env := newTestModel(t, config.PositionBottomRight)
	m, _ = update(t, m, testutils.TestKeyEnter)
	m = typeText(t, m, "hi")
	m, cmd := update(t, m, testutils.TestKeyEnter)
	m, _ = update(t, m, cmd())

	m, cmd = update(t, m, testutils.TestKeyCtrlY)
	if cmd == nil {
		t.Fatal("Expected copy command")
	}
	cmd()

	encoded := base64.StdEncoding.EncodeToString([]byte("echo: hi"))
	if !strings.Contains(env.clipboard.String(), encoded) {
		t.Errorf("Expected OSC 52 payload for reply, got %q", env.clipboard.String())
	}
	if !strings.Contains(plain(m), "Reply copied") {
		t.Error("Expected copy notice")
	}
}

func TestModel_Paste(t *testing.T) {
	m, env := newTestModel(t, config.PositionBottomRight)
	m, _ = update(t, m, testutils.TestKeyEnter)

	m, _ = update(t, m, tea.PasteMsg{Content: "pasted\ntext"})
	m, cmd := update(t, m, testutils.TestKeyEnter)
	if cmd == nil {
		t.Fatal("Expected pasted text to be sent")
	}
	cmd()

	reqs := env.srv.Requests()
	if len(reqs) != 1 || reqs[0].Message != "pasted text" {
		t.Errorf("Unexpected requests: %+v", reqs)
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, config.PositionBottomRight)

	_, cmd := update(t, m, testutils.TestKeyCtrlC)
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}
