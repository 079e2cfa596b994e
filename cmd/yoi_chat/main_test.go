package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"yoi_chat/pkg/chat"
	"yoi_chat/pkg/chat/chattest"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the command tree against an isolated home directory.
func runCLI(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", home)
	base := []string{
		"--config", filepath.Join(home, ".yoi_chat", "config.json"),
		"--env-file", filepath.Join(home, "missing.env"),
	}

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(base, args...))

	err := root.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "yoi_chat version")
	assert.Contains(t, out, "platform:")
}

func TestConfigPathCmd(t *testing.T) {
	home := t.TempDir()
	out, err := runCLI(t, home, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".yoi_chat", "config.json"), strings.TrimSpace(out))
	assert.FileExists(t, filepath.Join(home, ".yoi_chat", "config.json"))
}

func TestConfigShowRedactsSecrets(t *testing.T) {
	t.Setenv("YOI_REDIS_PASSWORD", "hunter2")
	t.Setenv("YOI_BRAND_COLOR", "#336699")

	out, err := runCLI(t, t.TempDir(), "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"brand_color": "#336699"`)
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, redacted)
}

func TestInvalidConfigFails(t *testing.T) {
	t.Setenv("YOI_POSITION", "top-left")

	_, err := runCLI(t, t.TempDir(), "session", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widget.position")
}

func TestSendAndSessionLifecycle(t *testing.T) {
	srv := chattest.NewServer(t)
	srv.SetSessionID("abc123")
	t.Setenv("YOI_API_URL", srv.ChatURL())
	home := t.TempDir()

	out, err := runCLI(t, home, "session", "show")
	require.NoError(t, err)
	assert.Equal(t, "no session", strings.TrimSpace(out))

	out, err = runCLI(t, home, "send", "hello", "there")
	require.NoError(t, err)
	assert.Equal(t, "echo: hello there", strings.TrimSpace(out))

	out, err = runCLI(t, home, "session", "show")
	require.NoError(t, err)
	assert.Equal(t, "abc123", strings.TrimSpace(out))
	assert.FileExists(t, filepath.Join(home, ".yoi_chat", "storage.json"))

	_, err = runCLI(t, home, "send", "again")
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.True(t, reqs[0].SessionIDNull)
	assert.Equal(t, "abc123", reqs[1].SessionID)
	assert.Equal(t, "en", reqs[0].Language)

	out, err = runCLI(t, home, "session", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "session cleared")

	out, err = runCLI(t, home, "session", "show")
	require.NoError(t, err)
	assert.Equal(t, "no session", strings.TrimSpace(out))
}

func TestSendFailurePrintsApology(t *testing.T) {
	srv := chattest.NewServer(t)
	srv.SetMode(chattest.ModeStatusError)
	t.Setenv("YOI_API_URL", srv.ChatURL())

	out, err := runCLI(t, t.TempDir(), "send", "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNoReply))
	assert.Contains(t, out, chat.DefaultApology)
}

func TestSendPrintsReplyVerbatim(t *testing.T) {
	srv := chattest.NewServer(t)
	t.Setenv("YOI_API_URL", srv.ChatURL())

	out, err := runCLI(t, t.TempDir(), "--ephemeral", "send", "is 2**10 = 1024?")
	require.NoError(t, err)
	assert.Equal(t, "echo: is 2**10 = 1024?", strings.TrimSpace(out))
}

func TestSendSanitizedReplyDropsMarkers(t *testing.T) {
	srv := chattest.NewServer(t)
	t.Setenv("YOI_API_URL", srv.ChatURL())
	t.Setenv("YOI_MARKUP", "sanitize")

	out, err := runCLI(t, t.TempDir(), "--ephemeral", "send", "<b>hi</b> <script>x</script>")
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", strings.TrimSpace(out))
}

func TestSendEphemeralKeepsNothing(t *testing.T) {
	srv := chattest.NewServer(t)
	t.Setenv("YOI_API_URL", srv.ChatURL())
	home := t.TempDir()

	_, err := runCLI(t, home, "--ephemeral", "send", "hi")
	require.NoError(t, err)

	out, err := runCLI(t, home, "session", "show")
	require.NoError(t, err)
	assert.Equal(t, "no session", strings.TrimSpace(out))
}

func TestSessionStoreDrivers(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		srv := chattest.NewServer(t)
		srv.SetSessionID("sqlite-session")
		t.Setenv("YOI_API_URL", srv.ChatURL())
		t.Setenv("YOI_STORE_TYPE", "sqlite")
		home := t.TempDir()

		_, err := runCLI(t, home, "send", "hi")
		require.NoError(t, err)

		out, err := runCLI(t, home, "session", "show")
		require.NoError(t, err)
		assert.Equal(t, "sqlite-session", strings.TrimSpace(out))
		assert.FileExists(t, filepath.Join(home, ".yoi_chat", "storage.db"))
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		srv := chattest.NewServer(t)
		srv.SetSessionID("redis-session")
		t.Setenv("YOI_API_URL", srv.ChatURL())
		t.Setenv("YOI_STORE_TYPE", "redis")
		t.Setenv("YOI_REDIS_ADDR", mr.Addr())

		_, err := runCLI(t, t.TempDir(), "send", "hi")
		require.NoError(t, err)

		got, err := mr.Get("yoi:yoi_session_id")
		require.NoError(t, err)
		assert.Equal(t, "redis-session", got)
	})
}
