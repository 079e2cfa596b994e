// Package chatbox renders the open chat panel: header, conversation, quick
// replies and the message input.
package chatbox

import (
	"strings"

	"yoi_chat/pkg/chat"
	"yoi_chat/pkg/chat/markup"
	"yoi_chat/pkg/ui/components/utils"
	"yoi_chat/pkg/ui/components/viewport"
	"yoi_chat/pkg/ui/styles"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const (
	headerTitle   = "YOI AI"
	headerStatus  = "Online • Ready to help"
	typingLabel   = "YOI is typing • • •"
	footerLabel   = "Enter Send | Tab Replies | Ctrl+Y Copy | Esc Close"
	placeholder   = "Type your message..."
	borderSize    = 1
	paddingH      = 1
	bubblePercent = 80
)

// ChatBox is the open chat panel.
type ChatBox struct {
	theme    styles.Theme
	renderer *markup.Renderer
	input    textarea.Model

	width  int
	height int

	entries      []chat.Entry
	quickReplies []chat.QuickReply
	showQuick    bool
	quickFocus   bool
	quickIndex   int

	lines []string
	pane  viewport.MessageViewport
}

// New creates a chat box that styles with theme and formats text with renderer.
func New(theme styles.Theme, renderer *markup.Renderer, quickReplies []chat.QuickReply) *ChatBox {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = "› "
	ta.SetHeight(1)

	if renderer == nil {
		renderer = markup.New(markup.ModeEscape)
	}

	return &ChatBox{
		theme:        theme,
		renderer:     renderer,
		input:        ta,
		quickReplies: quickReplies,
		pane:         viewport.New(),
	}
}

// SetSize sets the outer size of the box, border included.
func (c *ChatBox) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.input.SetWidth(c.contentWidth())
	c.reflow()
	c.pane.SetSize(c.contentWidth(), c.bodyHeight())
}

// Width returns the outer width.
func (c *ChatBox) Width() int {
	return c.width
}

// SetEntries replaces the displayed conversation.
func (c *ChatBox) SetEntries(entries []chat.Entry, showQuickReplies bool) {
	c.entries = entries
	showQuick := showQuickReplies && len(c.quickReplies) > 0
	if !showQuick {
		c.quickFocus = false
		c.input.Focus()
	}
	if showQuick != c.showQuick {
		c.showQuick = showQuick
		c.pane.SetSize(c.contentWidth(), c.bodyHeight())
	}
	c.reflow()
}

// Focus focuses the message input.
func (c *ChatBox) Focus() tea.Cmd {
	c.quickFocus = false
	return c.input.Focus()
}

// Value returns the current input text.
func (c *ChatBox) Value() string {
	return c.input.Value()
}

// SetValue replaces the input text.
func (c *ChatBox) SetValue(s string) {
	c.input.SetValue(s)
}

// Reset clears the input.
func (c *ChatBox) Reset() {
	c.input.Reset()
}

// QuickRepliesFocused reports whether keys go to the quick-reply row.
func (c *ChatBox) QuickRepliesFocused() bool {
	return c.quickFocus
}

// ToggleQuickReplies moves focus between the input and the quick-reply row.
// It does nothing while the quick replies are hidden.
func (c *ChatBox) ToggleQuickReplies() {
	if !c.showQuick {
		return
	}
	c.quickFocus = !c.quickFocus
	if c.quickFocus {
		c.input.Blur()
	} else {
		c.input.Focus()
	}
}

// MoveQuickReply moves the quick-reply selection by delta, wrapping around.
func (c *ChatBox) MoveQuickReply(delta int) {
	n := len(c.quickReplies)
	if n == 0 {
		return
	}
	c.quickIndex = ((c.quickIndex+delta)%n + n) % n
}

// SelectedQuickReply returns the highlighted quick reply index.
func (c *ChatBox) SelectedQuickReply() int {
	return c.quickIndex
}

// Update routes a key to the input or the scroll position.
func (c *ChatBox) Update(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "pgup":
		c.pane.PageUp()
		return nil
	case "pgdown":
		c.pane.PageDown()
		return nil
	}

	if c.quickFocus {
		return nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// HandlePaste inserts pasted text into the input as a single line.
func (c *ChatBox) HandlePaste(content string) {
	if c.quickFocus {
		return
	}
	content = strings.ReplaceAll(content, "\r\n", " ")
	content = strings.ReplaceAll(content, "\n", " ")
	c.input.InsertString(content)
}

// View renders the box.
func (c *ChatBox) View() string {
	width := c.contentWidth()
	sep := c.theme.Separator.Render(strings.Repeat("─", width))

	lines := make([]string, 0, c.contentHeight())
	lines = append(lines,
		utils.PadStyled(c.theme.HeaderTitle.Render(utils.TruncateToWidth(headerTitle, width)), width),
		utils.PadStyled(c.theme.HeaderStatus.Render(utils.TruncateToWidth(headerStatus, width)), width),
		sep,
	)

	for _, line := range strings.Split(c.pane.View(), "\n") {
		lines = append(lines, utils.PadStyled(line, width))
	}

	if c.showQuick {
		lines = append(lines, utils.PadStyled(c.renderQuickReplies(width), width))
	}

	lines = append(lines, sep)
	inputView := strings.SplitN(c.input.View(), "\n", 2)[0]
	lines = append(lines, utils.PadStyled(inputView, width))
	lines = append(lines, utils.PadStyled(c.theme.Footer.Render(utils.TruncateToWidth(footerLabel, width)), width))

	return c.theme.Box.Render(strings.Join(lines, "\n"))
}

func (c *ChatBox) renderQuickReplies(width int) string {
	chips := make([]string, 0, len(c.quickReplies))
	for i, qr := range c.quickReplies {
		style := c.theme.QuickReply
		if c.quickFocus && i == c.quickIndex {
			style = c.theme.QuickReplySelected
		}
		chips = append(chips, style.Render(utils.TruncateToWidth(qr.Label, width-2)))
	}

	// The selected chip must stay visible when the row overflows.
	start := 0
	if c.quickFocus && lipgloss.Width(strings.Join(chips[:c.quickIndex+1], " ")) > width {
		start = c.quickIndex
	}

	row := ""
	for _, chip := range chips[start:] {
		next := chip
		if row != "" {
			next = row + " " + chip
		}
		if lipgloss.Width(next) > width {
			break
		}
		row = next
	}
	return row
}

func (c *ChatBox) reflow() {
	width := c.contentWidth()
	bubble := width * bubblePercent / 100
	if bubble < 1 {
		bubble = width
	}

	var lines []string
	for i, e := range c.entries {
		if i > 0 {
			lines = append(lines, "")
		}
		if e.IsTyping() {
			lines = append(lines, c.theme.Typing.Render(utils.TruncateToWidth(typingLabel, width)))
			continue
		}

		msg := e.Message
		if msg.Role == chat.RoleUser {
			for _, line := range renderText(msg.Text, bubble, c.theme.UserText, c.theme.UserBold, false) {
				lines = append(lines, utils.AlignRight(line, width))
			}
			continue
		}
		trusted := msg.Origin == chat.OriginLocal
		text := c.renderer.Format(msg.Text, trusted)
		lines = append(lines, renderText(text, bubble, c.theme.BotText, c.theme.BotBold, c.renderer.Marked(trusted))...)
	}
	c.lines = lines
	c.pane.SetLines(lines)
}

func (c *ChatBox) contentWidth() int {
	w := c.width - 2*borderSize - 2*paddingH
	if w < 1 {
		return 1
	}
	return w
}

func (c *ChatBox) contentHeight() int {
	h := c.height - 2*borderSize
	if h < 1 {
		return 1
	}
	return h
}

// bodyHeight is what remains for messages after the header (3 lines), the
// quick-reply row, the separator, input and footer.
func (c *ChatBox) bodyHeight() int {
	fixed := 6
	if c.showQuick {
		fixed++
	}
	h := c.contentHeight() - fixed
	if h < 1 {
		return 1
	}
	return h
}
