// Package viewport provides the scrollable conversation pane.
package viewport

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
)

// MessageViewport wraps Bubble Tea's viewport for the rendered conversation.
// It follows new lines while the user is at the bottom and stays put once
// they scroll up.
type MessageViewport struct {
	Viewport viewport.Model
	lines    []string
	ready    bool
}

// New creates an empty message viewport.
func New() MessageViewport {
	return MessageViewport{
		Viewport: viewport.New(),
	}
}

// SetSize updates the viewport dimensions
func (v *MessageViewport) SetSize(width, height int) {
	follow := v.Viewport.AtBottom()
	v.Viewport.SetWidth(width)
	v.Viewport.SetHeight(height)
	v.ready = true
	if follow {
		v.Viewport.GotoBottom()
	}
}

// SetLines replaces the content with pre-rendered lines.
func (v *MessageViewport) SetLines(lines []string) {
	follow := v.Viewport.AtBottom()
	v.lines = lines
	v.Viewport.SetContent(strings.Join(lines, "\n"))
	if follow {
		v.Viewport.GotoBottom()
	}
}

// View renders the viewport
func (v *MessageViewport) View() string {
	if !v.ready {
		return "Loading..."
	}
	return v.Viewport.View()
}

// PageUp scrolls up one page
func (v *MessageViewport) PageUp() {
	v.Viewport.PageUp()
}

// PageDown scrolls down one page
func (v *MessageViewport) PageDown() {
	v.Viewport.PageDown()
}

// IsAtBottom returns true if scrolled to bottom
func (v *MessageViewport) IsAtBottom() bool {
	return v.Viewport.AtBottom()
}

// ScrollPercent returns how far down the conversation the view is, 0..100.
func (v *MessageViewport) ScrollPercent() int {
	if len(v.lines) <= v.Viewport.Height() {
		return 100
	}
	return int(v.Viewport.ScrollPercent() * 100)
}
