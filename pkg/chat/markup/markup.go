// Package markup turns reply text into the lightweight markdown the chat
// box renders: **bold** spans and line breaks.
package markup

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Mode selects how markup in remote text is treated.
type Mode string

const (
	// ModeEscape shows text verbatim. Tags appear as typed.
	ModeEscape Mode = "escape"
	// ModeSanitize keeps bold, paragraphs and line breaks and drops every
	// other tag.
	ModeSanitize Mode = "sanitize"
	// ModeRaw interprets known tags without sanitizing first.
	ModeRaw Mode = "raw"
)

// ParseMode validates a configured mode name. Empty means ModeEscape.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeEscape, nil
	case ModeEscape, ModeSanitize, ModeRaw:
		return m, nil
	default:
		return "", fmt.Errorf("unknown markup mode: %q", s)
	}
}

var (
	boldTag    = regexp.MustCompile(`(?i)<\s*/?\s*(strong|b)\s*>`)
	breakTag   = regexp.MustCompile(`(?i)<\s*br\s*/?\s*>`)
	paraOpen   = regexp.MustCompile(`(?i)<\s*p\s*>`)
	paraClose  = regexp.MustCompile(`(?i)<\s*/\s*p\s*>`)
	manyBreaks = regexp.MustCompile(`\n{3,}`)
)

// Renderer formats message text for display.
type Renderer struct {
	mode   Mode
	policy *bluemonday.Policy
}

// New creates a renderer for mode. Unknown modes fall back to ModeEscape.
func New(mode Mode) *Renderer {
	switch mode {
	case ModeEscape, ModeSanitize, ModeRaw:
	default:
		mode = ModeEscape
	}

	policy := bluemonday.NewPolicy()
	policy.AllowElements("strong", "b", "br", "p")

	return &Renderer{mode: mode, policy: policy}
}

// Mode returns the configured mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Format converts text for the chat box. Trusted text (the greeting and other
// locally configured strings) is always sanitized and formatted, whatever the
// mode.
func (r *Renderer) Format(text string, trusted bool) string {
	mode := r.mode
	if trusted {
		mode = ModeSanitize
	}

	switch mode {
	case ModeSanitize:
		return convert(r.policy.Sanitize(text))
	case ModeRaw:
		return convert(text)
	default:
		return text
	}
}

// Marked reports whether Format output for text of the given trust uses
// **bold** markers. Escaped remote text never does: a literal ** in it is
// part of the message.
func (r *Renderer) Marked(trusted bool) bool {
	return trusted || r.mode != ModeEscape
}

func convert(s string) string {
	s = boldTag.ReplaceAllString(s, "**")
	s = breakTag.ReplaceAllString(s, "\n")
	s = paraOpen.ReplaceAllString(s, "")
	s = paraClose.ReplaceAllString(s, "\n\n")
	s = manyBreaks.ReplaceAllString(s, "\n\n")
	return strings.TrimRight(html.UnescapeString(s), "\n")
}
