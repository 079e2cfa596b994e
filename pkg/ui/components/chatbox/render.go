package chatbox

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"yoi_chat/pkg/ui/components/utils"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

type textToken struct {
	text        string
	bold        bool
	spaceBefore bool
}

// renderText wraps content to width. With markdown set, **bold** spans render
// with bold; otherwise the text is shown as written. Escape sequences and
// control characters are dropped so remote text cannot drive the terminal.
func renderText(content string, width int, plain, bold lipgloss.Style, markdown bool) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	normalized = sanitizeContent(ansi.Strip(normalized))

	var rendered []string
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.ReplaceAll(line, "\t", "    ")
		if strings.TrimSpace(line) == "" {
			rendered = append(rendered, "")
			continue
		}
		rendered = append(rendered, wrapTokens(tokenize(line, markdown), width, plain, bold)...)
	}

	if len(rendered) == 0 {
		return []string{""}
	}
	return rendered
}

// tokenize splits line at whitespace and, with markdown set, at ** markers.
// A token records whether whitespace preceded it, so "**Bot**." stays glued.
func tokenize(line string, markdown bool) []textToken {
	var (
		tokens []textToken
		sb     strings.Builder
		bold   bool
		space  bool
	)

	flush := func() {
		if sb.Len() == 0 {
			return
		}
		tokens = append(tokens, textToken{text: sb.String(), bold: bold, spaceBefore: space && len(tokens) > 0})
		sb.Reset()
		space = false
	}

	for i := 0; i < len(line); {
		if markdown && strings.HasPrefix(line[i:], "**") {
			flush()
			bold = !bold
			i += 2
			continue
		}
		r, size := utf8.DecodeRuneInString(line[i:])
		if unicode.IsSpace(r) {
			flush()
			space = true
		} else {
			sb.WriteRune(r)
		}
		i += size
	}
	flush()

	return tokens
}

// groupWords joins tokens that touch without whitespace into one word.
func groupWords(tokens []textToken) [][]textToken {
	var words [][]textToken
	for _, token := range tokens {
		if len(words) == 0 || token.spaceBefore {
			words = append(words, []textToken{token})
			continue
		}
		last := len(words) - 1
		words[last] = append(words[last], token)
	}
	return words
}

func wordWidth(word []textToken) int {
	w := 0
	for _, token := range word {
		w += runewidth.StringWidth(token.text)
	}
	return w
}

func wrapTokens(tokens []textToken, width int, plain, bold lipgloss.Style) []string {
	if width <= 0 {
		return []string{""}
	}

	var lines []string
	var lineTokens []textToken
	lineWidth := 0

	flush := func() {
		lines = append(lines, renderTokenLine(lineTokens, plain, bold))
		lineTokens = nil
		lineWidth = 0
	}

	for _, word := range groupWords(tokens) {
		ww := wordWidth(word)
		if lineWidth > 0 && lineWidth+1+ww > width {
			flush()
		}

		if ww <= width {
			for i, token := range word {
				token.spaceBefore = i == 0 && lineWidth > 0
				if token.spaceBefore {
					lineWidth++
				}
				lineTokens = append(lineTokens, token)
				lineWidth += runewidth.StringWidth(token.text)
			}
			continue
		}

		// Wider than a line: break inside the word.
		for _, token := range word {
			for _, part := range utils.SplitByWidth(token.text, width) {
				partWidth := runewidth.StringWidth(part)
				if lineWidth > 0 && lineWidth+partWidth > width {
					flush()
				}
				lineTokens = append(lineTokens, textToken{text: part, bold: token.bold})
				lineWidth += partWidth
			}
		}
	}

	if len(lineTokens) > 0 {
		flush()
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func renderTokenLine(tokens []textToken, plain, bold lipgloss.Style) string {
	var sb strings.Builder
	for _, token := range tokens {
		if token.spaceBefore {
			sb.WriteString(plain.Render(" "))
		}
		if token.bold {
			sb.WriteString(bold.Render(token.text))
		} else {
			sb.WriteString(plain.Render(token.text))
		}
	}
	return sb.String()
}

func sanitizeContent(content string) string {
	if content == "" {
		return content
	}
	var sb strings.Builder
	sb.Grow(len(content))
	for _, r := range content {
		switch r {
		case '\n', '\t':
			sb.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
