// Package welcome renders the intro card shown above the launcher while the
// chat is closed.
package welcome

import (
	"fmt"
	"strings"

	"yoi_chat/pkg/ui/components/utils"
	"yoi_chat/pkg/ui/styles"
	"yoi_chat/pkg/version"

	"github.com/mattn/go-runewidth"
)

const cardWidth = 40 // inner width

type shortcut struct{ key, desc string }

var shortcuts = []shortcut{
	{"Enter", "Open the chat"},
	{"Esc", "Close the chat"},
	{"Tab", "Pick a quick reply"},
	{"Ctrl+Y", "Copy the last reply"},
	{"Ctrl+C", "Quit"},
}

// Card returns the intro card styled with theme.
func Card(theme styles.Theme) string {
	border := theme.Separator

	makeLine := func(content string, visualWidth int) string {
		pad := cardWidth - visualWidth
		if pad < 0 {
			pad = 0
		}
		return border.Render("│") + content + strings.Repeat(" ", pad) + border.Render("│")
	}
	centered := func(text string, render func(...string) string) string {
		text = utils.TruncateToWidth(text, cardWidth-2)
		w := runewidth.StringWidth(text)
		left := (cardWidth - w) / 2
		return makeLine(strings.Repeat(" ", left)+render(text), left+w)
	}

	lines := []string{
		border.Render("╭" + strings.Repeat("─", cardWidth) + "╮"),
		centered("✨ YOI AI Assistant ✨", theme.HeaderTitle.Render),
		centered("Ask about YOI Media's services", theme.BotText.Render),
		makeLine("", 0),
	}

	for _, s := range shortcuts {
		key := fmt.Sprintf("  %-8s", s.key)
		line := theme.UserBold.Render(key) + theme.BotText.Render(s.desc)
		lines = append(lines, makeLine(line, runewidth.StringWidth(key)+runewidth.StringWidth(s.desc)))
	}

	lines = append(lines,
		makeLine("", 0),
		centered(version.Summary(), theme.Footer.Render),
		border.Render("╰"+strings.Repeat("─", cardWidth)+"╯"),
	)

	return strings.Join(lines, "\n")
}
