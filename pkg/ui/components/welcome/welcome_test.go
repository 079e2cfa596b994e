package welcome

import (
	"strings"
	"testing"

	"yoi_chat/pkg/ui/styles"

	"charm.land/lipgloss/v2"
)

func TestCard_ContainsShortcuts(t *testing.T) {
	card := Card(styles.DefaultTheme())

	for _, key := range []string{"Enter", "Esc", "Tab", "Ctrl+Y", "Ctrl+C"} {
		if !strings.Contains(card, key) {
			t.Errorf("Expected card to contain shortcut %q", key)
		}
	}
}

func TestCard_ContainsTitle(t *testing.T) {
	if !strings.Contains(Card(styles.DefaultTheme()), "YOI AI Assistant") {
		t.Error("Expected card to contain title")
	}
}

func TestCard_LinesHaveEqualWidth(t *testing.T) {
	lines := strings.Split(Card(styles.DefaultTheme()), "\n")
	if len(lines) < 3 {
		t.Fatalf("Unexpected card: %v", lines)
	}

	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("Line %d width %d, want %d: %q", i, w, want, line)
		}
	}
}
