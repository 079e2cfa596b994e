package styles

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// AdjustColor shifts each RGB channel of hex by percent of full scale
// (2.55 per percent, rounded half up) and clamps to 0..255. Positive percent
// lightens, negative darkens. The result is a lowercase #rrggbb string.
func AdjustColor(hex string, percent float64) (string, error) {
	c, err := colorful.Hex(normalizeHex(hex))
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", hex, err)
	}

	amt := int(math.Floor(2.55*percent + 0.5))
	r, g, b := c.RGB255()

	return fmt.Sprintf("#%02x%02x%02x",
		clampChannel(int(r)+amt),
		clampChannel(int(g)+amt),
		clampChannel(int(b)+amt)), nil
}

func clampChannel(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return v
	}
}

func normalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasPrefix(s, "#") {
		return "#" + s
	}
	return s
}
