package styles

import "testing"

func TestAdjustColor(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		percent float64
		want    string
	}{
		{"brand lighten", "#FF7A00", 20, "#ffad33"},
		{"bare hex", "FF7A00", 20, "#ffad33"},
		{"clamp high", "#FFFFFF", 20, "#ffffff"},
		{"darken", "#336699", -20, "#003366"},
		{"clamp low", "#101010", -20, "#000000"},
		{"zero", "#ABCDEF", 0, "#abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AdjustColor(tt.hex, tt.percent)
			if err != nil {
				t.Fatalf("AdjustColor(%q, %v) error: %v", tt.hex, tt.percent, err)
			}
			if got != tt.want {
				t.Errorf("AdjustColor(%q, %v) = %q, want %q", tt.hex, tt.percent, got, tt.want)
			}
		})
	}
}

func TestAdjustColor_Invalid(t *testing.T) {
	if _, err := AdjustColor("orange", 20); err == nil {
		t.Error("Expected error for non-hex color")
	}
}

func TestNewTheme_FallsBackOnBadColor(t *testing.T) {
	theme, err := NewTheme("not-a-color")
	if err == nil {
		t.Fatal("Expected error for bad brand color")
	}
	if theme.Brand == nil || theme.BrandLight == nil {
		t.Fatal("Expected usable fallback theme")
	}

	def := DefaultTheme()
	r1, g1, b1, _ := theme.Brand.RGBA()
	r2, g2, b2, _ := def.Brand.RGBA()
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Error("Fallback theme should use the default brand color")
	}
}
