package sankey

import "testing"

func TestPalette_CyclesDistinctColors(t *testing.T) {
	var p Palette

	first := p.Pick()
	seen := map[string]bool{first: true}
	for i := 1; i < len(colorPalette); i++ {
		c := p.Pick()
		if seen[c] {
			t.Errorf("color %q repeated before the palette was exhausted", c)
		}
		seen[c] = true
	}

	// Wraps around after exhausting the palette.
	if c := p.Pick(); c != first {
		t.Errorf("after full cycle got %q, want %q", c, first)
	}
}

func TestRGBA(t *testing.T) {
	tests := []struct {
		hex   string
		alpha float64
		want  string
	}{
		{"4E79A7", 1.0, "rgba(78,121,167,1)"},
		{"4E79A7", 0.35, "rgba(78,121,167,0.35)"},
		{"000000", 0.5, "rgba(0,0,0,0.5)"},
		{"", 1.0, "rgba(128,128,128,1)"},
		{"zzzzzz", 1.0, "rgba(128,128,128,1)"},
	}
	for _, tt := range tests {
		if got := RGBA(tt.hex, tt.alpha); got != tt.want {
			t.Errorf("RGBA(%q, %g) = %q, want %q", tt.hex, tt.alpha, got, tt.want)
		}
	}
}
