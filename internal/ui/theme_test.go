package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNextThemeCycles(t *testing.T) {
	names := ThemeNames()
	for i, name := range names {
		want := names[(i+1)%len(names)]
		if got := NextTheme(name); got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", name, got, want)
		}
	}
	if got := NextTheme("missing"); got != names[0] {
		t.Fatalf("NextTheme(missing) = %q, want %q", got, names[0])
	}
}

func TestGetThemeFallsBack(t *testing.T) {
	if got := GetTheme("missing").Name; got != "Pantry" {
		t.Fatalf("GetTheme(missing) = %q, want Pantry", got)
	}
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%q) = %q", name, got)
		}
	}
}

func TestThemeNamesIsCopy(t *testing.T) {
	names := ThemeNames()
	names[0] = "changed"
	if ThemeNames()[0] == "changed" {
		t.Fatalf("ThemeNames exposes internal order")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{in: "Tofu Bowl", n: 20, want: "Tofu Bowl"},
		{in: "Tofu   Bowl\n", n: 20, want: "Tofu Bowl"},
		{in: "Banana Bread", n: 7, want: "Banana…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestBgStyleSpreadFillsWidth(t *testing.T) {
	bg := NewBgStyle("#000000")
	out := bg.Spread("left", "right", 30)
	if got := lipgloss.Width(out); got != 30 {
		t.Fatalf("Spread width = %d, want 30", got)
	}
	if !strings.Contains(out, "left") || !strings.Contains(out, "right") {
		t.Fatalf("Spread = %q, want both sides", out)
	}
}
