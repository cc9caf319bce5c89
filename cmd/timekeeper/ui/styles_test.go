package ui

import (
	"strings"
	"testing"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("TIMEKEEPER_DARK_MODE", "1")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme when TIMEKEEPER_DARK_MODE=1")
	}

	t.Setenv("TIMEKEEPER_DARK_MODE", "")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme when TIMEKEEPER_DARK_MODE is unset")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for a black COLORFGBG background")
	}
}

func TestThemeByName(t *testing.T) {
	if ThemeByName("dark").IsDark != true {
		t.Fatal("expected dark")
	}
	if ThemeByName("LIGHT").IsDark {
		t.Fatal("expected light")
	}
}

func TestRenderDivider(t *testing.T) {
	s := NewStyles(LightTheme())
	if got := s.RenderDivider(4); !strings.Contains(got, "────") {
		t.Fatalf("unexpected divider %q", got)
	}
	if got := s.RenderDivider(-3); !strings.Contains(got, "─") {
		t.Fatalf("expected at least one rune, got %q", got)
	}
}
