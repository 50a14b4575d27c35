package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestProgressBar(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 4, "[....] 0/0"},
		{1, 2, 4, "[##..] 1/2"},
		{3, 3, 4, "[####] 3/3"},
		{5, 3, 4, "[####] 5/3"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%d, %d, %d): got %q, want %q", tt.done, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestSetThemeFallsBack(t *testing.T) {
	SetTheme("does-not-exist")
	if Current().Name != "classic" {
		t.Errorf("got %q, want classic", Current().Name)
	}
	SetTheme("NEON")
	if Current().Name != "neon" {
		t.Errorf("got %q, want neon", Current().Name)
	}
	SetTheme("classic")
}

func TestPanelAndMessages(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	var buf bytes.Buffer
	Panel(&buf, []string{"one", "three"})
	out := buf.String()
	if !strings.Contains(out, "one") || !strings.Contains(out, "three") {
		t.Errorf("panel missing content: %q", out)
	}
	if h := lipgloss.Height(strings.TrimRight(out, "\n")); h != 4 {
		t.Errorf("panel height: got %d, want 4", h)
	}

	buf.Reset()
	OK(&buf, "added")
	if got := strings.TrimSpace(buf.String()); got != "ok added" {
		t.Errorf("OK: got %q", got)
	}
	buf.Reset()
	Fail(&buf, "boom")
	if got := strings.TrimSpace(buf.String()); got != "error: boom" {
		t.Errorf("Fail: got %q", got)
	}
}
