package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestPretty(t *testing.T) {
	saved, savedVersion := color.NoColor, Version
	defer func() { color.NoColor, Version = saved, savedVersion }()

	color.NoColor = false
	Version = "1.2.3"
	got := Pretty()
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Pretty() = %q, want coloured output", got)
	}
	if strings.Contains(Version, "\x1b[") {
		t.Error("Version must stay plain")
	}

	color.NoColor = true
	if got := Pretty(); got != "1.2.3" {
		t.Errorf("Pretty() without colour = %q, want 1.2.3", got)
	}

	Version = "dev"
	if got := Pretty(); got != "dev" {
		t.Errorf("Pretty() = %q, want dev", got)
	}
}
