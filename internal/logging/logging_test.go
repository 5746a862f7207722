package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDiscardDropsOutput(t *testing.T) {
	l := Discard()
	l.Info("should not appear", "k", "v")
}

func TestWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	base := &Logger{logger: slog.New(slog.NewTextHandler(&buf, nil))}
	child := base.With("component", "workspace")
	child.Info("opened")
	if !strings.Contains(buf.String(), "component=workspace") {
		t.Errorf("expected bound field in output, got %q", buf.String())
	}
}
