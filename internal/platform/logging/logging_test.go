package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Config{Level: "debug", Dir: dir, Filename: "server.log"})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(func() { _ = logger.Close() })

	logger.InfoTag(TagBoot, "service starting")
	logger.Debug("plain debug %d", 42)

	if _, err := os.Stat(filepath.Join(dir, "server.log")); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
}

func TestFormatTag(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		msg  string
		want string
	}{
		{"plain message", TagTTS, "synthesis done", "[TTS] synthesis done"},
		{"already tagged", TagTTS, "[MUX] concat done", "[MUX] concat done"},
		{"empty tag", "", "hello", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTag(tt.tag, tt.msg); got != tt.want {
				t.Errorf("formatTag(%q, %q) = %q, want %q", tt.tag, tt.msg, got, tt.want)
			}
		})
	}
}

func TestExtractTag(t *testing.T) {
	if got := extractTag("[VOICE] assigned"); got != "VOICE" {
		t.Errorf("extractTag = %q, want VOICE", got)
	}
	if got := extractTag("no tag here"); got != "" {
		t.Errorf("extractTag = %q, want empty", got)
	}
}

func TestNilLoggerTagHelpersDoNotPanic(t *testing.T) {
	var l *Logger
	l.InfoTag(TagParse, "should not panic")
	l.WarnTag(TagParse, "should not panic")
	l.ErrorTag(TagParse, "should not panic")
	l.DebugTag(TagParse, "should not panic")
}
