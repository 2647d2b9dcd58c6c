package tuilog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{level: LevelInfo}
	l.SetOutput(&buf)

	l.Debug("hidden")
	l.Info("opened", "index", 2, "zoom", 1.25)
	l.Warn("odd", "key")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level:\n%s", out)
	}
	if !strings.Contains(out, "[INFO] opened index=2 zoom=1.25") {
		t.Errorf("info line malformed:\n%s", out)
	}
	if !strings.Contains(out, "key=<missing>") {
		t.Errorf("odd key/value count not marked:\n%s", out)
	}
}

func TestZeroLoggerDiscards(t *testing.T) {
	var l Logger
	l.Error("nothing")
	if l.Enabled() {
		t.Error("zero logger should be disabled")
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close on zero logger: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"", LevelInfo, false},
		{"WARNING", LevelWarn, false},
		{" error ", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lightbox.log")
	if err := Init(path, LevelDebug); err != nil {
		t.Fatal(err)
	}
	Log.Timed("scan", "paths", 1)()
	if err := Log.Close(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { Init("", LevelInfo) })

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "logger initialized") || !strings.Contains(string(data), "[DEBUG] scan paths=1 duration=") {
		t.Errorf("log file content:\n%s", data)
	}
}
