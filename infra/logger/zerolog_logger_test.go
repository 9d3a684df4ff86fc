package logger

import (
	"os"
	"testing"
)

func TestZerologLoggerMethods(t *testing.T) {
	os.Setenv("APP_ENV", "dev")
	defer os.Unsetenv("APP_ENV")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("structured", map[string]any{"rows": 3})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestConfigure(t *testing.T) {
	defer func() {
		if err := Configure("info"); err != nil {
			t.Fatalf("restore level: %v", err)
		}
	}()
	for _, level := range []string{"", "debug", "info", "WARN", "error"} {
		if err := Configure(level); err != nil {
			t.Errorf("Configure(%q): %v", level, err)
		}
	}
	if err := Configure("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
