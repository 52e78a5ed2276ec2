package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestVerbosityLevels(t *testing.T) {
	for _, tc := range []struct {
		v       Verbosity
		printed []Level
		muted   []Level
	}{
		{v: Silent, muted: []Level{TraceLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel}},
		{v: Errors, printed: []Level{ErrorLevel, FatalLevel}, muted: []Level{WarnLevel, InfoLevel}},
		{v: Warnings, printed: []Level{WarnLevel, ErrorLevel}, muted: []Level{InfoLevel}},
		{v: IO, printed: []Level{InfoLevel, WarnLevel}, muted: []Level{DebugLevel}},
		{v: Info, printed: []Level{DebugLevel}, muted: []Level{TraceLevel}},
		{v: Trace, printed: []Level{TraceLevel, DebugLevel}},
		{v: 9, printed: []Level{TraceLevel}},
	} {
		l := NewWriterLogger(&bytes.Buffer{}, tc.v)
		for _, lvl := range tc.printed {
			if !l.Enabled(lvl) {
				t.Fatalf("verbosity %d: %s should be enabled", tc.v, lvl)
			}
		}
		for _, lvl := range tc.muted {
			if l.Enabled(lvl) {
				t.Fatalf("verbosity %d: %s should be muted", tc.v, lvl)
			}
		}
	}
}

func TestWriterLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, Trace).WithFields(Fields{"fn": "FwhmOfSamples"})
	l.Error(errors.New("negative width"), "peak rejected", Fields{"peak": 3, "left": 4.5})

	got := strings.TrimSpace(buf.String())
	want := "[ERROR] peak rejected: negative width fn=FwhmOfSamples left=4.5 peak=3"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestFatalDoesNotExit(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, Errors)
	l.Fatal(errors.New("boom"), "cannot continue")
	if !strings.Contains(buf.String(), "[FATAL] cannot continue: boom") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestSilentWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, Silent)
	l.Error(errors.New("x"), "y")
	l.Fatal(errors.New("x"), "y")
	if buf.Len() != 0 {
		t.Fatalf("silent logger wrote %q", buf.String())
	}
}

func TestWithContextFields(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithFields(context.Background(), Fields{"file": "a.hst"})
	ctx = ContextWithFields(ctx, Fields{"mode": "m"})
	NewWriterLogger(&buf, IO).WithContext(ctx).Info("header read")
	if got := strings.TrimSpace(buf.String()); got != "[INFO] header read file=a.hst mode=m" {
		t.Fatalf("got %q", got)
	}
}

func TestNoOpLogger(t *testing.T) {
	var l Logger = &NoOpLogger{}
	if l.Enabled(FatalLevel) {
		t.Fatal("no-op logger reports enabled")
	}
	if l.WithFields(Fields{"a": 1}) != l {
		t.Fatal("WithFields should return the same no-op logger")
	}
}
