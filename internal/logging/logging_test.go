package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewWithWriterFormats(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: ""},
		{format: "human"},
		{format: "text"},
		{format: "JSON"},
		{format: "yaml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := NewWithWriter(tt.format, slog.LevelInfo, &buf)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for format %q", tt.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			l.Info(context.Background(), "hello", "k", "v")
			if !strings.Contains(buf.String(), "hello") {
				t.Errorf("output missing message: %q", buf.String())
			}
		})
	}
}

func TestHumanFormatOmitsTime(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter("human", slog.LevelInfo, &buf)
	if err != nil {
		t.Fatal(err)
	}
	l.Info(context.Background(), "msg")
	if strings.Contains(buf.String(), "time=") {
		t.Errorf("human output should not contain time: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "", want: slog.LevelInfo},
		{in: "debug", want: slog.LevelDebug},
		{in: "WARN", want: slog.LevelWarn},
		{in: " error ", want: slog.LevelError},
		{in: "verbose", want: slog.LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromContextDefault(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected default logger")
	}
}

func TestSpan(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter("json", slog.LevelInfo, &buf)
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithLogger(context.Background(), l)

	_, end := Span(ctx, "CMD", "compute.aml", "name", "cpu")
	end(errors.New("this error message is definitely longer than thirty-two characters"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}

	var start, stop map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &start); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &stop); err != nil {
		t.Fatal(err)
	}
	if start["msg"] != "CMD:compute.aml/S" || start["name"] != "cpu" {
		t.Errorf("unexpected start line: %v", start)
	}
	if stop["msg"] != "CMD:compute.aml/EFAIL" || stop["level"] != "WARN" {
		t.Errorf("unexpected end line: %v", stop)
	}
	if s, _ := stop["err"].(string); !strings.HasSuffix(s, "...") || len(s) != spanErrMaxLen+3 {
		t.Errorf("err not truncated: %q", s)
	}
}

func TestOpenOutput(t *testing.T) {
	o, err := OpenOutput("none")
	if err != nil {
		t.Fatal(err)
	}
	if o.Writer() != io.Discard {
		t.Errorf("none should discard")
	}

	o, err = OpenOutput("-")
	if err != nil {
		t.Fatal(err)
	}
	if o.Writer() != os.Stderr || o.Path != "" {
		t.Errorf("- should be stderr")
	}

	path := filepath.Join(t.TempDir(), "logs", "amlops.log")
	o, err = OpenOutput(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(o.Writer(), "line\n"); err != nil {
		t.Fatal(err)
	}
	if err := o.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "line\n" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestShortError(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "short", in: "not found", want: "not found"},
		{name: "exact", in: strings.Repeat("a", 32), want: strings.Repeat("a", 32)},
		{name: "ascii", in: strings.Repeat("a", 40), want: strings.Repeat("a", 32) + "..."},
		// 10 ASCII bytes then 3-byte runes; byte 32 falls inside the 8th rune.
		{name: "multibyte", in: "workspace " + strings.Repeat("見", 10), want: "workspace " + strings.Repeat("見", 7) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShortError(tt.in)
			if got != tt.want {
				t.Errorf("ShortError(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("ShortError(%q) produced invalid UTF-8: %q", tt.in, got)
			}
		})
	}
}
