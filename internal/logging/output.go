package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Output is the destination selected by --log-output.
type Output struct {
	Path string // empty unless logging to a file
	file *os.File
	w    io.Writer
}

// OpenOutput resolves the log destination.
//
//   - "" or "-": stderr
//   - "none": discard
//   - anything else: append to the named file, creating parent directories
func OpenOutput(spec string) (*Output, error) {
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case "", "-":
		return &Output{w: os.Stderr}, nil
	case "none":
		return &Output{w: io.Discard}, nil
	}

	path := filepath.Clean(spec)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", path, err)
	}
	return &Output{Path: path, file: f, w: f}, nil
}

// Writer returns the io.Writer for log output.
func (o *Output) Writer() io.Writer { return o.w }

// Close closes the log file if one was opened.
func (o *Output) Close() error {
	if o.file != nil {
		return o.file.Close()
	}
	return nil
}
