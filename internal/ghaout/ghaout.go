// Package ghaout appends step outputs to the file named by $GITHUB_OUTPUT,
// in the multi-line heredoc format the Actions runner parses.
package ghaout

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// Writer appends key/value records to one output file handle.
type Writer struct {
	w io.Writer
}

func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// OpenFile opens the runner-provided output file for appending.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// Set writes one output. Values containing newlines use the delimiter form;
// the delimiter is random so values cannot smuggle a terminator in.
func (o *Writer) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("ghaout: empty output key")
	}

	if !strings.ContainsAny(value, "\n\r") {
		_, err := fmt.Fprintf(o.w, "%s=%s\n", key, value)
		return err
	}

	delim, err := randomDelimiter()
	if err != nil {
		return err
	}
	if strings.Contains(value, delim) {
		return fmt.Errorf("ghaout: value for %s contains the delimiter", key)
	}
	_, err = fmt.Fprintf(o.w, "%s<<%s\n%s\n%s\n", key, delim, value, delim)
	return err
}

func randomDelimiter() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("ghaout: delimiter: %w", err)
	}
	return "ghadelimiter_" + hex.EncodeToString(buf[:]), nil
}
