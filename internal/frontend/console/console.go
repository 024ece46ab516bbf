// Package console adapts standard input and output to the line-oriented
// terminal the duel handlers drive.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Terminal reads lines from an io.Reader and writes to an io.Writer.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
	mu  sync.Mutex
}

// New wraps in and out.
//
// Precondition: in and out must be non-nil.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// ReadLine returns the next line without its terminator. A final line with no
// newline is returned before io.EOF.
func (t *Terminal) ReadLine() (string, error) {
	line, err := t.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if errors.Is(err, io.EOF) && line != "" {
		return line, nil
	}
	return line, err
}

// WriteLine writes text followed by a newline.
func (t *Terminal) WriteLine(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintln(t.out, text)
	return err
}

// WritePrompt writes text without a newline.
func (t *Terminal) WritePrompt(prompt string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprint(t.out, prompt)
	return err
}
