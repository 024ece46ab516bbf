package testutil

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"
)

const (
	iac = 255
	sb  = 250
	se  = 240
)

// TelnetClient drives a duel session over TCP the way a player's Telnet
// client would. Option negotiation from the server is dropped so that
// assertions see only the text a player reads.
type TelnetClient struct {
	t      *testing.T
	conn   net.Conn
	reader *bufio.Reader
	// seen accumulates cleaned text that has not yet been returned by ReadUntil.
	seen strings.Builder
}

// NewTelnetClient dials addr and registers the connection for cleanup.
//
// Precondition: addr is a "host:port" with a listening server.
// Postcondition: Returns a connected client or fails the test.
func NewTelnetClient(t *testing.T, addr string) *TelnetClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("dialing duel server at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return &TelnetClient{t: t, conn: conn, reader: bufio.NewReader(conn)}
}

// ReadUntil reads until the cleaned output contains substr and returns
// everything up to and including it. Text after the match is kept for the
// next call.
//
// Precondition: substr is non-empty.
// Postcondition: Fails the test when timeout elapses or the server hangs up first.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))
	for {
		if out, ok := c.take(substr); ok {
			return out
		}
		b, err := c.reader.ReadByte()
		if err != nil {
			c.t.Fatalf("waiting for %q: have %q: %v", substr, c.seen.String(), err)
		}
		if b == iac {
			if err := c.skipCommand(); err != nil {
				c.t.Fatalf("waiting for %q: reading telnet command: %v", substr, err)
			}
			continue
		}
		c.seen.WriteByte(b)
	}
}

// Expect waits for prompt and then answers it with reply.
func (c *TelnetClient) Expect(prompt, reply string, timeout time.Duration) string {
	c.t.Helper()
	out := c.ReadUntil(prompt, timeout)
	c.Send(reply)
	return out
}

// Send writes text followed by CRLF.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(c.conn, "%s\r\n", text); err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// Close hangs up.
func (c *TelnetClient) Close() {
	_ = c.conn.Close()
}

func (c *TelnetClient) take(substr string) (string, bool) {
	s := c.seen.String()
	i := strings.Index(s, substr)
	if i < 0 {
		return "", false
	}
	end := i + len(substr)
	c.seen.Reset()
	c.seen.WriteString(s[end:])
	return s[:end], true
}

// skipCommand consumes the rest of an IAC sequence. An escaped 0xFF data byte
// is kept as text.
func (c *TelnetClient) skipCommand() error {
	cmd, err := c.reader.ReadByte()
	if err != nil {
		return err
	}
	switch {
	case cmd == iac:
		c.seen.WriteByte(iac)
	case cmd == sb:
		for {
			b, err := c.reader.ReadByte()
			if err != nil {
				return err
			}
			if b != iac {
				continue
			}
			next, err := c.reader.ReadByte()
			if err != nil {
				return err
			}
			if next == se {
				return nil
			}
		}
	case cmd >= 251:
		// WILL, WONT, DO, DONT carry one option byte.
		_, err = c.reader.ReadByte()
		return err
	}
	return nil
}
