package telnet

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// pipeConn returns a Conn on one end of an in-memory pipe and the raw client end.
func pipeConn(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() {
		server.Close()
		client.Close()
	})
	return NewConn(server, 2*time.Second, 2*time.Second), client
}

// feed writes data from the client side without blocking the test goroutine.
func feed(client net.Conn, data []byte) {
	go func() { _, _ = client.Write(data) }()
}

func TestReadLine_LineEndings(t *testing.T) {
	for name, input := range map[string]string{
		"crlf":  "2\r\n",
		"lf":    "2\n",
		"cr":    "2\r",
		"crnul": "2\r\x00",
	} {
		t.Run(name, func(t *testing.T) {
			conn, client := pipeConn(t)
			feed(client, []byte(input))
			line, err := conn.ReadLine()
			require.NoError(t, err)
			assert.Equal(t, "2", line)
		})
	}
}

func TestReadLine_SuccessiveLines(t *testing.T) {
	conn, client := pipeConn(t)
	feed(client, []byte("1\r\n\r\n2\r\x003\n"))

	var got []string
	for range 4 {
		line, err := conn.ReadLine()
		require.NoError(t, err)
		got = append(got, line)
	}
	assert.Equal(t, []string{"1", "", "2", "3"}, got)
}

func TestReadLine_FiltersNegotiation(t *testing.T) {
	conn, client := pipeConn(t)
	input := []byte{IAC, DO, OptSuppressGoAhead, '1', IAC, NOP, IAC, SB, 24, 0, 'x', IAC, SE, '2', 0x07, '\r', '\n'}
	feed(client, input)

	line, err := conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "12", line)
}

func TestReadLine_EOF(t *testing.T) {
	conn, client := pipeConn(t)
	go func() {
		_, _ = client.Write([]byte("partial"))
		client.Close()
	}()

	line, err := conn.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "partial", line)
}

func TestWriteLine_ConvertsNewlines(t *testing.T) {
	conn, client := pipeConn(t)
	done := make(chan error, 1)
	go func() { done <- conn.WriteLine("one\ntwo") }()

	buf := make([]byte, 64)
	n, err := io.ReadAtLeast(client, buf, len("one\r\ntwo\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "one\r\ntwo\r\n", string(buf[:n]))
	require.NoError(t, <-done)
}

func TestWritePrompt_NoNewline(t *testing.T) {
	conn, client := pipeConn(t)
	go func() { _ = conn.WritePrompt("Your choice: ") }()

	buf := make([]byte, len("Your choice: "))
	_, err := io.ReadFull(client, buf)
	require.NoError(t, err)
	assert.Equal(t, "Your choice: ", string(buf))
}

// Property: printable ASCII lines survive ReadLine unchanged.
func TestPropertyReadLine_PrintablePassThrough(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[ -~]{0,60}`).Draw(rt, "text")
		server, client := net.Pipe()
		defer server.Close()
		defer client.Close()
		conn := NewConn(server, time.Second, time.Second)
		feed(client, []byte(text+"\r\n"))

		line, err := conn.ReadLine()
		require.NoError(rt, err)
		assert.Equal(rt, text, line)
	})
}
