// Package echoclient implements the one-shot counterpart to echoserver:
// connect, send a single line, read the acknowledgement, disconnect.
package echoclient

import (
	"errors"
	"io"
	"net"
	"strings"
	"time"
)

const readBufferSize = 1024

const defaultTimeout = 5 * time.Second

// Run dials host:port, sends message as one newline-terminated line, and
// returns the server's trimmed reply. timeout covers the dial and the
// round-trip; zero means the default of 5s.
func Run(host, port, message string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port), timeout)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(timeout))

	if _, err := conn.Write([]byte(strings.TrimSpace(message) + "\n")); err != nil {
		return "", err
	}

	buf := make([]byte, readBufferSize)
	n, err := conn.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimSpace(strings.ToValidUTF8(string(buf[:n]), "�")), nil
}
