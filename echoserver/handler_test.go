package echoserver

import (
	"bufio"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eofWithDataConn delivers its payload and io.EOF from the same Read call,
// which the io.Reader contract permits even though TCP sockets rarely do it.
type eofWithDataConn struct {
	net.Conn
	data []byte
	read bool
}

func (c *eofWithDataConn) Read(b []byte) (int, error) {
	if c.read {
		return 0, io.EOF
	}
	c.read = true
	return copy(b, c.data), io.EOF
}

func TestHandleConnAcksFinalBytesBeforeEOF(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	s := &Server{idleTimeout: time.Second}

	done := make(chan struct{})
	go func() {
		s.handleConn(&eofWithDataConn{Conn: server, data: []byte("last words\n")})
		close(done)
	}()

	line, err := bufio.NewReader(client).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "ACK: last words\n", line)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not exit after EOF")
	}
}
