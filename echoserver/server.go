package echoserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	proxyproto "github.com/pires/go-proxyproto"
)

const (
	// ReadBufferSize bounds a single receive; each raw read is treated as
	// one message unit, so lines longer than this arrive in pieces.
	ReadBufferSize = 1024

	defaultHost         = "127.0.0.1"
	defaultPollInterval = time.Second
	defaultIdleTimeout  = 10 * time.Second
)

// Server is a line-protocol echo server. Every message received on a
// connection is answered with the same text behind an "ACK: " prefix.
type Server struct {
	Addr   string
	l      net.Listener
	tl     *net.TCPListener
	cancel context.CancelFunc
	wg     sync.WaitGroup

	pollInterval time.Duration
	idleTimeout  time.Duration
}

// Option adjusts server timing policy. The defaults match production use;
// tests shorten them.
type Option func(*Server)

// WithPollInterval sets how long the accept loop waits for a connection
// before re-checking for shutdown.
func WithPollInterval(d time.Duration) Option {
	return func(s *Server) {
		s.pollInterval = d
	}
}

// WithIdleTimeout sets how long a connection may sit silent before the
// server closes it.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.idleTimeout = d
	}
}

// NewServer binds host:port and starts accepting connections. An empty host
// binds loopback; an empty port picks an ephemeral one (useful in tests).
// Bind failures are returned, not retried.
func NewServer(ctx context.Context, host, port string, opts ...Option) (*Server, error) {
	ctx, cancel := context.WithCancel(ctx)

	if host == "" {
		host = defaultHost
	}

	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		cancel()
		return nil, err
	}

	tl, ok := l.(*net.TCPListener)
	if !ok {
		l.Close()
		cancel()
		return nil, fmt.Errorf("unexpected listener type %T", l)
	}

	// Wrap listener in a proxyproto listener
	wrapped := net.Listener(&proxyproto.Listener{Listener: l})

	log.Printf("echoserver at=server.listening addr=%q\n", l.Addr().String())
	s := &Server{
		Addr:         l.Addr().String(),
		l:            wrapped,
		tl:           tl,
		cancel:       cancel,
		pollInterval: defaultPollInterval,
		idleTimeout:  defaultIdleTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.acceptLoop(ctx)

	return s, nil
}

// Close stops accepting new connections and waits for in-flight handlers to
// drain on their own. Established connections are never force-closed; they
// end on peer close, idle timeout, or error.
func (s *Server) Close() error {
	// Stop accepting new connections
	s.cancel()

	// Stop listening on port
	s.l.Close()

	// Wait for all connections to gracefully close (allow systemd to sigkill us)
	s.wg.Wait()
	return nil
}

func (s *Server) acceptLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			// Bound the accept wait so shutdown is noticed within one
			// poll interval even if the listener close races us.
			s.tl.SetDeadline(time.Now().Add(s.pollInterval))

			conn, err := s.l.Accept()
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if err != nil {
				log.Printf("echoserver at=accept err=%q\n", err)
				continue
			}
			s.wg.Add(1)
			go func() {
				s.handleConn(conn)
				s.wg.Done()
			}()
		}
	}
}

// handleConn owns conn for its whole lifetime. One raw read is one message:
// decode (replacing invalid UTF-8), trim surrounding whitespace, answer
// "ACK: <message>\n". Exits silently on peer close, idle timeout, or error;
// the deferred Close releases the descriptor on every path.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	log.Printf("echoserver at=handle-connection.start remote-addr=%q\n", conn.RemoteAddr())

	buf := make([]byte, ReadBufferSize)
	for {
		conn.SetReadDeadline(time.Now().Add(s.idleTimeout))

		n, err := conn.Read(buf)

		// A reader may deliver final bytes together with its error; answer
		// them before acting on the error.
		if n > 0 {
			msg := strings.TrimSpace(decodeText(buf[:n]))
			log.Printf("echoserver at=handle-connection.message remote-addr=%q msg=%q\n", conn.RemoteAddr(), msg)

			if _, werr := conn.Write([]byte("ACK: " + msg + "\n")); werr != nil {
				log.Printf("echoserver at=handle-connection.write-error remote-addr=%q err=%q\n", conn.RemoteAddr(), werr)
				break
			}
		}

		if errors.Is(err, io.EOF) {
			log.Printf("echoserver at=handle-connection.disconnect remote-addr=%q\n", conn.RemoteAddr())
			break
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			log.Printf("echoserver at=handle-connection.timeout remote-addr=%q\n", conn.RemoteAddr())
			break
		}
		if err != nil {
			log.Printf("echoserver at=handle-connection.error remote-addr=%q err=%q\n", conn.RemoteAddr(), err)
			break
		}
	}

	log.Printf("echoserver at=handle-connection.finish remote-addr=%q\n", conn.RemoteAddr())
}

// decodeText converts raw bytes to a string, substituting one U+FFFD per
// invalid byte. strings.ToValidUTF8 would collapse a run of invalid bytes
// into a single replacement, which loses how much garbage arrived.
func decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		sb.WriteRune(r)
		i += size
	}
	return sb.String()
}
