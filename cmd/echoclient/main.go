package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/sfandrews/nettools/echoclient"
)

func main() {
	host := flag.String("host", "127.0.0.1", "server host")
	port := flag.String("port", "5000", "server port")
	message := flag.String("message", "Hello from client", "message to send")
	timeout := flag.Duration("timeout", 5*time.Second, "dial and round-trip timeout")
	flag.Parse()

	reply, err := echoclient.Run(*host, *port, *message, *timeout)
	if err != nil {
		log.Printf("echoclient at=client.error err=%q\n", err)
		os.Exit(exitCode(err))
	}

	fmt.Println(reply)
}

// exitCode maps failure classes to distinct statuses: 2 refused, 3 bad
// hostname, 4 timeout, 5 anything else.
func exitCode(err error) int {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return 3
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return 2
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return 4
	}
	return 5
}
