package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sfandrews/nettools/echoserver"
)

func main() {
	host := flag.String("host", "127.0.0.1", "host/IP to bind")
	port := flag.String("port", "5000", "port to listen on")
	flag.Parse()

	ctx := context.Background()

	s, err := echoserver.NewServer(ctx, *host, *port)
	if err != nil {
		log.Fatalf("echoserver at=server err=%q\n", err)
	}

	done := make(chan struct{})
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		for sig := range c {
			log.Printf("echoserver at=server.exiting sig=%q\n", sig.String())
			s.Close()
			done <- struct{}{}
		}
	}()

	<-done
	log.Printf("echoserver at=server.finish\n")
}
