package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sfandrews/nettools/portscan"
)

func main() {
	host := flag.String("host", "", "target hostname (allowed: localhost or scanme.nmap.org)")
	ports := flag.String("ports", "", "port list/ranges, e.g. 22,80,443 or 20-25,80")
	timeout := flag.Duration("timeout", 500*time.Millisecond, "per-port connect timeout")
	delay := flag.Duration("delay", 25*time.Millisecond, "delay between port probes")
	flag.Parse()

	if *host == "" || *ports == "" {
		flag.Usage()
		os.Exit(2)
	}

	if !portscan.Authorized(*host) {
		log.Printf("portscan at=authorize err=%q host=%q\n", "target not on the allowlist", *host)
		os.Exit(10)
	}

	portList, err := portscan.ParsePorts(*ports)
	if err != nil {
		log.Printf("portscan at=parse-ports err=%q\n", err)
		os.Exit(11)
	}

	ip, err := portscan.Resolve(*host)
	if err != nil {
		log.Printf("portscan at=resolve err=%q\n", err)
		os.Exit(12)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Printf("portscan at=scan.start host=%q ip=%q ports=%d\n", *host, ip, len(portList))
	report, err := portscan.Scan(ctx, *host, ip, portList, *timeout, *delay)
	if err != nil {
		log.Printf("portscan at=scan.interrupted err=%q\n", err)
	}

	for _, res := range report.Results {
		status := "closed"
		if res.Open {
			status = "OPEN"
		}
		fmt.Printf("%5d  %s\n", res.Port, status)
	}

	open := report.OpenPorts()
	fmt.Printf("\nSummary\n")
	fmt.Printf("  Host: %s (%s)\n", report.Host, report.IP)
	fmt.Printf("  Ports scanned: %d\n", len(report.Results))
	fmt.Printf("  Open: %d\n", len(open))
	fmt.Printf("  Closed: %d\n", report.ClosedCount())
	if len(open) > 0 {
		strs := make([]string, len(open))
		for i, p := range open {
			strs[i] = fmt.Sprintf("%d", p)
		}
		fmt.Printf("  Open ports: %s\n", strings.Join(strs, ", "))
	}
}
