package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sfandrews/nettools/passcheck"
)

func main() {
	password := flag.String("p", "", "password string to analyze")
	file := flag.String("f", "", "path to a file with one password per line")
	gps := flag.Float64("gps", passcheck.DefaultGuessesPerSecond, "guesses per second assumption")
	flag.Parse()

	if (*password == "") == (*file == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -p or -f is required")
		flag.Usage()
		os.Exit(2)
	}

	if *password != "" {
		fmt.Println(passcheck.Analyze(*password, *gps))
		return
	}

	lines, err := passcheck.AnalyzeFile(*file, *gps)
	if err != nil {
		log.Fatalf("passcheck at=analyze-file err=%q\n", err)
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}
