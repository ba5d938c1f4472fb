package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"
)

const (
	maxGoroutines = 10
)

var (
	listFlag    = flag.String("l", "", "The path to the list of midi files,\nfind . -type f -name \"*.mid\" > midi_list.txt")
	maxFlag     = flag.Int("p", maxGoroutines, "Number of files processed in parallel, must be > 0")
	channelFlag = flag.Int("c", 9, "MIDI channel to collect (0-15), -1 for all channels")
	verboseFlag = flag.Bool("v", false, "Debug logging")
)

// readList sends the non-empty lines of r until r ends or ctx is cancelled.
func readList(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)

	go func() {
		defer close(out)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			select {
			case out <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s \n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *listFlag == "" || *maxFlag <= 0 || *channelFlag < -1 || *channelFlag > 15 {
		flag.Usage()
		return
	}

	if *verboseFlag {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		defer l.Sync()
		enableDebugLogging(l)
	}

	f, err := os.Open(*listFlag)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	paths := readList(ctx, f)
	m, err := newVelocityMap(ctx, paths, *maxFlag, *channelFlag)
	cancel()
	if err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(m.database()); err != nil {
		log.Fatal(err)
	}
}
