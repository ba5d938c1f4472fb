package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/Garik-/midinotes/pkg/midi"
	"go.uber.org/zap"
)

var (
	inFlag      = flag.String("i", "", "Input midi file")
	jsonFlag    = flag.Bool("json", false, "Print channels as JSON")
	tempoFlag   = flag.Uint("tempo", midi.DefaultTempo, "Microseconds per quarter note before the first tempo event")
	zeroOffFlag = flag.Bool("zero-off", true, "Treat note-on with velocity 0 as note-off")
	verboseFlag = flag.Bool("v", false, "Debug logging")
)

func printChannels(w io.Writer, channels [midi.ChannelCount]*midi.Channel) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintln(tw, "channel\tstart\tduration\tpitch\tvelocity\tprogram")

	for _, ch := range channels {
		for _, e := range ch.Output {
			fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%d\t%d\t%d\n", ch.ID, e.StartTime, e.Duration, e.Pitch, e.Velocity, e.ProgramNumber)
		}
	}

	return tw.Flush()
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s \n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *inFlag == "" {
		flag.Usage()
		return
	}

	logger := zap.NewNop()
	if *verboseFlag {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		defer logger.Sync()
	}

	f, err := os.Open(*inFlag)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	opts := []midi.Option{midi.WithLogger(logger), midi.WithDefaultTempo(uint32(*tempoFlag))}
	if *zeroOffFlag {
		opts = append(opts, midi.WithZeroVelocityNoteOff())
	}

	channels, err := midi.DecodeReader(f, opts...)
	if err != nil {
		log.Fatal(err)
	}

	if *jsonFlag {
		err = json.NewEncoder(os.Stdout).Encode(channels)
	} else {
		err = printChannels(os.Stdout, channels)
	}
	if err != nil {
		log.Fatal(err)
	}
}
