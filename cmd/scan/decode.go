package main

import (
	"context"
	"os"
	"sync"

	"github.com/Garik-/midinotes/pkg/midi"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type result struct {
	name                string
	ticksPerQuarterNote uint16
	channels            [midi.ChannelCount]*midi.Channel
	err                 error
}

func decodeFile(name string) *result {
	out := &result{name: name}

	data, err := os.ReadFile(name)
	if err != nil {
		out.err = err
		return out
	}

	decoder := midi.NewDecoder(data, midi.WithLogger(fileLogger(name)), midi.WithZeroVelocityNoteOff())
	out.channels, err = decoder.Decode()
	if err != nil {
		out.err = errors.Wrap(err, name)
		return out
	}

	out.ticksPerQuarterNote = decoder.Header.TicksPerQuarterNote
	return out
}

// decodeWorker starts workers goroutines that decode paths until it is
// drained or ctx is cancelled. done is signalled after out is closed.
func decodeWorker(ctx context.Context, paths <-chan string, workers int) (<-chan *result, <-chan struct{}) {
	out := make(chan *result)
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for {
				var path string
				var ok bool
				select {
				case path, ok = <-paths:
					if !ok {
						return
					}
				case <-ctx.Done():
					return
				}

				select {
				case out <- decodeFile(path):
				case <-ctx.Done():
					scanLog.Debug("dropping result", zap.String("path", path))
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
		close(done)
	}()

	return out, done
}
