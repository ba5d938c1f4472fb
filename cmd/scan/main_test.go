package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// endlessList yields "song.mid" lines forever.
type endlessList struct {
	n int
}

func (r *endlessList) Read(p []byte) (int, error) {
	const line = "song.mid\n"
	for i := range p {
		p[i] = line[r.n%len(line)]
		r.n++
	}
	return len(p), nil
}

func TestReadList(t *testing.T) {
	paths := readList(context.Background(), strings.NewReader("a.mid\n\nb.mid\n"))

	var got []string
	for p := range paths {
		got = append(got, p)
	}
	assert.Equal(t, []string{"a.mid", "b.mid"}, got)
}

func TestReadListStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	paths := readList(ctx, &endlessList{})

	require.Equal(t, "song.mid", <-paths)
	cancel()

	closed := make(chan struct{})
	go func() {
		for range paths {
		}
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("readList kept sending after cancel")
	}
}

func TestFileLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	saved := scanLog
	defer func() { scanLog = saved }()

	enableDebugLogging(zap.New(core))
	fileLogger("/tmp/songs/a.mid").Debug("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "scan.a.mid", entries[0].LoggerName)
	assert.Equal(t, "/tmp/songs/a.mid", entries[0].ContextMap()["path"])
}
