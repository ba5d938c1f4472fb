package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Garik-/midinotes/pkg/midi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintChannels(t *testing.T) {
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0, 0, 0, 6, 0, 1, 0, 1, 0x01, 0xE0,
		0x4D, 0x54, 0x72, 0x6B, 0, 0, 0, 13,
		0x00, 0x94, 64, 90,
		0x83, 0x60, 0x84, 64, 0,
		0x00, 0xFF, 0x2F, 0x00,
	}

	channels, err := midi.Decode(data)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printChannels(&buf, channels))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"channel", "start", "duration", "pitch", "velocity", "program"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"4", "0.000", "0.500", "64", "90", "0"}, strings.Fields(lines[1]))
}
