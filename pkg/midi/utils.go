package midi

import "github.com/pkg/errors"

// maxVarLen is the longest variable length quantity a Standard MIDI File may contain.
const maxVarLen = 4

// decodeVarint reads the variable length quantity that starts at buf[pos].
// It returns the number of bytes consumed and the decoded value.
func decodeVarint(buf []byte, pos int) (n int, x uint32, err error) {
	for {
		if pos+n >= len(buf) {
			return n, x, errors.Wrapf(ErrUnexpectedEndOfData, "offset %d: variable length quantity", pos)
		}
		if n == maxVarLen {
			return n, x, errors.Wrapf(ErrVarLenTooLong, "offset %d", pos)
		}

		b := buf[pos+n]
		n++
		if b&0x80 == 0 {
			return n, x<<7 + uint32(b), nil
		}
		x = x<<7 + uint32(b&0x7F)
	}
}

type statusKind int

const (
	statusNoteOff statusKind = iota + 1
	statusNoteOn
	statusPolyPressure
	statusControlChange
	statusProgramChange
	statusChannelPressure
	statusPitchWheel
)

func (s statusKind) String() string {
	switch s {
	case statusNoteOff:
		return "note off"
	case statusNoteOn:
		return "note on"
	case statusPolyPressure:
		return "polyphonic key pressure"
	case statusControlChange:
		return "control change"
	case statusProgramChange:
		return "program change"
	case statusChannelPressure:
		return "channel pressure"
	case statusPitchWheel:
		return "pitch wheel"
	}
	return "unknown"
}

// statusPatterns are tested in order; a pattern matches when all of its bits
// are set in the status byte, so wider patterns come first.
var statusPatterns = [...]struct {
	pattern byte
	kind    statusKind
}{
	{0xE0, statusPitchWheel},
	{0xD0, statusChannelPressure},
	{0xC0, statusProgramChange},
	{0xB0, statusControlChange},
	{0xA0, statusPolyPressure},
	{0x90, statusNoteOn},
}

// classifyStatus splits a status byte into its message kind and channel.
func classifyStatus(b byte) (statusKind, uint8) {
	channel := b & 0x0F
	for _, p := range statusPatterns {
		if b|p.pattern == b {
			return p.kind, channel
		}
	}
	return statusNoteOff, channel
}

func isStatusByte(b byte) bool {
	return b&0x80 != 0
}
