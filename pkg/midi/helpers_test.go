package midi

import (
	"bytes"
	"encoding/binary"
)

// vlq is the reference encoder for variable length quantities.
func vlq(v uint32) []byte {
	out := []byte{byte(v & 0x7F)}
	for v >>= 7; v > 0; v >>= 7 {
		out = append([]byte{byte(v&0x7F) | 0x80}, out...)
	}
	return out
}

func ev(delta uint32, b ...byte) []byte {
	return append(vlq(delta), b...)
}

func chunk(id string, body []byte) []byte {
	out := make([]byte, 8, 8+len(body))
	copy(out, id)
	binary.BigEndian.PutUint32(out[4:], uint32(len(body)))
	return append(out, body...)
}

func mthd(format, tracks, division uint16) []byte {
	body := make([]byte, 6)
	binary.BigEndian.PutUint16(body[0:], format)
	binary.BigEndian.PutUint16(body[2:], tracks)
	binary.BigEndian.PutUint16(body[4:], division)
	return chunk("MThd", body)
}

func mtrk(events ...[]byte) []byte {
	return chunk("MTrk", bytes.Join(events, nil))
}

func smfFile(chunks ...[]byte) []byte {
	return bytes.Join(chunks, nil)
}

func tempo(delta uint32, us uint32) []byte {
	return ev(delta, 0xFF, 0x51, 0x03, byte(us>>16), byte(us>>8), byte(us))
}

var endOfTrack = ev(0, 0xFF, 0x2F, 0x00)

// singleTrack wraps events in a format 0 file at 480 ticks per quarter note.
func singleTrack(events ...[]byte) []byte {
	return smfFile(mthd(0, 1, 480), mtrk(append(events, endOfTrack)...))
}
