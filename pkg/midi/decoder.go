package midi

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type chunkType int

const (
	unknownChunk chunkType = iota
	headerChunk
	trackChunk
)

const (
	chunkHeaderSize = 8
	headerDataSize  = 6

	// DefaultTempo is the MIDI default of 120 beats per minute, in microseconds per quarter note.
	DefaultTempo = 500000
)

var (
	headerChunkID = [4]byte{0x4D, 0x54, 0x68, 0x64}
	trackChunkID  = [4]byte{0x4D, 0x54, 0x72, 0x6B}
)

const (
	metaEvent     = 0xFF
	sysExEvent    = 0xF0
	sysExEscape   = 0xF7
	divisionSMPTE = 0x8000
)

const (
	metaSequenceNumber = 0x00
	metaText           = 0x01
	metaCopyright      = 0x02
	metaTrackName      = 0x03
	metaInstrumentName = 0x04
	metaLyric          = 0x05
	metaMarker         = 0x06
	metaCuePoint       = 0x07
	metaChannelPrefix  = 0x20
	metaEndOfTrack     = 0x2F
	metaSetTempo       = 0x51
	metaSMPTEOffset    = 0x54
	metaTimeSignature  = 0x58
	metaKeySignature   = 0x59
)

// Header is the content of the MThd chunk.
type Header struct {
	Format              uint16
	NumTracks           uint16
	TicksPerQuarterNote uint16
}

// Text is a text meta event (0x01-0x07) found in a track.
type Text struct {
	Track int
	Type  uint8
	Time  float64
	Value string
}

// Decoder turns a Standard MIDI File held in memory into per channel note events.
// A Decoder carries the whole decode state, so separate Decoders can run concurrently.
type Decoder struct {
	data     []byte
	offset   int
	boundary int
	log      *zap.Logger

	defaultTempo        uint32
	zeroVelocityNoteOff bool
	hasHeader           bool
	tempo               uint32
	time                float64
	ticks               uint64

	status        statusKind
	statusChannel uint8
	hasStatus     bool
	channelPrefix int
	endOfTrack    bool
	reprocess     bool

	channels [ChannelCount]*Channel

	Header Header
	// Tempo is the last tempo in effect, in microseconds per quarter note.
	Tempo  uint32
	Texts  []Text
	Tracks int
}

// NewDecoder returns a Decoder reading data.
func NewDecoder(data []byte, opts ...Option) *Decoder {
	d := &Decoder{
		data:         data,
		log:          zap.NewNop(),
		defaultTempo: DefaultTempo,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode decodes data into the notes of the 16 MIDI channels.
func Decode(data []byte, opts ...Option) ([ChannelCount]*Channel, error) {
	return NewDecoder(data, opts...).Decode()
}

// DecodeReader reads r to the end and decodes it.
func DecodeReader(r io.Reader, opts ...Option) ([ChannelCount]*Channel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return [ChannelCount]*Channel{}, errors.Wrap(err, "read midi data")
	}
	return Decode(data, opts...)
}

func (d *Decoder) reset() {
	d.offset = 0
	d.boundary = 0
	d.hasHeader = false
	d.tempo = d.defaultTempo
	d.Header = Header{}
	d.Tempo = d.defaultTempo
	d.Texts = nil
	d.Tracks = 0
	for i := range d.channels {
		d.channels[i] = newChannel(uint8(i))
	}
}

// Decode scans every chunk of the file. Bytes too short to hold a chunk
// header end the scan without error.
func (d *Decoder) Decode() ([ChannelCount]*Channel, error) {
	d.reset()

	for d.offset < len(d.data) {
		if len(d.data)-d.offset < chunkHeaderSize {
			d.log.Warn("trailing bytes ignored", zap.Int("offset", d.offset), zap.Int("size", len(d.data)-d.offset))
			break
		}

		if err := d.parseChunk(); err != nil {
			return [ChannelCount]*Channel{}, err
		}
	}

	if d.hasHeader && d.Tracks != int(d.Header.NumTracks) {
		d.log.Warn("track count mismatch", zap.Uint16("declared", d.Header.NumTracks), zap.Int("found", d.Tracks))
	}

	return d.channels, nil
}

func (d *Decoder) parseChunk() error {
	start := d.offset

	id, size, err := d.idAndSize()
	if err != nil {
		return err
	}

	d.boundary = start + chunkHeaderSize + int(size)
	d.time = 0
	d.ticks = 0

	switch d.chunkType(id) {
	case headerChunk:
		if d.hasHeader {
			return errors.Wrapf(ErrDuplicateHeader, "offset %d", start)
		}
		err = d.parseHeader()
	case trackChunk:
		err = d.parseTrack()
	case unknownChunk:
		d.log.Info("skipping unknown chunk", zap.Int("offset", start), zap.ByteString("id", id[:]), zap.Uint32("size", size))
		if d.boundary > len(d.data) {
			d.log.Warn("chunk runs past end of data", zap.Int("offset", start), zap.Int("end", d.boundary), zap.Int("size", len(d.data)))
		}
		d.offset = d.boundary
	}
	if err != nil {
		return err
	}

	if d.offset > d.boundary {
		return errors.Wrapf(ErrChunkOverrun, "chunk at %d ends at %d, cursor at %d", start, d.boundary, d.offset)
	}
	return nil
}

func (d *Decoder) chunkType(id [4]byte) chunkType {
	switch id {
	case headerChunkID:
		return headerChunk
	case trackChunkID:
		return trackChunk
	}
	return unknownChunk
}

func (d *Decoder) parseHeader() error {
	if size := d.boundary - d.offset; size != headerDataSize {
		d.log.Warn("unexpected header size", zap.Int("size", size))
	}
	if d.offset+headerDataSize > d.boundary {
		return errors.Wrapf(ErrChunkOverrun, "offset %d: header needs %d bytes", d.offset, headerDataSize)
	}

	formatHi, err := d.readByte()
	if err != nil {
		return err
	}
	formatLo, err := d.readByte()
	if err != nil {
		return err
	}
	numTracks, err := d.readUint16()
	if err != nil {
		return err
	}
	division, err := d.readUint16()
	if err != nil {
		return err
	}

	format := uint16(formatHi)<<8 | uint16(formatLo)
	if formatHi != 0 {
		d.log.Warn("non-zero leading format byte", zap.Uint8("byte", formatHi))
	}
	if format > 2 {
		d.log.Warn("unknown format", zap.Uint16("format", format))
	}
	if format == 0 && numTracks != 1 {
		d.log.Warn("format 0 expects a single track", zap.Uint16("tracks", numTracks))
	}

	if division&divisionSMPTE != 0 {
		return errors.Wrapf(ErrUnsupportedTimeDivision, "SMPTE division %#04x", division)
	}
	if division == 0 {
		return errors.Wrap(ErrUnsupportedTimeDivision, "zero ticks per quarter note")
	}

	d.Header = Header{
		Format:              format,
		NumTracks:           numTracks,
		TicksPerQuarterNote: division,
	}
	d.hasHeader = true
	d.offset = d.boundary

	return nil
}

func (d *Decoder) parseTrack() error {
	d.hasStatus = false
	d.channelPrefix = -1
	d.endOfTrack = false
	d.reprocess = false

	for d.offset < d.boundary {
		if err := d.parseEvent(); err != nil {
			return err
		}
		if d.offset > d.boundary {
			return errors.Wrapf(ErrChunkOverrun, "track ends at %d, cursor at %d", d.boundary, d.offset)
		}
	}

	if !d.endOfTrack {
		return errors.Wrapf(ErrPrematureEndOfTrack, "track ends at %d without end of track event", d.boundary)
	}

	for _, ch := range d.channels {
		if n := ch.dropOpenNotes(); n > 0 {
			d.log.Debug("notes left open at end of track", zap.Uint8("channel", ch.ID), zap.Int("notes", n))
		}
	}
	d.Tracks++

	return nil
}

// advance moves track time forward by ticks at the current tempo.
func (d *Decoder) advance(ticks uint32) {
	d.ticks += uint64(ticks)
	d.time += float64(ticks) * (float64(d.tempo) / float64(d.Header.TicksPerQuarterNote)) / 1e6
}

func (d *Decoder) parseEvent() error {
	if !d.reprocess {
		if !d.hasHeader {
			return errors.Wrapf(ErrFormatUndefined, "offset %d: track before header", d.offset)
		}
		ticks, err := d.varLen()
		if err != nil {
			return err
		}
		d.advance(ticks)
	}
	d.reprocess = false

	b, err := d.peekByte()
	if err != nil {
		return err
	}

	switch {
	case b == metaEvent:
		d.offset++
		return d.parseMetaEvent()
	case b == sysExEvent || b == sysExEscape:
		d.offset++
		return d.parseSysEx(b)
	case isStatusByte(b):
		d.offset++
		d.status, d.statusChannel = classifyStatus(b)
		d.hasStatus = true
	case !d.hasStatus:
		return errors.Wrapf(ErrUnknownRunningStatus, "offset %d: data byte %#02x without status", d.offset, b)
	}

	return d.parseChannelEvent()
}

// dataBytes reads the n data bytes of a channel event. A byte with the high bit
// set cuts the event short: the data bytes before it are consumed, the event is
// dropped and that byte is parsed next as a status byte without a delta time.
func (d *Decoder) dataBytes(n int) ([]byte, bool, error) {
	for i := 0; i < n; i++ {
		p := d.offset + i
		if p >= len(d.data) {
			return nil, false, errors.Wrapf(ErrUnexpectedEndOfData, "offset %d: %s data", d.offset, d.status)
		}
		if isStatusByte(d.data[p]) {
			d.log.Debug("short channel event", zap.Int("offset", d.offset), zap.Stringer("status", d.status))
			d.offset = p
			d.reprocess = true
			return nil, false, nil
		}
	}

	data := d.data[d.offset : d.offset+n]
	d.offset += n
	return data, true, nil
}

func (d *Decoder) parseChannelEvent() error {
	ch := d.channels[d.statusChannel]

	var size int
	switch d.status {
	case statusNoteOff, statusNoteOn, statusPolyPressure, statusControlChange, statusPitchWheel:
		size = 2
	case statusProgramChange, statusChannelPressure:
		size = 1
	default:
		return errors.Wrapf(ErrUnknownRunningStatus, "offset %d: status %d", d.offset, d.status)
	}

	data, ok, err := d.dataBytes(size)
	if err != nil || !ok {
		return err
	}

	switch d.status {
	case statusNoteOn:
		if data[1] == 0 && d.zeroVelocityNoteOff {
			d.noteOff(ch, data[0])
			return nil
		}
		ch.noteOn(data[0], data[1], d.time, d.ticks)
	case statusNoteOff:
		d.noteOff(ch, data[0])
	case statusProgramChange:
		ch.ProgramNumber = data[0]
	case statusControlChange:
		d.log.Debug("control change", zap.Uint8("channel", ch.ID), zap.Uint8("controller", data[0]), zap.Uint8("value", data[1]))
	case statusPolyPressure, statusChannelPressure, statusPitchWheel:
	}

	return nil
}

func (d *Decoder) noteOff(ch *Channel, pitch uint8) {
	if !ch.noteOff(pitch, d.time, d.ticks) {
		d.log.Debug("note off without note on", zap.Uint8("channel", ch.ID), zap.Uint8("pitch", pitch))
	}
}

func (d *Decoder) parseSysEx(kind byte) error {
	data, err := d.varLenData()
	if err != nil {
		return err
	}
	d.log.Debug("sysex", zap.Uint8("kind", kind), zap.Int("size", len(data)), zap.Int("channelPrefix", d.channelPrefix))
	return nil
}

// metaLength checks the literal length byte of a fixed size meta event.
func (d *Decoder) metaLength(metaType byte, want byte) error {
	l, err := d.readByte()
	if err != nil {
		return err
	}
	if l != want {
		return errors.Wrapf(ErrMalformedMetaEvent, "offset %d: meta %#02x length %d, expected %d", d.offset-1, metaType, l, want)
	}
	return nil
}

func (d *Decoder) parseMetaEvent() error {
	start := d.offset - 1

	metaType, err := d.readByte()
	if err != nil {
		return err
	}

	switch metaType {
	case metaSequenceNumber:
		return errors.Wrapf(ErrUnsupportedMetaEvent, "offset %d: sequence number", start)

	case metaText, metaCopyright, metaTrackName, metaInstrumentName, metaLyric, metaMarker, metaCuePoint:
		data, err := d.varLenData()
		if err != nil {
			return err
		}
		d.Texts = append(d.Texts, Text{Track: d.Tracks, Type: metaType, Time: d.time, Value: string(data)})
		d.log.Debug("text", zap.Uint8("type", metaType), zap.ByteString("value", data))

	case metaChannelPrefix:
		if err := d.metaLength(metaType, 1); err != nil {
			return err
		}
		ch, err := d.readByte()
		if err != nil {
			return err
		}
		if ch >= ChannelCount {
			return errors.Wrapf(ErrInvalidChannelPrefix, "offset %d: channel %d", start, ch)
		}
		d.channelPrefix = int(ch)

	case metaEndOfTrack:
		if err := d.metaLength(metaType, 0); err != nil {
			return err
		}
		if d.offset != d.boundary {
			return errors.Wrapf(ErrPrematureEndOfTrack, "offset %d: track ends at %d", start, d.boundary)
		}
		d.endOfTrack = true

	case metaSetTempo:
		if err := d.metaLength(metaType, 3); err != nil {
			return err
		}
		tempo, err := d.readUint24()
		if err != nil {
			return err
		}
		d.tempo = tempo
		d.Tempo = tempo

	case metaSMPTEOffset:
		if err := d.metaLength(metaType, 5); err != nil {
			return err
		}
		return errors.Wrapf(ErrUnsupportedMetaEvent, "offset %d: SMPTE offset", start)

	case metaTimeSignature:
		if err := d.metaLength(metaType, 4); err != nil {
			return err
		}
		return d.skip(4)

	case metaKeySignature:
		if err := d.metaLength(metaType, 2); err != nil {
			return err
		}
		return d.skip(2)

	default:
		if _, err := d.varLenData(); err != nil {
			return err
		}
	}

	return nil
}
