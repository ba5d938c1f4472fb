package midi

import "errors"

var (
	// ErrUnexpectedEndOfData is reported when a variable length quantity or a fixed size field runs past the buffer end.
	ErrUnexpectedEndOfData = errors.New("unexpected end of data")
	// ErrTruncatedChunkHeader is reported when fewer than 8 bytes remain where a chunk descriptor was expected.
	ErrTruncatedChunkHeader = errors.New("truncated chunk header")
	// ErrDuplicateHeader is reported when a second MThd chunk appears.
	ErrDuplicateHeader = errors.New("duplicate header chunk")
	// ErrChunkOverrun is reported when parsing advances past the declared chunk boundary.
	ErrChunkOverrun = errors.New("chunk overrun")
	// ErrUnsupportedTimeDivision is reported for SMPTE time division or a zero division.
	ErrUnsupportedTimeDivision = errors.New("unsupported time division")
	// ErrMalformedMetaEvent is reported when a meta event length byte does not match its fixed size.
	ErrMalformedMetaEvent = errors.New("malformed meta event")
	// ErrPrematureEndOfTrack is reported when End of Track and the chunk boundary disagree.
	ErrPrematureEndOfTrack = errors.New("premature end of track")
	// ErrUnsupportedMetaEvent is reported for meta events this decoder refuses to handle.
	ErrUnsupportedMetaEvent = errors.New("unsupported meta event")
	// ErrInvalidChannelPrefix is reported when a channel prefix names a channel outside 0-15.
	ErrInvalidChannelPrefix = errors.New("invalid channel prefix")
	// ErrUnknownRunningStatus is reported when a data byte arrives with no running status to apply.
	ErrUnknownRunningStatus = errors.New("unknown running status")
	// ErrFormatUndefined is reported when track content is reached before the header chunk.
	ErrFormatUndefined = errors.New("format undefined")
)

// ErrVarLenTooLong is reported when a variable length quantity does not terminate within 4 bytes.
var ErrVarLenTooLong = errors.New("variable length quantity too long")
