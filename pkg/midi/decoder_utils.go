package midi

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// need fails unless n more bytes are available at the cursor.
func (d *Decoder) need(n int, what string) error {
	if d.offset+n > len(d.data) {
		return errors.Wrapf(ErrUnexpectedEndOfData, "offset %d: %s needs %d bytes, %d left", d.offset, what, n, len(d.data)-d.offset)
	}
	return nil
}

func (d *Decoder) readByte() (byte, error) {
	if err := d.need(1, "byte"); err != nil {
		return 0, err
	}
	b := d.data[d.offset]
	d.offset++
	return b, nil
}

func (d *Decoder) peekByte() (byte, error) {
	if err := d.need(1, "byte"); err != nil {
		return 0, err
	}
	return d.data[d.offset], nil
}

func (d *Decoder) readUint16() (uint16, error) {
	if err := d.need(2, "uint16"); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(d.data[d.offset:])
	d.offset += 2
	return v, nil
}

func (d *Decoder) readUint24() (uint32, error) {
	if err := d.need(3, "uint24"); err != nil {
		return 0, err
	}
	b := d.data[d.offset:]
	d.offset += 3
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

func (d *Decoder) skip(n int) error {
	if err := d.need(n, "skip"); err != nil {
		return err
	}
	d.offset += n
	return nil
}

// varLen returns the variable length value at the exact parser location.
func (d *Decoder) varLen() (uint32, error) {
	n, val, err := decodeVarint(d.data, d.offset)
	if err != nil {
		return 0, err
	}
	d.offset += n
	return val, nil
}

// varLenData reads a variable length quantity and returns that many bytes following it.
func (d *Decoder) varLenData() ([]byte, error) {
	l, err := d.varLen()
	if err != nil {
		return nil, err
	}
	if err := d.need(int(l), "variable length data"); err != nil {
		return nil, err
	}
	data := d.data[d.offset : d.offset+int(l)]
	d.offset += int(l)
	return data, nil
}

// idAndSize reads a chunk descriptor: the 4 byte type tag and the 4 byte length.
func (d *Decoder) idAndSize() ([4]byte, uint32, error) {
	var id [4]byte
	if d.offset+chunkHeaderSize > len(d.data) {
		return id, 0, errors.Wrapf(ErrTruncatedChunkHeader, "offset %d: %d bytes left", d.offset, len(d.data)-d.offset)
	}
	copy(id[:], d.data[d.offset:])
	size := binary.BigEndian.Uint32(d.data[d.offset+4:])
	d.offset += chunkHeaderSize
	return id, size, nil
}
