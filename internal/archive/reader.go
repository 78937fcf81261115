// Package archive implements the byte cursors shared by the asset decoders.
//
// A Reader has a fixed byte order for its whole life. Cursor reads
// little-endian data from memory; BigEndian wraps any Reader and only changes
// how multi-byte numbers are decoded, so the same decode code serves both
// orders.
package archive

import (
	"encoding/binary"
	"math"
)

// Reader is a seekable, bounded byte source.
// A Reader is not safe for concurrent use; Clone it instead.
type Reader interface {
	// ReadBytes returns the next n bytes. The slice aliases the source and
	// must not be modified.
	ReadBytes(n int) ([]byte, error)
	Skip(n int) error
	// Seek moves to an absolute offset in [0, Len()].
	Seek(offset int64) error
	Position() int64
	Len() int64
	// Clone returns a Reader over the same bytes with an independent position.
	Clone() Reader

	ReadUint8() (uint8, error)
	ReadInt8() (int8, error)
	ReadUint16() (uint16, error)
	ReadInt16() (int16, error)
	ReadUint32() (uint32, error)
	ReadInt32() (int32, error)
	ReadUint64() (uint64, error)
	ReadInt64() (int64, error)
	ReadFloat32() (float32, error)
	ReadFloat64() (float64, error)
}

// Remaining returns the number of unread bytes in r.
func Remaining(r Reader) int64 {
	return r.Len() - r.Position()
}

// Cursor reads little-endian data from an in-memory buffer.
type Cursor struct {
	data []byte
	off  int64
}

var _ Reader = (*Cursor)(nil)

// NewCursor returns a Cursor positioned at the start of data.
// data must not be modified while the cursor or its clones are in use.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

func (c *Cursor) next(n int) ([]byte, error) {
	if n < 0 {
		return nil, &FormatError{Offset: c.off, Field: "length", Raw: int64(n), Reason: "negative read length"}
	}
	end := c.off + int64(n)
	if end > int64(len(c.data)) {
		return nil, &EndOfStreamError{Offset: c.off, Need: int64(n), Avail: int64(len(c.data)) - c.off}
	}
	b := c.data[c.off:end:end]
	c.off = end
	return b, nil
}

func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	return c.next(n)
}

func (c *Cursor) Skip(n int) error {
	_, err := c.next(n)
	return err
}

func (c *Cursor) Seek(offset int64) error {
	if offset < 0 || offset > int64(len(c.data)) {
		return &EndOfStreamError{Offset: offset, Need: 0, Avail: int64(len(c.data))}
	}
	c.off = offset
	return nil
}

func (c *Cursor) Position() int64 { return c.off }

func (c *Cursor) Len() int64 { return int64(len(c.data)) }

func (c *Cursor) Clone() Reader {
	return &Cursor{data: c.data, off: c.off}
}

func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) ReadInt8() (int8, error) {
	v, err := c.ReadUint8()
	return int8(v), err
}

func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

func (c *Cursor) ReadUint64() (uint64, error) {
	b, err := c.next(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *Cursor) ReadInt64() (int64, error) {
	v, err := c.ReadUint64()
	return int64(v), err
}

func (c *Cursor) ReadFloat32() (float32, error) {
	u, err := c.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

func (c *Cursor) ReadFloat64() (float64, error) {
	u, err := c.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}
