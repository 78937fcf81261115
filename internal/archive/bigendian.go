package archive

import (
	"encoding/binary"
	"math"
)

// BigEndian decodes multi-byte numbers most-significant byte first.
// Byte movement (ReadBytes, Skip, Seek, Position, Len) goes straight to the
// wrapped Reader, so both share one position.
type BigEndian struct {
	r Reader
}

var _ Reader = (*BigEndian)(nil)

// NewBigEndian wraps r. Wrapping a *BigEndian returns it unchanged.
func NewBigEndian(r Reader) *BigEndian {
	if be, ok := r.(*BigEndian); ok {
		return be
	}
	return &BigEndian{r: r}
}

// Unwrap returns the wrapped Reader.
func (b *BigEndian) Unwrap() Reader { return b.r }

func (b *BigEndian) ReadBytes(n int) ([]byte, error) { return b.r.ReadBytes(n) }
func (b *BigEndian) Skip(n int) error                { return b.r.Skip(n) }
func (b *BigEndian) Seek(offset int64) error         { return b.r.Seek(offset) }
func (b *BigEndian) Position() int64                 { return b.r.Position() }
func (b *BigEndian) Len() int64                      { return b.r.Len() }

func (b *BigEndian) Clone() Reader {
	return &BigEndian{r: b.r.Clone()}
}

func (b *BigEndian) ReadUint8() (uint8, error) { return b.r.ReadUint8() }
func (b *BigEndian) ReadInt8() (int8, error)   { return b.r.ReadInt8() }

func (b *BigEndian) ReadUint16() (uint16, error) {
	p, err := b.r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p), nil
}

func (b *BigEndian) ReadInt16() (int16, error) {
	v, err := b.ReadUint16()
	return int16(v), err
}

func (b *BigEndian) ReadUint32() (uint32, error) {
	p, err := b.r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

func (b *BigEndian) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

func (b *BigEndian) ReadUint64() (uint64, error) {
	p, err := b.r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(p), nil
}

func (b *BigEndian) ReadInt64() (int64, error) {
	v, err := b.ReadUint64()
	return int64(v), err
}

func (b *BigEndian) ReadFloat32() (float32, error) {
	u, err := b.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

func (b *BigEndian) ReadFloat64() (float64, error) {
	u, err := b.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}
