// Package source loads asset bytes for decoding. Files are mapped read-only
// where the platform allows it and read into memory otherwise.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/samcharles93/assetcodec/internal/archive"
)

var (
	ErrTooLarge = errors.New("source: input exceeds size limit")
	ErrBadSize  = errors.New("source: invalid size")
)

const maxInt = int64(int(^uint(0) >> 1))

// Source is an immutable byte buffer. Cursors over it may be used from
// different goroutines as long as each goroutine has its own.
type Source struct {
	data    []byte
	mmapped bool
	name    string
}

// Open maps path read-only. maxSize > 0 rejects larger files with
// ErrTooLarge before anything is mapped or read.
func Open(path string, maxSize int64) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if err := checkSize(size64, maxSize); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	size := int(size64)

	if size > 0 {
		data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
		if err == nil {
			return &Source{data: data, mmapped: true, name: path}, nil
		}
	}

	// Fallback path that does not require mmap support.
	data, err := readAllAt(f, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Source{data: data, name: path}, nil
}

// FromReaderAt copies size bytes from r.
func FromReaderAt(r io.ReaderAt, size, maxSize int64) (*Source, error) {
	if err := checkSize(size, maxSize); err != nil {
		return nil, err
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return &Source{data: data}, nil
}

// FromBytes wraps data without copying.
func FromBytes(data []byte) *Source {
	return &Source{data: data}
}

func checkSize(size, maxSize int64) error {
	if size < 0 || size > maxInt {
		return fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	if maxSize > 0 && size > maxSize {
		return fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, size, maxSize)
	}
	return nil
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

// Name is the path the source was opened from, if any.
func (s *Source) Name() string { return s.name }

func (s *Source) Len() int64 { return int64(len(s.data)) }

// Bytes returns the underlying buffer. It must not be modified and is invalid
// after Close for mapped sources.
func (s *Source) Bytes() []byte { return s.data }

// Mapped reports whether the bytes are a memory mapping.
func (s *Source) Mapped() bool { return s.mmapped }

// Cursor returns a little-endian cursor at offset 0 with its own position.
func (s *Source) Cursor() *archive.Cursor {
	return archive.NewCursor(s.data)
}

func (s *Source) Close() error {
	if s == nil || s.data == nil {
		return nil
	}
	var err error
	if s.mmapped {
		err = unix.Munmap(s.data)
	}
	s.data = nil
	s.mmapped = false
	return err
}
