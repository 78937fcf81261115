package source

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asset.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestOpenMapsFile(t *testing.T) {
	t.Parallel()

	want := []byte("DNA\x00\x02\x00\x03")
	src, err := Open(writeTemp(t, want), 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = src.Close() }()

	if !bytes.Equal(src.Bytes(), want) || src.Len() != int64(len(want)) {
		t.Fatalf("bytes = %q", src.Bytes())
	}
	c := src.Cursor()
	if err := c.Skip(3); err != nil {
		t.Fatal(err)
	}
	// Each cursor starts at zero.
	if src.Cursor().Position() != 0 {
		t.Fatal("cursor shares position")
	}
}

func TestOpenEmptyFile(t *testing.T) {
	t.Parallel()

	src, err := Open(writeTemp(t, nil), 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if src.Len() != 0 || src.Mapped() {
		t.Fatalf("len %d mapped %v", src.Len(), src.Mapped())
	}
	if err := src.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOpenRejectsLargeFile(t *testing.T) {
	t.Parallel()

	_, err := Open(writeTemp(t, make([]byte, 64)), 63)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Open(filepath.Join(t.TempDir(), "missing"), 0)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestFromReaderAt(t *testing.T) {
	t.Parallel()

	want := bytes.Repeat([]byte{1, 2, 3}, 100)
	src, err := FromReaderAt(bytes.NewReader(want), int64(len(want)), 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(src.Bytes(), want) || src.Mapped() {
		t.Fatal("unexpected content")
	}

	if _, err := FromReaderAt(bytes.NewReader(want), int64(len(want)), 10); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if _, err := FromReaderAt(bytes.NewReader(want), -1, 0); !errors.Is(err, ErrBadSize) {
		t.Fatalf("expected ErrBadSize, got %v", err)
	}
	if _, err := FromReaderAt(bytes.NewReader(want[:5]), 10, 0); err == nil {
		t.Fatal("expected error for short reader")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	src, err := Open(writeTemp(t, []byte("AND")), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := src.Close(); err != nil {
		t.Fatal(err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	var nilSrc *Source
	if err := nilSrc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFromBytesSharesBuffer(t *testing.T) {
	t.Parallel()

	buf := []byte{1, 2, 3, 4}
	src := FromBytes(buf)
	c := src.Cursor()
	v, err := c.ReadUint32()
	if err != nil || v != 0x04030201 {
		t.Fatalf("read = %#x, %v", v, err)
	}
	if &src.Bytes()[0] != &buf[0] {
		t.Fatal("FromBytes copied the buffer")
	}
}
