package archive

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrEndOfStream matches any *EndOfStreamError.
	ErrEndOfStream = errors.New("end of stream")
	// ErrFormat matches any *FormatError.
	ErrFormat = errors.New("format error")
)

// EndOfStreamError is returned when a read or seek needs more bytes than the
// source holds.
type EndOfStreamError struct {
	Offset int64 // position of the failed read
	Need   int64
	Avail  int64
}

func (e *EndOfStreamError) Error() string {
	return fmt.Sprintf("end of stream at offset %d: need %d bytes, %d available", e.Offset, e.Need, e.Avail)
}

func (e *EndOfStreamError) Is(target error) bool {
	return target == ErrEndOfStream
}

// Unwrap lets callers treat truncation like any other short read.
func (e *EndOfStreamError) Unwrap() error {
	return io.ErrUnexpectedEOF
}

// FormatError reports bytes that cannot be decoded: an unknown discriminant,
// an impossible count, a bad magic or an unreachable section.
type FormatError struct {
	Offset  int64
	Section string
	Field   string
	Raw     int64
	Reason  string
	Err     error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("format error")
	if e.Section != "" {
		b.WriteString(" in ")
		b.WriteString(e.Section)
	}
	fmt.Fprintf(&b, " at offset %d", e.Offset)
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s=%d", e.Field, e.Raw)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// WarningKind classifies a non-fatal decode diagnostic.
type WarningKind uint8

const (
	// WarnIntegrity flags an end-of-asset inconsistency such as a bad footer.
	WarnIntegrity WarningKind = iota + 1
	// WarnUnsupportedVersion flags a version newer than any known layout.
	// Decoding continues with the newest known layout.
	WarnUnsupportedVersion
)

func (k WarningKind) String() string {
	switch k {
	case WarnIntegrity:
		return "integrity"
	case WarnUnsupportedVersion:
		return "unsupported-version"
	default:
		return fmt.Sprintf("warning(%d)", uint8(k))
	}
}

// Warning is a diagnostic that never discards decoded data.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Offset  int64       `json:"offset"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at offset %d: %s", w.Kind, w.Offset, w.Message)
}

// MarshalText renders the kind by name in exported diagnostics.
func (k WarningKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
