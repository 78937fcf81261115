package archive

import (
	"encoding/binary"
	"fmt"
)

// Primitive is the set of fixed-width values a Reader decodes directly.
type Primitive interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64 | float32 | float64
}

// Read decodes one T in r's byte order.
func Read[T Primitive](r Reader) (T, error) {
	var zero T
	var (
		v   any
		err error
	)
	switch any(zero).(type) {
	case uint8:
		v, err = r.ReadUint8()
	case int8:
		v, err = r.ReadInt8()
	case uint16:
		v, err = r.ReadUint16()
	case int16:
		v, err = r.ReadInt16()
	case uint32:
		v, err = r.ReadUint32()
	case int32:
		v, err = r.ReadInt32()
	case uint64:
		v, err = r.ReadUint64()
	case int64:
		v, err = r.ReadInt64()
	case float32:
		v, err = r.ReadFloat32()
	case float64:
		v, err = r.ReadFloat64()
	}
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// ReadCount reads an int32 element count and checks that count elements of
// at least minSize bytes each fit in the rest of the source.
func ReadCount(r Reader, minSize int64) (int, error) {
	at := r.Position()
	n, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &FormatError{Offset: at, Field: "count", Raw: int64(n), Reason: "negative element count"}
	}
	if minSize > 0 && int64(n)*minSize > Remaining(r) {
		return 0, &FormatError{
			Offset: at,
			Field:  "count",
			Raw:    int64(n),
			Reason: fmt.Sprintf("count exceeds remaining %d bytes", Remaining(r)),
		}
	}
	return int(n), nil
}

// ReadSlice reads a length-prefixed array of primitives.
func ReadSlice[T Primitive](r Reader) ([]T, error) {
	var zero T
	n, err := ReadCount(r, int64(binary.Size(zero)))
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	for i := range out {
		v, err := Read[T](r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ReadArray reads a length-prefixed array whose elements are decoded by elem.
// Every element is assumed to occupy at least one byte.
func ReadArray[T any](r Reader, elem func(Reader) (T, error)) ([]T, error) {
	n, err := ReadCount(r, 1)
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	for i := range out {
		v, err := elem(r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// ReadMap reads a count followed by key/value pairs. A repeated key replaces
// the earlier value.
func ReadMap[K comparable, V any](r Reader, key func(Reader) (K, error), val func(Reader) (V, error)) (map[K]V, error) {
	n, err := ReadCount(r, 1)
	if err != nil {
		return nil, err
	}
	out := make(map[K]V, n)
	for i := range n {
		k, err := key(r)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		v, err := val(r)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[k] = v
	}
	return out, nil
}

// ReadString reads an int32 length and that many raw ASCII bytes.
// There is no terminator.
func ReadString(r Reader) (string, error) {
	n, err := ReadCount(r, 1)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	b, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadStrings reads a length-prefixed array of strings.
func ReadStrings(r Reader) ([]string, error) {
	return ReadArray(r, ReadString)
}

// ReadBool reads a uint32 that must be 0 or 1.
func ReadBool(r Reader) (bool, error) {
	at := r.Position()
	v, err := r.ReadUint32()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, &FormatError{Offset: at, Field: "bool", Raw: int64(v), Reason: "expected 0 or 1"}
}
