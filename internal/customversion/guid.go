package customversion

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/samcharles93/assetcodec/internal/archive"
)

// GUID identifies a serialization format. The engine stores it as four
// uint32 words; the text form is the 16 bytes of those words in big-endian
// order.
type GUID struct {
	A, B, C, D uint32
}

// ParseGUID accepts any form uuid.Parse does: hyphenated, braced, urn:uuid:
// prefixed or 32 bare hex digits.
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return GUID{}, fmt.Errorf("parse guid %q: %w", s, err)
	}
	return FromUUID(u), nil
}

// MustParseGUID is ParseGUID for package-level literals.
func MustParseGUID(s string) GUID {
	g, err := ParseGUID(s)
	if err != nil {
		panic(err)
	}
	return g
}

func FromUUID(u uuid.UUID) GUID {
	return GUID{
		A: binary.BigEndian.Uint32(u[0:4]),
		B: binary.BigEndian.Uint32(u[4:8]),
		C: binary.BigEndian.Uint32(u[8:12]),
		D: binary.BigEndian.Uint32(u[12:16]),
	}
}

func (g GUID) UUID() uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], g.A)
	binary.BigEndian.PutUint32(u[4:8], g.B)
	binary.BigEndian.PutUint32(u[8:12], g.C)
	binary.BigEndian.PutUint32(u[12:16], g.D)
	return u
}

func (g GUID) IsZero() bool {
	return g == GUID{}
}

func (g GUID) String() string {
	return strings.ToUpper(g.UUID().String())
}

func (g GUID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *GUID) UnmarshalText(b []byte) error {
	v, err := ParseGUID(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ReadGUID reads four uint32 words in r's byte order.
func ReadGUID(r archive.Reader) (GUID, error) {
	var g GUID
	var err error
	if g.A, err = r.ReadUint32(); err != nil {
		return GUID{}, err
	}
	if g.B, err = r.ReadUint32(); err != nil {
		return GUID{}, err
	}
	if g.C, err = r.ReadUint32(); err != nil {
		return GUID{}, err
	}
	if g.D, err = r.ReadUint32(); err != nil {
		return GUID{}, err
	}
	return g, nil
}
