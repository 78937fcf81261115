// Package customversion resolves per-format custom version ordinals.
//
// Every format keeps its own monotonically increasing ordinal, keyed by a
// GUID. Assets carry a table of the ordinals they were saved with; decoders
// compare the resolved ordinal against thresholds with >=, never ==, so a
// newer ordinal keeps selecting the newest known layout.
package customversion

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samcharles93/assetcodec/internal/archive"
)

// Table maps a format GUID to the ordinal an asset was saved with.
type Table map[GUID]int32

// Clone returns a copy that can be modified independently.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Format is a registered serialization format.
type Format struct {
	Name string
	GUID GUID
	// Latest is the newest ordinal this module implements.
	Latest int32
	// Default is what an asset without a table entry resolves to.
	Default int32
}

// Resolution is the outcome of a lookup.
type Resolution struct {
	Format    string `json:"format,omitempty"`
	GUID      GUID   `json:"guid"`
	Ordinal   int32  `json:"ordinal"`
	Latest    int32  `json:"latest"`
	FromTable bool   `json:"fromTable"`
	// Ahead is set when the ordinal is newer than any known layout.
	// It is valid and must be decoded with the newest layout.
	Ahead bool `json:"ahead,omitempty"`
}

// AtLeast reports whether the resolved ordinal is v or newer.
func (r Resolution) AtLeast(v int32) bool {
	return r.Ordinal >= v
}

// Warning returns an unsupported-version diagnostic when r is ahead of the
// known layouts.
func (r Resolution) Warning(offset int64) (archive.Warning, bool) {
	if !r.Ahead {
		return archive.Warning{}, false
	}
	return archive.Warning{
		Kind:   archive.WarnUnsupportedVersion,
		Offset: offset,
		Message: fmt.Sprintf("%s custom version %d is newer than latest known %d; decoding with latest layout",
			r.Format, r.Ordinal, r.Latest),
	}, true
}

// Resolve never fails: a present entry is returned verbatim, an absent one
// yields the format default.
func (f Format) Resolve(t Table) Resolution {
	if v, ok := t[f.GUID]; ok {
		return Resolution{Format: f.Name, GUID: f.GUID, Ordinal: v, Latest: f.Latest, FromTable: true, Ahead: v > f.Latest}
	}
	return Resolution{Format: f.Name, GUID: f.GUID, Ordinal: f.Default, Latest: f.Latest}
}

var ErrDuplicateFormat = errors.New("customversion: duplicate format")

// Registry is an immutable set of formats, built once and passed to whoever
// resolves versions.
type Registry struct {
	formats []Format
	byGUID  map[GUID]int
	byName  map[string]int
}

// NewRegistry rejects two formats sharing a name or GUID.
func NewRegistry(formats ...Format) (*Registry, error) {
	r := &Registry{
		formats: make([]Format, 0, len(formats)),
		byGUID:  make(map[GUID]int, len(formats)),
		byName:  make(map[string]int, len(formats)),
	}
	for _, f := range formats {
		if f.Name == "" {
			return nil, fmt.Errorf("customversion: format %s has no name", f.GUID)
		}
		if _, ok := r.byName[f.Name]; ok {
			return nil, fmt.Errorf("%w: name %q", ErrDuplicateFormat, f.Name)
		}
		if _, ok := r.byGUID[f.GUID]; ok {
			return nil, fmt.Errorf("%w: guid %s", ErrDuplicateFormat, f.GUID)
		}
		r.byName[f.Name] = len(r.formats)
		r.byGUID[f.GUID] = len(r.formats)
		r.formats = append(r.formats, f)
	}
	return r, nil
}

// With returns a new registry where formats replace same-named entries and
// the rest are appended.
func (r *Registry) With(formats ...Format) (*Registry, error) {
	merged := slices.Clone(r.formats)
	for _, f := range formats {
		if i, ok := r.byName[f.Name]; ok {
			merged[i] = f
			continue
		}
		merged = append(merged, f)
	}
	return NewRegistry(merged...)
}

// Formats returns the registered formats in registration order.
func (r *Registry) Formats() []Format {
	return slices.Clone(r.formats)
}

func (r *Registry) Lookup(name string) (Format, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Format{}, false
	}
	return r.formats[i], true
}

func (r *Registry) LookupGUID(g GUID) (Format, bool) {
	i, ok := r.byGUID[g]
	if !ok {
		return Format{}, false
	}
	return r.formats[i], true
}

// Resolve looks g up in t. Registered formats apply their default when t has
// no entry; an unregistered GUID without an entry resolves to 0.
func (r *Registry) Resolve(t Table, g GUID) Resolution {
	if f, ok := r.LookupGUID(g); ok {
		return f.Resolve(t)
	}
	if v, ok := t[g]; ok {
		return Resolution{GUID: g, Ordinal: v, Latest: v, FromTable: true}
	}
	return Resolution{GUID: g}
}

// ReadTable decodes a serialized custom version container: an int32 count
// followed by (GUID, int32) pairs. A repeated GUID keeps the last ordinal.
func ReadTable(r archive.Reader) (Table, error) {
	m, err := archive.ReadMap(r, ReadGUID, archive.Reader.ReadInt32)
	if err != nil {
		return nil, fmt.Errorf("read custom versions: %w", err)
	}
	return Table(m), nil
}
