package archive

import (
	"strconv"
)

// Name is an interned name reference: an index into the asset's name map
// plus an instance number. Number 0 means no numeric suffix.
type Name struct {
	Index  int32
	Number int32
	Text   string
}

// String renders the name the way the engine displays it: "Text" or
// "Text_<Number-1>". Unresolved names render as "#<Index>".
func (n Name) String() string {
	base := n.Text
	if base == "" {
		base = "#" + strconv.FormatInt(int64(n.Index), 10)
	}
	if n.Number == 0 {
		return base
	}
	return base + "_" + strconv.FormatInt(int64(n.Number-1), 10)
}

func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// NameTable resolves name-map indices.
type NameTable interface {
	NameAt(index int32) (string, bool)
}

// NameMap is a NameTable backed by a slice, in name-map order.
type NameMap []string

func (m NameMap) NameAt(index int32) (string, bool) {
	if index < 0 || int(index) >= len(m) {
		return "", false
	}
	return m[index], true
}

// ReadName reads an int32 index and int32 number and resolves the index
// against names. With a nil table the name is left unresolved.
func ReadName(r Reader, names NameTable) (Name, error) {
	at := r.Position()
	idx, err := r.ReadInt32()
	if err != nil {
		return Name{}, err
	}
	num, err := r.ReadInt32()
	if err != nil {
		return Name{}, err
	}
	n := Name{Index: idx, Number: num}
	if names == nil {
		return n, nil
	}
	text, ok := names.NameAt(idx)
	if !ok {
		return Name{}, &FormatError{Offset: at, Field: "name index", Raw: int64(idx), Reason: "outside name map"}
	}
	n.Text = text
	return n, nil
}

// NameReader binds a name table into an element decoder for ReadArray.
func NameReader(names NameTable) func(Reader) (Name, error) {
	return func(r Reader) (Name, error) {
		return ReadName(r, names)
	}
}
