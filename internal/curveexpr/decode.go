package curveexpr

import (
	"fmt"
	"iter"

	"github.com/samcharles93/assetcodec/internal/archive"
	"github.com/samcharles93/assetcodec/internal/customversion"
	"github.com/samcharles93/assetcodec/internal/logger"
)

// Custom version ordinals of the CurveExpression format.
const (
	BeforeCustomVersionWasAdded  int32 = 0
	SerializedExpressions        int32 = 1
	ExpressionDataInSharedObject int32 = 2

	LatestVersion = ExpressionDataInSharedObject
)

// minRecordSize is a discriminant plus the smallest operand.
const minRecordSize = 8

// DecodeExpression reads an int32 record count and that many tagged records.
// An unknown discriminant or operator is a *archive.FormatError at the
// offset of the offending value.
func DecodeExpression(r archive.Reader, names archive.NameTable) (Expression, error) {
	n, err := archive.ReadCount(r, minRecordSize)
	if err != nil {
		return Expression{}, fmt.Errorf("expression operand count: %w", err)
	}
	elems := make([]OpElement, 0, n)
	for i := range n {
		el, err := decodeElement(r, names)
		if err != nil {
			return Expression{}, fmt.Errorf("expression record %d: %w", i, err)
		}
		elems = append(elems, el)
	}
	return Expression{Elements: elems}, nil
}

func decodeElement(r archive.Reader, names archive.NameTable) (OpElement, error) {
	at := r.Position()
	tag, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	switch ElementType(tag) {
	case ElementOperator:
		opAt := r.Position()
		v, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		op := Operator(v)
		if !op.Valid() {
			return nil, &archive.FormatError{Offset: opAt, Field: "operator", Raw: int64(v), Reason: "unknown operator"}
		}
		return OperatorElement{Op: op}, nil
	case ElementName:
		name, err := archive.ReadName(r, names)
		if err != nil {
			return nil, err
		}
		return NameConstant{Name: name}, nil
	case ElementFunctionRef:
		idx, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		return FunctionRef{Index: idx}, nil
	case ElementFloat:
		v, err := r.ReadFloat32()
		if err != nil {
			return nil, err
		}
		return FloatLiteral{Value: v}, nil
	default:
		return nil, &archive.FormatError{Offset: at, Field: "operand type", Raw: int64(tag), Reason: "unknown discriminant"}
	}
}

// ExpressionMap holds named expressions. Keys iterate in first-insertion
// order; a repeated key replaces the value but keeps its position.
type ExpressionMap struct {
	keys   []archive.Name
	values map[archive.Name]Expression
}

func NewExpressionMap() *ExpressionMap {
	return &ExpressionMap{values: make(map[archive.Name]Expression)}
}

func (m *ExpressionMap) set(k archive.Name, v Expression) {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

func (m *ExpressionMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *ExpressionMap) Get(k archive.Name) (Expression, bool) {
	if m == nil {
		return Expression{}, false
	}
	v, ok := m.values[k]
	return v, ok
}

// Lookup finds an entry by its display name.
func (m *ExpressionMap) Lookup(name string) (Expression, bool) {
	if m == nil {
		return Expression{}, false
	}
	for _, k := range m.keys {
		if k.String() == name {
			return m.values[k], true
		}
	}
	return Expression{}, false
}

func (m *ExpressionMap) Keys() []archive.Name {
	if m == nil {
		return nil
	}
	out := make([]archive.Name, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *ExpressionMap) All() iter.Seq2[archive.Name, Expression] {
	return func(yield func(archive.Name, Expression) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// DecodeExpressionMap reads an int32 entry count and (name, expression)
// pairs. Later duplicates overwrite earlier ones.
func DecodeExpressionMap(r archive.Reader, names archive.NameTable) (*ExpressionMap, error) {
	// name (8) + empty expression (4)
	n, err := archive.ReadCount(r, 12)
	if err != nil {
		return nil, fmt.Errorf("expression map count: %w", err)
	}
	m := NewExpressionMap()
	for i := range n {
		k, err := archive.ReadName(r, names)
		if err != nil {
			return nil, fmt.Errorf("expression map key %d: %w", i, err)
		}
		v, err := DecodeExpression(r, names)
		if err != nil {
			return nil, fmt.Errorf("expression map %q: %w", k, err)
		}
		m.set(k, v)
	}
	return m, nil
}

// Asset is the binary body of a curve expressions data asset.
type Asset struct {
	Version customversion.Resolution `json:"version"`
	// NamedConstants is nil before ExpressionDataInSharedObject.
	NamedConstants []archive.Name  `json:"namedConstants,omitempty"`
	Expressions    *ExpressionMap `json:"expressionMap"`
}

// Decoder decodes curve expression assets. The zero value is ready to use.
type Decoder struct {
	Log      logger.Logger
	Registry *customversion.Registry
}

func (d *Decoder) log() logger.Logger {
	if d.Log == nil {
		return logger.Nop()
	}
	return d.Log
}

func (d *Decoder) format() customversion.Format {
	if d.Registry != nil {
		if f, ok := d.Registry.Lookup(customversion.CurveExpression.Name); ok {
			return f
		}
	}
	return customversion.CurveExpression
}

// DecodeAsset decodes the asset body at r's position using the
// CurveExpression ordinal resolved from versions.
//
//   - before SerializedExpressions nothing is read and the map is empty;
//   - from ExpressionDataInSharedObject the named constants precede the map;
//   - otherwise only the map is present.
func (d *Decoder) DecodeAsset(r archive.Reader, names archive.NameTable, versions customversion.Table) (*Asset, []archive.Warning, error) {
	res := d.format().Resolve(versions)
	log := d.log().With("format", res.Format, "custom_version", res.Ordinal)

	var warnings []archive.Warning
	if w, ok := res.Warning(r.Position()); ok {
		log.Warn("newer custom version than supported", "latest", res.Latest)
		warnings = append(warnings, w)
	}

	asset := &Asset{Version: res}
	if !res.AtLeast(SerializedExpressions) {
		log.Debug("expressions not binary serialized at this version")
		asset.Expressions = NewExpressionMap()
		return asset, warnings, nil
	}

	if res.AtLeast(ExpressionDataInSharedObject) {
		consts, err := archive.ReadArray(r, archive.NameReader(names))
		if err != nil {
			return nil, nil, fmt.Errorf("named constants: %w", err)
		}
		asset.NamedConstants = consts
	}

	m, err := DecodeExpressionMap(r, names)
	if err != nil {
		return nil, nil, err
	}
	asset.Expressions = m
	log.Debug("decoded curve expressions", "expressions", m.Len(), "named_constants", len(asset.NamedConstants))
	return asset, warnings, nil
}

// DecodeAsset decodes with a zero Decoder.
func DecodeAsset(r archive.Reader, names archive.NameTable, versions customversion.Table) (*Asset, []archive.Warning, error) {
	var d Decoder
	return d.DecodeAsset(r, names, versions)
}
