package curveexpr

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Each record renders as a one-key object named after its String token
// prefix: {"Op":"Add"}, {"C":"Smile"}, {"F":3}, {"V":0.5}.

func (o Operator) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (e OperatorElement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Op Operator `json:"Op"`
	}{e.Op})
}

func (e NameConstant) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		C string `json:"C"`
	}{e.Name.String()})
}

func (e FunctionRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		F int32 `json:"F"`
	}{e.Index})
}

func (e FloatLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		V float32 `json:"V"`
	}{e.Value})
}

func (e Expression) MarshalJSON() ([]byte, error) {
	if e.Elements == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e.Elements)
}

// MarshalJSON writes an object whose keys keep the map's insertion order.
func (m *ExpressionMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, v := range m.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		key, err := json.Marshal(k.String())
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
