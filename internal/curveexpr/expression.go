// Package curveexpr decodes curve expression bytecode.
//
// An Expression is a postfix program for an external stack machine. This
// package only reproduces the record sequence; it never evaluates it.
package curveexpr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samcharles93/assetcodec/internal/archive"
)

// Operator is a stack operator. Binary operators pop two values and push one.
type Operator int32

const (
	Negate Operator = iota
	Add
	Subtract
	Multiply
	Divide // division by zero yields zero
	Modulo // modulo by zero yields zero
	Power
	FloorDivide
)

var operatorNames = [...]string{
	Negate:      "Negate",
	Add:         "Add",
	Subtract:    "Subtract",
	Multiply:    "Multiply",
	Divide:      "Divide",
	Modulo:      "Modulo",
	Power:       "Power",
	FloorDivide: "FloorDivide",
}

func (o Operator) Valid() bool {
	return o >= Negate && o <= FloorDivide
}

func (o Operator) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Operator(%d)", int32(o))
	}
	return operatorNames[o]
}

// ElementType is the on-disk discriminant of a record.
type ElementType int32

const (
	ElementOperator    ElementType = 0
	ElementName        ElementType = 1
	ElementFunctionRef ElementType = 2
	ElementFloat       ElementType = 3
)

func (t ElementType) String() string {
	switch t {
	case ElementOperator:
		return "operator"
	case ElementName:
		return "name"
	case ElementFunctionRef:
		return "function"
	case ElementFloat:
		return "float"
	default:
		return fmt.Sprintf("element(%d)", int32(t))
	}
}

// OpElement is one record of an Expression. The set of implementations is
// closed: OperatorElement, NameConstant, FunctionRef and FloatLiteral.
type OpElement interface {
	Type() ElementType
	token() string
}

type OperatorElement struct {
	Op Operator
}

type NameConstant struct {
	Name archive.Name
}

// FunctionRef indexes the host's function table.
type FunctionRef struct {
	Index int32
}

type FloatLiteral struct {
	Value float32
}

func (OperatorElement) Type() ElementType { return ElementOperator }
func (NameConstant) Type() ElementType    { return ElementName }
func (FunctionRef) Type() ElementType     { return ElementFunctionRef }
func (FloatLiteral) Type() ElementType    { return ElementFloat }

func (e OperatorElement) token() string { return "Op[" + e.Op.String() + "]" }
func (e NameConstant) token() string    { return "C[" + e.Name.String() + "]" }
func (e FunctionRef) token() string     { return "F[" + strconv.FormatInt(int64(e.Index), 10) + "]" }
func (e FloatLiteral) token() string    { return "V[" + formatFloat(e.Value) + "]" }

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// Expression is an ordered record sequence. Order is the program.
type Expression struct {
	Elements []OpElement
}

func (e Expression) Len() int {
	return len(e.Elements)
}

// String renders one space-separated token per record, in order:
// Op[Name], C[Name], F[Index] or V[Float]. It is a debugging aid.
func (e Expression) String() string {
	tokens := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		tokens[i] = el.token()
	}
	return strings.Join(tokens, " ")
}
