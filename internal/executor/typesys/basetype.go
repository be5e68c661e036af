// Package typesys parses the language-neutral type descriptors and value
// literals that describe function signatures and test cases.
package typesys

// BaseType is the closed set of type constructors.
type BaseType int

const (
	String BaseType = iota
	Char
	Bool
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Decimal
	Array
	List
	Set
	Map
)

var keywords = [...]string{
	String:  "string",
	Char:    "char",
	Bool:    "bool",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Float32: "float32",
	Float64: "float64",
	Decimal: "decimal",
	Array:   "array",
	List:    "list",
	Set:     "set",
	Map:     "map",
}

// BaseTypes lists every base type in declaration order.
func BaseTypes() []BaseType {
	out := make([]BaseType, 0, len(keywords))
	for i := range keywords {
		out = append(out, BaseType(i))
	}
	return out
}

// Keyword is the lowercase descriptor keyword.
func (b BaseType) Keyword() string {
	if b < 0 || int(b) >= len(keywords) {
		return "unknown"
	}
	return keywords[b]
}

func (b BaseType) String() string {
	return b.Keyword()
}

// Arity is the number of generic parameters the base type takes.
func (b BaseType) Arity() int {
	switch b {
	case Array, List, Set:
		return 1
	case Map:
		return 2
	default:
		return 0
	}
}

func (b BaseType) IsInteger() bool {
	switch b {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

func (b BaseType) IsFloat() bool {
	return b == Float32 || b == Float64
}

func (b BaseType) IsNumeric() bool {
	return b.IsInteger() || b.IsFloat() || b == Decimal
}

// BitSize is the width of fixed-size numeric types, 0 otherwise.
func (b BaseType) BitSize() int {
	switch b {
	case Int8:
		return 8
	case Int16:
		return 16
	case Int32, Float32:
		return 32
	case Int64, Float64:
		return 64
	}
	return 0
}
