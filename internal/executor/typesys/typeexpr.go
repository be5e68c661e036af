package typesys

import (
	"strings"

	pkgerrors "polyrun/pkg/errors"
)

// TypeExpr is an immutable type tree. len(Params) always equals Base.Arity().
type TypeExpr struct {
	Base   BaseType
	Params []*TypeExpr
}

// NewTypeExpr builds a type node, checking the arity.
func NewTypeExpr(base BaseType, params ...*TypeExpr) (*TypeExpr, error) {
	if len(params) != base.Arity() {
		return nil, pkgerrors.Newf(pkgerrors.MalformedType,
			"%s expects %d type parameters, got %d", base.Keyword(), base.Arity(), len(params))
	}
	return &TypeExpr{Base: base, Params: params}, nil
}

// Param returns the i-th generic parameter or nil.
func (t *TypeExpr) Param(i int) *TypeExpr {
	if t == nil || i < 0 || i >= len(t.Params) {
		return nil
	}
	return t.Params[i]
}

// Equal compares base types and parameters recursively.
func (t *TypeExpr) Equal(other *TypeExpr) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Base != other.Base || len(t.Params) != len(other.Params) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equal(other.Params[i]) {
			return false
		}
	}
	return true
}

// String renders the canonical descriptor, e.g. "map<int32, list<string>>".
func (t *TypeExpr) String() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *TypeExpr) write(b *strings.Builder) {
	b.WriteString(t.Base.Keyword())
	if len(t.Params) == 0 {
		return
	}
	b.WriteByte('<')
	for i, p := range t.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		p.write(b)
	}
	b.WriteByte('>')
}

// ParseType parses a type descriptor. Keywords are case-insensitive and
// whitespace around '<', '>' and ',' is ignored.
func ParseType(text string) (*TypeExpr, error) {
	p := &typeParser{input: text}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected trailing characters %q", p.input[p.pos:])
	}
	return typ, nil
}

// MustParseType is ParseType for descriptors known to be valid.
func MustParseType(text string) *TypeExpr {
	typ, err := ParseType(text)
	if err != nil {
		panic(err)
	}
	return typ
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) parseType() (*TypeExpr, error) {
	p.skipSpace()
	start := p.pos
	base, ok := p.matchKeyword()
	if !ok {
		if p.pos >= len(p.input) {
			return nil, p.errorf("missing type keyword")
		}
		return nil, p.errorf("unknown type keyword at %q", p.input[start:])
	}

	var params []*TypeExpr
	p.skipSpace()
	if p.peek() == '<' {
		p.pos++
		for {
			param, err := p.parseType()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			p.skipSpace()
			switch p.peek() {
			case ',':
				p.pos++
				continue
			case '>':
				p.pos++
			default:
				return nil, p.errorf("expected ',' or '>' in parameters of %s", base.Keyword())
			}
			break
		}
	}

	if len(params) != base.Arity() {
		return nil, p.errorf("%s expects %d type parameters, got %d", base.Keyword(), base.Arity(), len(params))
	}
	return &TypeExpr{Base: base, Params: params}, nil
}

// matchKeyword consumes the longest keyword at the cursor. A keyword must
// end at a non-identifier character, so "sets" is not "set".
func (p *typeParser) matchKeyword() (BaseType, bool) {
	rest := p.input[p.pos:]
	best, bestLen := BaseType(-1), 0
	for i, kw := range keywords {
		if len(kw) <= bestLen || len(rest) < len(kw) || !strings.EqualFold(rest[:len(kw)], kw) {
			continue
		}
		if len(rest) > len(kw) && isIdentByte(rest[len(kw)]) {
			continue
		}
		best, bestLen = BaseType(i), len(kw)
	}
	if bestLen == 0 {
		return 0, false
	}
	p.pos += bestLen
	return best, true
}

func (p *typeParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *typeParser) errorf(format string, args ...interface{}) *pkgerrors.Error {
	return pkgerrors.Newf(pkgerrors.MalformedType, format, args...).
		WithDetail("position", p.pos).
		WithDetail("input", p.input)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
