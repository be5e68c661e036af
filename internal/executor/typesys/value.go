package typesys

import (
	"strconv"
	"strings"

	pkgerrors "polyrun/pkg/errors"
)

// Value is a parsed literal shaped like the TypeExpr it was parsed against.
type Value interface {
	// Dimension is 0 for scalars, 1 for sequences and 2 for key/value pairs.
	Dimension() int
	ValueType() *TypeExpr
	// String renders the canonical literal.
	String() string
}

// Scalar holds a raw literal token, exactly as written.
type Scalar struct {
	Type *TypeExpr
	Text string
}

// Seq is an array, list or set literal.
type Seq struct {
	Type     *TypeExpr
	Elements []Value
}

// Pair is one key/value row of a map literal.
type Pair struct {
	Key   Value
	Value Value
}

// Pairs is a map literal; rows keep submission order.
type Pairs struct {
	Type *TypeExpr
	Rows []Pair
}

func (s *Scalar) Dimension() int       { return 0 }
func (s *Scalar) ValueType() *TypeExpr { return s.Type }
func (s *Scalar) String() string       { return s.Text }

func (s *Seq) Dimension() int       { return 1 }
func (s *Seq) ValueType() *TypeExpr { return s.Type }

func (s *Seq) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range s.Elements {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.String())
	}
	b.WriteByte('}')
	return b.String()
}

func (p *Pairs) Dimension() int       { return 2 }
func (p *Pairs) ValueType() *TypeExpr { return p.Type }

func (p *Pairs) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, row := range p.Rows {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(row.Key.String())
		b.WriteByte(':')
		b.WriteString(row.Value.String())
	}
	b.WriteByte('}')
	return b.String()
}

// ParseValue parses text against typ.
//
// A top-level scalar is the whole text, untouched. A top-level collection may
// omit its outer braces ("1:a,2:b" for map<int32, string>); nested
// collections always need them. Scalar tokens inside collections are trimmed,
// and a token starting with a quote extends to the matching quote so it may
// contain separators or braces.
func ParseValue(typ *TypeExpr, text string) (Value, error) {
	if typ == nil {
		return nil, pkgerrors.New(pkgerrors.MalformedValue).WithMessage("value has no type")
	}
	if typ.Base.Arity() == 0 {
		return &Scalar{Type: typ, Text: text}, nil
	}

	p := &valueParser{input: text}
	p.skipSpace()
	if p.peek() == '{' {
		v, err := p.parseNested(typ, "")
		if err == nil {
			p.skipSpace()
			if p.atEnd() {
				return v, nil
			}
			err = p.errorf("unexpected trailing characters %q", p.input[p.pos:])
		}
		// "{1,2},{3}" is an unbraced list of lists
		if alt, altErr := parseUnbraced(typ, text); altErr == nil {
			return alt, nil
		}
		return nil, err
	}
	return parseUnbraced(typ, text)
}

func parseUnbraced(typ *TypeExpr, text string) (Value, error) {
	p := &valueParser{input: text}
	var (
		v   Value
		err error
	)
	if typ.Base.Arity() == 1 {
		v, err = p.parseSeqBody(typ, false)
	} else {
		v, err = p.parsePairsBody(typ, false)
	}
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.errorf("unexpected trailing characters %q", p.input[p.pos:])
	}
	return v, nil
}

// MustParseValue is ParseValue for literals known to be valid.
func MustParseValue(typ *TypeExpr, text string) Value {
	v, err := ParseValue(typ, text)
	if err != nil {
		panic(err)
	}
	return v
}

type valueParser struct {
	input string
	pos   int
}

// parseNested parses one element inside a collection. stops lists the
// characters that end a scalar token at this level.
func (p *valueParser) parseNested(typ *TypeExpr, stops string) (Value, error) {
	switch typ.Base.Arity() {
	case 0:
		return p.parseScalar(typ, stops)
	case 1:
		if err := p.expect('{'); err != nil {
			return nil, err
		}
		return p.parseSeqBody(typ, true)
	default:
		if err := p.expect('{'); err != nil {
			return nil, err
		}
		return p.parsePairsBody(typ, true)
	}
}

func (p *valueParser) parseSeqBody(typ *TypeExpr, braced bool) (*Seq, error) {
	stops := ","
	if braced {
		stops = ",}"
	}
	seq := &Seq{Type: typ, Elements: []Value{}}
	for {
		p.skipSpace()
		if p.closed(braced) {
			return seq, nil
		}
		if len(seq.Elements) > 0 {
			if err := p.expectSeparator(',', braced); err != nil {
				return nil, err
			}
		}
		elem, err := p.parseNested(typ.Params[0], stops)
		if err != nil {
			return nil, err
		}
		seq.Elements = append(seq.Elements, elem)
	}
}

func (p *valueParser) parsePairsBody(typ *TypeExpr, braced bool) (*Pairs, error) {
	keyStops, valueStops := ":,", ","
	if braced {
		keyStops, valueStops = ":,}", ",}"
	}
	pairs := &Pairs{Type: typ, Rows: []Pair{}}
	for {
		p.skipSpace()
		if p.closed(braced) {
			return pairs, nil
		}
		if len(pairs.Rows) > 0 {
			if err := p.expectSeparator(',', braced); err != nil {
				return nil, err
			}
		}
		key, err := p.parseNested(typ.Params[0], keyStops)
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		value, err := p.parseNested(typ.Params[1], valueStops)
		if err != nil {
			return nil, err
		}
		pairs.Rows = append(pairs.Rows, Pair{Key: key, Value: value})
	}
}

// closed reports (and consumes) the end of the current collection.
func (p *valueParser) closed(braced bool) bool {
	if !braced {
		return p.atEnd()
	}
	if p.peek() == '}' {
		p.pos++
		return true
	}
	return false
}

func (p *valueParser) expectSeparator(sep byte, braced bool) error {
	if p.peek() == sep {
		p.pos++
		return nil
	}
	if braced {
		return p.errorf("expected '%c' or '}'", sep)
	}
	return p.errorf("expected '%c'", sep)
}

func (p *valueParser) parseScalar(typ *TypeExpr, stops string) (*Scalar, error) {
	p.skipSpace()
	start := p.pos
	if q := p.peek(); q == '"' || q == '\'' {
		if err := p.skipQuoted(q); err != nil {
			return nil, err
		}
		token := p.input[start:p.pos]
		p.skipSpace()
		if !p.atEnd() && !strings.ContainsRune(stops, rune(p.peek())) {
			return nil, p.errorf("scalar token %s cannot be isolated from the following separator", token)
		}
		return &Scalar{Type: typ, Text: token}, nil
	}

	for !p.atEnd() && !strings.ContainsRune(stops, rune(p.peek())) {
		p.pos++
	}
	token := strings.TrimSpace(p.input[start:p.pos])
	if token == "" {
		return nil, p.errorf("scalar token cannot be isolated: empty %s value", typ.Base.Keyword())
	}
	// braces inside a collection must be quoted
	if strings.ContainsAny(token, "{}") {
		return nil, p.errorf("scalar token %q cannot be isolated: unexpected brace", token)
	}
	return &Scalar{Type: typ, Text: token}, nil
}

func (p *valueParser) skipQuoted(q byte) error {
	start := p.pos
	p.pos++
	for !p.atEnd() {
		switch p.input[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case q:
			p.pos++
			return nil
		}
		p.pos++
	}
	p.pos = len(p.input)
	return pkgerrors.Newf(pkgerrors.MalformedValue, "unterminated quoted literal").
		WithDetail("position", start).
		WithDetail("input", p.input)
}

func (p *valueParser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return p.errorf("expected '%c'", c)
	}
	p.pos++
	return nil
}

func (p *valueParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *valueParser) atEnd() bool {
	return p.pos >= len(p.input)
}

func (p *valueParser) skipSpace() {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *valueParser) errorf(format string, args ...interface{}) *pkgerrors.Error {
	return pkgerrors.Newf(pkgerrors.MalformedValue, format, args...).
		WithDetail("position", p.pos).
		WithDetail("input", p.input)
}

// Unquote strips matching quotes from a scalar token and resolves escape
// sequences. Unquoted text is returned unchanged.
func Unquote(text string) string {
	if len(text) < 2 {
		return text
	}
	q := text[0]
	if (q != '"' && q != '\'') || text[len(text)-1] != q {
		return text
	}
	if q == '"' {
		if s, err := strconv.Unquote(text); err == nil {
			return s
		}
		return text[1 : len(text)-1]
	}
	inner := text[1 : len(text)-1]
	if s, err := strconv.Unquote(`"` + escapeDoubleQuotes(inner) + `"`); err == nil {
		return s
	}
	return inner
}

// escapeDoubleQuotes rewrites single-quoted content so strconv.Unquote can
// read it as a double-quoted string.
func escapeDoubleQuotes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && s[i+1] == '\'':
			b.WriteByte('\'')
			i++
		case c == '\\' && i+1 < len(s):
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
		case c == '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
