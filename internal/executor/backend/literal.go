package backend

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"polyrun/internal/executor/model"
	"polyrun/internal/executor/typesys"
	pkgerrors "polyrun/pkg/errors"
)

// Scalar checks shared by the renderers. They validate the raw token against
// its declared base type so a bad literal fails rendering instead of
// compilation.

// ScalarBool parses true/false in any letter case.
func ScalarBool(s *typesys.Scalar) (bool, error) {
	switch strings.ToLower(typesys.Unquote(s.Text)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, pkgerrors.Newf(pkgerrors.MalformedValue, "%q is not a bool", s.Text)
}

// ScalarInt parses an integer that must fit the declared width.
func ScalarInt(s *typesys.Scalar) (int64, error) {
	text := strings.ReplaceAll(typesys.Unquote(s.Text), "_", "")
	n, err := strconv.ParseInt(text, 10, s.Type.Base.BitSize())
	if err != nil {
		return 0, pkgerrors.Wrapf(err, pkgerrors.MalformedValue, "%q is not a valid %s", s.Text, s.Type.Base)
	}
	return n, nil
}

// ScalarFloat parses a float in the declared precision. inf, -inf and nan are
// accepted in any case.
func ScalarFloat(s *typesys.Scalar) (float64, error) {
	bits := 64
	if s.Type.Base == typesys.Float32 {
		bits = 32
	}
	f, err := strconv.ParseFloat(typesys.Unquote(s.Text), bits)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, pkgerrors.MalformedValue, "%q is not a valid %s", s.Text, s.Type.Base)
	}
	return f, nil
}

// ScalarString is the content of a string literal, quoted or not.
func ScalarString(s *typesys.Scalar) string {
	return typesys.Unquote(s.Text)
}

// ScalarChar is the single character of a char literal.
func ScalarChar(s *typesys.Scalar) (rune, error) {
	text := typesys.Unquote(s.Text)
	if utf8.RuneCountInString(text) != 1 {
		return 0, pkgerrors.Newf(pkgerrors.MalformedValue, "%q is not a single character", s.Text)
	}
	r, _ := utf8.DecodeRuneInString(text)
	return r, nil
}

// ScalarDecimal validates a decimal literal and returns its text.
func ScalarDecimal(s *typesys.Scalar) (string, error) {
	text := typesys.Unquote(s.Text)
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return "", pkgerrors.Wrapf(err, pkgerrors.MalformedValue, "%q is not a valid decimal", s.Text)
	}
	return text, nil
}

// FormatFloat renders a finite float with the shortest round-tripping digits
// and always includes a decimal point or exponent.
func FormatFloat(f float64, bits int) string {
	out := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(out, ".eE") {
		out += ".0"
	}
	return out
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// CheckIdentifiers rejects function and parameter names that cannot be
// spliced into generated source.
func CheckIdentifiers(fn *model.FunctionSignature) error {
	names := append([]string{fn.Name}, fn.InputNames...)
	names = append(names, fn.OutputNames...)
	for _, name := range names {
		if !identifierPattern.MatchString(name) {
			return pkgerrors.Newf(pkgerrors.MalformedSignature, "%q is not a valid identifier in function %s", name, fn.Name)
		}
	}
	return nil
}
