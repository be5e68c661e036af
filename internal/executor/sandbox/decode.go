package sandbox

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

var boms = []struct {
	mark []byte
	enc  encoding.Encoding
}{
	// UTF-32 marks first: the UTF-32LE mark starts with the UTF-16LE one.
	{[]byte{0xFF, 0xFE, 0x00, 0x00}, utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM)},
	{[]byte{0x00, 0x00, 0xFE, 0xFF}, utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM)},
	{[]byte{0xEF, 0xBB, 0xBF}, unicode.UTF8BOM},
	{[]byte{0xFF, 0xFE}, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)},
	{[]byte{0xFE, 0xFF}, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)},
}

// DecodeConsole turns captured process output into text. A byte order mark
// selects UTF-8, UTF-16 or UTF-32; without one the bytes are read as UTF-8.
// Line endings are normalized to "\n".
func DecodeConsole(raw []byte) string {
	text := ""
	decoded := false
	for _, b := range boms {
		if !bytes.HasPrefix(raw, b.mark) {
			continue
		}
		out, err := b.enc.NewDecoder().Bytes(raw)
		if err == nil {
			text = string(out)
			decoded = true
		}
		break
	}
	if !decoded {
		text = string(raw)
		if !utf8.ValidString(text) {
			text = strings.ToValidUTF8(text, "�")
		}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
