package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"todo/internal/service"
)

// encode renders tasks as a two-space indented JSON array with every
// non-ASCII rune escaped. No trailing newline is written.
func encode(tasks []service.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []service.Task{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return nil, err
	}

	return escapeNonASCII(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// escapeNonASCII rewrites DEL and each non-ASCII rune as \uXXXX, using a
// surrogate pair above U+FFFF. Valid JSON output only holds such runes
// inside strings.
func escapeNonASCII(b []byte) []byte {
	out := bytes.NewBuffer(make([]byte, 0, len(b)))
	for len(b) > 0 {
		if b[0] == 0x7f {
			out.WriteString(`\u007f`)
			b = b[1:]
			continue
		}
		if b[0] < utf8.RuneSelf {
			out.WriteByte(b[0])
			b = b[1:]
			continue
		}

		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(out, `\u%04x\u%04x`, hi, lo)
			continue
		}
		fmt.Fprintf(out, `\u%04x`, r)
	}
	return out.Bytes()
}
