package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf16"
)

// encoder writes the canonical database encoding: object keys sorted at every
// level, ", " and ": " separators, no indentation, and every character outside
// printable ASCII escaped as \uXXXX. Existing databases were written this way,
// so keeping it byte for byte leaves diffs of the file readable.
type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) store(names []string, records map[string]Record) error {
	e.buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			e.buf.WriteString(", ")
		}
		e.string(name)
		e.buf.WriteString(": ")
		if err := e.record(records[name]); err != nil {
			return fmt.Errorf("entry %q: %w", name, err)
		}
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) record(r Record) error {
	values := make(map[string]any, len(fieldKeys)+len(r.extra))
	for k, v := range r.extra {
		values[k] = v
	}
	for _, f := range Fields() {
		if f.IsSequence() {
			values[f.Key()] = r.Sequence(f)
		} else {
			values[f.Key()] = r.Scalar(f)
		}
	}
	return e.object(values)
}

func (e *encoder) object(m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	e.buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			e.buf.WriteString(", ")
		}
		e.string(k)
		e.buf.WriteString(": ")
		if err := e.value(m[k]); err != nil {
			return err
		}
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) value(v any) error {
	switch v := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		if v {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case string:
		e.string(v)
	case json.Number:
		e.buf.WriteString(v.String())
	case float64:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		e.buf.Write(b)
	case []string:
		e.buf.WriteByte('[')
		for i, s := range v {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			e.string(s)
		}
		e.buf.WriteByte(']')
	case []any:
		e.buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			if err := e.value(item); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
	case map[string]any:
		return e.object(v)
	default:
		return fmt.Errorf("cannot encode value of type %T", v)
	}
	return nil
}

const hexDigits = "0123456789abcdef"

func (e *encoder) string(s string) {
	e.buf.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			e.buf.WriteString(`\"`)
		case r == '\\':
			e.buf.WriteString(`\\`)
		case r == '\n':
			e.buf.WriteString(`\n`)
		case r == '\r':
			e.buf.WriteString(`\r`)
		case r == '\t':
			e.buf.WriteString(`\t`)
		case r == '\b':
			e.buf.WriteString(`\b`)
		case r == '\f':
			e.buf.WriteString(`\f`)
		case r >= 0x20 && r <= 0x7e:
			e.buf.WriteRune(r)
		case r > 0xffff:
			hi, lo := utf16.EncodeRune(r)
			e.unicodeEscape(hi)
			e.unicodeEscape(lo)
		default:
			e.unicodeEscape(r)
		}
	}
	e.buf.WriteByte('"')
}

func (e *encoder) unicodeEscape(r rune) {
	e.buf.WriteString(`\u`)
	for shift := 12; shift >= 0; shift -= 4 {
		e.buf.WriteByte(hexDigits[(r>>uint(shift))&0xf])
	}
}
