package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Marshal returns the canonical text of v: compact JSON, object keys in
// insertion order, no HTML escaping. Object keys that are not valid UTF-8
// are written with U+FFFD in place of the bad bytes.
func Marshal(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindNumber:
		sb.WriteString(formatNumber(v.n))
	case KindString:
		writeString(sb, v.s)
	case KindList:
		sb.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeValue(sb, item)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, k := range v.obj.keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeString(sb, k)
			sb.WriteByte(':')
			writeValue(sb, v.obj.fields[k])
		}
		sb.WriteByte('}')
	}
}

// formatNumber prints integral values without exponent or fraction so that
// page counters and ids stay short.
func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

const hexDigits = "0123456789abcdef"

func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				sb.WriteString(`\"`)
			case '\\':
				sb.WriteString(`\\`)
			case '\n':
				sb.WriteString(`\n`)
			case '\r':
				sb.WriteString(`\r`)
			case '\t':
				sb.WriteString(`\t`)
			case '\b':
				sb.WriteString(`\b`)
			case '\f':
				sb.WriteString(`\f`)
			default:
				if c < 0x20 {
					sb.WriteString(`\u00`)
					sb.WriteByte(hexDigits[c>>4])
					sb.WriteByte(hexDigits[c&0xf])
				} else {
					sb.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteString("\ufffd")
		} else {
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	sb.WriteByte('"')
}

// SyntaxError reports malformed canonical text.
type SyntaxError struct {
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("value: invalid state text %q: %v", e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

var errTrailingData = errors.New("trailing data after value")

// Parse reads a single JSON value. Object key order is preserved.
func Parse(text string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Null(), &SyntaxError{Text: text, Err: err}
	}
	v, err := readValue(dec, tok)
	if err != nil {
		return Null(), &SyntaxError{Text: text, Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errTrailingData
		}
		return Null(), &SyntaxError{Text: text, Err: err}
	}
	return v, nil
}

// ParseObject parses text that must hold an object. Empty text is an empty object.
func ParseObject(text string) (*Object, error) {
	if strings.TrimSpace(text) == "" {
		return NewObject(), nil
	}
	v, err := Parse(text)
	if err != nil {
		return nil, err
	}
	obj, ok := v.AsObject()
	if !ok {
		return nil, &SyntaxError{Text: text, Err: fmt.Errorf("expected object, got %s", v.Kind())}
	}
	return obj, nil
}

func readValue(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return Null(), err
		}
		return Number(f), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				next, err := dec.Token()
				if err != nil {
					return Null(), err
				}
				item, err := readValue(dec, next)
				if err != nil {
					return Null(), err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Null(), err
			}
			return Value{kind: KindList, list: items}, nil
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Null(), err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Null(), fmt.Errorf("object key must be a string, got %v", keyTok)
				}
				next, err := dec.Token()
				if err != nil {
					return Null(), err
				}
				item, err := readValue(dec, next)
				if err != nil {
					return Null(), err
				}
				obj.Set(key, item)
			}
			if _, err := dec.Token(); err != nil {
				return Null(), err
			}
			return FromObject(obj), nil
		}
	}
	return Null(), fmt.Errorf("unexpected token %v", tok)
}
