package field

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/soralog/soralog/pkg/source"
)

// Tag identifies the shape held by a Value.
type Tag int

const (
	TagString Tag = iota
	TagKind
	TagLevel
	TagJSON
	TagPath
)

func (t Tag) String() string {
	switch t {
	case TagString:
		return "string"
	case TagKind:
		return "kind"
	case TagLevel:
		return "level"
	case TagJSON:
		return "json"
	case TagPath:
		return "path"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// Value is the result of a field lookup. The zero Value is an empty string.
type Value struct {
	tag   Tag
	str   string
	kind  source.Kind
	level Level
	raw   any
}

// StringValue wraps a plain string.
func StringValue(s string) Value {
	return Value{tag: TagString, str: s}
}

// KindValue wraps a log kind.
func KindValue(k source.Kind) Value {
	return Value{tag: TagKind, kind: k}
}

// LevelValue wraps a log level.
func LevelValue(l Level) Value {
	return Value{tag: TagLevel, level: l}
}

// JSONValue wraps a decoded JSON value (map[string]any, []any, string,
// json.Number, float64, bool or nil).
func JSONValue(v any) Value {
	return Value{tag: TagJSON, raw: v}
}

// PathValue wraps a file path.
func PathValue(p string) Value {
	return Value{tag: TagPath, str: p}
}

// Tag reports which shape v holds.
func (v Value) Tag() Tag {
	return v.tag
}

// Kind returns the wrapped kind and whether v holds one.
func (v Value) Kind() (source.Kind, bool) {
	return v.kind, v.tag == TagKind
}

// Level returns the wrapped level and whether v holds one.
func (v Value) Level() (Level, bool) {
	return v.level, v.tag == TagLevel
}

// Raw returns the wrapped JSON value and whether v holds one.
func (v Value) Raw() (any, bool) {
	return v.raw, v.tag == TagJSON
}

// String renders the value as text. JSON values render compactly.
func (v Value) String() string {
	switch v.tag {
	case TagKind:
		return v.kind.String()
	case TagLevel:
		return v.level.String()
	case TagJSON:
		return RenderJSON(v.raw)
	default:
		return v.str
	}
}

// JSON converts the value back into a JSON-encodable form.
func (v Value) JSON() any {
	if v.tag == TagJSON {
		return v.raw
	}
	return v.String()
}

// MarshalJSON encodes the value's JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	return EncodeJSON(v.JSON())
}

// Compare orders two values. Values with the same tag use their natural order
// (lexicographic for strings, paths and rendered JSON; declaration order for
// kinds and levels). Values with different tags compare by their rendering.
func Compare(a, b Value) int {
	if a.tag == b.tag {
		switch a.tag {
		case TagKind:
			return cmp.Compare(a.kind, b.kind)
		case TagLevel:
			return cmp.Compare(a.level, b.level)
		}
	}
	return strings.Compare(a.String(), b.String())
}

// CompareOptional orders possibly absent values; absent sorts first.
func CompareOptional(a Value, aok bool, b Value, bok bool) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	default:
		return Compare(a, b)
	}
}

// RenderJSON encodes v compactly without HTML escaping. Values that cannot be
// encoded render as an empty string.
func RenderJSON(v any) string {
	data, err := EncodeJSON(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// EncodeJSON encodes v as compact JSON without escaping HTML characters and
// without a trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
