package record

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/soralog/soralog/pkg/field"
	"github.com/soralog/soralog/pkg/source"
)

// Generic is a record whose schema is not modeled: an open JSON object plus the
// synthetic @domain, @type and @path keys.
type Generic struct {
	kind   source.Kind
	path   string
	fields map[string]any
}

// NewGeneric synthesizes the metadata keys into fields and wraps them. The
// record takes ownership of fields.
func NewGeneric(kind source.Kind, path string, fields map[string]any) *Generic {
	Synthesize(kind, path, fields)
	return &Generic{kind: kind, path: path, fields: fields}
}

func parseGeneric(kind source.Kind, path string, line []byte) (*Generic, error) {
	fields, err := decodeObject(line)
	if err != nil {
		return nil, err
	}
	return NewGeneric(kind, path, fields), nil
}

// decodeObject strictly decodes a single JSON object, keeping numbers as
// json.Number so they re-encode unchanged.
func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, errors.Wrap(err, "decoding JSON object")
	}
	if fields == nil {
		return nil, errors.New("expected a JSON object, got null")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}
	return fields, nil
}

func (g *Generic) Kind() source.Kind { return g.kind }

func (g *Generic) Path() string { return g.path }

func (g *Generic) Level() field.Level { return levelOf(g) }

// Fields returns the underlying object, synthetic keys included. Callers must
// not modify it.
func (g *Generic) Fields() map[string]any { return g.fields }

func (g *Generic) object() map[string]any { return g.fields }

// MarshalJSON encodes the object with its keys sorted.
func (g *Generic) MarshalJSON() ([]byte, error) {
	return field.EncodeJSON(g.fields)
}

// Field looks name up by its key in the object.
func (g *Generic) Field(name field.Name) (field.Value, bool) {
	switch name {
	case field.NameKind:
		return field.KindValue(g.kind), true
	case field.NamePath:
		return field.PathValue(g.path), true
	case field.NameJSON:
		return field.JSONValue(g.fields), true
	case field.NameLevel:
		v, ok := g.fields["level"]
		if !ok {
			return field.Value{}, false
		}
		if s, ok := v.(string); ok {
			if l, err := field.ParseLevel(s); err == nil {
				return field.LevelValue(l), true
			}
		}
		return scalar(v), true
	case field.NameMsgTag:
		msg, ok := g.fields["msg"].(string)
		if !ok {
			return field.Value{}, false
		}
		tag, ok := MessageTag(msg)
		if !ok {
			return field.Value{}, false
		}
		return field.StringValue(tag), true
	case field.NameType:
		return g.lookup(KeyType, false)
	case field.NameDomain:
		return g.lookup(KeyDomain, false)
	case field.NameReq, field.NameRes:
		return g.lookup(name.String(), true)
	case field.NameTimestamp, field.NameOperation, field.NameMsg, field.NameURL,
		field.NameID, field.NameNode:
		return g.lookup(name.String(), false)
	default:
		return field.Value{}, false
	}
}

func (g *Generic) lookup(key string, raw bool) (field.Value, bool) {
	v, ok := g.fields[key]
	if !ok {
		return field.Value{}, false
	}
	if raw {
		return field.JSONValue(v), true
	}
	return scalar(v), true
}

// scalar collapses a JSON value to a string. Arrays and objects become the
// __ARRAY__ and __OBJECT__ sentinels.
func scalar(v any) field.Value {
	switch v := v.(type) {
	case nil:
		return field.StringValue("null")
	case bool:
		return field.StringValue(strconv.FormatBool(v))
	case json.Number:
		return field.StringValue(v.String())
	case float64:
		return field.StringValue(strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		return field.StringValue(v)
	case []any:
		return field.StringValue("__ARRAY__")
	case map[string]any:
		return field.StringValue("__OBJECT__")
	default:
		return field.StringValue(field.RenderJSON(v))
	}
}
