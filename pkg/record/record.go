// Package record turns raw log text into Records: one variant per schema,
// all answering the same field queries.
package record

import (
	"encoding/json"

	"github.com/soralog/soralog/pkg/field"
	"github.com/soralog/soralog/pkg/source"
)

// Record is one decoded log entry. The set of implementations is closed:
// *Generic, *Cluster and *Crash.
type Record interface {
	// Kind is the log kind of the file the record came from.
	Kind() source.Kind

	// Path is the file the record came from.
	Path() string

	// Field returns the value of name, or false when the record has no such
	// field or the variant does not model it.
	Field(name field.Name) (field.Value, bool)

	// Level is the record's severity, LevelInfo when it has none.
	Level() field.Level

	json.Marshaler

	// object returns the JSON object form. Being unexported, it also keeps
	// the set of variants closed to this package.
	object() map[string]any
}

var (
	_ Record = (*Generic)(nil)
	_ Record = (*Cluster)(nil)
	_ Record = (*Crash)(nil)
)

// Synthetic keys added to every record's JSON form.
const (
	KeyDomain    = "@domain"
	KeyType      = "@type"
	KeyPath      = "@path"
	KeyRawReport = "@raw_report"
)

// levelOf applies the default level policy shared by all variants.
func levelOf(r Record) field.Level {
	v, ok := r.Field(field.NameLevel)
	if !ok {
		return field.LevelInfo
	}
	if l, ok := v.Level(); ok {
		return l
	}
	return field.LevelInfo
}

// Values looks up each name on r. Absent fields are reported with ok=false in
// the matching position of present.
func Values(r Record, names []field.Name) (values []field.Value, present []bool) {
	values = make([]field.Value, len(names))
	present = make([]bool, len(names))
	for i, name := range names {
		values[i], present[i] = r.Field(name)
	}
	return values, present
}

// Map returns the record's JSON object form.
func Map(r Record) map[string]any {
	return r.object()
}
