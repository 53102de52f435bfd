package query

import (
	"github.com/soralog/soralog/pkg/field"
	"github.com/soralog/soralog/pkg/record"
)

// Project builds an object holding just the named fields of r. Absent fields
// map to null.
func Project(r record.Record, names []field.Name) map[string]any {
	out := make(map[string]any, len(names))
	for _, name := range names {
		if v, ok := r.Field(name); ok {
			out[name.String()] = v.JSON()
		} else {
			out[name.String()] = nil
		}
	}
	return out
}
