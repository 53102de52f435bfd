package query

import (
	"github.com/soralog/soralog/pkg/field"
	"github.com/soralog/soralog/pkg/record"
	"github.com/soralog/soralog/pkg/source"
)

// Filter selects records. All configured conditions must hold; a Filter with
// no conditions accepts everything.
type Filter struct {
	minLevel *field.Level
	kinds    map[source.Kind]bool // nil means all kinds
	equals   []fieldEquals
}

type fieldEquals struct {
	name  field.Name
	value string
}

// FilterOption configures a Filter.
type FilterOption func(*Filter)

// WithMinLevel accepts records whose level is at least level.
func WithMinLevel(level field.Level) FilterOption {
	return func(f *Filter) {
		f.minLevel = &level
	}
}

// WithKinds accepts records from the given kinds only.
func WithKinds(kinds ...source.Kind) FilterOption {
	return func(f *Filter) {
		if len(kinds) == 0 {
			return
		}
		if f.kinds == nil {
			f.kinds = make(map[source.Kind]bool, len(kinds))
		}
		for _, k := range kinds {
			f.kinds[k] = true
		}
	}
}

// WithFieldEquals accepts records whose name field renders exactly as value.
// Records without the field are rejected.
func WithFieldEquals(name field.Name, value string) FilterOption {
	return func(f *Filter) {
		f.equals = append(f.equals, fieldEquals{name: name, value: value})
	}
}

// NewFilter creates a filter from options.
func NewFilter(opts ...FilterOption) *Filter {
	f := &Filter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Match reports whether r passes every condition.
func (f *Filter) Match(r record.Record) bool {
	if f.minLevel != nil && r.Level() < *f.minLevel {
		return false
	}
	if f.kinds != nil && !f.kinds[r.Kind()] {
		return false
	}
	for _, eq := range f.equals {
		v, ok := r.Field(eq.name)
		if !ok || v.String() != eq.value {
			return false
		}
	}
	return true
}

// Apply returns the records that match, preserving order.
func (f *Filter) Apply(records []record.Record) []record.Record {
	var out []record.Record
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
