// Package query implements the operations applied to a stream of records:
// sorting, filtering, counting, projection and summaries.
package query

import (
	"slices"

	"github.com/soralog/soralog/pkg/field"
	"github.com/soralog/soralog/pkg/record"
)

// DefaultSortKeys is used when Sort is given no keys.
var DefaultSortKeys = []field.Name{field.NameTimestamp}

// Sort orders records in place by each key in turn. Records missing a key
// sort before those that have it. The sort is stable, so sorting an already
// sorted slice leaves it unchanged.
func Sort(records []record.Record, keys []field.Name) {
	if len(keys) == 0 {
		keys = DefaultSortKeys
	}
	slices.SortStableFunc(records, func(a, b record.Record) int {
		return CompareBy(a, b, keys)
	})
}

// CompareBy compares two records key by key. The first key that differs
// decides.
func CompareBy(a, b record.Record, keys []field.Name) int {
	for _, key := range keys {
		av, aok := a.Field(key)
		bv, bok := b.Field(key)
		if c := field.CompareOptional(av, aok, bv, bok); c != 0 {
			return c
		}
	}
	return 0
}
