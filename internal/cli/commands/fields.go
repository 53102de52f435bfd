package commands

import (
	"strings"

	"github.com/soralog/soralog/pkg/field"
)

// fieldList renders the accepted field names for help text.
func fieldList() string {
	names := field.Names()
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}
