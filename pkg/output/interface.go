// Package output renders reports and record projections for people to read.
package output

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Formatter renders a report value in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report any, w io.Writer) error

	// Name returns the format name (json, yaml).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Compact writes JSON on a single line.
	Compact bool
}

// Formats lists the names accepted by NewFormatter.
func Formats() []string {
	return []string{"json", "yaml"}
}

// NewFormatter returns the formatter called name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "json":
		return NewJSONFormatter(opts), nil
	case "yaml":
		return NewYAMLFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (valid: %s)", name, strings.Join(Formats(), ", "))
	}
}
