package record

import (
	"strings"

	"github.com/soralog/soralog/pkg/source"
)

// Synthesize adds the @domain, @path and (when one can be found) @type keys to
// fields. Keys present in the original record are left untouched.
//
// The type is taken from the first of "type", "operation" or "req.type" that
// is present. If that value is not a string, or none is present, a tag at the
// start of "msg" is used instead.
func Synthesize(kind source.Kind, path string, fields map[string]any) {
	fields[KeyDomain] = domainOf(kind, fields["domain"])
	fields[KeyPath] = path

	if ty, ok := typeOf(fields); ok {
		fields[KeyType] = ty
	}
}

// domainOf appends the string elements of a "domain" array to the kind name,
// separated by dots.
func domainOf(kind source.Kind, domain any) string {
	var b strings.Builder
	b.WriteString(kind.String())
	if parts, ok := domain.([]any); ok {
		for _, part := range parts {
			if s, ok := part.(string); ok {
				b.WriteByte('.')
				b.WriteString(s)
			}
		}
	}
	return b.String()
}

func typeOf(fields map[string]any) (string, bool) {
	candidate, found := fields["type"]
	if !found {
		candidate, found = fields["operation"]
	}
	if !found {
		if req, ok := fields["req"].(map[string]any); ok {
			candidate, found = req["type"]
		}
	}
	if found {
		if s, ok := candidate.(string); ok {
			return s, true
		}
	}

	if msg, ok := fields["msg"].(string); ok {
		return MessageTag(msg)
	}
	return "", false
}

// MessageTag extracts the tag from messages of the form "TAG|text". The tag is
// the trimmed text before the first '|' and may only contain upper-case ASCII
// letters, digits and hyphens. A message starting with '|' has an empty tag.
func MessageTag(msg string) (string, bool) {
	head, _, found := strings.Cut(msg, "|")
	if !found {
		return "", false
	}
	tag := strings.TrimSpace(head)
	for _, c := range tag {
		if !(c == '-' || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')) {
			return "", false
		}
	}
	return tag, true
}
