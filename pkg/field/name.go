// Package field defines the closed set of queryable field names and the
// ordered, polymorphic value a record returns for each of them.
package field

import (
	"fmt"
	"strings"
)

// Name identifies a queryable field. Adding a Name requires adding its
// extraction rule to every record variant.
type Name int

const (
	NameKind Name = iota
	NameLevel
	NameTimestamp
	NameOperation
	NameType
	NameDomain
	NameJSON
	NamePath
	NameMsg
	NameMsgTag
	NameURL
	NameReq
	NameRes
	NameID
	NameNode
)

var names = [...]string{
	NameKind:      "kind",
	NameLevel:     "level",
	NameTimestamp: "timestamp",
	NameOperation: "operation",
	NameType:      "type",
	NameDomain:    "domain",
	NameJSON:      "json",
	NamePath:      "path",
	NameMsg:       "msg",
	NameMsgTag:    "msg.tag",
	NameURL:       "url",
	NameReq:       "req",
	NameRes:       "res",
	NameID:        "id",
	NameNode:      "node",
}

// Names returns every field name in declaration order.
func Names() []Name {
	all := make([]Name, len(names))
	for i := range names {
		all[i] = Name(i)
	}
	return all
}

func (n Name) String() string {
	if n < 0 || int(n) >= len(names) {
		return fmt.Sprintf("Name(%d)", int(n))
	}
	return names[n]
}

// ParseName maps a canonical field name back to its Name.
func ParseName(s string) (Name, error) {
	for i, name := range names {
		if name == s {
			return Name(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field %q (must be one of %s)", s, strings.Join(names[:], ", "))
}

// ParseNames parses each element of ss.
func ParseNames(ss []string) ([]Name, error) {
	out := make([]Name, 0, len(ss))
	for _, s := range ss {
		n, err := ParseName(s)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// JSONShaped reports whether the field is returned in its raw JSON form
// rather than collapsed to a scalar string.
func (n Name) JSONShaped() bool {
	switch n {
	case NameJSON, NameReq, NameRes:
		return true
	default:
		return false
	}
}

// MarshalText encodes the name in its canonical form.
func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText decodes a canonical field name.
func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := ParseName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
