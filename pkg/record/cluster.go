package record

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/soralog/soralog/pkg/field"
	"github.com/soralog/soralog/pkg/source"
)

// Cluster is a record from cluster.jsonl.
type Cluster struct {
	ID          string
	LogLevel    field.Level
	Msg         string
	Domain      []string
	SoraVersion string
	Node        string
	Timestamp   string
	// Testcase is only present in logs produced by test runs.
	Testcase *string

	SourcePath string
}

// clusterWire uses pointers so that absent and null keys can be told apart
// from zero values.
type clusterWire struct {
	ID          *string      `json:"id"`
	Level       *field.Level `json:"level"`
	Msg         *string      `json:"msg"`
	Domain      *[]*string   `json:"domain"`
	SoraVersion *string      `json:"sora_version"`
	Node        *string      `json:"node"`
	Timestamp   *string      `json:"timestamp"`
	Testcase    *string      `json:"testcase"`
}

func parseCluster(path string, line []byte) (*Cluster, error) {
	var w clusterWire
	if err := json.Unmarshal(line, &w); err != nil {
		return nil, errors.Wrap(err, "decoding cluster record")
	}

	required := []struct {
		key     string
		missing bool
	}{
		{"id", w.ID == nil},
		{"level", w.Level == nil},
		{"msg", w.Msg == nil},
		{"domain", w.Domain == nil},
		{"sora_version", w.SoraVersion == nil},
		{"node", w.Node == nil},
		{"timestamp", w.Timestamp == nil},
	}
	for _, r := range required {
		if r.missing {
			return nil, errors.Errorf("decoding cluster record: missing field %q", r.key)
		}
	}

	domain := make([]string, len(*w.Domain))
	for i, part := range *w.Domain {
		if part == nil {
			return nil, errors.Errorf("decoding cluster record: domain[%d] is null", i)
		}
		domain[i] = *part
	}

	return &Cluster{
		ID:          *w.ID,
		LogLevel:    *w.Level,
		Msg:         *w.Msg,
		Domain:      domain,
		SoraVersion: *w.SoraVersion,
		Node:        *w.Node,
		Timestamp:   *w.Timestamp,
		Testcase:    w.Testcase,
		SourcePath:  path,
	}, nil
}

func (c *Cluster) Kind() source.Kind { return source.KindCluster }

func (c *Cluster) Path() string { return c.SourcePath }

func (c *Cluster) Level() field.Level { return levelOf(c) }

// DomainName is the kind followed by the domain parts, joined by dots.
func (c *Cluster) DomainName() string {
	return strings.Join(append([]string{source.KindCluster.String()}, c.Domain...), ".")
}

// Field answers the fields the cluster schema models. Operation, url, req and
// res are not part of it.
func (c *Cluster) Field(name field.Name) (field.Value, bool) {
	switch name {
	case field.NameKind:
		return field.KindValue(source.KindCluster), true
	case field.NamePath:
		return field.PathValue(c.SourcePath), true
	case field.NameLevel:
		return field.LevelValue(c.LogLevel), true
	case field.NameTimestamp:
		return field.StringValue(c.Timestamp), true
	case field.NameMsg:
		return field.StringValue(c.Msg), true
	case field.NameMsgTag, field.NameType:
		tag, ok := MessageTag(c.Msg)
		if !ok {
			return field.Value{}, false
		}
		return field.StringValue(tag), true
	case field.NameDomain:
		return field.StringValue(c.DomainName()), true
	case field.NameJSON:
		return field.JSONValue(c.object()), true
	case field.NameID:
		return field.StringValue(c.ID), true
	case field.NameNode:
		return field.StringValue(c.Node), true
	case field.NameOperation, field.NameURL, field.NameReq, field.NameRes:
		// Not modeled for cluster records yet.
		return field.Value{}, false
	default:
		return field.Value{}, false
	}
}

func (c *Cluster) object() map[string]any {
	domain := make([]any, len(c.Domain))
	for i, d := range c.Domain {
		domain[i] = d
	}
	obj := map[string]any{
		"id":           c.ID,
		"level":        c.LogLevel.String(),
		"msg":          c.Msg,
		"domain":       domain,
		"sora_version": c.SoraVersion,
		"node":         c.Node,
		"timestamp":    c.Timestamp,
		KeyDomain:      c.DomainName(),
		KeyPath:        c.SourcePath,
	}
	if c.Testcase != nil {
		obj["testcase"] = *c.Testcase
	}
	if tag, ok := MessageTag(c.Msg); ok {
		obj[KeyType] = tag
	}
	return obj
}

// MarshalJSON encodes the schema fields together with the synthetic keys.
func (c *Cluster) MarshalJSON() ([]byte, error) {
	return field.EncodeJSON(c.object())
}
