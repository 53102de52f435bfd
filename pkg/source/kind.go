// Package source classifies log files by name and discovers them on disk.
package source

import (
	"fmt"
	"path/filepath"
)

// Kind identifies which log schema a file (and every record in it) belongs to.
// The declaration order is the ordering used when kinds are compared.
type Kind int

const (
	// KindNone is the zero value and means "not a known log file".
	KindNone Kind = iota
	KindAPI
	KindAuthWebhook
	KindAuthWebhookError
	KindCluster
	KindConnection
	KindCrash
	KindDebug
	KindEventWebhook
	KindEventWebhookError
	KindInternal
	KindSessionWebhook
	KindSessionWebhookError
	KindSignaling
	// KindSora is the core server log.
	KindSora
	KindStatsWebhook
	KindStatsWebhookError
)

var kindNames = [...]string{
	KindNone:                "",
	KindAPI:                 "api",
	KindAuthWebhook:         "auth_webhook",
	KindAuthWebhookError:    "auth_webhook_error",
	KindCluster:             "cluster",
	KindConnection:          "connection",
	KindCrash:               "crash",
	KindDebug:               "debug",
	KindEventWebhook:        "event_webhook",
	KindEventWebhookError:   "event_webhook_error",
	KindInternal:            "internal",
	KindSessionWebhook:      "session_webhook",
	KindSessionWebhookError: "session_webhook_error",
	KindSignaling:           "signaling",
	KindSora:                "sora",
	KindStatsWebhook:        "stats_webhook",
	KindStatsWebhookError:   "stats_webhook_error",
}

// fileNames maps the exact base name of each known log file to its kind.
var fileNames = map[string]Kind{
	"api.jsonl":                   KindAPI,
	"auth_webhook.jsonl":          KindAuthWebhook,
	"auth_webhook_error.jsonl":    KindAuthWebhookError,
	"cluster.jsonl":               KindCluster,
	"connection.jsonl":            KindConnection,
	"crash.log":                   KindCrash,
	"debug.jsonl":                 KindDebug,
	"event_webhook.jsonl":         KindEventWebhook,
	"event_webhook_error.jsonl":   KindEventWebhookError,
	"internal.jsonl":              KindInternal,
	"session_webhook.jsonl":       KindSessionWebhook,
	"session_webhook_error.jsonl": KindSessionWebhookError,
	"signaling.jsonl":             KindSignaling,
	"sora.jsonl":                  KindSora,
	"stats_webhook.jsonl":         KindStatsWebhook,
	"stats_webhook_error.jsonl":   KindStatsWebhookError,
}

// Kinds returns every known kind in declaration order, excluding KindNone.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames)-1)
	for k := KindAPI; int(k) < len(kindNames); k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Classify maps a file name to its kind. The match is exact and case-sensitive.
// Unknown names return KindNone and false; that is not an error.
func Classify(name string) (Kind, bool) {
	k, ok := fileNames[name]
	return k, ok
}

// FromPath classifies the final component of path.
func FromPath(path string) (Kind, bool) {
	return Classify(filepath.Base(path))
}

// FileName returns the log file name for k, or "" for KindNone.
func (k Kind) FileName() string {
	for name, kind := range fileNames {
		if kind == k {
			return name
		}
	}
	return ""
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if i != int(KindNone) && name == s {
			return Kind(i), nil
		}
	}
	return KindNone, fmt.Errorf("unknown log kind %q", s)
}

// MarshalText encodes the kind as its name, so kinds work as JSON and YAML
// values and map keys.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
