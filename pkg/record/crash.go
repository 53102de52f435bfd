package record

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/soralog/soralog/pkg/field"
	"github.com/soralog/soralog/pkg/source"
)

// CrashMarker starts every report in crash.log.
const CrashMarker = "=CRASH REPORT "

// Crash is one report from crash.log. It has no JSON structure.
type Crash struct {
	RawReport  string
	SourcePath string
}

// NewCrash trims the report text and wraps it.
func NewCrash(path, report string) *Crash {
	return &Crash{RawReport: strings.TrimSpace(report), SourcePath: path}
}

// Segment splits the full text of a crash log into one record per report, in
// file order. Empty text yields no records. Non-empty text must start with
// CrashMarker.
func Segment(path, text string) ([]*Crash, error) {
	if text == "" {
		return nil, nil
	}
	if !strings.HasPrefix(text, CrashMarker) {
		return nil, &ParseError{
			Path: path,
			Err:  errors.Errorf("crash log does not start with %q", CrashMarker),
		}
	}

	var reports []*Crash
	for {
		// Skip the marker that opens the current report.
		i := strings.Index(text[len(CrashMarker):], CrashMarker)
		if i < 0 {
			break
		}
		end := i + len(CrashMarker)
		reports = append(reports, NewCrash(path, text[:end]))
		text = text[end:]
	}
	return append(reports, NewCrash(path, text)), nil
}

func (c *Crash) Kind() source.Kind { return source.KindCrash }

func (c *Crash) Path() string { return c.SourcePath }

func (c *Crash) Level() field.Level { return levelOf(c) }

// Field answers only kind and path.
func (c *Crash) Field(name field.Name) (field.Value, bool) {
	switch name {
	case field.NameKind:
		return field.KindValue(source.KindCrash), true
	case field.NamePath:
		return field.PathValue(c.SourcePath), true
	default:
		return field.Value{}, false
	}
}

func (c *Crash) object() map[string]any {
	return map[string]any{
		KeyDomain:    source.KindCrash.String(),
		KeyPath:      c.SourcePath,
		KeyRawReport: c.RawReport,
	}
}

func (c *Crash) MarshalJSON() ([]byte, error) {
	return field.EncodeJSON(c.object())
}
