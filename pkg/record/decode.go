package record

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"

	"github.com/soralog/soralog/pkg/source"
)

var probePool fastjson.ParserPool

// Decode rebuilds a record from its MarshalJSON form, as read back from a
// JSON Lines stream. The variant is chosen from the kind at the head of
// @domain. Generic records are restored as-is, without re-synthesis.
func Decode(data []byte) (Record, error) {
	kind, path, err := probe(data)
	if err != nil {
		return nil, err
	}

	switch kind {
	case source.KindCrash:
		return decodeCrash(data, path)
	case source.KindCluster:
		return parseCluster(path, data)
	default:
		fields, err := decodeObject(data)
		if err != nil {
			return nil, err
		}
		return &Generic{kind: kind, path: path, fields: fields}, nil
	}
}

// probe reads just the synthetic keys without decoding the whole record.
func probe(data []byte) (source.Kind, string, error) {
	p := probePool.Get()
	defer probePool.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return source.KindNone, "", errors.Wrap(err, "parsing record")
	}
	if v.Type() != fastjson.TypeObject {
		return source.KindNone, "", errors.Errorf("record must be a JSON object, got %s", v.Type())
	}

	domain := v.Get(KeyDomain)
	if domain == nil {
		return source.KindNone, "", errors.Errorf("record has no %s key", KeyDomain)
	}
	domainBytes, err := domain.StringBytes()
	if err != nil {
		return source.KindNone, "", errors.Wrapf(err, "reading %s", KeyDomain)
	}
	head, _, _ := strings.Cut(string(domainBytes), ".")
	kind, err := source.ParseKind(head)
	if err != nil {
		return source.KindNone, "", errors.Wrapf(err, "reading %s", KeyDomain)
	}

	path := v.Get(KeyPath)
	if path == nil {
		return source.KindNone, "", errors.Errorf("record has no %s key", KeyPath)
	}
	pathBytes, err := path.StringBytes()
	if err != nil {
		return source.KindNone, "", errors.Wrapf(err, "reading %s", KeyPath)
	}
	return kind, string(pathBytes), nil
}

func decodeCrash(data []byte, path string) (*Crash, error) {
	p := probePool.Get()
	defer probePool.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing crash record")
	}
	raw := v.Get(KeyRawReport)
	if raw == nil {
		return nil, errors.Errorf("crash record has no %s key", KeyRawReport)
	}
	report, err := raw.StringBytes()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", KeyRawReport)
	}
	return &Crash{RawReport: string(report), SourcePath: path}, nil
}
