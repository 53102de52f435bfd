package record

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/soralog/soralog/pkg/source"
)

// maxLineSize bounds a single JSON Lines record.
const maxLineSize = 1024 * 1024

// Parse decodes one line of a JSON Lines log of the given kind. Cluster lines
// decode strictly into *Cluster; other kinds become *Generic. Crash logs are
// not line-oriented and must go through Segment.
func Parse(kind source.Kind, path string, line []byte) (Record, error) {
	return parseLine(kind, path, 0, line)
}

func parseLine(kind source.Kind, path string, lineNum int, line []byte) (Record, error) {
	var (
		r   Record
		err error
	)
	switch kind {
	case source.KindNone:
		err = errors.New("unknown log kind")
	case source.KindCrash:
		err = errors.New("crash logs are segmented, not parsed line by line")
	case source.KindCluster:
		r, err = parseCluster(path, line)
	default:
		r, err = parseGeneric(kind, path, line)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Line: lineNum, Err: err}
	}
	return r, nil
}

// LoadFile reads every record in f and passes each to fn in file order. The
// first parse failure or error from fn stops the load and is returned as-is.
func LoadFile(ctx context.Context, f source.File, fn func(Record) error) error {
	if f.Kind == source.KindCrash {
		return loadCrash(f.Path, fn)
	}

	file, err := os.Open(f.Path) // #nosec G304 -- paths come from discovery or the user
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", f.Path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		r, err := parseLine(f.Kind, f.Path, lineNum, line)
		if err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return nil
}

func loadCrash(path string, fn func(Record) error) error {
	data, err := os.ReadFile(path) // #nosec G304 -- paths come from discovery or the user
	if err != nil {
		return fmt.Errorf("reading crash log %s: %w", path, err)
	}

	reports, err := Segment(path, string(data))
	if err != nil {
		return err
	}
	for _, r := range reports {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}
