// Package jsonl reads and writes the JSON Lines record stream that commands
// pipe between each other.
package jsonl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/soralog/soralog/pkg/record"
)

// Reader decodes a stream of JSON values. Values may be separated by any
// whitespace, so both compact and pretty-printed streams are accepted.
type Reader struct {
	dec   *json.Decoder
	index int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Reader{dec: dec}
}

// Next decodes the next record. It returns io.EOF when the stream is
// exhausted. Other errors name the 1-based position of the bad value.
func (r *Reader) Next() (record.Record, error) {
	raw, err := r.nextRaw()
	if err != nil {
		return nil, err
	}
	rec, err := record.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("record %d: %w", r.index, err)
	}
	return rec, nil
}

// NextValue decodes the next value as plain JSON, keeping numbers as
// json.Number.
func (r *Reader) NextValue() (any, error) {
	var v any
	if err := r.decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Reader) nextRaw() (json.RawMessage, error) {
	var raw json.RawMessage
	if err := r.decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (r *Reader) decode(v any) error {
	if err := r.dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("value %d: %w", r.index+1, err)
	}
	r.index++
	return nil
}

// ReadAll decodes every record remaining in the stream.
func (r *Reader) ReadAll() ([]record.Record, error) {
	var records []record.Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

// ReadAllValues decodes every plain JSON value remaining in the stream.
func (r *Reader) ReadAllValues() ([]any, error) {
	var values []any
	for {
		v, err := r.NextValue()
		if errors.Is(err, io.EOF) {
			return values, nil
		}
		if err != nil {
			return values, err
		}
		values = append(values, v)
	}
}
