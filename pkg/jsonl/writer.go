package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"syscall"
)

// ErrClosed is returned once the consumer of the stream has gone away, for
// example when stdout is piped into head. Callers treat it as a normal end of
// output.
var ErrClosed = errors.New("output closed")

// Writer encodes one JSON value per line.
type Writer struct {
	out    io.Writer
	buf    *bufio.Writer
	pretty bool
	closed bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithPretty indents each value over several lines.
func WithPretty(pretty bool) Option {
	return func(w *Writer) {
		w.pretty = pretty
	}
}

// NewWriter creates a Writer over out. Output is buffered until Flush.
func NewWriter(out io.Writer, opts ...Option) *Writer {
	w := &Writer{out: out, buf: bufio.NewWriter(out)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write encodes v followed by a newline.
func (w *Writer) Write(v any) error {
	if w.closed {
		return ErrClosed
	}

	var line bytes.Buffer
	enc := json.NewEncoder(&line)
	enc.SetEscapeHTML(false)
	if w.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding value: %w", err)
	}

	_, err := w.buf.Write(line.Bytes())
	return w.check(err)
}

// Flush writes any buffered output.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrClosed
	}
	return w.check(w.buf.Flush())
}

// Closed reports whether the consumer has gone away.
func (w *Writer) Closed() bool {
	return w.closed
}

func (w *Writer) check(err error) error {
	if err == nil {
		return nil
	}
	if isBrokenPipe(err) {
		w.closed = true
		return ErrClosed
	}
	return fmt.Errorf("writing output: %w", err)
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}

// IsClosed reports whether err means the consumer has gone away, either as
// ErrClosed or as a raw broken pipe from a writer other than Writer.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed) || isBrokenPipe(err)
}

// WriteAll writes every value and flushes. It stops quietly, returning nil,
// once the consumer has gone away.
func WriteAll[T any](w *Writer, values []T) error {
	for _, v := range values {
		if err := w.Write(v); err != nil {
			if errors.Is(err, ErrClosed) {
				return nil
			}
			return err
		}
	}
	if err := w.Flush(); err != nil && !errors.Is(err, ErrClosed) {
		return err
	}
	return nil
}
