// Package stream reads and writes JSON Lines.
package stream

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DecoderFunc converts a JSONL line into a value of type T.
type DecoderFunc[T any] func([]byte) (T, error)

// Reader decodes one value per non empty line. Lines starting with "#" are
// comments.
type Reader[T any] struct {
	rc     io.ReadCloser
	br     *bufio.Reader
	decode DecoderFunc[T]
	lineNo int
}

// NewReader reads JSONL from r. A nil decode defaults to json.Unmarshal.
func NewReader[T any](r io.Reader, decode DecoderFunc[T]) *Reader[T] {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(r)
	}

	if decode == nil {
		decode = func(b []byte) (T, error) {
			var v T
			err := json.Unmarshal(b, &v)
			return v, err
		}
	}

	return &Reader[T]{
		rc:     rc,
		br:     bufio.NewReader(rc),
		decode: decode,
	}
}

// Open opens a JSONL file, gunzipping it if the extension is ".gz". The
// path "" or "-" reads from stdin.
func Open[T any](path string, decode DecoderFunc[T]) (*Reader[T], error) {
	if path == "" || path == "-" {
		return NewReader[T](io.NopCloser(os.Stdin), decode), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(filepath.Ext(path), ".gz") {
		return NewReader[T](f, decode), nil
	}

	gzr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return NewReader[T](compositeCloser{r: gzr, c: f}, decode), nil
}

func (r *Reader[T]) Close() error {
	if r == nil || r.rc == nil {
		return nil
	}
	return r.rc.Close()
}

// Line returns the number of lines read so far.
func (r *Reader[T]) Line() int {
	return r.lineNo
}

// Next returns the next value. ok is false at the end of the input.
func (r *Reader[T]) Next() (T, bool, error) {
	var zero T
	for {
		line, err := r.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return zero, false, nil
			}
			return zero, false, err
		}

		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") {
			continue
		}

		v, err := r.decode([]byte(trim))
		if err != nil {
			return zero, false, fmt.Errorf("line %d: %w", r.lineNo, err)
		}
		return v, true, nil
	}
}

func (r *Reader[T]) ReadAll() ([]T, error) {
	var out []T
	for {
		v, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}

func (r *Reader[T]) readLine() (string, error) {
	var b []byte
	for {
		chunk, isPrefix, err := r.br.ReadLine()
		if err != nil {
			// last line without newline
			if errors.Is(err, io.EOF) && len(b) > 0 {
				return string(b), nil
			}
			return "", err
		}
		if len(b) == 0 {
			r.lineNo++
		}
		b = append(b, chunk...)
		if !isPrefix {
			return string(b), nil
		}
	}
}

type compositeCloser struct {
	r io.ReadCloser
	c io.Closer
}

func (cc compositeCloser) Read(p []byte) (int, error) { return cc.r.Read(p) }
func (cc compositeCloser) Close() error {
	_ = cc.r.Close()
	return cc.c.Close()
}
