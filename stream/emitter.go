package stream

import (
	"encoding/json"
	"io"
	"sync"
)

// EncoderFunc converts a value into a single JSON line (without newline).
type EncoderFunc[T any] func(T) ([]byte, error)

// Emitter writes one JSON object per line. It is safe for concurrent use.
type Emitter[T any] struct {
	mu     sync.Mutex
	w      io.Writer
	encode EncoderFunc[T]
}

// NewEmitter creates an Emitter. A nil encode defaults to json.Marshal.
func NewEmitter[T any](w io.Writer, encode EncoderFunc[T]) *Emitter[T] {
	if encode == nil {
		encode = func(v T) ([]byte, error) { return json.Marshal(v) }
	}
	return &Emitter[T]{w: w, encode: encode}
}

// Emit writes the records in order.
func (e *Emitter[T]) Emit(records []T) error {
	for _, rec := range records {
		if err := e.EmitOne(rec); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter[T]) EmitOne(record T) error {
	b, err := e.encode(record)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	_, err = e.w.Write(append(b, '\n'))
	return err
}
