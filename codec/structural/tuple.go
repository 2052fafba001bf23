// Package structural implements the fixed-arity and tagged composition
// codecs: Tuple, Record (user objects), Union (tagged sum types), and
// Enum (ordinal-encoded enumerations).
package structural

import (
	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/stream"
)

// Tuple is a fixed-arity, heterogeneous composition of k codecs, emitted
// in declaration order with no length prefix.
type Tuple struct {
	codecs []codec.Codec
}

// NewTuple builds a Tuple codec over codecs in declaration order.
func NewTuple(codecs []codec.Codec) *Tuple {
	return &Tuple{codecs: append([]codec.Codec(nil), codecs...)}
}

// MakeEncoder rejects a value whose arity does not equal k.
func (t *Tuple) MakeEncoder(value any) (codec.Encoder, error) {
	values, ok := value.([]any)
	if !ok {
		return nil, codec.NewEncoderError("tuple codec requires a []any value")
	}
	if len(values) != len(t.codecs) {
		return nil, codec.NewEncoderError("tuple arity mismatch")
	}
	children := make([]codec.Encoder, len(values))
	for i, v := range values {
		enc, err := t.codecs[i].MakeEncoder(v)
		if err != nil {
			return nil, codec.WrapEncoderError(err, "tuple element")
		}
		children[i] = enc
	}
	idx := -1
	return codec.NewMultipartEncoder(func(prev codec.Encoder) codec.Encoder {
		idx++
		if idx >= len(children) {
			return nil
		}
		return children[idx]
	}), nil
}

// MakeDecoder terminates after the k-th child.
func (t *Tuple) MakeDecoder() codec.Decoder {
	d := &tupleDecoder{size: len(t.codecs)}
	idx := -1
	d.multipart = codec.NewMultipartDecoder(func(prev codec.Decoder) codec.Decoder {
		if idx >= 0 {
			v, err := prev.(codec.Getter).Get()
			if err != nil {
				d.err = err
				return nil
			}
			d.items = append(d.items, v)
		}
		idx++
		if idx >= len(t.codecs) {
			return nil
		}
		return t.codecs[idx].MakeDecoder()
	}, nil)
	return d
}

type tupleDecoder struct {
	multipart *codec.MultipartDecoder
	items     []any
	size      int
	err       error
}

func (d *tupleDecoder) Decode(source stream.Source) (int, error) { return d.multipart.Decode(source) }
func (d *tupleDecoder) Remaining() int                          { return d.multipart.Remaining() }
func (d *tupleDecoder) HasRemaining() bool                      { return d.multipart.HasRemaining() }

// Get returns the ordered sequence as an immutable ([]any treated as a
// value type by convention — callers must not mutate the returned
// slice) tuple.
func (d *tupleDecoder) Get() (any, error) {
	if d.HasRemaining() {
		return nil, codec.NewDecoderError("tuple not yet complete")
	}
	if d.err != nil {
		return nil, d.err
	}
	if len(d.items) < d.size {
		return nil, codec.NewDecoderError("tuple incomplete")
	}
	return d.items, nil
}
