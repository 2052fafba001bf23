// Package collection implements the length-prefixed Collection codec
// (backing lists, sets, and homogeneous tuples) and the Dict codec built
// over it.
package collection

import (
	"reflect"

	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/stream"
)

// Constructor builds the target container from the decoded elements, in
// wire order. Errors from Constructor surface as DecoderErrors.
type Constructor func(items []any) (any, error)

// Collection is parameterized by a constructor and an element codec.
// Wire format: varint(n) followed by n element encodings.
type Collection struct {
	ctor Constructor
	elem codec.Codec
}

// New builds a Collection codec over elem, materializing decoded
// elements through ctor.
func New(ctor Constructor, elem codec.Codec) *Collection {
	return &Collection{ctor: ctor, elem: elem}
}

// SliceConstructor is the default Constructor used by the registry for
// `list`/`set`-origin descriptors: it returns items as-is, as []any. A
// registry resolving a concrete []T target wraps this to narrow the
// result back to []T.
func SliceConstructor(items []any) (any, error) { return items, nil }

// elementsOf extracts the values of value as a []any, accepting any Go
// slice or array so callers can hand in a concretely-typed []T without
// the codec needing a type parameter.
func elementsOf(value any) ([]any, error) {
	if items, ok := value.([]any); ok {
		return items, nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	default:
		return nil, codec.NewEncoderError("collection codec requires a slice or array value")
	}
}

// MakeEncoder builds the size-prefix-then-elements multipart encoder.
func (c *Collection) MakeEncoder(value any) (codec.Encoder, error) {
	items, err := elementsOf(value)
	if err != nil {
		return nil, err
	}
	lengthEnc, err := codec.NewVarintEncoder(uint64(len(items)))
	if err != nil {
		return nil, err
	}

	// Eagerly build every element encoder so a construction-time type
	// mismatch on any element fails before a single byte is transferred,
	// rather than partway through a stream.
	elemEncoders := make([]codec.Encoder, len(items))
	for i, v := range items {
		enc, err := c.elem.MakeEncoder(v)
		if err != nil {
			return nil, codec.WrapEncoderError(err, "collection element")
		}
		elemEncoders[i] = enc
	}

	idx := -1
	return codec.NewMultipartEncoder(func(prev codec.Encoder) codec.Encoder {
		idx++
		if idx == 0 {
			return lengthEnc
		}
		i := idx - 1
		if i >= len(elemEncoders) {
			return nil
		}
		return elemEncoders[i]
	}), nil
}

// MakeDecoder builds the size-prefix-then-elements multipart decoder.
// It reads the size prefix, spawns exactly n element decoders in
// sequence, and hands the accumulated values to ctor once the last one
// terminates.
func (c *Collection) MakeDecoder() codec.Decoder {
	d := &collectionDecoder{ctor: c.ctor, elem: c.elem, items: []any{}}
	d.length = codec.NewVarintDecoder()
	step := 0
	d.multipart = codec.NewMultipartDecoder(func(prev codec.Decoder) codec.Decoder {
		step++
		if step == 1 {
			return d.length
		}
		if d.size < 0 {
			n, err := d.length.Get()
			if err != nil {
				d.err = err
				return nil
			}
			d.size = int(n)
		} else {
			g := prev.(codec.Getter)
			v, err := g.Get()
			if err != nil {
				d.err = err
				return nil
			}
			d.items = append(d.items, v)
		}
		if len(d.items) >= d.size {
			return nil
		}
		return c.elem.MakeDecoder()
	}, func() {
		if d.err != nil {
			return
		}
		value, err := d.ctor(d.items)
		if err != nil {
			d.err = codec.WrapDecoderError(err, "collection constructor")
			return
		}
		d.value = value
	})
	d.size = -1
	return d
}

type collectionDecoder struct {
	ctor      Constructor
	elem      codec.Codec
	length    *codec.VarintDecoder
	multipart *codec.MultipartDecoder
	size      int
	items     []any
	value     any
	err       error
}

func (d *collectionDecoder) Decode(source stream.Source) (int, error) {
	return d.multipart.Decode(source)
}

func (d *collectionDecoder) Remaining() int     { return d.multipart.Remaining() }
func (d *collectionDecoder) HasRemaining() bool { return d.multipart.HasRemaining() }

// Get returns the constructed collection. Valid only once all n elements
// are present.
func (d *collectionDecoder) Get() (any, error) {
	if d.HasRemaining() {
		return nil, codec.NewDecoderError("collection not yet complete")
	}
	if d.err != nil {
		return nil, d.err
	}
	return d.value, nil
}
