package collection

import (
	"reflect"

	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/codec/structural"
)

// Dict is a Collection of (key, value) pairs under a Tuple(key, value)
// element codec, materialized into a map[any]any. Duplicate keys in the
// wire stream resolve by last-write-wins during construction, a
// consequence of building a plain Go map, not a codec invariant.
type Dict struct {
	pair *structural.Tuple
	coll *Collection
}

// NewDict builds a Dict codec over the given key/value codecs.
func NewDict(key, value codec.Codec) *Dict {
	pair := structural.NewTuple([]codec.Codec{key, value})
	ctor := func(items []any) (any, error) {
		out := make(map[any]any, len(items))
		for _, item := range items {
			kv := item.([]any)
			out[kv[0]] = kv[1]
		}
		return out, nil
	}
	return &Dict{pair: pair, coll: New(ctor, pair)}
}

func (d *Dict) MakeEncoder(value any) (codec.Encoder, error) {
	items, err := dictItems(value)
	if err != nil {
		return nil, err
	}
	return d.coll.MakeEncoder(items)
}

func (d *Dict) MakeDecoder() codec.Decoder { return d.coll.MakeDecoder() }

// dictItems flattens a map value into the []any{[]any{k, v}, ...} shape
// Tuple.MakeEncoder expects (a Tuple value is the ordered []any of its
// elements).
func dictItems(value any) ([]any, error) {
	if m, ok := value.(map[any]any); ok {
		items := make([]any, 0, len(m))
		for k, v := range m {
			items = append(items, []any{k, v})
		}
		return items, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return nil, codec.NewEncoderError("dict codec requires a map value")
	}
	items := make([]any, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		items = append(items, []any{iter.Key().Interface(), iter.Value().Interface()})
	}
	return items, nil
}
