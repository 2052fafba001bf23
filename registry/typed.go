package registry

import (
	"reflect"

	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/codec/collection"
	"github.com/thebagchi/wirecodec/stream"
)

// typedCollection wraps a generic collection.Collection (which traffics
// in []any) so Get() returns a concretely-typed slice or array matching
// the reflect.Type the registry resolved — narrowing collection.Collection
// itself, having no type parameter to narrow by, cannot perform on its
// own.
type typedCollection struct {
	inner *collection.Collection
	t     reflect.Type
}

func newTypedCollection(t reflect.Type, elem codec.Codec) codec.Codec {
	return &typedCollection{inner: collection.New(collection.SliceConstructor, elem), t: t}
}

func (c *typedCollection) MakeEncoder(value any) (codec.Encoder, error) {
	return c.inner.MakeEncoder(value)
}

func (c *typedCollection) MakeDecoder() codec.Decoder {
	return &typedCollectionDecoder{inner: c.inner.MakeDecoder(), t: c.t}
}

type typedCollectionDecoder struct {
	inner codec.Decoder
	t     reflect.Type
}

func (d *typedCollectionDecoder) Decode(source stream.Source) (int, error) {
	return d.inner.Decode(source)
}
func (d *typedCollectionDecoder) Remaining() int     { return d.inner.Remaining() }
func (d *typedCollectionDecoder) HasRemaining() bool { return d.inner.HasRemaining() }

func (d *typedCollectionDecoder) Get() (any, error) {
	raw, err := d.inner.(codec.Getter).Get()
	if err != nil {
		return nil, err
	}
	items := raw.([]any)
	out := reflect.MakeSlice(d.t, len(items), len(items))
	for i, v := range items {
		out.Index(i).Set(reflect.ValueOf(v).Convert(d.t.Elem()))
	}
	return out.Interface(), nil
}

// typedSet wraps a Collection of the set's key type into a map[T]struct{}
// on decode, and flattens a map[T]struct{} into its keys on encode, since
// Go has no native set type to resolve to directly.
type typedSet struct {
	inner *collection.Collection
	t     reflect.Type
}

func newTypedSet(t reflect.Type, key codec.Codec) codec.Codec {
	return &typedSet{inner: collection.New(collection.SliceConstructor, key), t: t}
}

func (c *typedSet) MakeEncoder(value any) (codec.Encoder, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return nil, codec.NewEncoderError("set codec requires a map[T]struct{} value")
	}
	items := make([]any, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		items = append(items, iter.Key().Interface())
	}
	return c.inner.MakeEncoder(items)
}

func (c *typedSet) MakeDecoder() codec.Decoder {
	return &typedSetDecoder{inner: c.inner.MakeDecoder(), t: c.t}
}

type typedSetDecoder struct {
	inner codec.Decoder
	t     reflect.Type
}

func (d *typedSetDecoder) Decode(source stream.Source) (int, error) { return d.inner.Decode(source) }
func (d *typedSetDecoder) Remaining() int                           { return d.inner.Remaining() }
func (d *typedSetDecoder) HasRemaining() bool                       { return d.inner.HasRemaining() }

func (d *typedSetDecoder) Get() (any, error) {
	raw, err := d.inner.(codec.Getter).Get()
	if err != nil {
		return nil, err
	}
	items := raw.([]any)
	out := reflect.MakeMapWithSize(d.t, len(items))
	empty := reflect.New(d.t.Elem()).Elem()
	for _, v := range items {
		out.SetMapIndex(reflect.ValueOf(v).Convert(d.t.Key()), empty)
	}
	return out.Interface(), nil
}

// typedDict wraps a collection.Dict (map[any]any) into a concretely-typed
// map[K]V on decode; on encode it hands the map[K]V to the Dict encoder
// unchanged.
type typedDict struct {
	inner *collection.Dict
	t     reflect.Type
}

func newTypedDict(t reflect.Type, key, value codec.Codec) codec.Codec {
	return &typedDict{inner: collection.NewDict(key, value), t: t}
}

func (c *typedDict) MakeEncoder(value any) (codec.Encoder, error) {
	return c.inner.MakeEncoder(value)
}

func (c *typedDict) MakeDecoder() codec.Decoder {
	return &typedDictDecoder{inner: c.inner.MakeDecoder(), t: c.t}
}

type typedDictDecoder struct {
	inner codec.Decoder
	t     reflect.Type
}

func (d *typedDictDecoder) Decode(source stream.Source) (int, error) { return d.inner.Decode(source) }
func (d *typedDictDecoder) Remaining() int                           { return d.inner.Remaining() }
func (d *typedDictDecoder) HasRemaining() bool                       { return d.inner.HasRemaining() }

func (d *typedDictDecoder) Get() (any, error) {
	raw, err := d.inner.(codec.Getter).Get()
	if err != nil {
		return nil, err
	}
	generic := raw.(map[any]any)
	out := reflect.MakeMapWithSize(d.t, len(generic))
	for k, v := range generic {
		out.SetMapIndex(
			reflect.ValueOf(k).Convert(d.t.Key()),
			reflect.ValueOf(v).Convert(d.t.Elem()),
		)
	}
	return out.Interface(), nil
}
