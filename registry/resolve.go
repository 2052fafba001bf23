package registry

import (
	"reflect"

	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/codec/collection"
	"github.com/thebagchi/wirecodec/codec/structural"
)

var (
	serializableType = reflect.TypeOf((*structural.Serializable)(nil)).Elem()
	enumerableType   = reflect.TypeOf((*Enumerable)(nil)).Elem()
)

// resolutionContext threads state through one top-level Codec() call's
// recursion. It exists mainly so recursive lookups route back through
// the owning Registry (hitting builtins/cache exactly as a fresh top
// level call would) without resolve() needing to be a Registry method
// directly.
type resolutionContext struct {
	registry *Registry
}

// codec resolves a child descriptor by delegating back to the owning
// registry's Codec — this is what makes the placeholder cache visible
// to recursive lookups and is the entire cycle-breaking mechanism.
func (ctx *resolutionContext) codec(descriptor any) (codec.Codec, error) {
	return ctx.registry.Codec(descriptor)
}

// resolve dispatches on the normalized descriptor's shape. Returns
// (nil, nil) for anything it does not recognize — an unresolved shape is
// reported to the caller, not treated as an error.
func (ctx *resolutionContext) resolve(descriptor any) (codec.Codec, error) {
	switch d := descriptor.(type) {
	case reflect.Type:
		return ctx.resolveType(d)
	case *TupleShape:
		return ctx.resolveTuple(d)
	case *VariadicTupleShape:
		return ctx.resolveVariadicTuple(d)
	case *UnionShape:
		return ctx.resolveUnion(d)
	default:
		return nil, nil
	}
}

// resolveType resolves a reflect.Type descriptor in priority order:
// record, then enum, then parametric container. Record types are keyed
// on their pointer type: user record
// methods (Fields/Dump/Load) are declared with pointer receivers, so a
// struct type T is recognized via *T implementing Serializable, and a
// descriptor already spelled as *T (the common case — a field whose type
// is itself a record, or a slice element type) is recognized directly.
func (ctx *resolutionContext) resolveType(t reflect.Type) (codec.Codec, error) {
	if t.Implements(serializableType) {
		return ctx.resolveRecord(t)
	}
	if t.Kind() != reflect.Ptr && reflect.PointerTo(t).Implements(serializableType) {
		return ctx.resolveRecord(reflect.PointerTo(t))
	}
	if t.Implements(enumerableType) || reflect.PointerTo(t).Implements(enumerableType) {
		return ctx.resolveEnum(t)
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		elemCodec, err := ctx.codec(t.Elem())
		if err != nil {
			return nil, err
		}
		if elemCodec == nil {
			return nil, nil
		}
		return newTypedCollection(t, elemCodec), nil
	case reflect.Map:
		if t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0 {
			// map[T]struct{} is wirecodec's "set" origin.
			keyCodec, err := ctx.codec(t.Key())
			if err != nil {
				return nil, err
			}
			if keyCodec == nil {
				return nil, nil
			}
			return newTypedSet(t, keyCodec), nil
		}
		keyCodec, err := ctx.codec(t.Key())
		if err != nil {
			return nil, err
		}
		if keyCodec == nil {
			return nil, nil
		}
		valueCodec, err := ctx.codec(t.Elem())
		if err != nil {
			return nil, err
		}
		if valueCodec == nil {
			return nil, nil
		}
		return newTypedDict(t, keyCodec, valueCodec), nil
	default:
		return nil, nil
	}
}

// resolveRecord installs a placeholder before recursing into fields,
// finalizes it on success, and evicts it on any failure (direct or
// indirect, via a child resolution failing). t is always a pointer type
// here (see resolveType).
func (ctx *resolutionContext) resolveRecord(t reflect.Type) (codec.Codec, error) {
	placeholder := structural.NewPlaceholder()
	ctx.registry.installPlaceholder(t, placeholder)

	elem := t.Elem()
	sample, ok := reflect.New(elem).Interface().(structural.Serializable)
	if !ok {
		ctx.registry.evictPlaceholder(t)
		return nil, codec.NewEncoderError("type does not implement Serializable")
	}

	declared := sample.Fields()
	fields := make([]structural.Field, len(declared))
	for i, fd := range declared {
		fieldCodec, err := ctx.codec(fd.Type)
		if err != nil {
			ctx.registry.evictPlaceholder(t)
			return nil, err
		}
		if fieldCodec == nil {
			ctx.registry.evictPlaceholder(t)
			return nil, codec.NewEncoderError("cannot resolve field " + fd.Name)
		}
		fields[i] = structural.Field{Name: fd.Name, Codec: fieldCodec}
	}

	newInstance := func() structural.Serializable {
		return reflect.New(elem).Interface().(structural.Serializable)
	}
	placeholder.Finalize(fields, newInstance)
	return placeholder, nil
}

// resolveEnum builds an Enum codec from a type's declared member list.
func (ctx *resolutionContext) resolveEnum(t reflect.Type) (codec.Codec, error) {
	var members []any
	if e, ok := reflect.New(t).Elem().Interface().(Enumerable); ok {
		members = e.Members()
	} else if e, ok := reflect.New(t).Interface().(Enumerable); ok {
		members = e.Members()
	} else {
		return nil, codec.NewEncoderError("type does not implement Enumerable")
	}
	return structural.NewEnum(members), nil
}

func (ctx *resolutionContext) resolveTuple(shape *TupleShape) (codec.Codec, error) {
	codecs := make([]codec.Codec, len(shape.Elems))
	for i, elemType := range shape.Elems {
		c, err := ctx.codec(elemType)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, nil
		}
		codecs[i] = c
	}
	return structural.NewTuple(codecs), nil
}

func (ctx *resolutionContext) resolveVariadicTuple(shape *VariadicTupleShape) (codec.Codec, error) {
	elemCodec, err := ctx.codec(shape.Elem)
	if err != nil {
		return nil, err
	}
	if elemCodec == nil {
		return nil, nil
	}
	return collection.New(collection.SliceConstructor, elemCodec), nil
}

func (ctx *resolutionContext) resolveUnion(shape *UnionShape) (codec.Codec, error) {
	choices := make([]structural.Choice, len(shape.Alts))
	for i, alt := range shape.Alts {
		c, err := ctx.codec(alt)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, nil
		}
		choices[i] = structural.Choice{Matcher: structural.TypeMatcher{Type: alt}, Codec: c}
	}
	return structural.NewUnion(choices), nil
}
