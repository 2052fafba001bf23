package structural

import (
	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/stream"
)

// Field pairs a declared field's wire name with its already-resolved
// Codec. The registry is the only producer of Field values a Record
// codec ever sees.
type Field struct {
	Name  string
	Codec codec.Codec
}

// FieldDescriptor is what a user record type declares about one field
// before resolution: a name and an unresolved type descriptor (normally
// a reflect.Type). The registry turns a []FieldDescriptor into a
// []Field by resolving each Type to a Codec.
type FieldDescriptor struct {
	Name string
	Type any
}

// Serializable is the capability a user record type exposes to the
// registry and to Record's encoder/decoder. Fields returns the
// declaration order — that order is the wire order — as unresolved
// descriptors; the registry resolves each one. Dump provides field
// values for encoding; Load reconstructs the value from decoded fields.
type Serializable interface {
	Fields() []FieldDescriptor
	Dump() (map[string]any, error)
	Load(map[string]any) error
}

// Record is built over Tuple semantics but keyed by field name. Wire
// order is the declared order; there is no field-name prefix on the
// wire — field identity is carried entirely out-of-band by the
// descriptor, per spec.
type Record struct {
	fields []Field
	// newInstance allocates a fresh zero value implementing Serializable
	// for Load to populate on decode. The registry supplies this from
	// the resolved type's reflect.Type.
	newInstance func() Serializable
}

// NewRecord builds a Record codec over fields in declared order.
func NewRecord(fields []Field, newInstance func() Serializable) *Record {
	return &Record{fields: append([]Field(nil), fields...), newInstance: newInstance}
}

// NewPlaceholder allocates an uninitialized Record codec with no fields
// yet resolved. The registry's resolver inserts the placeholder into its
// cache, keyed by descriptor, before recursing into field types — this
// is what lets a self-referential record type (a field whose type is,
// directly or through a collection, the record type itself) resolve
// without infinite recursion: the recursive lookup finds this same
// placeholder pointer already cached and reuses it. Finalize must be
// called once field resolution succeeds; a Record used before Finalize
// reports itself as having no fields (an empty record), not a panic —
// resolution failure must be able to discard the placeholder cleanly.
func NewPlaceholder() *Record {
	return &Record{}
}

// Finalize completes a placeholder Record in place once every field
// codec has resolved successfully. Safe to call only once.
func (r *Record) Finalize(fields []Field, newInstance func() Serializable) {
	r.fields = append([]Field(nil), fields...)
	r.newInstance = newInstance
}

// MakeEncoder obtains the field-name->value mapping from value via its
// Dump() capability. A field declared but missing from the Dump() map
// is an EncoderError.
func (r *Record) MakeEncoder(value any) (codec.Encoder, error) {
	s, ok := value.(Serializable)
	if !ok {
		return nil, codec.NewEncoderError("record codec requires a Serializable value")
	}
	values, err := s.Dump()
	if err != nil {
		return nil, codec.WrapEncoderError(err, "record dump")
	}
	children := make([]codec.Encoder, len(r.fields))
	for i, f := range r.fields {
		v, present := values[f.Name]
		if !present {
			return nil, codec.NewEncoderError("record missing field " + f.Name)
		}
		enc, err := f.Codec.MakeEncoder(v)
		if err != nil {
			return nil, codec.WrapEncoderError(err, "record field "+f.Name)
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

// MakeDecoder decodes each field's codec in declared order, then
// reconstructs the value via Load.
func (r *Record) MakeDecoder() codec.Decoder {
	d := &recordDecoder{fields: r.fields, newInstance: r.newInstance, values: map[string]any{}}
	idx := -1
	d.multipart = codec.NewMultipartDecoder(func(prev codec.Decoder) codec.Decoder {
		if idx >= 0 {
			v, err := prev.(codec.Getter).Get()
			if err != nil {
				d.err = err
				return nil
			}
			d.values[r.fields[idx].Name] = v
		}
		idx++
		if idx >= len(r.fields) {
			return nil
		}
		return r.fields[idx].Codec.MakeDecoder()
	}, nil)
	return d
}

type recordDecoder struct {
	fields      []Field
	newInstance func() Serializable
	multipart   *codec.MultipartDecoder
	values      map[string]any
	err         error
}

func (d *recordDecoder) Decode(source stream.Source) (int, error) { return d.multipart.Decode(source) }
func (d *recordDecoder) Remaining() int                           { return d.multipart.Remaining() }
func (d *recordDecoder) HasRemaining() bool                       { return d.multipart.HasRemaining() }

// Get reconstructs the value via Load once every field is present.
func (d *recordDecoder) Get() (any, error) {
	if d.HasRemaining() {
		return nil, codec.NewDecoderError("record not yet complete")
	}
	if d.err != nil {
		return nil, d.err
	}
	if d.newInstance == nil {
		return nil, codec.NewDecoderError("record placeholder was never finalized")
	}
	instance := d.newInstance()
	if err := instance.Load(d.values); err != nil {
		return nil, codec.WrapDecoderError(err, "record load")
	}
	return instance, nil
}
