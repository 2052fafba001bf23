package registry

import (
	"reflect"

	"github.com/thebagchi/wirecodec/codec/blob"
	"github.com/thebagchi/wirecodec/codec/primitive"
)

var (
	typeOfInt     = reflect.TypeOf(int(0))
	typeOfInt8    = reflect.TypeOf(int8(0))
	typeOfInt16   = reflect.TypeOf(int16(0))
	typeOfInt32   = reflect.TypeOf(int32(0))
	typeOfInt64   = reflect.TypeOf(int64(0))
	typeOfUint    = reflect.TypeOf(uint(0))
	typeOfUint8   = reflect.TypeOf(uint8(0))
	typeOfUint16  = reflect.TypeOf(uint16(0))
	typeOfUint32  = reflect.TypeOf(uint32(0))
	typeOfUint64  = reflect.TypeOf(uint64(0))
	typeOfFloat32 = reflect.TypeOf(float32(0))
	typeOfFloat64 = reflect.TypeOf(float64(0))
	typeOfBool    = reflect.TypeOf(false)
	typeOfString  = reflect.TypeOf("")
	typeOfBytes   = reflect.TypeOf([]byte(nil))
	typeOfNil     = reflect.TypeOf((*any)(nil)).Elem()
)

// registerBuiltins seeds the registry with the built-in codecs: null,
// signed integer, float, boolean, text, and byte blob. Every Go signed
// and unsigned integer width shares the one Integer codec, rather than
// registering a distinct codec per width.
func registerBuiltins(r *Registry) {
	null := primitive.Null{}
	integer := primitive.Integer{}
	float32Codec := primitive.Float32{}
	boolean := primitive.Boolean{}
	str := blob.String{}
	bytesCodec := blob.Bytes{}

	r.builtins[typeOfNil] = null
	for _, t := range []reflect.Type{
		typeOfInt, typeOfInt8, typeOfInt16, typeOfInt32, typeOfInt64,
		typeOfUint, typeOfUint8, typeOfUint16, typeOfUint32, typeOfUint64,
	} {
		r.builtins[t] = integer
	}
	r.builtins[typeOfFloat32] = float32Codec
	r.builtins[typeOfFloat64] = float32Codec
	r.builtins[typeOfBool] = boolean
	r.builtins[typeOfString] = str
	r.builtins[typeOfBytes] = bytesCodec
}
