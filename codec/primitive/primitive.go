// Package primitive implements the leaf codecs of the wire format: Null,
// Boolean, Integer (zig-zag varint), and Float32 (4-byte big-endian).
// Every primitive here other than Null (which transfers no bytes) wraps
// either VarintEncoder/Decoder or RawEncoder/Decoder from package codec
// rather than reimplementing byte transfer.
package primitive

import (
	"encoding/binary"
	"math"

	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/stream"
)

// Null encodes and decodes zero bytes.
type Null struct{}

// nullEncoder is the shared stateless instance Encode/Decode never need
// more than one of, since it carries no value and no cursor.
type nullEncoder struct{}

func (nullEncoder) Encode(stream.Sink) (int, error) { return 0, nil }
func (nullEncoder) Remaining() int                  { return 0 }
func (nullEncoder) HasRemaining() bool              { return false }

type nullDecoder struct{}

func (nullDecoder) Decode(stream.Source) (int, error) { return 0, nil }
func (nullDecoder) Remaining() int                    { return 0 }
func (nullDecoder) HasRemaining() bool                { return false }
func (nullDecoder) Get() (any, error)                 { return nil, nil }

// MakeEncoder returns an already-terminal encoder: Null has nothing to
// transfer regardless of value.
func (Null) MakeEncoder(value any) (codec.Encoder, error) {
	return nullEncoder{}, nil
}

// MakeDecoder returns an already-terminal decoder whose Get() is the
// canonical nil value.
func (Null) MakeDecoder() codec.Decoder { return nullDecoder{} }

// Boolean wraps a single raw byte, 0x00 or 0x01.
type Boolean struct{}

type booleanEncoder struct {
	*codec.RawEncoder
}

// MakeEncoder rejects values that are not a Go bool via a type assertion
// panic-free failure path.
func (Boolean) MakeEncoder(value any) (codec.Encoder, error) {
	v, ok := value.(bool)
	if !ok {
		return nil, codec.NewEncoderError("boolean codec requires a bool value")
	}
	b := byte(0x00)
	if v {
		b = 0x01
	}
	return &booleanEncoder{RawEncoder: codec.NewRawEncoder([]byte{b})}, nil
}

type booleanDecoder struct {
	*codec.RawDecoder
	value bool
}

// MakeDecoder rejects, on completion, any byte other than 0x00/0x01 with
// a DecoderError naming the offending byte in hex.
func (Boolean) MakeDecoder() codec.Decoder {
	d := &booleanDecoder{}
	raw, _ := codec.NewRawDecoder(1, func(buf []byte) error {
		switch buf[0] {
		case 0x00:
			d.value = false
		case 0x01:
			d.value = true
		default:
			return codec.NewDecoderErrorf("invalid boolean byte 0x%02x", buf[0])
		}
		return nil
	})
	d.RawDecoder = raw
	return d
}

// Get returns the decoded boolean.
func (d *booleanDecoder) Get() (any, error) {
	if d.HasRemaining() {
		return nil, codec.NewDecoderError("boolean not yet complete")
	}
	if _, err := d.RawDecoder.Get(); err != nil {
		return nil, err
	}
	return d.value, nil
}

// Integer wraps VarintEncoder/Decoder with a zig-zag transform so
// negative values encode as small unsigned magnitudes.
type Integer struct{}

// zigZagEncode maps a signed integer onto the unsigned integers so that
// small magnitudes (positive or negative) stay near zero.
func zigZagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// zigZagDecode is zigZagEncode's inverse.
func zigZagDecode(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// MakeEncoder accepts any Go integer kind and widens it to int64 before
// zig-zag transforming it.
func (Integer) MakeEncoder(value any) (codec.Encoder, error) {
	v, ok := asInt64(value)
	if !ok {
		return nil, codec.NewEncoderError("integer codec requires an integer value")
	}
	enc, err := codec.NewVarintEncoder(zigZagEncode(v))
	if err != nil {
		return nil, err
	}
	return enc, nil
}

// MakeDecoder returns a fresh integer decoder.
func (Integer) MakeDecoder() codec.Decoder {
	return &integerDecoder{VarintDecoder: codec.NewVarintDecoder()}
}

type integerDecoder struct {
	*codec.VarintDecoder
}

// Get returns the decoded signed integer as an int64.
func (d *integerDecoder) Get() (any, error) {
	raw, err := d.VarintDecoder.Get()
	if err != nil {
		return nil, err
	}
	return zigZagDecode(raw), nil
}

func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	default:
		return 0, false
	}
}

// Float32 wraps a 4-byte big-endian IEEE-754 raw codec.
type Float32 struct{}

// MakeEncoder packs value as big-endian float32. Accepts float32 or
// float64 (narrowed).
func (Float32) MakeEncoder(value any) (codec.Encoder, error) {
	var f float32
	switch v := value.(type) {
	case float32:
		f = v
	case float64:
		f = float32(v)
	default:
		return nil, codec.NewEncoderError("float32 codec requires a float value")
	}
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, math.Float32bits(f))
	return codec.NewRawEncoder(buf), nil
}

// MakeDecoder returns a fresh float32 decoder.
func (Float32) MakeDecoder() codec.Decoder {
	d := &float32Decoder{}
	raw, _ := codec.NewRawDecoder(4, func(buf []byte) error {
		d.value = math.Float32frombits(binary.BigEndian.Uint32(buf))
		return nil
	})
	d.RawDecoder = raw
	return d
}

type float32Decoder struct {
	*codec.RawDecoder
	value float32
}

// Get returns the decoded float32.
func (d *float32Decoder) Get() (any, error) {
	if _, err := d.RawDecoder.Get(); err != nil {
		return nil, err
	}
	return d.value, nil
}
