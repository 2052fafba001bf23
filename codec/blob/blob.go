// Package blob implements the length-prefixed Bytes codec and the
// String codec built on top of it.
package blob

import (
	"unicode/utf8"

	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/stream"
)

// Bytes is a two-child multipart codec: varint(length) then the raw
// payload. Empty buffers are permitted — length 0 followed by no bytes.
type Bytes struct{}

// MakeEncoder builds the length-then-payload multipart encoder. Accepts
// []byte or string (so callers don't need to convert before handing a
// string-typed field to the Bytes codec).
func (Bytes) MakeEncoder(value any) (codec.Encoder, error) {
	buf, err := asBytes(value)
	if err != nil {
		return nil, err
	}
	lengthEnc, err := codec.NewVarintEncoder(uint64(len(buf)))
	if err != nil {
		return nil, err
	}
	payload := codec.NewRawEncoder(buf)

	step := 0
	children := []codec.Encoder{lengthEnc, payload}
	return codec.NewMultipartEncoder(func(prev codec.Encoder) codec.Encoder {
		if step >= len(children) {
			return nil
		}
		c := children[step]
		step++
		return c
	}), nil
}

func asBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, codec.NewEncoderError("bytes codec requires a []byte or string value")
	}
}

// bytesDecoder reads the length varint first, then lazily constructs a
// RawDecoder of that length — mirroring the original implementation's
// lazy construction rather than eagerly allocating a zero-length buffer.
type bytesDecoder struct {
	length  *codec.VarintDecoder
	payload *codec.RawDecoder
	value   []byte
}

func (Bytes) MakeDecoder() codec.Decoder {
	return &bytesDecoder{length: codec.NewVarintDecoder()}
}

func (d *bytesDecoder) ensurePayload() (*codec.RawDecoder, error) {
	if d.payload != nil {
		return d.payload, nil
	}
	n, err := d.length.Get()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		d.value = []byte{}
		return nil, nil
	}
	raw, err := codec.NewRawDecoder(int(n), func(buf []byte) error {
		d.value = append([]byte(nil), buf...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	d.payload = raw
	return d.payload, nil
}

func (d *bytesDecoder) Decode(source stream.Source) (int, error) {
	if d.length.HasRemaining() {
		return d.length.Decode(source)
	}
	payload, err := d.ensurePayload()
	if err != nil {
		return 0, err
	}
	if payload == nil {
		return 0, nil
	}
	return payload.Decode(source)
}

func (d *bytesDecoder) Remaining() int {
	if d.length.HasRemaining() {
		return d.length.Remaining()
	}
	payload, err := d.ensurePayload()
	if err != nil || payload == nil {
		return 0
	}
	return payload.Remaining()
}

func (d *bytesDecoder) HasRemaining() bool {
	if d.length.HasRemaining() {
		return true
	}
	payload, err := d.ensurePayload()
	if err != nil || payload == nil {
		return false
	}
	return payload.HasRemaining()
}

// Get returns the decoded byte slice.
func (d *bytesDecoder) Get() (any, error) {
	if d.HasRemaining() {
		return nil, codec.NewDecoderError("bytes not yet complete")
	}
	if d.payload == nil {
		if _, err := d.ensurePayload(); err != nil {
			return nil, err
		}
	}
	if d.payload != nil {
		if _, err := d.payload.Get(); err != nil {
			return nil, err
		}
	}
	return d.value, nil
}

// String reuses Bytes, UTF-8 encoding on the way in and validating UTF-8
// on the way out.
type String struct {
	bytes Bytes
}

// MakeEncoder requires a string value and delegates to Bytes.
func (s String) MakeEncoder(value any) (codec.Encoder, error) {
	v, ok := value.(string)
	if !ok {
		return nil, codec.NewEncoderError("string codec requires a string value")
	}
	return s.bytes.MakeEncoder(v)
}

// MakeDecoder wraps a Bytes decoder, validating UTF-8 once complete.
func (s String) MakeDecoder() codec.Decoder {
	return &stringDecoder{inner: s.bytes.MakeDecoder().(*bytesDecoder)}
}

type stringDecoder struct {
	inner *bytesDecoder
}

func (d *stringDecoder) Decode(source stream.Source) (int, error) { return d.inner.Decode(source) }
func (d *stringDecoder) Remaining() int                           { return d.inner.Remaining() }
func (d *stringDecoder) HasRemaining() bool                       { return d.inner.HasRemaining() }

// Get returns the decoded string, surfacing a DecoderError on malformed
// UTF-8 rather than silently replacing invalid sequences.
func (d *stringDecoder) Get() (any, error) {
	raw, err := d.inner.Get()
	if err != nil {
		return nil, err
	}
	buf := raw.([]byte)
	if !utf8.Valid(buf) {
		return nil, codec.NewDecoderError("malformed UTF-8 in string payload")
	}
	return string(buf), nil
}
