package codec

import "github.com/thebagchi/wirecodec/stream"

// VarintEncoder emits an unsigned LEB128 varint: 7-bit little-endian
// groups, continuation bit in the MSB of every byte but the last. The
// byte string is precomputed at construction time — there is nothing
// left to compute during Encode, only bytes left to transfer.
type VarintEncoder struct {
	*RawEncoder
}

// NewVarintEncoder precomputes the LEB128 encoding of value. The
// parameter is unsigned, so negative values cannot reach it: signed
// values go through zig-zag first (see codec/primitive). The returned
// error is always nil.
func NewVarintEncoder(value uint64) (*VarintEncoder, error) {
	var data []byte
	v := value
	for {
		octet := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			octet |= 0x80
		}
		data = append(data, octet)
		if v == 0 {
			break
		}
	}
	return &VarintEncoder{RawEncoder: NewRawEncoder(data)}, nil
}

// VarintDecoder reads one byte per Decode call and terminates as soon as
// it sees a byte with a clear continuation bit.
type VarintDecoder struct {
	value      uint64
	shift      uint
	terminated bool
}

// NewVarintDecoder returns a fresh, empty varint decoder.
func NewVarintDecoder() *VarintDecoder {
	return &VarintDecoder{}
}

// Decode consumes at most one byte from source.
func (d *VarintDecoder) Decode(source stream.Source) (int, error) {
	if d.terminated {
		return 0, nil
	}
	buf, err := source.Read(1)
	if err != nil {
		return 0, err
	}
	if len(buf) == 0 {
		return 0, nil
	}
	octet := buf[0]
	d.value |= uint64(octet&0x7f) << d.shift
	d.shift += 7
	if octet&0x80 == 0 {
		d.terminated = true
	}
	return 1, nil
}

// Remaining is always 0 or 1: a varint decoder never knows it needs more
// than "one more byte" until it sees the terminator.
func (d *VarintDecoder) Remaining() int {
	if d.terminated {
		return 0
	}
	return 1
}

// HasRemaining reports whether the terminating byte has been seen.
func (d *VarintDecoder) HasRemaining() bool { return !d.terminated }

// Get returns the decoded unsigned value. Valid only once terminated.
func (d *VarintDecoder) Get() (uint64, error) {
	if !d.terminated {
		return 0, NewDecoderError("varint not yet complete")
	}
	return d.value, nil
}
