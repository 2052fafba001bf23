package codec

import "github.com/thebagchi/wirecodec/stream"

// RawEncoder transfers an immutable byte buffer to a sink, resuming from
// wherever the previous Encode call left off.
type RawEncoder struct {
	buf    []byte
	cursor int
}

// NewRawEncoder wraps buf for incremental transfer. buf is not copied;
// callers must not mutate it while the encoder is in use.
func NewRawEncoder(buf []byte) *RawEncoder {
	return &RawEncoder{buf: buf}
}

// Encode attempts to write the unsent suffix of buf in one call,
// advancing the cursor by whatever the sink reports.
func (e *RawEncoder) Encode(sink stream.Sink) (int, error) {
	if e.cursor >= len(e.buf) {
		return 0, nil
	}
	n, err := sink.Write(e.buf[e.cursor:])
	if n > 0 {
		e.cursor += n
	}
	if err != nil {
		return n, err
	}
	return n, nil
}

// Remaining reports the number of unsent bytes.
func (e *RawEncoder) Remaining() int { return len(e.buf) - e.cursor }

// HasRemaining reports whether any bytes remain unsent.
func (e *RawEncoder) HasRemaining() bool { return e.cursor < len(e.buf) }

// RawDecoder accumulates exactly size bytes from a source, one Read per
// Decode call, bounded to the remaining need. onComplete runs exactly
// once, when the size-th byte arrives, and is how derived codecs
// (Boolean, Float32, Bytes' inner payload) turn raw bytes into a
// semantic value or report that the bytes were invalid.
type RawDecoder struct {
	data       []byte
	size       int
	onComplete func([]byte) error
	err        error
	done       bool
}

// NewRawDecoder constructs a decoder that accumulates exactly size
// bytes. Rejects size <= 0 at construction, per spec.
func NewRawDecoder(size int, onComplete func([]byte) error) (*RawDecoder, error) {
	if size <= 0 {
		return nil, NewArgumentError("raw decoder size must be positive")
	}
	return &RawDecoder{
		data:       make([]byte, 0, size),
		size:       size,
		onComplete: onComplete,
	}, nil
}

// Decode reads up to the remaining need from source in a single call.
func (d *RawDecoder) Decode(source stream.Source) (int, error) {
	if len(d.data) >= d.size {
		return 0, nil
	}
	need := d.size - len(d.data)
	buf, err := source.Read(need)
	if err != nil {
		return 0, err
	}
	if len(buf) == 0 {
		return 0, nil
	}
	d.data = append(d.data, buf...)
	if len(d.data) >= d.size && !d.done {
		d.done = true
		if d.onComplete != nil {
			d.err = d.onComplete(d.data)
		}
	}
	return len(buf), nil
}

// Remaining reports how many bytes are still needed.
func (d *RawDecoder) Remaining() int { return d.size - len(d.data) }

// HasRemaining reports whether all size bytes have arrived.
func (d *RawDecoder) HasRemaining() bool { return len(d.data) < d.size }

// Get returns the accumulated bytes. Valid only once HasRemaining is
// false; returns whatever error onComplete raised, if any.
func (d *RawDecoder) Get() ([]byte, error) {
	if d.HasRemaining() {
		return nil, NewDecoderError("raw decoder not yet complete")
	}
	if d.err != nil {
		return nil, d.err
	}
	return d.data, nil
}
