package codec

import (
	"fmt"

	"github.com/thebagchi/wirecodec/stream"
)

// EncoderProducer yields the next child encoder given the previous one
// (nil on the very first call). Returning nil means "no more children" —
// the composite transitions to terminal. Realized as a closure rather
// than a slice or a stack: a higher-order codec's producer can compute
// the next child lazily from whatever the previous ones produced (a
// Collection's element count is only known after decoding its length
// prefix, for instance).
type EncoderProducer func(prev Encoder) Encoder

// DecoderProducer is EncoderProducer's decode-side counterpart. A
// producer that needs the previous child's value calls prev.(Getter).Get()
// itself — the driver never inspects child values.
type DecoderProducer func(prev Decoder) Decoder

// MultipartEncoder sequences a lazily-produced series of child encoders,
// driving each to completion before advancing to the next. It writes no
// bytes of its own; every byte comes from a child.
type MultipartEncoder struct {
	next    EncoderProducer
	current Encoder
}

// NewMultipartEncoder starts the sequence by asking next for the first
// child.
func NewMultipartEncoder(next EncoderProducer) *MultipartEncoder {
	m := &MultipartEncoder{next: next}
	m.current = next(nil)
	return m
}

// skip advances past any children that have already finished.
func (m *MultipartEncoder) skip() {
	for m.current != nil && !m.current.HasRemaining() {
		m.current = m.next(m.current)
	}
}

// Encode transfers control to the first non-terminal child and returns
// its byte count. A child that reports 0 is not re-entered within this
// call — the caller loops.
func (m *MultipartEncoder) Encode(sink stream.Sink) (int, error) {
	m.skip()
	if m.current == nil {
		return 0, nil
	}
	n, err := m.current.Encode(sink)
	if n == 0 && err == nil && m.current.HasRemaining() {
		trace("encode", fmt.Sprintf("%T", m.current))
	}
	return n, err
}

// Remaining reports the first non-terminal child's remaining count, or 0
// once every child is done.
func (m *MultipartEncoder) Remaining() int {
	m.skip()
	if m.current == nil {
		return 0
	}
	return m.current.Remaining()
}

// HasRemaining reports whether any child still has work to do.
func (m *MultipartEncoder) HasRemaining() bool {
	m.skip()
	return m.current != nil
}

// MultipartDecoder is MultipartEncoder's decode-side counterpart. It
// additionally fires onDone exactly once, at the moment the producer
// first returns nil — the point at which a higher-order decoder can
// finalize its aggregate value from the children's Get() results.
type MultipartDecoder struct {
	next      DecoderProducer
	current   Decoder
	onDone    func()
	doneFired bool
}

// NewMultipartDecoder starts the sequence. onDone may be nil.
func NewMultipartDecoder(next DecoderProducer, onDone func()) *MultipartDecoder {
	m := &MultipartDecoder{next: next, onDone: onDone}
	m.current = next(nil)
	m.checkDone()
	return m
}

func (m *MultipartDecoder) checkDone() {
	if m.current == nil && !m.doneFired {
		m.doneFired = true
		if m.onDone != nil {
			m.onDone()
		}
	}
}

func (m *MultipartDecoder) skip() {
	for m.current != nil && !m.current.HasRemaining() {
		m.current = m.next(m.current)
		m.checkDone()
	}
}

// Decode transfers control to the first non-terminal child.
func (m *MultipartDecoder) Decode(source stream.Source) (int, error) {
	m.skip()
	if m.current == nil {
		return 0, nil
	}
	n, err := m.current.Decode(source)
	if n == 0 && err == nil && m.current.HasRemaining() {
		trace("decode", fmt.Sprintf("%T", m.current))
	}
	return n, err
}

// Remaining reports the first non-terminal child's remaining count.
func (m *MultipartDecoder) Remaining() int {
	m.skip()
	if m.current == nil {
		return 0
	}
	return m.current.Remaining()
}

// HasRemaining reports whether any child still has work to do.
func (m *MultipartDecoder) HasRemaining() bool {
	m.skip()
	return m.current != nil
}
