// Package codec implements the incremental codec protocol and
// composition algebra: encoders and decoders that move a value to or
// from a byte stream in bounded, resumable steps, plus the multipart
// driver that higher-order codecs (collections, tuples, unions, records)
// use to sequence their children.
//
// Every Encoder/Decoder here is single-use: construct it from a Codec,
// drive it to completion, discard it. A Codec itself is stateless and
// safe to share and reuse across many encode/decode cycles.
package codec

import (
	"github.com/sirupsen/logrus"

	"github.com/thebagchi/wirecodec/stream"
)

// Verbose gates the Trace-level logging the multipart driver emits when
// a child Encode/Decode call consumes zero bytes while the child itself
// still has work left — a stalled sink or a source that is not yet
// offering bytes, not a bug, but a condition worth seeing when a stream
// is stuck. Off by default; flip it on when debugging a stuck stream.
var Verbose = false

// trace logs a multipart stall when Verbose is set. Cheap to call
// unconditionally: logrus.Trace itself short-circuits on level before
// formatting when the logger's level excludes Trace, and the Verbose
// check here additionally skips calling into logrus at all in the
// common case.
func trace(direction, kind string) {
	if !Verbose {
		return
	}
	logrus.WithFields(logrus.Fields{
		"direction": direction,
		"child":     kind,
	}).Trace("multipart: child stalled, no bytes moved")
}

// Encoder is a finite, consumable state machine carrying a value to
// emit plus a progress cursor. Encode writes at most what the sink
// accepts in one attempt and may return having completed only one
// segment of the whole encoding.
type Encoder interface {
	// Encode writes as much of the remaining encoding as sink accepts in
	// one attempt. Returns the number of bytes written. Returns 0 when
	// the encoder is already terminal or when the sink accepted nothing.
	Encode(sink stream.Sink) (int, error)

	// Remaining is a lower bound on the number of bytes still to write.
	Remaining() int

	// HasRemaining reports whether Encode has more work to do. Monotone:
	// once false, never becomes true again for this instance.
	HasRemaining() bool
}

// Decoder is a finite state machine accumulating a reconstructed value.
type Decoder interface {
	// Decode reads and consumes as much of the wire encoding as source
	// yields in one attempt. Returns the number of bytes consumed.
	// Returns 0 when already terminal or when source yielded nothing.
	Decode(source stream.Source) (int, error)

	Remaining() int
	HasRemaining() bool
}

// Getter is implemented by decoders whose terminal value can be pulled
// out once decoding is complete. It is valid to call Get only when
// HasRemaining() is false; calling it earlier is a programming error and
// returns a non-nil error rather than a zero value, so a caller that
// forgets to check does not silently get garbage.
type Getter interface {
	Get() (any, error)
}

// Codec is a stateless, reusable factory for matched encoder/decoder
// pairs over a single Go type.
type Codec interface {
	// MakeEncoder returns a fresh Encoder carrying value. It may return
	// an error if value does not belong to the codec's domain (wrong
	// arity, no matching union alternative, and so on) — a construction
	// time EncoderError, not a stream-time failure.
	MakeEncoder(value any) (Encoder, error)

	// MakeDecoder returns a fresh, empty Decoder.
	MakeDecoder() Decoder
}

// CodecFunc-style factories are avoided deliberately: codecs compose by
// holding other Codec values, and a struct gives higher-order codecs a
// place to store the child codec(s) they were built from.
