package stream

import "io"

// writerSink adapts an io.Writer to Sink.
type writerSink struct {
	w io.Writer
}

// FromWriter wraps an io.Writer as a Sink. The returned Sink forwards
// whatever byte count the writer reports; a writer that blocks (a file,
// a socket) will simply block inside Write, same as it would for any
// other caller — wirecodec does not add buffering or non-blocking
// semantics the underlying writer doesn't already have.
func FromWriter(w io.Writer) Sink {
	return &writerSink{w: w}
}

func (s *writerSink) Write(buf []byte) (int, error) {
	return s.w.Write(buf)
}

// readerSource adapts an io.Reader to Source.
type readerSource struct {
	r io.Reader
}

// FromReader wraps an io.Reader as a Source. io.EOF accompanied by zero
// bytes read is translated into an empty, error-free buffer: per the
// Source contract an empty buffer means "no progress right now", not
// end-of-stream, and it is the caller's loop — not the codec — that
// decides when persistent non-progress means the stream is exhausted.
func FromReader(r io.Reader) Source {
	return &readerSource{r: r}
}

func (s *readerSource) Read(max int) ([]byte, error) {
	if max <= 0 {
		return nil, nil
	}
	buf := make([]byte, max)
	n, err := s.r.Read(buf)
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}
