package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/stream"
)

func drainEncoder(t *testing.T, enc codec.Encoder) []byte {
	t.Helper()
	var out []byte
	for enc.HasRemaining() {
		n, err := enc.Encode(stream.SinkFunc(func(b []byte) (int, error) {
			out = append(out, b...)
			return len(b), nil
		}))
		require.NoError(t, err)
		require.Greater(t, n, 0)
	}
	return out
}

func TestMultipartEncoderSequencesChildrenInOrder(t *testing.T) {
	children := []codec.Encoder{
		codec.NewRawEncoder([]byte{1, 2}),
		codec.NewRawEncoder([]byte{3}),
		codec.NewRawEncoder([]byte{4, 5, 6}),
	}
	idx := -1
	enc := codec.NewMultipartEncoder(func(prev codec.Encoder) codec.Encoder {
		idx++
		if idx >= len(children) {
			return nil
		}
		return children[idx]
	})
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6}, drainEncoder(t, enc))
	require.False(t, enc.HasRemaining())
	n, err := enc.Encode(stream.SinkFunc(func(b []byte) (int, error) { return len(b), nil }))
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestMultipartEncoderEmptyProducerIsImmediatelyTerminal(t *testing.T) {
	enc := codec.NewMultipartEncoder(func(codec.Encoder) codec.Encoder { return nil })
	require.False(t, enc.HasRemaining())
	require.Equal(t, 0, enc.Remaining())
}

func TestMultipartDecoderFiresOnDoneExactlyOnce(t *testing.T) {
	fired := 0
	steps := []func() codec.Decoder{
		func() codec.Decoder { d, _ := codec.NewRawDecoder(1, nil); return d },
		func() codec.Decoder { d, _ := codec.NewRawDecoder(1, nil); return d },
	}
	idx := -1
	dec := codec.NewMultipartDecoder(func(prev codec.Decoder) codec.Decoder {
		idx++
		if idx >= len(steps) {
			return nil
		}
		return steps[idx]()
	}, func() { fired++ })

	source := stream.SourceFunc(func(max int) ([]byte, error) { return []byte{0x01}, nil })
	for dec.HasRemaining() {
		_, err := dec.Decode(source)
		require.NoError(t, err)
	}
	require.Equal(t, 1, fired)

	// Driving a terminal decoder again must not re-fire onDone.
	_, err := dec.Decode(source)
	require.NoError(t, err)
	require.Equal(t, 1, fired)
}

func TestMultipartDecoderProducerSeesPreviousChild(t *testing.T) {
	var seen []byte
	step := 0
	dec := codec.NewMultipartDecoder(func(prev codec.Decoder) codec.Decoder {
		if prev != nil {
			raw := prev.(*codec.RawDecoder)
			v, err := raw.Get()
			require.NoError(t, err)
			seen = append(seen, v...)
		}
		step++
		if step > 3 {
			return nil
		}
		d, _ := codec.NewRawDecoder(1, nil)
		return d
	}, nil)

	source := stream.SourceFunc(func(max int) ([]byte, error) { return []byte{byte(len(seen) + 1)}, nil })
	for dec.HasRemaining() {
		_, err := dec.Decode(source)
		require.NoError(t, err)
	}
	require.Equal(t, []byte{1, 2, 3}, seen)
}
