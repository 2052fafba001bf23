package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/stream"
)

func TestRawEncoderDecoderRoundTrip(t *testing.T) {
	want := []byte("the quick brown fox")
	enc := codec.NewRawEncoder(want)

	var got []byte
	for enc.HasRemaining() {
		n, err := enc.Encode(stream.SinkFunc(func(buf []byte) (int, error) {
			got = append(got, buf...)
			return len(buf), nil
		}))
		require.NoError(t, err)
		require.Greater(t, n, 0)
	}
	require.Equal(t, want, got)

	dec, err := codec.NewRawDecoder(len(want), nil)
	require.NoError(t, err)
	feedSingleByte(t, dec, got)
	out, err := dec.Get()
	require.NoError(t, err)
	require.Equal(t, want, out)
}

func TestRawDecoderRejectsNonPositiveSize(t *testing.T) {
	_, err := codec.NewRawDecoder(0, nil)
	require.Error(t, err)
	var argErr *codec.ArgumentError
	require.ErrorAs(t, err, &argErr)

	_, err = codec.NewRawDecoder(-1, nil)
	require.Error(t, err)
}

func TestRawDecoderFiresOnCompleteExactlyOnce(t *testing.T) {
	calls := 0
	dec, err := codec.NewRawDecoder(2, func([]byte) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	source := stream.SourceFunc(func(max int) ([]byte, error) { return []byte{1, 2}[:min(max, 2)], nil })
	_, err = dec.Decode(source)
	require.NoError(t, err)
	require.False(t, dec.HasRemaining())

	_, err = dec.Decode(source)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestRawDecoderGetSurfacesOnCompleteError(t *testing.T) {
	dec, err := codec.NewRawDecoder(1, func([]byte) error {
		return codec.NewDecoderError("boom")
	})
	require.NoError(t, err)

	source := stream.SourceFunc(func(max int) ([]byte, error) { return []byte{0xff}, nil })
	_, err = dec.Decode(source)
	require.NoError(t, err)

	_, err = dec.Get()
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}

func TestRawDecoderGetBeforeCompleteErrors(t *testing.T) {
	dec, err := codec.NewRawDecoder(4, nil)
	require.NoError(t, err)
	_, err = dec.Get()
	require.Error(t, err)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func feedSingleByte(t *testing.T, dec *codec.RawDecoder, data []byte) {
	t.Helper()
	i := 0
	for dec.HasRemaining() {
		n, err := dec.Decode(stream.SourceFunc(func(max int) ([]byte, error) {
			if i >= len(data) {
				return nil, nil
			}
			b := data[i : i+1]
			i++
			return b, nil
		}))
		require.NoError(t, err)
		require.LessOrEqual(t, n, 1)
	}
}
