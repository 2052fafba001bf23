package blob_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/codec/blob"
	"github.com/thebagchi/wirecodec/stream"
)

func encodeAll(t *testing.T, enc codec.Encoder) []byte {
	t.Helper()
	var out []byte
	for enc.HasRemaining() {
		n, err := enc.Encode(stream.SinkFunc(func(b []byte) (int, error) {
			out = append(out, b[:1]...)
			return 1, nil
		}))
		require.NoError(t, err)
		require.LessOrEqual(t, n, 1)
	}
	return out
}

func decodeAll(t *testing.T, dec codec.Decoder, wire []byte) any {
	t.Helper()
	i := 0
	for dec.HasRemaining() {
		n, err := dec.Decode(stream.SourceFunc(func(max int) ([]byte, error) {
			if i >= len(wire) {
				return nil, nil
			}
			b := wire[i : i+1]
			i++
			return b, nil
		}))
		require.NoError(t, err)
		require.LessOrEqual(t, n, 1)
	}
	v, err := dec.(codec.Getter).Get()
	require.NoError(t, err)
	return v
}

func TestStringScenarioS4(t *testing.T) {
	s := blob.String{}
	enc, err := s.MakeEncoder("hi")
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0x68, 0x69}, encodeAll(t, enc))
}

func TestBytesRoundTripIncludingEmpty(t *testing.T) {
	b := blob.Bytes{}
	for _, v := range [][]byte{{}, []byte("a"), []byte("hello, world")} {
		enc, err := b.MakeEncoder(v)
		require.NoError(t, err)
		wire := encodeAll(t, enc)
		got := decodeAll(t, b.MakeDecoder(), wire)
		require.Equal(t, v, got)
	}
}

func TestBytesAcceptsString(t *testing.T) {
	b := blob.Bytes{}
	_, err := b.MakeEncoder("abc")
	require.NoError(t, err)
}

func TestStringRoundTripIncludingEmpty(t *testing.T) {
	s := blob.String{}
	for _, v := range []string{"", "x", "héllo wörld"} {
		enc, err := s.MakeEncoder(v)
		require.NoError(t, err)
		wire := encodeAll(t, enc)
		got := decodeAll(t, s.MakeDecoder(), wire)
		require.Equal(t, v, got)
	}
}

func TestStringDecoderRejectsMalformedUTF8(t *testing.T) {
	s := blob.String{}
	// length 1, payload 0xFF: not valid UTF-8.
	wire := []byte{0x01, 0xFF}
	dec := s.MakeDecoder()
	i := 0
	for dec.HasRemaining() {
		_, err := dec.Decode(stream.SourceFunc(func(max int) ([]byte, error) {
			if i >= len(wire) {
				return nil, nil
			}
			b := wire[i : i+1]
			i++
			return b, nil
		}))
		require.NoError(t, err)
	}
	_, err := dec.(codec.Getter).Get()
	require.Error(t, err)
	require.Contains(t, err.Error(), "UTF-8")
}

func TestBytesEncoderRejectsWrongType(t *testing.T) {
	b := blob.Bytes{}
	_, err := b.MakeEncoder(42)
	require.Error(t, err)
}
