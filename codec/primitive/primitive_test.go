package primitive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/codec/primitive"
	"github.com/thebagchi/wirecodec/stream"
)

func encodeAll(t *testing.T, enc codec.Encoder) []byte {
	t.Helper()
	out := []byte{}
	for enc.HasRemaining() {
		n, err := enc.Encode(stream.SinkFunc(func(b []byte) (int, error) {
			out = append(out, b[:1]...)
			return 1, nil // one byte at a time, to exercise chunking
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

func TestNullRoundTrip(t *testing.T) {
	null := primitive.Null{}
	enc, err := null.MakeEncoder(nil)
	require.NoError(t, err)
	require.False(t, enc.HasRemaining())
	require.Equal(t, []byte{}, encodeAll(t, enc))

	dec := null.MakeDecoder()
	require.False(t, dec.HasRemaining())
	v, err := dec.(codec.Getter).Get()
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestBooleanRoundTrip(t *testing.T) {
	b := primitive.Boolean{}
	for _, v := range []bool{true, false} {
		enc, err := b.MakeEncoder(v)
		require.NoError(t, err)
		wire := encodeAll(t, enc)
		got := decodeAll(t, b.MakeDecoder(), wire)
		require.Equal(t, v, got)
	}
}

func TestBooleanEncoderRejectsNonBool(t *testing.T) {
	b := primitive.Boolean{}
	_, err := b.MakeEncoder("nope")
	require.Error(t, err)
}

func TestBooleanDecoderRejectsInvalidByte(t *testing.T) {
	b := primitive.Boolean{}
	dec := b.MakeDecoder()
	_, err := dec.Decode(stream.SourceFunc(func(int) ([]byte, error) { return []byte{0x02}, nil }))
	require.NoError(t, err)
	_, err = dec.(codec.Getter).Get()
	require.Error(t, err)
	require.Contains(t, err.Error(), "0x02")
}

func TestIntegerScenarioS1AndS2(t *testing.T) {
	integer := primitive.Integer{}

	enc, err := integer.MakeEncoder(int64(-1))
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, encodeAll(t, enc))

	enc, err = integer.MakeEncoder(int64(150))
	require.NoError(t, err)
	require.Equal(t, []byte{0xAC, 0x02}, encodeAll(t, enc))
}

func TestIntegerRoundTripSignedBoundary(t *testing.T) {
	integer := primitive.Integer{}
	for _, v := range []int64{-1, 0, 1, 150, -150, 1 << 40, -(1 << 40)} {
		enc, err := integer.MakeEncoder(v)
		require.NoError(t, err)
		wire := encodeAll(t, enc)
		got := decodeAll(t, integer.MakeDecoder(), wire)
		require.Equal(t, v, got)
	}
}

func TestIntegerAcceptsAllIntegerKinds(t *testing.T) {
	integer := primitive.Integer{}
	for _, v := range []any{int(5), int8(5), int16(5), int32(5), int64(5), uint(5), uint8(5), uint16(5), uint32(5), uint64(5)} {
		_, err := integer.MakeEncoder(v)
		require.NoError(t, err, "%T", v)
	}
}

func TestIntegerEncoderRejectsNonInteger(t *testing.T) {
	integer := primitive.Integer{}
	_, err := integer.MakeEncoder("nope")
	require.Error(t, err)
}

func TestFloat32RoundTrip(t *testing.T) {
	f := primitive.Float32{}
	for _, v := range []float32{0, 1.5, -3.25, 3.1415927} {
		enc, err := f.MakeEncoder(v)
		require.NoError(t, err)
		wire := encodeAll(t, enc)
		require.Len(t, wire, 4)
		got := decodeAll(t, f.MakeDecoder(), wire)
		require.Equal(t, v, got)
	}
}

func TestFloat32AcceptsFloat64(t *testing.T) {
	f := primitive.Float32{}
	_, err := f.MakeEncoder(float64(2.5))
	require.NoError(t, err)
}
