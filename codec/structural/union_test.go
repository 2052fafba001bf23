package structural_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/codec/blob"
	"github.com/thebagchi/wirecodec/codec/primitive"
	"github.com/thebagchi/wirecodec/codec/structural"
	"github.com/thebagchi/wirecodec/stream"
)

func intStringUnion() *structural.Union {
	return structural.NewUnion([]structural.Choice{
		{Matcher: structural.TypeMatcher{Type: reflect.TypeOf(int64(0))}, Codec: primitive.Integer{}},
		{Matcher: structural.TypeMatcher{Type: reflect.TypeOf("")}, Codec: blob.String{}},
	})
}

func TestUnionScenarioS7(t *testing.T) {
	u := intStringUnion()
	enc, err := u.MakeEncoder("ab")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x61, 0x62}, encodeAll(t, enc))
}

func TestUnionRoundTripBothAlternatives(t *testing.T) {
	u := intStringUnion()
	for _, v := range []any{int64(42), "hello"} {
		enc, err := u.MakeEncoder(v)
		require.NoError(t, err)
		wire := encodeAll(t, enc)
		got := decodeAll(t, u.MakeDecoder(), wire)
		require.Equal(t, v, got)
	}
}

func TestUnionEncoderFailsWhenNoAlternativeMatches(t *testing.T) {
	u := intStringUnion()
	_, err := u.MakeEncoder(3.14)
	require.Error(t, err)
}

func TestUnionDecoderRejectsOutOfRangeTag(t *testing.T) {
	u := intStringUnion()
	dec := u.MakeDecoder()
	// tag=5 is beyond the two declared alternatives.
	_, err := dec.Decode(stream.SourceFunc(func(int) ([]byte, error) { return []byte{0x05}, nil }))
	require.NoError(t, err)
	require.False(t, dec.HasRemaining())

	_, err = dec.(codec.Getter).Get()
	require.Error(t, err)
	require.Contains(t, err.Error(), "5")
}

// stringer and namedStringer model a "B <: A" interface pair: any
// namedStringer also satisfies stringer, but stringer does not imply
// namedStringer, so stringer is the broader (ancestor) alternative.
type stringer interface {
	String() string
}

type namedStringer interface {
	stringer
	Name() string
}

type label string

func (l label) String() string { return string(l) }
func (l label) Name() string   { return string(l) }

func TestUnionDeterministicNarrowestMatch(t *testing.T) {
	stringerType := reflect.TypeOf((*stringer)(nil)).Elem()
	namedStringerType := reflect.TypeOf((*namedStringer)(nil)).Elem()

	u := structural.NewUnion([]structural.Choice{
		{Matcher: structural.TypeMatcher{Type: stringerType}, Codec: primitive.Null{}},
		{Matcher: structural.TypeMatcher{Type: namedStringerType}, Codec: primitive.Null{}},
	})

	enc, err := u.MakeEncoder(label("x"))
	require.NoError(t, err)
	wire := encodeAll(t, enc)
	// label implements both; namedStringer (index 1) is the narrower
	// match and must win over the broader stringer (index 0).
	require.Equal(t, byte(0x01), wire[0])
}

func TestUnionSentinelMatchShortCircuits(t *testing.T) {
	sentinel := "eof"
	u := structural.NewUnion([]structural.Choice{
		{Matcher: structural.TypeMatcher{Type: reflect.TypeOf("")}, Codec: blob.String{}},
		{Matcher: structural.ValueMatcher{Value: sentinel}, Codec: primitive.Null{}},
	})
	enc, err := u.MakeEncoder(sentinel)
	require.NoError(t, err)
	wire := encodeAll(t, enc)
	require.Equal(t, byte(0x01), wire[0])
}
