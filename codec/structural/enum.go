package structural

import "github.com/thebagchi/wirecodec/codec"

// Enum encodes a member's ordinal (its index in the declared member
// list) as a varint. Reordering members is a schema break — the wire
// format depends entirely on declaration order, never on member name or
// value.
type Enum struct {
	members []any
}

// NewEnum builds an Enum codec over members in declaration order.
func NewEnum(members []any) *Enum {
	return &Enum{members: append([]any(nil), members...)}
}

// MakeEncoder looks up value's ordinal by equality against the declared
// members.
func (e *Enum) MakeEncoder(value any) (codec.Encoder, error) {
	index := -1
	for i, m := range e.members {
		if identityEqual(m, value) {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, codec.NewEncoderError("value is not a declared enum member")
	}
	return codec.NewVarintEncoder(uint64(index))
}

// MakeDecoder returns a fresh enum decoder.
func (e *Enum) MakeDecoder() codec.Decoder {
	return &enumDecoder{members: e.members, VarintDecoder: codec.NewVarintDecoder()}
}

type enumDecoder struct {
	*codec.VarintDecoder
	members []any
}

// Get indexes into the member list, rejecting an ordinal at or beyond
// the declared arity with a DecoderError naming the index.
func (d *enumDecoder) Get() (any, error) {
	ordinal, err := d.VarintDecoder.Get()
	if err != nil {
		return nil, err
	}
	if int(ordinal) >= len(d.members) {
		return nil, codec.NewDecoderErrorf("invalid enum ordinal %d", ordinal)
	}
	return d.members[int(ordinal)], nil
}
