package structural

import (
	"reflect"

	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/stream"
)

// Matcher decides whether a value belongs to one union alternative.
type Matcher interface {
	Matches(value any) bool
}

// TypeMatcher matches structurally: value belongs to the alternative iff
// its type is, or implements, Type.
type TypeMatcher struct {
	Type reflect.Type
}

// Matches reports whether value's type is assignable to m.Type.
func (m TypeMatcher) Matches(value any) bool {
	if value == nil {
		return m.Type == nil
	}
	vt := reflect.TypeOf(value)
	if m.Type.Kind() == reflect.Interface {
		return vt.Implements(m.Type)
	}
	return vt == m.Type || vt.AssignableTo(m.Type)
}

// isAncestorOf reports whether m is a broader alternative than other —
// an interface the other's concrete type implements, or a struct type
// the other embeds (directly or transitively). Go has no class
// hierarchy, so "ancestor" here means "interface satisfied" or
// "embedded struct".
func (m TypeMatcher) isAncestorOf(other TypeMatcher) bool {
	if m.Type == nil || other.Type == nil || m.Type == other.Type {
		return false
	}
	if m.Type.Kind() == reflect.Interface {
		return other.Type.Implements(m.Type)
	}
	return embeds(other.Type, m.Type)
}

func embeds(t, ancestor reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	target := ancestor
	for target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft == target {
			return true
		}
		if embeds(f.Type, ancestor) {
			return true
		}
	}
	return false
}

// ValueMatcher matches a single sentinel value by identity. Sentinel
// matches win immediately and short-circuit the scan.
type ValueMatcher struct {
	Value any
}

// Matches reports whether value equals the sentinel.
func (m ValueMatcher) Matches(value any) bool {
	return identityEqual(value, m.Value)
}

func identityEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a).Comparable() && reflect.TypeOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Choice pairs one alternative's matcher with its codec.
type Choice struct {
	Matcher Matcher
	Codec   codec.Codec
}

// Union is parameterized by an ordered sequence of (matcher, codec)
// choices. Wire format: varint(index) then the chosen codec's payload.
type Union struct {
	choices []Choice
}

// NewUnion builds a Union codec over choices in declaration order.
func NewUnion(choices []Choice) *Union {
	return &Union{choices: append([]Choice(nil), choices...)}
}

// MakeEncoder scans choices in order and selects the narrowest type
// match, short-circuiting on a sentinel identity match. Given matches at
// indices i < j with types T_i, T_j, picks j iff T_i is an ancestor of
// T_j; otherwise keeps the earlier i. Fails if no choice matches.
func (u *Union) MakeEncoder(value any) (codec.Encoder, error) {
	matchIdx := -1
	var matchType *TypeMatcher

	for i, c := range u.choices {
		if vm, ok := c.Matcher.(ValueMatcher); ok {
			if vm.Matches(value) {
				matchIdx = i
				matchType = nil
				break
			}
			continue
		}
		tm, ok := c.Matcher.(TypeMatcher)
		if !ok || !tm.Matches(value) {
			continue
		}
		if matchIdx == -1 {
			matchIdx = i
			mt := tm
			matchType = &mt
			continue
		}
		if matchType != nil && matchType.isAncestorOf(tm) {
			matchIdx = i
			mt := tm
			matchType = &mt
		}
	}

	if matchIdx == -1 {
		return nil, codec.NewEncoderError("value does not match any union alternative")
	}

	tagEnc, err := codec.NewVarintEncoder(uint64(matchIdx))
	if err != nil {
		return nil, err
	}
	payloadEnc, err := u.choices[matchIdx].Codec.MakeEncoder(value)
	if err != nil {
		return nil, codec.WrapEncoderError(err, "union payload")
	}
	children := []codec.Encoder{tagEnc, payloadEnc}
	idx := -1
	return codec.NewMultipartEncoder(func(prev codec.Encoder) codec.Encoder {
		idx++
		if idx >= len(children) {
			return nil
		}
		return children[idx]
	}), nil
}

// MakeDecoder reads the varint tag, rejects tag >= arity, then builds
// the chosen alternative's decoder.
func (u *Union) MakeDecoder() codec.Decoder {
	d := &unionDecoder{choices: u.choices}
	tagDec := codec.NewVarintDecoder()
	step := 0
	d.multipart = codec.NewMultipartDecoder(func(prev codec.Decoder) codec.Decoder {
		step++
		if step == 1 {
			return tagDec
		}
		if step == 2 {
			tag, err := tagDec.Get()
			if err != nil {
				d.err = err
				return nil
			}
			if int(tag) >= len(u.choices) {
				d.err = codec.NewDecoderErrorf("invalid union tag %d", tag)
				return nil
			}
			d.payload = u.choices[tag].Codec.MakeDecoder()
			return d.payload
		}
		return nil
	}, nil)
	return d
}

type unionDecoder struct {
	choices   []Choice
	multipart *codec.MultipartDecoder
	payload   codec.Decoder
	err       error
}

func (d *unionDecoder) Decode(source stream.Source) (int, error) { return d.multipart.Decode(source) }
func (d *unionDecoder) Remaining() int                           { return d.multipart.Remaining() }
func (d *unionDecoder) HasRemaining() bool                       { return d.multipart.HasRemaining() }

// Get returns the chosen alternative's decoded value.
func (d *unionDecoder) Get() (any, error) {
	if d.HasRemaining() {
		return nil, codec.NewDecoderError("union not yet complete")
	}
	if d.err != nil {
		return nil, d.err
	}
	return d.payload.(codec.Getter).Get()
}
