package registry

import (
	"reflect"

	"github.com/pkg/errors"
)

// Evaluator normalizes a possibly-unresolved descriptor (a forward
// reference, a bare Go value, or an already-normalized shape) into the
// concrete descriptor the registry should key its lookups on. The
// registry calls it on every descriptor before consulting builtins or
// cache.
//
// wirecodec ships only a minimal default; resolving named types declared
// elsewhere, possibly not yet loaded, is out of scope for this module
// beyond the NamedEvaluator convenience below.
type Evaluator interface {
	Eval(descriptor any) (any, error)
}

// IdentityEvaluator accepts reflect.Type values and the registry's own
// shape markers (TupleShape, VariadicTupleShape, UnionShape) unchanged,
// and normalizes a bare Go value to its reflect.Type. It is the default
// used by New().
type IdentityEvaluator struct{}

// Eval normalizes descriptor.
func (IdentityEvaluator) Eval(descriptor any) (any, error) {
	switch d := descriptor.(type) {
	case reflect.Type:
		return d, nil
	case *TupleShape, *VariadicTupleShape, *UnionShape:
		return d, nil
	case nil:
		return nil, errors.New("cannot evaluate a nil descriptor")
	default:
		return reflect.TypeOf(d), nil
	}
}

// NamedEvaluator additionally resolves string forward references against
// a registered name table: a field can be declared as "Node" before the
// type Node exists, as long as the name is registered before resolution
// runs.
type NamedEvaluator struct {
	names map[string]reflect.Type
	next  Evaluator
}

// NewNamedEvaluator builds a NamedEvaluator that falls back to next
// (typically IdentityEvaluator{}) for anything that isn't a registered
// name.
func NewNamedEvaluator(next Evaluator) *NamedEvaluator {
	return &NamedEvaluator{names: map[string]reflect.Type{}, next: next}
}

// Bind registers name so it evaluates to t.
func (e *NamedEvaluator) Bind(name string, t reflect.Type) {
	e.names[name] = t
}

// Eval resolves a string forward reference, otherwise defers to next.
func (e *NamedEvaluator) Eval(descriptor any) (any, error) {
	if name, ok := descriptor.(string); ok {
		t, found := e.names[name]
		if !found {
			return nil, errors.Errorf("unresolved forward reference %q", name)
		}
		return t, nil
	}
	return e.next.Eval(descriptor)
}
