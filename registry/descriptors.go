package registry

import "reflect"

// TupleShape marks a descriptor as a fixed-arity heterogeneous tuple:
// resolves to a structural.Tuple, one child codec per element type in
// order.
type TupleShape struct {
	Elems []reflect.Type
}

// TupleOf builds a fixed-arity tuple descriptor.
func TupleOf(elems ...reflect.Type) *TupleShape {
	return &TupleShape{Elems: append([]reflect.Type(nil), elems...)}
}

// VariadicTupleShape marks a descriptor as a homogeneous variadic tuple:
// resolves to a Collection over a single element codec, exactly like a
// list, but the registry keeps it as a distinct descriptor kind so a
// caller can tell which origin produced a given codec if it matters to
// them.
type VariadicTupleShape struct {
	Elem reflect.Type
}

// VariadicTupleOf builds a homogeneous variadic tuple descriptor.
func VariadicTupleOf(elem reflect.Type) *VariadicTupleShape {
	return &VariadicTupleShape{Elem: elem}
}

// UnionShape marks a descriptor as a sum type over the given
// alternatives. Each alternative resolves independently; the registry
// builds a TypeMatcher for each, in order, against structural.Union.
type UnionShape struct {
	Alts []reflect.Type
}

// UnionOf builds a union descriptor over alts in declaration order.
func UnionOf(alts ...reflect.Type) *UnionShape {
	return &UnionShape{Alts: append([]reflect.Type(nil), alts...)}
}

// Enumerable is the capability an enumeration type exposes: its
// declared members in wire order, implemented as a method on the enum's
// underlying named type. Go has no native enum kind, so a type opts into
// enum resolution by implementing this interface.
type Enumerable interface {
	Members() []any
}
