package registry_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thebagchi/wirecodec/registry"
)

func TestIdentityEvaluatorPassesReflectTypeThrough(t *testing.T) {
	e := registry.IdentityEvaluator{}
	in := reflect.TypeOf(int64(0))
	out, err := e.Eval(in)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestIdentityEvaluatorNormalizesBareValue(t *testing.T) {
	e := registry.IdentityEvaluator{}
	out, err := e.Eval("a string value")
	require.NoError(t, err)
	require.Equal(t, reflect.TypeOf(""), out)
}

func TestIdentityEvaluatorRejectsNil(t *testing.T) {
	e := registry.IdentityEvaluator{}
	_, err := e.Eval(nil)
	require.Error(t, err)
}

func TestIdentityEvaluatorPassesShapesThrough(t *testing.T) {
	e := registry.IdentityEvaluator{}
	shape := registry.TupleOf(reflect.TypeOf(int64(0)))
	out, err := e.Eval(shape)
	require.NoError(t, err)
	require.Same(t, shape, out)
}

func TestNamedEvaluatorResolvesBoundForwardReference(t *testing.T) {
	e := registry.NewNamedEvaluator(registry.IdentityEvaluator{})
	nodeType := reflect.TypeOf(int64(0))
	e.Bind("Node", nodeType)

	out, err := e.Eval("Node")
	require.NoError(t, err)
	require.Equal(t, nodeType, out)
}

func TestNamedEvaluatorErrorsOnUnboundForwardReference(t *testing.T) {
	e := registry.NewNamedEvaluator(registry.IdentityEvaluator{})
	_, err := e.Eval("Missing")
	require.Error(t, err)
}

func TestNamedEvaluatorDefersNonStringsToNext(t *testing.T) {
	e := registry.NewNamedEvaluator(registry.IdentityEvaluator{})
	in := reflect.TypeOf(false)
	out, err := e.Eval(in)
	require.NoError(t, err)
	require.Equal(t, in, out)
}
