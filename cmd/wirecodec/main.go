// Command wirecodec is a small demo CLI: it registers a sample
// self-referential record type with the registry, round-trips an
// in-memory value through its codec, and reports the wire size.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/thebagchi/wirecodec/codec"
	"github.com/thebagchi/wirecodec/codec/structural"
	"github.com/thebagchi/wirecodec/registry"
	"github.com/thebagchi/wirecodec/stream"
)

// Tree is a self-referential demo record: a named node with an ordered
// list of children, exercising the registry's placeholder/finalize cycle
// break for a record type that refers to itself.
type Tree struct {
	Name     string
	Children []*Tree
}

// treeType is the *Tree pointer type: record descriptors are always
// keyed on the pointer type, since Fields/Dump/Load are declared with
// pointer receivers (see registry.resolveType).
var treeType = reflect.TypeOf((*Tree)(nil))

// Fields declares Tree's wire shape: Name first, then Children as a
// slice of *Tree — the self-reference the registry's placeholder
// mechanism exists to break.
func (t *Tree) Fields() []structural.FieldDescriptor {
	return []structural.FieldDescriptor{
		{Name: "name", Type: reflect.TypeOf("")},
		{Name: "children", Type: reflect.SliceOf(treeType)},
	}
}

func (t *Tree) Dump() (map[string]any, error) {
	return map[string]any{
		"name":     t.Name,
		"children": t.Children,
	}, nil
}

func (t *Tree) Load(values map[string]any) error {
	t.Name, _ = values["name"].(string)
	if children, ok := values["children"].([]*Tree); ok {
		t.Children = children
		return nil
	}
	// decoded children arrive as []any of *Tree (the collection codec's
	// generic element representation) unless narrowed by the registry's
	// typed collection wrapper, which is what resolveType installs for
	// slice-kind descriptors.
	if raw, ok := values["children"].([]any); ok {
		out := make([]*Tree, len(raw))
		for i, v := range raw {
			out[i] = v.(*Tree)
		}
		t.Children = out
	}
	return nil
}

func main() {
	var verbose = flag.Bool("verbose", false, "enable codec trace logging")
	flag.Parse()
	codec.Verbose = *verbose

	log := logrus.NewEntry(logrus.StandardLogger())
	reg := registry.New(registry.WithLogger(log))

	c, err := reg.Codec(treeType)
	if err != nil {
		fmt.Fprintln(os.Stderr, "resolve tree type:", err)
		os.Exit(1)
	}

	value := &Tree{
		Name: "root",
		Children: []*Tree{
			{Name: "left", Children: []*Tree{{Name: "left.left"}}},
			{Name: "right"},
		},
	}

	enc, err := c.MakeEncoder(value)
	if err != nil {
		fmt.Fprintln(os.Stderr, "make encoder:", err)
		os.Exit(1)
	}
	var buf bytes.Buffer
	sink := stream.FromWriter(&buf)
	for enc.HasRemaining() {
		if _, err := enc.Encode(sink); err != nil {
			fmt.Fprintln(os.Stderr, "encode:", err)
			os.Exit(1)
		}
	}

	dec := c.MakeDecoder()
	source := stream.FromReader(bytes.NewReader(buf.Bytes()))
	for dec.HasRemaining() {
		if _, err := dec.Decode(source); err != nil {
			fmt.Fprintln(os.Stderr, "decode:", err)
			os.Exit(1)
		}
	}
	result, err := dec.(codec.Getter).Get()
	if err != nil {
		fmt.Fprintln(os.Stderr, "get:", err)
		os.Exit(1)
	}

	fmt.Printf("wire size: %d bytes\n", buf.Len())
	fmt.Printf("round-tripped: %+v\n", result)
}
