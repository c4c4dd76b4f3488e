package dispatch

import (
	"context"
	"reflect"
	"testing"
)

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry(map[string]Method{
		"a":     {},
		"b/c/d": {},
	})

	if _, ok := reg.Lookup("a"); !ok {
		t.Error("expected a to be registered")
	}
	if _, ok := reg.Lookup("b/c/d"); !ok {
		t.Error("expected composite name to be registered")
	}
	// Exact, case-sensitive match only.
	for _, name := range []string{"A", "b/c", "b/c/d/", ""} {
		if _, ok := reg.Lookup(name); ok {
			t.Errorf("expected %q to be absent", name)
		}
	}
}

func TestRegistry_CopiesDefinitions(t *testing.T) {
	defs := map[string]Method{"a": {}}
	reg := NewRegistry(defs)

	defs["later"] = Method{Action: func(context.Context, map[string]any, *Request) (any, error) { return nil, nil }}

	if _, ok := reg.Lookup("later"); ok {
		t.Error("expected registry to be unaffected by later mutation of defs")
	}
}

func TestRegistry_NamesSorted(t *testing.T) {
	reg := NewRegistry(map[string]Method{"zeta": {}, "alpha": {}, "geo/locate": {}})

	want := []string{"alpha", "geo/locate", "zeta"}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
