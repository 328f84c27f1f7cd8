package leakcheck

import (
	"testing"

	"pycheck/internal/pytype"
)

func TestMutatingAccessTable(t *testing.T) {
	cases := []struct {
		receiver pytype.Type
		name     string
		want     bool
	}{
		{pytype.ListOf(), "append", true},
		{pytype.ListOf(), "insert", true},
		{pytype.ListOf(), "extend", true},
		{pytype.ListOf(), "index", false},
		{pytype.ListOf(), "add", false},
		{pytype.DictOf(), "setdefault", true},
		{pytype.DictOf(), "update", true},
		{pytype.DictOf(), "get", false},
		{pytype.SetOf(), "add", true},
		{pytype.SetOf(), "update", true},
		{pytype.SetOf(), "intersection_update", true},
		{pytype.SetOf(), "difference_update", true},
		{pytype.SetOf(), "symmetric_difference_update", true},
		{pytype.SetOf(), "union", false},
		// dunder writes mutate regardless of receiver type
		{pytype.PrimitiveOf("int"), "__setitem__", true},
		{pytype.InstanceOf("C"), "__setattr__", true},
		// unresolved receiver falls back to the union of all tracked names
		{pytype.AnyType, "append", true},
		{pytype.AnyType, "setdefault", true},
		{pytype.AnyType, "symmetric_difference_update", true},
		{pytype.AnyType, "read", false},
		// non-container known types never mutate through named methods
		{pytype.PrimitiveOf("str"), "update", false},
		{pytype.InstanceOf("C"), "append", false},
	}
	for _, tc := range cases {
		got := IsMutatingAccess(tc.receiver, tc.name)
		if got != tc.want {
			t.Errorf("IsMutatingAccess(%v, %q) = %v, want %v", tc.receiver, tc.name, got, tc.want)
		}
		// deterministic on repeated calls
		if IsMutatingAccess(tc.receiver, tc.name) != got {
			t.Errorf("IsMutatingAccess(%v, %q) changed between calls", tc.receiver, tc.name)
		}
	}
}
