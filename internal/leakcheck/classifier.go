// Package leakcheck implements the global-leak analysis: a forward walk over
// a function's CFG that tracks which globals each sub-expression exposes and
// flags the statements that mutate them or let them escape.
package leakcheck

import "pycheck/internal/pytype"

// mutatingMethods is the single source of truth for which method names
// mutate which container kind. Widening this table is how new mutation
// patterns are added.
var mutatingMethods = map[pytype.Kind]map[string]bool{
	pytype.List: {
		"append": true,
		"insert": true,
		"extend": true,
	},
	pytype.Dict: {
		"setdefault": true,
		"update":     true,
	},
	pytype.Set: {
		"add":                         true,
		"update":                      true,
		"intersection_update":         true,
		"difference_update":           true,
		"symmetric_difference_update": true,
	},
}

// anyMutating is the union over all containers, used when the receiver's
// type is unresolved and mutation cannot be ruled out.
var anyMutating = func() map[string]bool {
	out := make(map[string]bool)
	for _, methods := range mutatingMethods {
		for name := range methods {
			out[name] = true
		}
	}
	return out
}()

// IsMutatingAccess reports whether accessing name on a receiver of the given
// resolved type is a known mutating operation. Total and deterministic, no
// side effects.
func IsMutatingAccess(receiver pytype.Type, name string) bool {
	if name == "__setitem__" || name == "__setattr__" {
		return true
	}
	if methods, ok := mutatingMethods[receiver.Kind]; ok {
		return methods[name]
	}
	if receiver.IsAny() {
		return anyMutating[name]
	}
	return false
}
