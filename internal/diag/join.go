package diag

import "pycheck/internal/pytype"

// Join merges two diagnostics produced at the same span with the same
// code, as happens when several dataflow paths reach one statement. For
// type mismatches the actual types are widened toward Any when they
// disagree; every other kind keeps the left operand. Joining a
// diagnostic with itself returns it unchanged.
func Join(a, b Diagnostic) Diagnostic {
	if a.Kind == nil {
		return b
	}
	if b.Kind == nil || a.Code() != b.Code() || a.Primary != b.Primary {
		return a
	}
	a.Kind = joinKinds(a.Kind, b.Kind)
	if b.Severity > a.Severity {
		a.Severity = b.Severity
	}
	return a
}

func joinKinds(a, b Kind) Kind {
	switch ka := a.(type) {
	case IncompatibleVariableType:
		kb, ok := b.(IncompatibleVariableType)
		if ok && ka.Name.Equal(kb.Name) && ka.Expected == kb.Expected {
			ka.Actual = widen(ka.Actual, kb.Actual)
			return ka
		}
	case IncompatibleParameterType:
		kb, ok := b.(IncompatibleParameterType)
		if ok && ka.Name == kb.Name && ka.Expected == kb.Expected {
			ka.Actual = widen(ka.Actual, kb.Actual)
			return ka
		}
	case IncompatibleReturnType:
		kb, ok := b.(IncompatibleReturnType)
		if ok && ka.Expected == kb.Expected {
			ka.Actual = widen(ka.Actual, kb.Actual)
			return ka
		}
	case IncompatibleAttributeType:
		kb, ok := b.(IncompatibleAttributeType)
		if ok && ka.Name == kb.Name && ka.Expected == kb.Expected {
			ka.Actual = widen(ka.Actual, kb.Actual)
			return ka
		}
	}
	return a
}

// widen returns the common type of two observations: the type itself when
// they agree, Any otherwise.
func widen(a, b pytype.Type) pytype.Type {
	if a == b {
		return a
	}
	return pytype.AnyType
}
