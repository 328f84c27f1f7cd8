package diag

import (
	"fmt"

	"pycheck/internal/ast"
	"pycheck/internal/pytype"
)

// TypedDict kinds.

// TypedDictNonLiteralAccess reports indexing a TypedDict with a key the
// checker cannot resolve to a string literal.
type TypedDictNonLiteralAccess struct {
	Dict    ast.Reference
	KeyType pytype.Type
}

func (TypedDictNonLiteralAccess) errorKind() {}
func (TypedDictNonLiteralAccess) Code() Code { return TypedDictNonLiteralAccessCode }
func (k TypedDictNonLiteralAccess) Description() string {
	return fmt.Sprintf("Invalid TypedDict operation [%d]: TypedDict `%s` must be indexed with a string literal, not a value of type `%s`.",
		uint16(k.Code()), k.Dict, k.KeyType)
}
func (k TypedDictNonLiteralAccess) Concise() string {
	return fmt.Sprintf("non-literal access on TypedDict `%s`", k.Dict)
}

// TypedDictUnknownKey reports a key the TypedDict does not declare.
type TypedDictUnknownKey struct {
	Dict ast.Reference
	Key  string
}

func (TypedDictUnknownKey) errorKind() {}
func (TypedDictUnknownKey) Code() Code { return TypedDictUnknownKeyCode }
func (k TypedDictUnknownKey) Description() string {
	return fmt.Sprintf("Invalid TypedDict operation [%d]: TypedDict `%s` has no key `%s`.",
		uint16(k.Code()), k.Dict, k.Key)
}
func (k TypedDictUnknownKey) Concise() string {
	return fmt.Sprintf("unknown TypedDict key `%s`", k.Key)
}

// TypedDictMissingKey reports a required key absent from a constructor
// call or literal.
type TypedDictMissingKey struct {
	Dict ast.Reference
	Key  string
}

func (TypedDictMissingKey) errorKind() {}
func (TypedDictMissingKey) Code() Code { return TypedDictMissingKeyCode }
func (k TypedDictMissingKey) Description() string {
	return fmt.Sprintf("Invalid TypedDict operation [%d]: required key `%s` of TypedDict `%s` is missing.",
		uint16(k.Code()), k.Key, k.Dict)
}
func (k TypedDictMissingKey) Concise() string {
	return fmt.Sprintf("missing TypedDict key `%s`", k.Key)
}

// TypedDictInvalidOperation reports an operation TypedDicts do not support,
// such as deleting a required key.
type TypedDictInvalidOperation struct {
	Dict      ast.Reference
	Operation string
}

func (TypedDictInvalidOperation) errorKind() {}
func (TypedDictInvalidOperation) Code() Code { return TypedDictInvalidOperationCode }
func (k TypedDictInvalidOperation) Description() string {
	return fmt.Sprintf("Invalid TypedDict operation [%d]: `%s` is not supported on TypedDict `%s`.",
		uint16(k.Code()), k.Operation, k.Dict)
}
func (k TypedDictInvalidOperation) Concise() string {
	return fmt.Sprintf("unsupported operation `%s` on TypedDict `%s`", k.Operation, k.Dict)
}

// TypedDictInitialization reports constructing a TypedDict from a value
// that is not a dict literal or a compatible TypedDict.
type TypedDictInitialization struct {
	Dict   ast.Reference
	Actual pytype.Type
}

func (TypedDictInitialization) errorKind() {}
func (TypedDictInitialization) Code() Code { return TypedDictInitializationCode }
func (k TypedDictInitialization) Description() string {
	return fmt.Sprintf("Invalid TypedDict initialization [%d]: cannot initialize TypedDict `%s` from a value of type `%s`.",
		uint16(k.Code()), k.Dict, k.Actual)
}
func (k TypedDictInitialization) Concise() string {
	return fmt.Sprintf("invalid initialization of TypedDict `%s`", k.Dict)
}

// TypedDictReadOnlyMutation reports writing a key declared ReadOnly.
type TypedDictReadOnlyMutation struct {
	Dict ast.Reference
	Key  string
}

func (TypedDictReadOnlyMutation) errorKind() {}
func (TypedDictReadOnlyMutation) Code() Code { return TypedDictReadOnlyMutationCode }
func (k TypedDictReadOnlyMutation) Description() string {
	return fmt.Sprintf("Invalid TypedDict operation [%d]: key `%s` of TypedDict `%s` is read-only.",
		uint16(k.Code()), k.Key, k.Dict)
}
func (k TypedDictReadOnlyMutation) Concise() string {
	return fmt.Sprintf("mutation of read-only TypedDict key `%s`", k.Key)
}

// TypedDictInconsistentTotals reports a TypedDict subclass changing key
// requiredness in a way its base forbids.
type TypedDictInconsistentTotals struct {
	Dict ast.Reference
	Base ast.Reference
	Key  string
}

func (TypedDictInconsistentTotals) errorKind() {}
func (TypedDictInconsistentTotals) Code() Code { return TypedDictInconsistentTotalsCode }
func (k TypedDictInconsistentTotals) Description() string {
	return fmt.Sprintf("Invalid TypedDict definition [%d]: key `%s` of `%s` changes requiredness inherited from `%s`.",
		uint16(k.Code()), k.Key, k.Dict, k.Base)
}
func (k TypedDictInconsistentTotals) Concise() string {
	return fmt.Sprintf("inconsistent requiredness of TypedDict key `%s`", k.Key)
}
