package diag

import (
	"fmt"

	"pycheck/internal/ast"
	"pycheck/internal/pytype"
)

// Type mismatch and call shape kinds.

// IncompatibleVariableType reports assignment of a wrong-typed value.
type IncompatibleVariableType struct {
	Name     ast.Reference
	Expected pytype.Type
	Actual   pytype.Type
}

func (IncompatibleVariableType) errorKind() {}
func (IncompatibleVariableType) Code() Code { return IncompatibleVariableTypeCode }
func (k IncompatibleVariableType) Description() string {
	return fmt.Sprintf("Incompatible variable type [%d]: `%s` is declared to have type `%s` but is used as type `%s`.",
		uint16(k.Code()), k.Name, k.Expected, k.Actual)
}
func (k IncompatibleVariableType) Concise() string {
	return fmt.Sprintf("`%s`: expected `%s`, got `%s`", k.Name, k.Expected, k.Actual)
}

// IncompatibleParameterType reports a wrong-typed call argument.
type IncompatibleParameterType struct {
	Name     string
	Position int
	Callee   ast.Reference
	Expected pytype.Type
	Actual   pytype.Type
}

func (IncompatibleParameterType) errorKind() {}
func (IncompatibleParameterType) Code() Code { return IncompatibleParameterTypeCode }
func (k IncompatibleParameterType) Description() string {
	return fmt.Sprintf("Incompatible parameter type [%d]: in call `%s`, for argument %d (`%s`), expected `%s` but got `%s`.",
		uint16(k.Code()), k.Callee, k.Position, k.Name, k.Expected, k.Actual)
}
func (k IncompatibleParameterType) Concise() string {
	return fmt.Sprintf("call `%s` argument %d: expected `%s`, got `%s`", k.Callee, k.Position, k.Expected, k.Actual)
}

// IncompatibleReturnType reports a return whose value type mismatches the
// declared return annotation.
type IncompatibleReturnType struct {
	Expected pytype.Type
	Actual   pytype.Type
}

func (IncompatibleReturnType) errorKind() {}
func (IncompatibleReturnType) Code() Code { return IncompatibleReturnTypeCode }
func (k IncompatibleReturnType) Description() string {
	return fmt.Sprintf("Incompatible return type [%d]: expected `%s` but got `%s`.",
		uint16(k.Code()), k.Expected, k.Actual)
}
func (k IncompatibleReturnType) Concise() string {
	return fmt.Sprintf("return: expected `%s`, got `%s`", k.Expected, k.Actual)
}

// IncompatibleAttributeType reports a write of a wrong-typed value into a
// declared attribute.
type IncompatibleAttributeType struct {
	Parent   ast.Reference
	Name     string
	Expected pytype.Type
	Actual   pytype.Type
}

func (IncompatibleAttributeType) errorKind() {}
func (IncompatibleAttributeType) Code() Code { return IncompatibleAttributeTypeCode }
func (k IncompatibleAttributeType) Description() string {
	return fmt.Sprintf("Incompatible attribute type [%d]: attribute `%s` of `%s` has type `%s` but is assigned type `%s`.",
		uint16(k.Code()), k.Name, k.Parent, k.Expected, k.Actual)
}
func (k IncompatibleAttributeType) Concise() string {
	return fmt.Sprintf("attribute `%s.%s`: expected `%s`, got `%s`", k.Parent, k.Name, k.Expected, k.Actual)
}

// InvalidArgument reports an argument invalid for reasons beyond its type
// (e.g. unpacking a non-iterable).
type InvalidArgument struct {
	Callee ast.Reference
	Actual pytype.Type
}

func (InvalidArgument) errorKind() {}
func (InvalidArgument) Code() Code { return InvalidArgumentCode }
func (k InvalidArgument) Description() string {
	return fmt.Sprintf("Invalid argument [%d]: `%s` cannot accept a value of type `%s` here.",
		uint16(k.Code()), k.Callee, k.Actual)
}
func (k InvalidArgument) Concise() string {
	return fmt.Sprintf("invalid argument of type `%s` to `%s`", k.Actual, k.Callee)
}

// UnsupportedOperand reports an operator applied to operand types that do
// not support it.
type UnsupportedOperand struct {
	Operator string
	Left     pytype.Type
	Right    pytype.Type
}

func (UnsupportedOperand) errorKind() {}
func (UnsupportedOperand) Code() Code { return UnsupportedOperandCode }
func (k UnsupportedOperand) Description() string {
	return fmt.Sprintf("Unsupported operand [%d]: `%s` is not supported for operand types `%s` and `%s`.",
		uint16(k.Code()), k.Operator, k.Left, k.Right)
}
func (k UnsupportedOperand) Concise() string {
	return fmt.Sprintf("unsupported operand `%s` for `%s` and `%s`", k.Operator, k.Left, k.Right)
}

// RedundantCast reports a cast to the value's existing type.
type RedundantCast struct {
	Type pytype.Type
}

func (RedundantCast) errorKind() {}
func (RedundantCast) Code() Code { return RedundantCastCode }
func (k RedundantCast) Description() string {
	return fmt.Sprintf("Redundant cast [%d]: the value already has type `%s`.", uint16(k.Code()), k.Type)
}
func (k RedundantCast) Concise() string { return fmt.Sprintf("redundant cast to `%s`", k.Type) }

// InvalidTypeVariable reports misuse of a type variable outside a generic
// context.
type InvalidTypeVariable struct {
	Name string
}

func (InvalidTypeVariable) errorKind() {}
func (InvalidTypeVariable) Code() Code { return InvalidTypeVariableCode }
func (k InvalidTypeVariable) Description() string {
	return fmt.Sprintf("Invalid type variable [%d]: `%s` can only be used in a generic context.",
		uint16(k.Code()), k.Name)
}
func (k InvalidTypeVariable) Concise() string { return fmt.Sprintf("invalid type variable `%s`", k.Name) }

// IncompatibleAwaitable reports awaiting a non-awaitable value.
type IncompatibleAwaitable struct {
	Actual pytype.Type
}

func (IncompatibleAwaitable) errorKind() {}
func (IncompatibleAwaitable) Code() Code { return IncompatibleAwaitableCode }
func (k IncompatibleAwaitable) Description() string {
	return fmt.Sprintf("Incompatible awaitable type [%d]: expected an awaitable but got `%s`.",
		uint16(k.Code()), k.Actual)
}
func (k IncompatibleAwaitable) Concise() string {
	return fmt.Sprintf("`%s` is not awaitable", k.Actual)
}

// UninitializedAttribute reports a declared attribute never initialized.
type UninitializedAttribute struct {
	Parent ast.Reference
	Name   string
	Type   pytype.Type
}

func (UninitializedAttribute) errorKind() {}
func (UninitializedAttribute) Code() Code { return UninitializedAttributeCode }
func (k UninitializedAttribute) Description() string {
	return fmt.Sprintf("Uninitialized attribute [%d]: attribute `%s` of `%s` is declared as `%s` but is never initialized.",
		uint16(k.Code()), k.Name, k.Parent, k.Type)
}
func (k UninitializedAttribute) Concise() string {
	return fmt.Sprintf("uninitialized attribute `%s.%s`", k.Parent, k.Name)
}

// TooManyArguments reports a call with surplus positional arguments.
type TooManyArguments struct {
	Callee   ast.Reference
	Expected int
	Got      int
}

func (TooManyArguments) errorKind() {}
func (TooManyArguments) Code() Code { return TooManyArgumentsCode }
func (k TooManyArguments) Description() string {
	return fmt.Sprintf("Too many arguments [%d]: call `%s` expects %d positional arguments, %d were provided.",
		uint16(k.Code()), k.Callee, k.Expected, k.Got)
}
func (k TooManyArguments) Concise() string {
	return fmt.Sprintf("too many arguments to `%s` (%d > %d)", k.Callee, k.Got, k.Expected)
}

// MissingArgument reports a call missing a required argument.
type MissingArgument struct {
	Callee ast.Reference
	Name   string
}

func (MissingArgument) errorKind() {}
func (MissingArgument) Code() Code { return MissingArgumentCode }
func (k MissingArgument) Description() string {
	return fmt.Sprintf("Missing argument [%d]: call `%s` expects argument `%s`.",
		uint16(k.Code()), k.Callee, k.Name)
}
func (k MissingArgument) Concise() string {
	return fmt.Sprintf("missing argument `%s` to `%s`", k.Name, k.Callee)
}

// UnexpectedKeyword reports a keyword argument the callee does not accept.
type UnexpectedKeyword struct {
	Callee ast.Reference
	Name   string
}

func (UnexpectedKeyword) errorKind() {}
func (UnexpectedKeyword) Code() Code { return UnexpectedKeywordCode }
func (k UnexpectedKeyword) Description() string {
	return fmt.Sprintf("Unexpected keyword [%d]: call `%s` got an unexpected keyword argument `%s`.",
		uint16(k.Code()), k.Callee, k.Name)
}
func (k UnexpectedKeyword) Concise() string {
	return fmt.Sprintf("unexpected keyword `%s` to `%s`", k.Name, k.Callee)
}

// NotCallable reports a call on a non-callable value.
type NotCallable struct {
	Type pytype.Type
}

func (NotCallable) errorKind() {}
func (NotCallable) Code() Code { return NotCallableCode }
func (k NotCallable) Description() string {
	return fmt.Sprintf("Call error [%d]: `%s` is not a function.", uint16(k.Code()), k.Type)
}
func (k NotCallable) Concise() string { return fmt.Sprintf("`%s` is not callable", k.Type) }

// InvalidClassInstantiation reports instantiating something that is not a
// concrete class.
type InvalidClassInstantiation struct {
	Class ast.Reference
}

func (InvalidClassInstantiation) errorKind() {}
func (InvalidClassInstantiation) Code() Code { return InvalidClassInstantiationCode }
func (k InvalidClassInstantiation) Description() string {
	return fmt.Sprintf("Invalid class instantiation [%d]: `%s` cannot be instantiated.",
		uint16(k.Code()), k.Class)
}
func (k InvalidClassInstantiation) Concise() string {
	return fmt.Sprintf("invalid instantiation of `%s`", k.Class)
}

// Missing annotation kinds (strict mode).

// MissingGlobalAnnotation reports a module-level binding without an
// annotation.
type MissingGlobalAnnotation struct {
	Name     ast.Reference
	Inferred pytype.Type
}

func (MissingGlobalAnnotation) errorKind() {}
func (MissingGlobalAnnotation) Code() Code { return MissingGlobalAnnotationCode }
func (k MissingGlobalAnnotation) Description() string {
	return fmt.Sprintf("Missing global annotation [%d]: `%s` has no type specified (inferred `%s`).",
		uint16(k.Code()), k.Name, k.Inferred)
}
func (k MissingGlobalAnnotation) Concise() string {
	return fmt.Sprintf("global `%s` lacks an annotation", k.Name)
}

// MissingParameterAnnotation reports an unannotated function parameter.
type MissingParameterAnnotation struct {
	Name string
}

func (MissingParameterAnnotation) errorKind() {}
func (MissingParameterAnnotation) Code() Code { return MissingParameterAnnotationCode }
func (k MissingParameterAnnotation) Description() string {
	return fmt.Sprintf("Missing parameter annotation [%d]: parameter `%s` has no type specified.",
		uint16(k.Code()), k.Name)
}
func (k MissingParameterAnnotation) Concise() string {
	return fmt.Sprintf("parameter `%s` lacks an annotation", k.Name)
}

// MissingReturnAnnotation reports a function without a return annotation.
type MissingReturnAnnotation struct {
	Definition ast.Reference
}

func (MissingReturnAnnotation) errorKind() {}
func (MissingReturnAnnotation) Code() Code { return MissingReturnAnnotationCode }
func (k MissingReturnAnnotation) Description() string {
	return fmt.Sprintf("Missing return annotation [%d]: `%s` has no return type specified.",
		uint16(k.Code()), k.Definition)
}
func (k MissingReturnAnnotation) Concise() string {
	return fmt.Sprintf("`%s` lacks a return annotation", k.Definition)
}

// MissingAttributeAnnotation reports an attribute assigned in a class body
// without an annotation.
type MissingAttributeAnnotation struct {
	Parent ast.Reference
	Name   string
}

func (MissingAttributeAnnotation) errorKind() {}
func (MissingAttributeAnnotation) Code() Code { return MissingAttributeAnnotationCode }
func (k MissingAttributeAnnotation) Description() string {
	return fmt.Sprintf("Missing attribute annotation [%d]: attribute `%s` of `%s` has no type specified.",
		uint16(k.Code()), k.Name, k.Parent)
}
func (k MissingAttributeAnnotation) Concise() string {
	return fmt.Sprintf("attribute `%s.%s` lacks an annotation", k.Parent, k.Name)
}

// ProhibitedAny reports an explicit Any where strict mode forbids one.
type ProhibitedAny struct {
	Name string
}

func (ProhibitedAny) errorKind() {}
func (ProhibitedAny) Code() Code { return ProhibitedAnyCode }
func (k ProhibitedAny) Description() string {
	return fmt.Sprintf("Prohibited any [%d]: `%s` is annotated as `typing.Any`.", uint16(k.Code()), k.Name)
}
func (k ProhibitedAny) Concise() string { return fmt.Sprintf("`%s` annotated as Any", k.Name) }
