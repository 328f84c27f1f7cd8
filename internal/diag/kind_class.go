package diag

import (
	"fmt"
	"strings"

	"pycheck/internal/ast"
	"pycheck/internal/pytype"
)

// Class shape kinds: inheritance, overrides, decoration.

// InvalidInheritance reports a class deriving from something it must not.
// The concrete reason lives in Detail.
type InvalidInheritance struct {
	Class  ast.Reference
	Detail InheritanceDetail
}

func (InvalidInheritance) errorKind() {}
func (InvalidInheritance) Code() Code { return InvalidInheritanceCode }
func (k InvalidInheritance) Description() string {
	return fmt.Sprintf("Invalid inheritance [%d]: class `%s` %s.", uint16(k.Code()), k.Class, k.Detail.inheritanceMessage())
}
func (k InvalidInheritance) Concise() string {
	return fmt.Sprintf("invalid inheritance: `%s` %s", k.Class, k.Detail.inheritanceMessage())
}

// InheritanceDetail is the closed set of invalid-inheritance reasons.
type InheritanceDetail interface {
	inheritanceMessage() string
}

// InheritsFromFinal reports subclassing a class marked final.
type InheritsFromFinal struct {
	Base ast.Reference
}

func (k InheritsFromFinal) inheritanceMessage() string {
	return fmt.Sprintf("extends final class `%s`", k.Base)
}

// InheritsFromNonClass reports a base expression that is not a class.
type InheritsFromNonClass struct {
	Base   string
	Actual pytype.Type
}

func (k InheritsFromNonClass) inheritanceMessage() string {
	return fmt.Sprintf("extends `%s`, which is of type `%s` and not a class", k.Base, k.Actual)
}

// InheritsFromTypedDict reports mixing a TypedDict base with regular bases.
type InheritsFromTypedDict struct {
	Base ast.Reference
}

func (k InheritsFromTypedDict) inheritanceMessage() string {
	return fmt.Sprintf("mixes TypedDict base `%s` with non-TypedDict bases", k.Base)
}

// OverrideReason enumerates why an override is invalid.
type OverrideReason uint8

const (
	// OverrideIncompatibleSignature marks a parameter/return shape mismatch.
	OverrideIncompatibleSignature OverrideReason = iota
	// OverrideFinalMethod marks overriding a method marked final.
	OverrideFinalMethod
	// OverrideStaticMismatch marks a static/instance method mismatch.
	OverrideStaticMismatch
)

func (r OverrideReason) String() string {
	switch r {
	case OverrideFinalMethod:
		return "overrides a final method"
	case OverrideStaticMismatch:
		return "changes the method's static/instance nature"
	default:
		return "has an incompatible signature"
	}
}

// InvalidOverride reports a subclass method incorrectly overriding a parent
// method.
type InvalidOverride struct {
	Parent ast.Reference
	Name   string
	Reason OverrideReason
}

func (InvalidOverride) errorKind() {}
func (InvalidOverride) Code() Code { return InvalidOverrideCode }
func (k InvalidOverride) Description() string {
	return fmt.Sprintf("Invalid override [%d]: `%s` %s inherited from `%s`.",
		uint16(k.Code()), k.Name, k.Reason, k.Parent)
}
func (k InvalidOverride) Concise() string {
	return fmt.Sprintf("invalid override of `%s.%s`", k.Parent, k.Name)
}

// InvalidDecoration reports a decorator the checker cannot apply.
type InvalidDecoration struct {
	Decorator ast.Reference
	Reason    string
}

func (InvalidDecoration) errorKind() {}
func (InvalidDecoration) Code() Code { return InvalidDecorationCode }
func (k InvalidDecoration) Description() string {
	return fmt.Sprintf("Invalid decoration [%d]: `@%s` %s.", uint16(k.Code()), k.Decorator, k.Reason)
}
func (k InvalidDecoration) Concise() string {
	return fmt.Sprintf("invalid decoration `@%s`", k.Decorator)
}

// AbstractClassInstantiation reports instantiating a class with unimplemented
// abstract methods.
type AbstractClassInstantiation struct {
	Class   ast.Reference
	Methods []string
}

func (AbstractClassInstantiation) errorKind() {}
func (AbstractClassInstantiation) Code() Code { return AbstractClassInstantiationCode }
func (k AbstractClassInstantiation) Description() string {
	return fmt.Sprintf("Invalid class instantiation [%d]: `%s` is abstract and cannot be instantiated (unimplemented: %s).",
		uint16(k.Code()), k.Class, strings.Join(k.Methods, ", "))
}
func (k AbstractClassInstantiation) Concise() string {
	return fmt.Sprintf("instantiation of abstract class `%s`", k.Class)
}

// InconsistentMRO reports an unlinearizable method resolution order.
type InconsistentMRO struct {
	Class ast.Reference
}

func (InconsistentMRO) errorKind() {}
func (InconsistentMRO) Code() Code { return InconsistentMROCode }
func (k InconsistentMRO) Description() string {
	return fmt.Sprintf("Inconsistent method resolution order [%d]: cannot linearize bases of `%s`.",
		uint16(k.Code()), k.Class)
}
func (k InconsistentMRO) Concise() string {
	return fmt.Sprintf("inconsistent MRO for `%s`", k.Class)
}

// InvalidMethodSignature reports a method whose first parameter is malformed
// (e.g. missing self).
type InvalidMethodSignature struct {
	Parent ast.Reference
	Name   string
}

func (InvalidMethodSignature) errorKind() {}
func (InvalidMethodSignature) Code() Code { return InvalidMethodSignatureCode }
func (k InvalidMethodSignature) Description() string {
	return fmt.Sprintf("Invalid method signature [%d]: method `%s` of `%s` must take `self` as its first parameter.",
		uint16(k.Code()), k.Name, k.Parent)
}
func (k InvalidMethodSignature) Concise() string {
	return fmt.Sprintf("invalid signature of `%s.%s`", k.Parent, k.Name)
}

// DuplicateClassAttribute reports two definitions of one attribute in a
// class body.
type DuplicateClassAttribute struct {
	Parent ast.Reference
	Name   string
}

func (DuplicateClassAttribute) errorKind() {}
func (DuplicateClassAttribute) Code() Code { return DuplicateClassAttributeCode }
func (k DuplicateClassAttribute) Description() string {
	return fmt.Sprintf("Duplicate attribute [%d]: class `%s` defines attribute `%s` more than once.",
		uint16(k.Code()), k.Parent, k.Name)
}
func (k DuplicateClassAttribute) Concise() string {
	return fmt.Sprintf("duplicate attribute `%s.%s`", k.Parent, k.Name)
}

// FinalAttributeAssignment reports a write to an attribute marked Final.
type FinalAttributeAssignment struct {
	Parent ast.Reference
	Name   string
}

func (FinalAttributeAssignment) errorKind() {}
func (FinalAttributeAssignment) Code() Code { return FinalAttributeAssignmentCode }
func (k FinalAttributeAssignment) Description() string {
	return fmt.Sprintf("Invalid assignment [%d]: attribute `%s` of `%s` is declared Final and cannot be reassigned.",
		uint16(k.Code()), k.Name, k.Parent)
}
func (k FinalAttributeAssignment) Concise() string {
	return fmt.Sprintf("assignment to final attribute `%s.%s`", k.Parent, k.Name)
}

// InvalidStaticMethodReceiver reports a staticmethod that names self/cls.
type InvalidStaticMethodReceiver struct {
	Parent ast.Reference
	Name   string
}

func (InvalidStaticMethodReceiver) errorKind() {}
func (InvalidStaticMethodReceiver) Code() Code { return InvalidStaticMethodReceiverCode }
func (k InvalidStaticMethodReceiver) Description() string {
	return fmt.Sprintf("Invalid static method [%d]: static method `%s` of `%s` must not take a receiver parameter.",
		uint16(k.Code()), k.Name, k.Parent)
}
func (k InvalidStaticMethodReceiver) Concise() string {
	return fmt.Sprintf("static method `%s.%s` takes a receiver", k.Parent, k.Name)
}

// MissingOverrideDecorator reports an override without @override where the
// project requires one.
type MissingOverrideDecorator struct {
	Parent ast.Reference
	Name   string
}

func (MissingOverrideDecorator) errorKind() {}
func (MissingOverrideDecorator) Code() Code { return MissingOverrideDecoratorCode }
func (k MissingOverrideDecorator) Description() string {
	return fmt.Sprintf("Missing override decorator [%d]: `%s` overrides `%s` but is not decorated with `@override`.",
		uint16(k.Code()), k.Name, k.Parent)
}
func (k MissingOverrideDecorator) Concise() string {
	return fmt.Sprintf("`%s` overrides `%s` without @override", k.Name, k.Parent)
}

// NonOverridingOverride reports @override on a method that overrides
// nothing.
type NonOverridingOverride struct {
	Name string
}

func (NonOverridingOverride) errorKind() {}
func (NonOverridingOverride) Code() Code { return NonOverridingOverrideCode }
func (k NonOverridingOverride) Description() string {
	return fmt.Sprintf("Invalid override [%d]: `%s` is decorated with `@override` but overrides nothing.",
		uint16(k.Code()), k.Name)
}
func (k NonOverridingOverride) Concise() string {
	return fmt.Sprintf("`%s` overrides nothing", k.Name)
}

// InvalidMetaclass reports a metaclass that is not a subclass of type.
type InvalidMetaclass struct {
	Class     ast.Reference
	Metaclass ast.Reference
}

func (InvalidMetaclass) errorKind() {}
func (InvalidMetaclass) Code() Code { return InvalidMetaclassCode }
func (k InvalidMetaclass) Description() string {
	return fmt.Sprintf("Invalid metaclass [%d]: metaclass `%s` of `%s` is not a subclass of `type`.",
		uint16(k.Code()), k.Metaclass, k.Class)
}
func (k InvalidMetaclass) Concise() string {
	return fmt.Sprintf("invalid metaclass `%s`", k.Metaclass)
}

// ProtocolImplementationGap reports a class claiming a protocol it does not
// implement.
type ProtocolImplementationGap struct {
	Class    ast.Reference
	Protocol ast.Reference
	Missing  []string
}

func (ProtocolImplementationGap) errorKind() {}
func (ProtocolImplementationGap) Code() Code { return ProtocolImplementationGapCode }
func (k ProtocolImplementationGap) Description() string {
	return fmt.Sprintf("Protocol gap [%d]: `%s` does not implement `%s` (missing: %s).",
		uint16(k.Code()), k.Class, k.Protocol, strings.Join(k.Missing, ", "))
}
func (k ProtocolImplementationGap) Concise() string {
	return fmt.Sprintf("`%s` does not implement `%s`", k.Class, k.Protocol)
}

// SlotsConflict reports __slots__ clashing with a class attribute.
type SlotsConflict struct {
	Parent ast.Reference
	Name   string
}

func (SlotsConflict) errorKind() {}
func (SlotsConflict) Code() Code { return SlotsConflictCode }
func (k SlotsConflict) Description() string {
	return fmt.Sprintf("Slots conflict [%d]: `%s` appears both in `__slots__` and as a class attribute of `%s`.",
		uint16(k.Code()), k.Name, k.Parent)
}
func (k SlotsConflict) Concise() string {
	return fmt.Sprintf("slots conflict on `%s.%s`", k.Parent, k.Name)
}

// DataclassFieldOrder reports a dataclass field without default following
// one with a default.
type DataclassFieldOrder struct {
	Parent ast.Reference
	Name   string
}

func (DataclassFieldOrder) errorKind() {}
func (DataclassFieldOrder) Code() Code { return DataclassFieldOrderCode }
func (k DataclassFieldOrder) Description() string {
	return fmt.Sprintf("Invalid dataclass [%d]: field `%s` of `%s` without a default follows a field with one.",
		uint16(k.Code()), k.Name, k.Parent)
}
func (k DataclassFieldOrder) Concise() string {
	return fmt.Sprintf("dataclass field order in `%s`", k.Parent)
}

// EnumMemberReassignment reports rebinding an enum member.
type EnumMemberReassignment struct {
	Parent ast.Reference
	Name   string
}

func (EnumMemberReassignment) errorKind() {}
func (EnumMemberReassignment) Code() Code { return EnumMemberReassignmentCode }
func (k EnumMemberReassignment) Description() string {
	return fmt.Sprintf("Invalid enum [%d]: member `%s` of `%s` cannot be reassigned.",
		uint16(k.Code()), k.Name, k.Parent)
}
func (k EnumMemberReassignment) Concise() string {
	return fmt.Sprintf("reassignment of enum member `%s.%s`", k.Parent, k.Name)
}

// NamedTupleDefaultOrder reports a NamedTuple field without default
// following one with a default.
type NamedTupleDefaultOrder struct {
	Parent ast.Reference
	Name   string
}

func (NamedTupleDefaultOrder) errorKind() {}
func (NamedTupleDefaultOrder) Code() Code { return NamedTupleDefaultOrderCode }
func (k NamedTupleDefaultOrder) Description() string {
	return fmt.Sprintf("Invalid NamedTuple [%d]: field `%s` of `%s` without a default follows a field with one.",
		uint16(k.Code()), k.Name, k.Parent)
}
func (k NamedTupleDefaultOrder) Concise() string {
	return fmt.Sprintf("NamedTuple field order in `%s`", k.Parent)
}

// PropertySignatureMismatch reports getter/setter signatures that disagree.
type PropertySignatureMismatch struct {
	Parent ast.Reference
	Name   string
}

func (PropertySignatureMismatch) errorKind() {}
func (PropertySignatureMismatch) Code() Code { return PropertySignatureMismatchCode }
func (k PropertySignatureMismatch) Description() string {
	return fmt.Sprintf("Invalid property [%d]: getter and setter of `%s.%s` disagree on its type.",
		uint16(k.Code()), k.Parent, k.Name)
}
func (k PropertySignatureMismatch) Concise() string {
	return fmt.Sprintf("property signature mismatch on `%s.%s`", k.Parent, k.Name)
}

// ClassVarAssignmentOnInstance reports writing a ClassVar through an
// instance.
type ClassVarAssignmentOnInstance struct {
	Parent ast.Reference
	Name   string
}

func (ClassVarAssignmentOnInstance) errorKind() {}
func (ClassVarAssignmentOnInstance) Code() Code { return ClassVarAssignmentOnInstanceCode }
func (k ClassVarAssignmentOnInstance) Description() string {
	return fmt.Sprintf("Invalid assignment [%d]: `%s` is a ClassVar of `%s` and cannot be set on an instance.",
		uint16(k.Code()), k.Name, k.Parent)
}
func (k ClassVarAssignmentOnInstance) Concise() string {
	return fmt.Sprintf("ClassVar `%s.%s` set on instance", k.Parent, k.Name)
}
