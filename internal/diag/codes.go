package diag

import (
	"fmt"
)

// Code is the stable numeric identifier of an error kind. Codes are grouped
// by concern: 1xxx parsing, 2xxx names and attributes, 30xx type mismatches,
// 302x missing annotations, 31xx global leaks, 4xxx class shape
// (inheritance, overrides, decoration), 5xxx typed dictionaries, 9xxx
// analysis failures.
type Code uint16

const (
	// UnknownCode is the zero code; no diagnostic should carry it.
	UnknownCode Code = 0

	// ParseError covers syntax errors from the frontend.
	ParseError Code = 1001
	// IndentationError covers inconsistent indentation.
	IndentationError Code = 1002

	// Undefined names and attributes.
	UndefinedNameCode        Code = 2001
	UndefinedAttributeCode   Code = 2002
	UndefinedImportCode      Code = 2003
	UndefinedTypeCode        Code = 2004
	UninitializedLocalCode   Code = 2005
	InvalidExceptHandlerCode Code = 2006

	// Type mismatches and call shape.
	IncompatibleVariableTypeCode  Code = 3001
	IncompatibleParameterTypeCode Code = 3002
	IncompatibleReturnTypeCode    Code = 3003
	IncompatibleAttributeTypeCode Code = 3004
	InvalidArgumentCode           Code = 3005
	UnsupportedOperandCode        Code = 3006
	RedundantCastCode             Code = 3007
	InvalidTypeVariableCode       Code = 3008
	IncompatibleAwaitableCode     Code = 3009
	UninitializedAttributeCode    Code = 3010
	TooManyArgumentsCode          Code = 3011
	MissingArgumentCode           Code = 3012
	UnexpectedKeywordCode         Code = 3013
	NotCallableCode               Code = 3014
	InvalidClassInstantiationCode Code = 3015

	// Missing annotations (surfaced in strict mode only).
	MissingGlobalAnnotationCode    Code = 3021
	MissingParameterAnnotationCode Code = 3022
	MissingReturnAnnotationCode    Code = 3023
	MissingAttributeAnnotationCode Code = 3024
	ProhibitedAnyCode              Code = 3025

	// Global leaks.
	WriteToGlobalVariableCode  Code = 3101
	WriteToClassAttributeCode  Code = 3102
	WriteToLocalVariableCode   Code = 3103
	WriteToMethodArgumentCode  Code = 3104
	ReturnOfGlobalVariableCode Code = 3105

	// Class shape.
	InvalidInheritanceCode           Code = 4001
	InvalidOverrideCode              Code = 4002
	InvalidDecorationCode            Code = 4003
	AbstractClassInstantiationCode   Code = 4004
	InconsistentMROCode              Code = 4005
	InvalidMethodSignatureCode       Code = 4006
	DuplicateClassAttributeCode      Code = 4007
	FinalAttributeAssignmentCode     Code = 4008
	InvalidStaticMethodReceiverCode  Code = 4009
	MissingOverrideDecoratorCode     Code = 4010
	NonOverridingOverrideCode        Code = 4011
	InvalidMetaclassCode             Code = 4012
	ProtocolImplementationGapCode    Code = 4013
	SlotsConflictCode                Code = 4014
	DataclassFieldOrderCode          Code = 4015
	EnumMemberReassignmentCode       Code = 4016
	NamedTupleDefaultOrderCode       Code = 4017
	PropertySignatureMismatchCode    Code = 4018
	ClassVarAssignmentOnInstanceCode Code = 4019

	// Typed dictionaries.
	TypedDictNonLiteralAccessCode   Code = 5001
	TypedDictUnknownKeyCode         Code = 5002
	TypedDictMissingKeyCode         Code = 5003
	TypedDictInvalidOperationCode   Code = 5004
	TypedDictInitializationCode     Code = 5005
	TypedDictReadOnlyMutationCode   Code = 5006
	TypedDictInconsistentTotalsCode Code = 5007

	// Analysis failures.
	AnalysisFailureCode Code = 9001
)

// ID renders the stable textual form, e.g. "PCK3101".
func (c Code) ID() string {
	return fmt.Sprintf("PCK%04d", uint16(c))
}

func (c Code) String() string {
	return c.ID()
}

// strictOnly reports whether diagnostics with this code are surfaced only in
// strict mode.
func (c Code) strictOnly() bool {
	return c >= MissingGlobalAnnotationCode && c <= ProhibitedAnyCode
}

// alwaysReported reports whether this code survives even unsafe mode. Parse
// and analysis failures are never suppressed by a mode: a file the checker
// could not process must say so.
func (c Code) alwaysReported() bool {
	switch c {
	case ParseError, IndentationError, AnalysisFailureCode:
		return true
	}
	return false
}
