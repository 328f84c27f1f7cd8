package diag

import (
	"fmt"

	"pycheck/internal/ast"
	"pycheck/internal/pytype"
)

// Kind is one case of the closed error taxonomy. Every variant carries the
// structured payload for its kind and knows its numeric code and its long and
// concise renderings. The set is closed: only types in this package implement
// it.
type Kind interface {
	errorKind()
	// Code returns the stable numeric code of the kind.
	Code() Code
	// Description renders the full human-readable message.
	Description() string
	// Concise renders the short form used for deduplication keys and
	// single-line output.
	Concise() string
}

// --- Parsing ---

// ParseFailure reports a syntax error from the frontend.
type ParseFailure struct {
	Message string
}

func (ParseFailure) errorKind()       {}
func (ParseFailure) Code() Code       { return ParseError }
func (k ParseFailure) Description() string {
	return fmt.Sprintf("Parsing failure [%d]: %s.", uint16(k.Code()), k.Message)
}
func (k ParseFailure) Concise() string { return "syntax error: " + k.Message }

// InconsistentIndentation reports a dedent that matches no open block.
type InconsistentIndentation struct {
	Message string
}

func (InconsistentIndentation) errorKind() {}
func (InconsistentIndentation) Code() Code { return IndentationError }
func (k InconsistentIndentation) Description() string {
	return fmt.Sprintf("Indentation failure [%d]: %s.", uint16(k.Code()), k.Message)
}
func (k InconsistentIndentation) Concise() string { return "indentation error: " + k.Message }

// --- Undefined names and attributes ---

// UndefinedName reports use of a name with no binding in scope.
type UndefinedName struct {
	Name ast.Reference
}

func (UndefinedName) errorKind() {}
func (UndefinedName) Code() Code { return UndefinedNameCode }
func (k UndefinedName) Description() string {
	return fmt.Sprintf("Undefined name [%d]: `%s` is not defined.", uint16(k.Code()), k.Name)
}
func (k UndefinedName) Concise() string { return fmt.Sprintf("undefined name `%s`", k.Name) }

// UndefinedAttribute reports access to an attribute the base type lacks.
type UndefinedAttribute struct {
	Attribute string
	Base      pytype.Type
}

func (UndefinedAttribute) errorKind() {}
func (UndefinedAttribute) Code() Code { return UndefinedAttributeCode }
func (k UndefinedAttribute) Description() string {
	return fmt.Sprintf("Undefined attribute [%d]: `%s` has no attribute `%s`.",
		uint16(k.Code()), k.Base, k.Attribute)
}
func (k UndefinedAttribute) Concise() string {
	return fmt.Sprintf("undefined attribute `%s` on `%s`", k.Attribute, k.Base)
}

// UndefinedImport reports an import of a module the checker cannot find.
type UndefinedImport struct {
	Module ast.Reference
}

func (UndefinedImport) errorKind() {}
func (UndefinedImport) Code() Code { return UndefinedImportCode }
func (k UndefinedImport) Description() string {
	return fmt.Sprintf("Undefined import [%d]: could not find module `%s`.", uint16(k.Code()), k.Module)
}
func (k UndefinedImport) Concise() string { return fmt.Sprintf("undefined import `%s`", k.Module) }

// UndefinedType reports an annotation naming an unknown type.
type UndefinedType struct {
	Annotation string
}

func (UndefinedType) errorKind() {}
func (UndefinedType) Code() Code { return UndefinedTypeCode }
func (k UndefinedType) Description() string {
	return fmt.Sprintf("Undefined or invalid type [%d]: annotation `%s` is not defined as a type.",
		uint16(k.Code()), k.Annotation)
}
func (k UndefinedType) Concise() string { return fmt.Sprintf("undefined type `%s`", k.Annotation) }

// UninitializedLocal reports a local read before any assignment on some path.
type UninitializedLocal struct {
	Name string
}

func (UninitializedLocal) errorKind() {}
func (UninitializedLocal) Code() Code { return UninitializedLocalCode }
func (k UninitializedLocal) Description() string {
	return fmt.Sprintf("Uninitialized local [%d]: `%s` may be used before it is initialized.",
		uint16(k.Code()), k.Name)
}
func (k UninitializedLocal) Concise() string { return fmt.Sprintf("uninitialized local `%s`", k.Name) }

// InvalidExceptHandler reports an except clause whose type is not an
// exception class.
type InvalidExceptHandler struct {
	Type pytype.Type
}

func (InvalidExceptHandler) errorKind() {}
func (InvalidExceptHandler) Code() Code { return InvalidExceptHandlerCode }
func (k InvalidExceptHandler) Description() string {
	return fmt.Sprintf("Invalid except clause [%d]: `%s` is not a valid exception class.",
		uint16(k.Code()), k.Type)
}
func (k InvalidExceptHandler) Concise() string {
	return fmt.Sprintf("invalid except clause `%s`", k.Type)
}

// --- Global leaks ---

// LeakToGlobal reports an observable mutation of, or escape of, a global
// from within a function body. The concrete finding lives in Detail.
type LeakToGlobal struct {
	Detail LeakDetail
}

func (LeakToGlobal) errorKind()       {}
func (k LeakToGlobal) Code() Code     { return k.Detail.leakCode() }
func (k LeakToGlobal) Description() string {
	return fmt.Sprintf("Leak to global [%d]: %s.", uint16(k.Code()), k.Detail.leakMessage())
}
func (k LeakToGlobal) Concise() string { return k.Detail.leakMessage() }

// LeakDetail is the closed set of leak sub-kinds. Every variant carries the
// global's delocalized reference and the type captured at the point of
// reference.
type LeakDetail interface {
	leakCode() Code
	leakMessage() string
	// Global returns the leaked global's reference.
	Global() ast.Reference
	// CapturedType returns the type resolved at the point of reference.
	CapturedType() pytype.Type
}

// WriteToGlobalVariable is a direct mutation of a global: assignment to it,
// or a mutating method/attribute access on a value reachable from it.
type WriteToGlobalVariable struct {
	Target ast.Reference
	Type   pytype.Type
	// Via names the mutating attribute or method when the write happened
	// through one (e.g. "append"); empty for direct assignment.
	Via string
}

func (k WriteToGlobalVariable) leakCode() Code            { return WriteToGlobalVariableCode }
func (k WriteToGlobalVariable) Global() ast.Reference     { return k.Target }
func (k WriteToGlobalVariable) CapturedType() pytype.Type { return k.Type }
func (k WriteToGlobalVariable) leakMessage() string {
	msg := fmt.Sprintf("global `%s` (of category %s) is mutated",
		k.Target, pytype.CategoryOf(k.Type))
	if k.Via != "" {
		msg += fmt.Sprintf(" via `%s`", k.Via)
	}
	return msg
}

// WriteToClassAttribute is a write to an attribute of a class object
// reachable from a global, through setattr or __setattr__.
type WriteToClassAttribute struct {
	Target    ast.Reference
	Type      pytype.Type
	Attribute string
}

func (k WriteToClassAttribute) leakCode() Code            { return WriteToClassAttributeCode }
func (k WriteToClassAttribute) Global() ast.Reference     { return k.Target }
func (k WriteToClassAttribute) CapturedType() pytype.Type { return k.Type }
func (k WriteToClassAttribute) leakMessage() string {
	return fmt.Sprintf("attribute `%s` of class `%s` is mutated", k.Attribute, k.Target)
}

// WriteToLocalVariable is a global's value escaping into a local binding,
// from where later mutations are no longer attributable.
type WriteToLocalVariable struct {
	Source ast.Reference
	Type   pytype.Type
	// Target is the rendered local target expression that now aliases the
	// global.
	Target string
}

func (k WriteToLocalVariable) leakCode() Code            { return WriteToLocalVariableCode }
func (k WriteToLocalVariable) Global() ast.Reference     { return k.Source }
func (k WriteToLocalVariable) CapturedType() pytype.Type { return k.Type }
func (k WriteToLocalVariable) leakMessage() string {
	return fmt.Sprintf("global `%s` (of category %s) escapes into local `%s`",
		k.Source, pytype.CategoryOf(k.Type), k.Target)
}

// WriteToMethodArgument is a global passed into a call that may mutate it;
// the callee's body is not analyzed, so passing is treated as a potential
// mutation.
type WriteToMethodArgument struct {
	Source ast.Reference
	Type   pytype.Type
	// Callee is the rendered callee expression.
	Callee string
}

func (k WriteToMethodArgument) leakCode() Code            { return WriteToMethodArgumentCode }
func (k WriteToMethodArgument) Global() ast.Reference     { return k.Source }
func (k WriteToMethodArgument) CapturedType() pytype.Type { return k.Type }
func (k WriteToMethodArgument) leakMessage() string {
	return fmt.Sprintf("global `%s` (of category %s) is passed to `%s`, which may mutate it",
		k.Source, pytype.CategoryOf(k.Type), k.Callee)
}

// ReturnOfGlobalVariable is a global returned out of the function.
type ReturnOfGlobalVariable struct {
	Source ast.Reference
	Type   pytype.Type
	// Method is the enclosing method's reference when the return happens
	// inside a class body; empty otherwise.
	Method ast.Reference
}

func (k ReturnOfGlobalVariable) leakCode() Code            { return ReturnOfGlobalVariableCode }
func (k ReturnOfGlobalVariable) Global() ast.Reference     { return k.Source }
func (k ReturnOfGlobalVariable) CapturedType() pytype.Type { return k.Type }
func (k ReturnOfGlobalVariable) leakMessage() string {
	if !k.Method.Empty() {
		return fmt.Sprintf("global `%s` is returned from method `%s`", k.Source, k.Method)
	}
	return fmt.Sprintf("global `%s` is returned", k.Source)
}

// --- Analysis failures ---

// AnalysisFailure reports that the analysis itself could not complete
// cleanly for a definition. Reported as a diagnostic rather than an error so
// one pathological function never aborts a whole-program run.
type AnalysisFailure struct {
	Definition ast.Reference
	Message    string
}

func (AnalysisFailure) errorKind() {}
func (AnalysisFailure) Code() Code { return AnalysisFailureCode }
func (k AnalysisFailure) Description() string {
	return fmt.Sprintf("Analysis failure [%d]: analysis of `%s` did not complete: %s.",
		uint16(k.Code()), k.Definition, k.Message)
}
func (k AnalysisFailure) Concise() string {
	return fmt.Sprintf("analysis failure in `%s`: %s", k.Definition, k.Message)
}
