// Package resolver supplies the name and type resolution the leak analysis
// consumes. The implementation is syntactic: module-level bindings, imports
// and annotations drive everything, there is no cross-module inference.
package resolver

import (
	"pycheck/internal/ast"
	"pycheck/internal/pytype"
)

// Resolver answers name and expression type queries at a program point.
type Resolver interface {
	// ResolveReference returns the resolved type of a dotted reference,
	// pytype.AnyType when the name is unknown.
	ResolveReference(ref ast.Reference) pytype.Type
	// ResolveExpressionType returns the resolved type of an expression.
	ResolveExpressionType(e *ast.Expr) pytype.Type
	// IsGlobal reports whether the reference names a module-level binding.
	// Builtins are never global.
	IsGlobal(ref ast.Reference) bool
	// ModuleExists reports whether the reference names an imported module.
	ModuleExists(ref ast.Reference) bool
}

// ScopeService reports the names a function body explicitly declares
// `global`. It is the fallback for bindings the flow-insensitive global
// check cannot see.
type ScopeService interface {
	DeclaredGlobals(body []*ast.Stmt) map[string]bool
}
