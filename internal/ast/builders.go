package ast

import (
	"pycheck/internal/source"
)

// Constructors for nodes the analysis synthesizes itself (negated branch
// conditions, __setitem__ rewrites) and for building fixtures in tests.

// NewName builds a Name expression.
func NewName(span source.Span, name string) *Expr {
	return &Expr{Kind: ExprName, Span: span, Data: NameData{Name: name}}
}

// NewAttribute builds an attribute access on object.
func NewAttribute(span source.Span, object *Expr, name string) *Expr {
	return &Expr{Kind: ExprAttribute, Span: span, Data: AttributeData{Object: object, Name: name}}
}

// NewSubscript builds a subscript expression.
func NewSubscript(span source.Span, object, index *Expr) *Expr {
	return &Expr{Kind: ExprSubscript, Span: span, Data: SubscriptData{Object: object, Index: index}}
}

// NewCall builds a call expression with positional arguments.
func NewCall(span source.Span, callee *Expr, args ...*Expr) *Expr {
	return &Expr{Kind: ExprCall, Span: span, Data: CallData{Callee: callee, Args: args}}
}

// NewStringConstant builds a string literal.
func NewStringConstant(span source.Span, value string) *Expr {
	return &Expr{Kind: ExprConstant, Span: span, Data: ConstantData{Kind: ConstString, Str: value, Text: value}}
}

// NewIntConstant builds an integer literal from its raw text.
func NewIntConstant(span source.Span, text string) *Expr {
	return &Expr{Kind: ExprConstant, Span: span, Data: ConstantData{Kind: ConstInt, Text: text}}
}

// NewNot builds the boolean negation of operand.
func NewNot(operand *Expr) *Expr {
	return &Expr{Kind: ExprUnaryOp, Span: operand.Span, Data: UnaryOpData{Op: "not", Operand: operand}}
}

// NewAssert builds an assert statement with the given origin.
func NewAssert(span source.Span, test *Expr, origin AssertOrigin) *Stmt {
	return &Stmt{Kind: StmtAssert, Span: span, Data: AssertData{Test: test, Origin: origin}}
}

// NewExprStmt wraps an expression into a statement.
func NewExprStmt(value *Expr) *Stmt {
	return &Stmt{Kind: StmtExpr, Span: value.Span, Data: ExprStmtData{Value: value}}
}

// NewAssign builds a single-target assignment statement.
func NewAssign(span source.Span, target, value *Expr) *Stmt {
	return &Stmt{Kind: StmtAssign, Span: span, Data: AssignData{Targets: []*Expr{target}, Value: value}}
}

// NewReturn builds a return statement.
func NewReturn(span source.Span, value *Expr) *Stmt {
	return &Stmt{Kind: StmtReturn, Span: span, Data: ReturnData{Value: value}}
}
