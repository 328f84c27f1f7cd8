package leakcheck

import (
	"pycheck/internal/ast"
	"pycheck/internal/diag"
)

// statementDiagnostics decides what one statement's evaluation results
// become. Compound statements contribute nothing here: the CFG walk visits
// their lowered bodies as independent statements.
func (ev *evaluator) statementDiagnostics(s *ast.Stmt) []diag.Diagnostic {
	switch d := s.Data.(type) {
	case ast.AssignData:
		return ev.assign(d.Targets, d.Value)

	case ast.AugAssignData:
		// an augmented assign is always a mutation of its target
		return ev.assign([]*ast.Expr{d.Target}, d.Value)

	case ast.ExprStmtData:
		// no assignment or return consumes the value: reachable globals drop
		return ev.evalExpr(d.Value).Diagnostics

	case ast.RaiseData:
		out := ev.evalExpr(d.Exc).Diagnostics
		return append(out, ev.evalExpr(d.From).Diagnostics...)

	case ast.ReturnData:
		return ev.returnStmt(d)

	case ast.AssertData:
		// a false-branch assert duplicates the condition already evaluated
		// on the true branch
		if d.Origin == ast.OriginIfFalse || d.Origin == ast.OriginWhileFalse {
			return nil
		}
		out := ev.evalExpr(d.Test).Diagnostics
		return append(out, ev.evalExpr(d.Msg).Diagnostics...)

	default:
		// pass/break/continue/global/nonlocal/import/del and nested
		// definitions contribute nothing at this level
		return nil
	}
}

func (ev *evaluator) assign(targets []*ast.Expr, value *ast.Expr) []diag.Diagnostic {
	var out []diag.Diagnostic

	for _, target := range targets {
		res := ev.evalTarget(target)
		out = append(out, res.Diagnostics...)
		for _, g := range res.Globals {
			out = append(out, ev.leak(target.Span,
				diag.WriteToGlobalVariable{Target: g.Global, Type: g.Type}))
		}
	}

	if value == nil {
		return out
	}
	res := ev.evalExpr(value)
	out = append(out, res.Diagnostics...)
	if len(targets) == 0 {
		return out
	}
	// the global's value is now aliased by the target
	targetText := ast.ExprString(targets[0])
	for _, g := range res.Globals {
		out = append(out, ev.leak(value.Span,
			diag.WriteToLocalVariable{Source: g.Global, Type: g.Type, Target: targetText}))
	}
	return out
}

func (ev *evaluator) returnStmt(d ast.ReturnData) []diag.Diagnostic {
	if d.Value == nil {
		return nil
	}
	res := ev.evalExpr(d.Value)
	out := res.Diagnostics

	var method ast.Reference
	if ev.ctx.Method {
		method = ev.ctx.Definition
	}
	for _, g := range res.Globals {
		// returning a class reference is routine, not a leak
		if g.Type.IsMeta() {
			continue
		}
		out = append(out, ev.leak(d.Value.Span,
			diag.ReturnOfGlobalVariable{Source: g.Global, Type: g.Type, Method: method}))
	}
	return out
}
