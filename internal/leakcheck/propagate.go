package leakcheck

import (
	"pycheck/internal/ast"
	"pycheck/internal/diag"
	"pycheck/internal/pytype"
	"pycheck/internal/resolver"
	"pycheck/internal/source"
)

// ReachableGlobal pairs a global's delocalized reference with the type
// resolved at the point of reference. If the enclosing expression is later
// mutated or escapes, this global is affected.
type ReachableGlobal struct {
	Global ast.Reference
	Type   pytype.Type
}

// EvalResult is the outcome of evaluating one expression or assignment
// target. Lists, not sets: order is preserved for deterministic output, and
// concatenation is the only combinator. Deduplication happens later, in the
// diagnostic model.
type EvalResult struct {
	Globals     []ReachableGlobal
	Diagnostics []diag.Diagnostic
}

func (r EvalResult) concat(other EvalResult) EvalResult {
	return EvalResult{
		Globals:     append(r.Globals, other.Globals...),
		Diagnostics: append(r.Diagnostics, other.Diagnostics...),
	}
}

// diagsOnly drops the reachable globals, keeping diagnostics.
func (r EvalResult) diagsOnly() EvalResult {
	return EvalResult{Diagnostics: r.Diagnostics}
}

// evaluator carries one definition's resolution context and signature
// through the mutually recursive expression and target evaluation.
type evaluator struct {
	ctx *resolver.Context
	sig diag.Signature
}

func newEvaluator(ctx *resolver.Context) *evaluator {
	return &evaluator{
		ctx: ctx,
		sig: diag.Signature{Definition: ctx.Definition, Method: ctx.Method},
	}
}

func (ev *evaluator) leak(span source.Span, detail diag.LeakDetail) diag.Diagnostic {
	return diag.NewError(diag.LeakToGlobal{Detail: detail}, span).WithSignature(ev.sig)
}

// globalFor wraps a global identifier as a reachable global with the type
// captured at this point of reference.
func (ev *evaluator) globalFor(name string, e *ast.Expr) ReachableGlobal {
	return ReachableGlobal{
		Global: ev.ctx.GlobalReference(name),
		Type:   ev.ctx.TypeOf(e),
	}
}

// globalReference checks whether a dotted name chain denotes a global,
// combining the resolver's view with the body's declared-globals set.
func (ev *evaluator) globalReference(e *ast.Expr) (ReachableGlobal, bool) {
	ref, ok := ast.NameReference(e)
	if ok && !ref.Empty() && ev.ctx.IsGlobalName(ref.Head()) {
		return ReachableGlobal{Global: ref, Type: ev.ctx.TypeOf(e)}, true
	}
	return ReachableGlobal{}, false
}

// evalExpr evaluates an expression, returning the globals its value exposes
// and the diagnostics triggered inside it. Sub-expressions with no defined
// reachable-globals rule degrade to empty results rather than failing.
func (ev *evaluator) evalExpr(e *ast.Expr) EvalResult {
	if e == nil {
		return EvalResult{}
	}
	switch d := e.Data.(type) {
	case ast.ConstantData:
		return EvalResult{}

	case ast.NameData:
		if ev.ctx.IsGlobalName(d.Name) {
			return EvalResult{Globals: []ReachableGlobal{ev.globalFor(d.Name, e)}}
		}
		return EvalResult{}

	case ast.AttributeData:
		return ev.evalAttribute(e, d)

	case ast.CallData:
		return ev.evalCall(e, d)

	case ast.SubscriptData:
		// indexing is assumed non-mutating for the base: its globals pass
		// through unchanged, and only the index's diagnostics are kept
		base := ev.evalExpr(d.Object)
		index := ev.evalExpr(d.Index)
		return EvalResult{
			Globals:     base.Globals,
			Diagnostics: append(base.Diagnostics, index.Diagnostics...),
		}

	case ast.NamedData:
		// the bind happens unconditionally here, so target globals lower
		// immediately; the bound value stays reachable for the container
		target := ev.evalTarget(d.Target)
		value := ev.evalExpr(d.Value)
		out := EvalResult{Globals: value.Globals}
		out.Diagnostics = append(out.Diagnostics, target.Diagnostics...)
		for _, g := range target.Globals {
			out.Diagnostics = append(out.Diagnostics, ev.leak(d.Target.Span,
				diag.WriteToGlobalVariable{Target: g.Global, Type: g.Type}))
		}
		out.Diagnostics = append(out.Diagnostics, value.Diagnostics...)
		return out

	case ast.TernaryData:
		cond := ev.evalExpr(d.Cond)
		then := ev.evalExpr(d.Then)
		orElse := ev.evalExpr(d.OrElse)
		// the two live branches propagate globals, the condition does not
		out := EvalResult{Globals: append(then.Globals, orElse.Globals...)}
		out.Diagnostics = append(out.Diagnostics, cond.Diagnostics...)
		out.Diagnostics = append(out.Diagnostics, then.Diagnostics...)
		out.Diagnostics = append(out.Diagnostics, orElse.Diagnostics...)
		return out

	case ast.SequenceData:
		var out EvalResult
		for _, el := range d.Elements {
			out.Diagnostics = append(out.Diagnostics, ev.evalExpr(el).Diagnostics...)
		}
		return out

	case ast.DictData:
		var out EvalResult
		for _, item := range d.Items {
			if item.Key != nil {
				out.Diagnostics = append(out.Diagnostics, ev.evalExpr(item.Key).Diagnostics...)
			}
			out.Diagnostics = append(out.Diagnostics, ev.evalExpr(item.Value).Diagnostics...)
		}
		return out

	case ast.ComprehensionData:
		var out EvalResult
		if d.Key != nil {
			out.Diagnostics = append(out.Diagnostics, ev.evalExpr(d.Key).Diagnostics...)
		}
		out.Diagnostics = append(out.Diagnostics, ev.evalExpr(d.Element).Diagnostics...)
		for _, gen := range d.Generators {
			out.Diagnostics = append(out.Diagnostics, ev.evalExpr(gen.Iter).Diagnostics...)
			for _, cond := range gen.Conds {
				out.Diagnostics = append(out.Diagnostics, ev.evalExpr(cond).Diagnostics...)
			}
		}
		return out

	case ast.BoolOpData:
		var out EvalResult
		for _, v := range d.Values {
			out.Diagnostics = append(out.Diagnostics, ev.evalExpr(v).Diagnostics...)
		}
		return out

	case ast.BinOpData:
		left := ev.evalExpr(d.Left)
		right := ev.evalExpr(d.Right)
		return EvalResult{Diagnostics: append(left.Diagnostics, right.Diagnostics...)}

	case ast.UnaryOpData:
		return ev.evalExpr(d.Operand).diagsOnly()

	case ast.CompareData:
		out := ev.evalExpr(d.Left).diagsOnly()
		for _, c := range d.Comparators {
			out.Diagnostics = append(out.Diagnostics, ev.evalExpr(c).Diagnostics...)
		}
		return out

	case ast.LambdaData:
		return ev.evalExpr(d.Body).diagsOnly()

	case ast.AwaitData:
		return ev.evalExpr(d.Value).diagsOnly()

	case ast.YieldData:
		if d.Value == nil {
			return EvalResult{}
		}
		return ev.evalExpr(d.Value).diagsOnly()

	case ast.YieldFromData:
		return ev.evalExpr(d.Value).diagsOnly()

	case ast.StarredData:
		return ev.evalExpr(d.Value).diagsOnly()

	case ast.FStringData:
		var out EvalResult
		for _, part := range d.Parts {
			out.Diagnostics = append(out.Diagnostics, ev.evalExpr(part).Diagnostics...)
		}
		return out

	case ast.SliceData:
		var out EvalResult
		out.Diagnostics = append(out.Diagnostics, ev.evalExpr(d.Lower).Diagnostics...)
		out.Diagnostics = append(out.Diagnostics, ev.evalExpr(d.Upper).Diagnostics...)
		out.Diagnostics = append(out.Diagnostics, ev.evalExpr(d.Step).Diagnostics...)
		return out

	default:
		// no defined reachable-globals rule: degrade to an empty result
		return EvalResult{}
	}
}

func (ev *evaluator) evalAttribute(e *ast.Expr, d ast.AttributeData) EvalResult {
	base := ev.evalExpr(d.Object)
	baseType := ev.ctx.TypeOf(d.Object)

	if IsMutatingAccess(baseType, d.Name) {
		// the mutation has already happened: lower every global reachable
		// from the base and expose nothing further
		out := EvalResult{Diagnostics: base.Diagnostics}
		for _, g := range base.Globals {
			out.Diagnostics = append(out.Diagnostics, ev.leak(e.Span,
				diag.WriteToGlobalVariable{Target: g.Global, Type: g.Type, Via: d.Name}))
		}
		return out
	}

	if len(base.Globals) == 0 {
		if g, ok := ev.globalReference(e); ok {
			return EvalResult{Globals: []ReachableGlobal{g}, Diagnostics: base.Diagnostics}
		}
		return base.diagsOnly()
	}

	attrType := ev.ctx.TypeOf(e)
	out := EvalResult{Diagnostics: base.Diagnostics}
	for _, g := range base.Globals {
		out.Globals = append(out.Globals, ReachableGlobal{
			Global: g.Global.Append(d.Name),
			Type:   attrType,
		})
	}
	return out
}

func (ev *evaluator) evalCall(e *ast.Expr, d ast.CallData) EvalResult {
	if obj, attr, value, ok := setattrCall(d); ok {
		return ev.evalSetattr(e, obj, attr, value)
	}

	out := ev.evalExpr(d.Callee).diagsOnly()

	// a call result is a new value, except that a metatype return exposes
	// the class itself as reachable
	if t := ev.ctx.TypeOf(e); t.IsMeta() && t.Name != "" {
		out.Globals = append(out.Globals, ReachableGlobal{
			Global: ast.ParseReference(t.Name),
			Type:   t,
		})
	}

	callee := ast.ExprString(d.Callee)
	for _, arg := range d.Args {
		res := ev.evalExpr(arg)
		out.Diagnostics = append(out.Diagnostics, res.Diagnostics...)
		for _, g := range res.Globals {
			out.Diagnostics = append(out.Diagnostics, ev.leak(arg.Span,
				diag.WriteToMethodArgument{Source: g.Global, Type: g.Type, Callee: callee}))
		}
	}
	for _, kw := range d.Keywords {
		res := ev.evalExpr(kw.Value)
		out.Diagnostics = append(out.Diagnostics, res.Diagnostics...)
		for _, g := range res.Globals {
			out.Diagnostics = append(out.Diagnostics, ev.leak(kw.Span,
				diag.WriteToMethodArgument{Source: g.Global, Type: g.Type, Callee: callee}))
		}
	}
	return out
}

// setattrCall matches `setattr(obj, "name", value)` and
// `obj.__setattr__("name", value)`.
func setattrCall(d ast.CallData) (obj *ast.Expr, attr *ast.Expr, value *ast.Expr, ok bool) {
	switch cd := d.Callee.Data.(type) {
	case ast.NameData:
		if cd.Name == "setattr" && len(d.Args) == 3 {
			return d.Args[0], d.Args[1], d.Args[2], true
		}
	case ast.AttributeData:
		if cd.Name == "__setattr__" && len(d.Args) == 2 {
			return cd.Object, d.Args[0], d.Args[1], true
		}
	}
	return nil, nil, nil, false
}

func (ev *evaluator) evalSetattr(e *ast.Expr, obj, attr, value *ast.Expr) EvalResult {
	objRes := ev.evalExpr(obj)
	valueRes := ev.evalExpr(value)

	attrName := ast.ExprString(attr)
	if cd, ok := attr.Data.(ast.ConstantData); ok && cd.Kind == ast.ConstString {
		attrName = cd.Str
	}

	out := EvalResult{Diagnostics: objRes.Diagnostics}
	for _, g := range objRes.Globals {
		out.Diagnostics = append(out.Diagnostics, ev.leak(e.Span,
			diag.WriteToClassAttribute{Target: g.Global, Type: g.Type, Attribute: attrName}))
	}
	// globals reachable from the value argument are not escalated here;
	// known gap, kept to preserve observable diagnostic counts
	out.Diagnostics = append(out.Diagnostics, valueRes.Diagnostics...)
	return out
}

// evalTarget evaluates an assignment target. It accumulates reachable
// globals for the caller to classify and never lowers diagnostics itself,
// except for subscript targets, which rewrite into a synthetic __setitem__
// call: indexed assignment is an immediate, unconditional mutation.
func (ev *evaluator) evalTarget(e *ast.Expr) EvalResult {
	if e == nil {
		return EvalResult{}
	}
	switch d := e.Data.(type) {
	case ast.NameData:
		if ev.ctx.IsGlobalName(d.Name) {
			return EvalResult{Globals: []ReachableGlobal{ev.globalFor(d.Name, e)}}
		}
		return EvalResult{}

	case ast.AttributeData:
		base := ev.evalTarget(d.Object)
		if len(base.Globals) == 0 {
			if g, ok := ev.globalReference(e); ok {
				return EvalResult{Globals: []ReachableGlobal{g}, Diagnostics: base.Diagnostics}
			}
			return base.diagsOnly()
		}
		out := EvalResult{Diagnostics: base.Diagnostics}
		for _, g := range base.Globals {
			out.Globals = append(out.Globals, ReachableGlobal{
				Global: g.Global.Append(d.Name),
				Type:   ev.ctx.TypeOf(e),
			})
		}
		return out

	case ast.SubscriptData:
		call := ast.NewCall(e.Span,
			ast.NewAttribute(e.Span, d.Object, "__setitem__"), d.Index)
		return ev.evalExpr(call)

	case ast.StarredData:
		return ev.evalTarget(d.Value)

	case ast.SequenceData:
		var out EvalResult
		for _, el := range d.Elements {
			out = out.concat(ev.evalTarget(el))
		}
		return out

	default:
		return EvalResult{}
	}
}
