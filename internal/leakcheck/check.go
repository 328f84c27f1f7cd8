package leakcheck

import (
	"pycheck/internal/ast"
	"pycheck/internal/cfg"
	"pycheck/internal/diag"
	"pycheck/internal/resolver"
)

// Checker analyzes the definitions of one module. It holds only read-only
// collaborators, so one Checker may serve concurrent definition analyses.
type Checker struct {
	Resolver resolver.Resolver
	Scopes   resolver.ScopeService
}

// NewChecker builds a checker over the given resolution collaborators.
func NewChecker(res resolver.Resolver, scopes resolver.ScopeService) *Checker {
	return &Checker{Resolver: res, Scopes: scopes}
}

// Definition is one function to analyze, with the context it was found in.
type Definition struct {
	Stmt      *ast.Stmt
	Qualifier ast.Reference
	// Method is set when the definition sits directly in a class body;
	// Class names that class.
	Method bool
	Class  string
}

// Def returns the function payload.
func (d Definition) Def() ast.FunctionDefData {
	return d.Stmt.Data.(ast.FunctionDefData)
}

// Name returns the definition's qualified reference.
func (d Definition) Name() ast.Reference {
	return d.Qualifier.Append(d.Def().Name)
}

// CollectDefinitions finds every function definition in a module: top-level
// functions, methods, and functions nested inside other functions.
func CollectDefinitions(mod *ast.Module) []Definition {
	var out []Definition
	qualifier := ast.NewReference()
	if mod.Name != "" {
		qualifier = ast.NewReference(mod.Name)
	}
	collectDefinitions(mod.Body, qualifier, false, "", &out)
	return out
}

func collectDefinitions(body []*ast.Stmt, qualifier ast.Reference, method bool, class string, out *[]Definition) {
	for _, s := range body {
		switch d := s.Data.(type) {
		case ast.FunctionDefData:
			*out = append(*out, Definition{Stmt: s, Qualifier: qualifier, Method: method, Class: class})
			collectDefinitions(d.Body, qualifier.Append(d.Name), false, "", out)
		case ast.ClassDefData:
			collectDefinitions(d.Body, qualifier.Append(d.Name), true, d.Name, out)
		case ast.IfData:
			collectDefinitions(d.Body, qualifier, method, class, out)
			collectDefinitions(d.OrElse, qualifier, method, class, out)
		case ast.WhileData:
			collectDefinitions(d.Body, qualifier, method, class, out)
			collectDefinitions(d.OrElse, qualifier, method, class, out)
		case ast.ForData:
			collectDefinitions(d.Body, qualifier, method, class, out)
			collectDefinitions(d.OrElse, qualifier, method, class, out)
		case ast.WithData:
			collectDefinitions(d.Body, qualifier, method, class, out)
		case ast.TryData:
			collectDefinitions(d.Body, qualifier, method, class, out)
			for _, h := range d.Handlers {
				collectDefinitions(h.Body, qualifier, method, class, out)
			}
			collectDefinitions(d.OrElse, qualifier, method, class, out)
			collectDefinitions(d.Finally, qualifier, method, class, out)
		}
	}
}

// CheckDefinition runs the leak analysis over one definition's CFG and
// returns its diagnostics in statement order. The walk's abstract state is
// the unit value: all findings flow through the per-statement diagnostic
// map, drained once at the end.
func (c *Checker) CheckDefinition(def Definition) []diag.Diagnostic {
	fn := def.Def()
	ctx := resolver.NewContext(c.Resolver, c.Scopes, fn, def.Qualifier)
	ctx.Method = def.Method
	ctx.Class = def.Class
	ev := newEvaluator(ctx)

	g := cfg.New(fn.Body)

	// per-statement diagnostic map, owned by this run alone
	perStmt := make([][]diag.Diagnostic, len(g.Stmts))

	_, err := cfg.Forward(g, cfg.UnitLattice{}, cfg.Unit{},
		func(state cfg.Unit, id cfg.StmtID, g *cfg.Graph) cfg.Unit {
			perStmt[id] = append(perStmt[id], ev.statementDiagnostics(g.Stmt(id))...)
			return state
		})
	if err != nil {
		return []diag.Diagnostic{
			diag.NewError(diag.AnalysisFailure{
				Definition: def.Name(),
				Message:    err.Error(),
			}, def.Stmt.Span).WithSignature(diag.Signature{Definition: def.Name(), Method: def.Method}),
		}
	}

	var out []diag.Diagnostic
	for _, ds := range perStmt {
		out = append(out, ds...)
	}
	return out
}

// CheckModule analyzes every definition in the module and merges the
// results into one bag.
func (c *Checker) CheckModule(mod *ast.Module, bag *diag.Bag) {
	for _, def := range CollectDefinitions(mod) {
		for _, d := range c.CheckDefinition(def) {
			bag.Add(d)
		}
	}
}
