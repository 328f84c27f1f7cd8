package resolver

import (
	"pycheck/internal/ast"
	"pycheck/internal/pytype"
)

// SyntacticScopes implements ScopeService by walking statement bodies.
type SyntacticScopes struct{}

// DeclaredGlobals collects the names a body declares `global`. Nested defs
// and classes open their own scopes and are not descended into.
func (SyntacticScopes) DeclaredGlobals(body []*ast.Stmt) map[string]bool {
	out := make(map[string]bool)
	collectDeclaredGlobals(body, out)
	return out
}

func collectDeclaredGlobals(body []*ast.Stmt, out map[string]bool) {
	for _, s := range body {
		switch d := s.Data.(type) {
		case ast.NamesData:
			if s.Kind == ast.StmtGlobal {
				for _, name := range d.Names {
					out[name] = true
				}
			}
		case ast.IfData:
			collectDeclaredGlobals(d.Body, out)
			collectDeclaredGlobals(d.OrElse, out)
		case ast.WhileData:
			collectDeclaredGlobals(d.Body, out)
			collectDeclaredGlobals(d.OrElse, out)
		case ast.ForData:
			collectDeclaredGlobals(d.Body, out)
			collectDeclaredGlobals(d.OrElse, out)
		case ast.WithData:
			collectDeclaredGlobals(d.Body, out)
		case ast.TryData:
			collectDeclaredGlobals(d.Body, out)
			for _, h := range d.Handlers {
				collectDeclaredGlobals(h.Body, out)
			}
			collectDeclaredGlobals(d.OrElse, out)
			collectDeclaredGlobals(d.Finally, out)
		case ast.MatchData:
			for _, c := range d.Cases {
				collectDeclaredGlobals(c.Body, out)
			}
		}
	}
}

// Context is the resolved-name capability handed to expression evaluation:
// one definition's view of which identifiers are globals and what type an
// expression has at that point.
type Context struct {
	Resolver Resolver
	// Definition is the enclosing definition's qualified reference.
	Definition ast.Reference
	// Method is set when the definition is a method; Class names its class.
	Method bool
	Class  string
	// locals are parameter and locally bound names, which shadow globals.
	locals map[string]pytype.Type
	// declaredGlobals are the names under a `global` statement in the body.
	declaredGlobals map[string]bool
}

// NewContext builds the resolution context for one function definition.
func NewContext(res Resolver, scopes ScopeService, def ast.FunctionDefData, qualifier ast.Reference) *Context {
	ctx := &Context{
		Resolver:        res,
		Definition:      qualifier.Append(def.Name),
		locals:          make(map[string]pytype.Type),
		declaredGlobals: scopes.DeclaredGlobals(def.Body),
	}
	for _, param := range def.Params {
		ctx.locals[param.Name] = AnnotationType(param.Annotation)
	}
	collectLocalBindings(def.Body, ctx)
	return ctx
}

// collectLocalBindings records every name the body assigns, so that locals
// shadow same-named module globals unless declared `global`.
func collectLocalBindings(body []*ast.Stmt, ctx *Context) {
	for _, s := range body {
		switch d := s.Data.(type) {
		case ast.AssignData:
			t := pytype.AnyType
			if d.Annotation != nil {
				t = AnnotationType(d.Annotation)
			} else if d.Value != nil {
				t = ctx.Resolver.ResolveExpressionType(d.Value)
			}
			for _, target := range d.Targets {
				bindLocalTarget(target, t, ctx)
			}
		case ast.ForData:
			bindLocalTarget(d.Target, pytype.AnyType, ctx)
			collectLocalBindings(d.Body, ctx)
			collectLocalBindings(d.OrElse, ctx)
		case ast.WithData:
			for _, item := range d.Items {
				if item.Target != nil {
					bindLocalTarget(item.Target, pytype.AnyType, ctx)
				}
			}
			collectLocalBindings(d.Body, ctx)
		case ast.IfData:
			collectLocalBindings(d.Body, ctx)
			collectLocalBindings(d.OrElse, ctx)
		case ast.WhileData:
			collectLocalBindings(d.Body, ctx)
			collectLocalBindings(d.OrElse, ctx)
		case ast.TryData:
			collectLocalBindings(d.Body, ctx)
			for _, h := range d.Handlers {
				if h.Name != "" {
					ctx.locals[h.Name] = pytype.AnyType
				}
				collectLocalBindings(h.Body, ctx)
			}
			collectLocalBindings(d.OrElse, ctx)
			collectLocalBindings(d.Finally, ctx)
		case ast.MatchData:
			for _, c := range d.Cases {
				collectLocalBindings(c.Body, ctx)
			}
		case ast.FunctionDefData:
			ctx.locals[d.Name] = pytype.Type{Kind: pytype.Callable, Name: d.Name}
		case ast.ClassDefData:
			ctx.locals[d.Name] = pytype.ClassOf(d.Name)
		}
	}
}

func bindLocalTarget(target *ast.Expr, t pytype.Type, ctx *Context) {
	switch d := target.Data.(type) {
	case ast.NameData:
		if !ctx.declaredGlobals[d.Name] {
			ctx.locals[d.Name] = t
		}
	case ast.SequenceData:
		for _, el := range d.Elements {
			bindLocalTarget(el, pytype.AnyType, ctx)
		}
	case ast.StarredData:
		bindLocalTarget(d.Value, pytype.ListOf(), ctx)
	}
}

// IsGlobalName reports whether a bare identifier denotes a module global at
// this point: either the resolver knows the binding and no local shadows it,
// or the body declared the name `global`.
func (ctx *Context) IsGlobalName(name string) bool {
	if IsBuiltin(name) {
		return false
	}
	if ctx.declaredGlobals[name] {
		return true
	}
	if _, shadowed := ctx.locals[name]; shadowed {
		return false
	}
	return ctx.Resolver.IsGlobal(ast.NewReference(name))
}

// TypeOf resolves an expression's type, consulting locals before the
// module-level resolver.
func (ctx *Context) TypeOf(e *ast.Expr) pytype.Type {
	if e == nil {
		return pytype.AnyType
	}
	if nd, ok := e.Data.(ast.NameData); ok {
		if !ctx.declaredGlobals[nd.Name] {
			if t, ok := ctx.locals[nd.Name]; ok {
				return t
			}
		}
	}
	return ctx.Resolver.ResolveExpressionType(e)
}

// GlobalReference returns the delocalized reference for a global identifier.
func (ctx *Context) GlobalReference(name string) ast.Reference {
	return ast.NewReference(name)
}
