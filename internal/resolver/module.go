package resolver

import (
	"pycheck/internal/ast"
	"pycheck/internal/pytype"
)

// classShape records what a class definition binds at class level.
type classShape struct {
	attrs map[string]pytype.Type
}

// ModuleResolver resolves names against the module-level bindings of one
// parsed file. It is read-only after construction and safe for concurrent
// queries.
type ModuleResolver struct {
	module  *ast.Module
	globals map[string]pytype.Type
	modules map[string]bool
	classes map[string]*classShape
}

// NewModuleResolver walks the module body and records its bindings.
// Conditional top-level code (if/try blocks guarding imports) is walked too.
func NewModuleResolver(mod *ast.Module) *ModuleResolver {
	r := &ModuleResolver{
		module:  mod,
		globals: make(map[string]pytype.Type),
		modules: make(map[string]bool),
		classes: make(map[string]*classShape),
	}
	r.collect(mod.Body)
	return r
}

func (r *ModuleResolver) collect(body []*ast.Stmt) {
	for _, s := range body {
		switch d := s.Data.(type) {
		case ast.AssignData:
			t := pytype.AnyType
			if d.Annotation != nil {
				t = AnnotationType(d.Annotation)
			} else if d.Value != nil {
				t = r.ResolveExpressionType(d.Value)
			}
			for _, target := range d.Targets {
				r.bindTarget(target, t)
			}

		case ast.AugAssignData:
			// target op= value keeps the existing binding's type

		case ast.ImportData:
			for _, alias := range d.Aliases {
				r.modules[alias.Module] = true
				name := alias.Alias
				if name == "" {
					name = ast.ParseReference(alias.Module).Head()
					r.globals[name] = pytype.ModuleOf(name)
					continue
				}
				r.globals[name] = pytype.ModuleOf(alias.Module)
			}

		case ast.ImportFromData:
			r.modules[d.Module] = true
			for _, alias := range d.Names {
				if alias.Module == "*" {
					continue
				}
				name := alias.Alias
				if name == "" {
					name = alias.Module
				}
				r.globals[name] = pytype.AnyType
			}

		case ast.FunctionDefData:
			r.globals[d.Name] = pytype.Type{Kind: pytype.Callable, Name: d.Name}

		case ast.ClassDefData:
			r.globals[d.Name] = pytype.ClassOf(d.Name)
			r.classes[d.Name] = collectClassShape(d)

		case ast.IfData:
			r.collect(d.Body)
			r.collect(d.OrElse)
		case ast.TryData:
			r.collect(d.Body)
			for _, h := range d.Handlers {
				r.collect(h.Body)
			}
			r.collect(d.OrElse)
			r.collect(d.Finally)
		case ast.WhileData:
			r.collect(d.Body)
			r.collect(d.OrElse)
		case ast.ForData:
			r.bindTarget(d.Target, pytype.AnyType)
			r.collect(d.Body)
			r.collect(d.OrElse)
		case ast.WithData:
			for _, item := range d.Items {
				if item.Target != nil {
					r.bindTarget(item.Target, pytype.AnyType)
				}
			}
			r.collect(d.Body)
		}
	}
}

func (r *ModuleResolver) bindTarget(target *ast.Expr, t pytype.Type) {
	switch d := target.Data.(type) {
	case ast.NameData:
		r.globals[d.Name] = t
	case ast.SequenceData:
		for _, el := range d.Elements {
			r.bindTarget(el, pytype.AnyType)
		}
	case ast.StarredData:
		r.bindTarget(d.Value, pytype.ListOf())
	}
}

func collectClassShape(d ast.ClassDefData) *classShape {
	shape := &classShape{attrs: make(map[string]pytype.Type)}
	for _, s := range d.Body {
		switch sd := s.Data.(type) {
		case ast.AssignData:
			t := pytype.AnyType
			if sd.Annotation != nil {
				t = AnnotationType(sd.Annotation)
			} else if sd.Value != nil {
				t = LiteralType(sd.Value)
			}
			for _, target := range sd.Targets {
				if nd, ok := target.Data.(ast.NameData); ok {
					shape.attrs[nd.Name] = t
				}
			}
		case ast.FunctionDefData:
			shape.attrs[sd.Name] = pytype.Type{Kind: pytype.Callable, Name: sd.Name}
		}
	}
	return shape
}

// ResolveReference resolves a dotted reference against module bindings.
func (r *ModuleResolver) ResolveReference(ref ast.Reference) pytype.Type {
	parts := ref.Delocalize().Parts()
	parts = r.stripModulePrefix(parts)
	if len(parts) == 0 {
		return pytype.AnyType
	}
	t, ok := r.globals[parts[0]]
	if !ok {
		return pytype.AnyType
	}
	for _, attr := range parts[1:] {
		t = r.attributeType(t, attr)
	}
	return t
}

// stripModulePrefix drops the file's own module-name qualifier from a fully
// qualified reference.
func (r *ModuleResolver) stripModulePrefix(parts []string) []string {
	if r.module == nil || r.module.Name == "" {
		return parts
	}
	if len(parts) > 1 && parts[0] == r.module.Name {
		return parts[1:]
	}
	return parts
}

func (r *ModuleResolver) attributeType(base pytype.Type, attr string) pytype.Type {
	switch base.Kind {
	case pytype.Class, pytype.Instance:
		if shape, ok := r.classes[base.Name]; ok {
			if t, ok := shape.attrs[attr]; ok {
				return t
			}
		}
		return pytype.AnyType
	case pytype.Module:
		sub := base.Name + "." + attr
		if r.modules[sub] {
			return pytype.ModuleOf(sub)
		}
		return pytype.AnyType
	default:
		return pytype.AnyType
	}
}

// IsGlobal reports whether the reference's head names a module-level binding.
func (r *ModuleResolver) IsGlobal(ref ast.Reference) bool {
	parts := ref.Delocalize().Parts()
	parts = r.stripModulePrefix(parts)
	if len(parts) == 0 {
		return false
	}
	head := parts[0]
	if IsBuiltin(head) {
		return false
	}
	_, ok := r.globals[head]
	return ok
}

// ModuleExists reports whether the dotted reference names an imported module.
func (r *ModuleResolver) ModuleExists(ref ast.Reference) bool {
	return r.modules[ref.String()]
}

// ResolveExpressionType resolves an expression's type from literal shape,
// module bindings and class shapes.
func (r *ModuleResolver) ResolveExpressionType(e *ast.Expr) pytype.Type {
	if e == nil {
		return pytype.AnyType
	}
	switch d := e.Data.(type) {
	case ast.NameData:
		if t, ok := r.globals[d.Name]; ok {
			return t
		}
		return pytype.AnyType

	case ast.AttributeData:
		return r.attributeType(r.ResolveExpressionType(d.Object), d.Name)

	case ast.CallData:
		callee := r.ResolveExpressionType(d.Callee)
		if callee.Kind == pytype.Class {
			return pytype.InstanceOf(callee.Name)
		}
		if nd, ok := d.Callee.Data.(ast.NameData); ok {
			return builtinCallType(nd.Name, d.Args)
		}
		return pytype.AnyType

	case ast.NamedData:
		return r.ResolveExpressionType(d.Value)

	case ast.TernaryData:
		a := r.ResolveExpressionType(d.Then)
		b := r.ResolveExpressionType(d.OrElse)
		if a == b {
			return a
		}
		return pytype.AnyType

	default:
		return LiteralType(e)
	}
}
