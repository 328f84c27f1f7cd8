package resolver

import (
	"strings"

	"pycheck/internal/ast"
	"pycheck/internal/pytype"
)

// annotationNames maps annotation head names to container and primitive
// kinds. Both builtin names and their typing module spellings are covered.
var annotationNames = map[string]pytype.Type{
	"list":      pytype.ListOf(),
	"List":      pytype.ListOf(),
	"dict":      pytype.DictOf(),
	"Dict":      pytype.DictOf(),
	"set":       pytype.SetOf(),
	"Set":       pytype.SetOf(),
	"frozenset": {Kind: pytype.Set},
	"tuple":     {Kind: pytype.Tuple},
	"Tuple":     {Kind: pytype.Tuple},
	"int":       pytype.PrimitiveOf("int"),
	"float":     pytype.PrimitiveOf("float"),
	"str":       pytype.PrimitiveOf("str"),
	"bool":      pytype.PrimitiveOf("bool"),
	"bytes":     pytype.PrimitiveOf("bytes"),
	"None":      {Kind: pytype.NoneType},
	"Any":       pytype.AnyType,
	"Callable":  {Kind: pytype.Callable},
}

// AnnotationType interprets a type annotation expression. Unknown names
// become instances of that name; anything unrecognized is Any.
func AnnotationType(e *ast.Expr) pytype.Type {
	if e == nil {
		return pytype.AnyType
	}
	switch d := e.Data.(type) {
	case ast.NameData:
		if t, ok := annotationNames[d.Name]; ok {
			return t
		}
		return pytype.InstanceOf(d.Name)

	case ast.AttributeData:
		// typing.List, collections.abc.Callable and so on: classify by the
		// final attribute name.
		if t, ok := annotationNames[d.Name]; ok {
			return t
		}
		return pytype.InstanceOf(d.Name)

	case ast.SubscriptData:
		// parametric annotations classify by their head: list[int] is a list
		head := AnnotationType(d.Object)
		if nd, ok := d.Object.Data.(ast.NameData); ok {
			switch nd.Name {
			case "Optional":
				return AnnotationType(d.Index)
			case "type", "Type":
				if inner, ok := d.Index.Data.(ast.NameData); ok {
					return pytype.ClassOf(inner.Name)
				}
				return pytype.Type{Kind: pytype.Class}
			}
		}
		return head

	case ast.ConstantData:
		// string annotations: strip quotes and re-classify the bare name
		if d.Kind == ast.ConstString {
			name := strings.TrimSpace(d.Str)
			if t, ok := annotationNames[name]; ok {
				return t
			}
			if name != "" && !strings.ContainsAny(name, "[]., ") {
				return pytype.InstanceOf(name)
			}
		}
		if d.Kind == ast.ConstNone {
			return pytype.Type{Kind: pytype.NoneType}
		}
		return pytype.AnyType

	case ast.BinOpData:
		// PEP 604 unions: X | None keeps X's classification
		if d.Op == "|" {
			left := AnnotationType(d.Left)
			right := AnnotationType(d.Right)
			if right.Kind == pytype.NoneType {
				return left
			}
			if left.Kind == pytype.NoneType {
				return right
			}
			if left == right {
				return left
			}
		}
		return pytype.AnyType

	default:
		return pytype.AnyType
	}
}

// LiteralType classifies an expression by its literal shape alone.
func LiteralType(e *ast.Expr) pytype.Type {
	if e == nil {
		return pytype.AnyType
	}
	switch d := e.Data.(type) {
	case ast.ConstantData:
		switch d.Kind {
		case ast.ConstNone:
			return pytype.Type{Kind: pytype.NoneType}
		case ast.ConstBool:
			return pytype.PrimitiveOf("bool")
		case ast.ConstInt:
			return pytype.PrimitiveOf("int")
		case ast.ConstFloat:
			return pytype.PrimitiveOf("float")
		case ast.ConstString:
			return pytype.PrimitiveOf("str")
		case ast.ConstBytes:
			return pytype.PrimitiveOf("bytes")
		default:
			return pytype.AnyType
		}

	case ast.SequenceData:
		switch e.Kind {
		case ast.ExprList:
			return pytype.ListOf()
		case ast.ExprSet:
			return pytype.SetOf()
		case ast.ExprTuple:
			return pytype.Type{Kind: pytype.Tuple}
		}
		return pytype.AnyType

	case ast.DictData:
		return pytype.DictOf()

	case ast.ComprehensionData:
		switch d.Kind {
		case ast.CompList:
			return pytype.ListOf()
		case ast.CompSet:
			return pytype.SetOf()
		case ast.CompDict:
			return pytype.DictOf()
		}
		return pytype.AnyType

	case ast.FStringData:
		return pytype.PrimitiveOf("str")

	case ast.CompareData:
		return pytype.PrimitiveOf("bool")

	case ast.BoolOpData:
		return pytype.AnyType

	case ast.LambdaData:
		return pytype.Type{Kind: pytype.Callable}

	default:
		return pytype.AnyType
	}
}

// builtinCallType classifies calls to builtin constructors.
func builtinCallType(name string, args []*ast.Expr) pytype.Type {
	switch name {
	case "list", "sorted":
		return pytype.ListOf()
	case "dict":
		return pytype.DictOf()
	case "set", "frozenset":
		return pytype.SetOf()
	case "tuple":
		return pytype.Type{Kind: pytype.Tuple}
	case "int", "len", "id", "ord", "hash", "round", "abs":
		return pytype.PrimitiveOf("int")
	case "float":
		return pytype.PrimitiveOf("float")
	case "str", "repr", "format", "chr", "hex", "oct", "bin", "ascii":
		return pytype.PrimitiveOf("str")
	case "bool", "isinstance", "issubclass", "callable", "hasattr", "any", "all":
		return pytype.PrimitiveOf("bool")
	case "bytes", "bytearray":
		return pytype.PrimitiveOf("bytes")
	case "type":
		if len(args) == 1 {
			return pytype.Type{Kind: pytype.Class}
		}
		return pytype.AnyType
	default:
		return pytype.AnyType
	}
}
