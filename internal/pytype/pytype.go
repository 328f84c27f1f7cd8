// Package pytype models the resolved types the analysis receives from name
// and expression resolution. The model is deliberately shallow: the leak
// analysis only needs to classify mutation-relevant shapes (primitive,
// class value, mutable container, unknown), not to reason about full types.
package pytype

// Kind enumerates the semantic shapes the analysis distinguishes.
type Kind uint8

const (
	// Any is the top/unresolved type. Absence of information, not a claim.
	Any Kind = iota
	// NoneType is the type of None.
	NoneType
	// Primitive covers int, float, str, bool and bytes. Name holds which.
	Primitive
	// List is a (possibly parametric) list.
	List
	// Dict is a (possibly parametric) dict.
	Dict
	// Set is a (possibly parametric) set.
	Set
	// Tuple is an immutable sequence.
	Tuple
	// Module is an imported module object. Name holds the dotted path.
	Module
	// Class is a class object itself (a metatype value). Name holds the class.
	Class
	// Instance is an instance of a user class. Name holds the class.
	Instance
	// Callable is a function or bound method value.
	Callable
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case Any:
		return "Any"
	case NoneType:
		return "None"
	case Primitive:
		return "Primitive"
	case List:
		return "List"
	case Dict:
		return "Dict"
	case Set:
		return "Set"
	case Tuple:
		return "Tuple"
	case Module:
		return "Module"
	case Class:
		return "Class"
	case Instance:
		return "Instance"
	case Callable:
		return "Callable"
	default:
		return "Unknown"
	}
}

// Type is an opaque resolved type attached to an expression at a program
// point. Compared structurally; the zero value is Any.
type Type struct {
	Kind Kind
	Name string
}

// AnyType is the unresolved/top type.
var AnyType = Type{Kind: Any}

// String renders the type in Python-ish notation.
func (t Type) String() string {
	switch t.Kind {
	case Any:
		return "typing.Any"
	case NoneType:
		return "None"
	case Primitive:
		return t.Name
	case List:
		return "list"
	case Dict:
		return "dict"
	case Set:
		return "set"
	case Tuple:
		return "tuple"
	case Module:
		return "module " + t.Name
	case Class:
		return "type[" + t.Name + "]"
	case Instance:
		return t.Name
	case Callable:
		return "typing.Callable"
	default:
		return "typing.Any"
	}
}

// IsAny reports whether the type is unresolved/top.
func (t Type) IsAny() bool {
	return t.Kind == Any
}

// IsMeta reports whether the value is a class object rather than an instance.
func (t Type) IsMeta() bool {
	return t.Kind == Class
}

// IsMutableContainer reports whether the type is one of the tracked mutable
// container kinds.
func (t Type) IsMutableContainer() bool {
	switch t.Kind {
	case List, Dict, Set:
		return true
	default:
		return false
	}
}

// Category buckets a type for leak reporting.
type Category uint8

const (
	// CategoryUnknown is used when the captured type is Any.
	CategoryUnknown Category = iota
	// CategoryPrimitive covers primitives, None and tuples.
	CategoryPrimitive
	// CategoryMutableDataStructure covers list, dict and set.
	CategoryMutableDataStructure
	// CategoryMetatype covers class objects.
	CategoryMetatype
	// CategoryOther covers everything else (instances, modules, callables).
	CategoryOther
)

// String returns the category's reporting name.
func (c Category) String() string {
	switch c {
	case CategoryPrimitive:
		return "Primitive"
	case CategoryMutableDataStructure:
		return "MutableDataStructure"
	case CategoryMetatype:
		return "Metatype"
	case CategoryOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// CategoryOf buckets t. Classification must run on the type captured at the
// point of reference, not at the point of eventual mutation.
func CategoryOf(t Type) Category {
	switch t.Kind {
	case Any:
		return CategoryUnknown
	case Primitive, NoneType, Tuple:
		return CategoryPrimitive
	case List, Dict, Set:
		return CategoryMutableDataStructure
	case Class:
		return CategoryMetatype
	default:
		return CategoryOther
	}
}

// Convenience constructors used by the resolver and tests.

// ListOf returns the list type.
func ListOf() Type { return Type{Kind: List} }

// DictOf returns the dict type.
func DictOf() Type { return Type{Kind: Dict} }

// SetOf returns the set type.
func SetOf() Type { return Type{Kind: Set} }

// PrimitiveOf returns the primitive type with the given name.
func PrimitiveOf(name string) Type { return Type{Kind: Primitive, Name: name} }

// ClassOf returns the metatype of the named class.
func ClassOf(name string) Type { return Type{Kind: Class, Name: name} }

// InstanceOf returns the instance type of the named class.
func InstanceOf(name string) Type { return Type{Kind: Instance, Name: name} }

// ModuleOf returns the module type for a dotted path.
func ModuleOf(path string) Type { return Type{Kind: Module, Name: path} }
