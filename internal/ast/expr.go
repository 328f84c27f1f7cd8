package ast

import (
	"pycheck/internal/source"
)

// ExprKind enumerates expression kinds of the analyzed Python subset.
type ExprKind uint8

const (
	// ExprConstant represents literal constants (None, bools, numbers, strings).
	ExprConstant ExprKind = iota
	// ExprName represents a bare identifier.
	ExprName
	// ExprAttribute represents attribute access (base.attr).
	ExprAttribute
	// ExprSubscript represents indexing (base[index]).
	ExprSubscript
	// ExprCall represents a call (callee(args..., kw=...)).
	ExprCall
	// ExprTuple represents a tuple display.
	ExprTuple
	// ExprList represents a list display.
	ExprList
	// ExprSet represents a set display.
	ExprSet
	// ExprDict represents a dict display.
	ExprDict
	// ExprComprehension represents list/set/dict/generator comprehensions.
	ExprComprehension
	// ExprBoolOp represents `and` / `or` chains.
	ExprBoolOp
	// ExprBinOp represents binary arithmetic/bitwise operators.
	ExprBinOp
	// ExprUnaryOp represents unary operators (-, +, ~, not).
	ExprUnaryOp
	// ExprCompare represents comparison chains (a < b <= c).
	ExprCompare
	// ExprTernary represents conditional expressions (a if c else b).
	ExprTernary
	// ExprLambda represents lambda expressions.
	ExprLambda
	// ExprAwait represents `await value`.
	ExprAwait
	// ExprYield represents `yield` with an optional value.
	ExprYield
	// ExprYieldFrom represents `yield from value`.
	ExprYieldFrom
	// ExprStarred represents `*value` in calls and targets.
	ExprStarred
	// ExprNamed represents the walrus operator (target := value).
	ExprNamed
	// ExprFString represents a formatted string literal.
	ExprFString
	// ExprSlice represents a slice (lower:upper:step) inside a subscript.
	ExprSlice
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprConstant:
		return "Constant"
	case ExprName:
		return "Name"
	case ExprAttribute:
		return "Attribute"
	case ExprSubscript:
		return "Subscript"
	case ExprCall:
		return "Call"
	case ExprTuple:
		return "Tuple"
	case ExprList:
		return "List"
	case ExprSet:
		return "Set"
	case ExprDict:
		return "Dict"
	case ExprComprehension:
		return "Comprehension"
	case ExprBoolOp:
		return "BoolOp"
	case ExprBinOp:
		return "BinOp"
	case ExprUnaryOp:
		return "UnaryOp"
	case ExprCompare:
		return "Compare"
	case ExprTernary:
		return "Ternary"
	case ExprLambda:
		return "Lambda"
	case ExprAwait:
		return "Await"
	case ExprYield:
		return "Yield"
	case ExprYieldFrom:
		return "YieldFrom"
	case ExprStarred:
		return "Starred"
	case ExprNamed:
		return "Named"
	case ExprFString:
		return "FString"
	case ExprSlice:
		return "Slice"
	default:
		return "Unknown"
	}
}

// Expr is an expression node.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Data ExprData
}

// ExprData is the interface implemented by kind-specific payloads.
type ExprData interface {
	exprData()
}

// ConstantKind enumerates literal constant kinds.
type ConstantKind uint8

const (
	ConstNone ConstantKind = iota
	ConstBool
	ConstInt
	ConstFloat
	ConstString
	ConstBytes
	ConstEllipsis
)

// ConstantData holds data for ExprConstant.
type ConstantData struct {
	Kind ConstantKind
	Text string // raw literal text
	Bool bool
	Str  string // decoded value for string literals
}

func (ConstantData) exprData() {}

// NameData holds data for ExprName.
type NameData struct {
	Name string
}

func (NameData) exprData() {}

// AttributeData holds data for ExprAttribute.
type AttributeData struct {
	Object *Expr
	Name   string
}

func (AttributeData) exprData() {}

// SubscriptData holds data for ExprSubscript.
type SubscriptData struct {
	Object *Expr
	Index  *Expr
}

func (SubscriptData) exprData() {}

// Keyword is a keyword argument in a call.
type Keyword struct {
	Name  string // empty for **kwargs
	Value *Expr
	Span  source.Span
}

// CallData holds data for ExprCall.
type CallData struct {
	Callee   *Expr
	Args     []*Expr
	Keywords []Keyword
}

func (CallData) exprData() {}

// SequenceData holds data for ExprTuple, ExprList and ExprSet.
type SequenceData struct {
	Elements []*Expr
}

func (SequenceData) exprData() {}

// DictItem is one key/value entry of a dict display. A nil Key means a
// **mapping expansion.
type DictItem struct {
	Key   *Expr
	Value *Expr
}

// DictData holds data for ExprDict.
type DictData struct {
	Items []DictItem
}

func (DictData) exprData() {}

// CompKind enumerates comprehension flavors.
type CompKind uint8

const (
	CompList CompKind = iota
	CompSet
	CompDict
	CompGenerator
)

// CompFor is one `for target in iter [if cond]*` clause of a comprehension.
type CompFor struct {
	Target  *Expr
	Iter    *Expr
	Conds   []*Expr
	IsAsync bool
}

// ComprehensionData holds data for ExprComprehension. Key is nil except for
// dict comprehensions.
type ComprehensionData struct {
	Kind       CompKind
	Key        *Expr
	Element    *Expr
	Generators []CompFor
}

func (ComprehensionData) exprData() {}

// BoolOpKind distinguishes `and` from `or`.
type BoolOpKind uint8

const (
	BoolAnd BoolOpKind = iota
	BoolOr
)

// BoolOpData holds data for ExprBoolOp.
type BoolOpData struct {
	Op     BoolOpKind
	Values []*Expr
}

func (BoolOpData) exprData() {}

// BinOpData holds data for ExprBinOp. Op is the operator lexeme ("+", "//").
type BinOpData struct {
	Op    string
	Left  *Expr
	Right *Expr
}

func (BinOpData) exprData() {}

// UnaryOpData holds data for ExprUnaryOp.
type UnaryOpData struct {
	Op      string
	Operand *Expr
}

func (UnaryOpData) exprData() {}

// CompareData holds data for ExprCompare. Ops[i] compares the i-th pair.
type CompareData struct {
	Left        *Expr
	Ops         []string
	Comparators []*Expr
}

func (CompareData) exprData() {}

// TernaryData holds data for ExprTernary (`then if cond else orelse`).
type TernaryData struct {
	Cond   *Expr
	Then   *Expr
	OrElse *Expr
}

func (TernaryData) exprData() {}

// LambdaData holds data for ExprLambda.
type LambdaData struct {
	Params []string
	Body   *Expr
}

func (LambdaData) exprData() {}

// AwaitData holds data for ExprAwait.
type AwaitData struct {
	Value *Expr
}

func (AwaitData) exprData() {}

// YieldData holds data for ExprYield. Value is nil for a bare yield.
type YieldData struct {
	Value *Expr
}

func (YieldData) exprData() {}

// YieldFromData holds data for ExprYieldFrom.
type YieldFromData struct {
	Value *Expr
}

func (YieldFromData) exprData() {}

// StarredData holds data for ExprStarred.
type StarredData struct {
	Value *Expr
}

func (StarredData) exprData() {}

// NamedData holds data for ExprNamed (walrus).
type NamedData struct {
	Target *Expr
	Value  *Expr
}

func (NamedData) exprData() {}

// FStringData holds data for ExprFString. Parts are the interpolated
// expressions; literal segments carry no analysis-relevant facts and are
// dropped at parse time.
type FStringData struct {
	Parts []*Expr
}

func (FStringData) exprData() {}

// SliceData holds data for ExprSlice. Any bound may be nil.
type SliceData struct {
	Lower *Expr
	Upper *Expr
	Step  *Expr
}

func (SliceData) exprData() {}
