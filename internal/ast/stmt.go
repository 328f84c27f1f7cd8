package ast

import (
	"pycheck/internal/source"
)

// StmtKind enumerates statement kinds of the analyzed Python subset.
type StmtKind uint8

const (
	// StmtAssign represents `targets = value`, possibly chained and annotated.
	StmtAssign StmtKind = iota
	// StmtAugAssign represents `target op= value`.
	StmtAugAssign
	// StmtExpr represents a bare expression statement.
	StmtExpr
	// StmtReturn represents `return [value]`.
	StmtReturn
	// StmtRaise represents `raise [exc [from cause]]`.
	StmtRaise
	// StmtAssert represents `assert test [, msg]`, including synthetic asserts
	// the CFG derives from branch conditions.
	StmtAssert
	// StmtDelete represents `del targets`.
	StmtDelete
	// StmtGlobal represents a `global names` declaration.
	StmtGlobal
	// StmtNonlocal represents a `nonlocal names` declaration.
	StmtNonlocal
	// StmtImport represents `import module [as alias]`.
	StmtImport
	// StmtImportFrom represents `from module import names`.
	StmtImportFrom
	// StmtIf represents an if/elif/else chain.
	StmtIf
	// StmtWhile represents a while loop.
	StmtWhile
	// StmtFor represents a for loop.
	StmtFor
	// StmtWith represents a with block.
	StmtWith
	// StmtTry represents try/except/else/finally.
	StmtTry
	// StmtMatch represents a match statement.
	StmtMatch
	// StmtFunctionDef represents a def (or async def).
	StmtFunctionDef
	// StmtClassDef represents a class definition.
	StmtClassDef
	// StmtPass represents `pass`.
	StmtPass
	// StmtBreak represents `break`.
	StmtBreak
	// StmtContinue represents `continue`.
	StmtContinue
)

// String returns a human-readable name for the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtAssign:
		return "Assign"
	case StmtAugAssign:
		return "AugAssign"
	case StmtExpr:
		return "Expr"
	case StmtReturn:
		return "Return"
	case StmtRaise:
		return "Raise"
	case StmtAssert:
		return "Assert"
	case StmtDelete:
		return "Delete"
	case StmtGlobal:
		return "Global"
	case StmtNonlocal:
		return "Nonlocal"
	case StmtImport:
		return "Import"
	case StmtImportFrom:
		return "ImportFrom"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtFor:
		return "For"
	case StmtWith:
		return "With"
	case StmtTry:
		return "Try"
	case StmtMatch:
		return "Match"
	case StmtFunctionDef:
		return "FunctionDef"
	case StmtClassDef:
		return "ClassDef"
	case StmtPass:
		return "Pass"
	case StmtBreak:
		return "Break"
	case StmtContinue:
		return "Continue"
	default:
		return "Unknown"
	}
}

// Stmt is a statement node.
type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData
}

// StmtData is the interface implemented by kind-specific payloads.
type StmtData interface {
	stmtData()
}

// AssignData holds data for StmtAssign. Chained assignments carry every
// target (`a = b = value` has two). Annotation is non-nil for `x: T = value`
// and for bare annotations (`x: T`, Value nil).
type AssignData struct {
	Targets    []*Expr
	Annotation *Expr
	Value      *Expr
}

func (AssignData) stmtData() {}

// AugAssignData holds data for StmtAugAssign. Op is the operator without the
// trailing `=` ("+", "*").
type AugAssignData struct {
	Target *Expr
	Op     string
	Value  *Expr
}

func (AugAssignData) stmtData() {}

// ExprStmtData holds data for StmtExpr.
type ExprStmtData struct {
	Value *Expr
}

func (ExprStmtData) stmtData() {}

// ReturnData holds data for StmtReturn. Value is nil for a bare return.
type ReturnData struct {
	Value *Expr
}

func (ReturnData) stmtData() {}

// RaiseData holds data for StmtRaise. Both fields may be nil.
type RaiseData struct {
	Exc  *Expr
	From *Expr
}

func (RaiseData) stmtData() {}

// AssertOrigin records where an assert statement came from. The CFG lowers
// branch conditions into synthetic asserts on each outgoing edge; the leak
// analysis needs to tell those apart from source-level asserts.
type AssertOrigin uint8

const (
	// OriginAssertion is a source-level assert statement.
	OriginAssertion AssertOrigin = iota
	// OriginIfTrue asserts an if condition on the true edge.
	OriginIfTrue
	// OriginIfFalse asserts the negated if condition on the false edge.
	OriginIfFalse
	// OriginWhileTrue asserts a while condition on the loop-entry edge.
	OriginWhileTrue
	// OriginWhileFalse asserts the negated while condition on the exit edge.
	OriginWhileFalse
)

// AssertData holds data for StmtAssert.
type AssertData struct {
	Test   *Expr
	Msg    *Expr
	Origin AssertOrigin
}

func (AssertData) stmtData() {}

// DeleteData holds data for StmtDelete.
type DeleteData struct {
	Targets []*Expr
}

func (DeleteData) stmtData() {}

// NamesData holds data for StmtGlobal and StmtNonlocal.
type NamesData struct {
	Names []string
}

func (NamesData) stmtData() {}

// ImportAlias is one `module [as name]` clause.
type ImportAlias struct {
	Module string
	Alias  string // empty when no `as`
	Span   source.Span
}

// ImportData holds data for StmtImport.
type ImportData struct {
	Aliases []ImportAlias
}

func (ImportData) stmtData() {}

// ImportFromData holds data for StmtImportFrom.
type ImportFromData struct {
	Module string
	Names  []ImportAlias
}

func (ImportFromData) stmtData() {}

// IfData holds data for StmtIf. An elif chain parses as a nested StmtIf in
// OrElse.
type IfData struct {
	Cond   *Expr
	Body   []*Stmt
	OrElse []*Stmt
}

func (IfData) stmtData() {}

// WhileData holds data for StmtWhile.
type WhileData struct {
	Cond   *Expr
	Body   []*Stmt
	OrElse []*Stmt
}

func (WhileData) stmtData() {}

// ForData holds data for StmtFor.
type ForData struct {
	Target  *Expr
	Iter    *Expr
	Body    []*Stmt
	OrElse  []*Stmt
	IsAsync bool
}

func (ForData) stmtData() {}

// WithItem is one `expr [as target]` clause of a with statement.
type WithItem struct {
	Context *Expr
	Target  *Expr // nil when no `as`
}

// WithData holds data for StmtWith.
type WithData struct {
	Items   []WithItem
	Body    []*Stmt
	IsAsync bool
}

func (WithData) stmtData() {}

// ExceptHandler is one `except [type [as name]]:` clause.
type ExceptHandler struct {
	Type *Expr  // nil for a bare except
	Name string // empty when no `as`
	Body []*Stmt
	Span source.Span
}

// TryData holds data for StmtTry.
type TryData struct {
	Body     []*Stmt
	Handlers []ExceptHandler
	OrElse   []*Stmt
	Finally  []*Stmt
}

func (TryData) stmtData() {}

// MatchCase is one `case pattern [if guard]:` clause. Patterns are kept as
// expressions; the analysis only descends into case bodies.
type MatchCase struct {
	Pattern *Expr
	Guard   *Expr
	Body    []*Stmt
	Span    source.Span
}

// MatchData holds data for StmtMatch.
type MatchData struct {
	Subject *Expr
	Cases   []MatchCase
}

func (MatchData) stmtData() {}

// Param is one function parameter.
type Param struct {
	Name       string
	Annotation *Expr
	Default    *Expr
	Span       source.Span
}

// FunctionDefData holds data for StmtFunctionDef.
type FunctionDefData struct {
	Name       string
	Params     []Param
	Returns    *Expr // return annotation, nil when absent
	Body       []*Stmt
	Decorators []*Expr
	IsAsync    bool
}

func (FunctionDefData) stmtData() {}

// ClassDefData holds data for StmtClassDef.
type ClassDefData struct {
	Name       string
	Bases      []*Expr
	Keywords   []Keyword
	Body       []*Stmt
	Decorators []*Expr
}

func (ClassDefData) stmtData() {}

// MarkerData holds no fields; used by StmtPass, StmtBreak and StmtContinue.
type MarkerData struct{}

func (MarkerData) stmtData() {}

// Module is the root of a parsed file.
type Module struct {
	Name string // dotted module name derived from the file path
	File source.FileID
	Body []*Stmt
	Span source.Span
}
