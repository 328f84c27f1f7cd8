package ast

import (
	"fmt"
	"slices"
	"strings"
)

// ExprString renders an expression in compact Python-ish syntax. It is used
// for the context fields of diagnostics (callee expressions, assignment
// targets), not for formatting source code.
func ExprString(e *Expr) string {
	if e == nil {
		return ""
	}
	switch d := e.Data.(type) {
	case ConstantData:
		switch d.Kind {
		case ConstNone:
			return "None"
		case ConstBool:
			if d.Bool {
				return "True"
			}
			return "False"
		case ConstString:
			return fmt.Sprintf("%q", d.Str)
		case ConstEllipsis:
			return "..."
		default:
			return d.Text
		}
	case NameData:
		return d.Name
	case AttributeData:
		return ExprString(d.Object) + "." + d.Name
	case SubscriptData:
		return ExprString(d.Object) + "[" + ExprString(d.Index) + "]"
	case CallData:
		args := make([]string, 0, len(d.Args)+len(d.Keywords))
		for _, a := range d.Args {
			args = append(args, ExprString(a))
		}
		for _, kw := range d.Keywords {
			if kw.Name == "" {
				args = append(args, "**"+ExprString(kw.Value))
			} else {
				args = append(args, kw.Name+"="+ExprString(kw.Value))
			}
		}
		return ExprString(d.Callee) + "(" + strings.Join(args, ", ") + ")"
	case SequenceData:
		elems := make([]string, len(d.Elements))
		for i, el := range d.Elements {
			elems[i] = ExprString(el)
		}
		switch e.Kind {
		case ExprTuple:
			if len(elems) == 1 {
				return "(" + elems[0] + ",)"
			}
			return "(" + strings.Join(elems, ", ") + ")"
		case ExprSet:
			return "{" + strings.Join(elems, ", ") + "}"
		default:
			return "[" + strings.Join(elems, ", ") + "]"
		}
	case DictData:
		items := make([]string, len(d.Items))
		for i, it := range d.Items {
			if it.Key == nil {
				items[i] = "**" + ExprString(it.Value)
			} else {
				items[i] = ExprString(it.Key) + ": " + ExprString(it.Value)
			}
		}
		return "{" + strings.Join(items, ", ") + "}"
	case ComprehensionData:
		var b strings.Builder
		switch d.Kind {
		case CompDict:
			b.WriteString("{" + ExprString(d.Key) + ": " + ExprString(d.Element))
		case CompSet:
			b.WriteString("{" + ExprString(d.Element))
		case CompGenerator:
			b.WriteString("(" + ExprString(d.Element))
		default:
			b.WriteString("[" + ExprString(d.Element))
		}
		for _, gen := range d.Generators {
			b.WriteString(" for " + ExprString(gen.Target) + " in " + ExprString(gen.Iter))
			for _, cond := range gen.Conds {
				b.WriteString(" if " + ExprString(cond))
			}
		}
		switch d.Kind {
		case CompDict, CompSet:
			b.WriteString("}")
		case CompGenerator:
			b.WriteString(")")
		default:
			b.WriteString("]")
		}
		return b.String()
	case BoolOpData:
		op := " and "
		if d.Op == BoolOr {
			op = " or "
		}
		vals := make([]string, len(d.Values))
		for i, v := range d.Values {
			vals[i] = ExprString(v)
		}
		return strings.Join(vals, op)
	case BinOpData:
		return ExprString(d.Left) + " " + d.Op + " " + ExprString(d.Right)
	case UnaryOpData:
		if d.Op == "not" {
			return "not " + ExprString(d.Operand)
		}
		return d.Op + ExprString(d.Operand)
	case CompareData:
		var b strings.Builder
		b.WriteString(ExprString(d.Left))
		for i, op := range d.Ops {
			b.WriteString(" " + op + " " + ExprString(d.Comparators[i]))
		}
		return b.String()
	case TernaryData:
		return ExprString(d.Then) + " if " + ExprString(d.Cond) + " else " + ExprString(d.OrElse)
	case LambdaData:
		return "lambda " + strings.Join(d.Params, ", ") + ": " + ExprString(d.Body)
	case AwaitData:
		return "await " + ExprString(d.Value)
	case YieldData:
		if d.Value == nil {
			return "yield"
		}
		return "yield " + ExprString(d.Value)
	case YieldFromData:
		return "yield from " + ExprString(d.Value)
	case StarredData:
		return "*" + ExprString(d.Value)
	case NamedData:
		return "(" + ExprString(d.Target) + " := " + ExprString(d.Value) + ")"
	case FStringData:
		parts := make([]string, len(d.Parts))
		for i, p := range d.Parts {
			parts[i] = "{" + ExprString(p) + "}"
		}
		return "f\"" + strings.Join(parts, "") + "\""
	case SliceData:
		return ExprString(d.Lower) + ":" + ExprString(d.Upper) + sliceStep(d.Step)
	default:
		return "<" + e.Kind.String() + ">"
	}
}

func sliceStep(step *Expr) string {
	if step == nil {
		return ""
	}
	return ":" + ExprString(step)
}

// NameReference converts a name or dotted attribute chain into a Reference.
// ok is false when the expression is not a pure chain of names.
func NameReference(e *Expr) (Reference, bool) {
	var parts []string
	for {
		switch d := e.Data.(type) {
		case NameData:
			parts = append(parts, d.Name)
			slices.Reverse(parts)
			return NewReference(parts...), true
		case AttributeData:
			parts = append(parts, d.Name)
			e = d.Object
		default:
			return Reference{}, false
		}
	}
}
