package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"pycheck/internal/ast"
	"pycheck/internal/cfg"
	"pycheck/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed module:
// 1) the module span is within file content bounds
// 2) every statement span is non-empty and within content bounds
// 3) nested statement spans stay inside their enclosing statement's span
func CheckSpanInvariants(mod *ast.Module, sf *source.File) error {
	if mod == nil || sf == nil {
		return fmt.Errorf("nil module or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if mod.Span.End > lenContent {
		return fmt.Errorf("module span end beyond content: %d > %d", mod.Span.End, lenContent)
	}
	for _, s := range mod.Body {
		if err := checkStmtSpans(s, source.Span{File: mod.File, Start: 0, End: lenContent}, sf.ID); err != nil {
			return err
		}
	}
	return nil
}

func checkStmtSpans(s *ast.Stmt, enclosing source.Span, file source.FileID) error {
	if s == nil {
		return fmt.Errorf("nil statement")
	}
	sp := s.Span
	if sp.End <= sp.Start {
		return fmt.Errorf("empty statement span: %v", sp)
	}
	if sp.File != file {
		return fmt.Errorf("statement span file mismatch: got=%d want=%d", sp.File, file)
	}
	if sp.Start < enclosing.Start || sp.End > enclosing.End {
		return fmt.Errorf("statement span %v is outside enclosing span %v", sp, enclosing)
	}
	for _, body := range nestedBodies(s) {
		for _, child := range body {
			if err := checkStmtSpans(child, sp, file); err != nil {
				return err
			}
		}
	}
	return nil
}

func nestedBodies(s *ast.Stmt) [][]*ast.Stmt {
	switch d := s.Data.(type) {
	case ast.FunctionDefData:
		return [][]*ast.Stmt{d.Body}
	case ast.ClassDefData:
		return [][]*ast.Stmt{d.Body}
	case ast.IfData:
		return [][]*ast.Stmt{d.Body, d.OrElse}
	case ast.WhileData:
		return [][]*ast.Stmt{d.Body, d.OrElse}
	case ast.ForData:
		return [][]*ast.Stmt{d.Body, d.OrElse}
	case ast.WithData:
		return [][]*ast.Stmt{d.Body}
	case ast.TryData:
		out := [][]*ast.Stmt{d.Body, d.OrElse, d.Finally}
		for _, h := range d.Handlers {
			out = append(out, h.Body)
		}
		return out
	case ast.MatchData:
		out := make([][]*ast.Stmt, 0, len(d.Cases))
		for _, c := range d.Cases {
			out = append(out, c.Body)
		}
		return out
	}
	return nil
}

// CheckGraphInvariants validates the structural invariants of a control flow
// graph:
// 1) entry and exit are valid block ids and the exit has no successors
// 2) every successor edge points at an existing block
// 3) every statement id held by a block indexes the graph's statement table
// 4) no statement id appears in more than one block
func CheckGraphInvariants(g *cfg.Graph) error {
	if g == nil {
		return fmt.Errorf("nil graph")
	}
	n := cfg.BlockID(len(g.Blocks))
	if g.Entry >= n || g.Exit >= n {
		return fmt.Errorf("entry %d or exit %d out of range (%d blocks)", g.Entry, g.Exit, n)
	}
	if len(g.Blocks[g.Exit].Succs) != 0 {
		return fmt.Errorf("exit block has successors")
	}
	owner := make(map[cfg.StmtID]cfg.BlockID)
	for _, b := range g.Blocks {
		for _, succ := range b.Succs {
			if succ >= n {
				return fmt.Errorf("block %d has out-of-range successor %d", b.ID, succ)
			}
		}
		for _, id := range b.Stmts {
			if int(id) >= len(g.Stmts) {
				return fmt.Errorf("block %d holds out-of-range statement %d", b.ID, id)
			}
			if prev, ok := owner[id]; ok {
				return fmt.Errorf("statement %d appears in blocks %d and %d", id, prev, b.ID)
			}
			owner[id] = b.ID
		}
	}
	return nil
}
