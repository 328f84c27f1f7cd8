// Package cfg builds per-function control-flow graphs and drives forward
// walks over them. Branch conditions are lowered into synthetic assert
// statements on their edges, so a statement-level analysis sees every
// condition exactly where control depends on it.
package cfg

import (
	"pycheck/internal/ast"
	"pycheck/internal/source"
)

// BlockID indexes a block within one graph.
type BlockID int

// StmtID is a dense per-graph statement index, assigned in construction
// order. It keys the per-statement diagnostic map.
type StmtID int

// Block is a straight-line run of statements with successor edges.
type Block struct {
	ID    BlockID
	Stmts []StmtID
	Succs []BlockID
}

// Graph is the control-flow graph of one function body.
type Graph struct {
	Blocks []*Block
	// Stmts maps StmtID to the statement, including synthesized asserts.
	Stmts []*ast.Stmt
	Entry  BlockID
	Exit   BlockID
}

// Stmt returns the statement for an ID.
func (g *Graph) Stmt(id StmtID) *ast.Stmt {
	return g.Stmts[id]
}

type loopFrame struct {
	head BlockID
	exit BlockID
}

type builder struct {
	g     *Graph
	cur   BlockID
	loops []loopFrame
	// dead is set after return/raise/break/continue until a new block opens.
	dead bool
}

// New builds the CFG for a function body.
func New(body []*ast.Stmt) *Graph {
	b := &builder{g: &Graph{}}
	entry := b.newBlock()
	b.g.Entry = entry
	b.cur = entry

	exit := b.newBlock()
	b.g.Exit = exit

	b.stmts(body)
	b.edge(b.cur, exit)
	return b.g
}

func (b *builder) newBlock() BlockID {
	id := BlockID(len(b.g.Blocks))
	b.g.Blocks = append(b.g.Blocks, &Block{ID: id})
	return id
}

func (b *builder) edge(from, to BlockID) {
	if b.dead {
		return
	}
	blk := b.g.Blocks[from]
	for _, s := range blk.Succs {
		if s == to {
			return
		}
	}
	blk.Succs = append(blk.Succs, to)
}

// startBlock opens a fresh block and makes it current, clearing deadness.
func (b *builder) startBlock() BlockID {
	id := b.newBlock()
	b.cur = id
	b.dead = false
	return id
}

func (b *builder) append(s *ast.Stmt) {
	if b.dead {
		return
	}
	id := StmtID(len(b.g.Stmts))
	b.g.Stmts = append(b.g.Stmts, s)
	blk := b.g.Blocks[b.cur]
	blk.Stmts = append(blk.Stmts, id)
}

func (b *builder) stmts(body []*ast.Stmt) {
	for _, s := range body {
		b.stmt(s)
	}
}

func (b *builder) stmt(s *ast.Stmt) {
	if b.dead {
		return
	}
	switch d := s.Data.(type) {
	case ast.IfData:
		b.lowerIf(s.Span, d)
	case ast.WhileData:
		b.lowerWhile(s.Span, d)
	case ast.ForData:
		b.lowerFor(s.Span, d)
	case ast.WithData:
		b.lowerWith(d)
	case ast.TryData:
		b.lowerTry(d)
	case ast.MatchData:
		b.lowerMatch(d)

	case ast.ReturnData:
		b.append(s)
		b.edge(b.cur, b.g.Exit)
		b.dead = true
	case ast.RaiseData:
		b.append(s)
		b.edge(b.cur, b.g.Exit)
		b.dead = true

	case ast.MarkerData:
		switch s.Kind {
		case ast.StmtBreak:
			if frame, ok := b.loop(); ok {
				b.edge(b.cur, frame.exit)
				b.dead = true
				return
			}
			b.append(s)
		case ast.StmtContinue:
			if frame, ok := b.loop(); ok {
				b.edge(b.cur, frame.head)
				b.dead = true
				return
			}
			b.append(s)
		default:
			b.append(s)
		}

	default:
		// simple statements (and nested def/class, which the orchestrator
		// analyzes as their own definitions) stay flat in the block
		b.append(s)
	}
}

func (b *builder) loop() (loopFrame, bool) {
	if len(b.loops) == 0 {
		return loopFrame{}, false
	}
	return b.loops[len(b.loops)-1], true
}

func (b *builder) lowerIf(span source.Span, d ast.IfData) {
	condBlock := b.cur
	after := b.newBlock()

	trueBlock := b.startBlock()
	b.edge(condBlock, trueBlock)
	if d.Cond != nil {
		b.append(ast.NewAssert(condSpan(span, d.Cond), d.Cond, ast.OriginIfTrue))
	}
	b.stmts(d.Body)
	b.edge(b.cur, after)

	falseBlock := b.newBlock()
	b.cur = falseBlock
	b.dead = false
	b.edge(condBlock, falseBlock)
	if d.Cond != nil {
		b.append(ast.NewAssert(condSpan(span, d.Cond), ast.NewNot(d.Cond), ast.OriginIfFalse))
	}
	b.stmts(d.OrElse)
	b.edge(b.cur, after)

	b.cur = after
	b.dead = false
}

func (b *builder) lowerWhile(span source.Span, d ast.WhileData) {
	head := b.newBlock()
	b.edge(b.cur, head)
	b.cur = head
	b.dead = false

	after := b.newBlock()
	b.loops = append(b.loops, loopFrame{head: head, exit: after})

	bodyBlock := b.startBlock()
	b.edge(head, bodyBlock)
	if d.Cond != nil {
		b.append(ast.NewAssert(condSpan(span, d.Cond), d.Cond, ast.OriginWhileTrue))
	}
	b.stmts(d.Body)
	b.edge(b.cur, head)

	b.loops = b.loops[:len(b.loops)-1]

	elseBlock := b.newBlock()
	b.cur = elseBlock
	b.dead = false
	b.edge(head, elseBlock)
	if d.Cond != nil {
		b.append(ast.NewAssert(condSpan(span, d.Cond), ast.NewNot(d.Cond), ast.OriginWhileFalse))
	}
	b.stmts(d.OrElse)
	b.edge(b.cur, after)

	b.cur = after
	b.dead = false
}

// lowerFor desugars the loop header into a synthetic assignment
// `target = iter.__iter__().__next__()` so target binding and iterable
// evaluation flow through the ordinary assignment rules.
func (b *builder) lowerFor(span source.Span, d ast.ForData) {
	head := b.newBlock()
	b.edge(b.cur, head)
	b.cur = head
	b.dead = false

	after := b.newBlock()
	b.loops = append(b.loops, loopFrame{head: head, exit: after})

	bodyBlock := b.startBlock()
	b.edge(head, bodyBlock)
	next := ast.NewCall(d.Iter.Span,
		ast.NewAttribute(d.Iter.Span,
			ast.NewCall(d.Iter.Span, ast.NewAttribute(d.Iter.Span, d.Iter, "__iter__")),
			"__next__"))
	b.append(ast.NewAssign(span, d.Target, next))
	b.stmts(d.Body)
	b.edge(b.cur, head)

	b.loops = b.loops[:len(b.loops)-1]

	elseBlock := b.newBlock()
	b.cur = elseBlock
	b.dead = false
	b.edge(head, elseBlock)
	b.stmts(d.OrElse)
	b.edge(b.cur, after)

	b.cur = after
	b.dead = false
}

// lowerWith desugars each item into `target = context.__enter__()` (or a
// bare evaluation of the context when there is no target).
func (b *builder) lowerWith(d ast.WithData) {
	for _, item := range d.Items {
		enter := ast.NewCall(item.Context.Span,
			ast.NewAttribute(item.Context.Span, item.Context, "__enter__"))
		if item.Target != nil {
			b.append(ast.NewAssign(item.Context.Span, item.Target, enter))
		} else {
			b.append(ast.NewExprStmt(enter))
		}
	}
	b.stmts(d.Body)
}

func (b *builder) lowerTry(d ast.TryData) {
	entry := b.cur
	after := b.newBlock()

	bodyBlock := b.startBlock()
	b.edge(entry, bodyBlock)
	b.stmts(d.Body)
	bodyEnd := b.cur
	bodyDead := b.dead

	var ends []BlockID
	var endsDead []bool

	// else runs after a clean body
	if len(d.OrElse) > 0 {
		elseBlock := b.newBlock()
		b.cur = elseBlock
		b.dead = false
		if !bodyDead {
			b.g.Blocks[bodyEnd].Succs = append(b.g.Blocks[bodyEnd].Succs, elseBlock)
		}
		b.stmts(d.OrElse)
		ends = append(ends, b.cur)
		endsDead = append(endsDead, b.dead)
	} else {
		ends = append(ends, bodyEnd)
		endsDead = append(endsDead, bodyDead)
	}

	for _, h := range d.Handlers {
		hBlock := b.newBlock()
		b.cur = hBlock
		b.dead = false
		// the body may raise anywhere, so every handler is reachable from
		// the block that entered the try
		b.g.Blocks[entry].Succs = append(b.g.Blocks[entry].Succs, hBlock)
		if h.Type != nil {
			b.append(ast.NewExprStmt(h.Type))
		}
		b.stmts(h.Body)
		ends = append(ends, b.cur)
		endsDead = append(endsDead, b.dead)
	}

	if len(d.Finally) > 0 {
		finBlock := b.newBlock()
		for i, end := range ends {
			if !endsDead[i] {
				b.g.Blocks[end].Succs = append(b.g.Blocks[end].Succs, finBlock)
			}
		}
		b.cur = finBlock
		b.dead = false
		b.stmts(d.Finally)
		b.edge(b.cur, after)
	} else {
		for i, end := range ends {
			if !endsDead[i] {
				b.g.Blocks[end].Succs = append(b.g.Blocks[end].Succs, after)
			}
		}
	}

	b.cur = after
	b.dead = false
}

func (b *builder) lowerMatch(d ast.MatchData) {
	b.append(ast.NewExprStmt(d.Subject))
	entry := b.cur
	after := b.newBlock()

	for _, c := range d.Cases {
		caseBlock := b.newBlock()
		b.cur = caseBlock
		b.dead = false
		b.g.Blocks[entry].Succs = append(b.g.Blocks[entry].Succs, caseBlock)
		if c.Guard != nil {
			b.append(ast.NewAssert(c.Guard.Span, c.Guard, ast.OriginAssertion))
		}
		b.stmts(c.Body)
		b.edge(b.cur, after)
	}
	// no case may match
	b.cur = entry
	b.dead = false
	b.edge(entry, after)

	b.cur = after
	b.dead = false
}

// condSpan narrows a compound statement's span to its condition.
func condSpan(stmt source.Span, cond *ast.Expr) source.Span {
	if cond.Span != (source.Span{}) {
		return cond.Span
	}
	return stmt
}
