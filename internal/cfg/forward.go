package cfg

import (
	"errors"
	"fmt"
)

// visitThreshold bounds how often one block may be revisited before the
// walk is declared divergent.
const visitThreshold = 64

// ErrDivergent is returned when a pathological graph keeps a block in the
// worklist past the visit threshold.
var ErrDivergent = errors.New("cfg: forward walk did not stabilize")

// Lattice supplies the abstract-state operations of a forward walk.
type Lattice[S any] interface {
	Bottom() S
	Join(a, b S) S
	// LessOrEqual reports a <= b; a block whose input did not grow is not
	// revisited.
	LessOrEqual(a, b S) bool
}

// Transfer folds one statement into the state.
type Transfer[S any] func(state S, id StmtID, g *Graph) S

// Result holds the per-block final states of a forward walk.
type Result[S any] struct {
	g *Graph
	// In and Out are indexed by BlockID.
	In  []S
	Out []S
	// Reached marks the blocks the walk visited.
	Reached []bool
}

// Exit returns the exit block's final state; ok is false when the exit was
// never reached (the function always raises or loops).
func (r *Result[S]) Exit() (S, bool) {
	if !r.Reached[r.g.Exit] {
		var zero S
		return zero, false
	}
	return r.Out[r.g.Exit], true
}

// Forward walks the graph from its entry, applying transfer to every
// statement of every reachable block in a forward-consistent order. Every
// reachable statement is visited at least once; back edges revisit until
// the block's input stops growing.
func Forward[S any](g *Graph, lat Lattice[S], initial S, transfer Transfer[S]) (*Result[S], error) {
	n := len(g.Blocks)
	res := &Result[S]{
		g:       g,
		In:      make([]S, n),
		Out:     make([]S, n),
		Reached: make([]bool, n),
	}
	for i := range res.In {
		res.In[i] = lat.Bottom()
		res.Out[i] = lat.Bottom()
	}
	res.In[g.Entry] = initial

	visits := make([]int, n)
	queue := []BlockID{g.Entry}
	queued := make([]bool, n)
	queued[g.Entry] = true

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		queued[id] = false

		visits[id]++
		if visits[id] > visitThreshold {
			return res, fmt.Errorf("%w: block %d visited %d times", ErrDivergent, id, visits[id])
		}

		res.Reached[id] = true

		state := res.In[id]
		for _, sid := range g.Blocks[id].Stmts {
			state = transfer(state, sid, g)
		}
		res.Out[id] = state

		for _, succ := range g.Blocks[id].Succs {
			grown := !lat.LessOrEqual(state, res.In[succ])
			if grown {
				res.In[succ] = lat.Join(res.In[succ], state)
			}
			if (grown || !res.Reached[succ]) && !queued[succ] {
				queue = append(queue, succ)
				queued[succ] = true
			}
		}
	}
	return res, nil
}

// UnitLattice is the trivial lattice: the walk carries no information from
// statement to statement, it only guarantees visit order. All real output
// flows through side effects of the transfer function.
type UnitLattice struct{}

// Unit is the single abstract value.
type Unit struct{}

// Bottom returns the unit value.
func (UnitLattice) Bottom() Unit { return Unit{} }

// Join returns the unit value.
func (UnitLattice) Join(Unit, Unit) Unit { return Unit{} }

// LessOrEqual is always true.
func (UnitLattice) LessOrEqual(Unit, Unit) bool { return true }
