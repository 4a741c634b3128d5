package solver

import (
	"context"
	"fmt"
	"time"

	"svw.info/acosudoku/internal/board"
	"svw.info/acosudoku/internal/domain"
	"svw.info/acosudoku/internal/ports"
)

// deadlineStride is how many node expansions pass between cooperative
// deadline checks.
const deadlineStride = 128

// Backtracking is the exact solver: depth-first search with MRV cell
// selection and forced-single propagation. Fully deterministic for a given
// input.
type Backtracking struct{}

func NewBacktracking() *Backtracking { return &Backtracking{} }

func (s *Backtracking) Solve(ctx context.Context, g *board.Grid) (*board.Grid, ports.Stats, error) {
	start := time.Now()
	work := g.Clone()
	tr, err := board.NewTracker(work)
	if err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, fmt.Errorf("%w: %v", domain.ErrInfeasible, err)
	}
	if !tr.Propagate() {
		return nil, ports.Stats{Duration: time.Since(start)}, fmt.Errorf("%w: givens are contradictory", domain.ErrInfeasible)
	}

	nodes := 0
	timedOut := false
	var dfs func() bool
	dfs = func() bool {
		nodes++
		if nodes%deadlineStride == 0 && ctx.Err() != nil {
			timedOut = true
			return false
		}
		cell, ok := tr.MRV()
		if !ok {
			return true
		}
		cands := tr.Candidates(cell)
		for v := cands.Lowest(); v != 0; v = cands.Next(v) {
			mark := tr.Mark()
			if tr.Assign(cell, v) && tr.Propagate() && dfs() {
				return true
			}
			tr.UndoTo(mark)
			if timedOut {
				return false
			}
		}
		return false
	}

	if !dfs() {
		st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
		if timedOut || ctx.Err() != nil {
			return nil, st, fmt.Errorf("%w: search interrupted after %d nodes", domain.ErrTimeout, nodes)
		}
		return nil, st, fmt.Errorf("%w: search space exhausted after %d nodes", domain.ErrInfeasible, nodes)
	}
	return work, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}
