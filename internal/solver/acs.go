package solver

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"svw.info/acosudoku/internal/board"
	"svw.info/acosudoku/internal/domain"
	"svw.info/acosudoku/internal/ports"
)

// ACS is the single-colony Ant Colony System. It is incomplete: it either
// finds a conflict-free grid or runs until the deadline.
type ACS struct {
	Ants int
	Q0   float64
	Rho  float64
	Evap float64
	Seed int64
}

func NewACS(ants int, q0, rho, evap float64, seed int64) *ACS {
	return &ACS{Ants: ants, Q0: q0, Rho: rho, Evap: evap, Seed: seed}
}

func (s *ACS) Solve(ctx context.Context, g *board.Grid) (*board.Grid, ports.Stats, error) {
	start := time.Now()
	col := newColony(kindACS, g, s.Ants, s.Q0, s.Rho, s.Evap, rand.New(rand.NewSource(s.Seed)))

	for {
		if col.runIteration() {
			out := g.Clone()
			copy(out.Cells, col.solution)
			return out, ports.Stats{Iterations: col.iter, Duration: time.Since(start)}, nil
		}
		if ctx.Err() != nil {
			return nil, ports.Stats{Iterations: col.iter, Duration: time.Since(start)},
				fmt.Errorf("%w: best construction had %d conflicts after %d iterations",
					domain.ErrTimeout, col.bestCost, col.iter)
		}
	}
}
