package ports

import (
	"context"
	"time"

	"svw.info/acosudoku/internal/board"
)

// Stats captures performance characteristics of one solve.
type Stats struct {
	Nodes      int // search nodes expanded (exact algorithm)
	Iterations int // construction rounds completed (ant algorithms)
	Duration   time.Duration
}

// Solver turns a parsed puzzle into a completed grid. Implementations must
// honor ctx deadlines cooperatively and classify failures with the
// domain error taxonomy.
type Solver interface {
	Solve(ctx context.Context, g *board.Grid) (*board.Grid, Stats, error)
}
