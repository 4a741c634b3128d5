package solver

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"svw.info/acosudoku/internal/board"
	"svw.info/acosudoku/internal/domain"
	"svw.info/acosudoku/internal/ports"
)

// Coordinator tunables. The dominance and migration constants are internal
// calibration; convergence/entropy thresholds come from the request.
const (
	// dominanceThreshold: a cell counts as converged when one value holds
	// at least this share of its trail mass.
	dominanceThreshold = 0.9
	// stagnationWindow: rounds without cost improvement before a converged,
	// low-entropy colony is restarted.
	stagnationWindow = 25
	// migrationMix: share of a full best-cost deposit seeded into a
	// restarted colony along the global-best snapshot.
	migrationMix = 0.2
)

// DCMACO coordinates NumACS ACS colonies plus one MMAS colony. Colonies run
// their iterations in parallel and synchronize at a round barrier where the
// coordinator harvests solutions, refreshes the global-best snapshot and
// applies stagnation interventions.
type DCMACO struct {
	Ants          int
	NumACS        int
	Q0            float64
	Rho           float64
	Evap          float64
	ConvThresh    float64
	EntropyThresh float64
	Seed          int64
}

func NewDCMACO(ants, numACS int, q0, rho, evap, convThresh, entropyThresh float64, seed int64) *DCMACO {
	return &DCMACO{
		Ants: ants, NumACS: numACS,
		Q0: q0, Rho: rho, Evap: evap,
		ConvThresh: convThresh, EntropyThresh: entropyThresh,
		Seed: seed,
	}
}

func (s *DCMACO) Solve(ctx context.Context, g *board.Grid) (*board.Grid, ports.Stats, error) {
	start := time.Now()
	numACS := s.NumACS
	if numACS < 1 {
		numACS = 1
	}
	// The colony count is always derived, never taken from the caller.
	numColonies := numACS + 1

	cols := make([]*colony, numColonies)
	for i := range cols {
		kind := kindACS
		if i == numACS {
			kind = kindMMAS
		}
		rng := rand.New(rand.NewSource(s.Seed + int64(i)))
		cols[i] = newColony(kind, g, s.Ants, s.Q0, s.Rho, s.Evap, rng)
	}

	var stop atomic.Bool
	global := bestSnapshot{cost: math.MaxInt}
	round := 0

	for {
		// Every colony runs one construction+update cycle independently;
		// no mutable state is shared during this step.
		var wg sync.WaitGroup
		for _, c := range cols {
			wg.Add(1)
			go func(c *colony) {
				defer wg.Done()
				if stop.Load() {
					return
				}
				c.runIteration()
			}(c)
		}
		wg.Wait()
		round++

		// First solution wins; ties within a round break to the lowest
		// colony index so seeded runs stay reproducible.
		for _, c := range cols {
			if c.solution != nil {
				stop.Store(true)
				out := g.Clone()
				copy(out.Cells, c.solution)
				return out, ports.Stats{Iterations: round, Duration: time.Since(start)}, nil
			}
		}

		// Refresh the global-best snapshot (value copy, never a live
		// reference into a colony).
		for _, c := range cols {
			if c.bestCost < global.cost {
				global = bestSnapshot{cells: append([]uint8(nil), c.best...), cost: c.bestCost}
			}
		}

		// Stagnation: converged, low-entropy, and no improvement across the
		// window. The strongest colony restarts uniform and keeps exploring;
		// weaker colonies absorb structure from the global best.
		for _, c := range cols {
			if round-c.lastImprove < stagnationWindow {
				continue
			}
			conv := c.pher.convergenceRatio(dominanceThreshold)
			ent := c.pher.entropy()
			if conv <= s.ConvThresh || ent >= s.EntropyThresh {
				continue
			}
			if global.cells != nil && c.bestCost > global.cost {
				c.absorb(global, migrationMix)
			} else {
				c.resetPheromone()
			}
			c.lastImprove = round
		}

		if ctx.Err() != nil {
			stop.Store(true)
			return nil, ports.Stats{Iterations: round, Duration: time.Since(start)},
				fmt.Errorf("%w: best construction had %d conflicts after %d rounds",
					domain.ErrTimeout, global.cost, round)
		}
	}
}
