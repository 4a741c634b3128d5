package solver

import (
	"math"
	"math/rand"

	"svw.info/acosudoku/internal/board"
)

type colonyKind int

const (
	kindACS colonyKind = iota
	kindMMAS
)

// MMAS colonies always run pure roulette selection with a fixed slow
// evaporation, independent of the caller's ACS parameters.
const (
	mmasQ0  = 0.0
	mmasRho = 0.1
)

// bestSnapshot is the immutable value copy of a colony's best construction
// exchanged at round boundaries.
type bestSnapshot struct {
	cells []uint8
	cost  int
}

// colony owns one pheromone matrix, one random stream and the scratch
// buffers its ants construct into. All of its state is touched by a single
// goroutine at a time.
type colony struct {
	kind colonyKind
	g    *board.Grid
	pher *pheromone
	rng  *rand.Rand

	ants int
	q0   float64
	rho  float64
	evap float64
	tau0 float64

	tauMin float64
	tauMax float64

	emptyCells []int

	iter        int
	best        []uint8
	bestCost    int
	lastImprove int
	solution    []uint8 // set once an ant completes a conflict-free grid

	// per-ant scratch, reused across constructions
	antCells []uint8
	iterBest []uint8
	rowUsed  []board.Mask
	colUsed  []board.Mask
	boxUsed  []board.Mask
	vals     []uint8
	wheel    []float64
}

func newColony(kind colonyKind, g *board.Grid, ants int, q0, rho, evap float64, rng *rand.Rand) *colony {
	n := g.NumCells()
	c := &colony{
		kind:     kind,
		g:        g,
		rng:      rng,
		ants:     ants,
		q0:       q0,
		rho:      rho,
		evap:     evap,
		tau0:     1 / float64(n),
		bestCost: math.MaxInt,
		best:     make([]uint8, n),
		antCells: make([]uint8, n),
		iterBest: make([]uint8, n),
		rowUsed:  make([]board.Mask, g.Size),
		colUsed:  make([]board.Mask, g.Size),
		boxUsed:  make([]board.Mask, g.Size),
		vals:     make([]uint8, g.Size),
		wheel:    make([]float64, g.Size),
	}
	if kind == kindMMAS {
		c.q0 = mmasQ0
		c.rho = mmasRho
		c.tauMax = c.tau0 / c.rho
		c.tauMin = c.tauMax / (2 * float64(g.Size))
	}
	for i, v := range g.Cells {
		if v == 0 {
			c.emptyCells = append(c.emptyCells, i)
		}
	}
	c.pher = newPheromone(n, g.Size, c.tau0)
	return c
}

// runIteration lets every ant construct a complete assignment, applies the
// global pheromone update for the iteration and reports whether some ant
// reached cost zero.
func (c *colony) runIteration() bool {
	iterBestCost := math.MaxInt
	for a := 0; a < c.ants; a++ {
		cost := c.construct()
		if cost < iterBestCost {
			iterBestCost = cost
			copy(c.iterBest, c.antCells)
		}
		if cost == 0 {
			break
		}
	}

	if iterBestCost < c.bestCost {
		c.bestCost = iterBestCost
		copy(c.best, c.iterBest)
		c.lastImprove = c.iter
	}

	// global update: full evaporation, then reinforcement of the iteration
	// best (ACS) or the best-so-far (MMAS).
	c.pher.evaporate(c.rho)
	target, targetCost := c.iterBest, iterBestCost
	if c.kind == kindMMAS {
		target, targetCost = c.best, c.bestCost
	}
	d := c.deposit(targetCost)
	for i, v := range target {
		if v != 0 {
			c.pher.add(i, v, d)
		}
	}
	if c.kind == kindMMAS {
		c.tauMax = d / c.rho
		c.tauMin = c.tauMax / (2 * float64(c.g.Size))
		c.pher.clamp(c.tauMin, c.tauMax)
	}

	c.iter++
	if iterBestCost == 0 {
		c.solution = append([]uint8(nil), c.iterBest...)
		return true
	}
	return false
}

// deposit is the reinforcement amount for a construction of the given cost:
// evap·S²/cost, with a fixed bonus of 2·evap·S² for a solved grid.
func (c *colony) deposit(cost int) float64 {
	n := float64(c.g.NumCells())
	if cost <= 0 {
		return 2 * c.evap * n
	}
	return c.evap * n / float64(cost)
}

// construct fills every empty cell in fixed order into c.antCells and
// returns the conflict count of the completed grid. When no legal value
// remains for a cell the ant places the least conflicting one; those
// conflicts surface in the cost.
func (c *colony) construct() int {
	copy(c.antCells, c.g.Cells)
	for i := range c.rowUsed {
		c.rowUsed[i], c.colUsed[i], c.boxUsed[i] = 0, 0, 0
	}
	for i, v := range c.g.Cells {
		if v != 0 {
			bit := board.MaskOf(v)
			c.rowUsed[c.g.RowOf(i)] |= bit
			c.colUsed[c.g.ColOf(i)] |= bit
			c.boxUsed[c.g.BoxOf(i)] |= bit
		}
	}

	full := c.g.Full()
	for _, cell := range c.emptyCells {
		r, cl, b := c.g.RowOf(cell), c.g.ColOf(cell), c.g.BoxOf(cell)
		legal := full &^ (c.rowUsed[r] | c.colUsed[cl] | c.boxUsed[b])
		var v uint8
		if legal != 0 {
			v = c.pick(cell, legal)
		} else {
			v = c.leastConflicting(r, cl, b)
		}
		c.antCells[cell] = v
		bit := board.MaskOf(v)
		c.rowUsed[r] |= bit
		c.colUsed[cl] |= bit
		c.boxUsed[b] |= bit
		if c.kind == kindACS {
			c.localUpdate(cell, v)
		}
	}
	return c.g.CountConflicts(c.antCells)
}

// pick chooses a value from the legal mask: with probability q0 the
// greedy argmax of pheromone×heuristic, otherwise roulette selection
// proportional to the same score.
func (c *colony) pick(cell int, legal board.Mask) uint8 {
	n := 0
	total := 0.0
	bestV, bestScore := uint8(0), -1.0
	for v := legal.Lowest(); v != 0; v = legal.Next(v) {
		s := c.pher.at(cell, v) * c.heuristic(cell, v)
		c.vals[n] = v
		total += s
		c.wheel[n] = total
		n++
		if s > bestScore {
			bestScore, bestV = s, v
		}
	}
	if n == 1 {
		return c.vals[0]
	}
	if c.rng.Float64() < c.q0 {
		return bestV
	}
	if total <= 0 {
		return c.vals[c.rng.Intn(n)]
	}
	x := c.rng.Float64() * total
	for i := 0; i < n; i++ {
		if c.wheel[i] > x {
			return c.vals[i]
		}
	}
	return c.vals[n-1]
}

// heuristic favors values that constrain the fewest still-empty peers:
// 1/(1+k) where k counts peers for which v is currently legal.
func (c *colony) heuristic(cell int, v uint8) float64 {
	bit := board.MaskOf(v)
	k := 0
	for _, p := range c.g.Peers(cell) {
		if c.antCells[p] != 0 {
			continue
		}
		pi := int(p)
		used := c.rowUsed[c.g.RowOf(pi)] | c.colUsed[c.g.ColOf(pi)] | c.boxUsed[c.g.BoxOf(pi)]
		if used&bit == 0 {
			k++
		}
	}
	return 1 / float64(1+k)
}

// leastConflicting picks the value present in the fewest of the cell's
// three units, lowest value on ties.
func (c *colony) leastConflicting(r, cl, b int) uint8 {
	best, bestN := uint8(1), 4
	for v := uint8(1); v <= uint8(c.g.Size); v++ {
		bit := board.MaskOf(v)
		n := 0
		if c.rowUsed[r]&bit != 0 {
			n++
		}
		if c.colUsed[cl]&bit != 0 {
			n++
		}
		if c.boxUsed[b]&bit != 0 {
			n++
		}
		if n < bestN {
			bestN, best = n, v
		}
	}
	return best
}

// localUpdate decays the trail an ant just used toward tau0 so later ants
// in the same iteration diversify.
func (c *colony) localUpdate(cell int, v uint8) {
	t := c.pher.at(cell, v)
	c.pher.tau[cell][v-1] = (1-c.evap)*t + c.evap*c.tau0
}

// resetPheromone restores the uniform baseline after stagnation.
func (c *colony) resetPheromone() {
	c.pher.reset(c.tau0)
	if c.kind == kindMMAS {
		c.tauMax = c.tau0 / c.rho
		c.tauMin = c.tauMax / (2 * float64(c.g.Size))
	}
}

// absorb is the collaborative restart: the trail is rebuilt from the
// uniform baseline plus a partial deposit along the global-best snapshot.
func (c *colony) absorb(s bestSnapshot, mix float64) {
	c.resetPheromone()
	d := mix * c.deposit(s.cost)
	for i, v := range s.cells {
		if v != 0 {
			c.pher.add(i, v, d)
		}
	}
	if c.kind == kindMMAS {
		c.pher.clamp(c.tauMin, c.tauMax)
	}
}
