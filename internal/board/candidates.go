package board

import "fmt"

type change struct {
	cell     int32
	prev     Mask
	assigned bool
}

// Tracker maintains per-cell candidate masks over a grid and supports
// journaled assignment so a search can rewind to any earlier mark.
// Invariant: an assigned cell's mask is the singleton of its value; an
// unassigned cell's mask holds exactly the values not excluded by a peer.
type Tracker struct {
	g          *Grid
	cand       []Mask
	unassigned int
	trail      []change
}

// NewTracker computes initial candidate sets from the givens. It fails if
// propagation already leaves some cell without a legal value.
func NewTracker(g *Grid) (*Tracker, error) {
	t := &Tracker{g: g, cand: make([]Mask, g.NumCells())}
	full := g.Full()
	for i := range t.cand {
		t.cand[i] = full
	}
	for i, v := range g.Cells {
		if v != 0 {
			t.cand[i] = MaskOf(v)
		}
	}
	for i, v := range g.Cells {
		if v == 0 {
			continue
		}
		bit := MaskOf(v)
		for _, p := range g.Peers(i) {
			if g.Cells[p] == 0 {
				t.cand[p] &^= bit
			}
		}
	}
	for i, v := range g.Cells {
		if v != 0 {
			continue
		}
		t.unassigned++
		if t.cand[i] == 0 {
			return nil, fmt.Errorf("no legal value for cell at row %d col %d", g.RowOf(i)+1, g.ColOf(i)+1)
		}
	}
	return t, nil
}

// Grid returns the tracked grid.
func (t *Tracker) Grid() *Grid { return t.g }

// Unassigned returns the number of empty cells.
func (t *Tracker) Unassigned() int { return t.unassigned }

// Candidates returns the current mask for a cell.
func (t *Tracker) Candidates(cell int) Mask { return t.cand[cell] }

// Mark returns a journal position for a later UndoTo.
func (t *Tracker) Mark() int { return len(t.trail) }

// UndoTo rewinds grid values and candidate masks to the given mark.
func (t *Tracker) UndoTo(mark int) {
	for i := len(t.trail) - 1; i >= mark; i-- {
		ch := t.trail[i]
		if ch.assigned {
			t.g.Cells[ch.cell] = 0
			t.unassigned++
		}
		t.cand[ch.cell] = ch.prev
	}
	t.trail = t.trail[:mark]
}

// Assign places v into an empty cell and removes it from every peer's
// candidates. It returns false when an unassigned peer is left without
// candidates, which signals a conflict usable for backtracking; the journal
// still records everything so UndoTo stays exact.
func (t *Tracker) Assign(cell int, v uint8) bool {
	if !t.cand[cell].Has(v) || t.g.Cells[cell] != 0 {
		return false
	}
	t.trail = append(t.trail, change{cell: int32(cell), prev: t.cand[cell], assigned: true})
	t.g.Cells[cell] = v
	t.cand[cell] = MaskOf(v)
	t.unassigned--

	ok := true
	bit := MaskOf(v)
	for _, p := range t.g.Peers(cell) {
		if t.g.Cells[p] != 0 || t.cand[p]&bit == 0 {
			continue
		}
		t.trail = append(t.trail, change{cell: int32(p), prev: t.cand[p]})
		t.cand[p] &^= bit
		if t.cand[p] == 0 {
			ok = false
		}
	}
	return ok
}

// Propagate runs elimination and hidden-single rules to a fixpoint,
// cascade-assigning every forced cell. It returns false on contradiction.
func (t *Tracker) Propagate() bool {
	for {
		progress := false

		// naked singles
		for i, v := range t.g.Cells {
			if v != 0 {
				continue
			}
			m := t.cand[i]
			if m == 0 {
				return false
			}
			if m.Count() == 1 {
				if !t.Assign(i, m.Lowest()) {
					return false
				}
				progress = true
			}
		}

		// hidden singles: a value possible in exactly one cell of a unit
		for _, unit := range t.g.Units() {
			var present Mask
			for _, k := range unit {
				if v := t.g.Cells[k]; v != 0 {
					present |= MaskOf(v)
				}
			}
			missing := t.g.Full() &^ present
			for v := missing.Lowest(); v != 0; v = missing.Next(v) {
				spot, n := -1, 0
				for _, k := range unit {
					if t.g.Cells[k] == 0 && t.cand[k].Has(v) {
						n++
						spot = int(k)
						if n > 1 {
							break
						}
					}
				}
				if n == 0 {
					return false
				}
				if n == 1 {
					if !t.Assign(spot, v) {
						return false
					}
					progress = true
				}
			}
		}

		if !progress {
			return true
		}
	}
}

// MRV returns the unassigned cell with the fewest candidates, lowest index
// on ties. ok is false when the grid is complete.
func (t *Tracker) MRV() (cell int, ok bool) {
	best, bestCount := -1, 1<<30
	for i, v := range t.g.Cells {
		if v != 0 {
			continue
		}
		n := t.cand[i].Count()
		if n < bestCount {
			best, bestCount = i, n
			if n <= 1 {
				break
			}
		}
	}
	return best, best >= 0
}
