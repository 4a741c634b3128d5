package board

import (
	"fmt"
	"strings"
)

// Grid is a square Sudoku board of one of the supported sizes. Cells hold
// 0 for empty or a value in [1,Size]. Geometry (peer and unit index tables)
// is precomputed at construction and shared by all solvers.
type Grid struct {
	Size    int
	BoxRows int
	BoxCols int
	Cells   []uint8

	peers [][]int16 // per cell: indices sharing a row, column or box
	units [][]int16 // Size rows, then Size columns, then Size boxes
	rowOf []int16
	colOf []int16
	boxOf []int16
}

// boxDims returns the box shape for a supported size.
func boxDims(size int) (rows, cols int, ok bool) {
	switch size {
	case 6:
		return 2, 3, true
	case 9:
		return 3, 3, true
	case 12:
		return 3, 4, true
	case 16:
		return 4, 4, true
	case 25:
		return 5, 5, true
	}
	return 0, 0, false
}

func sizeForLength(n int) (int, bool) {
	switch n {
	case 36:
		return 6, true
	case 81:
		return 9, true
	case 144:
		return 12, true
	case 256:
		return 16, true
	case 625:
		return 25, true
	}
	return 0, false
}

// New returns an empty grid of the given size.
func New(size int) (*Grid, error) {
	br, bc, ok := boxDims(size)
	if !ok {
		return nil, fmt.Errorf("unsupported board size %d", size)
	}
	g := &Grid{
		Size:    size,
		BoxRows: br,
		BoxCols: bc,
		Cells:   make([]uint8, size*size),
	}
	g.buildGeometry()
	return g, nil
}

// Parse reads a one-line puzzle string ('.' for empty cells) and validates
// its length, alphabet and givens.
func Parse(puzzle string) (*Grid, error) {
	size, ok := sizeForLength(len(puzzle))
	if !ok {
		return nil, fmt.Errorf("unsupported puzzle length %d", len(puzzle))
	}
	g, err := New(size)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(puzzle); i++ {
		ch := puzzle[i]
		if ch == '.' {
			continue
		}
		v, ok := valueOf(size, ch)
		if !ok {
			return nil, fmt.Errorf("invalid character %q at cell %d for a %dx%d puzzle", ch, i, size, size)
		}
		g.Cells[i] = v
	}
	if cell, v := g.findDuplicateGiven(); cell >= 0 {
		r, c := cell/size, cell%size
		return nil, fmt.Errorf("duplicate given %s at row %d col %d", string(charOf(size, v)), r+1, c+1)
	}
	return g, nil
}

func (g *Grid) buildGeometry() {
	s := g.Size
	n := s * s
	g.rowOf = make([]int16, n)
	g.colOf = make([]int16, n)
	g.boxOf = make([]int16, n)
	boxesPerRow := s / g.BoxCols
	for i := 0; i < n; i++ {
		r, c := i/s, i%s
		g.rowOf[i] = int16(r)
		g.colOf[i] = int16(c)
		g.boxOf[i] = int16((r/g.BoxRows)*boxesPerRow + c/g.BoxCols)
	}

	g.units = make([][]int16, 3*s)
	for u := 0; u < s; u++ {
		row := make([]int16, s)
		col := make([]int16, s)
		for j := 0; j < s; j++ {
			row[j] = int16(u*s + j)
			col[j] = int16(j*s + u)
		}
		g.units[u] = row
		g.units[s+u] = col
	}
	for b := 0; b < s; b++ {
		box := make([]int16, s)
		topRow := (b / boxesPerRow) * g.BoxRows
		topCol := (b % boxesPerRow) * g.BoxCols
		for j := 0; j < s; j++ {
			r := topRow + j/g.BoxCols
			c := topCol + j%g.BoxCols
			box[j] = int16(r*s + c)
		}
		g.units[2*s+b] = box
	}

	g.peers = make([][]int16, n)
	seen := make([]bool, n)
	for i := 0; i < n; i++ {
		for j := range seen {
			seen[j] = false
		}
		list := make([]int16, 0, 3*(s-1))
		add := func(k int16) {
			if int(k) != i && !seen[k] {
				seen[k] = true
				list = append(list, k)
			}
		}
		for _, k := range g.units[g.rowOf[i]] {
			add(k)
		}
		for _, k := range g.units[s+int(g.colOf[i])] {
			add(k)
		}
		for _, k := range g.units[2*s+int(g.boxOf[i])] {
			add(k)
		}
		g.peers[i] = list
	}
}

// NumCells returns Size*Size.
func (g *Grid) NumCells() int { return len(g.Cells) }

// Peers returns the indices of all cells sharing a unit with cell i.
func (g *Grid) Peers(i int) []int16 { return g.peers[i] }

// Units returns all rows, columns and boxes as cell-index slices.
func (g *Grid) Units() [][]int16 { return g.units }

func (g *Grid) RowOf(i int) int { return int(g.rowOf[i]) }
func (g *Grid) ColOf(i int) int { return int(g.colOf[i]) }
func (g *Grid) BoxOf(i int) int { return int(g.boxOf[i]) }

// Full is the candidate mask with every value present.
func (g *Grid) Full() Mask { return (Mask(1) << g.Size) - 1 }

// Clone returns a deep copy sharing the immutable geometry tables.
func (g *Grid) Clone() *Grid {
	out := *g
	out.Cells = make([]uint8, len(g.Cells))
	copy(out.Cells, g.Cells)
	return &out
}

// Complete reports whether every cell is assigned.
func (g *Grid) Complete() bool {
	for _, v := range g.Cells {
		if v == 0 {
			return false
		}
	}
	return true
}

// findDuplicateGiven returns the first cell whose value repeats inside one
// of its units, or -1.
func (g *Grid) findDuplicateGiven() (cell int, value uint8) {
	for _, unit := range g.units {
		var seen Mask
		for _, k := range unit {
			v := g.Cells[k]
			if v == 0 {
				continue
			}
			bit := Mask(1) << (v - 1)
			if seen&bit != 0 {
				return int(k), v
			}
			seen |= bit
		}
	}
	return -1, 0
}

// Conflicts counts duplicated assignments across all rows, columns and
// boxes. A solved grid has zero conflicts and no empty cells.
func (g *Grid) Conflicts() int {
	return g.CountConflicts(g.Cells)
}

// CountConflicts evaluates an external cell slice against this grid's
// geometry. Each extra occurrence of a value within a unit counts as one
// conflict.
func (g *Grid) CountConflicts(cells []uint8) int {
	conflicts := 0
	var counts [26]uint8
	for _, unit := range g.units {
		for i := range counts {
			counts[i] = 0
		}
		for _, k := range unit {
			v := cells[k]
			if v == 0 {
				continue
			}
			counts[v]++
			if counts[v] > 1 {
				conflicts++
			}
		}
	}
	return conflicts
}

// CheckSolution reports whether sol is a complete, conflict-free grid that
// preserves every given of g.
func (g *Grid) CheckSolution(sol *Grid) bool {
	if sol == nil || sol.Size != g.Size {
		return false
	}
	if !sol.Complete() || sol.Conflicts() != 0 {
		return false
	}
	for i, v := range g.Cells {
		if v != 0 && sol.Cells[i] != v {
			return false
		}
	}
	return true
}

// String renders the grid as a one-line puzzle string in the size's
// alphabet, '.' for empty cells.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(len(g.Cells))
	for _, v := range g.Cells {
		if v == 0 {
			b.WriteByte('.')
		} else {
			b.WriteByte(charOf(g.Size, v))
		}
	}
	return b.String()
}

// Pretty renders a human-readable grid with box separators.
func (g *Grid) Pretty() string {
	var b strings.Builder
	s := g.Size
	boxesPerRow := s / g.BoxCols
	rule := strings.Repeat(strings.Repeat("--", g.BoxCols)+"+", boxesPerRow)
	rule = rule[:len(rule)-1]
	for r := 0; r < s; r++ {
		if r > 0 && r%g.BoxRows == 0 {
			b.WriteString(rule)
			b.WriteByte('\n')
		}
		for c := 0; c < s; c++ {
			if c > 0 && c%g.BoxCols == 0 {
				b.WriteByte('|')
			}
			v := g.Cells[r*s+c]
			if v == 0 {
				b.WriteString(" .")
			} else {
				b.WriteByte(' ')
				b.WriteByte(charOf(s, v))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
