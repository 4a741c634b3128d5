package solver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"svw.info/acosudoku/internal/board"
	"svw.info/acosudoku/internal/domain"
)

// A classic 9x9 with a unique solution.
const (
	sample9 = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
	solved9 = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
)

const complete6 = "123456456123231564564231312645645312"

func TestBacktrackingSolvesClassic9x9(t *testing.T) {
	g, err := board.Parse(sample9)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sol, st, err := NewBacktracking().Solve(ctx, g)
	if err != nil {
		t.Fatalf("Solve failed: %v (nodes=%d dur=%v)", err, st.Nodes, st.Duration)
	}
	if !g.CheckSolution(sol) {
		t.Fatalf("invalid solution:\n%s", sol.Pretty())
	}
	if got := sol.String(); got != solved9 {
		t.Fatalf("wrong solution for unique puzzle:\n got %s\nwant %s", got, solved9)
	}
	t.Logf("solved in %v, nodes=%d", st.Duration, st.Nodes)
}

func TestBacktrackingIsDeterministic(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s := NewBacktracking()
	var first string
	for run := 0; run < 3; run++ {
		g, err := board.Parse(strings.Repeat(".", 81))
		if err != nil {
			t.Fatal(err)
		}
		sol, _, err := s.Solve(ctx, g)
		if err != nil {
			t.Fatalf("run %d failed: %v", run, err)
		}
		if run == 0 {
			first = sol.String()
		} else if sol.String() != first {
			t.Fatalf("run %d diverged:\n%s\n%s", run, sol.String(), first)
		}
	}
}

func TestBacktrackingEmptyGridsAllSizes(t *testing.T) {
	for _, n := range []int{36, 81, 144} {
		g, err := board.Parse(strings.Repeat(".", n))
		if err != nil {
			t.Fatal(err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		sol, st, err := NewBacktracking().Solve(ctx, g)
		cancel()
		if err != nil {
			t.Fatalf("empty %d-cell grid failed: %v (nodes=%d)", n, err, st.Nodes)
		}
		if !g.CheckSolution(sol) {
			t.Fatalf("empty %d-cell grid produced invalid solution", n)
		}
	}
}

func TestBacktrackingForcedCell(t *testing.T) {
	puzzle := "." + complete6[1:]
	g, err := board.Parse(puzzle)
	if err != nil {
		t.Fatal(err)
	}
	sol, _, err := NewBacktracking().Solve(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if sol.String() != complete6 {
		t.Fatalf("got %s, want %s", sol.String(), complete6)
	}
}

func TestBacktrackingInfeasibleBeforeSearch(t *testing.T) {
	// cell (0,8) is forced to 9 by its row but 9 is taken in its column
	puzzle := "12345678." + "........9" + strings.Repeat(".", 63)
	g, err := board.Parse(puzzle)
	if err != nil {
		t.Fatal(err)
	}
	_, st, err := NewBacktracking().Solve(context.Background(), g)
	if !errors.Is(err, domain.ErrInfeasible) {
		t.Fatalf("want ErrInfeasible, got %v", err)
	}
	if st.Nodes != 0 {
		t.Fatalf("search ran %d nodes, contradiction should be caught during propagation", st.Nodes)
	}
}

func TestBacktrackingTimeoutClassification(t *testing.T) {
	g, err := board.Parse(strings.Repeat(".", 625))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // deadline already gone: the next stride check must stop the search

	start := time.Now()
	_, _, err = NewBacktracking().Solve(ctx, g)
	if !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("want ErrTimeout, got %v", err)
	}
	if time.Since(start) > 10*time.Second {
		t.Fatal("cancellation was not cooperative")
	}
}
