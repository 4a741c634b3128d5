package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"svw.info/acosudoku/internal/board"
	"svw.info/acosudoku/internal/domain"
)

const complete6 = "123456456123231564564231312645645312"

func TestSolveEmpty9x9Backtracking(t *testing.T) {
	svc := NewService(nil)
	res := svc.Solve(context.Background(), domain.Request{
		Puzzle:    strings.Repeat(".", 81),
		Algorithm: domain.AlgorithmBacktracking,
		Timeout:   5,
	})
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	puzzle, _ := board.Parse(strings.Repeat(".", 81))
	sol, err := board.Parse(res.Solution)
	if err != nil || !puzzle.CheckSolution(sol) {
		t.Fatalf("solution is not a valid completed grid: %s", res.Solution)
	}
	if res.Time <= 0 {
		t.Fatalf("elapsed time not reported: %g", res.Time)
	}
}

func TestSolveForcedCellAllAlgorithms(t *testing.T) {
	puzzle := "." + complete6[1:]
	for _, alg := range []domain.Algorithm{
		domain.AlgorithmACS,
		domain.AlgorithmBacktracking,
		domain.AlgorithmDCMACO,
	} {
		t.Run(alg.String(), func(t *testing.T) {
			res := NewService(nil).Solve(context.Background(), domain.Request{
				Puzzle:    puzzle,
				Algorithm: alg,
				Timeout:   5,
				Seed:      1,
			})
			if !res.Success {
				t.Fatalf("failed: %s", res.Error)
			}
			if res.Solution != complete6 {
				t.Fatalf("solution differs beyond the forced cell:\n got %s\nwant %s", res.Solution, complete6)
			}
		})
	}
}

func TestSolveCompleteGridIsIdempotent(t *testing.T) {
	for _, alg := range []domain.Algorithm{
		domain.AlgorithmACS,
		domain.AlgorithmBacktracking,
		domain.AlgorithmDCMACO,
	} {
		res := NewService(nil).Solve(context.Background(), domain.Request{
			Puzzle:    complete6,
			Algorithm: alg,
			Timeout:   5,
			Seed:      1,
		})
		if !res.Success || res.Solution != complete6 {
			t.Fatalf("%s altered a complete grid: success=%v solution=%s err=%s",
				alg, res.Success, res.Solution, res.Error)
		}
	}
}

func TestSolveContradictoryGivens(t *testing.T) {
	res := NewService(nil).Solve(context.Background(), domain.Request{
		Puzzle:    "55" + strings.Repeat(".", 79),
		Algorithm: domain.AlgorithmBacktracking,
		Timeout:   5,
	})
	if res.Success {
		t.Fatal("contradictory givens reported success")
	}
	if !strings.Contains(res.Error, "duplicate") {
		t.Fatalf("error should name the duplicate given: %q", res.Error)
	}
}

func TestSolveTinyTimeoutReturnsTimeout(t *testing.T) {
	res := NewService(nil).Solve(context.Background(), domain.Request{
		Puzzle:    strings.Repeat(".", 625),
		Algorithm: domain.AlgorithmDCMACO,
		Timeout:   0.01,
		Seed:      1,
	})
	if res.Success {
		t.Fatal("unsolvable-in-time instance reported success")
	}
	if !strings.Contains(res.Error, "timeout") {
		t.Fatalf("expected a timeout classification, got %q", res.Error)
	}
}

func TestSolveRejectsBadRequests(t *testing.T) {
	cases := []struct {
		name string
		req  domain.Request
	}{
		{"empty puzzle", domain.Request{Algorithm: domain.AlgorithmBacktracking}},
		{"unknown algorithm", domain.Request{Puzzle: complete6, Algorithm: 7}},
		{"negative ants", domain.Request{Puzzle: complete6, Ants: -1}},
		{"q0 out of range", domain.Request{Puzzle: complete6, Q0: 1.5}},
		{"rho out of range", domain.Request{Puzzle: complete6, Rho: -0.1}},
		{"negative timeout", domain.Request{Puzzle: complete6, Timeout: -3}},
		{"bad length", domain.Request{Puzzle: strings.Repeat(".", 80), Algorithm: domain.AlgorithmBacktracking}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := NewService(nil).Solve(context.Background(), tc.req)
			if res.Success {
				t.Fatal("invalid request accepted")
			}
			if res.Error == "" {
				t.Fatal("error text missing")
			}
		})
	}
}

func TestColonyCountIsAlwaysDerived(t *testing.T) {
	req := withDefaults(domain.Request{Puzzle: complete6, NumACS: 4, NumColonies: 99})
	if req.NumColonies != 5 {
		t.Fatalf("numColonies = %d, want numACS+1 = 5", req.NumColonies)
	}
	req = withDefaults(domain.Request{Puzzle: complete6})
	if req.NumColonies != defaultNumACS+1 {
		t.Fatalf("default numColonies = %d, want %d", req.NumColonies, defaultNumACS+1)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("%w: x", domain.ErrInput), "input"},
		{fmt.Errorf("%w: x", domain.ErrInfeasible), "infeasible"},
		{fmt.Errorf("%w: x", domain.ErrTimeout), "timeout"},
		{fmt.Errorf("%w: x", domain.ErrInternal), "internal"},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Fatalf("Classify(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
