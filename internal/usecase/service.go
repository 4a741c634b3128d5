package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"svw.info/acosudoku/internal/board"
	"svw.info/acosudoku/internal/domain"
	"svw.info/acosudoku/internal/ports"
	"svw.info/acosudoku/internal/solver"
)

// Hyperparameter defaults applied when a request leaves a field zero.
const (
	defaultAntsACS    = 12
	defaultAntsDCM    = 4
	defaultNumACS     = 2
	defaultQ0         = 0.9
	defaultRho        = 0.9
	defaultEvap       = 0.005
	defaultConvThresh = 0.9
	defaultEntropy    = 1.0
	defaultTimeout    = 10.0 // seconds
)

// Service is the engine's request/response facade: it validates a request,
// builds the selected solver, measures wall-clock time and packages the
// outcome. No state survives a call.
type Service struct {
	Log *slog.Logger
}

func NewService(log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{Log: log}
}

// Solve dispatches a request to the selected algorithm and always returns a
// well-formed result: success with a solution, or success=false with an
// error message from the taxonomy. It never panics through to the caller.
func (s *Service) Solve(ctx context.Context, req domain.Request) domain.Result {
	start := time.Now()
	sol, err := s.run(ctx, req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		s.Log.Debug("solve failed", "algorithm", req.Algorithm.String(),
			"kind", Classify(err), "err", err, "secs", elapsed)
		return domain.Result{Success: false, Time: elapsed, Error: err.Error()}
	}
	return domain.Result{Success: true, Solution: sol.String(), Time: elapsed}
}

func (s *Service) run(ctx context.Context, req domain.Request) (g *board.Grid, err error) {
	defer func() {
		if r := recover(); r != nil {
			g, err = nil, fmt.Errorf("%w: %v", domain.ErrInternal, r)
		}
	}()

	req = withDefaults(req)
	if err := validate(req); err != nil {
		return nil, err
	}
	puzzle, err := board.Parse(req.Puzzle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInput, err)
	}

	var eng ports.Solver
	switch req.Algorithm {
	case domain.AlgorithmACS:
		eng = solver.NewACS(req.Ants, req.Q0, req.Rho, req.Evap, req.Seed)
	case domain.AlgorithmBacktracking:
		eng = solver.NewBacktracking()
	case domain.AlgorithmDCMACO:
		eng = solver.NewDCMACO(req.Ants, req.NumACS, req.Q0, req.Rho, req.Evap,
			req.ConvThresh, req.EntropyThresh, req.Seed)
	}

	deadline := time.Duration(req.Timeout * float64(time.Second))
	runCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	sol, st, err := eng.Solve(runCtx, puzzle)
	if err != nil {
		return nil, err
	}
	if !puzzle.CheckSolution(sol) {
		return nil, fmt.Errorf("%w: solver produced an invalid grid", domain.ErrInternal)
	}
	s.Log.Debug("solved", "algorithm", req.Algorithm.String(),
		"nodes", st.Nodes, "iterations", st.Iterations, "dur", st.Duration.Round(time.Millisecond))
	return sol, nil
}

// withDefaults fills unset fields and derives the colony count: numColonies
// is always numACS+1, whatever the caller supplied.
func withDefaults(req domain.Request) domain.Request {
	if req.Ants == 0 {
		if req.Algorithm == domain.AlgorithmDCMACO {
			req.Ants = defaultAntsDCM
		} else {
			req.Ants = defaultAntsACS
		}
	}
	if req.NumACS == 0 {
		req.NumACS = defaultNumACS
	}
	req.NumColonies = req.NumACS + 1
	if req.Q0 == 0 {
		req.Q0 = defaultQ0
	}
	if req.Rho == 0 {
		req.Rho = defaultRho
	}
	if req.Evap == 0 {
		req.Evap = defaultEvap
	}
	if req.ConvThresh == 0 {
		req.ConvThresh = defaultConvThresh
	}
	if req.EntropyThresh == 0 {
		req.EntropyThresh = defaultEntropy
	}
	if req.Timeout == 0 {
		req.Timeout = defaultTimeout
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}
	return req
}

func validate(req domain.Request) error {
	switch {
	case req.Puzzle == "":
		return fmt.Errorf("%w: empty puzzle string", domain.ErrInput)
	case !req.Algorithm.Valid():
		return fmt.Errorf("%w: unknown algorithm selector %d", domain.ErrInput, int(req.Algorithm))
	case req.Ants < 1:
		return fmt.Errorf("%w: nAnts must be at least 1", domain.ErrInput)
	case req.NumACS < 1:
		return fmt.Errorf("%w: numACS must be at least 1", domain.ErrInput)
	case req.Q0 < 0 || req.Q0 > 1:
		return fmt.Errorf("%w: q0 must be in [0,1]", domain.ErrInput)
	case req.Rho < 0 || req.Rho > 1:
		return fmt.Errorf("%w: rho must be in [0,1]", domain.ErrInput)
	case req.Evap < 0 || req.Evap > 1:
		return fmt.Errorf("%w: evap must be in [0,1]", domain.ErrInput)
	case req.ConvThresh < 0 || req.ConvThresh > 1:
		return fmt.Errorf("%w: convThresh must be in [0,1]", domain.ErrInput)
	case req.EntropyThresh < 0:
		return fmt.Errorf("%w: entropyThresh must be non-negative", domain.ErrInput)
	case req.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", domain.ErrInput)
	}
	return nil
}

// Classify maps a result error message back to its taxonomy kind; used by
// callers that need coarse failure categories rather than message text.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrInput):
		return "input"
	case errors.Is(err, domain.ErrInfeasible):
		return "infeasible"
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	default:
		return "internal"
	}
}
