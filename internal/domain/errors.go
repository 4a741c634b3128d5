package domain

import "errors"

// Error taxonomy reaching the caller. Internal setbacks (dead-end branches,
// stagnant colonies, infeasible ant constructions) are recovered locally and
// never surface as one of these.
var (
	// ErrInput marks a malformed puzzle string, an unsupported size, or
	// contradictory givens detected during initial propagation.
	ErrInput = errors.New("invalid input")

	// ErrInfeasible marks an exhausted search tree: the puzzle has no
	// solution. Only the exact algorithm can report this.
	ErrInfeasible = errors.New("puzzle has no solution")

	// ErrTimeout marks a deadline elapsing before a solution was found.
	ErrTimeout = errors.New("timeout before solution")

	// ErrInternal marks any unexpected failure.
	ErrInternal = errors.New("internal error")
)
