package domain

// Algorithm selects the solving strategy.
type Algorithm int

const (
	AlgorithmACS          Algorithm = iota // single-colony Ant Colony System
	AlgorithmBacktracking                  // exact depth-first search
	AlgorithmDCMACO                        // multi-colony DCM-ACO
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmACS:
		return "acs"
	case AlgorithmBacktracking:
		return "backtracking"
	case AlgorithmDCMACO:
		return "dcm-aco"
	default:
		return "unknown"
	}
}

// Valid reports whether a is one of the three supported selectors.
func (a Algorithm) Valid() bool {
	return a == AlgorithmACS || a == AlgorithmBacktracking || a == AlgorithmDCMACO
}
