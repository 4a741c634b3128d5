package domain

// Request carries one solve call: the puzzle, the algorithm selector and
// the metaheuristic hyperparameters. Zero values fall back to defaults
// applied by the usecase layer.
type Request struct {
	Puzzle        string    `json:"puzzle"`
	Algorithm     Algorithm `json:"algorithm"`
	Ants          int       `json:"nAnts,omitempty"`
	NumColonies   int       `json:"numColonies,omitempty"`
	NumACS        int       `json:"numACS,omitempty"`
	Q0            float64   `json:"q0,omitempty"`
	Rho           float64   `json:"rho,omitempty"`
	Evap          float64   `json:"evap,omitempty"`
	ConvThresh    float64   `json:"convThresh,omitempty"`
	EntropyThresh float64   `json:"entropyThresh,omitempty"`
	Timeout       float64   `json:"timeout,omitempty"` // seconds
	Seed          int64     `json:"seed,omitempty"`    // 0 = time-derived
}

// Result is the uniform response for all three algorithms.
type Result struct {
	Success  bool    `json:"success"`
	Solution string  `json:"solution,omitempty"`
	Time     float64 `json:"time"` // wall-clock seconds
	Error    string  `json:"error,omitempty"`
}
