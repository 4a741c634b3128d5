package solver

import "math"

// pheromone is an S²×S trail-strength table owned by exactly one colony.
// It is never shared across goroutines; coordination happens through value
// snapshots at round boundaries.
type pheromone struct {
	cells  int
	values int
	tau    [][]float64
}

func newPheromone(cells, values int, tau0 float64) *pheromone {
	p := &pheromone{cells: cells, values: values, tau: make([][]float64, cells)}
	backing := make([]float64, cells*values)
	for i := range p.tau {
		p.tau[i] = backing[i*values : (i+1)*values]
	}
	p.reset(tau0)
	return p
}

func (p *pheromone) reset(tau0 float64) {
	for i := range p.tau {
		row := p.tau[i]
		for j := range row {
			row[j] = tau0
		}
	}
}

func (p *pheromone) at(cell int, v uint8) float64 { return p.tau[cell][v-1] }

func (p *pheromone) add(cell int, v uint8, d float64) { p.tau[cell][v-1] += d }

// evaporate decays every trail by factor (1-rho).
func (p *pheromone) evaporate(rho float64) {
	keep := 1 - rho
	for i := range p.tau {
		row := p.tau[i]
		for j := range row {
			row[j] *= keep
		}
	}
}

// clamp bounds every trail to [min,max] (MMAS).
func (p *pheromone) clamp(min, max float64) {
	for i := range p.tau {
		row := p.tau[i]
		for j := range row {
			if row[j] < min {
				row[j] = min
			} else if row[j] > max {
				row[j] = max
			}
		}
	}
}

// convergenceRatio is the fraction of cells whose pheromone-derived value
// distribution is dominated by a single value: max_v tau[c][v]/sum ≥
// dominance. A cell with no trail mass counts as undecided.
func (p *pheromone) convergenceRatio(dominance float64) float64 {
	dominated := 0
	for i := range p.tau {
		sum, max := 0.0, 0.0
		for _, t := range p.tau[i] {
			sum += t
			if t > max {
				max = t
			}
		}
		if sum > 0 && max/sum >= dominance {
			dominated++
		}
	}
	return float64(dominated) / float64(p.cells)
}

// entropy is the mean Shannon entropy (bits) of each cell's pheromone-derived
// value distribution. Uniform trails give log2(values); fully converged
// trails give 0.
func (p *pheromone) entropy() float64 {
	total := 0.0
	for i := range p.tau {
		sum := 0.0
		for _, t := range p.tau[i] {
			sum += t
		}
		if sum <= 0 {
			total += math.Log2(float64(p.values))
			continue
		}
		h := 0.0
		for _, t := range p.tau[i] {
			if t > 0 {
				q := t / sum
				h -= q * math.Log2(q)
			}
		}
		total += h
	}
	return total / float64(p.cells)
}
