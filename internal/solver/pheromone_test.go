package solver

import (
	"math"
	"testing"
)

func TestPheromoneDiagnosticsUniform(t *testing.T) {
	p := newPheromone(81, 9, 1.0/81)
	if conv := p.convergenceRatio(0.9); conv != 0 {
		t.Fatalf("uniform matrix reported convergence %g", conv)
	}
	want := math.Log2(9)
	if ent := p.entropy(); math.Abs(ent-want) > 1e-9 {
		t.Fatalf("uniform entropy = %g, want %g", ent, want)
	}
}

func TestPheromoneDiagnosticsConverged(t *testing.T) {
	p := newPheromone(81, 9, 0)
	for i := 0; i < p.cells; i++ {
		p.tau[i][i%9] = 1
	}
	if conv := p.convergenceRatio(0.9); conv != 1 {
		t.Fatalf("converged matrix reported ratio %g", conv)
	}
	if ent := p.entropy(); ent != 0 {
		t.Fatalf("converged entropy = %g, want 0", ent)
	}
}

func TestPheromoneEvaporateAndClamp(t *testing.T) {
	p := newPheromone(4, 4, 1)
	p.evaporate(0.5)
	if p.at(0, 1) != 0.5 {
		t.Fatalf("evaporation left %g, want 0.5", p.at(0, 1))
	}
	p.add(0, 1, 10)
	p.clamp(0.4, 2)
	if p.at(0, 1) != 2 {
		t.Fatalf("clamp max failed: %g", p.at(0, 1))
	}
	p.evaporate(0.9)
	p.clamp(0.4, 2)
	if p.at(1, 1) != 0.4 {
		t.Fatalf("clamp min failed: %g", p.at(1, 1))
	}
}
