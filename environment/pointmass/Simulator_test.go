package pointmass

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	env "github.com/samuelfneumann/gopoint/environment"
)

const tolerance float64 = 1e-9

// fixedStarter always draws the same starting state: the agent at
// (state[0], state[1]) and the target at (state[2], state[3])
type fixedStarter struct {
	state []float64
}

func (f fixedStarter) Start() *mat.VecDense {
	return mat.NewVecDense(4, append([]float64(nil), f.state...))
}

// action wraps a direction in radians into an action vector
func action(direction float64) *mat.VecDense {
	return mat.NewVecDense(1, []float64{direction})
}

func TestSimulatorResetSeparatesPoints(t *testing.T) {
	unit := r1.Interval{Min: 0.0, Max: 1.0}
	starter := env.NewUniformStarter([]r1.Interval{unit, unit, unit, unit},
		uint64(1923))
	sim := NewSimulator(starter)

	for i := 0; i < 1000; i++ {
		if err := sim.Reset(); err != nil {
			t.Fatalf("episode %v: reset: %v", i, err)
		}

		if sim.Distance() <= Precision {
			t.Fatalf("episode %v starts %v from the target, want > %v",
				i, sim.Distance(), Precision)
		}
		if sim.Steps() != 0 {
			t.Errorf("episode %v: reset did not zero the step count: %v",
				i, sim.Steps())
		}
		if sim.Previous() != sim.Current() {
			t.Errorf("episode %v: previous position %v should start at the "+
				"current one %v", i, sim.Previous(), sim.Current())
		}
		if sim.InitialDistance() != sim.Distance() {
			t.Errorf("episode %v: initial distance %v does not match the "+
				"distance %v before the first step", i, sim.InitialDistance(),
				sim.Distance())
		}
	}
}

func TestSimulatorResetRejectsInseparableStarts(t *testing.T) {
	// Exactly Precision apart is not sufficiently separated, so every
	// draw is rejected
	starter := fixedStarter{[]float64{0.0, 0.0, Precision, 0.0}}
	sim := NewSimulator(starter)

	err := sim.Reset()
	if err == nil {
		t.Fatal("reset should fail when every draw places the agent " +
			"exactly Precision from the target")
	}
	if !IsStartTooClose(err) {
		t.Errorf("reset failed with the wrong error: %v", err)
	}
}

func TestSimulatorAdvance(t *testing.T) {
	starter := fixedStarter{[]float64{0.0, 0.0, 1.0, 0.0}}
	sim := NewSimulator(starter)
	if err := sim.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	sim.Advance(0.0)
	if math.Abs(sim.Current().X()-StepSize) > tolerance ||
		math.Abs(sim.Current().Y()) > tolerance {
		t.Errorf("a step in direction 0 should move +x by %v: got %v",
			StepSize, sim.Current())
	}
	if sim.Previous() != (mgl64.Vec2{0.0, 0.0}) {
		t.Errorf("previous position should hold the pre-step position: %v",
			sim.Previous())
	}
	if sim.Steps() != 1 {
		t.Errorf("step count after one step: want 1, got %v", sim.Steps())
	}

	sim.Advance(math.Pi / 2)
	if math.Abs(sim.Current().X()-StepSize) > tolerance ||
		math.Abs(sim.Current().Y()-StepSize) > tolerance {
		t.Errorf("a step in direction π/2 should move +y by %v: got %v",
			StepSize, sim.Current())
	}
	if sim.Steps() != 2 {
		t.Errorf("step count after two steps: want 2, got %v", sim.Steps())
	}
}

func TestSimulatorAdvanceWrapsDirections(t *testing.T) {
	starter := fixedStarter{[]float64{0.0, 0.0, 1.0, 0.0}}

	plain := NewSimulator(starter)
	if err := plain.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	plain.Advance(0.0)

	wrapped := NewSimulator(starter)
	if err := wrapped.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	wrapped.Advance(2 * math.Pi)

	if math.Abs(plain.Current().X()-wrapped.Current().X()) > tolerance ||
		math.Abs(plain.Current().Y()-wrapped.Current().Y()) > tolerance {
		t.Errorf("directions 0 and 2π should move the agent alike: "+
			"%v != %v", plain.Current(), wrapped.Current())
	}
}

func TestSimulatorDone(t *testing.T) {
	starter := fixedStarter{[]float64{0.0, 0.0, 0.2, 0.0}}
	sim := NewSimulator(starter)
	if err := sim.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if sim.Done() {
		t.Error("an agent 0.2 from the target should not be done")
	}

	sim.Advance(0.0)
	if !sim.Done() {
		t.Errorf("an agent %v from the target should be done",
			sim.Distance())
	}
}
