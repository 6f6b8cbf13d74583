package heuristic

import (
	"math"
	"testing"

	"github.com/samuelfneumann/gopoint/environment/pointmass"
	"github.com/samuelfneumann/gopoint/timestep"
	"gonum.org/v1/gonum/mat"
)

const tolerance float64 = 1e-9

// fixedStarter always starts episodes from the same state
type fixedStarter struct {
	state []float64
}

func (f fixedStarter) Start() *mat.VecDense {
	out := make([]float64, len(f.state))
	copy(out, f.state)
	return mat.NewVecDense(len(out), out)
}

// obsStep wraps an observation vector in a timestep for SelectAction
func obsStep(obs []float64) timestep.TimeStep {
	return timestep.New(timestep.Mid, 0, 1,
		mat.NewVecDense(len(obs), obs), 1)
}

func TestRandomSelectsHeadingsInRange(t *testing.T) {
	p := NewRandom(1923)

	for i := 0; i < 1000; i++ {
		action := p.SelectAction(timestep.TimeStep{})
		if action.Len() != 1 {
			t.Fatalf("action should have a single dimension, got %v",
				action.Len())
		}

		heading := action.AtVec(0)
		if heading < 0 || heading >= 2*math.Pi {
			t.Errorf("heading %v outside [0, 2π)", heading)
		}
	}
}

func TestRandomIsDeterministicPerSeed(t *testing.T) {
	first := NewRandom(1923)
	second := NewRandom(1923)

	for i := 0; i < 10; i++ {
		a := first.SelectAction(timestep.TimeStep{}).AtVec(0)
		b := second.SelectAction(timestep.TimeStep{}).AtVec(0)
		if a != b {
			t.Fatalf("equally seeded policies diverged on draw %v: "+
				"%v != %v", i, a, b)
		}
	}
}

func TestConstantSelectsFixedHeading(t *testing.T) {
	p := NewConstant(math.Pi / 2)

	for i := 0; i < 10; i++ {
		heading := p.SelectAction(timestep.TimeStep{}).AtVec(0)
		if heading != math.Pi/2 {
			t.Errorf("want heading %v, got %v", math.Pi/2, heading)
		}
	}
}

func TestHomingHeadsForTarget(t *testing.T) {
	p := NewHoming()

	tests := []struct {
		obs  []float64
		want float64
	}{
		{[]float64{1, 0}, 0},
		{[]float64{0, -2}, -math.Pi / 2},
		{[]float64{3, 4}, math.Atan2(4, 3)},
		{[]float64{0, 0, 0, 1}, math.Pi / 2},
		{[]float64{1, 1, 0, 1}, math.Pi},
	}

	for _, test := range tests {
		heading := p.SelectAction(obsStep(test.obs)).AtVec(0)
		if math.Abs(heading-test.want) > tolerance {
			t.Errorf("observation %v: want heading %v, got %v", test.obs,
				test.want, heading)
		}
	}
}

func TestScriptedEvalToggle(t *testing.T) {
	p := NewRandom(1923)

	if p.IsEval() {
		t.Error("policies should start in training mode")
	}

	p.Eval()
	if !p.IsEval() {
		t.Error("Eval() should place the policy in evaluation mode")
	}

	p.Train()
	if p.IsEval() {
		t.Error("Train() should place the policy in training mode")
	}
}

// runHoming steps e with a Homing policy until the episode ends and
// returns the number of steps taken, the undiscounted return, and the
// final timestep.
func runHoming(t *testing.T, e interface {
	Step(*mat.VecDense) (timestep.TimeStep, bool, error)
}, start timestep.TimeStep) (int, float64, timestep.TimeStep) {

	p := NewHoming()
	step := start
	steps := 0
	undiscounted := 0.0

	for {
		next, last, err := e.Step(p.SelectAction(step))
		if err != nil {
			t.Fatalf("step: %v", err)
		}

		steps++
		undiscounted += next.Reward
		step = next

		if last {
			return steps, undiscounted, step
		}
		if steps > 100 {
			t.Fatal("episode did not finish")
		}
	}
}

func TestHomingFinishesEpisode(t *testing.T) {
	starter := fixedStarter{[]float64{0, 0, 1, 0}}
	task := pointmass.NewReach(pointmass.MaxSteps)

	e, start, err := pointmass.New(task, starter, pointmass.Relative, 1.0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	steps, undiscounted, last := runHoming(t, e, start)

	if steps != 9 {
		t.Errorf("homing should reach the target in 9 steps, took %v", steps)
	}
	if last.EndType != timestep.TerminalStateReached {
		t.Errorf("episode should end at the target, ended with %v",
			last.EndType)
	}
	if math.Abs(undiscounted-19.0) > tolerance {
		t.Errorf("want return 19, got %v", undiscounted)
	}
}

func TestHomingFinishesEpisodeAbsolute(t *testing.T) {
	starter := fixedStarter{[]float64{0, 0, 1, 0}}
	task := pointmass.NewReach(pointmass.MaxSteps)

	e, start, err := pointmass.New(task, starter, pointmass.Absolute, 1.0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	steps, _, last := runHoming(t, e, start)

	if steps != 9 {
		t.Errorf("homing should reach the target in 9 steps, took %v", steps)
	}
	if last.EndType != timestep.TerminalStateReached {
		t.Errorf("episode should end at the target, ended with %v",
			last.EndType)
	}
}
