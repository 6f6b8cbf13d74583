package pointmass

import (
	"bytes"
	"io"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	env "github.com/samuelfneumann/gopoint/environment"
)

func TestPointMassObservationEncodings(t *testing.T) {
	starter := fixedStarter{[]float64{0.25, 0.25, 0.75, 0.75}}

	relative, first, err := New(NewReach(MaxSteps), starter, Relative, 1.0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	wantRelative := mat.NewVecDense(2, []float64{0.5, 0.5})
	if !mat.Equal(first.Observation, wantRelative) {
		t.Errorf("relative observation: want %v, got %v", wantRelative,
			first.Observation)
	}
	if relative.ObservationSpec().Shape.Len() != 2 {
		t.Errorf("relative observations should have 2 features, spec says %v",
			relative.ObservationSpec().Shape.Len())
	}

	absolute, first, err := New(NewReach(MaxSteps), starter, Absolute, 1.0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	wantAbsolute := mat.NewVecDense(4, []float64{0.25, 0.25, 0.75, 0.75})
	if !mat.Equal(first.Observation, wantAbsolute) {
		t.Errorf("absolute observation: want %v, got %v", wantAbsolute,
			first.Observation)
	}
	if absolute.ObservationSpec().Shape.Len() != 4 {
		t.Errorf("absolute observations should have 4 features, spec says %v",
			absolute.ObservationSpec().Shape.Len())
	}
}

func TestPointMassRelativeObservationRoundTrip(t *testing.T) {
	agentX, agentY := 0.13, 0.21
	targetX, targetY := 0.87, 0.56
	starter := fixedStarter{[]float64{agentX, agentY, targetX, targetY}}

	_, first, err := New(NewReach(MaxSteps), starter, Relative, 1.0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// The agent's position plus the relative observation recovers the
	// target
	gotX := agentX + first.Observation.AtVec(0)
	gotY := agentY + first.Observation.AtVec(1)
	if math.Abs(gotX-targetX) > 1e-12 || math.Abs(gotY-targetY) > 1e-12 {
		t.Errorf("offset does not recover the target: want (%v, %v), "+
			"got (%v, %v)", targetX, targetY, gotX, gotY)
	}
}

func TestPointMassUnknownEncoding(t *testing.T) {
	starter := fixedStarter{[]float64{0.0, 0.0, 1.0, 0.0}}

	_, _, err := New(NewReach(MaxSteps), starter, Encoding("Polar"), 1.0)
	if err == nil {
		t.Error("creating an environment with an unknown observation " +
			"encoding should fail")
	}
}

func TestPointMassInvalidActions(t *testing.T) {
	starter := fixedStarter{[]float64{0.0, 0.0, 5.0, 5.0}}
	pm, _, err := New(NewReach(MaxSteps), starter, Relative, 1.0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	actions := []*mat.VecDense{
		nil,
		mat.NewVecDense(2, []float64{1.0, 2.0}),
		action(math.NaN()),
		action(math.Inf(1)),
		action(math.Inf(-1)),
	}

	for i, a := range actions {
		_, _, err := pm.Step(a)
		if err == nil {
			t.Errorf("action %v: stepping with a malformed action should "+
				"fail", i)
			continue
		}
		if !IsInvalidAction(err) {
			t.Errorf("action %v: step failed with the wrong error: %v", i, err)
		}
	}

	// Rejected actions leave the environment unchanged
	if pm.CurrentTimeStep().Number != 0 {
		t.Errorf("rejected actions should not advance the environment: "+
			"on step %v", pm.CurrentTimeStep().Number)
	}
	if _, _, err := pm.Step(action(0.0)); err != nil {
		t.Errorf("a legal action after rejected ones should work: %v", err)
	}
}

func TestPointMassStepCounting(t *testing.T) {
	starter := fixedStarter{[]float64{0.0, 0.0, 5.0, 5.0}}
	pm, first, err := New(NewReach(MaxSteps), starter, Relative, 1.0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if first.Number != 0 {
		t.Errorf("first step number: want 0, got %v", first.Number)
	}

	for i := 1; i <= 5; i++ {
		step, _, err := pm.Step(action(math.Pi))
		if err != nil {
			t.Fatalf("step %v: %v", i, err)
		}
		if step.Number != i {
			t.Errorf("step number: want %v, got %v", i, step.Number)
		}
	}
	if pm.CurrentTimeStep().Number != 5 {
		t.Errorf("current step number after 5 steps: want 5, got %v",
			pm.CurrentTimeStep().Number)
	}

	step, err := pm.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if step.Number != 0 {
		t.Errorf("reset should zero the step number, got %v", step.Number)
	}
}

func TestPointMassCurrentTimeStepStable(t *testing.T) {
	starter := fixedStarter{[]float64{0.0, 0.0, 1.0, 0.0}}
	pm, _, err := New(NewReach(MaxSteps), starter, Relative, 1.0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	first := pm.CurrentTimeStep()
	second := pm.CurrentTimeStep()
	if !mat.Equal(first.Observation, second.Observation) {
		t.Errorf("reading the current timestep twice gave different "+
			"observations: %v != %v", first.Observation, second.Observation)
	}
	if first.Number != second.Number || first.StepType != second.StepType {
		t.Error("reading the current timestep twice gave different steps")
	}
}

func TestPointMassProgressMarker(t *testing.T) {
	starter := fixedStarter{[]float64{0.0, 0.0, 1.0, 0.0}}
	e, _, err := New(NewReach(MaxSteps), starter, Relative, 1.0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	pm := e.(*PointMass)

	var buf bytes.Buffer
	pm.SetProgressOutput(&buf)

	// Creating the environment already started one episode
	for i := 0; i < 199; i++ {
		if _, err := pm.Reset(); err != nil {
			t.Fatalf("reset %v: %v", i, err)
		}
	}

	if pm.Episodes() != 200 {
		t.Errorf("episode count: want 200, got %v", pm.Episodes())
	}
	if got := buf.String(); got != ".." {
		t.Errorf("200 episodes should write two progress marks, got %q", got)
	}
}

func TestPointMassUniformStarts(t *testing.T) {
	unit := r1.Interval{Min: 0.0, Max: 1.0}
	starter := env.NewUniformStarter([]r1.Interval{unit, unit, unit, unit},
		uint64(192382))

	task := NewReach(MaxSteps)
	pm, first, err := New(task, starter, Relative, 1.0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	pm.(*PointMass).SetProgressOutput(io.Discard)

	for i := 0; i < 500; i++ {
		distance := math.Hypot(first.Observation.AtVec(0),
			first.Observation.AtVec(1))
		if distance <= Precision {
			t.Fatalf("episode %v starts %v from the target, want > %v",
				i, distance, Precision)
		}
		if task.AtGoal(first.Observation) {
			t.Fatalf("episode %v starts at the goal", i)
		}

		first, err = pm.Reset()
		if err != nil {
			t.Fatalf("reset %v: %v", i, err)
		}
	}
}

func TestPointMassActionSpec(t *testing.T) {
	starter := fixedStarter{[]float64{0.0, 0.0, 1.0, 0.0}}
	pm, _, err := New(NewReach(MaxSteps), starter, Relative, 1.0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	spec := pm.ActionSpec()
	if spec.Shape.Len() != 1 {
		t.Errorf("actions should have a single feature, spec says %v",
			spec.Shape.Len())
	}
	if spec.LowerBound.AtVec(0) != 0.0 ||
		spec.UpperBound.AtVec(0) != 2*math.Pi {
		t.Errorf("action bounds: want [0, 2π], got [%v, %v]",
			spec.LowerBound.AtVec(0), spec.UpperBound.AtVec(0))
	}
}
