// Package pointmass implements an environment where an agent moves a
// point through an unbounded plane to reach a target position.
//
// On every step the agent picks a direction in radians and is moved a
// fixed distance in that direction. An episode ends when the agent is
// strictly within Precision of the target or when the episode's step
// limit is hit. Both the agent's and the target's starting positions
// are drawn fresh at the beginning of each episode, rejecting draws
// that start the agent already at the target.
package pointmass

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/gopoint/environment"
	ts "github.com/samuelfneumann/gopoint/timestep"
)

// Encoding determines how the world state is encoded into observation
// vectors.
type Encoding string

const (
	// Relative encodes observations as the offset (dx, dy) from the
	// agent to the target. Relative observations are translation
	// invariant: episodes that look alike are alike, no matter where
	// in the plane they play out. This is the encoding to prefer.
	Relative Encoding = "Relative"

	// Absolute encodes observations as the agent's (x, y) position
	// followed by the target's (x, y) position.
	Absolute Encoding = "Absolute"
)

// features returns the number of observation features the Encoding
// produces
func (e Encoding) features() int {
	if e == Absolute {
		return 4
	}
	return 2
}

// PointMass implements the point mass environment. The physical state
// is tracked by a Simulator, and the reward scheme and episode endings
// are determined by the environment's Task.
//
// Every 100th episode the environment writes a single "." to its
// progress writer (os.Stderr unless changed with SetProgressOutput) as
// a liveness marker for long experiment runs.
type PointMass struct {
	env.Task
	sim *Simulator

	encoding Encoding
	discount float64

	currentStep ts.TimeStep
	episodes    int
	progress    io.Writer

	backgroundShade color.Color
	targetColour    color.Color
	agentColour     color.Color
	trailColour     color.Color
}

// New returns a new PointMass environment with the argument task,
// start state distribution, and observation encoding, along with the
// first timestep of the environment. The starter must draw states of
// four features: the agent's (x, y) position followed by the target's.
func New(t env.Task, starter env.Starter, encoding Encoding,
	discount float64) (env.Environment, ts.TimeStep, error) {

	if encoding != Relative && encoding != Absolute {
		return nil, ts.TimeStep{}, fmt.Errorf("new: no such observation "+
			"encoding %v", encoding)
	}

	sim := NewSimulator(starter)

	task, ok := t.(pointMassTask)
	if ok {
		task.register(sim)
	}

	pointMass := &PointMass{
		Task:     t,
		sim:      sim,
		encoding: encoding,
		discount: discount,
		progress: os.Stderr,

		backgroundShade: color.RGBA{R: 30, G: 30, B: 30, A: 255},
		targetColour:    color.RGBA{R: 255, G: 166, B: 0, A: 255},
		agentColour:     color.RGBA{R: 128, G: 102, B: 230, A: 255},
		trailColour:     color.RGBA{R: 77, G: 77, B: 128, A: 255},
	}

	firstStep, err := pointMass.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, err
	}

	return pointMass, firstStep, nil
}

// Reset resets the environment and returns the first timestep of the
// new episode. Resetting draws fresh positions for the agent and the
// target, redrawing both together until they are farther apart than
// Precision.
func (p *PointMass) Reset() (ts.TimeStep, error) {
	if err := p.sim.Reset(); err != nil {
		return ts.TimeStep{}, err
	}

	p.episodes++
	if p.episodes%100 == 0 {
		fmt.Fprint(p.progress, ".")
	}

	step := ts.New(ts.First, 0, p.discount, p.obs(), 0)
	p.currentStep = step

	return step, nil
}

// Step takes one environmental step given some action and returns the
// next timestep and whether that timestep is the last in the episode.
// The action must hold a single finite direction in radians; any real
// direction is legal, and directions outside [0, 2π) wrap around the
// circle. Malformed actions return an error for which IsInvalidAction
// returns true and leave the environment unchanged.
func (p *PointMass) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	if action == nil || action.Len() != 1 {
		return ts.TimeStep{}, false, &Error{Op: "step", Err: errInvalidAction}
	}
	direction := action.AtVec(0)
	if math.IsNaN(direction) || math.IsInf(direction, 0) {
		return ts.TimeStep{}, false, &Error{Op: "step", Err: errInvalidAction}
	}

	p.sim.Advance(direction)

	nextObs := p.obs()
	reward := p.GetReward(p.currentStep.Observation, action, nextObs)
	nextStep := ts.New(ts.Mid, reward, p.discount, nextObs,
		p.currentStep.Number+1)

	last := p.End(&nextStep)

	p.currentStep = nextStep
	return nextStep, last, nil
}

// CurrentTimeStep returns the last timestep generated by the
// environment
func (p *PointMass) CurrentTimeStep() ts.TimeStep {
	return p.currentStep
}

// Episodes returns the number of episodes started since the
// environment was created
func (p *PointMass) Episodes() int {
	return p.episodes
}

// InitialDistance returns the distance between the agent and the
// target at the start of the current episode
func (p *PointMass) InitialDistance() float64 {
	return p.sim.InitialDistance()
}

// SetProgressOutput redirects the environment's episodic progress
// marker to w
func (p *PointMass) SetProgressOutput(w io.Writer) {
	p.progress = w
}

// ObservationSpec returns the observation specification of the
// environment. The agent's position is unbounded, so observations are
// unbounded under either encoding.
func (p *PointMass) ObservationSpec() env.Spec {
	features := p.encoding.features()

	lower := make([]float64, features)
	upper := make([]float64, features)
	for i := 0; i < features; i++ {
		lower[i] = math.Inf(-1)
		upper[i] = math.Inf(1)
	}

	shape := mat.NewVecDense(features, nil)
	lowerBound := mat.NewVecDense(features, lower)
	upperBound := mat.NewVecDense(features, upper)

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Continuous)
}

// ActionSpec returns the action specification of the environment.
// Actions are a single direction in radians. The bounds describe one
// full turn, but directions outside the bounds are legal and wrap
// around the circle.
func (p *PointMass) ActionSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{0.0})
	upperBound := mat.NewVecDense(1, []float64{2 * math.Pi})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Continuous)
}

// DiscountSpec returns the discounting specification of the environment
func (p *PointMass) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{p.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Continuous)
}

// String returns a string representation of the environment
func (p *PointMass) String() string {
	str := "Point Mass  |  Position: (%.3f, %.3f)  |  Target: (%.3f, %.3f)"
	current, target := p.sim.Current(), p.sim.Target()
	return fmt.Sprintf(str, current.X(), current.Y(), target.X(), target.Y())
}

// obs encodes the Simulator's state into an observation vector under
// the environment's observation encoding. Each call returns a fresh
// vector.
func (p *PointMass) obs() *mat.VecDense {
	current, target := p.sim.Current(), p.sim.Target()

	if p.encoding == Absolute {
		return mat.NewVecDense(4, []float64{
			current.X(), current.Y(),
			target.X(), target.Y(),
		})
	}

	offset := target.Sub(current)
	return mat.NewVecDense(2, []float64{offset.X(), offset.Y()})
}
