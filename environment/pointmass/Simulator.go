package pointmass

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/gopoint/environment"
)

const (
	// StepSize is the distance the agent moves on each step
	StepSize float64 = 0.1

	// Precision is the distance below which the agent is considered
	// to have reached the target
	Precision float64 = 0.15

	// MaxSteps is the default number of steps per episode before an
	// episode is cut off
	MaxSteps int = 20

	// Starting states are redrawn until the agent and target are
	// farther apart than Precision, up to this many draws per reset.
	maxStartDraws int = 100
)

// Simulator tracks the physical state of the point mass world: the
// agent's current and previous positions, the target position, and the
// number of steps taken since the last reset.
//
// The Simulator implements dynamics only. It knows nothing about
// rewards, observations, or episode cutoffs, which belong to the Task
// and the PointMass environment. The Simulator's one terminal
// condition is spatial: the world is done when the agent is within
// Precision of the target.
type Simulator struct {
	starter env.Starter

	current  mgl64.Vec2
	previous mgl64.Vec2
	target   mgl64.Vec2

	steps           int
	initialDistance float64
}

// NewSimulator returns a new Simulator which draws the agent and
// target positions from starter on each reset. The starter must
// return states of four features: the agent's (x, y) position followed
// by the target's (x, y) position.
func NewSimulator(starter env.Starter) *Simulator {
	return &Simulator{starter: starter}
}

// Reset draws a new starting state for the agent and the target. Both
// positions are redrawn together until they are farther apart than
// Precision, so that no episode begins already at the target. If no
// such state can be drawn within a bounded number of draws, Reset
// returns an error for which IsStartTooClose returns true, and the
// Simulator is left unchanged.
func (s *Simulator) Reset() error {
	for i := 0; i < maxStartDraws; i++ {
		state := s.starter.Start()
		validateStart(state)

		current := mgl64.Vec2{state.AtVec(0), state.AtVec(1)}
		target := mgl64.Vec2{state.AtVec(2), state.AtVec(3)}

		if distance := target.Sub(current).Len(); distance > Precision {
			s.current = current
			s.previous = current
			s.target = target
			s.steps = 0
			s.initialDistance = distance
			return nil
		}
	}
	return &Error{Op: "reset", Err: errStartTooClose}
}

// Advance moves the agent a fixed distance of StepSize in the given
// direction, measured in radians counterclockwise from the positive
// x-axis. Any real direction is accepted; angles outside [0, 2π) wrap
// around the circle. The agent's position is unbounded.
func (s *Simulator) Advance(direction float64) {
	s.previous = s.current
	step := mgl64.Vec2{math.Cos(direction), math.Sin(direction)}
	s.current = s.current.Add(step.Mul(StepSize))
	s.steps++
}

// Done returns whether the agent has reached the target. The agent has
// reached the target when it is strictly within Precision of the
// target. An agent exactly Precision away has not reached the target.
func (s *Simulator) Done() bool {
	return s.Distance() < Precision
}

// Distance returns the distance between the agent and the target
func (s *Simulator) Distance() float64 {
	return s.target.Sub(s.current).Len()
}

// PreviousDistance returns the distance between the agent's position
// before the most recent step and the target
func (s *Simulator) PreviousDistance() float64 {
	return s.target.Sub(s.previous).Len()
}

// InitialDistance returns the distance between the agent and the
// target at the start of the current episode
func (s *Simulator) InitialDistance() float64 {
	return s.initialDistance
}

// Steps returns the number of steps taken since the last reset
func (s *Simulator) Steps() int {
	return s.steps
}

// Current returns the agent's position
func (s *Simulator) Current() mgl64.Vec2 {
	return s.current
}

// Previous returns the agent's position before the most recent step
func (s *Simulator) Previous() mgl64.Vec2 {
	return s.previous
}

// Target returns the target's position
func (s *Simulator) Target() mgl64.Vec2 {
	return s.target
}

// validateStart validates a drawn starting state, which must hold the
// agent's (x, y) position followed by the target's (x, y) position
func validateStart(state *mat.VecDense) {
	if state.Len() != 4 {
		panic(fmt.Sprintf("illegal start state: need 4 features "+
			"\n\twant(4) \n\thave(%v)", state.Len()))
	}
}
