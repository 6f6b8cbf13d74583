// Package heuristic implements fixed, scripted policies
//
// Heuristic agents select actions from a closed-form rule rather than
// from learned weights. They satisfy the agent.Agent interface so that
// they can be dropped into any experiment, but their Learner methods
// are no-ops.
package heuristic

import (
	"github.com/samuelfneumann/gopoint/timestep"
	"gonum.org/v1/gonum/mat"
)

// scripted provides the no-op learning methods and the evaluation flag
// shared by all heuristic agents
type scripted struct {
	eval bool
}

// ObserveFirst records the first timestep in an episode
func (s *scripted) ObserveFirst(t timestep.TimeStep) error { return nil }

// Observe records that an action lead to some timestep
func (s *scripted) Observe(action mat.Vector,
	nextObs timestep.TimeStep) error {

	return nil
}

// Step performs a single update to the agent. Scripted agents never
// update.
func (s *scripted) Step() error { return nil }

// EndEpisode performs cleanup at the end of an episode
func (s *scripted) EndEpisode() {}

// Eval sets the agent to evaluation mode
func (s *scripted) Eval() { s.eval = true }

// Train sets the agent to training mode
func (s *scripted) Train() { s.eval = false }

// IsEval indicates whether the agent is in evaluation mode
func (s *scripted) IsEval() bool { return s.eval }
