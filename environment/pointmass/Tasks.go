package pointmass

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/gopoint/environment"
	ts "github.com/samuelfneumann/gopoint/timestep"
)

// pointMassTask is a Task that computes rewards and episode endings
// from the live state of a Simulator, with which it must be registered
// before use.
type pointMassTask interface {
	env.Task
	register(*Simulator)
}

// Reach implements the task of reaching the target as quickly as
// possible, with a shaped reward that scores the progress made on
// every step.
//
// On the step that ends the episode, whether because the agent reached
// the target or because the step limit was hit, the reward is the
// number of steps remaining in the episode's budget. Ending an episode
// early is therefore worth more, and an episode that runs out its
// whole budget earns exactly 0 on its final step.
//
// On all other steps the reward is a function of the progress made
// toward the target, where progress is the decrease in distance to the
// target as a fraction of StepSize. Positive progress p earns p², so
// that moving straight at the target earns about 1. Zero or negative
// progress p earns 2p - 1, so that standing still costs -1 and moving
// straight away costs about -3.
//
// The Reach task must be registered with a Simulator before it can be
// used.
type Reach struct {
	sim        *Simulator
	registered bool

	cutoff    int
	stepLimit env.Ender
	goalEnder env.Ender
}

// NewReach returns a new Reach task with an episodic step limit of
// cutoff steps.
func NewReach(cutoff int) env.Task {
	return &Reach{
		cutoff:    cutoff,
		stepLimit: env.NewStepLimit(cutoff),
	}
}

// register registers a Simulator with the Reach task. This is required
// because the task reads the Simulator's live distances and step count
// to compute rewards and episode endings.
func (r *Reach) register(sim *Simulator) {
	r.sim = sim

	// The goal test reads the Simulator rather than the observation so
	// that it holds under any observation encoding.
	r.goalEnder = env.NewFunctionEnder(func(*mat.VecDense) bool {
		return sim.Done()
	}, ts.TerminalStateReached)

	r.registered = true
}

// GetReward returns the reward for the most recent step of the
// registered Simulator. The argument state, action, and next state are
// ignored: rewards depend on the step count and on distances between
// the agent and the target, which the observation may not carry.
func (r *Reach) GetReward(_, _, _ mat.Vector) float64 {
	if !r.registered {
		panic("getReward: must register with Simulator first")
	}

	if r.sim.Done() || r.sim.Steps() >= r.cutoff {
		return float64(r.cutoff - r.sim.Steps())
	}

	progress := (r.sim.PreviousDistance() - r.sim.Distance()) / StepSize
	if progress > 0 {
		return progress * progress
	}
	return 2*progress - 1
}

// End determines if a timestep is the last timestep in the episode.
// If so, it changes the TimeStep's StepType to timestep.Last and
// adjusts the TimeStep's EndType to the appropriate ending type. The
// goal test takes precedence over the step limit when both end the
// episode on the same step.
func (r *Reach) End(t *ts.TimeStep) bool {
	if !r.registered {
		panic("end: must register with Simulator first")
	}

	if ended := r.goalEnder.End(t); ended {
		return true
	}
	if ended := r.stepLimit.End(t); ended {
		return true
	}
	return false
}

// AtGoal returns whether the argument state is a goal state. The state
// may hold either the relative offset (dx, dy) from the agent to the
// target or the absolute positions (x, y) of the agent followed by the
// target. A state exactly Precision away from the target is not a goal
// state.
func (r *Reach) AtGoal(state mat.Matrix) bool {
	return atTarget(state)
}

// Min returns the minimum attainable reward over all timesteps
func (r *Reach) Min() float64 {
	// A step directly away from the target is progress -1
	return 2*(-1) - 1
}

// Max returns the maximum attainable reward over all timesteps. The
// earliest an episode can end is its first step.
func (r *Reach) Max() float64 {
	return float64(r.cutoff - 1)
}

// RewardSpec returns the reward specification of the task
func (r *Reach) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{r.Min()})
	upperBound := mat.NewVecDense(1, []float64{r.Max()})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Continuous)
}

// DistancePenalty implements the task of reaching the target under a
// plain cost-to-goal reward. Every step costs the current distance to
// the target plus one, so rewards are at most -1 and there is no bonus
// on the episode's final step. Episodes end exactly as in the Reach
// task.
//
// The DistancePenalty task must be registered with a Simulator before
// it can be used.
type DistancePenalty struct {
	sim        *Simulator
	registered bool

	stepLimit env.Ender
	goalEnder env.Ender
}

// NewDistancePenalty returns a new DistancePenalty task with an
// episodic step limit of cutoff steps.
func NewDistancePenalty(cutoff int) env.Task {
	return &DistancePenalty{
		stepLimit: env.NewStepLimit(cutoff),
	}
}

// register registers a Simulator with the DistancePenalty task
func (d *DistancePenalty) register(sim *Simulator) {
	d.sim = sim

	d.goalEnder = env.NewFunctionEnder(func(*mat.VecDense) bool {
		return sim.Done()
	}, ts.TerminalStateReached)

	d.registered = true
}

// GetReward returns the reward for the most recent step of the
// registered Simulator, which is the negative distance between the
// agent and the target, minus one.
func (d *DistancePenalty) GetReward(_, _, _ mat.Vector) float64 {
	if !d.registered {
		panic("getReward: must register with Simulator first")
	}
	return -d.sim.Distance() - 1
}

// End determines if a timestep is the last timestep in the episode.
// If so, it changes the TimeStep's StepType to timestep.Last and
// adjusts the TimeStep's EndType to the appropriate ending type.
func (d *DistancePenalty) End(t *ts.TimeStep) bool {
	if !d.registered {
		panic("end: must register with Simulator first")
	}

	if ended := d.goalEnder.End(t); ended {
		return true
	}
	if ended := d.stepLimit.End(t); ended {
		return true
	}
	return false
}

// AtGoal returns whether the argument state is a goal state
func (d *DistancePenalty) AtGoal(state mat.Matrix) bool {
	return atTarget(state)
}

// Min returns the minimum attainable reward over all timesteps. The
// agent's position is unbounded, so there is no bound on how far from
// the target it can wander.
func (d *DistancePenalty) Min() float64 {
	return math.Inf(-1)
}

// Max returns the maximum attainable reward over all timesteps
func (d *DistancePenalty) Max() float64 {
	return -1
}

// RewardSpec returns the reward specification of the task
func (d *DistancePenalty) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{d.Min()})
	upperBound := mat.NewVecDense(1, []float64{d.Max()})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Continuous)
}

// atTarget returns whether the argument state describes an agent
// strictly within Precision of the target. A 2-dimensional state is
// interpreted as the relative offset (dx, dy) from the agent to the
// target, and a 4-dimensional state as the agent's (x, y) position
// followed by the target's.
func atTarget(state mat.Matrix) bool {
	rows, c := state.Dims()
	if c != 1 {
		panic("atGoal: state must consist of a single observation")
	}

	switch rows {
	case 2:
		return math.Hypot(state.At(0, 0), state.At(1, 0)) < Precision
	case 4:
		dx := state.At(2, 0) - state.At(0, 0)
		dy := state.At(3, 0) - state.At(1, 0)
		return math.Hypot(dx, dy) < Precision
	default:
		panic(fmt.Sprintf("atGoal: state must consist of 2 or 4 features "+
			"\n\twant(2 or 4) \n\thave(%v)", rows))
	}
}
