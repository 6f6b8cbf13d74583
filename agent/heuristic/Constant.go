package heuristic

import (
	"github.com/samuelfneumann/gopoint/timestep"
	"gonum.org/v1/gonum/mat"
)

// Constant implements a policy that selects the same heading at every
// step, ignoring the state observation. A Constant policy with heading
// π/2 moves the agent straight up forever.
type Constant struct {
	scripted
	direction float64
}

// NewConstant returns a new Constant policy that always selects the
// heading direction, measured in radians
func NewConstant(direction float64) *Constant {
	return &Constant{direction: direction}
}

// SelectAction selects an action from the policy for a given timestep
func (c *Constant) SelectAction(t timestep.TimeStep) *mat.VecDense {
	return mat.NewVecDense(1, []float64{c.direction})
}
