package heuristic

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/gopoint/timestep"
	"gonum.org/v1/gonum/mat"
)

// Homing implements a policy that always heads straight for the
// target. It reads the displacement to the target out of the state
// observation and selects the heading of that displacement, so each
// step closes as much distance as a single step can.
//
// Homing understands both observation encodings: a 2-feature
// observation is taken to be the displacement [dx, dy] itself, while a
// 4-feature observation is taken to be the two positions
// [x, y, targetX, targetY].
type Homing struct {
	scripted
}

// NewHoming returns a new Homing policy
func NewHoming() *Homing {
	return &Homing{}
}

// SelectAction selects an action from the policy for a given timestep
func (h *Homing) SelectAction(t timestep.TimeStep) *mat.VecDense {
	obs := t.Observation

	var dx, dy float64
	switch obs.Len() {
	case 2:
		dx = obs.AtVec(0)
		dy = obs.AtVec(1)

	case 4:
		dx = obs.AtVec(2) - obs.AtVec(0)
		dy = obs.AtVec(3) - obs.AtVec(1)

	default:
		panic(fmt.Sprintf("selectAction: cannot read a target out of a "+
			"%v-feature observation", obs.Len()))
	}

	return mat.NewVecDense(1, []float64{math.Atan2(dy, dx)})
}
