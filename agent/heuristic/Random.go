package heuristic

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gopoint/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Random implements a policy that selects a heading uniformly at
// random on [0, 2π) at every step, ignoring the state observation.
type Random struct {
	scripted
	dist distuv.Uniform
}

// NewRandom returns a new Random policy seeded with seed
func NewRandom(seed uint64) *Random {
	dist := distuv.Uniform{
		Min: 0.0,
		Max: 2 * math.Pi,
		Src: rand.NewSource(seed),
	}

	return &Random{dist: dist}
}

// SelectAction selects an action from the policy for a given timestep
func (r *Random) SelectAction(t timestep.TimeStep) *mat.VecDense {
	return mat.NewVecDense(1, []float64{r.dist.Rand()})
}
