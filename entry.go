package lissom

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lissom-motion/lissom/spring"
	"github.com/lissom-motion/lissom/value"
)

// entry is one active spring in the driver's table: the solver state for a
// (entity, property) pair plus the adapter that maps between the property's
// structured value and the solver's state space. The original goal value is
// kept verbatim so convergence can snap to it exactly.
type entry struct {
	adapter value.Adapter
	lin     *spring.Linear   // nil for pure rotation kinds
	rot     *spring.Rotation // nil for pure linear kinds
	goal    value.Value
}

// newEntry builds the solver state for animating from cur to goal. Both
// values must be of the adapter's kind.
func newEntry(damping, frequency float64, cur, goal value.Value, ad value.Adapter, th spring.Thresholds) (*entry, error) {
	curVec, curRot := ad.ToParts(cur)
	goalVec, goalRot := ad.ToParts(goal)

	en := &entry{adapter: ad, goal: goal}
	if ad.Size > 0 {
		lin, err := spring.NewLinear(damping, frequency, curVec, goalVec, th)
		if err != nil {
			return nil, err
		}
		en.lin = lin
	}
	if ad.Solver == value.SolverRotation || ad.Solver == value.SolverTransform {
		rot, err := spring.NewRotation(damping, frequency, curRot, goalRot, th)
		if err != nil {
			return nil, err
		}
		en.rot = rot
	}
	return en, nil
}

// retarget updates goal, damping ratio and frequency in place; solver
// position and velocity carry over. goal must be of the entry's kind, and
// the parameters must already be validated.
func (en *entry) retarget(damping, frequency float64, goal value.Value) {
	goalVec, goalRot := en.adapter.ToParts(goal)
	en.goal = goal
	if en.lin != nil {
		en.lin.SetGoal(goalVec)
		en.lin.SetDampingRatio(damping)
		en.lin.SetFrequency(frequency)
	}
	if en.rot != nil {
		en.rot.SetGoal(goalRot)
		en.rot.SetDampingRatio(damping)
		en.rot.SetFrequency(frequency)
	}
}

// step advances the solver state by dt seconds and reconstructs the
// structured value.
func (en *entry) step(dt float64) value.Value {
	var vec []float64
	rot := quat.Number{Real: 1}
	if en.lin != nil {
		vec = en.lin.Step(dt)
	}
	if en.rot != nil {
		rot = en.rot.Step(dt)
	}
	return en.adapter.FromParts(vec, rot)
}

// canSleep reports whether every sub-spring has converged.
func (en *entry) canSleep() bool {
	if en.lin != nil && !en.lin.CanSleep() {
		return false
	}
	if en.rot != nil && !en.rot.CanSleep() {
		return false
	}
	return true
}

// metrics returns norms of the remaining offset and velocity over the
// combined linear and rotational state, for observability hooks.
func (en *entry) metrics() (offset, speed float64) {
	var offSq, velSq float64
	if en.lin != nil {
		pos, goal := en.lin.Position(), en.lin.Goal()
		for i := range pos {
			o := pos[i] - goal[i]
			offSq += o * o
		}
		for _, v := range en.lin.Velocity() {
			velSq += v * v
		}
	}
	if en.rot != nil {
		a := en.rot.OffsetAngle()
		offSq += a * a
		velSq += r3.Norm2(en.rot.Velocity())
	}
	return math.Sqrt(offSq), math.Sqrt(velSq)
}
