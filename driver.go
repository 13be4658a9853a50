package lissom

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/lissom-motion/lissom/spring"
	"github.com/lissom-motion/lissom/value"
)

// Driver owns the active spring table: one spring per (entity, property)
// pair, created on the first Target call for the pair, updated in place on
// later calls, and removed when the spring converges or is stopped. All
// methods are safe for concurrent use through one coarse mutex — spring
// counts are small and steps are O(n), so finer locking buys nothing.
type Driver[E comparable] struct {
	mu       sync.Mutex
	accessor Accessor[E]
	opts     Options

	springs map[E]map[string]*entry
	settled map[E][]func()
	due     []func()
	hook    StepHook[E]
}

// NewDriver creates a driver that reads and writes entity properties
// through accessor.
func NewDriver[E comparable](accessor Accessor[E], opts Options) *Driver[E] {
	if opts.Thresholds == (spring.Thresholds{}) {
		opts.Thresholds = spring.DefaultThresholds()
	}
	return &Driver[E]{
		accessor: accessor,
		opts:     opts,
		springs:  make(map[E]map[string]*entry),
		settled:  make(map[E][]func()),
	}
}

// SetStepHook installs an observer for every spring advance. Pass nil to
// remove it.
func (d *Driver[E]) SetStepHook(hook StepHook[E]) {
	d.mu.Lock()
	d.hook = hook
	d.mu.Unlock()
}

// Target creates or retargets springs for the given properties. Existing
// springs keep their position and velocity and pick up the new goal,
// damping ratio and frequency, so interrupting an animation in flight never
// causes a discontinuity. A frequency of +Inf is the escape hatch for an
// instantaneous jump: the property is assigned directly and no spring is
// created.
//
// All goals are validated before any spring is touched; on error the table
// is unchanged.
func (d *Driver[E]) Target(entity E, damping, frequency float64, goals map[string]value.Value) error {
	if math.IsNaN(damping) || damping < 0 {
		return fmt.Errorf("%w: damping ratio %v", ErrInvalidParameter, damping)
	}
	if math.IsNaN(frequency) || frequency < 0 {
		return fmt.Errorf("%w: frequency %v", ErrInvalidParameter, frequency)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	type staged struct {
		name string
		goal value.Value
		ad   value.Adapter
		cur  value.Value // nil when retargeting an existing same-kind spring
	}
	plan := make([]staged, 0, len(goals))
	for name, goal := range goals {
		if goal == nil {
			return fmt.Errorf("%w: nil goal for property %q", ErrUnsupportedType, name)
		}
		ad, ok := value.AdapterFor(goal)
		if !ok {
			return fmt.Errorf("%w: %T", ErrUnsupportedType, goal)
		}

		st := staged{name: name, goal: goal, ad: ad}
		en := d.springs[entity][name]
		if en == nil || en.adapter.Kind != ad.Kind {
			cur, err := d.accessor.Get(entity, name)
			if err != nil {
				return fmt.Errorf("lissom: reading property %q: %w", name, err)
			}
			if d.opts.StrictTypeChecking && cur.Kind() != ad.Kind {
				return fmt.Errorf("%w: property %q holds %s, goal is %s",
					ErrTypeMismatch, name, cur.Kind(), ad.Kind)
			}
			st.cur = cur
		}
		plan = append(plan, st)
	}

	for _, st := range plan {
		if math.IsInf(frequency, 1) {
			if props := d.springs[entity]; props[st.name] != nil {
				delete(props, st.name)
			}
			if err := d.accessor.Set(entity, st.name, st.goal); err != nil {
				return fmt.Errorf("lissom: writing property %q: %w", st.name, err)
			}
			continue
		}

		if en := d.springs[entity][st.name]; en != nil && en.adapter.Kind == st.ad.Kind {
			en.retarget(damping, frequency, st.goal)
			continue
		}

		seed := st.cur
		if seed.Kind() != st.ad.Kind {
			// Lax mode only: the property holds a foreign kind, so there is
			// no usable starting state. Seed at the goal; the spring sleeps
			// on its first step and snaps the property over.
			seed = st.goal
		}
		en, err := newEntry(damping, frequency, seed, st.goal, st.ad, d.opts.Thresholds)
		if err != nil {
			return err
		}
		if d.springs[entity] == nil {
			d.springs[entity] = make(map[string]*entry)
		}
		d.springs[entity][st.name] = en
	}

	d.dropIfIdle(entity)
	return nil
}

// Stop removes all spring state for an entity, leaving every property at
// its current mid-flight value. Cancellation is synchronous: the entries
// are gone before the next Step.
func (d *Driver[E]) Stop(entity E) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.springs[entity]; !ok {
		return
	}
	delete(d.springs, entity)
	d.queueSettled(entity)
}

// StopProperty removes the spring for one property of an entity, if any.
func (d *Driver[E]) StopProperty(entity E, property string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	props, ok := d.springs[entity]
	if !ok {
		return
	}
	delete(props, property)
	d.dropIfIdle(entity)
}

// OnSettled registers a one-shot callback invoked once the entity has no
// remaining active springs. Repeated registrations queue in order.
// Callbacks never run inline with Target, Stop or a property write: they
// are scheduled and drained at the end of a Step, after every spring has
// advanced, so a callback may safely re-register itself or start new
// animations. If the entity is already idle, the callback runs at the end
// of the next Step.
func (d *Driver[E]) OnSettled(entity E, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.springs[entity]) == 0 {
		d.due = append(d.due, fn)
		return
	}
	d.settled[entity] = append(d.settled[entity], fn)
}

// Animating reports whether the entity has at least one active spring.
func (d *Driver[E]) Animating(entity E) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.springs[entity]) > 0
}

// ActiveSprings returns the total number of active springs.
func (d *Driver[E]) ActiveSprings() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, props := range d.springs {
		n += len(props)
	}
	return n
}

// Step advances every active spring by dt seconds and writes the resulting
// values through the accessor. Springs that have converged are retired, and
// their properties snap to the exact original goal value — not the
// converged numeric approximation — so terminal equality is exact. Settled
// callbacks that came due are run last, outside the lock.
func (d *Driver[E]) Step(dt float64) {
	if dt < 0 {
		dt = 0
	}

	d.mu.Lock()
	for entity, props := range d.springs {
		for name, en := range props {
			out := en.step(dt)
			asleep := en.canSleep()
			if asleep {
				out = en.goal
				delete(props, name)
			}
			if d.hook != nil {
				offset, speed := en.metrics()
				d.hook(entity, name, offset, speed, asleep)
			}
			if err := d.accessor.Set(entity, name, out); err != nil {
				slog.Warn("lissom: property write failed, dropping spring",
					"property", name, "error", err)
				delete(props, name)
			}
		}
		if len(props) == 0 {
			delete(d.springs, entity)
			d.queueSettled(entity)
		}
	}
	due := d.due
	d.due = nil
	d.mu.Unlock()

	for _, fn := range due {
		fn()
	}
}

// dropIfIdle removes an empty entity row and queues its settled callbacks.
// Callers must hold d.mu.
func (d *Driver[E]) dropIfIdle(entity E) {
	props, ok := d.springs[entity]
	if !ok || len(props) > 0 {
		return
	}
	delete(d.springs, entity)
	d.queueSettled(entity)
}

// queueSettled moves an entity's pending callbacks to the due queue.
// Callers must hold d.mu.
func (d *Driver[E]) queueSettled(entity E) {
	if fns := d.settled[entity]; len(fns) > 0 {
		d.due = append(d.due, fns...)
		delete(d.settled, entity)
	}
}
