// Package lissom animates named properties on arbitrary entities toward
// target values with closed-form damped spring motion. A Driver owns the
// table of active springs; the host calls Target to create or retarget
// springs, Stop to cancel them, and Step once per tick to advance every
// active spring and write the results back through a property accessor.
//
// Solver math lives in package spring, the supported value kinds in package
// value. The driver is single-threaded by design; one coarse mutex makes it
// safe to call from multi-goroutine hosts.
package lissom

import (
	"errors"

	"github.com/lissom-motion/lissom/spring"
	"github.com/lissom-motion/lissom/value"
)

// Caller errors reported by Target and Stop. All indicate programming
// errors at the call site; none are retried or recovered internally.
var (
	// ErrInvalidParameter reports a NaN or negative damping ratio or
	// frequency.
	ErrInvalidParameter = errors.New("lissom: invalid parameter")

	// ErrUnsupportedType reports a goal value of a kind outside the
	// supported set.
	ErrUnsupportedType = errors.New("lissom: unsupported value type")

	// ErrTypeMismatch reports a goal whose kind differs from the property's
	// current value. Only raised when Options.StrictTypeChecking is on.
	ErrTypeMismatch = errors.New("lissom: goal type does not match property type")
)

// Accessor reads and writes named properties on entities. The driver is the
// only caller; it never assumes direct field access, so hosts are free to
// intercept derived or computed properties behind this interface.
type Accessor[E comparable] interface {
	Get(entity E, property string) (value.Value, error)
	Set(entity E, property string, v value.Value) error
}

// StepHook observes every spring advance during Step. offset and speed are
// norms over the spring's combined intermediate state; asleep marks the
// tick on which the spring was retired. Used by package telemetry.
type StepHook[E comparable] func(entity E, property string, offset, speed float64, asleep bool)

// Options configures a Driver.
type Options struct {
	// StrictTypeChecking makes Target fail with ErrTypeMismatch when a
	// goal's kind differs from the property's current value. When off, a
	// mismatched property is re-seeded at the goal instead.
	StrictTypeChecking bool

	// Thresholds are the sleep limits handed to every spring. The zero
	// value means spring.DefaultThresholds.
	Thresholds spring.Thresholds
}

// DefaultOptions returns the stock driver configuration.
func DefaultOptions() Options {
	return Options{Thresholds: spring.DefaultThresholds()}
}
