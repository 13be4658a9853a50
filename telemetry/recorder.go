// Package telemetry records spring trajectories and aggregates convergence
// statistics, with CSV export for offline analysis.
package telemetry

// Sample is one spring observation at one tick. Offset and Speed are norms
// over the spring's combined intermediate state; Asleep marks the tick the
// spring was retired.
type Sample struct {
	Tick     int32   `csv:"tick"`
	Entity   string  `csv:"entity"`
	Property string  `csv:"property"`
	Offset   float64 `csv:"offset"`
	Speed    float64 `csv:"speed"`
	Asleep   bool    `csv:"asleep"`
}

// Recorder accumulates spring samples and tracks ticks-to-settle per
// (entity, property) animation. It is fed from a driver step hook and is
// not safe for concurrent use, matching the driver's single-threaded tick
// model.
type Recorder struct {
	tick        int32
	sampleEvery int

	samples []Sample

	started map[sampleKey]int32
	settled []float64 // ticks-to-settle, in retirement order
}

type sampleKey struct {
	entity   string
	property string
}

// NewRecorder creates a recorder that keeps every sampleEvery-th tick's
// samples. sampleEvery <= 0 disables trajectory samples; settle tracking
// stays on.
func NewRecorder(sampleEvery int) *Recorder {
	return &Recorder{
		sampleEvery: sampleEvery,
		started:     make(map[sampleKey]int32),
	}
}

// BeginTick advances the recorder's tick counter. Call once per driver
// Step, before the step.
func (r *Recorder) BeginTick() {
	r.tick++
}

// Record ingests one spring observation. Entity is a display label chosen
// by the host, since the driver's entity keys are opaque.
func (r *Recorder) Record(entity, property string, offset, speed float64, asleep bool) {
	if r.sampleEvery > 0 && r.tick%int32(r.sampleEvery) == 0 {
		r.samples = append(r.samples, Sample{
			Tick:     r.tick,
			Entity:   entity,
			Property: property,
			Offset:   offset,
			Speed:    speed,
			Asleep:   asleep,
		})
	}

	key := sampleKey{entity: entity, property: property}
	if _, ok := r.started[key]; !ok {
		r.started[key] = r.tick
	}
	if asleep {
		r.settled = append(r.settled, float64(r.tick-r.started[key]+1))
		delete(r.started, key)
	}
}

// Samples returns the recorded trajectory samples in arrival order.
func (r *Recorder) Samples() []Sample {
	return r.samples
}

// SettleStats aggregates the completed animations seen so far.
func (r *Recorder) SettleStats() SettleStats {
	return computeSettleStats(r.settled)
}

// Tick returns the current tick number.
func (r *Recorder) Tick() int32 {
	return r.tick
}
