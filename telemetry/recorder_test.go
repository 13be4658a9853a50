package telemetry

import "testing"

func TestRecorderSampleFilter(t *testing.T) {
	r := NewRecorder(3)
	for tick := 0; tick < 9; tick++ {
		r.BeginTick()
		r.Record("e0", "x", 1.0, 0.5, false)
	}
	// Ticks run 1..9; every third tick keeps its sample: 3, 6, 9.
	samples := r.Samples()
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}
	for i, want := range []int32{3, 6, 9} {
		if samples[i].Tick != want {
			t.Errorf("sample %d at tick %d, want %d", i, samples[i].Tick, want)
		}
	}
}

func TestRecorderDisabledSampling(t *testing.T) {
	r := NewRecorder(0)
	r.BeginTick()
	r.Record("e0", "x", 1.0, 0.5, true)
	if len(r.Samples()) != 0 {
		t.Errorf("got %d samples with sampling disabled", len(r.Samples()))
	}
	// Settle tracking stays on regardless.
	if got := r.SettleStats().Count; got != 1 {
		t.Errorf("settle count = %d, want 1", got)
	}
}

func TestRecorderTicksToSettle(t *testing.T) {
	r := NewRecorder(1)
	// A spring first seen at tick 1 and retired at tick 5 took 5 ticks.
	for tick := 1; tick <= 5; tick++ {
		r.BeginTick()
		r.Record("e0", "x", 1.0/float64(tick), 0.1, tick == 5)
	}
	stats := r.SettleStats()
	if stats.Count != 1 {
		t.Fatalf("count = %d, want 1", stats.Count)
	}
	if stats.Mean != 5 {
		t.Errorf("mean = %v, want 5", stats.Mean)
	}
}

// The same (entity, property) pair can animate again after settling; each
// flight counts separately.
func TestRecorderRestartedAnimation(t *testing.T) {
	r := NewRecorder(1)
	r.BeginTick()
	r.Record("e0", "x", 1, 1, true) // 1 tick
	r.BeginTick()
	r.BeginTick()
	r.Record("e0", "x", 1, 1, false)
	r.BeginTick()
	r.Record("e0", "x", 0, 0, true) // 2 ticks

	stats := r.SettleStats()
	if stats.Count != 2 {
		t.Fatalf("count = %d, want 2", stats.Count)
	}
	if stats.Mean != 1.5 {
		t.Errorf("mean = %v, want 1.5", stats.Mean)
	}
}

func TestRecorderTracksPairsIndependently(t *testing.T) {
	r := NewRecorder(1)
	r.BeginTick()
	r.Record("e0", "x", 1, 1, false)
	r.Record("e0", "y", 1, 1, true)
	r.Record("e1", "x", 1, 1, false)
	r.BeginTick()
	r.Record("e0", "x", 0, 0, true)

	if got := r.SettleStats().Count; got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
}
