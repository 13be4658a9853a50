package demo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lissom-motion/lissom/config"
	"github.com/lissom-motion/lissom/value"
)

func TestMain(m *testing.M) {
	config.MustInit("")
	os.Exit(m.Run())
}

func TestHeadlessRunProducesOutput(t *testing.T) {
	dir := t.TempDir()
	d, err := New(Options{Seed: 1, OutputDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	d.Scatter(400, 300)
	d.Twirl()
	d.Pulse()
	if d.ActiveSprings() == 0 {
		t.Fatal("no springs after kicking off animations")
	}

	for i := 0; i < 3600 && d.ActiveSprings() > 0; i++ {
		d.Step(headlessDT)
	}
	if d.ActiveSprings() != 0 {
		t.Fatalf("%d springs still live after 60 seconds", d.ActiveSprings())
	}

	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for _, name := range []string{"samples.csv", "settle.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}
}

func TestRegroupSnapsWithoutSprings(t *testing.T) {
	d, err := New(Options{Seed: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Close()

	d.Scatter(100, 100)
	d.Step(headlessDT)
	d.Regroup()

	// The snap assigns positions directly, before any further Step. Tint
	// springs from the scatter may still be flying, so check the property
	// value rather than the global spring count.
	cols := 1
	for cols*cols < len(d.entities) {
		cols++
	}
	gx, gy := d.gridSlot(0, cols)
	got, err := d.accessor.Get(d.entities[0], PropPosition)
	if err != nil {
		t.Fatal(err)
	}
	if got != (value.Vec2{X: gx, Y: gy}) {
		t.Errorf("position after regroup = %v, want (%v, %v)", got, gx, gy)
	}
}

func TestStopAllFreezesWorld(t *testing.T) {
	d, err := New(Options{Seed: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Close()

	d.Scatter(500, 400)
	d.Step(headlessDT)
	d.StopAll()
	if d.ActiveSprings() != 0 {
		t.Errorf("%d springs survived StopAll", d.ActiveSprings())
	}
}
