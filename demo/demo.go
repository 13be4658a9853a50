package demo

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"

	"github.com/lissom-motion/lissom"
	"github.com/lissom-motion/lissom/camera"
	"github.com/lissom-motion/lissom/config"
	"github.com/lissom-motion/lissom/telemetry"
	"github.com/lissom-motion/lissom/value"
)

// Options configures a demo run.
type Options struct {
	Seed      int64
	OutputDir string
}

// Demo owns the ECS world, the spring driver animating it, and the
// telemetry recorder.
type Demo struct {
	world    ecs.World
	mapper   *ecs.Map4[Position, Size, Tint, Spin]
	filter   *ecs.Filter4[Position, Size, Tint, Spin]
	accessor *worldAccessor

	driver   *lissom.Driver[ecs.Entity]
	recorder *telemetry.Recorder
	output   *telemetry.OutputManager

	entities []ecs.Entity
	labels   map[ecs.Entity]string
	rng      *rand.Rand

	// Spring parameters, driven by the UI sliders.
	Damping   float64
	Frequency float64

	cam           *camera.Camera
	width, height float64
	tick          int
}

// New creates a demo world with the configured number of entities laid out
// on a grid.
func New(opts Options) (*Demo, error) {
	cfg := config.Cfg()

	world := ecs.NewWorld()
	d := &Demo{
		world:     world,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		labels:    make(map[ecs.Entity]string),
		Damping:   cfg.Demo.DampingRatio,
		Frequency: cfg.Demo.Frequency,
		width:     float64(cfg.Demo.Width),
		height:    float64(cfg.Demo.Height),
		recorder:  telemetry.NewRecorder(cfg.Telemetry.SampleEvery),
		cam: camera.New(
			float32(cfg.Demo.Width), float32(cfg.Demo.Height),
			float32(cfg.Demo.Width), float32(cfg.Demo.Height)),
	}
	d.mapper = ecs.NewMap4[Position, Size, Tint, Spin](&d.world)
	d.filter = ecs.NewFilter4[Position, Size, Tint, Spin](&d.world)
	d.accessor = newWorldAccessor(&d.world)

	d.driver = lissom.NewDriver[ecs.Entity](d.accessor, lissom.Options{
		StrictTypeChecking: cfg.Driver.StrictRuntimeTypeChecking,
		Thresholds:         cfg.Thresholds(),
	})
	d.driver.SetStepHook(func(e ecs.Entity, property string, offset, speed float64, asleep bool) {
		d.recorder.Record(d.labels[e], property, offset, speed, asleep)
	})

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	d.output = om
	if err := d.output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	d.spawn(cfg.Demo.Entities)
	return d, nil
}

// spawn creates n boxes on a centered grid.
func (d *Demo) spawn(n int) {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	for i := 0; i < n; i++ {
		gx, gy := d.gridSlot(i, cols)
		e := d.mapper.NewEntity(
			&Position{X: gx, Y: gy},
			&Size{W: 36, H: 36},
			&Tint{R: 0.35, G: 0.55, B: 0.85},
			&Spin{Rot: quat.Number{Real: 1}},
		)
		d.entities = append(d.entities, e)
		d.labels[e] = fmt.Sprintf("box%02d", i)
	}
}

// gridSlot returns the home position of entity i on a cols-wide grid.
func (d *Demo) gridSlot(i, cols int) (x, y float64) {
	const cell = 70.0
	ox := d.width/2 - cell*float64(cols-1)/2
	oy := d.height/2 - cell*float64(cols-1)/2
	return ox + cell*float64(i%cols), oy + cell*float64(i/cols)
}

// Scatter springs every box toward a jittered point around (x, y) and
// drifts tints toward a random hue.
func (d *Demo) Scatter(x, y float64) {
	for _, e := range d.entities {
		jx := x + d.rng.NormFloat64()*60
		jy := y + d.rng.NormFloat64()*60
		err := d.driver.Target(e, d.Damping, d.Frequency, map[string]value.Value{
			PropPosition: value.Vec2{X: jx, Y: jy},
			PropTint:     d.randomTint(),
		})
		if err != nil {
			slog.Warn("scatter target failed", "entity", d.labels[e], "error", err)
		}
	}
}

// Regroup snaps every box back to its grid slot instantly — the
// infinite-frequency escape hatch, no springs involved.
func (d *Demo) Regroup() {
	cols := int(math.Ceil(math.Sqrt(float64(len(d.entities)))))
	for i, e := range d.entities {
		gx, gy := d.gridSlot(i, cols)
		err := d.driver.Target(e, d.Damping, math.Inf(1), map[string]value.Value{
			PropPosition: value.Vec2{X: gx, Y: gy},
			PropSpin:     value.Rotation(quat.Number{Real: 1}),
		})
		if err != nil {
			slog.Warn("regroup target failed", "entity", d.labels[e], "error", err)
		}
	}
}

// Twirl springs every box to a random orientation about the screen normal.
func (d *Demo) Twirl() {
	for _, e := range d.entities {
		angle := d.rng.Float64() * 2 * math.Pi
		rot := quat.Number{Real: math.Cos(angle / 2), Kmag: math.Sin(angle / 2)}
		err := d.driver.Target(e, d.Damping, d.Frequency, map[string]value.Value{
			PropSpin: value.Rotation(rot),
		})
		if err != nil {
			slog.Warn("twirl target failed", "entity", d.labels[e], "error", err)
		}
	}
}

// Pulse springs every box's size to a random extent.
func (d *Demo) Pulse() {
	for _, e := range d.entities {
		s := 18 + d.rng.Float64()*54
		err := d.driver.Target(e, d.Damping, d.Frequency, map[string]value.Value{
			PropSize: value.Vec2{X: s, Y: s},
		})
		if err != nil {
			slog.Warn("pulse target failed", "entity", d.labels[e], "error", err)
		}
	}
}

// StopAll cancels every animation, leaving boxes mid-flight.
func (d *Demo) StopAll() {
	for _, e := range d.entities {
		d.driver.Stop(e)
	}
}

// NotifyFirstSettled logs when the first box finishes its current
// animations.
func (d *Demo) NotifyFirstSettled() {
	if len(d.entities) == 0 {
		return
	}
	e := d.entities[0]
	label := d.labels[e]
	d.driver.OnSettled(e, func() {
		slog.Info("entity settled", "entity", label, "tick", d.tick)
	})
}

func (d *Demo) randomTint() value.Color {
	return value.Color{
		R: 0.2 + 0.8*d.rng.Float64(),
		G: 0.2 + 0.8*d.rng.Float64(),
		B: 0.2 + 0.8*d.rng.Float64(),
	}
}

// Step advances every active spring by dt seconds.
func (d *Demo) Step(dt float64) {
	d.tick++
	d.recorder.BeginTick()
	d.driver.Step(dt)
}

// Tick returns the number of steps taken.
func (d *Demo) Tick() int { return d.tick }

// ActiveSprings returns the number of live springs.
func (d *Demo) ActiveSprings() int { return d.driver.ActiveSprings() }

// Flush writes buffered telemetry to the output directory, if any.
func (d *Demo) Flush() error {
	if d.output == nil {
		return nil
	}
	if err := d.output.WriteSamples(d.recorder.Samples()); err != nil {
		return err
	}
	return d.output.WriteSettleStats(d.recorder.SettleStats())
}

// Close flushes telemetry and releases output files.
func (d *Demo) Close() error {
	if err := d.Flush(); err != nil {
		d.output.Close()
		return err
	}
	return d.output.Close()
}
