package particle

import (
	"math"
	"testing"
	"time"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/frame"
	"go-phosphor/pkg/surface"
)

type rig struct {
	clock *frame.ManualClock
	loop  *frame.Loop
	rec   *surface.Recorder
	now   float64
}

func newRig() *rig {
	clock := frame.NewManualClock()
	return &rig{clock: clock, loop: frame.NewLoop(clock), rec: surface.NewRecorder(400, 300)}
}

func (r *rig) tickAt(ms float64) {
	r.clock.Advance(time.Duration((ms - r.now) * float64(time.Millisecond)))
	r.now = ms
	r.loop.Tick()
}

// still — частицы без скорости и без излучения, живут ровно life мс.
func still(life float64) Config {
	cfg := DefaultConfig()
	cfg.X, cfg.Y = 100, 100
	cfg.SpeedMin, cfg.SpeedMax = 0, 0
	cfg.LifeMin, cfg.LifeMax = life, life
	cfg.SpinMin, cfg.SpinMax = 0, 0
	cfg.EmissionRate = 0
	return cfg
}

func newSystem(t *testing.T, r *rig, cfg Config) *System {
	t.Helper()
	s, err := New(r.rec, r.loop, cfg, anim.WithSeed(5))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestParticleLifecycle(t *testing.T) {
	r := newRig()
	s := newSystem(t, r, still(1000))
	s.Burst(1)
	s.Start()

	r.tickAt(0)
	r.tickAt(999)
	if s.ParticleCount() != 1 {
		t.Fatalf("particle gone at age 999ms")
	}
	r.tickAt(1001)
	if s.ParticleCount() != 0 {
		t.Errorf("particle alive at age 1001ms")
	}
}

func TestAgeUsesUncappedDelta(t *testing.T) {
	r := newRig()
	s := newSystem(t, r, still(500))
	s.Burst(3)
	s.Start()
	r.tickAt(0)
	r.tickAt(600) // один длинный кадр
	if s.ParticleCount() != 0 {
		t.Errorf("long frame must age particles fully, %d left", s.ParticleCount())
	}
}

func TestBurstRespectsMaxParticles(t *testing.T) {
	r := newRig()
	cfg := still(1000)
	cfg.MaxParticles = 10
	s := newSystem(t, r, cfg)
	s.Burst(25)
	if s.ParticleCount() != 10 {
		t.Errorf("ParticleCount = %d, want 10", s.ParticleCount())
	}
	s.Burst(0)
	if s.ParticleCount() != 10 {
		t.Errorf("default burst exceeded the cap")
	}
}

func TestEmissionRate(t *testing.T) {
	r := newRig()
	cfg := still(10_000)
	cfg.EmissionRate = 50
	s := newSystem(t, r, cfg)
	s.Start()
	r.tickAt(0)
	for ms := 50.0; ms <= 1000; ms += 50 {
		r.tickAt(ms)
	}
	if n := s.ParticleCount(); n < 49 || n > 50 {
		t.Errorf("emitted %d particles in 1s at 50/s", n)
	}
}

func TestForces(t *testing.T) {
	tests := []struct {
		name   string
		force  Force
		checkX func(dx float64) bool
		checkY func(dy float64) bool
	}{
		{"gravity", Force{Type: Gravity, Strength: 100}, zero, positive},
		{"wind", Force{Type: Wind, Strength: -100}, negative, zero},
		{"attract", Force{Type: Attract, Strength: 500, X: 200, Y: 100}, positive, zero},
		{"repel", Force{Type: Repel, Strength: 500, X: 200, Y: 100}, negative, zero},
		{"vortex", Force{Type: Vortex, Strength: 500, X: 200, Y: 100}, zero, positive},
		{"attract out of radius", Force{Type: Attract, Strength: 500, X: 200, Y: 100, Radius: 50}, zero, zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig()
			cfg := still(10_000)
			cfg.Friction = 1
			s := newSystem(t, r, cfg)
			s.AddForce(tt.force)
			s.Burst(1)
			s.Start()
			r.tickAt(0)
			r.tickAt(50)
			p := s.Particles()[0]
			if !tt.checkX(p.X-100) || !tt.checkY(p.Y-100) {
				t.Errorf("moved by (%v, %v)", p.X-100, p.Y-100)
			}
		})
	}
}

func zero(v float64) bool     { return math.Abs(v) < 1e-9 }
func positive(v float64) bool { return v > 1e-9 }
func negative(v float64) bool { return v < -1e-9 }

func TestPhysicsStepIsCapped(t *testing.T) {
	r := newRig()
	cfg := still(10_000)
	cfg.Friction = 1
	cfg.BoundsMargin = 1e6
	s := newSystem(t, r, cfg)
	s.AddForce(Force{Type: Gravity, Strength: 1000})
	s.Burst(1)
	s.Start()
	r.tickAt(0)
	r.tickAt(1000)
	// при шаге 0.06 с: v = 60, y += 3.6
	if dy := s.Particles()[0].Y - 100; math.Abs(dy-3.6) > 1e-6 {
		t.Errorf("dy = %v, want 3.6", dy)
	}
}

func TestOutOfBoundsParticlesDie(t *testing.T) {
	r := newRig()
	cfg := still(10_000)
	cfg.X = 390
	cfg.SpeedMin, cfg.SpeedMax = 3000, 3000
	cfg.Direction, cfg.Spread = 0, 0
	cfg.BoundsMargin = 10
	cfg.Friction = 1
	s := newSystem(t, r, cfg)
	s.Burst(1)
	s.Start()
	r.tickAt(0)
	r.tickAt(16)
	if s.ParticleCount() != 0 {
		t.Errorf("particle beyond bounds survived at x=%v", s.Particles()[0].X)
	}
}

func TestClearForcesAndEmitterPosition(t *testing.T) {
	r := newRig()
	s := newSystem(t, r, still(1000))
	s.AddForce(Force{Type: Gravity, Strength: 10})
	s.ClearForces()
	s.SetEmitterPosition(10, 20)
	s.Burst(1)
	p := s.Particles()[0]
	if p.X != 10 || p.Y != 20 {
		t.Errorf("particle spawned at (%v,%v)", p.X, p.Y)
	}
	s.Start()
	r.tickAt(0)
	r.tickAt(100)
	if p := s.Particles()[0]; p.Y != 20 {
		t.Errorf("cleared force still acts, y=%v", p.Y)
	}
}

func TestDrawAndDestroy(t *testing.T) {
	r := newRig()
	s := newSystem(t, r, still(1000))
	s.Burst(4)
	s.Start()
	r.tickAt(0)
	if got := r.rec.Count("fillCircle"); got != 4 {
		t.Errorf("drew %d particles, want 4", got)
	}
	for _, c := range r.rec.Filter("fillCircle") {
		if c.Style.ShadowBlur != DefaultConfig().GlowIntensity {
			t.Errorf("particle drawn without glow: %+v", c.Style)
		}
	}
	s.Destroy()
	s.Destroy()
	r.tickAt(16)
	if r.loop.PendingFrames() != 0 || s.ParticleCount() != 0 {
		t.Error("destroyed system still active")
	}
}
