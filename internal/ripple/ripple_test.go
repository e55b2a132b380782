package ripple

import (
	"math"
	"testing"
	"time"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/frame"
	"go-phosphor/pkg/surface"
)

func newRipple(t *testing.T, mutate func(*Config)) (*Ripple, *frame.Loop, *frame.ManualClock, *surface.Recorder) {
	t.Helper()
	clock := frame.NewManualClock()
	loop := frame.NewLoop(clock)
	rec := surface.NewRecorder(300, 300)
	cfg := DefaultConfig()
	cfg.AutoInterval = 0
	cfg.Echoes = 0
	if mutate != nil {
		mutate(&cfg)
	}
	w, err := New(rec, loop, cfg, anim.WithSeed(4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w, loop, clock, rec
}

func TestWaveExpandsPerFrameEquivalent(t *testing.T) {
	w, loop, clock, _ := newRipple(t, nil)
	w.CreateWave(100, 100)
	w.Start()
	loop.Tick()
	clock.Advance(50 * time.Millisecond) // 3 кадра 60 Гц
	loop.Tick()

	wv := w.Waves()[0]
	if math.Abs(wv.Radius-6) > 1e-9 {
		t.Errorf("radius = %v, want 6", wv.Radius)
	}
	if math.Abs(wv.Alpha-0.97) > 1e-9 {
		t.Errorf("alpha = %v, want 0.97", wv.Alpha)
	}
}

func TestWaveRemovedWhenFadedOrTooBig(t *testing.T) {
	w, loop, clock, _ := newRipple(t, func(c *Config) { c.MaxRadius = 10 })
	w.CreateWave(100, 100)
	w.Start()
	loop.Tick()
	clock.Advance(50 * time.Millisecond)
	loop.Tick()
	if len(w.Waves()) != 1 {
		t.Fatal("wave removed too early")
	}
	clock.Advance(50 * time.Millisecond) // радиус 12 > 10
	loop.Tick()
	if len(w.Waves()) != 0 {
		t.Error("wave beyond max radius survived")
	}

	w.UpdateConfig(func(c *Config) { c.MaxRadius = 1000; c.FadeRate = 0.5 })
	w.CreateWave(1, 1)
	clock.Advance(50 * time.Millisecond) // альфа 1 - 1.5 < 0.01
	loop.Tick()
	if len(w.Waves()) != 0 {
		t.Error("faded wave survived")
	}
}

func TestMaxWavesEvictsOldest(t *testing.T) {
	w, _, _, _ := newRipple(t, func(c *Config) { c.MaxWaves = 3 })
	for i := 0; i < 5; i++ {
		w.CreateWave(float64(i), 0)
	}
	waves := w.Waves()
	if len(waves) != 3 || waves[0].X != 2 {
		t.Errorf("waves = %+v, want the last three", waves)
	}
	w.Clear()
	if len(w.Waves()) != 0 {
		t.Error("Clear left waves")
	}
}

func TestClickWavesToggle(t *testing.T) {
	w, _, _, _ := newRipple(t, nil)
	if !w.PointerDown(5, 5) {
		t.Error("click ignored while enabled")
	}
	w.DisableClickWaves()
	if w.PointerDown(5, 5) {
		t.Error("click created a wave while disabled")
	}
	w.EnableClickWaves()
	w.PointerDown(5, 5)
	if len(w.Waves()) != 2 {
		t.Errorf("waves = %d, want 2", len(w.Waves()))
	}
}

func TestAutoWaves(t *testing.T) {
	w, loop, clock, _ := newRipple(t, func(c *Config) { c.AutoInterval = 100 })
	w.Start()
	loop.Tick()
	for i := 0; i < 5; i++ {
		clock.Advance(50 * time.Millisecond)
		loop.Tick()
	}
	if n := len(w.Waves()); n != 2 {
		t.Errorf("auto waves after 250ms = %d, want 2", n)
	}
}

func TestDrawEchoRings(t *testing.T) {
	w, loop, clock, rec := newRipple(t, func(c *Config) { c.Echoes = 2 })
	w.CreateWave(50, 50)
	w.Start()
	loop.Tick()
	clock.Advance(50 * time.Millisecond)
	rec.Reset()
	loop.Tick()
	circles := rec.Filter("strokeCircle")
	if len(circles) != 3 {
		t.Fatalf("strokeCircle calls = %d, want 3", len(circles))
	}
	if circles[1].Style.Alpha >= circles[0].Style.Alpha {
		t.Error("echo ring not dimmer than the wave")
	}
	if circles[0].Style.ShadowBlur == 0 {
		t.Error("wave drawn without glow")
	}
}
