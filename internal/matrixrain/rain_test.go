package matrixrain

import (
	"testing"
	"time"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/frame"
	"go-phosphor/pkg/surface"
)

func newRain(t *testing.T, mutate func(*Config)) (*Rain, *frame.Loop, *frame.ManualClock, *surface.Recorder) {
	t.Helper()
	clock := frame.NewManualClock()
	loop := frame.NewLoop(clock)
	rec := surface.NewRecorder(140, 140)
	cfg := DefaultConfig()
	cfg.FontSize = 14
	cfg.TrailLength = 3
	cfg.Density = 1
	cfg.SpeedMin, cfg.SpeedMax = 1, 1
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := New(rec, loop, cfg, anim.WithSeed(9))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, loop, clock, rec
}

func TestColumnsFollowWidth(t *testing.T) {
	m, _, _, _ := newRain(t, nil)
	if m.Columns() != 10 {
		t.Errorf("Columns() = %d, want 10", m.Columns())
	}
}

func TestDropsSpawnFallAndDie(t *testing.T) {
	m, loop, clock, rec := newRain(t, nil)
	m.Start()
	loop.Tick()
	if n := len(m.Drops()); n != 10 {
		t.Fatalf("drops after first frame = %d, want one per column", n)
	}
	heads := rec.Filter("fillText")
	if len(heads) != 10 {
		t.Fatalf("drew %d glyphs, want 10 heads", len(heads))
	}
	for _, c := range heads {
		if c.Style.Color != DefaultConfig().HeadColor || c.Style.ShadowBlur == 0 {
			t.Errorf("head drawn with %+v", c.Style)
		}
	}

	m.UpdateConfig(func(c *Config) { c.Density = 0 })
	// 50 мс = 3 кадра 60 Гц; капля умирает, когда Head-3 > 10 строк
	for i := 0; i < 4; i++ {
		clock.Advance(50 * time.Millisecond)
		loop.Tick()
	}
	if n := len(m.Drops()); n != 10 {
		t.Fatalf("drops died early, %d left", n)
	}
	clock.Advance(50 * time.Millisecond)
	loop.Tick()
	if n := len(m.Drops()); n != 0 {
		t.Errorf("%d drops outlived the screen", n)
	}
}

func TestTrailFades(t *testing.T) {
	m, loop, clock, rec := newRain(t, nil)
	m.Start()
	loop.Tick()
	clock.Advance(50 * time.Millisecond)
	rec.Reset()
	loop.Tick()

	var alphas []float64
	for _, c := range rec.SinceLastClear() {
		if c.Op == "fillText" && c.Args[0] == 0 {
			alphas = append(alphas, c.Style.Alpha)
		}
	}
	if len(alphas) != 3 {
		t.Fatalf("column 0 drew %d glyphs, want 3", len(alphas))
	}
	for i := 1; i < len(alphas); i++ {
		if alphas[i] >= alphas[i-1] {
			t.Errorf("trail alpha not decreasing: %v", alphas)
		}
	}
}

func TestResizeDropsColumns(t *testing.T) {
	m, loop, _, _ := newRain(t, nil)
	m.Start()
	loop.Tick()
	m.Resize(70, 140)
	if m.Columns() != 5 {
		t.Errorf("Columns() = %d after resize", m.Columns())
	}
	for _, d := range m.Drops() {
		if d.Column >= 5 {
			t.Errorf("drop left in removed column %d", d.Column)
		}
	}
}

func TestStopAndDestroy(t *testing.T) {
	m, loop, _, _ := newRain(t, nil)
	m.Start()
	m.Stop()
	loop.Tick()
	if loop.PendingFrames() != 0 {
		t.Error("stopped rain scheduled a frame")
	}
	m.Destroy()
	m.Destroy()
	m.Start()
	loop.Tick()
	if loop.PendingFrames() != 0 || len(m.Drops()) != 0 {
		t.Error("destroyed rain still active")
	}
}
