package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/frame"
	"go-phosphor/internal/particle"
	"go-phosphor/internal/pattern"
	"go-phosphor/internal/reactive"
	"go-phosphor/internal/ripple"
	"go-phosphor/pkg/palette"
	"go-phosphor/pkg/surface"
)

const sample = `
scenes:
  - name: demo
    theme: amber
    layers:
      - kind: dotmatrix
        rect: {x: 0, y: 0, w: 400, h: 60}
        dotmatrix:
          text: HI
          pattern: spiral
          effects: [pulsate]
      - kind: waveform
        rect: {x: 0, y: 60, w: 400, h: 100}
        color: "#ff0000"
        waveform:
          min: 0
          max: 10
          data: [1, 2, 3]
`

func recorders(w, h int) surface.Surface { return surface.NewRecorder(w, h) }

func TestParse(t *testing.T) {
	scenes, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(scenes) != 1 || len(scenes[0].Layers) != 2 {
		t.Fatalf("scenes = %+v", scenes)
	}
	l := scenes[0].Layers[0]
	if l.Kind != KindDotMatrix || l.DotMatrix.Text != "HI" || l.Rect.W != 400 {
		t.Errorf("layer 0 = %+v", l)
	}
	if scenes[0].Layers[1].Waveform.Max != 10 {
		t.Errorf("waveform max = %v", scenes[0].Layers[1].Waveform.Max)
	}
}

func TestParseRejectsBadScenes(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		kind error
	}{
		{"unknown kind", "scenes: [{name: x, layers: [{kind: laser, rect: {w: 1, h: 1}}]}]", ErrUnknownKind},
		{"missing section", "scenes: [{name: x, layers: [{kind: gauge, rect: {w: 1, h: 1}}]}]", nil},
		{"empty rect", "scenes: [{name: x, layers: [{kind: ripple, rect: {w: 0, h: 1}}]}]", nil},
		{"no scenes", "scenes: []", nil},
		{"bad yaml", "scenes: [", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.kind != nil && !errors.Is(err, tt.kind) {
				t.Errorf("error %v is not %v", err, tt.kind)
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()

	scenes, err := LoadOptional(filepath.Join(dir, "missing.yaml"))
	if err != nil || len(scenes) != len(Default()) {
		t.Errorf("missing file: %d scenes, err %v", len(scenes), err)
	}

	path := filepath.Join(dir, "scenes.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	scenes, err = LoadOptional(path)
	if err != nil || len(scenes) != 1 || scenes[0].Name != "demo" {
		t.Errorf("file: %+v, err %v", scenes, err)
	}

	if err := os.WriteFile(path, []byte("scenes: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptional(path); err == nil {
		t.Error("broken file accepted")
	}
}

func TestDefaultScenesRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	scenes, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(scenes) != len(Default()) {
		t.Errorf("round trip kept %d scenes", len(scenes))
	}
}

func TestMountDefaultScenes(t *testing.T) {
	for _, sc := range Default() {
		t.Run(sc.Name, func(t *testing.T) {
			clock := frame.NewManualClock()
			loop := frame.NewLoop(clock)
			st, err := Mount(sc, recorders, loop, anim.WithSeed(1))
			if err != nil {
				t.Fatalf("Mount: %v", err)
			}
			st.Start()
			for i := 0; i < 10; i++ {
				loop.Tick()
				clock.Advance(16 * time.Millisecond)
			}
			for _, in := range st.Instances {
				w, h := in.Surface.Size()
				if w != in.Layer.Rect.W || h != in.Layer.Rect.H {
					t.Errorf("%s surface %dx%d, rect %+v", in.Layer.Kind, w, h, in.Layer.Rect)
				}
				if in.Surface.(*surface.Recorder).Count("clear") == 0 {
					t.Errorf("%s layer never drew", in.Layer.Kind)
				}
			}
			st.Destroy()
		})
	}
}

func TestBuildAppliesThemeAndOverrides(t *testing.T) {
	scenes, _ := Parse([]byte(sample))
	loop := frame.NewLoop(frame.NewManualClock())
	st, err := Mount(scenes[0], recorders, loop)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	amber, _ := palette.Lookup("amber")
	dm := st.DotMatrices()[0]
	if cfg := dm.Config(); cfg.Color != amber.Primary || cfg.Pattern != pattern.Spiral {
		t.Errorf("dotmatrix colour %v pattern %v", cfg.Color, cfg.Pattern)
	}
	if _, ok := st.Progress(); !ok {
		t.Error("no progress for a scene with text")
	}
	wf := st.Find(KindWaveform)
	if len(wf) != 1 {
		t.Fatalf("waveform layers = %d", len(wf))
	}

	bad := scenes[0].Layers[1]
	bad.Color = "nope"
	if _, err := Build(bad, amber, surface.NewRecorder(10, 10), loop); err == nil {
		t.Error("bad colour accepted")
	}
	if _, err := Build(Layer{Kind: "laser"}, amber, surface.NewRecorder(10, 10), loop); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind error = %v", err)
	}
}

func TestPointerDownRoutesToLayer(t *testing.T) {
	loop := frame.NewLoop(frame.NewManualClock())
	st, err := Mount(Default()[0], recorders, loop, anim.WithSeed(3))
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	rp := st.Find(KindRipple)[0]
	if !st.PointerDown(float64(rp.Layer.Rect.X+80), float64(rp.Layer.Rect.Y+90)) {
		t.Fatal("click on ripple ignored")
	}
	waves := rp.Anim.(*ripple.Ripple).Waves()
	if len(waves) != 1 || waves[0].X != 80 || waves[0].Y != 90 {
		t.Errorf("waves = %+v, want one at layer (80,90)", waves)
	}

	pi := st.Find(KindParticles)[0]
	ps := pi.Anim.(*particle.System)
	before := ps.ParticleCount()
	if !st.PointerDown(float64(pi.Layer.Rect.X+10), float64(pi.Layer.Rect.Y+20)) {
		t.Fatal("click on particles ignored")
	}
	if ps.ParticleCount() <= before {
		t.Error("click did not burst")
	}
	if cfg := ps.Config(); cfg.X != 10 || cfg.Y != 20 {
		t.Errorf("emitter at (%v,%v)", cfg.X, cfg.Y)
	}

	if st.PointerDown(5, 5) {
		t.Error("click on the banner handled")
	}
}

func TestSetReactive(t *testing.T) {
	clock := frame.NewManualClock()
	loop := frame.NewLoop(clock)
	st, err := Mount(Default()[0], recorders, loop)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if n := st.SetReactive(reactive.Error); n != 1 {
		t.Fatalf("SetReactive touched %d animations", n)
	}
	clock.Advance(200 * time.Millisecond)
	loop.Tick()
	if p := st.DotMatrices()[0].Active().Pattern; p != pattern.Random {
		t.Errorf("pattern after error = %v, want random", p)
	}
}

func TestResizeLayer(t *testing.T) {
	loop := frame.NewLoop(frame.NewManualClock())
	st, err := Mount(Default()[1], recorders, loop)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if err := st.Resize(0, Rect{0, 0, 10, 10}); err == nil {
		t.Error("dotmatrix layer resized")
	}
	if err := st.Resize(1, Rect{0, 0, 160, 160}); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w, h := st.Instances[1].Surface.Size(); w != 160 || h != 160 {
		t.Errorf("surface %dx%d", w, h)
	}
	if err := st.Resize(9, Rect{}); err == nil {
		t.Error("out of range accepted")
	}
}

func TestInstanceStatus(t *testing.T) {
	loop := frame.NewLoop(frame.NewManualClock())
	st, err := Mount(Default()[0], recorders, loop)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	want := map[Kind]string{
		KindDotMatrix: "char 0/13, 0%, pattern sequential",
		KindGauge:     "42.0 -> 42.0",
		KindWaveform:  "0 samples",
		KindRipple:    "0 waves",
		KindParticles: "0 particles",
	}
	for _, in := range st.Instances {
		if got := in.Status(); got != want[in.Layer.Kind] {
			t.Errorf("%s status = %q, want %q", in.Layer.Kind, got, want[in.Layer.Kind])
		}
	}
}
