package scene

import (
	"errors"
	"fmt"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/dotmatrix"
	"go-phosphor/internal/frame"
	"go-phosphor/internal/particle"
	"go-phosphor/internal/reactive"
	"go-phosphor/internal/ripple"
	"go-phosphor/pkg/palette"
	"go-phosphor/pkg/surface"
)

// SurfaceFactory выдаёт хосту новую поверхность под слой.
type SurfaceFactory func(w, h int) surface.Surface

// Instance — смонтированный слой.
type Instance struct {
	Layer   Layer
	Surface surface.Surface
	Anim    Animation
}

// Stage — смонтированная сцена. Каждый слой владеет своей поверхностью.
type Stage struct {
	Scene     Scene
	Theme     palette.Theme
	Instances []Instance
}

// Mount создаёт анимации всех слоёв сцены. При ошибке уже созданные уничтожаются.
func Mount(sc Scene, newSurface SurfaceFactory, sched frame.Scheduler, opts ...anim.Option) (*Stage, error) {
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", sc.Name, err)
	}
	theme, _ := palette.Lookup(sc.Theme)
	st := &Stage{Scene: sc, Theme: theme}
	for i, l := range sc.Layers {
		surf := newSurface(l.Rect.W, l.Rect.H)
		a, err := Build(l, theme, surf, sched, opts...)
		if err != nil {
			st.Destroy()
			return nil, fmt.Errorf("scene %q layer %d: %w", sc.Name, i, err)
		}
		st.Instances = append(st.Instances, Instance{Layer: l, Surface: surf, Anim: a})
	}
	return st, nil
}

func (s *Stage) Start() {
	for _, in := range s.Instances {
		in.Anim.Start()
	}
}

func (s *Stage) Stop() {
	for _, in := range s.Instances {
		in.Anim.Stop()
	}
}

func (s *Stage) Destroy() {
	for _, in := range s.Instances {
		in.Anim.Destroy()
	}
}

// PointerDown передаёт клик в экранных координатах слою под курсором:
// рябь создаёт волну, частицы выбрасывают залп из точки клика.
func (s *Stage) PointerDown(x, y float64) bool {
	for i := len(s.Instances) - 1; i >= 0; i-- {
		in := s.Instances[i]
		if !in.Layer.Rect.Contains(x, y) {
			continue
		}
		lx, ly := x-float64(in.Layer.Rect.X), y-float64(in.Layer.Rect.Y)
		switch a := in.Anim.(type) {
		case *ripple.Ripple:
			return a.PointerDown(lx, ly)
		case *particle.System:
			a.SetEmitterPosition(lx, ly)
			a.Burst(0)
			return true
		}
	}
	return false
}

// SetReactive переводит все реактивные бегущие строки в состояние state.
func (s *Stage) SetReactive(state reactive.State) int {
	n := 0
	for _, dm := range s.DotMatrices() {
		cfg := dm.Config()
		if cfg.Reactive == nil {
			continue
		}
		dm.UpdateReactiveState(reactive.Config{Enabled: cfg.Reactive.Enabled, State: state})
		n++
	}
	return n
}

// Progress — прогресс первой бегущей строки сцены.
func (s *Stage) Progress() (float64, bool) {
	dms := s.DotMatrices()
	if len(dms) == 0 {
		return 0, false
	}
	return dms[0].State().Progress, true
}

func (s *Stage) DotMatrices() []*dotmatrix.Animation {
	var out []*dotmatrix.Animation
	for _, in := range s.Instances {
		if dm, ok := in.Anim.(*dotmatrix.Animation); ok {
			out = append(out, dm)
		}
	}
	return out
}

// Find возвращает слои вида k.
func (s *Stage) Find(k Kind) []Instance {
	var out []Instance
	for _, in := range s.Instances {
		if in.Layer.Kind == k {
			out = append(out, in)
		}
	}
	return out
}

// Resize меняет область слоя i; анимации без изменения размера отказываются.
func (s *Stage) Resize(i int, r Rect) error {
	if i < 0 || i >= len(s.Instances) {
		return fmt.Errorf("layer %d out of range", i)
	}
	type resizer interface{ Resize(w, h int) }
	rs, ok := s.Instances[i].Anim.(resizer)
	if !ok {
		return errors.New("animation cannot be resized")
	}
	rs.Resize(r.W, r.H)
	s.Instances[i].Layer.Rect = r
	return nil
}
