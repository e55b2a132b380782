// Package ripple — расходящиеся круги на воде: по клику и по таймеру.
package ripple

import (
	"fmt"
	"image/color"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/config"
	"go-phosphor/internal/frame"
	"go-phosphor/internal/utils"
	"go-phosphor/pkg/surface"
)

type Config struct {
	Speed         float64 // пикселей за кадр 60 Гц
	FadeRate      float64 // альфы за кадр 60 Гц
	MaxRadius     float64
	MaxWaves      int
	AutoInterval  float64 // мс, 0 — без автоматических волн
	ClickWaves    bool
	Echoes        int // дополнительные внутренние кольца
	Color         color.RGBA
	Background    color.RGBA
	LineWidth     float64
	GlowIntensity float64
}

func DefaultConfig() Config {
	return Config{
		Speed:         config.WaveSpeed,
		FadeRate:      config.WaveFadeRate,
		MaxRadius:     config.WaveMaxRadius,
		MaxWaves:      config.MaxWaves,
		AutoInterval:  config.WaveAutoInterval,
		ClickWaves:    true,
		Echoes:        2,
		Color:         config.PhosphorCyan,
		Background:    config.BackgroundColor,
		LineWidth:     2,
		GlowIntensity: config.DefaultGlow,
	}
}

// Wave — одна волна.
type Wave struct {
	X, Y      float64
	Radius    float64
	MaxRadius float64
	Alpha     float64
	Speed     float64
}

type Ripple struct {
	r    *anim.Runner
	surf surface.Surface
	cfg  Config
	rng  *utils.PRNGService

	waves    []Wave
	dt       anim.Delta
	lastAuto float64
	autoSet  bool
}

func New(surf surface.Surface, sched frame.Scheduler, cfg Config, opts ...anim.Option) (*Ripple, error) {
	r, err := anim.NewRunner("ripple", surf, sched, opts...)
	if err != nil {
		return nil, fmt.Errorf("ripple: %w", err)
	}
	w := &Ripple{r: r, surf: surf, cfg: cfg, rng: utils.NewPRNGService(r.Seed())}
	r.Bind(w.render)
	return w, nil
}

func (w *Ripple) ID() string { return w.r.ID() }

func (w *Ripple) Start() {
	w.dt.Reset()
	w.autoSet = false
	w.r.Start()
}

func (w *Ripple) Stop() { w.r.Stop() }

func (w *Ripple) Destroy() {
	if w.r.Destroy() {
		w.waves = nil
	}
}

func (w *Ripple) UpdateConfig(mutate func(*Config)) {
	mutate(&w.cfg)
	w.trim()
}

func (w *Ripple) Resize(width, height int) { w.r.Resize(w.surf, width, height) }

// CreateWave запускает волну из точки (x, y). При переполнении вытесняется самая старая.
func (w *Ripple) CreateWave(x, y float64) {
	w.waves = append(w.waves, Wave{
		X:         x,
		Y:         y,
		MaxRadius: w.cfg.MaxRadius,
		Alpha:     1,
		Speed:     w.cfg.Speed,
	})
	w.trim()
}

func (w *Ripple) trim() {
	if w.cfg.MaxWaves <= 0 {
		return
	}
	if extra := len(w.waves) - w.cfg.MaxWaves; extra > 0 {
		w.waves = append(w.waves[:0], w.waves[extra:]...)
	}
}

func (w *Ripple) EnableClickWaves()  { w.cfg.ClickWaves = true }
func (w *Ripple) DisableClickWaves() { w.cfg.ClickWaves = false }

// PointerDown — событие указателя от хоста. Возвращает true, если волна создана.
func (w *Ripple) PointerDown(x, y float64) bool {
	if !w.cfg.ClickWaves || w.r.Destroyed() {
		return false
	}
	w.CreateWave(x, y)
	return true
}

// Clear убирает все волны.
func (w *Ripple) Clear() { w.waves = w.waves[:0] }

func (w *Ripple) Waves() []Wave { return append([]Wave(nil), w.waves...) }

func (w *Ripple) render(ts float64) {
	w.auto(ts)
	w.update(w.dt.Step(ts))
	w.draw()
	w.r.Schedule()
}

func (w *Ripple) auto(ts float64) {
	if w.cfg.AutoInterval <= 0 {
		return
	}
	if !w.autoSet {
		w.lastAuto, w.autoSet = ts, true
		return
	}
	if ts-w.lastAuto < w.cfg.AutoInterval {
		return
	}
	w.lastAuto = ts
	width, height := w.surf.Size()
	w.CreateWave(w.rng.Range(0, float64(width)), w.rng.Range(0, float64(height)))
}

func (w *Ripple) update(dtMs float64) {
	frames := dtMs / config.FrameMs
	alive := w.waves[:0]
	for _, wv := range w.waves {
		wv.Radius += wv.Speed * frames
		wv.Alpha -= w.cfg.FadeRate * frames
		if wv.Alpha < config.WaveMinAlpha || wv.Radius > wv.MaxRadius {
			continue
		}
		alive = append(alive, wv)
	}
	w.waves = alive
}

func (w *Ripple) draw() {
	if surface.Empty(w.surf) {
		return
	}
	w.surf.Clear(w.cfg.Background)
	for _, wv := range w.waves {
		st := surface.Stroke(w.cfg.Color, wv.Alpha, w.cfg.LineWidth).WithGlow(w.cfg.GlowIntensity)
		w.surf.StrokeCircle(wv.X, wv.Y, wv.Radius, st)
		for k := 1; k <= w.cfg.Echoes; k++ {
			r := wv.Radius * (1 - 0.25*float64(k))
			if r <= 0 {
				break
			}
			echo := st
			echo.Alpha = wv.Alpha / float64(k+1)
			w.surf.StrokeCircle(wv.X, wv.Y, r, echo)
		}
	}
}
