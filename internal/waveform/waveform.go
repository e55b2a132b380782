// Package waveform — осциллограф: кольцевой буфер значений, нарисованный
// светящейся линией поверх сетки.
package waveform

import (
	"fmt"
	"image/color"
	"math"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/config"
	"go-phosphor/internal/frame"
	"go-phosphor/internal/utils"
	"go-phosphor/pkg/surface"
)

// Generator — встроенный источник данных: синус с шумом.
type Generator struct {
	Amplitude float64 // в единицах значения
	Frequency float64 // Гц
	Noise     float64 // амплитуда равномерного шума
	Interval  float64 // мс между отсчётами
}

type Config struct {
	MaxPoints     int
	Min, Max      float64
	Smooth        bool
	ShowGrid      bool
	GridSpacing   float64
	Color         color.RGBA
	GridColor     color.RGBA
	Background    color.RGBA
	LineWidth     float64
	GlowIntensity float64
	Generator     *Generator
}

func DefaultConfig() Config {
	return Config{
		MaxPoints:     config.WaveformMaxPoints,
		Min:           -1,
		Max:           1,
		Smooth:        true,
		ShowGrid:      true,
		GridSpacing:   40,
		Color:         config.PhosphorGreen,
		GridColor:     config.GridColor,
		Background:    config.BackgroundColor,
		LineWidth:     config.WaveformLineWidth,
		GlowIntensity: config.DefaultGlow,
	}
}

type Waveform struct {
	r    *anim.Runner
	surf surface.Surface
	cfg  Config
	rng  *utils.PRNGService

	data  []float64
	path  surface.Path
	dt    anim.Delta
	clock float64 // время генератора, мс
	acc   float64
}

func New(surf surface.Surface, sched frame.Scheduler, cfg Config, opts ...anim.Option) (*Waveform, error) {
	r, err := anim.NewRunner("waveform", surf, sched, opts...)
	if err != nil {
		return nil, fmt.Errorf("waveform: %w", err)
	}
	w := &Waveform{r: r, surf: surf, rng: utils.NewPRNGService(r.Seed())}
	w.apply(cfg)
	r.Bind(w.render)
	return w, nil
}

func (w *Waveform) apply(cfg Config) {
	if cfg.MaxPoints < 2 {
		cfg.MaxPoints = 2
	}
	if cfg.Generator != nil {
		g := *cfg.Generator
		cfg.Generator = &g
	}
	w.cfg = cfg
	w.trim()
}

func (w *Waveform) ID() string { return w.r.ID() }

func (w *Waveform) Start() {
	w.dt.Reset()
	w.r.Start()
}

func (w *Waveform) Stop() { w.r.Stop() }

func (w *Waveform) Destroy() {
	if w.r.Destroy() {
		w.data = nil
	}
}

func (w *Waveform) UpdateConfig(mutate func(*Config)) {
	next := w.cfg
	mutate(&next)
	w.apply(next)
}

func (w *Waveform) Resize(width, height int) { w.r.Resize(w.surf, width, height) }

// AddDataPoint дописывает значение; самые старые вытесняются после MaxPoints.
func (w *Waveform) AddDataPoint(v float64) {
	w.data = append(w.data, v)
	w.trim()
}

// SetData заменяет буфер последними MaxPoints значениями.
func (w *Waveform) SetData(values []float64) {
	w.data = append(w.data[:0], values...)
	w.trim()
}

func (w *Waveform) ClearData() { w.data = w.data[:0] }

// Data возвращает копию буфера.
func (w *Waveform) Data() []float64 { return append([]float64(nil), w.data...) }

func (w *Waveform) trim() {
	if extra := len(w.data) - w.cfg.MaxPoints; extra > 0 {
		w.data = append(w.data[:0], w.data[extra:]...)
	}
}

func (w *Waveform) render(ts float64) {
	w.generate(w.dt.Step(ts))
	w.draw()
	w.r.Schedule()
}

func (w *Waveform) generate(dtMs float64) {
	g := w.cfg.Generator
	if g == nil || g.Interval <= 0 {
		return
	}
	w.acc += dtMs
	for w.acc >= g.Interval {
		w.acc -= g.Interval
		w.clock += g.Interval
		mid := (w.cfg.Min + w.cfg.Max) / 2
		v := mid + g.Amplitude*math.Sin(2*math.Pi*g.Frequency*w.clock/1000)
		if g.Noise > 0 {
			v += w.rng.Range(-g.Noise, g.Noise)
		}
		w.AddDataPoint(v)
	}
}

// Y переводит значение в экранную координату: Max — верх, Min — низ.
func (w *Waveform) Y(v float64, height float64) float64 {
	span := w.cfg.Max - w.cfg.Min
	if span == 0 {
		span = 1
	}
	t := utils.Clamp01((v - w.cfg.Min) / span)
	return height - t*height
}

func (w *Waveform) draw() {
	if surface.Empty(w.surf) {
		return
	}
	iw, ih := w.surf.Size()
	width, height := float64(iw), float64(ih)
	w.surf.Clear(w.cfg.Background)

	if w.cfg.ShowGrid && w.cfg.GridSpacing > 0 {
		grid := surface.Stroke(w.cfg.GridColor, 1, 1)
		for x := 0.0; x <= width; x += w.cfg.GridSpacing {
			w.surf.StrokeLine(x, 0, x, height, grid)
		}
		for y := 0.0; y <= height; y += w.cfg.GridSpacing {
			w.surf.StrokeLine(0, y, width, y, grid)
		}
	}

	n := len(w.data)
	if n < 2 {
		return
	}
	step := width / float64(w.cfg.MaxPoints-1)
	// буфер прижат к правому краю: новые точки появляются справа
	x0 := width - float64(n-1)*step
	px := func(i int) float64 { return x0 + float64(i)*step }

	w.path.Reset()
	w.path.MoveTo(px(0), w.Y(w.data[0], height))
	if w.cfg.Smooth {
		for i := 1; i < n-1; i++ {
			cx, cy := px(i), w.Y(w.data[i], height)
			mx := (cx + px(i+1)) / 2
			my := (cy + w.Y(w.data[i+1], height)) / 2
			w.path.QuadTo(cx, cy, mx, my)
		}
		w.path.LineTo(px(n-1), w.Y(w.data[n-1], height))
	} else {
		for i := 1; i < n; i++ {
			w.path.LineTo(px(i), w.Y(w.data[i], height))
		}
	}
	w.surf.StrokePath(&w.path, surface.Stroke(w.cfg.Color, 1, w.cfg.LineWidth).WithGlow(w.cfg.GlowIntensity))
}
