// Package gauge — стрелочный индикатор на дуге 270°. Стрелка догоняет
// значение пружиной harmonica, шагая фиксированными кадрами 60 Гц.
package gauge

import (
	"fmt"
	"image/color"
	"math"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/config"
	"go-phosphor/internal/frame"
	"go-phosphor/internal/utils"
	"go-phosphor/pkg/surface"

	"github.com/charmbracelet/harmonica"
)

// maxSteps ограничивает догоняющие шаги пружины после долгой паузы.
const maxSteps = 10

type Config struct {
	Value      float64
	Min, Max   float64
	Label      string
	Units      string
	StartAngle float64 // градусы, 0 — ось X, по часовой стрелке
	Sweep      float64
	Ticks      int
	LineWidth  float64

	// Warning и Critical — пороги в единицах значения; 0 — без порога.
	Warning  float64
	Critical float64

	Color         color.RGBA
	WarningColor  color.RGBA
	CriticalColor color.RGBA
	TrackColor    color.RGBA
	TextColor     color.RGBA
	Background    color.RGBA
	GlowIntensity float64

	SpringFrequency float64
	SpringDamping   float64
}

func DefaultConfig() Config {
	return Config{
		Min:             0,
		Max:             100,
		StartAngle:      config.GaugeStartAngle,
		Sweep:           config.GaugeSweep,
		Ticks:           config.GaugeTicks,
		LineWidth:       config.GaugeLineWidth,
		Color:           config.PhosphorGreen,
		WarningColor:    config.PhosphorAmber,
		CriticalColor:   config.AlertRed,
		TrackColor:      config.TrackColor,
		TextColor:       config.TextLightColor,
		Background:      config.BackgroundColor,
		GlowIntensity:   config.DefaultGlow,
		SpringFrequency: config.GaugeSpringFreq,
		SpringDamping:   config.GaugeSpringDamp,
	}
}

type Gauge struct {
	r    *anim.Runner
	surf surface.Surface
	cfg  Config

	spring   harmonica.Spring
	pos, vel float64
	acc      float64
	dt       anim.Delta
}

func New(surf surface.Surface, sched frame.Scheduler, cfg Config, opts ...anim.Option) (*Gauge, error) {
	r, err := anim.NewRunner("gauge", surf, sched, opts...)
	if err != nil {
		return nil, fmt.Errorf("gauge: %w", err)
	}
	g := &Gauge{r: r, surf: surf}
	g.apply(cfg)
	g.pos = g.cfg.Value
	r.Bind(g.render)
	return g, nil
}

func (g *Gauge) apply(cfg Config) {
	if cfg.Max <= cfg.Min {
		cfg.Max = cfg.Min + 1
	}
	cfg.Value = utils.Clamp(cfg.Value, cfg.Min, cfg.Max)
	g.cfg = cfg
	g.spring = harmonica.NewSpring(harmonica.FPS(config.TargetFPS), cfg.SpringFrequency, cfg.SpringDamping)
}

func (g *Gauge) ID() string { return g.r.ID() }

func (g *Gauge) Start() {
	g.dt.Reset()
	g.r.Start()
}

func (g *Gauge) Stop() { g.r.Stop() }

func (g *Gauge) Destroy() { g.r.Destroy() }

func (g *Gauge) UpdateConfig(mutate func(*Config)) {
	next := g.cfg
	mutate(&next)
	g.apply(next)
}

func (g *Gauge) Resize(w, h int) { g.r.Resize(g.surf, w, h) }

// SetValue задаёт целевое значение; стрелка придёт к нему плавно.
func (g *Gauge) SetValue(v float64) {
	g.cfg.Value = utils.Clamp(v, g.cfg.Min, g.cfg.Max)
}

func (g *Gauge) Value() float64 { return g.cfg.Value }

// Displayed — значение, которое сейчас показывает стрелка.
func (g *Gauge) Displayed() float64 { return g.pos }

func (g *Gauge) render(ts float64) {
	g.step(g.dt.Step(ts))
	g.draw()
	g.r.Schedule()
}

func (g *Gauge) step(dtMs float64) {
	g.acc += dtMs
	n := 0
	for g.acc >= config.FrameMs && n < maxSteps {
		g.pos, g.vel = g.spring.Update(g.pos, g.vel, g.cfg.Value)
		g.acc -= config.FrameMs
		n++
	}
	if n == maxSteps {
		g.acc = 0
	}
}

func (g *Gauge) fraction(v float64) float64 {
	return utils.Clamp01((v - g.cfg.Min) / (g.cfg.Max - g.cfg.Min))
}

func (g *Gauge) angle(frac float64) float64 {
	return utils.DegToRad(g.cfg.StartAngle + g.cfg.Sweep*frac)
}

func (g *Gauge) valueColor(v float64) color.RGBA {
	switch {
	case g.cfg.Critical > 0 && v >= g.cfg.Critical:
		return g.cfg.CriticalColor
	case g.cfg.Warning > 0 && v >= g.cfg.Warning:
		return g.cfg.WarningColor
	}
	return g.cfg.Color
}

func (g *Gauge) draw() {
	if surface.Empty(g.surf) {
		return
	}
	w, h := g.surf.Size()
	cx, cy := float64(w)/2, float64(h)/2
	radius := math.Min(cx, cy) - g.cfg.LineWidth*2
	g.surf.Clear(g.cfg.Background)
	if radius <= 0 {
		return
	}

	a0 := g.angle(0)
	g.surf.StrokeArc(cx, cy, radius, a0, g.angle(1), surface.Stroke(g.cfg.TrackColor, 1, g.cfg.LineWidth))

	frac := g.fraction(g.pos)
	col := g.valueColor(g.pos)
	glow := surface.Stroke(col, 1, g.cfg.LineWidth).WithGlow(g.cfg.GlowIntensity)
	if frac > 0 {
		g.surf.StrokeArc(cx, cy, radius, a0, g.angle(frac), glow)
	}

	tick := surface.Stroke(g.cfg.TrackColor, 1, 2)
	for i := 0; i <= g.cfg.Ticks && g.cfg.Ticks > 0; i++ {
		a := g.angle(float64(i) / float64(g.cfg.Ticks))
		inner, outer := radius-g.cfg.LineWidth*1.5, radius-g.cfg.LineWidth*2.5
		g.surf.StrokeLine(cx+math.Cos(a)*inner, cy+math.Sin(a)*inner, cx+math.Cos(a)*outer, cy+math.Sin(a)*outer, tick)
	}

	na := g.angle(frac)
	needle := radius * 0.75
	glow.LineWidth = 2
	g.surf.StrokeLine(cx, cy, cx+math.Cos(na)*needle, cy+math.Sin(na)*needle, glow)
	g.surf.FillCircle(cx, cy, g.cfg.LineWidth/2+2, surface.Fill(col, 1).WithGlow(g.cfg.GlowIntensity))

	text := surface.Fill(g.cfg.TextColor, 1)
	readout := fmt.Sprintf("%.0f%s", g.pos, g.cfg.Units)
	g.surf.FillText(readout, cx-float64(len(readout))*3.5, cy+radius*0.45, text)
	if g.cfg.Label != "" {
		g.surf.FillText(g.cfg.Label, cx-float64(len(g.cfg.Label))*3.5, cy+radius*0.45+16, text)
	}
}
