// Package matrixrain — «цифровой дождь»: колонки падающих капель из символов
// со светлой головой и угасающим хвостом.
package matrixrain

import (
	"fmt"
	"image/color"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/config"
	"go-phosphor/internal/frame"
	"go-phosphor/internal/utils"
	"go-phosphor/pkg/palette"
	"go-phosphor/pkg/surface"
)

// DefaultCharset — символы, которые можно нарисовать шрифтом 7x13.
const DefaultCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ@#$%&*+=<>?"

type Config struct {
	FontSize      float64 // шаг сетки в пикселях
	TrailLength   int
	Density       float64 // вероятность новой капли в свободной колонке за кадр 60 Гц
	SpeedMin      float64 // строк за кадр 60 Гц
	SpeedMax      float64
	ChurnRate     float64 // вероятность смены символа хвоста за кадр
	Charset       string
	Color         color.RGBA
	HeadColor     color.RGBA
	Background    color.RGBA
	GlowIntensity float64
}

func DefaultConfig() Config {
	return Config{
		FontSize:      config.RainFontSize,
		TrailLength:   config.RainTrailLength,
		Density:       config.RainDensity,
		SpeedMin:      config.RainSpeedMin,
		SpeedMax:      config.RainSpeedMax,
		ChurnRate:     0.05,
		Charset:       DefaultCharset,
		Color:         config.PhosphorGreen,
		HeadColor:     config.HeadWhite,
		Background:    config.BackgroundColor,
		GlowIntensity: config.DefaultGlow,
	}
}

// Drop — одна капля: голова в строке Head, хвост тянется вверх.
type Drop struct {
	Column int
	Head   float64
	Speed  float64
	Trail  []rune // Trail[0] — голова
}

// Rain — анимация дождя.
type Rain struct {
	r    *anim.Runner
	surf surface.Surface
	cfg  Config
	rng  *utils.PRNGService

	drops    []Drop
	busy     []bool // колонка занята живой каплей
	charset  []rune
	gradient []color.RGBA
	dt       anim.Delta
}

func New(surf surface.Surface, sched frame.Scheduler, cfg Config, opts ...anim.Option) (*Rain, error) {
	r, err := anim.NewRunner("matrixrain", surf, sched, opts...)
	if err != nil {
		return nil, fmt.Errorf("matrixrain: %w", err)
	}
	m := &Rain{r: r, surf: surf, rng: utils.NewPRNGService(r.Seed())}
	m.apply(cfg)
	r.Bind(m.render)
	return m, nil
}

func (m *Rain) apply(cfg Config) {
	if cfg.FontSize <= 0 {
		cfg.FontSize = config.RainFontSize
	}
	if cfg.TrailLength <= 0 {
		cfg.TrailLength = 1
	}
	if cfg.Charset == "" {
		cfg.Charset = DefaultCharset
	}
	m.cfg = cfg
	m.charset = []rune(cfg.Charset)
	// хвост гаснет от основного цвета к фону
	m.gradient = make([]color.RGBA, cfg.TrailLength)
	palette.Gradient(m.gradient, cfg.Color, cfg.Background)
	m.layout()
}

// layout подгоняет число колонок под ширину поверхности; капли в пропавших колонках удаляются.
func (m *Rain) layout() {
	w, _ := m.surf.Size()
	cols := int(float64(w) / m.cfg.FontSize)
	if cols < 0 {
		cols = 0
	}
	m.busy = make([]bool, cols)
	alive := m.drops[:0]
	for _, d := range m.drops {
		if d.Column < cols {
			m.busy[d.Column] = true
			alive = append(alive, d)
		}
	}
	m.drops = alive
}

func (m *Rain) ID() string { return m.r.ID() }

func (m *Rain) Start() {
	m.dt.Reset()
	m.r.Start()
}

func (m *Rain) Stop() { m.r.Stop() }

func (m *Rain) Destroy() {
	if m.r.Destroy() {
		m.drops = nil
	}
}

func (m *Rain) UpdateConfig(mutate func(*Config)) {
	next := m.cfg
	mutate(&next)
	m.apply(next)
}

func (m *Rain) Resize(w, h int) {
	if m.r.Resize(m.surf, w, h) {
		m.layout()
	}
}

// Columns — число колонок при текущем размере.
func (m *Rain) Columns() int { return len(m.busy) }

func (m *Rain) Drops() []Drop { return append([]Drop(nil), m.drops...) }

func (m *Rain) rows() int {
	_, h := m.surf.Size()
	return int(float64(h) / m.cfg.FontSize)
}

func (m *Rain) randomRune() rune {
	return m.charset[m.rng.Intn(len(m.charset))]
}

func (m *Rain) spawn(col int) {
	trail := make([]rune, m.cfg.TrailLength)
	for i := range trail {
		trail[i] = m.randomRune()
	}
	m.drops = append(m.drops, Drop{
		Column: col,
		Head:   0,
		Speed:  m.rng.Range(m.cfg.SpeedMin, m.cfg.SpeedMax),
		Trail:  trail,
	})
	m.busy[col] = true
}

func (m *Rain) render(ts float64) {
	m.update(m.dt.Step(ts))
	m.draw()
	m.r.Schedule()
}

func (m *Rain) update(dtMs float64) {
	frames := dtMs / config.FrameMs
	if frames > config.MaxDeltaTime*1000/config.FrameMs {
		frames = config.MaxDeltaTime * 1000 / config.FrameMs
	}
	rows := float64(m.rows())

	alive := m.drops[:0]
	for _, d := range m.drops {
		d.Head += d.Speed * frames
		for i := range d.Trail {
			if m.rng.Float64() < m.cfg.ChurnRate*frames {
				d.Trail[i] = m.randomRune()
			}
		}
		if d.Head-float64(len(d.Trail)) > rows {
			m.busy[d.Column] = false
			continue
		}
		alive = append(alive, d)
	}
	m.drops = alive

	p := m.cfg.Density * frames
	if frames == 0 {
		p = m.cfg.Density
	}
	for col, busy := range m.busy {
		if !busy && m.rng.Float64() < p {
			m.spawn(col)
		}
	}
}

func (m *Rain) draw() {
	if surface.Empty(m.surf) {
		return
	}
	m.surf.Clear(m.cfg.Background)
	fs := m.cfg.FontSize
	rows := m.rows()
	last := len(m.gradient) - 1
	for _, d := range m.drops {
		n := float64(len(d.Trail))
		x := float64(d.Column) * fs
		head := int(d.Head)
		for k, ch := range d.Trail {
			row := head - k
			if row < 0 || row >= rows {
				continue
			}
			y := float64(row+1) * fs
			st := surface.Fill(m.gradient[min(k, last)], 1-float64(k)/n)
			if k == 0 {
				st = surface.Fill(m.cfg.HeadColor, 1).WithGlow(m.cfg.GlowIntensity)
				st.ShadowColor = m.cfg.Color
			}
			m.surf.FillText(string(ch), x, y, st)
		}
	}
}
