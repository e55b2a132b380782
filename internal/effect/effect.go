// Package effect модулирует яркость и свечение пикселя во времени.
package effect

import (
	"math"

	"go-phosphor/internal/config"
	"go-phosphor/internal/utils"
)

// Type — имя эффекта.
type Type string

const (
	Blink     Type = "blink"
	Pulsate   Type = "pulsate"
	Flicker   Type = "flicker"
	GlowPulse Type = "glow-pulse"
)

// Known сообщает, умеет ли процессор эффект t.
func Known(t Type) bool {
	switch t {
	case Blink, Pulsate, Flicker, GlowPulse:
		return true
	}
	return false
}

// Config — временные параметры эффектов.
type Config struct {
	BlinkFrequency   float64 // Гц
	PulsePeriod      float64 // мс
	GlowPulsePeriod  float64 // мс
	FlickerIntensity float64 // 0..1
	// FlickerSet — FlickerIntensity задан явно и применяется даже при нуле.
	FlickerSet bool
}

func DefaultConfig() Config {
	return Config{
		BlinkFrequency:   config.BlinkFrequency,
		PulsePeriod:      config.PulsePeriod,
		GlowPulsePeriod:  config.GlowPulsePeriod,
		FlickerIntensity: config.FlickerIntensity,
		FlickerSet:       true,
	}
}

// Input — состояние пикселя на текущем кадре.
type Input struct {
	Intensity    float64
	ShadowBlur   float64
	Elapsed      float64 // от старта анимации, мс
	PixelElapsed float64 // от начала проявления пикселя, мс
	MsPerPixel   float64
	FullyLit     bool
}

type Output struct {
	Intensity  float64
	ShadowBlur float64
}

// Processor применяет цепочку эффектов слева направо: каждый следующий
// получает результат предыдущего.
type Processor struct {
	cfg Config
	rng *utils.PRNGService
}

// NewProcessor создаёт процессор. Нулевые поля cfg берутся по умолчанию,
// nil rng — генератор с сидом от времени.
func NewProcessor(cfg Config, rng *utils.PRNGService) *Processor {
	if rng == nil {
		rng = utils.NewPRNGService(0)
	}
	p := &Processor{cfg: DefaultConfig(), rng: rng}
	p.UpdateConfig(cfg)
	return p
}

// UpdateConfig подмешивает ненулевые поля cfg, не трогая состояние анимации.
// Мерцание берётся и при нуле, если выставлен FlickerSet.
func (p *Processor) UpdateConfig(cfg Config) {
	if cfg.BlinkFrequency > 0 {
		p.cfg.BlinkFrequency = cfg.BlinkFrequency
	}
	if cfg.PulsePeriod > 0 {
		p.cfg.PulsePeriod = cfg.PulsePeriod
	}
	if cfg.GlowPulsePeriod > 0 {
		p.cfg.GlowPulsePeriod = cfg.GlowPulsePeriod
	}
	if cfg.FlickerSet || cfg.FlickerIntensity > 0 {
		p.cfg.FlickerIntensity = utils.Clamp01(cfg.FlickerIntensity)
		p.cfg.FlickerSet = true
	}
}

func (p *Processor) Config() Config {
	return p.cfg
}

// Apply сворачивает effects над in.
func (p *Processor) Apply(in Input, effects []Type) Output {
	out := Output{Intensity: in.Intensity, ShadowBlur: in.ShadowBlur}
	for _, e := range effects {
		switch e {
		case Blink:
			if in.PixelElapsed < in.MsPerPixel {
				k := p.blink(in.PixelElapsed)
				out.Intensity *= k
				out.ShadowBlur *= k
			}
		case Pulsate:
			if in.FullyLit {
				t := in.PixelElapsed - in.MsPerPixel
				out.Intensity *= 0.85 + 0.15*math.Sin(2*math.Pi*t/p.cfg.PulsePeriod)
			}
		case Flicker:
			f := p.cfg.FlickerIntensity
			out.Intensity *= p.rng.Range(1-f, 1+f)
		case GlowPulse:
			out.ShadowBlur *= 1 + 0.3*math.Sin(2*math.Pi*in.Elapsed/p.cfg.GlowPulsePeriod)
		}
	}
	return out
}

// blink — меандр: 1.0 в первой половине периода, 0.3 во второй.
func (p *Processor) blink(t float64) float64 {
	period := 1000 / p.cfg.BlinkFrequency
	if math.Mod(math.Max(t, 0), period) < period/2 {
		return 1
	}
	return 0.3
}
