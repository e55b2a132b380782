package scene

import (
	"fmt"
	"image/color"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/dotmatrix"
	"go-phosphor/internal/effect"
	"go-phosphor/internal/frame"
	"go-phosphor/internal/gauge"
	"go-phosphor/internal/glyph"
	"go-phosphor/internal/matrixrain"
	"go-phosphor/internal/particle"
	"go-phosphor/internal/pattern"
	"go-phosphor/internal/reactive"
	"go-phosphor/internal/ripple"
	"go-phosphor/internal/waveform"
	"go-phosphor/pkg/palette"
	"go-phosphor/pkg/surface"
)

// Animation — общий жизненный цикл всех видов анимаций.
type Animation interface {
	ID() string
	Start()
	Stop()
	Destroy()
}

// Build создаёт анимацию слоя на поверхности surf.
func Build(l Layer, theme palette.Theme, surf surface.Surface, sched frame.Scheduler, opts ...anim.Option) (Animation, error) {
	col := theme.Primary
	if l.Color != "" {
		c, err := palette.ParseHex(l.Color)
		if err != nil {
			return nil, err
		}
		col = c
	}
	glow := func(def float64) float64 {
		if l.Glow > 0 {
			return l.Glow
		}
		return def
	}

	switch l.Kind {
	case KindDotMatrix:
		return dotMatrix(l.DotMatrix, l.Rect, col, glow, surf, sched, opts)
	case KindRain:
		cfg := matrixrain.DefaultConfig()
		if s := l.Rain; s != nil {
			setF(&cfg.FontSize, s.FontSize)
			setI(&cfg.TrailLength, s.Trail)
			setF(&cfg.Density, s.Density)
			setF(&cfg.SpeedMin, s.SpeedMin)
			setF(&cfg.SpeedMax, s.SpeedMax)
			if s.Charset != "" {
				cfg.Charset = s.Charset
			}
		}
		cfg.Color, cfg.HeadColor, cfg.Background = col, theme.Head, theme.Background
		cfg.GlowIntensity = glow(cfg.GlowIntensity)
		return matrixrain.New(surf, sched, cfg, opts...)
	case KindParticles:
		return particles(l, col, glow, theme, surf, sched, opts)
	case KindWaveform:
		cfg := waveform.DefaultConfig()
		var data []float64
		if s := l.Waveform; s != nil {
			setI(&cfg.MaxPoints, s.MaxPoints)
			if s.Max > s.Min {
				cfg.Min, cfg.Max = s.Min, s.Max
			}
			if s.Smooth != nil {
				cfg.Smooth = *s.Smooth
			}
			if s.Grid != nil {
				cfg.ShowGrid = *s.Grid
			}
			if g := s.Generator; g != nil {
				cfg.Generator = &waveform.Generator{Amplitude: g.Amplitude, Frequency: g.Frequency, Noise: g.Noise, Interval: g.IntervalMs}
			}
			data = s.Data
		}
		cfg.Color, cfg.GridColor, cfg.Background = col, theme.Track, theme.Background
		cfg.GlowIntensity = glow(cfg.GlowIntensity)
		w, err := waveform.New(surf, sched, cfg, opts...)
		if err != nil {
			return nil, err
		}
		if len(data) > 0 {
			w.SetData(data)
		}
		return w, nil
	case KindRipple:
		cfg := ripple.DefaultConfig()
		if s := l.Ripple; s != nil {
			setF(&cfg.Speed, s.Speed)
			setF(&cfg.FadeRate, s.FadeRate)
			setF(&cfg.MaxRadius, s.MaxRadius)
			setI(&cfg.MaxWaves, s.MaxWaves)
			cfg.AutoInterval = s.AutoIntervalMs
			if s.Click != nil {
				cfg.ClickWaves = *s.Click
			}
			if s.Echoes != nil {
				cfg.Echoes = *s.Echoes
			}
		}
		cfg.Color, cfg.Background = col, theme.Background
		cfg.GlowIntensity = glow(cfg.GlowIntensity)
		return ripple.New(surf, sched, cfg, opts...)
	case KindGauge:
		s := l.Gauge
		if s == nil {
			return nil, fmt.Errorf("gauge layer without a gauge section")
		}
		cfg := gauge.DefaultConfig()
		cfg.Value, cfg.Label, cfg.Units = s.Value, s.Label, s.Units
		if s.Max > s.Min {
			cfg.Min, cfg.Max = s.Min, s.Max
		}
		cfg.Warning, cfg.Critical = s.Warning, s.Critical
		cfg.Color, cfg.TrackColor, cfg.Background = col, theme.Track, theme.Background
		cfg.GlowIntensity = glow(cfg.GlowIntensity)
		return gauge.New(surf, sched, cfg, opts...)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, l.Kind)
}

func dotMatrix(s *DotMatrixSpec, rect Rect, col color.RGBA, glow func(float64) float64,
	surf surface.Surface, sched frame.Scheduler, opts []anim.Option) (Animation, error) {
	if s == nil {
		return nil, fmt.Errorf("dotmatrix layer without a dotmatrix section")
	}
	cfg := dotmatrix.DefaultConfig()
	cfg.Text = s.Text
	if s.MsPerPixel > 0 || s.RevealSpeed > 0 {
		cfg.MsPerPixel, cfg.RevealSpeed = s.MsPerPixel, s.RevealSpeed
	}
	cfg.Loop = s.Loop
	if s.Pattern != "" {
		cfg.Pattern = pattern.Type(s.Pattern)
	}
	for _, e := range s.Effects {
		t := effect.Type(e)
		if !effect.Known(t) {
			return nil, fmt.Errorf("unknown effect %q", e)
		}
		cfg.Effects = append(cfg.Effects, t)
	}
	if s.Reactive != "" {
		cfg.Reactive = &reactive.Config{Enabled: true, State: reactive.State(s.Reactive)}
	}
	setF(&cfg.PixelSize, s.PixelSize)
	setF(&cfg.PixelSpacing, s.Spacing)
	cfg.Color = col
	cfg.GlowIntensity = glow(cfg.GlowIntensity)
	// по вертикали — по центру слоя, слева небольшой отступ
	height := glyph.Rows*(cfg.PixelSize+cfg.PixelSpacing) - cfg.PixelSpacing
	cfg.OffsetX = cfg.PixelSize * 2
	cfg.OffsetY = max(0, (float64(rect.H)-height)/2)
	return dotmatrix.New(surf, sched, cfg, opts...)
}

func particles(l Layer, col color.RGBA, glow func(float64) float64, theme palette.Theme,
	surf surface.Surface, sched frame.Scheduler, opts []anim.Option) (Animation, error) {
	cfg := particle.DefaultConfig()
	cfg.X, cfg.Y = float64(l.Rect.W)/2, float64(l.Rect.H)/2
	s := l.Particles
	if s != nil {
		if s.X != 0 || s.Y != 0 {
			cfg.X, cfg.Y = s.X, s.Y
		}
		setF(&cfg.EmissionRate, s.Rate)
		if s.Direction != 0 {
			cfg.Direction = s.Direction
		}
		setF(&cfg.Spread, s.Spread)
		setF(&cfg.SpeedMin, s.SpeedMin)
		setF(&cfg.SpeedMax, s.SpeedMax)
		setF(&cfg.LifeMin, s.LifeMin)
		setF(&cfg.LifeMax, s.LifeMax)
		setI(&cfg.MaxParticles, s.Max)
		if s.Shape != "" {
			cfg.Shape = particle.Shape(s.Shape)
		}
	}
	if l.Color != "" {
		cfg.Colors = []color.RGBA{col, palette.Blend(col, theme.Head, 0.5)}
	}
	cfg.Background = theme.Background
	cfg.GlowIntensity = glow(cfg.GlowIntensity)

	p, err := particle.New(surf, sched, cfg, opts...)
	if err != nil {
		return nil, err
	}
	if s != nil {
		for _, f := range s.Forces {
			p.AddForce(particle.Force{Type: particle.ForceType(f.Type), Strength: f.Strength, X: f.X, Y: f.Y, Radius: f.Radius})
		}
		if s.Burst > 0 {
			p.Burst(s.Burst)
		}
	}
	return p, nil
}

func setF(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

func setI(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
