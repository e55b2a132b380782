package scene

import "go-phosphor/internal/config"

func ptr[T any](v T) *T { return &v }

// Default — встроенные сцены для экрана config.ScreenWidth x config.ScreenHeight.
func Default() []Scene {
	const w, h = config.ScreenWidth, config.ScreenHeight
	return []Scene{
		{
			Name:       "console",
			Theme:      "green",
			DurationMs: 20000,
			Layers: []Layer{
				{
					Kind: KindDotMatrix,
					Rect: Rect{0, 0, w, 90},
					DotMatrix: &DotMatrixSpec{
						Text:     "SYSTEM ONLINE",
						Pattern:  "center-out",
						Reactive: "processing",
					},
				},
				{
					Kind:  KindGauge,
					Rect:  Rect{0, 90, 320, h - 90},
					Gauge: &GaugeSpec{Value: 42, Max: 100, Label: "LOAD", Units: "%", Warning: 70, Critical: 90},
				},
				{
					Kind: KindWaveform,
					Rect: Rect{320, 90, w - 320, 220},
					Waveform: &WaveformSpec{
						Min: -1, Max: 1,
						Generator: &GeneratorSpec{Amplitude: 0.7, Frequency: 0.5, Noise: 0.1, IntervalMs: 50},
					},
				},
				{
					Kind:   KindRipple,
					Rect:   Rect{320, 310, (w - 320) / 2, h - 310},
					Color:  "#00e5ff",
					Ripple: &RippleSpec{AutoIntervalMs: 1500, Click: ptr(true)},
				},
				{
					Kind:      KindParticles,
					Rect:      Rect{320 + (w-320)/2, 310, (w - 320) / 2, h - 310},
					Particles: &ParticleSpec{Rate: 40, Forces: []ForceSpec{{Type: "gravity", Strength: 120}}},
				},
			},
		},
		{
			Name:       "rain",
			Theme:      "green",
			DurationMs: 15000,
			Layers: []Layer{
				{
					Kind:      KindDotMatrix,
					Rect:      Rect{0, 0, w, 90},
					DotMatrix: &DotMatrixSpec{Text: "WAKE UP", Pattern: "random", Loop: true, Effects: []string{"flicker"}},
				},
				{
					Kind: KindRain,
					Rect: Rect{0, 90, w, h - 90},
					Rain: &RainSpec{Density: 0.03},
				},
			},
		},
		{
			Name:  "alert",
			Theme: "amber",
			Layers: []Layer{
				{
					Kind:      KindDotMatrix,
					Rect:      Rect{0, 0, w, 90},
					DotMatrix: &DotMatrixSpec{Text: "WARNING", Reactive: "warning"},
				},
				{
					Kind:  KindGauge,
					Rect:  Rect{0, 90, w / 2, h - 90},
					Gauge: &GaugeSpec{Value: 87, Max: 100, Label: "TEMP", Units: "C", Warning: 70, Critical: 90},
				},
				{
					Kind: KindParticles,
					Rect: Rect{w / 2, 90, w / 2, h - 90},
					Particles: &ParticleSpec{
						Rate: 60, Spread: 360, Shape: "spark",
						Forces: []ForceSpec{{Type: "vortex", Strength: 200, X: w / 4, Y: (h - 90) / 2, Radius: 200}},
					},
				},
			},
		},
	}
}
