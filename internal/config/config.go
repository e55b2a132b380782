// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 960
	ScreenHeight = 540
	TargetFPS    = 60

	// MaxDeltaTime — верхняя граница шага физики в секундах, чтобы после
	// паузы или подвисания частицы не улетали за один кадр.
	MaxDeltaTime = 0.06
	// FrameMs — длительность кадра при 60 Гц; скорости "за кадр" нормируются на неё.
	FrameMs = 1000.0 / 60.0

	// Точечная матрица
	GlyphCols          = 5
	GlyphRows          = 7
	PixelsPerChar      = GlyphCols * GlyphRows
	SpacePixelBudget   = 3 // пробел "стоит" 3 пикселя вместо 35
	DefaultMsPerPixel  = 15.0
	DefaultPixelSize   = 4.0
	DefaultPixelGap    = 1.0
	DefaultCharSpacing = 6.0
	BackgroundLevel    = 0.1
	DefaultGlow        = 8.0

	// Эффекты
	BlinkFrequency   = 50.0   // Гц
	PulsePeriod      = 2000.0 // мс
	GlowPulsePeriod  = 1500.0 // мс
	FlickerIntensity = 0.1

	ReactiveDebounceMs = 100.0

	// Частицы
	MaxParticles      = 500
	EmissionRate      = 60.0 // частиц в секунду
	ParticleBounds    = 50.0 // за сколько пикселей за краем частица умирает
	ParticleFriction  = 0.99
	ParticleGlow      = 10.0
	ParticleBurstSize = 40

	// Волны
	MaxWaves         = 20
	WaveSpeed        = 2.0  // пикселей за кадр 60 Гц
	WaveFadeRate     = 0.01 // доля альфы за кадр 60 Гц
	WaveMaxRadius    = 200.0
	WaveMinAlpha     = 0.01
	WaveAutoInterval = 2000.0

	// Осциллограф
	WaveformMaxPoints = 100
	WaveformLineWidth = 2.0

	// Дождь
	RainFontSize    = 14.0
	RainTrailLength = 18
	RainDensity     = 0.02 // вероятность новой капли в свободной колонке за кадр
	RainSpeedMin    = 0.3  // строк за кадр 60 Гц
	RainSpeedMax    = 1.0

	// Индикатор
	GaugeStartAngle = 135.0
	GaugeSweep      = 270.0
	GaugeTicks      = 10
	GaugeLineWidth  = 8.0
	GaugeSpringFreq = 6.0
	GaugeSpringDamp = 0.6
)

var (
	BackgroundColor = color.RGBA{0, 0, 0, 255}
	PhosphorGreen   = color.RGBA{0, 255, 65, 255}
	PhosphorAmber   = color.RGBA{255, 176, 0, 255}
	PhosphorCyan    = color.RGBA{0, 229, 255, 255}
	AlertRed        = color.RGBA{255, 60, 60, 255}
	HeadWhite       = color.RGBA{220, 255, 220, 255}
	GridColor       = color.RGBA{0, 80, 20, 255}
	TrackColor      = color.RGBA{0, 60, 16, 255}
	TextLightColor  = color.RGBA{240, 240, 240, 255}

	ParticleColors = []color.RGBA{
		{0, 255, 65, 255},
		{0, 200, 255, 255},
		{180, 255, 120, 255},
	}
)
