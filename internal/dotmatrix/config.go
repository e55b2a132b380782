package dotmatrix

import (
	"image/color"
	"slices"

	"go-phosphor/internal/config"
	"go-phosphor/internal/effect"
	"go-phosphor/internal/pattern"
	"go-phosphor/internal/reactive"
)

// Config — параметры бегущей строки. Заменяется целиком через UpdateConfig.
type Config struct {
	Text        string
	RevealSpeed float64 // мс на символ, устаревшее; используется, если MsPerPixel == 0
	MsPerPixel  float64
	Loop        bool

	Pattern      pattern.Type
	Effects      []effect.Type
	EffectConfig effect.Config
	Reactive     *reactive.Config

	PixelSize           float64
	PixelSpacing        float64
	CharSpacing         float64
	Color               color.RGBA
	BackgroundIntensity float64
	GlowIntensity       float64
	OffsetX, OffsetY    float64
}

func DefaultConfig() Config {
	return Config{
		MsPerPixel:          config.DefaultMsPerPixel,
		Pattern:             pattern.Sequential,
		EffectConfig:        effect.DefaultConfig(),
		PixelSize:           config.DefaultPixelSize,
		PixelSpacing:        config.DefaultPixelGap,
		CharSpacing:         config.DefaultCharSpacing,
		Color:               config.PhosphorGreen,
		BackgroundIntensity: config.BackgroundLevel,
		GlowIntensity:       config.DefaultGlow,
	}
}

// msPerPixel — скорость проявления с учётом устаревшего RevealSpeed.
func (c Config) msPerPixel() float64 {
	if c.MsPerPixel > 0 {
		return c.MsPerPixel
	}
	if c.RevealSpeed > 0 {
		return c.RevealSpeed / config.PixelsPerChar
	}
	return config.DefaultMsPerPixel
}

func (c Config) clone() Config {
	c.Effects = slices.Clone(c.Effects)
	if c.Reactive != nil {
		r := *c.Reactive
		c.Reactive = &r
	}
	return c
}

// Budget — сколько пиксельных единиц занимает символ.
func Budget(r rune) int {
	if r == ' ' {
		return config.SpacePixelBudget
	}
	return config.PixelsPerChar
}

// Offsets — накопленные бюджеты всех символов перед i-м.
func Offsets(text []rune) []int {
	offsets := make([]int, len(text))
	acc := 0
	for i, r := range text {
		offsets[i] = acc
		acc += Budget(r)
	}
	return offsets
}
