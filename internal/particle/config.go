package particle

import (
	"image/color"
	"slices"

	"go-phosphor/internal/config"
)

// Shape — как рисуется частица.
type Shape string

const (
	Dot   Shape = "dot"
	Spark Shape = "spark" // отрезок по направлению поворота
)

// Config — параметры излучателя и физики.
type Config struct {
	X, Y      float64 // излучатель
	Direction float64 // градусы, 0 — вправо, 90 — вниз
	Spread    float64 // полный угол разброса, градусы

	SpeedMin, SpeedMax float64 // пикселей в секунду
	LifeMin, LifeMax   float64 // мс
	SizeMin, SizeMax   float64
	SpinMin, SpinMax   float64 // радиан в секунду
	Mass               float64

	Colors       []color.RGBA
	Shape        Shape
	EmissionRate float64 // частиц в секунду, 0 — только Burst
	MaxParticles int
	BurstSize    int
	Friction     float64 // доля скорости, сохраняемая за кадр 60 Гц
	BoundsMargin float64

	GlowIntensity float64
	Background    color.RGBA
}

func DefaultConfig() Config {
	return Config{
		X:             config.ScreenWidth / 2,
		Y:             config.ScreenHeight / 2,
		Direction:     -90,
		Spread:        60,
		SpeedMin:      60,
		SpeedMax:      180,
		LifeMin:       800,
		LifeMax:       2000,
		SizeMin:       1.5,
		SizeMax:       3.5,
		SpinMin:       -3,
		SpinMax:       3,
		Mass:          1,
		Colors:        slices.Clone(config.ParticleColors),
		Shape:         Dot,
		EmissionRate:  config.EmissionRate,
		MaxParticles:  config.MaxParticles,
		BurstSize:     config.ParticleBurstSize,
		Friction:      config.ParticleFriction,
		BoundsMargin:  config.ParticleBounds,
		GlowIntensity: config.ParticleGlow,
		Background:    config.BackgroundColor,
	}
}

func (c Config) clone() Config {
	c.Colors = slices.Clone(c.Colors)
	return c
}
