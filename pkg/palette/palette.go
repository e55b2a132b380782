// Package palette — цветовые темы "люминофора" и операции над цветами.
package palette

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme — набор цветов для одной анимации.
type Theme struct {
	Name       string
	Primary    color.RGBA // основной цвет точек и линий
	Head       color.RGBA // подсвеченная голова (капли, игла)
	Track      color.RGBA // неактивные элементы: дорожка индикатора, сетка
	Background color.RGBA
}

var themes = map[string]Theme{
	"green": {
		Name:       "green",
		Primary:    color.RGBA{0, 255, 65, 255},
		Head:       color.RGBA{220, 255, 220, 255},
		Track:      color.RGBA{0, 60, 16, 255},
		Background: color.RGBA{0, 0, 0, 255},
	},
	"amber": {
		Name:       "amber",
		Primary:    color.RGBA{255, 176, 0, 255},
		Head:       color.RGBA{255, 240, 200, 255},
		Track:      color.RGBA{70, 45, 0, 255},
		Background: color.RGBA{0, 0, 0, 255},
	},
	"cyan": {
		Name:       "cyan",
		Primary:    color.RGBA{0, 229, 255, 255},
		Head:       color.RGBA{210, 250, 255, 255},
		Track:      color.RGBA{0, 50, 60, 255},
		Background: color.RGBA{0, 0, 0, 255},
	},
	"red": {
		Name:       "red",
		Primary:    color.RGBA{255, 60, 60, 255},
		Head:       color.RGBA{255, 220, 220, 255},
		Track:      color.RGBA{70, 10, 10, 255},
		Background: color.RGBA{0, 0, 0, 255},
	},
}

// Lookup возвращает тему по имени; неизвестное имя — зелёная тема и false.
func Lookup(name string) (Theme, bool) {
	t, ok := themes[name]
	if !ok {
		return themes["green"], false
	}
	return t, true
}

// ParseHex разбирает "#rrggbb" или "#rgb".
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex — обратное к ParseHex.
func Hex(c color.RGBA) string {
	return toColorful(c).Hex()
}

// Blend смешивает a и b в RGB; t=0 — a, t=1 — b.
func Blend(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	r, g, bl := toColorful(a).BlendRgb(toColorful(b), t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 255}
}

// Gradient заполняет dst плавным переходом от a к b.
func Gradient(dst []color.RGBA, a, b color.RGBA) {
	n := len(dst)
	for i := range dst {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		dst[i] = Blend(a, b, t)
	}
}

// DarkenColor уменьшает яркость цвета в k раз (k в [0, 1]).
func DarkenColor(c color.RGBA, k float64) color.RGBA {
	if k < 0 {
		k = 0
	}
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
