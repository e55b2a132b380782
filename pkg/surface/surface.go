// Package surface описывает контекст рисования, в который пишут анимации,
// и его реализации: gg (растр в памяти), запись вызовов (тесты) и вывод растра
// в терминал через tcell. Реализация для окна ebiten лежит в pkg/render.
//
// В отличие от canvas 2D, у Surface нет сохраняемого состояния: каждый вызов
// получает полный Style, поэтому цвет, прозрачность и размытие одного рисунка
// не протекают в следующий.
package surface

import "image/color"

// Style — всё, что влияет на один вызов рисования.
type Style struct {
	Color       color.RGBA // непрозрачный цвет, прозрачность задаётся Alpha
	Alpha       float64    // аналог globalAlpha, 0..1
	ShadowBlur  float64    // радиус свечения в пикселях, 0 — без свечения
	ShadowColor color.RGBA // цвет свечения; нулевой — берётся Color
	LineWidth   float64
}

// Fill — стиль заливки без свечения.
func Fill(c color.RGBA, alpha float64) Style {
	return Style{Color: c, Alpha: alpha}
}

// Stroke — стиль линии без свечения.
func Stroke(c color.RGBA, alpha, width float64) Style {
	return Style{Color: c, Alpha: alpha, LineWidth: width}
}

// WithGlow возвращает копию стиля со свечением.
func (s Style) WithGlow(blur float64) Style {
	s.ShadowBlur = blur
	return s
}

// NRGBA — цвет стиля с учётом Alpha, умноженной на k.
func (s Style) NRGBA(k float64) color.NRGBA {
	return nrgba(s.Color, s.Alpha*k)
}

// GlowNRGBA — цвет свечения с учётом Alpha, умноженной на k.
func (s Style) GlowNRGBA(k float64) color.NRGBA {
	c := s.ShadowColor
	if c == (color.RGBA{}) {
		c = s.Color
	}
	return nrgba(c, s.Alpha*k)
}

func nrgba(c color.RGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}

// Surface — контекст рисования одной анимации. Не потокобезопасен.
type Surface interface {
	Size() (w, h int)
	Clear(c color.RGBA)
	FillRect(x, y, w, h float64, st Style)
	FillCircle(cx, cy, r float64, st Style)
	StrokeCircle(cx, cy, r float64, st Style)
	// StrokeArc рисует дугу по часовой стрелке от a0 до a1 (радианы, 0 — ось X).
	StrokeArc(cx, cy, r, a0, a1 float64, st Style)
	StrokeLine(x0, y0, x1, y1 float64, st Style)
	StrokePath(p *Path, st Style)
	// FillText рисует строку моноширинным шрифтом 7x13; y — базовая линия.
	FillText(s string, x, y float64, st Style)
}

// Resizer реализуют поверхности, умеющие менять размер.
type Resizer interface {
	Resize(w, h int)
}

// Empty сообщает, что на поверхность нечего рисовать.
func Empty(s Surface) bool {
	w, h := s.Size()
	return w <= 0 || h <= 0
}

// GlowSteps — сколько полупрозрачных колец имитируют shadowBlur.
const GlowSteps = 4

// GlowLayer возвращает радиус и долю альфы k-го кольца свечения (k = 1..GlowSteps),
// от внешнего, самого бледного, к внутреннему.
func GlowLayer(r, blur float64, k int) (float64, float64) {
	f := float64(GlowSteps-k+1) / GlowSteps
	return r + blur*f, 0.15 * (1.5 - f)
}
