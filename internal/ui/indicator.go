// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"

	"go-phosphor/internal/config"
	"go-phosphor/internal/reactive"
	"go-phosphor/internal/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// StateIndicator — полоса прогресса бегущей строки и кружок реактивного состояния.
// При смене состояния кружок коротко "вспыхивает".
type StateIndicator struct {
	X, Y          float32
	Width, Height float32
	Radius        float32

	state reactive.State
	since float64 // секунд с последней смены состояния
}

func NewStateIndicator(x, y, width, height, radius float32) *StateIndicator {
	return &StateIndicator{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Radius: radius,
		since:  math.Inf(1),
	}
}

// Update продвигает время вспышки; новое состояние запускает её заново.
func (i *StateIndicator) Update(deltaTime float64, state reactive.State) {
	if state != i.state {
		i.state = state
		i.since = 0
		return
	}
	i.since += deltaTime
}

// Scale — множитель радиуса кружка: 1.3 сразу после смены, затем экспоненциально к 1.
func (i *StateIndicator) Scale() float64 {
	return 1.0 + 0.3*math.Exp(-i.since*8)
}

func (i *StateIndicator) State() reactive.State { return i.state }

// StateColor — цвет кружка для состояния.
func StateColor(s reactive.State) color.RGBA {
	switch s {
	case reactive.Processing:
		return config.PhosphorCyan
	case reactive.Success:
		return config.PhosphorGreen
	case reactive.Warning:
		return config.PhosphorAmber
	case reactive.Error:
		return config.AlertRed
	}
	return config.TrackColor
}

// Draw рисует полосу прогресса (0..1), кружок состояния и подпись.
func (i *StateIndicator) Draw(screen *ebiten.Image, progress float64, label string) {
	progress = utils.Clamp01(progress)
	vector.StrokeRect(screen, i.X, i.Y, i.Width, i.Height, 1, config.GridColor, true)
	if progress > 0 {
		vector.DrawFilledRect(screen, i.X+1, i.Y+1, (i.Width-2)*float32(progress), i.Height-2, config.PhosphorGreen, true)
	}

	cx := i.X + i.Width + i.Radius*2
	cy := i.Y + i.Height/2
	r := i.Radius * float32(i.Scale())
	vector.DrawFilledCircle(screen, cx, cy, r, StateColor(i.state), true)
	vector.StrokeCircle(screen, cx, cy, r, 1, color.White, true)

	if label != "" {
		text.Draw(screen, label, basicfont.Face7x13, int(cx+i.Radius*2), int(cy)+4, config.TextLightColor)
	}
}
