package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input — источник ввода для состояний; в тестах подменяется.
type Input interface {
	KeyPressed(k ebiten.Key) bool
	// Click возвращает координаты клика левой кнопкой в этом кадре.
	Click() (x, y float64, ok bool)
}

// EbitenInput читает клавиатуру и мышь ebiten.
type EbitenInput struct{}

func (EbitenInput) KeyPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

func (EbitenInput) Click() (float64, float64, bool) {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return 0, 0, false
	}
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y), true
}
