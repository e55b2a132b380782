// internal/state/pause_state.go
package state

import (
	"image/color"

	"go-phosphor/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState замораживает сцену: выход из SceneState ставит frame.Loop на паузу,
// на экране остаётся последний кадр. Возврат продолжает сцену с того же места.
type PauseState struct {
	stateMachine  *StateMachine
	previousState State
	input         Input
}

func NewPauseState(sm *StateMachine, prevState State, input Input) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prevState,
		input:         input,
	}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	if s.input == nil {
		return
	}
	if s.input.KeyPressed(ebiten.KeyP) || s.input.KeyPressed(ebiten.KeySpace) || s.input.KeyPressed(ebiten.KeyEscape) {
		s.stateMachine.SetState(s.previousState)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	if s.previousState != nil {
		s.previousState.Draw(screen)
	}
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 128}, false)

	pauseText := "PAUSED"
	w := len(pauseText) * basicfont.Face7x13.Advance
	text.Draw(screen, pauseText, basicfont.Face7x13, (config.ScreenWidth-w)/2, config.ScreenHeight/2, config.PhosphorGreen)
}

func (s *PauseState) Exit() {}
