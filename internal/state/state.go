package state

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// State — экран хоста: проигрыватель сцен, пауза или меню.
// Enter и Exit вызывает StateMachine при смене экрана, Update и Draw — каждый
// кадр ebiten, пока экран текущий.
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// StateMachine держит текущий экран. Экран может сменить себя из своего
// Update; новый экран получит Update только на следующем кадре.
type StateMachine struct {
	current  State
	switches int
	log      *slog.Logger
}

// NewStateMachine создаёт машину без экрана. nil означает slog.Default().
func NewStateMachine(log *slog.Logger) *StateMachine {
	if log == nil {
		log = slog.Default()
	}
	return &StateMachine{log: log}
}

// SetState закрывает текущий экран и открывает next. Повторная установка
// того же экрана ничего не делает: Exit/Enter не вызываются.
func (sm *StateMachine) SetState(next State) {
	prev := sm.current
	if prev == next {
		return
	}
	if prev != nil {
		prev.Exit()
	}
	sm.current = next
	sm.switches++
	sm.log.Debug("screen switched", "from", screenName(prev), "to", screenName(next))
	if next != nil {
		next.Enter()
	}
}

func (sm *StateMachine) Current() State { return sm.current }

// Switches — сколько раз менялся экран.
func (sm *StateMachine) Switches() int { return sm.switches }

func (sm *StateMachine) Update(deltaTime float64) {
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}

// screenName — короткое имя экрана для лога: "SceneState", "none".
func screenName(s State) string {
	if s == nil {
		return "none"
	}
	name := fmt.Sprintf("%T", s)
	return name[strings.LastIndex(name, ".")+1:]
}
