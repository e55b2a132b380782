// internal/state/menu_state.go
package state

import (
	"fmt"

	"go-phosphor/internal/config"
	"go-phosphor/internal/scene"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// MenuState — список сцен; стрелки выбирают, Enter или Space запускают.
type MenuState struct {
	sm       *StateMachine
	player   *SceneState
	input    Input
	selected int
}

func NewMenuState(sm *StateMachine, player *SceneState, input Input) *MenuState {
	return &MenuState{sm: sm, player: player, input: input}
}

func (m *MenuState) Selected() int { return m.selected }

func (m *MenuState) Enter() {
	m.selected = m.player.Index()
}

func (m *MenuState) Update(deltaTime float64) {
	if m.input == nil {
		return
	}
	n := len(m.player.scenes)
	switch {
	case m.input.KeyPressed(ebiten.KeyArrowDown):
		m.selected = (m.selected + 1) % n
	case m.input.KeyPressed(ebiten.KeyArrowUp):
		m.selected = (m.selected + n - 1) % n
	case m.input.KeyPressed(ebiten.KeyEnter), m.input.KeyPressed(ebiten.KeySpace):
		if m.selected != m.player.Index() {
			if err := m.player.Show(m.selected); err != nil {
				m.player.log.Error("scene switch failed", "err", err)
				return
			}
		}
		m.sm.SetState(m.player)
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	face := basicfont.Face7x13
	for i, sc := range m.player.scenes {
		clr := config.GridColor
		prefix := "  "
		if i == m.selected {
			clr = config.PhosphorGreen
			prefix = "> "
		}
		text.Draw(screen, prefix+label(sc), face, 40, 60+i*20, clr)
	}
}

func label(sc scene.Scene) string {
	return fmt.Sprintf("%s (%d layers)", sc.Name, len(sc.Layers))
}

func (m *MenuState) Exit() {}
