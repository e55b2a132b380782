// internal/state/scene_state.go
package state

import (
	"errors"
	"fmt"
	"log/slog"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/config"
	"go-phosphor/internal/frame"
	"go-phosphor/internal/reactive"
	"go-phosphor/internal/scene"
	"go-phosphor/internal/ui"
	"go-phosphor/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
)

var _ State = (*SceneState)(nil)

// reactiveKeys — клавиши 1..5 переключают реактивное состояние сцены.
var reactiveKeys = []struct {
	key   ebiten.Key
	state reactive.State
}{
	{ebiten.KeyDigit1, reactive.Idle},
	{ebiten.KeyDigit2, reactive.Processing},
	{ebiten.KeyDigit3, reactive.Success},
	{ebiten.KeyDigit4, reactive.Warning},
	{ebiten.KeyDigit5, reactive.Error},
}

// SceneState проигрывает сцены по очереди: каждый кадр тикает frame.Loop,
// анимации рисуют в свои поверхности, Draw копирует их на экран.
type SceneState struct {
	sm      *StateMachine
	scenes  []scene.Scene
	index   int
	loop    *frame.Loop
	factory scene.SurfaceFactory
	input   Input
	log     *slog.Logger
	opts    []anim.Option

	stage     *scene.Stage
	started   bool
	shownAt   float64
	reactive  reactive.State
	indicator *ui.StateIndicator
}

// NewSceneState монтирует первую сцену, не запуская её.
func NewSceneState(sm *StateMachine, scenes []scene.Scene, loop *frame.Loop, factory scene.SurfaceFactory,
	input Input, log *slog.Logger, opts ...anim.Option) (*SceneState, error) {
	if len(scenes) == 0 {
		return nil, errors.New("no scenes to play")
	}
	if log == nil {
		log = slog.Default()
	}
	s := &SceneState{
		sm:        sm,
		scenes:    scenes,
		loop:      loop,
		factory:   factory,
		input:     input,
		log:       log,
		opts:      append([]anim.Option{anim.WithLogger(log)}, opts...),
		indicator: ui.NewStateIndicator(12, config.ScreenHeight-20, 200, 8, 5),
	}
	stage, err := scene.Mount(scenes[0], factory, loop, s.opts...)
	if err != nil {
		return nil, err
	}
	s.stage = stage
	return s, nil
}

func (s *SceneState) Stage() *scene.Stage { return s.stage }
func (s *SceneState) Index() int          { return s.index }

// Enter при первом входе запускает сцену, при возврате из паузы или меню
// только продолжает время цикла: анимации идут дальше с того же кадра.
func (s *SceneState) Enter() {
	s.loop.Resume()
	if !s.started {
		s.begin()
		return
	}
	s.log.Debug("scene resumed", "scene", s.stage.Scene.Name)
}

// Exit ставит цикл на паузу. Запрошенные кадры остаются в очереди.
func (s *SceneState) Exit() {
	s.loop.Pause()
}

func (s *SceneState) begin() {
	s.started = true
	s.log.Info("scene started", "scene", s.stage.Scene.Name)
	s.shownAt = s.loop.Now()
	s.stage.Start()
}

// Close уничтожает текущую сцену; после него состояние не используется.
func (s *SceneState) Close() {
	s.stage.Destroy()
}

// Show переключает на сцену i. При ошибке остаётся прежняя сцена.
func (s *SceneState) Show(i int) error {
	n := len(s.scenes)
	i = ((i % n) + n) % n
	stage, err := scene.Mount(s.scenes[i], s.factory, s.loop, s.opts...)
	if err != nil {
		return fmt.Errorf("show scene %d: %w", i, err)
	}
	s.stage.Destroy()
	s.stage, s.index = stage, i
	s.reactive = ""
	s.begin()
	return nil
}

func (s *SceneState) Next() error { return s.Show(s.index + 1) }
func (s *SceneState) Prev() error { return s.Show(s.index - 1) }

// SetReactive передаёт состояние всем реактивным строкам сцены.
func (s *SceneState) SetReactive(st reactive.State) {
	if n := s.stage.SetReactive(st); n > 0 {
		s.reactive = st
		s.log.Debug("reactive state requested", "state", st, "animations", n)
	}
}

func (s *SceneState) Update(deltaTime float64) {
	s.handleInput()
	if s.sm.Current() != State(s) {
		return
	}
	now := s.loop.Tick()
	s.indicator.Update(deltaTime, s.reactive)

	if d := s.stage.Scene.DurationMs; d > 0 && now-s.shownAt >= d {
		if err := s.Next(); err != nil {
			s.log.Error("scene switch failed", "err", err)
			s.shownAt = now
		}
	}
}

func (s *SceneState) handleInput() {
	in := s.input
	if in == nil {
		return
	}
	if x, y, ok := in.Click(); ok {
		s.stage.PointerDown(x, y)
	}
	for _, rk := range reactiveKeys {
		if in.KeyPressed(rk.key) {
			s.SetReactive(rk.state)
		}
	}
	var err error
	switch {
	case in.KeyPressed(ebiten.KeyArrowRight), in.KeyPressed(ebiten.KeyN):
		err = s.Next()
	case in.KeyPressed(ebiten.KeyArrowLeft):
		err = s.Prev()
	case in.KeyPressed(ebiten.KeyP), in.KeyPressed(ebiten.KeySpace):
		s.sm.SetState(NewPauseState(s.sm, s, in))
	case in.KeyPressed(ebiten.KeyM):
		s.sm.SetState(NewMenuState(s.sm, s, in))
	}
	if err != nil {
		s.log.Error("scene switch failed", "err", err)
	}
}

func (s *SceneState) Draw(screen *ebiten.Image) {
	screen.Fill(s.stage.Theme.Background)
	for _, in := range s.stage.Instances {
		c, ok := in.Surface.(*render.Canvas)
		if !ok {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(in.Layer.Rect.X), float64(in.Layer.Rect.Y))
		screen.DrawImage(c.Image(), op)
	}
	progress, _ := s.stage.Progress()
	s.indicator.Draw(screen, progress, s.stage.Scene.Name)
}
