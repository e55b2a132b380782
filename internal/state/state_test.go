package state

import (
	"testing"
	"time"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/frame"
	"go-phosphor/internal/reactive"
	"go-phosphor/internal/ripple"
	"go-phosphor/internal/scene"
	"go-phosphor/pkg/surface"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeInput отдаёт заранее заданные нажатия один раз.
type fakeInput struct {
	keys  map[ebiten.Key]bool
	click *[2]float64
}

func newFakeInput() *fakeInput { return &fakeInput{keys: map[ebiten.Key]bool{}} }

func (f *fakeInput) press(k ebiten.Key) { f.keys[k] = true }

func (f *fakeInput) KeyPressed(k ebiten.Key) bool { return f.keys[k] }

func (f *fakeInput) Click() (float64, float64, bool) {
	if f.click == nil {
		return 0, 0, false
	}
	c := *f.click
	f.click = nil
	return c[0], c[1], true
}

// frameDone сбрасывает нажатия, как inpututil после кадра.
func (f *fakeInput) frameDone() { f.keys = map[ebiten.Key]bool{} }

type rig struct {
	sm    *StateMachine
	ss    *SceneState
	clock *frame.ManualClock
	in    *fakeInput
}

func newRig(t *testing.T, scenes []scene.Scene) *rig {
	t.Helper()
	clock := frame.NewManualClock()
	loop := frame.NewLoop(clock)
	in := newFakeInput()
	sm := NewStateMachine(nil)
	factory := func(w, h int) surface.Surface { return surface.NewRecorder(w, h) }
	ss, err := NewSceneState(sm, scenes, loop, factory, in, nil, anim.WithSeed(1))
	if err != nil {
		t.Fatalf("NewSceneState: %v", err)
	}
	sm.SetState(ss)
	return &rig{sm: sm, ss: ss, clock: clock, in: in}
}

func (r *rig) step(d time.Duration) {
	r.clock.Advance(d)
	r.sm.Update(d.Seconds())
	r.in.frameDone()
}

type countingState struct{ enter, exit, update int }

func (c *countingState) Enter()             { c.enter++ }
func (c *countingState) Update(float64)     { c.update++ }
func (c *countingState) Draw(*ebiten.Image) {}
func (c *countingState) Exit()              { c.exit++ }

func TestStateMachineTransitions(t *testing.T) {
	sm := NewStateMachine(nil)
	sm.Update(0.1) // без состояния ничего не происходит
	a, b := &countingState{}, &countingState{}
	sm.SetState(a)
	sm.Update(0.1)
	sm.SetState(b)
	if a.enter != 1 || a.exit != 1 || a.update != 1 || b.enter != 1 {
		t.Errorf("a=%+v b=%+v", a, b)
	}
	if sm.Current() != State(b) {
		t.Error("current state not switched")
	}
	sm.SetState(b)
	if b.enter != 1 || b.exit != 0 {
		t.Errorf("re-setting the current state re-entered it: %+v", b)
	}
	sm.SetState(nil)
	if b.exit != 1 || sm.Current() != nil {
		t.Error("nil state not handled")
	}
	if sm.Switches() != 3 {
		t.Errorf("Switches() = %d, want 3", sm.Switches())
	}
}

func TestScreenName(t *testing.T) {
	if got := screenName(&countingState{}); got != "countingState" {
		t.Errorf("screenName = %q", got)
	}
	if got := screenName(nil); got != "none" {
		t.Errorf("screenName(nil) = %q", got)
	}
}

func TestSceneStateAdvancesByDuration(t *testing.T) {
	r := newRig(t, scene.Default())
	first := r.ss.Stage()
	for i := 0; i < 10; i++ {
		r.step(2 * time.Second)
	}
	if r.ss.Index() != 1 {
		t.Fatalf("scene index after 20s = %d, want 1", r.ss.Index())
	}
	if r.ss.Stage() == first {
		t.Error("stage not replaced")
	}
}

func TestSceneStateKeys(t *testing.T) {
	r := newRig(t, scene.Default())

	r.in.press(ebiten.KeyArrowLeft)
	r.step(16 * time.Millisecond)
	if r.ss.Index() != len(scene.Default())-1 {
		t.Errorf("left from first scene = %d", r.ss.Index())
	}
	r.in.press(ebiten.KeyN)
	r.step(16 * time.Millisecond)
	if r.ss.Index() != 0 {
		t.Errorf("next wrapped to %d", r.ss.Index())
	}

	r.in.press(ebiten.KeyDigit5)
	r.step(16 * time.Millisecond)
	r.step(200 * time.Millisecond)
	dm := r.ss.Stage().DotMatrices()[0]
	if dm.Active().Pattern != "random" {
		t.Errorf("pattern after key 5 = %v", dm.Active().Pattern)
	}
	if r.ss.reactive != reactive.Error {
		t.Errorf("indicator state = %v", r.ss.reactive)
	}
}

func TestSceneStateClickRoutesToStage(t *testing.T) {
	r := newRig(t, scene.Default())
	rp := r.ss.Stage().Find(scene.KindRipple)[0]
	r.in.click = &[2]float64{float64(rp.Layer.Rect.X + 5), float64(rp.Layer.Rect.Y + 5)}
	r.step(16 * time.Millisecond)
	if n := len(rp.Anim.(*ripple.Ripple).Waves()); n == 0 {
		t.Error("click did not reach the ripple layer")
	}
}

func TestPauseFreezesFrames(t *testing.T) {
	r := newRig(t, scene.Default())
	r.step(16 * time.Millisecond)

	r.in.press(ebiten.KeyP)
	r.step(16 * time.Millisecond)
	if _, ok := r.sm.Current().(*PauseState); !ok {
		t.Fatalf("state after P = %T", r.sm.Current())
	}
	rec := r.ss.Stage().Instances[0].Surface.(*surface.Recorder)
	rec.Reset()
	for i := 0; i < 5; i++ {
		r.step(16 * time.Millisecond)
	}
	if len(rec.Calls()) != 0 {
		t.Error("paused scene kept drawing")
	}
	r.in.press(ebiten.KeyEscape)
	r.step(16 * time.Millisecond)
	if r.sm.Current() != State(r.ss) {
		t.Fatalf("state after resume = %T", r.sm.Current())
	}
	r.step(16 * time.Millisecond)
	if len(rec.Calls()) == 0 {
		t.Error("resumed scene does not draw")
	}
}

func TestResumeContinuesScene(t *testing.T) {
	r := newRig(t, scene.Default())
	for i := 0; i < 40; i++ {
		r.step(16 * time.Millisecond)
	}
	stage := r.ss.Stage()
	before, _ := stage.Progress()
	if before <= 0 {
		t.Fatalf("progress before pause = %v", before)
	}

	r.in.press(ebiten.KeyP)
	r.step(16 * time.Millisecond)
	r.step(30 * time.Second) // дольше DurationMs сцены
	r.in.press(ebiten.KeyP)
	r.step(16 * time.Millisecond)
	r.step(16 * time.Millisecond)

	after, _ := stage.Progress()
	if r.ss.Stage() != stage || r.ss.Index() != 0 {
		t.Fatalf("pause switched the scene to %d", r.ss.Index())
	}
	if after < before {
		t.Errorf("progress went back across pause: %v -> %v", before, after)
	}
	if after > before+0.05 {
		t.Errorf("paused time leaked into the animation: %v -> %v", before, after)
	}

	// то же через меню без смены выбора
	r.in.press(ebiten.KeyM)
	r.step(16 * time.Millisecond)
	r.in.press(ebiten.KeyEnter)
	r.step(16 * time.Millisecond)
	r.step(16 * time.Millisecond)
	if again, _ := stage.Progress(); again < after || r.ss.Stage() != stage {
		t.Errorf("menu round trip restarted the scene: %v -> %v", after, again)
	}
}

func TestMenuSelectsScene(t *testing.T) {
	r := newRig(t, scene.Default())
	r.in.press(ebiten.KeyM)
	r.step(16 * time.Millisecond)
	menu, ok := r.sm.Current().(*MenuState)
	if !ok {
		t.Fatalf("state after M = %T", r.sm.Current())
	}
	r.in.press(ebiten.KeyArrowDown)
	r.step(16 * time.Millisecond)
	r.in.press(ebiten.KeyArrowDown)
	r.step(16 * time.Millisecond)
	if menu.Selected() != 2 {
		t.Errorf("selected = %d", menu.Selected())
	}
	r.in.press(ebiten.KeyEnter)
	r.step(16 * time.Millisecond)
	if r.sm.Current() != State(r.ss) || r.ss.Index() != 2 {
		t.Errorf("menu left state %T at scene %d", r.sm.Current(), r.ss.Index())
	}
}

func TestNewSceneStateRejectsEmpty(t *testing.T) {
	if _, err := NewSceneState(NewStateMachine(nil), nil, frame.NewLoop(nil), nil, nil, nil); err == nil {
		t.Error("empty scene list accepted")
	}
}
