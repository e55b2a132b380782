// Package dotmatrix — бегущая строка на светодиодной матрице 5x7 со свечением
// люминофора: пиксели загораются по узору, поверх работают эффекты и
// реактивный режим.
package dotmatrix

import (
	"fmt"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/config"
	"go-phosphor/internal/effect"
	"go-phosphor/internal/event"
	"go-phosphor/internal/frame"
	"go-phosphor/internal/glyph"
	"go-phosphor/internal/pattern"
	"go-phosphor/internal/reactive"
	"go-phosphor/internal/utils"
	"go-phosphor/pkg/surface"
)

// State — снимок для индикаторов прогресса на стороне хоста.
type State struct {
	IsRunning        bool
	CurrentCharIndex int
	TotalChars       int
	Progress         float64 // 0..1
}

// Animation — оркестратор: цикл кадров, сетка пикселей, смещения и жизненный цикл.
type Animation struct {
	r     *anim.Runner
	surf  surface.Surface
	sched frame.Scheduler

	cfg      Config
	patterns *pattern.Calculator
	effects  *effect.Processor

	text    []rune
	bitmaps []glyph.Bitmap
	offsets []int

	active reactive.Resolved

	started   bool
	startTime float64
	elapsed   float64
	charIndex int
	completed bool

	pending  reactive.Config
	debounce frame.Handle
}

// New создаёт анимацию, но не запускает её.
func New(surf surface.Surface, sched frame.Scheduler, cfg Config, opts ...anim.Option) (*Animation, error) {
	r, err := anim.NewRunner("dotmatrix", surf, sched, opts...)
	if err != nil {
		return nil, fmt.Errorf("dotmatrix: %w", err)
	}
	cfg = withDefaults(cfg.clone())
	a := &Animation{
		r:        r,
		surf:     surf,
		sched:    sched,
		cfg:      cfg,
		patterns: pattern.NewCalculator(r.Seed()),
		effects:  effect.NewProcessor(cfg.EffectConfig, utils.NewPRNGService(r.Seed())),
	}
	a.setText(cfg.Text)
	a.resolve()
	r.Bind(a.render)
	return a, nil
}

func withDefaults(c Config) Config {
	if c.PixelSize <= 0 {
		c.PixelSize = config.DefaultPixelSize
	}
	if c.Color.A == 0 {
		c.Color = config.PhosphorGreen
	}
	return c
}

func (a *Animation) ID() string { return a.r.ID() }

// Config возвращает копию текущей конфигурации.
func (a *Animation) Config() Config { return a.cfg.clone() }

// Active — узор и эффекты, которые реально применяются сейчас.
func (a *Animation) Active() reactive.Resolved { return a.active }

// Offsets возвращает копию накопленных смещений символов.
func (a *Animation) Offsets() []int { return append([]int(nil), a.offsets...) }

// TotalDuration — (offsets[last] + budget(last)) * msPerPixel.
func (a *Animation) TotalDuration() float64 {
	n := len(a.text)
	if n == 0 {
		return 0
	}
	units := a.offsets[n-1] + Budget(a.text[n-1])
	return float64(units) * a.cfg.msPerPixel()
}

// Subscribe подписывает fn на события анимации.
func (a *Animation) Subscribe(t event.EventType, fn func(event.Event)) func() {
	return a.r.Subscribe(t, fn)
}

// Start начинает проявление с нуля.
func (a *Animation) Start() {
	if a.r.Destroyed() {
		a.r.Start() // предупреждение в лог
		return
	}
	a.rewind()
	a.completed = false
	a.r.Start()
}

// Stop отменяет следующий кадр, не очищая поверхность.
func (a *Animation) Stop() {
	a.r.Stop()
}

// Reset останавливает анимацию и гасит поверхность.
func (a *Animation) Reset() {
	a.r.Stop()
	a.rewind()
	a.completed = false
	if !surface.Empty(a.surf) {
		a.surf.Clear(config.BackgroundColor)
	}
}

// Destroy останавливает анимацию навсегда. Повторный вызов безопасен.
func (a *Animation) Destroy() {
	if !a.r.Destroy() {
		return
	}
	a.sched.ClearTimeout(a.debounce)
	a.debounce = 0
	a.patterns.ClearCache()
	if !surface.Empty(a.surf) {
		a.surf.Clear(config.BackgroundColor)
	}
	a.text, a.bitmaps, a.offsets = nil, nil, nil
}

func (a *Animation) State() State {
	st := State{
		IsRunning:        a.r.Running(),
		CurrentCharIndex: a.charIndex,
		TotalChars:       len(a.text),
	}
	if total := a.TotalDuration(); total > 0 {
		st.Progress = utils.Clamp01(a.elapsed / total)
	} else if a.completed {
		st.Progress = 1
	}
	return st
}

// UpdateConfig применяет mutate к копии конфигурации. Изменение Reactive
// передаётся в UpdateReactiveState, остальные поля этого вызова отбрасываются.
func (a *Animation) UpdateConfig(mutate func(*Config)) {
	if a.r.Destroyed() {
		a.r.Log().Warn("update config called on destroyed animation")
		return
	}
	next := a.cfg.clone()
	mutate(&next)

	if reactive.HasStateChanged(a.cfg.Reactive, next.Reactive) {
		var rc reactive.Config
		if next.Reactive != nil {
			rc = *next.Reactive
		}
		a.UpdateReactiveState(rc)
		return
	}

	next = withDefaults(next)
	textChanged := next.Text != a.cfg.Text
	a.cfg = next
	if textChanged {
		a.setText(next.Text)
	}
	a.effects.UpdateConfig(next.EffectConfig)
	a.resolve()
}

// UpdateReactiveState откладывает смену режима на ReactiveDebounceMs;
// каждый новый вызов перезапускает таймер.
func (a *Animation) UpdateReactiveState(cfg reactive.Config) {
	if a.r.Destroyed() {
		a.r.Log().Warn("reactive update on destroyed animation", "state", cfg.State)
		return
	}
	a.pending = cfg
	a.sched.ClearTimeout(a.debounce)
	a.debounce = a.sched.SetTimeout(config.ReactiveDebounceMs, a.applyReactive)
}

func (a *Animation) applyReactive() {
	a.debounce = 0
	next := a.pending
	if !reactive.HasStateChanged(a.cfg.Reactive, &next) {
		a.r.Log().Debug("reactive state unchanged", "state", next.State)
		return
	}
	old := a.active
	a.cfg.Reactive = &next
	now := a.resolve()
	a.r.Log().Debug("reactive state resolved", "state", next.State, "pattern", now.Pattern)
	a.r.Emit(event.ReactiveResolved, now)

	switch {
	case reactive.ShouldRestartAnimation(old, now):
		if a.r.Running() || a.completed {
			a.Start()
		}
	case a.completed && !a.r.Running() && len(now.Effects) > 0:
		a.r.Start()
	}
}

func (a *Animation) setText(s string) {
	a.text = []rune(s)
	a.bitmaps = make([]glyph.Bitmap, len(a.text))
	for i, r := range a.text {
		a.bitmaps[i] = glyph.Lookup(r)
	}
	a.offsets = Offsets(a.text)
}

// resolve выбирает узор и эффекты: реактивный режим важнее статических полей.
func (a *Animation) resolve() reactive.Resolved {
	var res reactive.Resolved
	if a.cfg.Reactive != nil && a.cfg.Reactive.Enabled {
		res = reactive.StateConfig(a.cfg.Reactive, a.cfg.Pattern)
	} else {
		res = reactive.Resolved{Pattern: a.cfg.Pattern, Effects: append([]effect.Type(nil), a.cfg.Effects...)}
	}
	res.Pattern = pattern.Normalize(res.Pattern)
	a.active = res
	a.patterns.PreCalculate(res.Pattern, len(a.text))
	return res
}

func (a *Animation) rewind() {
	a.started = false
	a.startTime = 0
	a.elapsed = 0
	a.charIndex = 0
}

func (a *Animation) render(ts float64) {
	if !a.started {
		a.startTime = ts
		a.started = true
	}
	a.elapsed = ts - a.startTime
	ms := a.cfg.msPerPixel()
	total := a.TotalDuration()
	a.charIndex = a.charAt(a.elapsed, ms, total)

	a.draw(ms)

	switch {
	case len(a.text) == 0:
		a.finish()
	case a.elapsed < total:
		a.r.Schedule()
	case a.cfg.Loop:
		a.rewind()
		a.r.Emit(event.Looped, nil)
		a.r.Schedule()
	case len(a.active.Effects) > 0:
		if !a.completed {
			a.completed = true
			a.r.Emit(event.Completed, nil)
		}
		a.r.Schedule()
	default:
		a.finish()
	}
}

func (a *Animation) finish() {
	a.completed = true
	a.charIndex = len(a.text)
	a.r.Finish()
}

// charAt — символ, который сейчас проявляется; после конца — len(text).
func (a *Animation) charAt(elapsed, ms, total float64) int {
	if elapsed >= total {
		return len(a.text)
	}
	for i := len(a.offsets) - 1; i > 0; i-- {
		if elapsed >= float64(a.offsets[i])*ms {
			return i
		}
	}
	return 0
}

func (a *Animation) draw(ms float64) {
	if surface.Empty(a.surf) {
		return
	}
	a.surf.Clear(config.BackgroundColor)

	c := a.cfg
	bg := utils.Clamp01(c.BackgroundIntensity)
	step := c.PixelSize + c.PixelSpacing
	advance := glyph.Cols*step + c.CharSpacing
	radius := c.PixelSize / 2
	dim := surface.Fill(c.Color, bg)

	for i, bm := range a.bitmaps {
		// PixelTiming считает символ полным (35 единиц); сдвигаем на
		// реальное накопленное смещение, учитывающее пробелы.
		shift := float64(a.offsets[i]-i*pattern.Cells) * ms
		x0 := c.OffsetX + float64(i)*advance
		for row := 0; row < glyph.Rows; row++ {
			y := c.OffsetY + float64(row)*step + radius
			for col := 0; col < glyph.Cols; col++ {
				x := x0 + float64(col)*step + radius
				if !bm.On(row, col) {
					a.surf.FillCircle(x, y, radius, dim)
					continue
				}
				tm := a.patterns.PixelTiming(i, row, col, a.active.Pattern, ms)
				pe := a.elapsed - (tm.Start + shift)
				if pe < 0 {
					a.surf.FillCircle(x, y, radius, dim)
					continue
				}
				fade := utils.Clamp01(pe / ms)
				out := a.effects.Apply(effect.Input{
					Intensity:    bg + (1-bg)*fade,
					ShadowBlur:   c.GlowIntensity * fade,
					Elapsed:      a.elapsed,
					PixelElapsed: pe,
					MsPerPixel:   ms,
					FullyLit:     pe >= ms,
				}, a.active.Effects)
				st := surface.Style{
					Color:      c.Color,
					Alpha:      utils.Clamp01(out.Intensity),
					ShadowBlur: max(out.ShadowBlur, 0),
				}
				a.surf.FillCircle(x, y, radius, st)
			}
		}
	}
}
