// Package anim — общий жизненный цикл анимаций: идентификатор, логгер,
// события и единственный запрошенный кадр.
package anim

import (
	"errors"
	"log/slog"

	"go-phosphor/internal/event"
	"go-phosphor/internal/frame"
	"go-phosphor/pkg/surface"

	"github.com/google/uuid"
)

var (
	ErrNilSurface   = errors.New("anim: nil surface")
	ErrNilScheduler = errors.New("anim: nil scheduler")
)

// Options — общие параметры конструкторов анимаций.
type Options struct {
	Logger *slog.Logger
	Seed   int64 // 0 — сид от текущего времени
}

type Option func(*Options)

// WithLogger задаёт логгер. По умолчанию slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithSeed фиксирует сид генератора случайных чисел.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// Runner владеет кадром анимации. Хозяйская анимация привязывает к нему
// свой render и сама решает, запрашивать ли следующий кадр (Schedule).
type Runner struct {
	kind   string
	id     string
	log    *slog.Logger
	sched  frame.Scheduler
	events *event.Dispatcher
	seed   int64

	render    frame.Callback
	handle    frame.Handle
	running   bool
	destroyed bool
}

// NewRunner проверяет поверхность и планировщик и собирает общий контекст анимации.
func NewRunner(kind string, surf surface.Surface, sched frame.Scheduler, opts ...Option) (*Runner, error) {
	if surf == nil {
		return nil, ErrNilSurface
	}
	if sched == nil {
		return nil, ErrNilScheduler
	}
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	id := uuid.NewString()
	return &Runner{
		kind:   kind,
		id:     id,
		log:    o.Logger.With("anim", kind, "id", id),
		sched:  sched,
		events: event.NewDispatcher(),
		seed:   o.Seed,
	}, nil
}

// Bind задаёт функцию отрисовки кадра.
func (r *Runner) Bind(render frame.Callback) {
	r.render = render
}

func (r *Runner) ID() string                 { return r.id }
func (r *Runner) Kind() string               { return r.kind }
func (r *Runner) Log() *slog.Logger          { return r.log }
func (r *Runner) Seed() int64                { return r.seed }
func (r *Runner) Scheduler() frame.Scheduler { return r.sched }
func (r *Runner) Running() bool              { return r.running }
func (r *Runner) Destroyed() bool            { return r.destroyed }

// Start запрашивает первый кадр. Повторный Start перезапрашивает кадр,
// после Destroy ничего не делает и пишет предупреждение.
func (r *Runner) Start() bool {
	if r.destroyed {
		r.log.Warn("start called on destroyed animation")
		return false
	}
	r.cancel()
	r.running = true
	r.handle = r.sched.RequestFrame(r.tick)
	r.log.Debug("started")
	r.Emit(event.Started, nil)
	return true
}

// Schedule запрашивает следующий кадр, если анимация запущена.
func (r *Runner) Schedule() {
	if !r.running || r.handle != 0 {
		return
	}
	r.handle = r.sched.RequestFrame(r.tick)
}

func (r *Runner) tick(ts float64) {
	r.handle = 0
	if !r.running || r.render == nil {
		return
	}
	r.render(ts)
}

func (r *Runner) cancel() {
	if r.handle != 0 {
		r.sched.CancelFrame(r.handle)
		r.handle = 0
	}
}

// Stop отменяет запрошенный кадр. Возвращает false, если анимация и так стояла.
func (r *Runner) Stop() bool {
	r.cancel()
	if !r.running {
		return false
	}
	r.running = false
	r.log.Debug("stopped")
	r.Emit(event.Stopped, nil)
	return true
}

// Finish — анимация доиграла и больше не просит кадров.
func (r *Runner) Finish() {
	r.cancel()
	r.running = false
	r.log.Debug("completed")
	r.Emit(event.Completed, nil)
}

// Destroy останавливает анимацию навсегда. Повторный вызов возвращает false.
func (r *Runner) Destroy() bool {
	if r.destroyed {
		return false
	}
	r.cancel()
	r.running = false
	r.destroyed = true
	r.log.Debug("destroyed")
	r.Emit(event.Destroyed, nil)
	r.events.Clear()
	return true
}

// Emit рассылает событие подписчикам этой анимации.
func (r *Runner) Emit(t event.EventType, data interface{}) {
	r.events.Dispatch(event.Event{Type: t, Source: r.id, Data: data})
}

// Subscribe подписывает fn на события анимации; возвращает отписку.
func (r *Runner) Subscribe(t event.EventType, fn func(event.Event)) func() {
	return r.events.Subscribe(t, event.ListenerFunc(fn))
}

// Resize меняет размер поверхности, если она это умеет.
func (r *Runner) Resize(surf surface.Surface, w, h int) bool {
	rs, ok := surf.(surface.Resizer)
	if !ok {
		r.log.Warn("surface cannot be resized", "w", w, "h", h)
		return false
	}
	rs.Resize(w, h)
	return true
}

// Delta — шаг времени между кадрами в мс; первый кадр после старта даёт 0.
type Delta struct {
	last  float64
	valid bool
}

func (d *Delta) Step(ts float64) float64 {
	if !d.valid {
		d.last, d.valid = ts, true
		return 0
	}
	dt := ts - d.last
	d.last = ts
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset заставляет следующий Step вернуть 0, чтобы пауза не превратилась в скачок.
func (d *Delta) Reset() { d.valid = false }
