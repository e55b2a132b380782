// internal/frame/loop.go
package frame

import (
	"context"
	"sort"
	"time"
)

// Handle — идентификатор запрошенного кадра или таймера. Ноль не выдаётся никогда.
type Handle uint64

// Callback вызывается с меткой времени кадра в миллисекундах от старта цикла.
type Callback func(timestamp float64)

// Scheduler — примитив планирования, аналог requestAnimationFrame/setTimeout.
// Все колбэки выполняются последовательно в одной горутине, метки времени не убывают.
type Scheduler interface {
	RequestFrame(cb Callback) Handle
	CancelFrame(h Handle)
	SetTimeout(delayMs float64, fn func()) Handle
	ClearTimeout(h Handle)
	Now() float64
}

type request struct {
	id Handle
	cb Callback
}

type timeout struct {
	id  Handle
	due float64
	fn  func()
}

// Loop — однопоточная реализация Scheduler. Хост вызывает Tick раз в кадр
// (например, из ebiten Update), и только из той же горутины.
type Loop struct {
	clock  Clock
	origin time.Time
	nextID Handle
	last   float64

	paused   bool
	pausedAt time.Time

	frames  []request
	running []request
	timers  []timeout
	firing  []timeout
}

// NewLoop создаёт цикл. nil означает системные часы.
func NewLoop(clock Clock) *Loop {
	if clock == nil {
		clock = RealClock()
	}
	return &Loop{
		clock:  clock,
		origin: clock.Now(),
	}
}

func (l *Loop) newID() Handle {
	l.nextID++
	return l.nextID
}

// Now возвращает монотонное время цикла в миллисекундах. На паузе время стоит.
func (l *Loop) Now() float64 {
	at := l.clock.Now()
	if l.paused {
		at = l.pausedAt
	}
	ms := float64(at.Sub(l.origin)) / float64(time.Millisecond)
	if ms < l.last {
		return l.last
	}
	return ms
}

// Pause останавливает время цикла. Кадры и таймеры остаются в очереди.
func (l *Loop) Pause() {
	if l.paused {
		return
	}
	l.paused = true
	l.pausedAt = l.clock.Now()
}

// Resume продолжает время с того места, где оно встало: origin сдвигается
// на длительность паузы, так что метки кадров не прыгают.
func (l *Loop) Resume() {
	if !l.paused {
		return
	}
	l.origin = l.origin.Add(l.clock.Now().Sub(l.pausedAt))
	l.paused = false
}

func (l *Loop) Paused() bool { return l.paused }

// RequestFrame ставит колбэк на следующий Tick.
func (l *Loop) RequestFrame(cb Callback) Handle {
	id := l.newID()
	l.frames = append(l.frames, request{id: id, cb: cb})
	return id
}

// CancelFrame отменяет кадр, в том числе ещё не выполненный в текущем Tick.
func (l *Loop) CancelFrame(h Handle) {
	if h == 0 {
		return
	}
	for i := range l.frames {
		if l.frames[i].id == h {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
	for i := range l.running {
		if l.running[i].id == h {
			l.running[i].cb = nil
			return
		}
	}
}

// SetTimeout вызывает fn не раньше чем через delayMs.
func (l *Loop) SetTimeout(delayMs float64, fn func()) Handle {
	if delayMs < 0 {
		delayMs = 0
	}
	id := l.newID()
	l.timers = append(l.timers, timeout{id: id, due: l.Now() + delayMs, fn: fn})
	return id
}

// ClearTimeout отменяет таймер. Повторная отмена безопасна.
func (l *Loop) ClearTimeout(h Handle) {
	if h == 0 {
		return
	}
	for i := range l.timers {
		if l.timers[i].id == h {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			return
		}
	}
	for i := range l.firing {
		if l.firing[i].id == h {
			l.firing[i].fn = nil
			return
		}
	}
}

// Tick выполняет наступившие таймеры, затем кадры, запрошенные до этого Tick.
// Кадры, запрошенные из колбэков, уходят на следующий Tick. Возвращает метку кадра.
func (l *Loop) Tick() float64 {
	now := l.Now()
	l.last = now

	kept := l.timers[:0]
	for _, t := range l.timers {
		if t.due <= now {
			l.firing = append(l.firing, t)
		} else {
			kept = append(kept, t)
		}
	}
	l.timers = kept
	sort.SliceStable(l.firing, func(i, j int) bool { return l.firing[i].due < l.firing[j].due })
	for i := 0; i < len(l.firing); i++ {
		if fn := l.firing[i].fn; fn != nil {
			fn()
		}
	}
	l.firing = l.firing[:0]

	l.running, l.frames = l.frames, nil
	for i := 0; i < len(l.running); i++ {
		if cb := l.running[i].cb; cb != nil {
			cb(now)
		}
	}
	l.running = nil
	return now
}

// PendingFrames — число кадров, ожидающих следующего Tick.
func (l *Loop) PendingFrames() int {
	return len(l.frames)
}

// PendingTimers — число взведённых таймеров.
func (l *Loop) PendingTimers() int {
	return len(l.timers)
}

// Run крутит цикл с заданной частотой до отмены ctx. Для хостов без своего
// цикла отрисовки; after вызывается после каждого Tick.
func Run(ctx context.Context, l *Loop, fps float64, after func(timestamp float64)) error {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			ts := l.Tick()
			if after != nil {
				after(ts)
			}
		}
	}
}
