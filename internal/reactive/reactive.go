// Package reactive сопоставляет внешнее состояние системы паре (узор, эффекты).
package reactive

import (
	"slices"

	"go-phosphor/internal/effect"
	"go-phosphor/internal/pattern"
)

// State — внешнее состояние, на которое реагирует анимация.
type State string

const (
	Idle       State = "idle"
	Processing State = "processing"
	Success    State = "success"
	Warning    State = "warning"
	Error      State = "error"
)

// Config — реактивный режим анимации.
type Config struct {
	Enabled bool
	State   State
}

// Resolved — итоговые узор и эффекты.
type Resolved struct {
	Pattern pattern.Type
	Effects []effect.Type
}

// Equal сравнивает узор и эффекты с учётом порядка.
func (r Resolved) Equal(o Resolved) bool {
	return r.Pattern == o.Pattern && slices.Equal(r.Effects, o.Effects)
}

type entry struct {
	pattern pattern.Type // пусто — базовый узор
	effects []effect.Type
}

var table = map[State]entry{
	Idle:       {effects: []effect.Type{effect.Pulsate}},
	Processing: {pattern: pattern.Sequential, effects: []effect.Type{effect.GlowPulse, effect.Flicker}},
	Success:    {pattern: pattern.CenterOut, effects: []effect.Type{effect.GlowPulse}},
	Warning:    {pattern: pattern.Diagonal, effects: []effect.Type{effect.Blink, effect.GlowPulse}},
	Error:      {pattern: pattern.Random, effects: []effect.Type{effect.Blink, effect.Flicker}},
}

// States перечисляет известные состояния в порядке таблицы.
func States() []State {
	return []State{Idle, Processing, Success, Warning, Error}
}

// StateConfig — чистая функция: выключенный, пустой или неизвестный режим
// даёт базовый узор без эффектов.
func StateConfig(cfg *Config, base pattern.Type) Resolved {
	if cfg == nil || !cfg.Enabled {
		return Resolved{Pattern: base}
	}
	e, ok := table[cfg.State]
	if !ok {
		return Resolved{Pattern: base}
	}
	p := e.pattern
	if p == "" {
		p = base
	}
	return Resolved{Pattern: p, Effects: slices.Clone(e.effects)}
}

// HasStateChanged сравнивает конфигурации по значению.
func HasStateChanged(old, next *Config) bool {
	if old == nil || next == nil {
		return old != next
	}
	return *old != *next
}

// ShouldRestartAnimation — перезапуск нужен только при смене узора;
// смена одних эффектов применяется на лету.
func ShouldRestartAnimation(old, next Resolved) bool {
	return old.Pattern != next.Pattern
}
