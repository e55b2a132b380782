// internal/frame/clock.go
package frame

import "time"

// Clock — источник времени для цикла кадров. Тесты подставляют ManualClock,
// чтобы управлять временем детерминированно.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// RealClock возвращает системные часы.
func RealClock() Clock { return realClock{} }

// ManualClock — часы, которые двигаются только вручную.
type ManualClock struct {
	now time.Time
}

// NewManualClock создаёт часы, стоящие в произвольной фиксированной точке.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *ManualClock) Now() time.Time { return c.now }

// Advance сдвигает часы вперёд. Отрицательные значения игнорируются.
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now = c.now.Add(d)
	}
}
