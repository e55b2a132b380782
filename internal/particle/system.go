// Package particle — система частиц с излучателем, силами и угасанием.
package particle

import (
	"fmt"
	"image/color"
	"math"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/config"
	"go-phosphor/internal/frame"
	"go-phosphor/internal/utils"
	"go-phosphor/pkg/surface"
)

// ForceType — вид силы, действующей на все частицы.
type ForceType string

const (
	Gravity ForceType = "gravity"
	Wind    ForceType = "wind"
	Attract ForceType = "attract"
	Repel   ForceType = "repel"
	Vortex  ForceType = "vortex"
)

// Force — сила. X, Y и Radius нужны только точечным силам (attract, repel,
// vortex); Radius 0 — без ограничения.
type Force struct {
	Type     ForceType
	Strength float64 // пикс/с²
	X, Y     float64
	Radius   float64
}

// Particle принадлежит одной системе и живёт до age >= maxAge или выхода за границы.
type Particle struct {
	X, Y          float64
	VX, VY        float64
	AX, AY        float64
	Size          float64
	Color         color.RGBA
	Alpha         float64
	Rotation      float64
	RotationSpeed float64
	Age, MaxAge   float64 // мс
	Alive         bool
	Mass          float64
	Friction      float64
}

// System — излучатель и живой массив частиц.
type System struct {
	r    *anim.Runner
	surf surface.Surface
	cfg  Config
	rng  *utils.PRNGService

	particles []Particle
	forces    []Force
	emitAcc   float64
	dt        anim.Delta
}

func New(surf surface.Surface, sched frame.Scheduler, cfg Config, opts ...anim.Option) (*System, error) {
	r, err := anim.NewRunner("particles", surf, sched, opts...)
	if err != nil {
		return nil, fmt.Errorf("particle: %w", err)
	}
	s := &System{
		r:    r,
		surf: surf,
		cfg:  cfg.clone(),
		rng:  utils.NewPRNGService(r.Seed()),
	}
	r.Bind(s.render)
	return s, nil
}

func (s *System) ID() string { return s.r.ID() }

func (s *System) Start() {
	s.dt.Reset()
	s.r.Start()
}

func (s *System) Stop() { s.r.Stop() }

func (s *System) Destroy() {
	if !s.r.Destroy() {
		return
	}
	s.particles = nil
	s.forces = nil
}

// UpdateConfig применяет mutate к копии конфигурации; частицы остаются.
func (s *System) UpdateConfig(mutate func(*Config)) {
	next := s.cfg.clone()
	mutate(&next)
	s.cfg = next
	if limit := s.cfg.MaxParticles; limit > 0 && len(s.particles) > limit {
		s.particles = s.particles[:limit]
	}
}

func (s *System) Config() Config { return s.cfg.clone() }

func (s *System) Resize(w, h int) { s.r.Resize(s.surf, w, h) }

func (s *System) AddForce(f Force) { s.forces = append(s.forces, f) }

func (s *System) ClearForces() { s.forces = nil }

func (s *System) SetEmitterPosition(x, y float64) {
	s.cfg.X, s.cfg.Y = x, y
}

// Burst выпускает n частиц сразу; n <= 0 — BurstSize из конфигурации.
func (s *System) Burst(n int) {
	if n <= 0 {
		n = s.cfg.BurstSize
	}
	for i := 0; i < n && s.room(); i++ {
		s.emit()
	}
}

func (s *System) ParticleCount() int { return len(s.particles) }

// Particles возвращает копию живых частиц.
func (s *System) Particles() []Particle {
	return append([]Particle(nil), s.particles...)
}

func (s *System) room() bool {
	return s.cfg.MaxParticles <= 0 || len(s.particles) < s.cfg.MaxParticles
}

func (s *System) emit() {
	c := s.cfg
	angle := utils.DegToRad(c.Direction + s.rng.Range(-c.Spread/2, c.Spread/2))
	speed := s.rng.Range(c.SpeedMin, c.SpeedMax)
	col := config.PhosphorGreen
	if len(c.Colors) > 0 {
		col = c.Colors[s.rng.Intn(len(c.Colors))]
	}
	mass := c.Mass
	if mass <= 0 {
		mass = 1
	}
	s.particles = append(s.particles, Particle{
		X:             c.X,
		Y:             c.Y,
		VX:            math.Cos(angle) * speed,
		VY:            math.Sin(angle) * speed,
		Size:          s.rng.Range(c.SizeMin, c.SizeMax),
		Color:         col,
		Alpha:         1,
		Rotation:      angle,
		RotationSpeed: s.rng.Range(c.SpinMin, c.SpinMax),
		MaxAge:        s.rng.Range(c.LifeMin, c.LifeMax),
		Alive:         true,
		Mass:          mass,
		Friction:      c.Friction,
	})
}

func (s *System) render(ts float64) {
	dtMs := s.dt.Step(ts)
	s.update(dtMs)
	s.draw()
	s.r.Schedule()
}

// update: возраст растёт на реальный dt, физика — на dt, ограниченный MaxDeltaTime.
func (s *System) update(dtMs float64) {
	dt := math.Min(dtMs/1000, config.MaxDeltaTime)

	if s.cfg.EmissionRate > 0 {
		s.emitAcc += s.cfg.EmissionRate * dt
		for s.emitAcc >= 1 {
			s.emitAcc--
			if s.room() {
				s.emit()
			}
		}
	}

	w, h := s.surf.Size()
	margin := s.cfg.BoundsMargin
	frames := dt * 1000 / config.FrameMs

	alive := s.particles[:0]
	for _, p := range s.particles {
		p.Age += dtMs
		if p.Age >= p.MaxAge {
			continue
		}
		p.AX, p.AY = s.acceleration(&p)
		p.VX += p.AX * dt
		p.VY += p.AY * dt
		if p.Friction > 0 && p.Friction < 1 {
			k := math.Pow(p.Friction, frames)
			p.VX *= k
			p.VY *= k
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Rotation += p.RotationSpeed * dt
		p.Alpha = 1 - p.Age/p.MaxAge

		if p.X < -margin || p.X > float64(w)+margin || p.Y < -margin || p.Y > float64(h)+margin {
			continue
		}
		alive = append(alive, p)
	}
	// хвост обнуляем, чтобы не держать мёртвые частицы в памяти
	for i := len(alive); i < len(s.particles); i++ {
		s.particles[i] = Particle{}
	}
	s.particles = alive
}

func (s *System) acceleration(p *Particle) (float64, float64) {
	var ax, ay float64
	for _, f := range s.forces {
		switch f.Type {
		case Gravity:
			ay += f.Strength
		case Wind:
			ax += f.Strength
		case Attract, Repel, Vortex:
			dx, dy := f.X-p.X, f.Y-p.Y
			dist := math.Hypot(dx, dy)
			if dist < 1 || (f.Radius > 0 && dist > f.Radius) {
				continue
			}
			k := f.Strength / dist / p.Mass
			switch f.Type {
			case Attract:
				ax += dx * k
				ay += dy * k
			case Repel:
				ax -= dx * k
				ay -= dy * k
			case Vortex:
				ax += -dy * k
				ay += dx * k
			}
		}
	}
	return ax, ay
}

func (s *System) draw() {
	if surface.Empty(s.surf) {
		return
	}
	s.surf.Clear(s.cfg.Background)
	for _, p := range s.particles {
		st := surface.Style{
			Color:      p.Color,
			Alpha:      utils.Clamp01(p.Alpha),
			ShadowBlur: s.cfg.GlowIntensity,
			LineWidth:  math.Max(p.Size/2, 1),
		}
		if s.cfg.Shape == Spark {
			dx, dy := math.Cos(p.Rotation)*p.Size*2, math.Sin(p.Rotation)*p.Size*2
			s.surf.StrokeLine(p.X-dx, p.Y-dy, p.X+dx, p.Y+dy, st)
			continue
		}
		s.surf.FillCircle(p.X, p.Y, p.Size, st)
	}
}
