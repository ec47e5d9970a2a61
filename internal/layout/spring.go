package layout

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const settleEpsilon = 0.01

// SpringParams are the physical constants of a damped spring.
type SpringParams struct {
	Stiffness float64
	Damping   float64
	Mass      float64
}

// DefaultSpringX and DefaultSpringY are the pan springs for each axis.
var (
	DefaultSpringX = SpringParams{Stiffness: 30, Damping: 10, Mass: 1}
	DefaultSpringY = SpringParams{Stiffness: 15, Damping: 10, Mass: 1}
)

func (p SpringParams) mass() float64 {
	if p.Mass <= 0 {
		return 1
	}
	return p.Mass
}

// AngularFrequency returns sqrt(k/m).
func (p SpringParams) AngularFrequency() float64 {
	return math.Sqrt(p.Stiffness / p.mass())
}

// DampingRatio returns c / (2·sqrt(k·m)).
func (p SpringParams) DampingRatio() float64 {
	if p.Stiffness <= 0 {
		return 1
	}
	return p.Damping / (2 * math.Sqrt(p.Stiffness*p.mass()))
}

// Spring smooths one value toward a target, advanced one frame at a time.
type Spring struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

// NewSpring creates a spring stepping at fps frames per second.
func NewSpring(fps int, p SpringParams) *Spring {
	if fps <= 0 {
		fps = 60
	}
	return &Spring{
		spring: harmonica.NewSpring(harmonica.FPS(fps), p.AngularFrequency(), p.DampingRatio()),
	}
}

// SetTarget moves the equilibrium to v.
func (s *Spring) SetTarget(v float64) { s.target = v }

// Target returns the current equilibrium.
func (s *Spring) Target() float64 { return s.target }

// Value returns the current smoothed value.
func (s *Spring) Value() float64 { return s.pos }

// Snap places the spring at rest on v.
func (s *Spring) Snap(v float64) {
	s.pos, s.vel, s.target = v, 0, v
}

// Step advances one frame and returns the new value. A spring close enough to rest lands on its target.
func (s *Spring) Step() float64 {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if s.Settled() {
		s.pos, s.vel = s.target, 0
	}
	return s.pos
}

// Settled reports whether the spring is at rest on its target.
func (s *Spring) Settled() bool {
	return math.Abs(s.pos-s.target) < settleEpsilon && math.Abs(s.vel) < settleEpsilon
}
