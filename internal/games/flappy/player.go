package flappy

import (
	"math"

	"github.com/vovakirdan/skyflap/internal/config"
	"github.com/vovakirdan/skyflap/internal/core"
)

// Player is the bird. X is fixed; Y, the center of the collision box, is
// free. Velocities are in world units per second, positive is down.
type Player struct {
	X, Y          float64
	VelocityY     float64
	Width, Height float64
	Gravity       bool
}

func newPlayer(cfg config.PlayerConfig) Player {
	return Player{
		X:      cfg.X,
		Y:      cfg.StartY,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

// Box returns the collision box.
func (p Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.Width, p.Height)
}

// Bottom returns the lower edge of the collision box.
func (p Player) Bottom() float64 {
	return p.Y + p.Height/2
}

// Flap replaces the vertical velocity with the jump impulse.
func (p *Player) Flap(impulse float64) {
	p.VelocityY = impulse
}

// Integrate advances the player by secs seconds. A player without gravity
// is out of the simulation and does not move.
// Velocity is updated before position (semi-implicit Euler).
func (p *Player) Integrate(secs float64, phys config.PhysicsConfig) {
	if !p.Gravity {
		return
	}
	p.VelocityY += phys.Gravity * secs
	if phys.MaxFallSpeed > 0 && p.VelocityY > phys.MaxFallSpeed {
		p.VelocityY = phys.MaxFallSpeed
	}
	p.Y += p.VelocityY * secs
}

// ClampCeiling stops the player at the top of the world.
// The ceiling absorbs all momentum.
func (p *Player) ClampCeiling() {
	if p.Y < 0 {
		p.Y = 0
		p.VelocityY = 0
	}
}

// Freeze stops all motion.
func (p *Player) Freeze() {
	p.VelocityY = 0
	p.Gravity = false
}

// hoverOffset is the idle bob: up by amplitude and back once per period.
func hoverOffset(elapsedMs float64, cfg config.PlayerConfig) float64 {
	if cfg.HoverPeriodMs <= 0 {
		return 0
	}
	phase := 2 * math.Pi * elapsedMs / float64(cfg.HoverPeriodMs)
	return -cfg.HoverAmplitude * (1 - math.Cos(phase)) / 2
}
