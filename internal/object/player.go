package object

import (
	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/scene"
)

// Action is what a key means to the player.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionShoot
)

// ActionFor maps a key to a player action.
func ActionFor(k input.Key) Action {
	switch k {
	case input.KeyA, input.KeyArrowLeft:
		return ActionLeft
	case input.KeyD, input.KeyArrowRight:
		return ActionRight
	case input.KeyW, input.KeyArrowUp, input.KeySpace:
		return ActionShoot
	}
	return ActionNone
}

// Player is the cannon at the bottom of the field.
type Player struct {
	Actor
	Lives int
	Score int

	held       map[input.Key]bool
	shootEdge  bool
	shot       *Projectile // The single projectile the player may have in flight
	destroying bool

	idle    *asset.Animation
	destroy *asset.Animation
}

// NewPlayer creates a player at the start position with full lives.
func NewPlayer(assets asset.Resolver) *Player {
	p := &Player{
		held:    make(map[input.Key]bool),
		idle:    resolve(assets, asset.SheetPlayer, "idle"),
		destroy: resolve(assets, asset.SheetPlayer, "destroy"),
	}
	p.Tint = scene.Green
	p.Reset()
	return p
}

// ProcessInput records a key transition. Unknown keys are ignored.
// A shoot edge is latched on key-down of a shoot key that was not held.
func (p *Player) ProcessInput(ev input.Event) {
	action := ActionFor(ev.Key)
	if action == ActionNone {
		return
	}
	if action == ActionShoot && ev.Down && !p.held[ev.Key] {
		p.shootEdge = true
	}
	p.held[ev.Key] = ev.Down
}

// Intent returns -1, 0 or +1 from the held movement keys.
func (p *Player) Intent() float64 {
	var left, right float64
	if p.held[input.KeyA] || p.held[input.KeyArrowLeft] {
		left = 1
	}
	if p.held[input.KeyD] || p.held[input.KeyArrowRight] {
		right = 1
	}
	return right - left
}

// ConsumeShoot returns and clears the latched shoot edge.
func (p *Player) ConsumeShoot() bool {
	edge := p.shootEdge
	p.shootEdge = false
	return edge
}

// Update moves the player and fires on a latched shoot edge, or only
// advances the destroy animation while hit.
func (p *Player) Update(ctx UpdateContext) {
	dt := ctx.Seconds()
	shoot := p.ConsumeShoot()

	if p.destroying {
		p.Sprite.Advance(dt)
		if !p.Sprite.Done() {
			return
		}
		p.destroying = false
		if p.Lives <= 0 {
			ctx.Signals.Push(Signal{Kind: SignalPlayerDied})
			return
		}
		p.Sprite.Play(p.idle, true)
		ctx.Signals.Push(Signal{Kind: SignalPlayerRestored})
		return
	}

	p.X += p.Intent() * config.PlayerSpeed * dt
	p.X = physics.Clamp(p.X, config.FieldLeft, config.FieldRight-p.Width())
	p.Sprite.Advance(dt)

	if shoot {
		p.Shoot(ctx)
	}
}

// Shoot fires the player's projectile from its top-centre. It is a no-op
// while the previous one is still in flight.
func (p *Player) Shoot(ctx UpdateContext) bool {
	if p.destroying || p.ShotInFlight() || ctx.Spawner == nil {
		return false
	}
	p.shot = ctx.Spawner.Instantiate(p.X+p.Width()/2, p.Y, SidePlayer, ctx.Rand)
	ctx.Signals.Push(Signal{Kind: SignalPlayerFired, Side: SidePlayer})
	return true
}

// ShotInFlight reports whether the player's projectile is still active.
func (p *Player) ShotInFlight() bool {
	return p.shot != nil && p.shot.Active
}

// Hit takes a life and starts the destroy animation. Completion is
// reported by Update as SignalPlayerRestored or SignalPlayerDied.
func (p *Player) Hit() {
	if p.destroying {
		return
	}
	p.Lives--
	p.destroying = true
	p.Sprite.Play(p.destroy, false)
}

// Destroying reports whether the destroy animation is playing.
func (p *Player) Destroying() bool {
	return p.destroying
}

// AddScore adds points.
func (p *Player) AddScore(points int) {
	p.Score += points
}

// ResetPosition moves the player back to its start-of-level position.
func (p *Player) ResetPosition() {
	p.X = config.PlayerStartX
	p.Y = config.PlayerStartY
}

// Reset restores a fresh player: start position, full lives, zero score,
// idle animation and no projectile. Held keys are kept.
func (p *Player) Reset() {
	p.ResetPosition()
	p.Lives = config.InitialLives
	p.Score = 0
	p.Visible = true
	p.destroying = false
	p.shootEdge = false
	p.shot = nil
	p.Sprite.Play(p.idle, true)
}

var _ Object = (*Player)(nil)
