package object

import (
	"fmt"
	"math/rand"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/scene"
)

// Side is the actor category that owns a projectile.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

func (s Side) String() string {
	if s == SidePlayer {
		return "player"
	}
	return "enemy"
}

// Direction returns the vertical direction of projectiles fired by s:
// -1 (up) for the player, +1 (down) for enemies.
func (s Side) Direction() float64 {
	if s == SidePlayer {
		return -1
	}
	return 1
}

// Projectile is a bullet moving straight up or down.
type Projectile struct {
	Actor
	Dir    float64 // -1 up, +1 down
	Side   Side
	Active bool
}

// ProjectileManager owns every projectile in flight.
type ProjectileManager struct {
	assets asset.Resolver
	list   []*Projectile
}

// NewProjectileManager creates an empty manager resolving sprites from assets.
func NewProjectileManager(assets asset.Resolver) *ProjectileManager {
	return &ProjectileManager{assets: assets}
}

// Instantiate creates and registers a projectile. (x, y) is the muzzle: the
// projectile is centred on x, with its bottom edge at y for the player and
// its top edge at y for enemies. Enemy shots pick one of the proj_N
// variants at random.
func (m *ProjectileManager) Instantiate(x, y float64, side Side, rng *rand.Rand) *Projectile {
	name := "player_proj"
	if side == SideEnemy {
		n := 1
		if rng != nil {
			n = rng.Intn(config.EnemyShotKinds) + 1
		}
		name = fmt.Sprintf("proj_%d", n)
	}

	p := &Projectile{
		Dir:    side.Direction(),
		Side:   side,
		Active: true,
	}
	p.Visible = true
	if side == SidePlayer {
		p.Tint = scene.Green
	} else {
		p.Tint = scene.White
	}
	p.Sprite.Play(resolve(m.assets, asset.SheetProjectiles, name), true)

	p.X = x - p.Width()/2
	if side == SidePlayer {
		p.Y = y - p.Height()
	} else {
		p.Y = y
	}

	m.list = append(m.list, p)
	return p
}

// Update moves every active projectile. A projectile whose bottom edge
// leaves [0, FloorY] is removed and a SignalProjectileExpired is raised.
func (m *ProjectileManager) Update(ctx UpdateContext) {
	dt := ctx.Seconds()

	for _, p := range m.list {
		if !p.Active {
			continue
		}
		p.Y += p.Dir * config.ProjectileSpeed * dt
		p.Sprite.Advance(dt)

		bottom := p.Y + p.Height()
		if bottom < 0 || bottom > config.FloorY {
			p.Active = false
			ctx.Signals.Push(Signal{Kind: SignalProjectileExpired, Side: p.Side})
		}
	}
	m.compact()
}

// Hit consumes p. It is dropped from the list on the next Update, so
// callers may keep iterating Active while resolving hits.
func (m *ProjectileManager) Hit(p *Projectile) {
	p.Active = false
}

// Reset removes every projectile. Removed projectiles become inactive,
// which also releases the player's single-shot lock.
func (m *ProjectileManager) Reset() {
	for _, p := range m.list {
		p.Active = false
	}
	m.list = m.list[:0]
}

// Active returns the projectiles in flight, in creation order. Entries hit
// since the last Update are still listed with Active == false.
// The slice is only valid until the next Update or Reset.
func (m *ProjectileManager) Active() []*Projectile {
	return m.list
}

// Count returns the number of projectiles of side in flight.
func (m *ProjectileManager) Count(side Side) int {
	n := 0
	for _, p := range m.list {
		if p.Active && p.Side == side {
			n++
		}
	}
	return n
}

// Draw appends every projectile to the scene.
func (m *ProjectileManager) Draw(s *scene.Scene) {
	for _, p := range m.list {
		if p.Active {
			p.Draw(s)
		}
	}
}

// compact drops inactive projectiles, preserving order.
func (m *ProjectileManager) compact() {
	kept := m.list[:0]
	for _, p := range m.list {
		if p.Active {
			kept = append(kept, p)
		}
	}
	clear(m.list[len(kept):])
	m.list = kept
}

var (
	_ Object  = (*ProjectileManager)(nil)
	_ Spawner = (*ProjectileManager)(nil)
)
