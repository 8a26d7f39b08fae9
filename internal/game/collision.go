package game

import (
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// checkCollisions resolves every active projectile against the opposing
// side. A hit requires the projectile box to lie entirely within the
// target box; partial overlap does not count.
func (g *Game) checkCollisions() {
	for _, p := range g.projectiles.Active() {
		if !p.Active {
			continue
		}
		switch p.Side {
		case object.SidePlayer:
			g.checkProjectileEnemies(p)
		case object.SideEnemy:
			g.checkProjectilePlayer(p)
		}
	}
}

// checkProjectileEnemies tests a player shot against alive enemies in
// formation order; the first match wins.
func (g *Game) checkProjectileEnemies(p *object.Projectile) {
	box := p.Bounds()
	for _, e := range g.formation.Enemies {
		if !e.Alive {
			continue
		}
		if !g.formation.Bounds(e).Contains(box) {
			continue
		}
		g.formation.Hit(e)
		g.projectiles.Hit(p)
		g.player.AddScore(config.ScorePerEnemy)
		g.emit(EventEnemyHit)
		g.emit(EventScoreChanged)
		return
	}
}

// checkProjectilePlayer tests an enemy shot against the player.
func (g *Game) checkProjectilePlayer(p *object.Projectile) {
	if g.state != StateOK || g.player.Destroying() {
		return
	}
	if !g.player.Bounds().Contains(p.Bounds()) {
		return
	}
	g.projectiles.Hit(p)
	g.hitPlayer()
}

// hitPlayer takes a life, clears every projectile in flight and waits for
// the destroy animation.
func (g *Game) hitPlayer() {
	g.player.Hit()
	g.projectiles.Reset()
	g.emit(EventPlayerHit)
	g.emit(EventLivesChanged)
	g.setState(StatePlayerHit)
}
