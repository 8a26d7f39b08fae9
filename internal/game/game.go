// Package game ties the player, the enemy formation and the projectiles
// together once per tick, resolves collisions and drives the game state.
package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/hud"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/scene"
)

// Game is one independent play session. It is not safe for concurrent use;
// front-ends drive it from a single goroutine.
type Game struct {
	state      State
	level      int
	transition float64 // Seconds left in PLAYER_WIN

	assets      asset.Resolver
	player      *object.Player
	formation   *object.Formation
	projectiles *object.ProjectileManager
	signals     object.Signals

	rng       *rand.Rand
	listeners []Listener
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source used for enemy shots.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		g.rng = r
	}
}

// WithListener subscribes l before the initial reset.
func WithListener(l Listener) Option {
	return func(g *Game) {
		g.listeners = append(g.listeners, l)
	}
}

// New creates a game at level 1 in StateOK.
func New(assets asset.Resolver, opts ...Option) *Game {
	g := &Game{
		assets:      assets,
		player:      object.NewPlayer(assets),
		formation:   object.NewFormation(assets),
		projectiles: object.NewProjectileManager(assets),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.Reset()
	return g
}

// Subscribe adds a listener.
func (g *Game) Subscribe(l Listener) {
	g.listeners = append(g.listeners, l)
}

// State returns the current state.
func (g *Game) State() State { return g.state }

// Level returns the current level, starting at 1.
func (g *Game) Level() int { return g.level }

// Player returns the player.
func (g *Game) Player() *object.Player { return g.player }

// Formation returns the enemy formation.
func (g *Game) Formation() *object.Formation { return g.formation }

// Projectiles returns the projectile manager.
func (g *Game) Projectiles() *object.ProjectileManager { return g.projectiles }

// TransitionRemaining returns the seconds left before the next level starts.
func (g *Game) TransitionRemaining() float64 {
	if g.state != StatePlayerWin {
		return 0
	}
	return g.transition
}

// HandleKey feeds a key transition to the game. In GAME_OVER a shoot key
// press restarts; every other key is only recorded.
func (g *Game) HandleKey(ev input.Event) {
	g.player.ProcessInput(ev)

	if g.state == StateGameOver && ev.Down && object.ActionFor(ev.Key) == object.ActionShoot {
		g.Reset()
	}
}

// Tick advances the game by dt, in steps no longer than one target frame
// so projectiles never skip over a target.
func (g *Game) Tick(dt time.Duration) {
	if dt > config.MaxFrameDelta {
		dt = config.MaxFrameDelta
	}
	for dt > 0 {
		step := min(dt, config.TargetFrameTime)
		g.step(step)
		dt -= step
	}
}

func (g *Game) step(dt time.Duration) {
	ctx := object.UpdateContext{
		Delta:   dt,
		Rand:    g.rng,
		Signals: &g.signals,
		Spawner: g.projectiles,
	}

	switch g.state {
	case StateOK:
		g.player.Update(ctx)
		g.formation.Update(ctx)
		g.projectiles.Update(ctx)
		g.handleSignals()
		if g.state == StateOK {
			g.checkCollisions()
		}

	case StatePlayerHit:
		g.player.Update(ctx)
		g.handleSignals()

	case StatePlayerWin:
		g.player.ConsumeShoot()
		g.transition -= dt.Seconds()
		if g.transition <= 0 {
			g.nextLevel()
		}

	case StateGameOver:
		g.player.ConsumeShoot()
	}
}

// handleSignals applies what the objects reported during update.
func (g *Game) handleSignals() {
	for _, s := range g.signals.Drain() {
		switch s.Kind {
		case object.SignalPlayerRestored:
			if g.state == StatePlayerHit {
				g.setState(StateOK)
			}
		case object.SignalPlayerDied:
			g.setState(StateGameOver)
		case object.SignalFormationLanded:
			if g.state == StateOK {
				g.setState(StateGameOver)
			}
		case object.SignalFormationCleared:
			if g.state == StateOK {
				g.transition = config.LevelTransitionSeconds
				g.setState(StatePlayerWin)
			}
		case object.SignalPlayerFired:
			g.emit(EventPlayerFired)
		case object.SignalEnemyFired:
			g.emit(EventEnemyFired)
		case object.SignalFormationStepped:
			g.emit(EventFormationStepped)
		}
	}
}

// nextLevel repositions every actor for a new level. Score and lives carry over.
func (g *Game) nextLevel() {
	g.level++
	g.transition = 0
	g.player.ResetPosition()
	g.formation.Reset()
	g.projectiles.Reset()
	g.signals.Drain()
	g.setState(StateOK)
	g.emit(EventLevelStarted)
}

// Reset restarts from level 1: full lives, zero score, no projectiles and
// the formation at its start offset. Calling it repeatedly is the same as
// calling it once.
func (g *Game) Reset() {
	g.player.Reset()
	g.formation.Reset()
	g.projectiles.Reset()
	g.signals.Drain()
	g.level = 1
	g.transition = 0
	g.setState(StateOK)
	g.emit(EventScoreChanged)
	g.emit(EventLivesChanged)
	g.emit(EventLevelStarted)
}

func (g *Game) setState(s State) {
	if g.state == s {
		return
	}
	from := g.state
	g.state = s
	g.notify(Event{Type: EventStateChanged, From: from, To: s})
}

func (g *Game) emit(t EventType) {
	g.notify(Event{Type: t, To: g.state})
}

func (g *Game) notify(e Event) {
	e.Score = g.player.Score
	e.Lives = g.player.Lives
	e.Level = g.level
	for _, l := range g.listeners {
		l.OnEvent(e)
	}
}

// View returns the HUD state for the current frame.
func (g *Game) View() hud.View {
	v := hud.View{
		Score: g.player.Score,
		Lives: g.player.Lives,
		Level: g.level,
	}
	switch g.state {
	case StateGameOver:
		v.Banner = "Game Over"
		v.Hint = "press space to restart"
	case StatePlayerWin:
		v.Banner = "Level Cleared"
		v.Hint = "get ready"
	}
	return v
}

// Draw appends the whole frame to s: floor, enemies, player, projectiles
// and the HUD.
func (g *Game) Draw(s *scene.Scene) {
	s.AddLine(scene.Line{
		X1: config.FieldLeft, Y1: config.FloorY,
		X2: config.FieldRight, Y2: config.FloorY,
		Width: config.FloorWidth,
		Color: scene.Green,
	})
	g.formation.Draw(s)
	g.player.Draw(s)
	g.projectiles.Draw(s)
	hud.Build(g.View(), g.assets, s)
}
