package object

import (
	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/scene"
)

// Enemy is one alien of the formation. X/Y of the embedded Actor are
// relative to the formation offset.
type Enemy struct {
	Actor
	Kind  string // Idle animation name
	Alive bool

	idle  *asset.Animation
	dying bool
}

// Dying reports whether the enemy is playing its destroy animation.
func (e *Enemy) Dying() bool {
	return e.dying
}

// footprint returns the size of the enemy's idle frame. The formation
// extent uses it so that wider destroy frames do not move the edges.
func (e *Enemy) footprint() (w, h float64) {
	if e.idle != nil && len(e.idle.Frames) > 0 {
		return e.idle.Frames[0].Width(), e.idle.Frames[0].Height()
	}
	return e.Width(), e.Height()
}

// Formation is the grid of enemies moving as one unit.
type Formation struct {
	X, Y float64 // Offset of the grid origin
	Dir  float64 // +1 right, -1 left

	Enemies []*Enemy // Formation order: column by column, top to bottom

	stepTimer float64
	shotTimer float64
	alive     int
	cleared   bool

	destroy *asset.Animation
}

// enemyKind returns the idle animation of a formation row.
func enemyKind(row int) string {
	switch {
	case row < 2:
		return "alien_1"
	case row < 4:
		return "alien_2"
	default:
		return "alien_3"
	}
}

// NewFormation builds the full grid at the start offset.
func NewFormation(assets asset.Resolver) *Formation {
	f := &Formation{
		destroy: resolve(assets, asset.SheetEnemies, "destroy"),
	}
	for col := 0; col < config.FormationColumns; col++ {
		for row := 0; row < config.FormationRows; row++ {
			kind := enemyKind(row)
			e := &Enemy{
				Kind: kind,
				idle: resolve(assets, asset.SheetEnemies, kind),
			}
			e.X = float64(col) * config.FormationCellW
			e.Y = float64(row) * config.FormationCellH
			e.Tint = scene.White
			f.Enemies = append(f.Enemies, e)
		}
	}
	f.Reset()
	return f
}

// Alive returns the number of enemies not yet hit.
func (f *Formation) Alive() int {
	return f.alive
}

// Width returns the distance from the grid origin to the right edge of the
// rightmost visible enemy.
func (f *Formation) Width() float64 {
	w := 0.0
	for _, e := range f.Enemies {
		if e.Visible {
			ew, _ := e.footprint()
			w = max(w, e.X+ew)
		}
	}
	return w
}

// Height returns the distance from the grid origin to the bottom edge of
// the lowest visible enemy.
func (f *Formation) Height() float64 {
	h := 0.0
	for _, e := range f.Enemies {
		if e.Visible {
			_, eh := e.footprint()
			h = max(h, e.Y+eh)
		}
	}
	return h
}

// Bounds returns the scene-space box of enemy e.
func (f *Formation) Bounds(e *Enemy) physics.Rect {
	return e.Bounds().Translate(f.X, f.Y)
}

// Update marches the formation, fires enemy shots and advances destroy
// animations.
func (f *Formation) Update(ctx UpdateContext) {
	dt := ctx.Seconds()

	f.stepTimer -= dt
	if f.stepTimer <= 0 {
		f.stepTimer += config.FormationStepInterval
		if f.stepTimer <= 0 {
			f.stepTimer = config.FormationStepInterval
		}
		f.step(ctx)
	}

	f.shotTimer -= dt
	if f.shotTimer <= 0 {
		f.shoot(ctx)
		f.shotTimer = config.EnemyShotMinDelay
		if ctx.Rand != nil {
			f.shotTimer += ctx.Rand.Float64() * (config.EnemyShotMaxDelay - config.EnemyShotMinDelay)
		}
	}

	f.advanceDestroyed(ctx, dt)
}

// step shifts the grid horizontally, toggles the march frame and handles
// the play-field edges.
func (f *Formation) step(ctx UpdateContext) {
	f.X += f.Dir * config.FormationStepX
	for _, e := range f.Enemies {
		if e.Alive {
			e.Sprite.Toggle()
		}
	}
	ctx.Signals.Push(Signal{Kind: SignalFormationStepped})

	right := config.FieldRight - f.Width()
	switch {
	case f.X < config.FieldLeft:
		f.X = config.FieldLeft
		f.Dir = 1
		f.stepDown(ctx)
	case f.X > right:
		f.X = max(right, config.FieldLeft)
		f.Dir = -1
		f.stepDown(ctx)
	}
}

// stepDown lowers the grid and raises SignalFormationLanded when its
// bottom edge is within the threshold of the floor.
func (f *Formation) stepDown(ctx UpdateContext) {
	f.Y += config.FormationStepY
	if config.FloorY-(f.Y+f.Height()) < config.FloorThreshold {
		ctx.Signals.Push(Signal{Kind: SignalFormationLanded})
	}
}

// shoot fires from the bottom-centre of a random alive enemy.
func (f *Formation) shoot(ctx UpdateContext) {
	if f.alive == 0 || ctx.Spawner == nil {
		return
	}
	n := 0
	if ctx.Rand != nil {
		n = ctx.Rand.Intn(f.alive)
	}
	for _, e := range f.Enemies {
		if !e.Alive {
			continue
		}
		if n == 0 {
			b := f.Bounds(e)
			ctx.Spawner.Instantiate(b.MinX+b.Width()/2, b.MaxY, SideEnemy, ctx.Rand)
			ctx.Signals.Push(Signal{Kind: SignalEnemyFired, Side: SideEnemy})
			return
		}
		n--
	}
}

func (f *Formation) advanceDestroyed(ctx UpdateContext, dt float64) {
	dying := 0
	for _, e := range f.Enemies {
		if !e.dying {
			continue
		}
		e.Sprite.Advance(dt)
		if e.Sprite.Done() {
			e.dying = false
			e.Visible = false
			continue
		}
		dying++
	}

	if f.alive == 0 && dying == 0 && !f.cleared {
		f.cleared = true
		ctx.Signals.Push(Signal{Kind: SignalFormationCleared})
	}
}

// Hit kills e and starts its destroy animation. The enemy is hidden when
// the animation completes; SignalFormationCleared follows once no enemy is
// alive or dying.
func (f *Formation) Hit(e *Enemy) {
	if !e.Alive {
		return
	}
	e.Alive = false
	e.dying = true
	e.Sprite.Play(f.destroy, false)
	f.alive--
}

// Reset restores every enemy and puts the grid back at the start offset.
func (f *Formation) Reset() {
	f.X = config.FormationStartX
	f.Y = config.FormationStartY
	f.Dir = 1
	f.stepTimer = config.FormationStepInterval
	f.shotTimer = config.EnemyShotInitialDelay
	f.cleared = false

	for _, e := range f.Enemies {
		e.Alive = true
		e.Visible = true
		e.dying = false
		e.Sprite.Play(e.idle, true)
	}
	f.alive = len(f.Enemies)
}

// Draw appends every visible enemy to the scene.
func (f *Formation) Draw(s *scene.Scene) {
	for _, e := range f.Enemies {
		e.drawAt(s, f.X+e.X, f.Y+e.Y)
	}
}

var _ Object = (*Formation)(nil)
