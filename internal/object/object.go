package object

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/scene"
)

// Spawner allows objects to fire projectiles during update.
type Spawner interface {
	Instantiate(x, y float64, side Side, rng *rand.Rand) *Projectile
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Rand    *rand.Rand
	Signals *Signals
	Spawner Spawner
}

// Seconds returns the tick delta in seconds.
func (ctx UpdateContext) Seconds() float64 {
	return ctx.Delta.Seconds()
}

// Object is an updatable and drawable game entity.
type Object interface {
	// Update advances the object by one tick.
	Update(ctx UpdateContext)

	// Draw appends the object's sprites to the scene.
	Draw(s *scene.Scene)
}

// Actor is the common part of every sprite-backed entity: a top-left
// position, a visibility flag and the animation it currently shows.
type Actor struct {
	X, Y    float64
	Visible bool
	Sprite  Playback
	Tint    color.RGBA
}

// Width returns the width of the current frame.
func (a *Actor) Width() float64 {
	if f := a.Sprite.Frame(); f != nil {
		return f.Width()
	}
	return 0
}

// Height returns the height of the current frame.
func (a *Actor) Height() float64 {
	if f := a.Sprite.Frame(); f != nil {
		return f.Height()
	}
	return 0
}

// Bounds returns the actor's axis-aligned box in scene coordinates.
func (a *Actor) Bounds() physics.Rect {
	return physics.NewRect(a.X, a.Y, a.Width(), a.Height())
}

// Draw appends the actor's current frame to the scene if it is visible.
func (a *Actor) Draw(s *scene.Scene) {
	a.drawAt(s, a.X, a.Y)
}

func (a *Actor) drawAt(s *scene.Scene, x, y float64) {
	f := a.Sprite.Frame()
	if !a.Visible || f == nil {
		return
	}
	sp := scene.Sprite{
		X:     x,
		Y:     y,
		Frame: f,
		Index: a.Sprite.Index,
		Tint:  a.Tint,
	}
	if anim := a.Sprite.Anim; anim != nil {
		sp.Sheet = anim.Sheet
		sp.Anim = anim.Name
	}
	s.AddSprite(sp)
}

// resolve looks up an animation; a nil resolver yields nil.
func resolve(r asset.Resolver, sheet, name string) *asset.Animation {
	if r == nil {
		return nil
	}
	return r.Animation(sheet, name)
}
