// Package ebitenui runs the game in an ebiten window, or a browser canvas
// when built for js/wasm.
package ebitenui

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/scene"
)

// Debug font cell size.
const (
	glyphW = 6
	glyphH = 16
)

var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyA:          input.KeyA,
	ebiten.KeyD:          input.KeyD,
	ebiten.KeyW:          input.KeyW,
	ebiten.KeyQ:          input.KeyQ,
	ebiten.KeyArrowLeft:  input.KeyArrowLeft,
	ebiten.KeyArrowRight: input.KeyArrowRight,
	ebiten.KeyArrowUp:    input.KeyArrowUp,
	ebiten.KeyArrowDown:  input.KeyArrowDown,
	ebiten.KeySpace:      input.KeySpace,
	ebiten.KeyEnter:      input.KeyEnter,
	ebiten.KeyEscape:     input.KeyEscape,
}

// Game adapts a game.Game to ebiten.Game.
type Game struct {
	game   *game.Game
	scene  *scene.Scene
	frames map[*asset.Frame]*ebiten.Image
	texts  map[string]*ebiten.Image
}

// New wraps g.
func New(g *game.Game) *Game {
	return &Game{
		game:   g,
		scene:  scene.New(config.FieldWidth, config.FieldHeight),
		frames: make(map[*asset.Frame]*ebiten.Image),
		texts:  make(map[string]*ebiten.Image),
	}
}

// Update feeds key transitions and advances the game by one tick.
func (a *Game) Update() error {
	for ek, k := range keyMap {
		if inpututil.IsKeyJustPressed(ek) {
			ev := input.Down(k)
			if ev.IsQuit() {
				return ebiten.Termination
			}
			a.game.HandleKey(ev)
		}
		if inpututil.IsKeyJustReleased(ek) {
			a.game.HandleKey(input.Up(k))
		}
	}
	a.game.Tick(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// Draw renders the current scene.
func (a *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	a.scene.Reset()
	a.game.Draw(a.scene)

	for _, l := range a.scene.Lines {
		vector.StrokeLine(screen,
			float32(l.X1), float32(l.Y1), float32(l.X2), float32(l.Y2),
			float32(l.Width), l.Color, false)
	}

	for _, sp := range a.scene.Sprites {
		if sp.Frame == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(sp.Frame.Scale, sp.Frame.Scale)
		op.GeoM.Translate(sp.X, sp.Y)
		op.ColorScale.ScaleWithColor(sp.Tint)
		screen.DrawImage(a.frameImage(sp.Frame), op)
	}

	for _, t := range a.scene.Texts {
		img := a.textImage(t.Value)
		scale := max(t.Size/glyphH, 1)
		w := float64(img.Bounds().Dx()) * scale
		h := float64(img.Bounds().Dy()) * scale
		x, y := t.Origin(w, h)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(t.Color)
		screen.DrawImage(img, op)
	}
}

// Layout fixes the logical screen to the playfield.
func (a *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.FieldWidth, config.FieldHeight
}

// frameImage returns the cached white mask image for f.
func (a *Game) frameImage(f *asset.Frame) *ebiten.Image {
	if img, ok := a.frames[f]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(f.Image(color.White))
	a.frames[f] = img
	return img
}

// textImage returns the cached white rendering of s in the debug font.
func (a *Game) textImage(s string) *ebiten.Image {
	if img, ok := a.texts[s]; ok {
		return img
	}
	img := ebiten.NewImage(max(len(s)*glyphW, 1), glyphH)
	ebitenutil.DebugPrint(img, s)
	// Score text changes every hit; keep the cache bounded.
	if len(a.texts) > 64 {
		clear(a.texts)
	}
	a.texts[s] = img
	return img
}
