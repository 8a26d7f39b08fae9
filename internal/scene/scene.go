// Package scene is the flat 2D scene list the game emits each frame and the
// renderers consume.
package scene

import (
	"image/color"

	"github.com/tomz197/invaders/internal/asset"
)

// Anchor selects which point of a text node X/Y refers to.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopRight
	AnchorCenter
)

// Common colours.
var (
	Green = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
	White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Red   = color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff}
)

// Sprite is one visible animation frame at a top-left position.
type Sprite struct {
	X, Y  float64
	Frame *asset.Frame
	Sheet string
	Anim  string
	Index int // Frame index within the animation
	Tint  color.RGBA
}

// Width returns the sprite width in scene units.
func (s Sprite) Width() float64 {
	if s.Frame == nil {
		return 0
	}
	return s.Frame.Width()
}

// Height returns the sprite height in scene units.
func (s Sprite) Height() float64 {
	if s.Frame == nil {
		return 0
	}
	return s.Frame.Height()
}

// Line is a straight vector segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          color.RGBA
}

// Text is a text node.
type Text struct {
	X, Y   float64
	Value  string
	Size   float64 // Font size in scene units
	Anchor Anchor
	Color  color.RGBA
}

// Origin returns the top-left corner of a text node rendered at the given
// width and height.
func (t Text) Origin(width, height float64) (x, y float64) {
	switch t.Anchor {
	case AnchorTopRight:
		return t.X - width, t.Y
	case AnchorCenter:
		return t.X - width/2, t.Y - height/2
	}
	return t.X, t.Y
}

// Scene holds everything drawn in one frame, in paint order:
// lines first, then sprites, then text.
type Scene struct {
	Width, Height float64
	Lines         []Line
	Sprites       []Sprite
	Texts         []Text
}

// New creates an empty scene of the given size.
func New(width, height float64) *Scene {
	return &Scene{Width: width, Height: height}
}

// Reset empties the scene, keeping allocated capacity.
func (s *Scene) Reset() {
	s.Lines = s.Lines[:0]
	s.Sprites = s.Sprites[:0]
	s.Texts = s.Texts[:0]
}

// AddSprite appends a sprite.
func (s *Scene) AddSprite(sp Sprite) {
	s.Sprites = append(s.Sprites, sp)
}

// AddLine appends a line.
func (s *Scene) AddLine(l Line) {
	s.Lines = append(s.Lines, l)
}

// AddText appends a text node.
func (s *Scene) AddText(t Text) {
	s.Texts = append(s.Texts, t)
}
