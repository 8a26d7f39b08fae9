package web

import (
	"fmt"
	"image/color"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/scene"
)

// Message types on the wire.
const (
	TypeAssets   = "assets"
	TypeFrame    = "frame"
	TypeShutdown = "shutdown"
	TypeKey      = "key"
)

// KeyMessage is sent by the browser for every key transition.
// Code is a DOM KeyboardEvent.code such as "ArrowLeft" or "Space".
type KeyMessage struct {
	Type string `json:"type"`
	Code string `json:"code"`
	Down bool   `json:"down"`
}

// AssetsMessage carries every sprite sheet; sent once after connecting.
type AssetsMessage struct {
	Type   string         `json:"type"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Sheets []SheetMessage `json:"sheets"`
}

type SheetMessage struct {
	Name       string                      `json:"name"`
	Animations map[string]AnimationMessage `json:"animations"`
}

type AnimationMessage struct {
	FrameTime float64        `json:"frameTime"`
	Frames    []FrameMessage `json:"frames"`
}

type FrameMessage struct {
	Cols  int      `json:"cols"`
	Rows  int      `json:"rows"`
	Scale float64  `json:"scale"`
	Lines []string `json:"lines"`
}

// SceneMessage is one rendered frame.
type SceneMessage struct {
	Type    string          `json:"type"`
	State   string          `json:"state"`
	Score   int             `json:"score"`
	Lives   int             `json:"lives"`
	Level   int             `json:"level"`
	Lines   []LineMessage   `json:"lines"`
	Sprites []SpriteMessage `json:"sprites"`
	Texts   []TextMessage   `json:"texts"`
}

type LineMessage struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// SpriteMessage references a frame from the assets message by sheet,
// animation and index. W and H let the client draw a box for unknown frames.
type SpriteMessage struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Sheet string  `json:"sheet"`
	Anim  string  `json:"anim"`
	Index int     `json:"index"`
	Color string  `json:"color"`
}

type TextMessage struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Value  string  `json:"value"`
	Size   float64 `json:"size"`
	Anchor string  `json:"anchor"` // "left", "right" or "center"
	Color  string  `json:"color"`
}

// StatusMessage tells the client the server is going away.
type StatusMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewAssetsMessage encodes every sheet in lib.
func NewAssetsMessage(lib *asset.Library, width, height float64) AssetsMessage {
	msg := AssetsMessage{Type: TypeAssets, Width: width, Height: height}
	for _, sh := range lib.Sheets() {
		sm := SheetMessage{Name: sh.Name, Animations: make(map[string]AnimationMessage, len(sh.Animations))}
		for _, name := range sh.AnimationNames() {
			anim := sh.Animations[name]
			am := AnimationMessage{FrameTime: anim.FrameTime}
			for _, f := range anim.Frames {
				am.Frames = append(am.Frames, FrameMessage{Cols: f.Cols, Rows: f.Rows, Scale: f.Scale, Lines: f.Lines()})
			}
			sm.Animations[name] = am
		}
		msg.Sheets = append(msg.Sheets, sm)
	}
	return msg
}

// NewSceneMessage encodes s together with the game's counters.
func NewSceneMessage(g *game.Game, s *scene.Scene) SceneMessage {
	msg := SceneMessage{
		Type:    TypeFrame,
		State:   g.State().String(),
		Score:   g.Player().Score,
		Lives:   g.Player().Lives,
		Level:   g.Level(),
		Lines:   make([]LineMessage, 0, len(s.Lines)),
		Sprites: make([]SpriteMessage, 0, len(s.Sprites)),
		Texts:   make([]TextMessage, 0, len(s.Texts)),
	}
	for _, l := range s.Lines {
		msg.Lines = append(msg.Lines, LineMessage{
			X1: l.X1, Y1: l.Y1, X2: l.X2, Y2: l.Y2,
			Width: l.Width,
			Color: hexColor(l.Color),
		})
	}
	for _, sp := range s.Sprites {
		msg.Sprites = append(msg.Sprites, SpriteMessage{
			X: sp.X, Y: sp.Y,
			W: sp.Width(), H: sp.Height(),
			Sheet: sp.Sheet,
			Anim:  sp.Anim,
			Index: sp.Index,
			Color: hexColor(sp.Tint),
		})
	}
	for _, t := range s.Texts {
		msg.Texts = append(msg.Texts, TextMessage{
			X: t.X, Y: t.Y,
			Value:  t.Value,
			Size:   t.Size,
			Anchor: anchorName(t.Anchor),
			Color:  hexColor(t.Color),
		})
	}
	return msg
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func anchorName(a scene.Anchor) string {
	switch a {
	case scene.AnchorTopRight:
		return "right"
	case scene.AnchorCenter:
		return "center"
	}
	return "left"
}
