// Package hud builds the score, lives and banner overlay.
package hud

import (
	"fmt"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/scene"
)

// Layout, in scene units.
const (
	scoreX, scoreY = 10.0, 10.0
	livesRight     = 630.0
	livesY         = 10.0
	lifeSpacing    = 48.0

	ScoreSize  = 24.0
	LevelSize  = 16.0
	BannerSize = 64.0
	HintSize   = 16.0
)

// View is the HUD state for one frame.
type View struct {
	Score  int
	Lives  int
	Level  int
	Banner string // Centred banner, empty for none
	Hint   string // Line below the banner
}

// Build appends the HUD to s. Life icons use the player's idle frame;
// icon i is shown while more than InitialLives-1-i lives remain.
func Build(v View, assets asset.Resolver, s *scene.Scene) {
	s.AddText(scene.Text{
		X: scoreX, Y: scoreY,
		Value:  fmt.Sprintf("score: %d", v.Score),
		Size:   ScoreSize,
		Anchor: scene.AnchorTopLeft,
		Color:  scene.White,
	})
	if v.Level > 0 {
		s.AddText(scene.Text{
			X: scoreX, Y: scoreY + ScoreSize + 6,
			Value:  fmt.Sprintf("level: %d", v.Level),
			Size:   LevelSize,
			Anchor: scene.AnchorTopLeft,
			Color:  scene.White,
		})
	}

	if assets != nil {
		if anim := assets.Animation(asset.SheetPlayer, "idle"); anim != nil && len(anim.Frames) > 0 {
			icon := anim.Frames[0]
			left := livesRight - (lifeSpacing*float64(config.InitialLives-1) + icon.Width())
			for i := 0; i < config.InitialLives; i++ {
				if v.Lives <= config.InitialLives-1-i {
					continue
				}
				s.AddSprite(scene.Sprite{
					X:     left + lifeSpacing*float64(i),
					Y:     livesY,
					Frame: icon,
					Sheet: asset.SheetPlayer,
					Anim:  "idle",
					Tint:  scene.Green,
				})
			}
		}
	}

	if v.Banner != "" {
		s.AddText(scene.Text{
			X: s.Width / 2, Y: s.Height / 2,
			Value:  v.Banner,
			Size:   BannerSize,
			Anchor: scene.AnchorCenter,
			Color:  scene.White,
		})
	}
	if v.Hint != "" {
		s.AddText(scene.Text{
			X: s.Width / 2, Y: s.Height/2 + BannerSize,
			Value:  v.Hint,
			Size:   HintSize,
			Anchor: scene.AnchorCenter,
			Color:  scene.White,
		})
	}
}
