package hud

import (
	"context"
	"testing"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/scene"
)

func TestBuildLivesIcons(t *testing.T) {
	lib, err := asset.LoadDefault(context.Background())
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}

	tests := []struct {
		lives int
		want  int
	}{
		{3, 3},
		{2, 2},
		{1, 1},
		{0, 0},
	}
	for _, tt := range tests {
		s := scene.New(640, 480)
		Build(View{Score: 40, Lives: tt.lives}, lib, s)
		if len(s.Sprites) != tt.want {
			t.Errorf("lives=%d: %d icons, want %d", tt.lives, len(s.Sprites), tt.want)
		}
	}

	// The rightmost icon stays put as lives drop.
	full, one := scene.New(640, 480), scene.New(640, 480)
	Build(View{Lives: 3}, lib, full)
	Build(View{Lives: 1}, lib, one)
	if full.Sprites[2].X != one.Sprites[0].X {
		t.Errorf("last icon at %v, want %v", one.Sprites[0].X, full.Sprites[2].X)
	}
	if right := full.Sprites[2].X + full.Sprites[2].Width(); right != livesRight {
		t.Errorf("icons end at %v, want %v", right, livesRight)
	}
}

func TestBuildTexts(t *testing.T) {
	s := scene.New(640, 480)
	Build(View{Score: 120, Lives: 3, Level: 2, Banner: "Game Over", Hint: "press space"}, nil, s)

	want := []string{"score: 120", "level: 2", "Game Over", "press space"}
	if len(s.Texts) != len(want) {
		t.Fatalf("texts = %+v", s.Texts)
	}
	for i, v := range want {
		if s.Texts[i].Value != v {
			t.Errorf("text %d = %q, want %q", i, s.Texts[i].Value, v)
		}
	}
	if b := s.Texts[2]; b.X != 320 || b.Y != 240 || b.Anchor != scene.AnchorCenter {
		t.Errorf("banner at (%v,%v) anchor %v", b.X, b.Y, b.Anchor)
	}
}

type missingAssets struct{}

func (missingAssets) Animation(sheet, name string) *asset.Animation { return nil }

func TestBuildWithoutPlayerSprite(t *testing.T) {
	s := scene.New(640, 480)
	Build(View{Score: 10, Lives: 3, Level: 1}, missingAssets{}, s)
	if len(s.Sprites) != 0 {
		t.Errorf("%d icons drawn without a player sprite", len(s.Sprites))
	}
	if len(s.Texts) != 2 {
		t.Errorf("texts = %+v", s.Texts)
	}
}
