package scene

import "testing"

func TestTextOrigin(t *testing.T) {
	tests := []struct {
		anchor Anchor
		x, y   float64
	}{
		{AnchorTopLeft, 100, 50},
		{AnchorTopRight, 60, 50},
		{AnchorCenter, 80, 40},
	}
	for _, tt := range tests {
		txt := Text{X: 100, Y: 50, Anchor: tt.anchor}
		x, y := txt.Origin(40, 20)
		if x != tt.x || y != tt.y {
			t.Errorf("anchor %d: origin (%v, %v), want (%v, %v)", tt.anchor, x, y, tt.x, tt.y)
		}
	}
}

func TestSceneReset(t *testing.T) {
	s := New(640, 480)
	s.AddLine(Line{})
	s.AddSprite(Sprite{})
	s.AddText(Text{Value: "x"})
	s.Reset()
	if len(s.Lines)+len(s.Sprites)+len(s.Texts) != 0 {
		t.Error("Reset left nodes behind")
	}
	if (Sprite{}).Width() != 0 {
		t.Error("sprite without frame should have zero width")
	}
}
