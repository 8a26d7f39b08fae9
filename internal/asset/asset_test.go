package asset

import (
	"context"
	"image/color"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadDefault(t *testing.T) {
	lib, err := LoadDefault(context.Background())
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}

	want := map[string][]string{
		SheetPlayer:      {"destroy", "idle"},
		SheetEnemies:     {"alien_1", "alien_2", "alien_3", "destroy"},
		SheetProjectiles: {"player_proj", "proj_1", "proj_2", "proj_3"},
	}
	for sheet, anims := range want {
		s, ok := lib.Sheet(sheet)
		if !ok {
			t.Fatalf("sheet %q missing", sheet)
		}
		got := strings.Join(s.AnimationNames(), ",")
		if got != strings.Join(anims, ",") {
			t.Errorf("sheet %q animations = %s, want %v", sheet, got, anims)
		}
	}

	// Idle enemy animations need two frames for the march toggle.
	for _, name := range []string{"alien_1", "alien_2", "alien_3"} {
		if n := len(lib.Animation(SheetEnemies, name).Frames); n != 2 {
			t.Errorf("%s has %d frames, want 2", name, n)
		}
	}

	// Per-animation scale overrides the sheet scale.
	pp := lib.Animation(SheetProjectiles, "player_proj").Frames[0]
	if pp.Width() != 3 || pp.Height() != 12 {
		t.Errorf("player_proj size = %vx%v, want 3x12", pp.Width(), pp.Height())
	}
	ep := lib.Animation(SheetProjectiles, "proj_1").Frames[0]
	if ep.Width() != 6 || ep.Height() != 12 {
		t.Errorf("proj_1 size = %vx%v, want 6x12", ep.Width(), ep.Height())
	}
}

func TestLoadIsBestEffort(t *testing.T) {
	fsys := fstest.MapFS{
		"good.json":   {Data: []byte(`{"name":"good","scale":1,"animations":{"a":{"frames":[["#."]]}}}`)},
		"broken.json": {Data: []byte(`{"name":`)},
	}

	lib, err := Load(context.Background(), fsys, "good", "broken", "missing")
	if err == nil {
		t.Fatal("expected joined error for broken and missing sheets")
	}
	if !strings.Contains(err.Error(), "broken") || !strings.Contains(err.Error(), "missing") {
		t.Errorf("error should mention both failures: %v", err)
	}
	if _, ok := lib.Sheet("good"); !ok {
		t.Error("good sheet should still be loaded")
	}
}

func TestAnimationPlaceholder(t *testing.T) {
	lib := NewLibrary()

	a := lib.Animation("nope", "idle")
	if a == nil || len(a.Frames) != 1 {
		t.Fatalf("placeholder = %+v", a)
	}
	if a.Sheet != "nope" || a.Name != "idle" {
		t.Errorf("placeholder names = %s/%s", a.Sheet, a.Name)
	}
	if lib.Animation("nope", "idle") != a {
		t.Error("placeholder should be stable across lookups")
	}
}

func TestParseRejectsRaggedFrames(t *testing.T) {
	_, err := Parse([]byte(`{"name":"x","animations":{"a":{"frames":[["##","#"]]}}}`))
	if err == nil {
		t.Fatal("expected error for ragged rows")
	}
}

func TestFrameLinesRoundTrip(t *testing.T) {
	rows := []string{"#..#", ".##.", "#..#"}
	f, err := parseFrame(rows, 2)
	if err != nil {
		t.Fatalf("parseFrame: %v", err)
	}
	if got := f.Lines(); strings.Join(got, "/") != strings.Join(rows, "/") {
		t.Errorf("Lines = %v, want %v", got, rows)
	}
	if !f.At(0, 0) || f.At(1, 0) || f.At(-1, 0) || f.At(0, 3) {
		t.Error("At returned unexpected values")
	}
	if f.Width() != 8 || f.Height() != 6 {
		t.Errorf("size = %vx%v, want 8x6", f.Width(), f.Height())
	}
}

func TestFrameImage(t *testing.T) {
	f, err := parseFrame([]string{"#.", ".#"}, 3)
	if err != nil {
		t.Fatalf("parseFrame: %v", err)
	}
	img := f.Image(color.White)
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a == 0 {
		t.Error("set cell is transparent")
	}
	if _, _, _, a := img.At(1, 0).RGBA(); a != 0 {
		t.Error("clear cell is opaque")
	}
}
