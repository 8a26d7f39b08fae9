package draw

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/scene"
)

func TestColorOf(t *testing.T) {
	tests := []struct {
		in   color.RGBA
		want Color
	}{
		{scene.Green, ColorGreen},
		{scene.White, ColorWhite},
		{color.RGBA{R: 250, G: 10, B: 10, A: 255}, ColorRed},
		{color.RGBA{}, ColorWhite},
	}
	for _, tt := range tests {
		if got := ColorOf(tt.in); got != tt.want {
			t.Errorf("ColorOf(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFillRectCoversAtLeastOnePixel(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100) // 10x10 pixels, 10 units per pixel
	c.FillRect(42, 42, 43, 43)
	if c.At(4, 4) == ColorNone {
		t.Error("tiny rect should still set a pixel")
	}

	c.Clear()
	c.FillRect(0, 0, 20, 10)
	if c.At(0, 0) == ColorNone || c.At(1, 0) == ColorNone || c.At(2, 0) != ColorNone || c.At(0, 1) != ColorNone {
		t.Error("FillRect covered the wrong pixels")
	}
}

func TestRenderOnlyEmitsChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetPen(ColorGreen)
	c.setPixel(0, 0)
	c.setPixel(0, 1)

	var buf bytes.Buffer
	c.Render(&buf)
	first := buf.String()
	if !strings.Contains(first, string(BlockFull)) || !strings.Contains(first, "\033[32m") {
		t.Fatalf("first render = %q", first)
	}

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("unchanged canvas rendered %q", buf.String())
	}

	// Clearing a pixel emits a blank cell.
	c.Clear()
	c.Render(&buf)
	if !strings.Contains(buf.String(), "\033[1;1H ") {
		t.Fatalf("cleared cell not emitted: %q", buf.String())
	}

	buf.Reset()
	c.ForceRedraw()
	c.SetPen(ColorWhite)
	c.setPixel(3, 3)
	c.Render(&buf)
	if !strings.Contains(buf.String(), string(BlockLowerHalf)) {
		t.Errorf("forced render = %q", buf.String())
	}
}

func TestDrawScene(t *testing.T) {
	s := scene.New(8, 8)
	s.AddSprite(scene.Sprite{
		X: 0, Y: 0,
		Frame: &asset.Frame{Cols: 2, Rows: 1, Scale: 1, Mask: []bool{true, false}},
		Tint:  scene.Green,
	})
	s.AddLine(scene.Line{X1: 0, Y1: 6, X2: 8, Y2: 6, Width: 1, Color: scene.White})

	c := NewCanvas(8, 4) // 8x8 pixels, 1:1
	DrawScene(c, s)

	if c.At(0, 0) != ColorGreen || c.At(1, 0) != ColorNone {
		t.Error("sprite mask not rasterised")
	}
	if c.At(4, 5) != ColorWhite && c.At(4, 6) != ColorWhite {
		t.Error("floor line missing")
	}
}

func TestDrawTextsAnchors(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	c := NewScaledCanvas(80, 24, 640, 480)

	s := scene.New(640, 480)
	s.AddText(scene.Text{X: 320, Y: 240, Value: "Game Over", Anchor: scene.AnchorCenter})
	DrawTexts(cw, c, s)
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	// 320 logical -> pixel 40 -> column 41, minus half of 9 runes.
	if !strings.Contains(out.String(), "\033[13;37HGame Over") {
		t.Errorf("output = %q", out.String())
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, oc, or := ClampTermSize(200, 70, 160, 60)
	if w != 160 || h != 60 || oc != 20 || or != 5 {
		t.Errorf("got %d %d %d %d", w, h, oc, or)
	}
	w, h, oc, or = ClampTermSize(80, 24, 160, 60)
	if w != 80 || h != 24 || oc != 0 || or != 0 {
		t.Errorf("got %d %d %d %d", w, h, oc, or)
	}
}

type countingWriter struct {
	writes []int
	bytes.Buffer
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, len(p))
	return w.Buffer.Write(p)
}

func TestChunkWriterColors(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)

	cw.SetColor(ColorRed)
	cw.WriteAt(1, 1, "a")
	cw.SetColor(ColorRed)
	cw.WriteAt(2, 1, "b")
	cw.ResetColor()
	cw.ResetColor()
	cw.WriteColoredAt(1, 2, ColorNone, "c")
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "\033[31m\033[2;3Ha\033[2;4Hb\033[0m\033[3;3Hc"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestChunkWriterFlushChunks(t *testing.T) {
	var out countingWriter
	cw := NewChunkWriter(&out, 0, 0)
	cw.Write(bytes.Repeat([]byte("x"), maxChunkSize*2+10))
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(out.writes) != 3 || out.writes[0] != maxChunkSize || out.writes[2] != 10 {
		t.Errorf("writes = %v", out.writes)
	}

	// The buffer is empty after a flush.
	out.writes = nil
	if err := cw.Flush(); err != nil || len(out.writes) != 0 {
		t.Errorf("second flush wrote %v, err %v", out.writes, err)
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetOffset(1, 1)
	var buf bytes.Buffer
	c.RenderBorder(&buf)
	got := buf.String()
	for _, want := range []string{"\033[1;1H┌────┐", "\033[4;1H└────┘", "\033[2;1H│", "\033[3;6H│"} {
		if !strings.Contains(got, want) {
			t.Errorf("border missing %q in %q", want, got)
		}
	}
}
