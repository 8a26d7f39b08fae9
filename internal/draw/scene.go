package draw

import (
	"unicode/utf8"

	"github.com/tomz197/invaders/internal/scene"
)

// DrawScene rasterises the scene's lines and sprites onto the canvas.
// The canvas is cleared first.
func DrawScene(c *Canvas, s *scene.Scene) {
	c.Clear()

	for _, l := range s.Lines {
		c.SetPen(ColorOf(l.Color))
		half := l.Width / 2
		if l.Y1 == l.Y2 {
			c.FillRect(min(l.X1, l.X2), l.Y1-half, max(l.X1, l.X2), l.Y1+half)
			continue
		}
		c.DrawLine(Point{X: l.X1, Y: l.Y1}, Point{X: l.X2, Y: l.Y2})
	}

	for _, sp := range s.Sprites {
		f := sp.Frame
		if f == nil {
			continue
		}
		c.SetPen(ColorOf(sp.Tint))
		for row := 0; row < f.Rows; row++ {
			for col := 0; col < f.Cols; col++ {
				if !f.At(col, row) {
					continue
				}
				x := sp.X + float64(col)*f.Scale
				y := sp.Y + float64(row)*f.Scale
				c.FillRect(x, y, x+f.Scale, y+f.Scale)
			}
		}
	}
}

// DrawTexts writes the scene's text nodes at their terminal positions.
// Call after Canvas.Render so text sits on top.
func DrawTexts(cw *ChunkWriter, c *Canvas, s *scene.Scene) {
	for _, t := range s.Texts {
		col, row := c.LogicalToTerminal(t.X, t.Y)
		n := utf8.RuneCountInString(t.Value)
		switch t.Anchor {
		case scene.AnchorTopRight:
			col -= n
		case scene.AnchorCenter:
			col -= n / 2
		}
		col = max(col, 1)
		row = max(row, 1)

		cw.WriteColoredAt(col, row, ColorOf(t.Color), t.Value)
	}
}
