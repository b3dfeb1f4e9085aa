package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"mathdefense/internal/game"
)

// Grid is a game.Surface that scales the playing field onto the
// character cells of a tcell screen.
type Grid struct {
	screen tcell.Screen
	fieldW float64
	fieldH float64
}

func NewGrid(screen tcell.Screen, fieldW, fieldH int) *Grid {
	return &Grid{screen: screen, fieldW: float64(fieldW), fieldH: float64(fieldH)}
}

// cell maps a field point to a cell. Points outside the field map
// outside the screen and are dropped by set.
func (g *Grid) cell(p game.Vec) (int, int) {
	cols, rows := g.screen.Size()
	x := int(math.Floor(p.X * float64(cols) / g.fieldW))
	y := int(math.Floor(p.Y * float64(rows) / g.fieldH))
	return x, y
}

func (g *Grid) set(x, y int, r rune, style tcell.Style) {
	cols, rows := g.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	g.screen.SetContent(x, y, r, nil, style)
}

func (g *Grid) ClearRect(x, y, w, h float64, c color.Color) {
	x0, y0 := g.cell(game.Vec{X: x, Y: y})
	x1, y1 := g.cell(game.Vec{X: x + w, Y: y + h})
	style := tcell.StyleDefault.Background(toColor(c))
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			g.set(cx, cy, ' ', style)
		}
	}
}

// StrokePath plots each segment with Bresenham's line; wide strokes use a
// heavier glyph.
func (g *Grid) StrokePath(points []game.Vec, width float64, c color.Color) {
	glyph := '·'
	if width >= 3 {
		glyph = '*'
	}
	style := tcell.StyleDefault.Foreground(toColor(c)).Background(tcell.ColorBlack)

	for i := 1; i < len(points); i++ {
		x0, y0 := g.cell(points[i-1])
		x1, y1 := g.cell(points[i])
		plotLine(x0, y0, x1, y1, func(x, y int) { g.set(x, y, glyph, style) })
	}
}

func (g *Grid) DrawText(s string, at game.Vec, style game.TextStyle) {
	runes := []rune(s)
	x, y := g.cell(at)
	switch style.Align {
	case game.AlignCenter:
		x -= len(runes) / 2
	case game.AlignRight:
		x -= len(runes)
	}
	clr := style.Color
	if clr == nil {
		clr = color.White
	}
	st := tcell.StyleDefault.Foreground(toColor(clr)).Background(tcell.ColorBlack)
	for i, r := range runes {
		g.set(x+i, y, r, st)
	}
}

func plotLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func toColor(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
