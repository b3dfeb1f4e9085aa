package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"mathdefense/internal/game"
)

// Canvas is a game.Surface backed by an offscreen ebiten image. The game
// draws into it during its frame callback and the window copies it to
// the screen in Draw.
type Canvas struct {
	img  *ebiten.Image
	face font.Face
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{img: ebiten.NewImage(w, h), face: basicfont.Face7x13}
}

func (c *Canvas) Image() *ebiten.Image { return c.img }

func (c *Canvas) ClearRect(x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(c.img, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func (c *Canvas) StrokePath(points []game.Vec, width float64, clr color.Color) {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		vector.StrokeLine(c.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), clr, true)
	}
}

// DrawText uses the fixed 7x13 bitmap face; style.Size is ignored.
func (c *Canvas) DrawText(s string, at game.Vec, style game.TextStyle) {
	if s == "" {
		return
	}
	x := int(at.X)
	switch style.Align {
	case game.AlignCenter:
		x -= textWidth(c.face, s) / 2
	case game.AlignRight:
		x -= textWidth(c.face, s)
	}
	clr := style.Color
	if clr == nil {
		clr = color.White
	}
	text.Draw(c.img, s, c.face, x, int(at.Y), clr)
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
