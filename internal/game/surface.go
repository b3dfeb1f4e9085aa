package game

import (
	"image/color"
	"math"
)

// Align is the horizontal anchor of drawn text.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle describes how DrawText renders a string. Size is a nominal
// pixel height; surfaces with fixed fonts may ignore it.
type TextStyle struct {
	Align Align
	Color color.Color
	Size  float64
}

// Surface is the drawing target a game renders into each frame.
type Surface interface {
	// ClearRect fills a rectangle with a solid color.
	ClearRect(x, y, w, h float64, c color.Color)
	// StrokePath draws straight segments through points.
	StrokePath(points []Vec, width float64, c color.Color)
	// DrawText draws s with its baseline at the given point.
	DrawText(s string, at Vec, style TextStyle)
}

// arcStep is the largest angle covered by one segment of an Arc.
const arcStep = math.Pi / 32

// Arc approximates a circular arc with a polyline, using the same angle
// convention as a canvas: angles grow clockwise on screen, and
// anticlockwise arcs sweep from start towards decreasing angles.
func Arc(center Vec, radius, start, end float64, anticlockwise bool) []Vec {
	sweep := end - start
	if anticlockwise {
		for sweep > 0 {
			sweep -= 2 * math.Pi
		}
	} else {
		for sweep < 0 {
			sweep += 2 * math.Pi
		}
	}

	n := int(math.Ceil(math.Abs(sweep) / arcStep))
	if n < 1 {
		n = 1
	}
	points := make([]Vec, 0, n+1)
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		points = append(points, Vec{center.X + radius*math.Cos(a), center.Y + radius*math.Sin(a)})
	}
	return points
}
