package game

import "image/color"

var beamColor = color.RGBA{R: 0xFF, A: 0xFF}

// Beam is the short-lived line drawn from the base to a target.
type Beam struct {
	Start, End Vec
	Life       int
	Active     bool
}

func NewBeam(start, end Vec) *Beam {
	return &Beam{Start: start, End: end, Life: BeamLife, Active: true}
}

// Tick counts down one frame of life.
func (b *Beam) Tick() {
	b.Life--
	if b.Life <= 0 {
		b.Active = false
	}
}

func (b *Beam) Draw(dst Surface) {
	if !b.Active {
		return
	}
	dst.StrokePath([]Vec{b.Start, b.End}, BeamWidth, beamColor)
}
