package game

import (
	"image/color"
	"math"
)

var shieldColor = color.RGBA{B: 0xFF, A: 0xFF}

// Base is the defended dome at the bottom of the field.
type Base struct {
	Position Vec
	Shields  int
}

func NewBase(pos Vec, shields int) *Base {
	return &Base{Position: pos, Shields: shields}
}

// DamageShield removes n shields, never going below zero.
func (b *Base) DamageShield(n int) {
	b.Shields -= n
	if b.Shields < 0 {
		b.Shields = 0
	}
}

func (b *Base) ReinforceShield(n int) {
	b.Shields += n
}

// Draw renders the dome and one concentric arc per shield.
func (b *Base) Draw(dst Surface) {
	dst.StrokePath(Arc(b.Position, BaseRadius, 0, math.Pi, true), 1, color.White)

	for i := 0; i < b.Shields; i++ {
		r := ShieldRadius + float64(i+1)*ShieldSpacing
		dst.StrokePath(Arc(b.Position, r, 1.9*math.Pi, 1.1*math.Pi, true), 1, shieldColor)
	}
}
