package game

import (
	"fmt"
	"image/color"
)

// ScoreBoard tracks score and lives. Lives are not clamped; the game ends
// once they reach zero or below.
type ScoreBoard struct {
	Position Vec
	Score    int
	Lives    int
}

func NewScoreBoard(pos Vec, lives int) *ScoreBoard {
	return &ScoreBoard{Position: pos, Lives: lives}
}

func (s *ScoreBoard) Damage(n int) { s.Lives -= n }

func (s *ScoreBoard) AddScore(delta int) { s.Score += delta }

func (s *ScoreBoard) Draw(dst Surface) {
	style := TextStyle{Align: AlignLeft, Color: color.White, Size: 15}
	dst.DrawText(fmt.Sprintf("Score: %d", s.Score), s.Position, style)
	dst.DrawText(fmt.Sprintf("Lives: %d", s.Lives), s.Position.Add(Vec{0, ScoreLineHeight}), style)
}
