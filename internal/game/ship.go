package game

import (
	"image/color"

	"mathdefense/internal/question"
)

// Ship is a falling enemy carrying one question. Ships live in a fixed
// pool and are recycled: Spawn brings one to life, Kill retires it.
// A dead ship keeps its last position until it is spawned again.
type Ship struct {
	Position Vec
	Size     float64
	Speed    float64
	Question *question.Question
	Alive    bool

	origin Vec
	ticks  int
}

// NewShip returns a dead ship with default size and speed.
func NewShip() *Ship {
	return &Ship{Size: ShipSize, Speed: MinShipSpeed}
}

// Spawn revives the ship at pos with a new question. Speed factors below
// MinShipSpeed are raised to it.
func (s *Ship) Spawn(q question.Question, pos Vec, speed float64) {
	if speed < MinShipSpeed {
		speed = MinShipSpeed
	}
	s.Question = &q
	s.Position = pos
	s.Speed = speed
	s.origin = pos
	s.ticks = 0
	s.Alive = true
}

// Advance moves a live ship one frame down the field. The position is
// derived from the spawn point so repeated frames do not accumulate error.
func (s *Ship) Advance() {
	if !s.Alive {
		return
	}
	s.ticks++
	s.Position = s.origin.Add(Vec{0, float64(s.ticks) * ShipSpeed * s.Speed})
}

// Kill retires the ship.
func (s *Ship) Kill() { s.Alive = false }

// MatchesAnswer reports whether text is exactly the canonical form of
// the ship's answer.
func (s *Ship) MatchesAnswer(text string) bool {
	if s.Question == nil {
		return false
	}
	return s.Question.AnswerText() == text
}

// Draw renders the hull nose-down at Position with the question above it.
func (s *Ship) Draw(dst Surface) {
	if !s.Alive {
		return
	}

	halfW := ShipWidth / 2 * s.Size
	h := ShipHeight * s.Size
	nose := s.Position
	dst.StrokePath([]Vec{
		nose,
		{nose.X - halfW, nose.Y - h},
		{nose.X + halfW, nose.Y - h},
		nose,
	}, 2, color.White)

	if s.Question != nil {
		dst.DrawText(s.Question.Text, Vec{nose.X, nose.Y - h - QuestionGap}, TextStyle{
			Align: AlignCenter,
			Color: color.White,
			Size:  12,
		})
	}
}
