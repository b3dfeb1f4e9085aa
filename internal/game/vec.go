package game

// Vec is a point on the playing field. Values are replaced, never mutated.
type Vec struct{ X, Y float64 }

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
