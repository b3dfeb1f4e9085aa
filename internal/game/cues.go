package game

// Cues receives gameplay moments worth signalling to the player, such as
// sound effects.
type Cues interface {
	Hit()
	Miss()
	Breach()
	GameOver()
}

type nopCues struct{}

func (nopCues) Hit()      {}
func (nopCues) Miss()     {}
func (nopCues) Breach()   {}
func (nopCues) GameOver() {}
