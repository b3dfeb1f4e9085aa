package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"mathdefense/internal/game"
)

// pressedKeys returns this frame's key presses as game key names: typed
// characters first, then Backspace, Enter and Escape.
func pressedKeys() []string {
	var keys []string
	for _, r := range ebiten.AppendInputChars(nil) {
		keys = append(keys, string(r))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		keys = append(keys, game.KeyBackspace)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		keys = append(keys, game.KeyEnter)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		keys = append(keys, game.KeyEscape)
	}
	return keys
}
