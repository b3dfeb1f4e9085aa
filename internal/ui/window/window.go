// Package window runs games in a desktop window with ebiten.
package window

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"mathdefense/internal/clock"
	"mathdefense/internal/game"
	"mathdefense/pkg/logger"
)

// App adapts a game.Controller to ebiten.Game. Each ebiten Update feeds
// key presses to the game and advances its clock by one tick; Draw only
// copies the canvas the game painted.
type App struct {
	factory game.Factory
	width   int
	height  int

	clock  *clock.FrameClock
	canvas *Canvas
	game   *game.Controller
}

// New builds and starts the first game.
func New(width, height int, factory game.Factory) (*App, error) {
	a := &App{factory: factory, width: width, height: height, canvas: NewCanvas(width, height)}
	if err := a.restart(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) restart() error {
	a.clock = clock.New()
	g, err := a.factory(a.clock, a.canvas)
	if err != nil {
		return err
	}
	if err := g.Start(); err != nil {
		return err
	}
	a.game = g
	return nil
}

// Game is the controller currently being played.
func (a *App) Game() *game.Controller { return a.game }

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) { return a.width, a.height }

func (a *App) Update() error {
	keys := pressedKeys()

	// Enter on the game over screen starts a new game.
	if a.game.State() == game.Over {
		for _, k := range keys {
			if k == game.KeyEnter {
				logger.Log.WithField("session", a.game.ID()).Info("starting a new game")
				return a.restart()
			}
		}
		return nil
	}

	for _, k := range keys {
		a.game.HandleKey(k)
	}
	a.clock.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.DrawImage(a.canvas.Image(), nil)
}

// Run opens the window and blocks until it is closed.
func Run(title string, width, height int, factory game.Factory) error {
	app, err := New(width, height, factory)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	return ebiten.RunGame(app)
}
