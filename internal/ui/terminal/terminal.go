// Package terminal runs games in a text terminal with tcell.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"mathdefense/internal/clock"
	"mathdefense/internal/game"
	"mathdefense/pkg/logger"
)

// FrameInterval is the terminal frame rate, roughly 60 per second.
const FrameInterval = 16 * time.Millisecond

// keyName maps a tcell key event to a game key name.
func keyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return game.KeyEnter, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return game.KeyBackspace, true
	case tcell.KeyEscape:
		return game.KeyEscape, true
	case tcell.KeyRune:
		return string(ev.Rune()), true
	}
	return "", false
}

func isInterrupt(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0
}

// Session is one terminal screen playing a sequence of games.
type Session struct {
	screen  tcell.Screen
	factory game.Factory
	surface *Grid
	clock   *clock.FrameClock
	game    *game.Controller
}

// NewSession binds a screen to a game factory and starts the first game.
// The screen must already be initialised.
func NewSession(screen tcell.Screen, fieldW, fieldH int, factory game.Factory) (*Session, error) {
	s := &Session{screen: screen, factory: factory, surface: NewGrid(screen, fieldW, fieldH)}
	if err := s.restart(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) restart() error {
	s.clock = clock.New()
	g, err := s.factory(s.clock, s.surface)
	if err != nil {
		return err
	}
	if err := g.Start(); err != nil {
		return err
	}
	s.game = g
	return nil
}

// Game is the controller currently being played.
func (s *Session) Game() *game.Controller { return s.game }

// HandleEvent applies one terminal event and reports whether the session
// should keep running.
func (s *Session) HandleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isInterrupt(ev) {
			return false, nil
		}
		key, ok := keyName(ev)
		if !ok {
			return true, nil
		}
		if s.game.State() == game.Over {
			if key == game.KeyEnter {
				logger.Log.WithField("session", s.game.ID()).Info("starting a new game")
				return true, s.restart()
			}
			return true, nil
		}
		s.game.HandleKey(key)
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true, nil
}

// Frame advances the game by dt and shows the result.
func (s *Session) Frame(dt time.Duration) {
	s.clock.Advance(dt)
	s.screen.Show()
}

// Run plays until ctx is cancelled or the player presses Ctrl+C.
func Run(ctx context.Context, fieldW, fieldH int, factory game.Factory) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal screen: %w", err)
	}
	defer screen.Fini()

	session, err := NewSession(screen, fieldW, fieldH, factory)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			keepGoing, err := session.HandleEvent(ev)
			if err != nil {
				return err
			}
			if !keepGoing {
				return nil
			}
		case <-ticker.C:
			session.Frame(FrameInterval)
		}
	}
}
