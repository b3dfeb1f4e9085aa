package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"mathdefense/internal/clock"
	"mathdefense/internal/config"
	"mathdefense/internal/game"
	"mathdefense/internal/sound"
	"mathdefense/internal/ui/terminal"
	"mathdefense/internal/ui/window"
	"mathdefense/pkg/logger"
)

const windowTitle = "Math Defense"

func main() {
	logger.Init()

	cfg := config.NewConfig()
	if err := cfg.LoadEnv(); err != nil {
		logger.Log.WithError(err).Fatal("invalid environment")
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		logger.Log.WithError(err).Fatal("invalid configuration")
	}

	player := sound.New(cfg.Sound, cfg.Volume)
	defer player.Close()

	logger.Log.WithFields(logrus.Fields{
		"frontend":  cfg.Frontend,
		"operators": cfg.Operators,
		"max":       cfg.MaxOperand,
		"sound":     player.Enabled(),
	}).Info("starting")

	var err error
	switch cfg.Frontend {
	case config.FrontendTerminal:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		// tcell owns the terminal; stderr output would tear the screen.
		if os.Getenv("LOG_FILE") == "" {
			logger.Log.SetOutput(io.Discard)
		}
		err = terminal.Run(ctx, cfg.FieldWidth, cfg.FieldHeight, newFactory(cfg, player))
	default:
		err = window.Run(windowTitle, cfg.FieldWidth, cfg.FieldHeight, newFactory(cfg, player))
	}
	if err != nil {
		player.Close()
		if os.Getenv("LOG_FILE") == "" {
			logger.Log.SetOutput(os.Stderr)
		}
		logger.Log.WithError(err).Fatal("game exited")
	}
}

// newFactory builds games from cfg. Each new game gets the next seed so a
// restart does not replay the previous game.
func newFactory(cfg config.Config, cues game.Cues) game.Factory {
	games := int64(0)
	return func(s clock.Scheduler, surface game.Surface) (*game.Controller, error) {
		c := cfg
		c.Seed += games
		games++
		return game.NewController(c, s, surface, game.WithCues(cues))
	}
}
