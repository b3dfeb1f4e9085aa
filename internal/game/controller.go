package game

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mathdefense/internal/clock"
	"mathdefense/internal/config"
	"mathdefense/internal/question"
	"mathdefense/pkg/logger"
)

// ErrAlreadyStarted is returned by Start on a controller that has run.
var ErrAlreadyStarted = errors.New("game already started")

// State is the controller's lifecycle state.
type State int

const (
	Running State = iota
	Paused
	Over
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Over:
		return "over"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Key names delivered to HandleKey. Any other single character is typed
// into the answer.
const (
	KeyEnter     = "Enter"
	KeyBackspace = "Backspace"
	KeyEscape    = "Escape"
	KeyShift     = "Shift"
	KeyControl   = "Control"
	KeyAlt       = "Alt"
)

var overlayColor = color.RGBA{R: 0xFF, G: 0xCC, A: 0xFF}

// Controller owns every entity of one game and runs its frame loop on a
// clock.Scheduler. It is not safe for concurrent use; the host delivers
// frames, timers and keys from a single goroutine.
type Controller struct {
	cfg     config.Config
	id      uuid.UUID
	log     *logrus.Entry
	rand    *rand.Rand
	gen     *question.Generator
	sched   clock.Scheduler
	surface Surface
	cues    Cues

	ships []*Ship
	beams []*Beam
	base  *Base
	score *ScoreBoard
	input *InputBuffer

	state   State
	started bool
	looping bool
	spawner clock.Handle
	frame   clock.Handle
}

// Option customises a Controller.
type Option func(*Controller)

// WithCues routes hit, miss, breach and game over moments to c.
func WithCues(c Cues) Option {
	return func(g *Controller) {
		if c != nil {
			g.cues = c
		}
	}
}

// WithRand replaces the random source seeded from the configuration.
func WithRand(r *rand.Rand) Option {
	return func(g *Controller) {
		if r != nil {
			g.rand = r
		}
	}
}

// NewController validates cfg and builds a game ready to Start. Nothing
// is scheduled until Start is called.
func NewController(cfg config.Config, sched clock.Scheduler, surface Surface, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, config.Invalid("scheduler", "a scheduler is required")
	}
	if surface == nil {
		return nil, config.Invalid("surface", "a drawing surface is required")
	}

	c := &Controller{
		cfg:     cfg,
		id:      uuid.New(),
		rand:    rand.New(rand.NewSource(cfg.Seed)),
		sched:   sched,
		surface: surface,
		cues:    nopCues{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = logger.Log.WithField("session", c.id.String())

	ops, err := question.ParseOperators(cfg.Operators)
	if err != nil {
		return nil, asConfigError(err)
	}
	c.gen, err = question.NewGenerator(question.Settings{
		MaxOperand:    cfg.MaxOperand,
		Operators:     ops,
		AllowNegative: cfg.AllowNegative,
		WholeNumbers:  cfg.WholeNumbers,
	}, c.rand)
	if err != nil {
		return nil, asConfigError(err)
	}

	w, h := c.fieldSize()
	c.ships = make([]*Ship, cfg.PoolSize)
	for i := range c.ships {
		c.ships[i] = NewShip()
	}
	c.base = NewBase(Vec{w / 2, h}, cfg.Shields)
	c.score = NewScoreBoard(Vec{ScoreX, h - ScoreBottom}, cfg.Lives)
	c.input = NewInputBuffer(Vec{w / 2, h - InputBottom})

	c.log.WithFields(logrus.Fields{
		"operators": cfg.Operators,
		"max":       cfg.MaxOperand,
		"pool":      cfg.PoolSize,
	}).Info("game created")

	return c, nil
}

// asConfigError reports generator setting errors as configuration errors.
func asConfigError(err error) error {
	var se *question.SettingsError
	if errors.As(err, &se) {
		return config.Invalid(se.Field, "%s", se.Reason)
	}
	return err
}

// Start begins the frame loop and the periodic spawn trigger.
func (c *Controller) Start() error {
	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true
	c.state = Running
	c.spawner = c.sched.Every(c.cfg.SpawnInterval, c.spawnTick)
	c.scheduleFrame()
	return nil
}

// TogglePause switches between Running and Paused. Pausing cancels the
// spawn trigger; resuming recreates it and restarts the frame loop if it
// had already stopped. It does nothing once the game is over.
func (c *Controller) TogglePause() {
	switch c.state {
	case Running:
		c.state = Paused
		c.stopSpawner()
	case Paused:
		c.state = Running
		if c.started {
			c.spawner = c.sched.Every(c.cfg.SpawnInterval, c.spawnTick)
			if !c.looping {
				c.scheduleFrame()
			}
		}
	default:
		return
	}
	c.log.WithField("state", c.state).Info("pause toggled")
}

// Spawn activates the first dead ship in pool order. It reports false
// when every ship is already alive or the game is over.
func (c *Controller) Spawn() bool {
	if c.state == Over {
		return false
	}

	for _, s := range c.ships {
		if s.Alive {
			continue
		}
		w, _ := c.fieldSize()
		x := SpawnMargin + math.Round(c.rand.Float64()*(w-2*SpawnMargin))
		speed := math.Round(float64(c.score.Score)/float64(c.cfg.SpeedupScore)) * c.cfg.SpeedupFactor

		s.Spawn(c.gen.Generate(), Vec{x, ShipSpawnY}, speed)
		c.log.WithFields(logrus.Fields{
			"question": s.Question.Text,
			"speed":    s.Speed,
		}).Debug("ship spawned")
		return true
	}

	c.log.WithField("pool", len(c.ships)).Warn("all ships are in play, skipping spawn")
	return false
}

func (c *Controller) spawnTick() { c.Spawn() }

// Submit resolves the typed answer against live ships in pool order.
// The first match is shot down and scored; otherwise a beam is fired at
// a random point as a visible miss. The input is cleared either way.
// Once the game is over it does nothing and reports false.
func (c *Controller) Submit() bool {
	if c.state == Over {
		return false
	}
	answer := c.input.Text()
	defer c.input.Clear()

	_, h := c.fieldSize()
	for _, s := range c.ships {
		if !s.Alive || !s.MatchesAnswer(answer) {
			continue
		}
		target := s.Position
		c.beams = append(c.beams, NewBeam(c.base.Position, target))
		s.Kill()
		points := int(math.Round((h - target.Y) / ScoreDivisor))
		c.score.AddScore(points)
		c.cues.Hit()
		c.log.WithFields(logrus.Fields{"answer": answer, "points": points}).Debug("hit")
		return true
	}

	w, _ := c.fieldSize()
	miss := Vec{
		math.Round(c.rand.Float64() * w),
		math.Round(c.rand.Float64() * (h - MissBand)),
	}
	c.beams = append(c.beams, NewBeam(c.base.Position, miss))
	c.cues.Miss()
	c.log.WithField("answer", answer).Debug("miss")
	return false
}

// HandleKey applies one key press. Enter submits, Backspace deletes,
// Escape clears the answer and toggles pause, and any other single
// character is typed. Modifier keys and other named keys are ignored.
// Nothing changes once the game is over.
func (c *Controller) HandleKey(key string) {
	if c.state == Over {
		return
	}

	switch key {
	case KeyEnter:
		c.Submit()
	case KeyBackspace:
		c.input.Backspace()
	case KeyEscape:
		c.input.Clear()
		c.TogglePause()
	case KeyShift, KeyControl, KeyAlt:
	default:
		if utf8.RuneCountInString(key) == 1 {
			c.input.Append(key)
		}
	}
}

// Update advances one frame of simulation: ships move, beams age and
// expired ones are dropped, then ships at the bottom edge breach.
func (c *Controller) Update() {
	for _, s := range c.ships {
		s.Advance()
	}

	live := c.beams[:0]
	for _, b := range c.beams {
		b.Tick()
		if b.Active {
			live = append(live, b)
		}
	}
	for i := len(live); i < len(c.beams); i++ {
		c.beams[i] = nil
	}
	c.beams = live

	c.checkBreaches()
}

// checkBreaches kills live ships that reached the bottom edge. Dead
// ships resting there cost nothing.
func (c *Controller) checkBreaches() {
	_, h := c.fieldSize()
	for _, s := range c.ships {
		if !s.Alive || s.Position.Y < h {
			continue
		}
		s.Kill()
		c.score.Damage(1)
		c.base.DamageShield(1)
		c.cues.Breach()
		c.log.WithFields(logrus.Fields{
			"lives":   c.score.Lives,
			"shields": c.base.Shields,
		}).Info("base breached")
	}
}

// Draw renders the whole field. Later entities are drawn over earlier ones.
func (c *Controller) Draw() {
	w, h := c.fieldSize()
	c.surface.ClearRect(0, 0, w, h, color.Black)

	for _, s := range c.ships {
		s.Draw(c.surface)
	}
	for _, b := range c.beams {
		b.Draw(c.surface)
	}
	c.score.Draw(c.surface)
	c.input.Draw(c.surface)
	c.base.Draw(c.surface)

	banner := TextStyle{Align: AlignCenter, Color: overlayColor, Size: 24}
	switch c.state {
	case Paused:
		c.surface.DrawText("PAUSED", Vec{w / 2, h / 2}, banner)
	case Over:
		c.surface.DrawText("GAME OVER", Vec{w / 2, h / 2}, banner)
		c.surface.DrawText(fmt.Sprintf("Final score: %d", c.score.Score), Vec{w / 2, h/2 + ScoreLineHeight}, banner)
	}
}

// tick is one iteration of the frame loop.
func (c *Controller) tick() {
	c.frame = nil
	c.Update()
	if c.score.Lives <= 0 && c.state != Over {
		c.finish()
	}
	c.Draw()

	if c.state != Running {
		c.looping = false
		return
	}
	c.scheduleFrame()
}

func (c *Controller) scheduleFrame() {
	c.looping = true
	c.frame = c.sched.NextFrame(c.tick)
}

// finish enters the terminal Over state and cancels everything scheduled.
func (c *Controller) finish() {
	c.state = Over
	c.stopSpawner()
	if c.frame != nil {
		c.frame.Cancel()
		c.frame = nil
	}
	c.cues.GameOver()
	c.log.WithField("score", c.score.Score).Info("game over")
}

func (c *Controller) stopSpawner() {
	if c.spawner != nil {
		c.spawner.Cancel()
		c.spawner = nil
	}
}

func (c *Controller) fieldSize() (float64, float64) {
	return float64(c.cfg.FieldWidth), float64(c.cfg.FieldHeight)
}

// ID identifies this game in logs.
func (c *Controller) ID() string { return c.id.String() }

func (c *Controller) State() State { return c.state }

func (c *Controller) Score() int { return c.score.Score }

func (c *Controller) Lives() int { return c.score.Lives }

func (c *Controller) Shields() int { return c.base.Shields }

// Input is the answer typed so far.
func (c *Controller) Input() string { return c.input.Text() }

// Ships returns the pool in its fixed order.
func (c *Controller) Ships() []*Ship { return append([]*Ship(nil), c.ships...) }

// Beams returns the active beams, oldest first.
func (c *Controller) Beams() []*Beam { return append([]*Beam(nil), c.beams...) }

// Base returns the defended base.
func (c *Controller) Base() *Base { return c.base }

// FieldSize is the playing field in canvas units.
func (c *Controller) FieldSize() (int, int) { return c.cfg.FieldWidth, c.cfg.FieldHeight }

// Factory builds a fresh, unstarted game bound to a scheduler and a
// surface. Frontends call it again to start over after a game ends.
type Factory func(clock.Scheduler, Surface) (*Controller, error)
