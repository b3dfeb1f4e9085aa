package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Frontends understood by main.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
)

// ValidOperators lists every operator character a game may use.
const ValidOperators = "+-*/"

// ErrInvalid is wrapped by every ConfigurationError.
var ErrInvalid = errors.New("invalid configuration")

// ConfigurationError reports a setting that cannot start a game.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrInvalid }

// Invalid builds a ConfigurationError.
func Invalid(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Config holds everything needed to build one game.
type Config struct {
	// Question generation
	MaxOperand    int
	Operators     string
	AllowNegative bool
	WholeNumbers  bool

	// Playing field, in canvas units
	FieldWidth  int
	FieldHeight int

	Lives         int
	Shields       int
	PoolSize      int
	SpawnInterval time.Duration
	SpeedupScore  int
	SpeedupFactor float64

	// Seed for the game's random source. 0 picks a time based one.
	Seed int64

	Frontend string
	Sound    bool
	Volume   float64
}

// NewConfig returns the default configuration.
func NewConfig() Config {
	return Config{
		MaxOperand:    10,
		Operators:     "+-",
		AllowNegative: false,
		WholeNumbers:  true,
		FieldWidth:    800,
		FieldHeight:   600,
		Lives:         3,
		Shields:       2,
		PoolSize:      10,
		SpawnInterval: 5 * time.Second,
		SpeedupScore:  1000,
		SpeedupFactor: 1.1,
		Seed:          time.Now().UnixNano(),
		Frontend:      FrontendWindow,
		Sound:         true,
		Volume:        0.5,
	}
}

// LoadEnv applies an optional .env file and MD_* variables on top of c.
// A missing .env file is not an error.
func (c *Config) LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}

	var errs []error
	envInt("MD_MAX_OPERAND", &c.MaxOperand, &errs)
	envString("MD_OPERATORS", &c.Operators)
	envBool("MD_ALLOW_NEGATIVE", &c.AllowNegative, &errs)
	envBool("MD_WHOLE_NUMBERS", &c.WholeNumbers, &errs)
	envInt("MD_WIDTH", &c.FieldWidth, &errs)
	envInt("MD_HEIGHT", &c.FieldHeight, &errs)
	envInt("MD_LIVES", &c.Lives, &errs)
	envInt("MD_SHIELDS", &c.Shields, &errs)
	envInt("MD_POOL_SIZE", &c.PoolSize, &errs)
	envDuration("MD_SPAWN_INTERVAL", &c.SpawnInterval, &errs)
	envString("MD_FRONTEND", &c.Frontend)
	envBool("MD_SOUND", &c.Sound, &errs)
	envFloat("MD_VOLUME", &c.Volume, &errs)

	if v, ok := os.LookupEnv("MD_SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, Invalid("MD_SEED", "%v", err))
		} else if seed != 0 {
			c.Seed = seed
		}
	}

	return errors.Join(errs...)
}

// BindFlags registers command line flags that override c.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.MaxOperand, "max", c.MaxOperand, "Largest operand in generated questions")
	fs.StringVar(&c.Operators, "ops", c.Operators, "Operators to use, any of "+ValidOperators)
	fs.BoolVar(&c.AllowNegative, "negative", c.AllowNegative, "Allow subtraction results below zero")
	fs.BoolVar(&c.WholeNumbers, "whole", c.WholeNumbers, "Only whole-number division results")
	fs.IntVar(&c.Lives, "lives", c.Lives, "Starting lives")
	fs.DurationVar(&c.SpawnInterval, "spawn", c.SpawnInterval, "Time between ship spawns")
	fs.Func("seed", "Random seed (0 for random)", func(s string) error {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		if seed != 0 {
			c.Seed = seed
		}
		return nil
	})
	fs.StringVar(&c.Frontend, "frontend", c.Frontend, "Frontend: window or terminal")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "Play sound cues")
	fs.Float64Var(&c.Volume, "volume", c.Volume, "Sound volume, 0 to 1")
}

// Validate reports the first setting that cannot start a game.
func (c Config) Validate() error {
	if c.Operators == "" {
		return Invalid("operators", "at least one operator is required")
	}
	for _, r := range c.Operators {
		if !strings.ContainsRune(ValidOperators, r) {
			return Invalid("operators", "unknown operator %q", r)
		}
	}
	if c.MaxOperand < 0 {
		return Invalid("maxOperand", "must not be negative, got %d", c.MaxOperand)
	}
	if c.MaxOperand == 0 && strings.ContainsRune(c.Operators, '/') {
		return Invalid("maxOperand", "division needs a positive bound")
	}
	if c.FieldWidth <= 0 || c.FieldHeight <= 0 {
		return Invalid("field", "size must be positive, got %dx%d", c.FieldWidth, c.FieldHeight)
	}
	if c.Lives <= 0 {
		return Invalid("lives", "must be positive, got %d", c.Lives)
	}
	if c.Shields < 0 {
		return Invalid("shields", "must not be negative, got %d", c.Shields)
	}
	if c.PoolSize <= 0 {
		return Invalid("poolSize", "must be positive, got %d", c.PoolSize)
	}
	if c.SpawnInterval <= 0 {
		return Invalid("spawnInterval", "must be positive, got %s", c.SpawnInterval)
	}
	if c.SpeedupScore <= 0 {
		return Invalid("speedupScore", "must be positive, got %d", c.SpeedupScore)
	}
	if c.SpeedupFactor < 0 {
		return Invalid("speedupFactor", "must not be negative, got %g", c.SpeedupFactor)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return Invalid("volume", "must be within [0,1], got %g", c.Volume)
	}
	switch c.Frontend {
	case FrontendWindow, FrontendTerminal:
	default:
		return Invalid("frontend", "unknown frontend %q", c.Frontend)
	}
	return nil
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envInt(key string, dst *int, errs *[]error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, Invalid(key, "%v", err))
		return
	}
	*dst = n
}

func envBool(key string, dst *bool, errs *[]error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, Invalid(key, "%v", err))
		return
	}
	*dst = b
}

func envFloat(key string, dst *float64, errs *[]error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, Invalid(key, "%v", err))
		return
	}
	*dst = f
}

func envDuration(key string, dst *time.Duration, errs *[]error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, Invalid(key, "%v", err))
		return
	}
	*dst = d
}
