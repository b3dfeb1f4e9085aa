package question

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
)

// ErrBadSettings is wrapped by every SettingsError.
var ErrBadSettings = errors.New("invalid question settings")

// SettingsError names the generator setting that was rejected.
type SettingsError struct {
	Field  string
	Reason string
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("question: %s: %s", e.Field, e.Reason)
}

func (e *SettingsError) Unwrap() error { return ErrBadSettings }

func badSetting(field, format string, args ...any) *SettingsError {
	return &SettingsError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Operator is one of the four arithmetic operators a question can use.
type Operator byte

const (
	Add      Operator = '+'
	Subtract Operator = '-'
	Multiply Operator = '*'
	Divide   Operator = '/'
)

func (o Operator) String() string { return string(o) }

// Apply evaluates a op b. Division is true division.
func (o Operator) Apply(a, b int) float64 {
	switch o {
	case Add:
		return float64(a + b)
	case Subtract:
		return float64(a - b)
	case Multiply:
		return float64(a * b)
	case Divide:
		return float64(a) / float64(b)
	}
	panic(fmt.Sprintf("question: unknown operator %q", byte(o)))
}

// ParseOperators turns a string such as "+-*" into operators, keeping order
// and dropping duplicates.
func ParseOperators(s string) ([]Operator, error) {
	var ops []Operator
	seen := make(map[Operator]bool)
	for _, r := range s {
		op := Operator(r)
		switch op {
		case Add, Subtract, Multiply, Divide:
		default:
			return nil, badSetting("operators", "unknown operator %q", r)
		}
		if !seen[op] {
			seen[op] = true
			ops = append(ops, op)
		}
	}
	if len(ops) == 0 {
		return nil, badSetting("operators", "at least one operator is required")
	}
	return ops, nil
}

// Question is a generated problem and its exact answer.
type Question struct {
	Text   string
	Answer float64
}

// AnswerText is the canonical decimal form players must type.
func (q Question) AnswerText() string {
	return FormatAnswer(q.Answer)
}

// FormatAnswer renders v in its shortest exact decimal form.
func FormatAnswer(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Settings control what the generator produces.
type Settings struct {
	MaxOperand    int
	Operators     []Operator
	AllowNegative bool
	WholeNumbers  bool
}

// DefaultSettings mirrors the classroom defaults: small sums and differences.
func DefaultSettings() Settings {
	return Settings{
		MaxOperand:   10,
		Operators:    []Operator{Add, Subtract},
		WholeNumbers: true,
	}
}

// Generator produces random arithmetic questions.
type Generator struct {
	settings Settings
	rand     *rand.Rand
}

// NewGenerator validates s and returns a generator drawing from r.
func NewGenerator(s Settings, r *rand.Rand) (*Generator, error) {
	if len(s.Operators) == 0 {
		return nil, badSetting("operators", "at least one operator is required")
	}
	if s.MaxOperand < 0 {
		return nil, badSetting("maxOperand", "must not be negative, got %d", s.MaxOperand)
	}
	for _, op := range s.Operators {
		switch op {
		case Add, Subtract, Multiply:
		case Divide:
			if s.MaxOperand == 0 {
				return nil, badSetting("maxOperand", "division needs a positive bound")
			}
		default:
			return nil, badSetting("operators", "unknown operator %q", byte(op))
		}
	}
	if r == nil {
		return nil, badSetting("rand", "random source is required")
	}

	ops := make([]Operator, len(s.Operators))
	copy(ops, s.Operators)
	s.Operators = ops

	return &Generator{settings: s, rand: r}, nil
}

// Settings returns a copy of the generator's settings.
func (g *Generator) Settings() Settings {
	s := g.settings
	s.Operators = append([]Operator(nil), g.settings.Operators...)
	return s
}

// Generate returns a new question.
func (g *Generator) Generate() Question {
	op := g.settings.Operators[g.rand.Intn(len(g.settings.Operators))]

	var a, b int
	switch {
	case op == Divide && g.settings.WholeNumbers:
		// Build the dividend from the divisor so the quotient is whole.
		b = g.divisor()
		a = b * g.number(g.settings.MaxOperand)
	case op == Divide:
		a = g.number(g.settings.MaxOperand)
		b = g.divisor()
	case op == Subtract && !g.settings.AllowNegative:
		a = g.number(g.settings.MaxOperand)
		b = g.number(a)
	default:
		a = g.number(g.settings.MaxOperand)
		b = g.number(g.settings.MaxOperand)
	}

	return Question{
		Text:   strconv.Itoa(a) + op.String() + strconv.Itoa(b),
		Answer: op.Apply(a, b),
	}
}

// number is uniform in [0, max].
func (g *Generator) number(max int) int {
	return g.rand.Intn(max + 1)
}

// divisor is uniform in [1, MaxOperand]. Zero is left out of the range
// on purpose: x/0 has no answer a player could type.
func (g *Generator) divisor() int {
	return 1 + g.rand.Intn(g.settings.MaxOperand)
}
