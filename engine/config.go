package engine

import (
	"fmt"
	"log/slog"

	"github.com/brunokim/inferd/errors"
)

// Strategy selects backward search order.
type Strategy int

const (
	DepthFirst Strategy = iota
	BreadthFirst
	IterativeDeepening
)

func (s Strategy) String() string {
	switch s {
	case DepthFirst:
		return "depth-first"
	case BreadthFirst:
		return "breadth-first"
	case IterativeDeepening:
		return "iterative-deepening"
	default:
		return "unknown"
	}
}

// ConflictResolution selects the forward chainer's tie-breaker.
type ConflictResolution int

const (
	Priority ConflictResolution = iota
	Recency
	Specificity
	Random
	MRS
	MEVIS
)

func (c ConflictResolution) String() string {
	switch c {
	case Priority:
		return "priority"
	case Recency:
		return "recency"
	case Specificity:
		return "specificity"
	case Random:
		return "random"
	case MRS:
		return "mrs"
	case MEVIS:
		return "mevis"
	default:
		return "unknown"
	}
}

// Config is the engine's configuration record. It is
// effectively immutable after construction except through Configure,
// which must happen-before any inference call observing the change.
type Config struct {
	Strategy           Strategy
	MaxDepth           int
	MaxSteps           int
	ConflictResolution ConflictResolution
	Trace              bool
	// RandSeed feeds the "random" conflict-resolution tie-breaker;
	// equal seeds reproduce the same tie-break order.
	RandSeed int64
	// Logger receives trace events when Trace is true. Defaults to
	// slog.Default() if nil.
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Strategy:           DepthFirst,
		MaxDepth:           10,
		MaxSteps:           1000,
		ConflictResolution: Priority,
		Trace:              false,
	}
}

// Configure validates and applies a single option.
// Unrecognized keys or values are rejected with a ValidationError.
func (c *Config) Configure(key string, value interface{}) error {
	switch key {
	case "strategy":
		s, ok := value.(string)
		if !ok {
			return errors.NewValidationError("strategy must be a string, got %T", value)
		}
		switch s {
		case "depth-first":
			c.Strategy = DepthFirst
		case "breadth-first":
			c.Strategy = BreadthFirst
		case "iterative-deepening":
			c.Strategy = IterativeDeepening
		default:
			return errors.NewValidationError("unrecognized strategy %q", s)
		}
	case "max-depth":
		n, err := asNonNegativeInt(value)
		if err != nil {
			return err
		}
		c.MaxDepth = n
	case "max-steps":
		n, err := asNonNegativeInt(value)
		if err != nil {
			return err
		}
		c.MaxSteps = n
	case "conflict-resolution":
		s, ok := value.(string)
		if !ok {
			return errors.NewValidationError("conflict-resolution must be a string, got %T", value)
		}
		switch s {
		case "priority":
			c.ConflictResolution = Priority
		case "recency":
			c.ConflictResolution = Recency
		case "specificity":
			c.ConflictResolution = Specificity
		case "random":
			c.ConflictResolution = Random
		case "mrs":
			c.ConflictResolution = MRS
		case "mevis":
			c.ConflictResolution = MEVIS
		default:
			return errors.NewValidationError("unrecognized conflict-resolution %q", s)
		}
	case "trace":
		b, ok := value.(bool)
		if !ok {
			return errors.NewValidationError("trace must be a bool, got %T", value)
		}
		c.Trace = b
	case "rand-seed":
		n, ok := value.(int64)
		if !ok {
			if i, ok := value.(int); ok {
				n = int64(i)
			} else {
				return errors.NewValidationError("rand-seed must be an integer, got %T", value)
			}
		}
		c.RandSeed = n
	default:
		return errors.NewValidationError("unrecognized config key %q", key)
	}
	return nil
}

func asNonNegativeInt(value interface{}) (int, error) {
	var n int
	switch v := value.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	default:
		return 0, errors.NewValidationError("expected an integer, got %T", value)
	}
	if n < 0 {
		return 0, errors.NewValidationError("expected a non-negative integer, got %d", n)
	}
	return n, nil
}

func (c Config) String() string {
	return fmt.Sprintf("{strategy: %v, max-depth: %d, max-steps: %d, conflict-resolution: %v, trace: %v}",
		c.Strategy, c.MaxDepth, c.MaxSteps, c.ConflictResolution, c.Trace)
}
