package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/vytor/vocabflash/internal/flashcard"
	"github.com/vytor/vocabflash/internal/logger"
)

type Config struct {
	Addr              string `env:"ADDR" validate:"required"`
	DBPath            string `env:"DB_PATH" validate:"required"`
	LogLevel          string `env:"LOG_LEVEL" validate:"loglevel"`
	LedgerWorkerCount int    `env:"LEDGER_WORKER_COUNT" validate:"gt=0"`
	LedgerQueueSize   int    `env:"LEDGER_QUEUE_SIZE" validate:"gt=0"`

	TargetRetention      float64       `env:"TARGET_RETENTION" validate:"gt=0,lt=1"`
	MaxIntervalDays      float64       `env:"MAX_INTERVAL_DAYS" validate:"gt=0,lte=36500"`
	MinInterval          time.Duration `env:"MIN_INTERVAL" validate:"gt=0"`
	InitialStability     float64       `env:"INITIAL_STABILITY" validate:"gt=0"`
	InitialDifficulty    float64       `env:"INITIAL_DIFFICULTY" validate:"gte=1,lte=10"`
	MinStability         float64       `env:"MIN_STABILITY" validate:"gt=0"`
	LapseStabilityFactor float64       `env:"LAPSE_STABILITY_FACTOR" validate:"gt=0,lte=1"`
	RelearnInterval      time.Duration `env:"RELEARN_INTERVAL" validate:"gt=0"`
	DifficultyScaling    bool          `env:"DIFFICULTY_SCALING"`
	BehaviorModifiers    []string      `env:"BEHAVIOR_MODIFIERS" validate:"dive,modifier"`

	LearningAgain   time.Duration `env:"LEARNING_AGAIN" validate:"gt=0"`
	LearningHard    time.Duration `env:"LEARNING_HARD" validate:"gt=0"`
	LearningGood    time.Duration `env:"LEARNING_GOOD" validate:"gt=0"`
	LearningEasy    time.Duration `env:"LEARNING_EASY" validate:"gt=0"`
	TransitionAgain time.Duration `env:"TRANSITION_AGAIN" validate:"gt=0"`
	TransitionHard  time.Duration `env:"TRANSITION_HARD" validate:"gt=0"`
	TransitionGood  time.Duration `env:"TRANSITION_GOOD" validate:"gt=0"`
	TransitionEasy  time.Duration `env:"TRANSITION_EASY" validate:"gt=0"`

	// SimulatedClock exposes /clock so sessions can be replayed in fast-forward.
	SimulatedClock bool `env:"SIMULATED_CLOCK"`
	// ClockAutoAdvance moves the simulated clock to each review's due time.
	ClockAutoAdvance bool `env:"CLOCK_AUTO_ADVANCE"`
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	def := flashcard.DefaultConfig()
	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:vocabflash.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		LedgerWorkerCount: envIntOr("LEDGER_WORKER_COUNT", 2),
		LedgerQueueSize:   envIntOr("LEDGER_QUEUE_SIZE", 256),

		TargetRetention:      envFloatOr("TARGET_RETENTION", def.TargetRetention),
		MaxIntervalDays:      envFloatOr("MAX_INTERVAL_DAYS", def.MaxIntervalDays),
		MinInterval:          envDurationOr("MIN_INTERVAL", time.Minute),
		InitialStability:     envFloatOr("INITIAL_STABILITY", def.InitialStability),
		InitialDifficulty:    envFloatOr("INITIAL_DIFFICULTY", def.InitialDifficulty),
		MinStability:         envFloatOr("MIN_STABILITY", def.MinStability),
		LapseStabilityFactor: envFloatOr("LAPSE_STABILITY_FACTOR", def.LapseStabilityFactor),
		RelearnInterval:      envDurationOr("RELEARN_INTERVAL", def.RelearnInterval),
		DifficultyScaling:    envBoolOr("DIFFICULTY_SCALING", false),
		BehaviorModifiers:    envListOr("BEHAVIOR_MODIFIERS", nil),

		LearningAgain:   envDurationOr("LEARNING_AGAIN", def.Learning.Again),
		LearningHard:    envDurationOr("LEARNING_HARD", def.Learning.Hard),
		LearningGood:    envDurationOr("LEARNING_GOOD", def.Learning.Good),
		LearningEasy:    envDurationOr("LEARNING_EASY", def.Learning.Easy),
		TransitionAgain: envDurationOr("TRANSITION_AGAIN", def.Transition.Again),
		TransitionHard:  envDurationOr("TRANSITION_HARD", def.Transition.Hard),
		TransitionGood:  envDurationOr("TRANSITION_GOOD", def.Transition.Good),
		TransitionEasy:  envDurationOr("TRANSITION_EASY", def.Transition.Easy),

		SimulatedClock:   envBoolOr("SIMULATED_CLOCK", false),
		ClockAutoAdvance: envBoolOr("CLOCK_AUTO_ADVANCE", false),
	}
}

// BindFlags registers command-line overrides for the most commonly tuned
// settings. Flag defaults are the values already loaded into c.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP listen address")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite database path")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "DEBUG, INFO, WARN or ERROR")
	fs.IntVar(&c.LedgerWorkerCount, "ledger-workers", c.LedgerWorkerCount, "review ledger writer goroutines")
	fs.IntVar(&c.LedgerQueueSize, "ledger-queue", c.LedgerQueueSize, "review ledger queue capacity")
	fs.Float64Var(&c.TargetRetention, "target-retention", c.TargetRetention, "recall probability at which a card falls due")
	fs.Float64Var(&c.MaxIntervalDays, "max-interval-days", c.MaxIntervalDays, "longest interval between reviews")
	fs.DurationVar(&c.RelearnInterval, "relearn-interval", c.RelearnInterval, "delay after a lapse")
	fs.BoolVar(&c.DifficultyScaling, "difficulty-scaling", c.DifficultyScaling, "damp stability growth on hard cards")
	fs.StringSliceVar(&c.BehaviorModifiers, "modifiers", c.BehaviorModifiers, "stability modifiers: "+strings.Join(flashcard.ModifierNames(), ", "))
	fs.BoolVar(&c.SimulatedClock, "simulated-clock", c.SimulatedClock, "expose /clock for time travel")
	fs.BoolVar(&c.ClockAutoAdvance, "clock-auto-advance", c.ClockAutoAdvance, "advance the simulated clock to each review's due time")
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error

	if err := newValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, errors.New(message(fe)))
		}
	}

	if c.MinInterval > 0 && c.MaxIntervalDays > 0 && c.MaxIntervalDays*24*float64(time.Hour) < float64(c.MinInterval) {
		errs = append(errs, fmt.Errorf("MAX_INTERVAL_DAYS (%v) must not be shorter than MIN_INTERVAL (%v)", c.MaxIntervalDays, c.MinInterval))
	}
	if c.MinStability > 0 && c.InitialStability < c.MinStability {
		errs = append(errs, fmt.Errorf("INITIAL_STABILITY (%v) must be at least MIN_STABILITY (%v)", c.InitialStability, c.MinStability))
	}

	return errors.Join(errs...)
}

// Scheduler maps the settings onto the scheduler's configuration.
func (c Config) Scheduler() (flashcard.Config, error) {
	mods, err := flashcard.ModifiersByName(c.BehaviorModifiers...)
	if err != nil {
		return flashcard.Config{}, err
	}
	return flashcard.Config{
		TargetRetention:      c.TargetRetention,
		MaxIntervalDays:      c.MaxIntervalDays,
		MinIntervalDays:      c.MinInterval.Hours() / 24,
		InitialStability:     c.InitialStability,
		InitialDifficulty:    c.InitialDifficulty,
		MinStability:         c.MinStability,
		LapseStabilityFactor: c.LapseStabilityFactor,
		RelearnInterval:      c.RelearnInterval,
		DifficultyScaling:    c.DifficultyScaling,
		Learning: flashcard.PresetIntervals{
			Again: c.LearningAgain,
			Hard:  c.LearningHard,
			Good:  c.LearningGood,
			Easy:  c.LearningEasy,
		},
		Transition: flashcard.PresetIntervals{
			Again: c.TransitionAgain,
			Hard:  c.TransitionHard,
			Good:  c.TransitionGood,
			Easy:  c.TransitionEasy,
		},
		Modifiers: mods,
	}, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, ok := logger.LookupLevel(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("modifier", func(fl validator.FieldLevel) bool {
		_, err := flashcard.ModifiersByName(fl.Field().String())
		return err == nil
	})
	return v
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s cannot be empty", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "lt":
		return fmt.Sprintf("%s must be less than %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be at most %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "loglevel":
		return fmt.Sprintf("%s must be one of DEBUG, INFO, WARN, ERROR (got %q)", fe.Field(), fe.Value())
	case "modifier":
		return fmt.Sprintf("%s: unknown modifier %q (known: %s)", fe.Field(), fe.Value(), strings.Join(flashcard.ModifierNames(), ", "))
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		logger.Warn("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		logger.Warn("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		logger.Warn("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		logger.Warn("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}

func envListOr(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
