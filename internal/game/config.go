package game

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"

	"github.com/stattek/starstruck/internal/gamedata"
)

// Environment variables read by LoadConfig.
const (
	EnvSeed         = "STARSTRUCK_SEED"
	EnvPlayerName   = "STARSTRUCK_PLAYER_NAME"
	EnvClass        = "STARSTRUCK_CLASS"
	EnvHistoryLimit = "STARSTRUCK_HISTORY_LIMIT"
	EnvLogFile      = "STARSTRUCK_LOG_FILE"
	EnvLogVerbosity = "STARSTRUCK_LOG_VERBOSITY"
)

const (
	// DefaultHistoryLimit is the number of event lines an encounter keeps.
	DefaultHistoryLimit = 12
	// DefaultLogFile receives the structured log; the terminal belongs to the UI.
	DefaultLogFile = "starstruck.log"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Same seed and inputs replay the
	// same encounter.
	Seed         int64
	PlayerName   string
	ClassID      string
	HistoryLimit int
	LogFile      string
	LogVerbosity int
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		ClassID:      gamedata.DefaultClassID,
		HistoryLimit: DefaultHistoryLimit,
		LogFile:      DefaultLogFile,
	}
}

// LoadConfig reads the configuration from the environment. A missing seed
// is filled from the clock so every run still has a seed worth logging.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv(EnvSeed)); v != "" {
		cfg.Seed = ParseSeed(v)
	} else {
		cfg.Seed = time.Now().UnixNano()
	}

	cfg.PlayerName = strings.TrimSpace(os.Getenv(EnvPlayerName))

	if v := strings.TrimSpace(os.Getenv(EnvClass)); v != "" {
		cfg.ClassID = cases.Fold().String(v)
	}

	if v := os.Getenv(EnvHistoryLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvHistoryLimit, err)
		}
		if n < 1 {
			return cfg, fmt.Errorf("%s must be at least 1, got %d", EnvHistoryLimit, n)
		}
		cfg.HistoryLimit = n
	}

	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}

	if v := os.Getenv(EnvLogVerbosity); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogVerbosity, err)
		}
		cfg.LogVerbosity = n
	}

	return cfg, nil
}

// ParseSeed turns a seed setting into a numeric seed. Integers are used as
// is; any other phrase is hashed so "dragon hunt" is a valid seed too.
func ParseSeed(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return int64(xxhash.Sum64String(s))
}

// NewRand returns the random source for an encounter seeded from c.
func (c Config) NewRand() *rand.Rand {
	return rand.New(rand.NewSource(c.Seed))
}
