// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"

	"github.com/tribe-app/matchd/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// TopK is the default number of results returned per match request.
	TopK int `koanf:"top_k"`

	// MaxLimit caps caller-supplied limit/top-K parameters.
	MaxLimit int `koanf:"max_limit"`

	// PoolLimit caps the candidate pool fetched per request.
	PoolLimit int `koanf:"pool_limit"`

	// MinScore is the profile-mode relevance threshold in [0,100].
	MinScore float64 `koanf:"min_score"`

	// BatchWorkers sets the scoring pool size.
	BatchWorkers int `koanf:"batch_workers"`

	// ProfileWeights is the plain profile-to-entity weight vector.
	ProfileWeights scoring.Weights `koanf:"profile_weights"`

	// UniversityWeights is the vector for university-filtered pools.
	// Not interchangeable with ProfileWeights.
	UniversityWeights scoring.Weights `koanf:"university_weights"`

	// Seed populates the in-memory catalog with sample data on startup.
	Seed bool `koanf:"seed"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		TopK:              10,
		MaxLimit:          50,
		PoolLimit:         20,
		MinScore:          0,
		BatchWorkers:      runtime.NumCPU(),
		ProfileWeights:    scoring.ProfileMatchWeights(),
		UniversityWeights: scoring.UniversityAwareWeights(),
		Seed:              true,
	}
}
