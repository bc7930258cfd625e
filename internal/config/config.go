// Package config defines process configuration for the telerisk binaries.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// SectorsFile points at a sector catalog YAML. Empty uses the embedded catalog.
	SectorsFile string `koanf:"sectors_file"`

	// WorkerCount sets the number of batch assessment workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory batch job queue.
	QueueSize int `koanf:"queue_size"`

	// MaxBatchSize caps the number of projects accepted in one batch.
	MaxBatchSize int `koanf:"max_batch_size"`

	// TopRiskLimit caps the ranked risk factor list of a report.
	TopRiskLimit int `koanf:"top_risk_limit"`

	// RecommendationLimit caps the priority recommendation list of a report.
	RecommendationLimit int `koanf:"recommendation_limit"`

	// BatchTimeoutMS bounds how long a batch waits for its results.
	BatchTimeoutMS int `koanf:"batch_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		WorkerCount:         runtime.NumCPU(),
		QueueSize:           1_000,
		MaxBatchSize:        500,
		TopRiskLimit:        10,
		RecommendationLimit: 15,
		BatchTimeoutMS:      30_000,
	}
}
