package config

// Config is the complete questgo configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Engine  EngineConfig  `yaml:"engine"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig selects the zap logger built by the CLI.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is console or json.
	Format string `yaml:"format"`

	// Development enables stack traces on warnings and caller annotation.
	Development bool `yaml:"development"`
}

// EngineConfig controls the environment created by the CLI.
type EngineConfig struct {
	// Seeds for the measurement generators. Empty means time-seeded.
	Seeds []uint64 `yaml:"seeds"`

	// OutstandingPolicy is release or reject.
	OutstandingPolicy string `yaml:"outstanding_policy"`

	// MaxQubits caps register size for CLI commands. It cannot raise the
	// engine's own limit.
	MaxQubits int `yaml:"max_qubits"`
}

// MetricsConfig controls the Prometheus collector and its HTTP endpoint.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Address   string `yaml:"address"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`

	// DurationBuckets are histogram bounds in seconds for engine calls.
	DurationBuckets []float64 `yaml:"duration_buckets"`
}
