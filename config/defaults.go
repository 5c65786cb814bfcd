package config

import "github.com/wippyai/quest-go/engine"

const (
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "console"
	DefaultOutstandingPolicy = "release"
	DefaultMaxQubits         = 16
	DefaultMetricsAddress    = "127.0.0.1:9464"
	DefaultMetricsPath       = "/metrics"
	DefaultMetricsNamespace  = "questgo"
)

// DefaultDurationBuckets span single gates on small registers up to full
// sweeps over the largest ones.
var DefaultDurationBuckets = []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 0.1, 1}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields. It is idempotent.
func ApplyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Engine.OutstandingPolicy == "" {
		cfg.Engine.OutstandingPolicy = DefaultOutstandingPolicy
	}
	if cfg.Engine.MaxQubits == 0 {
		cfg.Engine.MaxQubits = min(DefaultMaxQubits, engine.MaxStateVecQubits)
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = DefaultMetricsAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if len(cfg.Metrics.DurationBuckets) == 0 {
		cfg.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
}
