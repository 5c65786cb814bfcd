package config

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/quest-go/errors"
)

// EnvPrefix prefixes every environment override, e.g. QUESTGO_LOG_LEVEL.
const EnvPrefix = "QUESTGO_"

// Load reads a YAML file, applies defaults and validates. An empty path
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read "+path)
		}
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	}

	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "validate "+path)
	}
	return cfg, nil
}

// LoadWithEnvOverrides is Load followed by QUESTGO_* overrides and a second
// validation. Environment values win over the file.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnvOverrides(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "validate environment overrides")
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, rejecting unknown keys.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if err == io.EOF {
			return nil
		}
		return errors.ParseFailed("configuration", err)
	}
	return nil
}

// ApplyEnvOverrides applies QUESTGO_<SECTION>_<FIELD> values found by
// lookup. Malformed numbers and booleans are errors.
func ApplyEnvOverrides(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	var firstErr error
	fail := func(name string, err error) {
		if firstErr == nil {
			firstErr = errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, EnvPrefix+name)
		}
	}

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	if v, ok := lookup(EnvPrefix + "LOG_DEVELOPMENT"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			fail("LOG_DEVELOPMENT", err)
		}
		cfg.Log.Development = b
	}

	str("ENGINE_OUTSTANDING_POLICY", &cfg.Engine.OutstandingPolicy)
	if v, ok := lookup(EnvPrefix + "ENGINE_SEEDS"); ok && v != "" {
		seeds, err := ParseSeeds(v)
		if err != nil {
			fail("ENGINE_SEEDS", err)
		}
		cfg.Engine.Seeds = seeds
	}
	if v, ok := lookup(EnvPrefix + "ENGINE_MAX_QUBITS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail("ENGINE_MAX_QUBITS", err)
		}
		cfg.Engine.MaxQubits = n
	}

	if v, ok := lookup(EnvPrefix + "METRICS_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			fail("METRICS_ENABLED", err)
		}
		cfg.Metrics.Enabled = b
	}
	str("METRICS_ADDRESS", &cfg.Metrics.Address)
	str("METRICS_PATH", &cfg.Metrics.Path)
	str("METRICS_NAMESPACE", &cfg.Metrics.Namespace)

	return firstErr
}

// ParseSeeds reads a comma-separated list of unsigned integers.
func ParseSeeds(s string) ([]uint64, error) {
	parts := strings.Split(s, ",")
	seeds := make([]uint64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, v)
	}
	return seeds, nil
}
