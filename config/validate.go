package config

import (
	"fmt"
	"net"
	"sort"
	"strings"

	"github.com/wippyai/quest-go/engine"
)

// FieldError is a validation failure for one field.
type FieldError struct {
	// Field is the dotted path, e.g. "log.level".
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "invalid configuration: " + e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid configuration (%d errors):", len(e.Errors))
	for _, fe := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(fe.Error())
	}
	return b.String()
}

// Validate checks cfg and returns a ValidationError listing every problem.
func Validate(cfg *Config) error {
	var errs []FieldError

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{"log.level", fmt.Sprintf("unknown level %q", cfg.Log.Level)})
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, FieldError{"log.format", fmt.Sprintf("must be console or json, got %q", cfg.Log.Format)})
	}

	switch cfg.Engine.OutstandingPolicy {
	case "release", "reject":
	default:
		errs = append(errs, FieldError{"engine.outstanding_policy",
			fmt.Sprintf("must be release or reject, got %q", cfg.Engine.OutstandingPolicy)})
	}
	if cfg.Engine.MaxQubits < 1 || cfg.Engine.MaxQubits > engine.MaxStateVecQubits {
		errs = append(errs, FieldError{"engine.max_qubits",
			fmt.Sprintf("must be between 1 and %d, got %d", engine.MaxStateVecQubits, cfg.Engine.MaxQubits)})
	}

	if cfg.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(cfg.Metrics.Address); err != nil {
			errs = append(errs, FieldError{"metrics.address", err.Error()})
		}
		if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{"metrics.path", "must start with /"})
		}
	}
	if !sort.Float64sAreSorted(cfg.Metrics.DurationBuckets) {
		errs = append(errs, FieldError{"metrics.duration_buckets", "must be in increasing order"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
