package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wippyai/quest-go/config"
	"github.com/wippyai/quest-go/errors"
	"github.com/wippyai/quest-go/quest"
	"github.com/wippyai/quest-go/resource"
)

func testCollector() *Collector {
	return NewCollector(config.MetricsConfig{
		Namespace:       "test",
		DurationBuckets: []float64{1e-6, 1e-3, 1},
	}, prometheus.NewRegistry())
}

func TestCollector_ObserveCall(t *testing.T) {
	c := testCollector()

	c.ObserveCall("hadamard", time.Microsecond, nil)
	c.ObserveCall("hadamard", time.Microsecond, errors.EngineFault("hadamard", "hadamard", "bad"))
	c.ObserveCall("measure", time.Microsecond, errors.EngineFault("measure", "collapseToOutcome", "bad"))
	c.ObserveCall("setAmps", 0, errors.LengthMismatch("setAmps", "imags", 1, 2))
	c.ObserveCall("x", 0, io.EOF)

	tests := []struct {
		op, outcome string
		want        float64
	}{
		{"hadamard", OutcomeOK, 1},
		{"hadamard", OutcomeEngineFault, 1},
		{"measure", OutcomeEngineFault, 1},
		{"setAmps", OutcomeContractViolation, 1},
		{"x", OutcomeOther, 1},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(c.calls.WithLabelValues(tt.op, tt.outcome)); got != tt.want {
			t.Errorf("calls{%s,%s} = %v, want %v", tt.op, tt.outcome, got, tt.want)
		}
	}

	if got := testutil.ToFloat64(c.faults.WithLabelValues("collapseToOutcome")); got != 1 {
		t.Errorf("faults{collapseToOutcome} = %v", got)
	}
	if got := testutil.CollectAndCount(c.duration); got != 4 {
		t.Errorf("duration series = %d, want 4", got)
	}
}

func TestCollector_RegisterEvents(t *testing.T) {
	c := testCollector()

	c.OnResourceEvent(resource.Event{Type: resource.EventCreated, Tag: quest.TagStateVector})
	c.OnResourceEvent(resource.Event{Type: resource.EventCreated, Tag: quest.TagDensity})
	c.OnResourceEvent(resource.Event{Type: resource.EventCreated, Tag: quest.TagDensity})
	c.OnResourceEvent(resource.Event{Type: resource.EventDropped, Tag: quest.TagDensity})

	if got := testutil.ToFloat64(c.live.WithLabelValues("density")); got != 1 {
		t.Errorf("live density = %v", got)
	}
	if got := testutil.ToFloat64(c.allocated.WithLabelValues("density")); got != 2 {
		t.Errorf("allocated density = %v", got)
	}
	if got := testutil.ToFloat64(c.live.WithLabelValues("statevector")); got != 1 {
		t.Errorf("live statevector = %v", got)
	}
}

func TestCollector_WithEnv(t *testing.T) {
	c := testCollector()

	env, err := quest.NewEnv(quest.WithMetrics(c))
	if err != nil {
		t.Fatal(err)
	}
	reg, err := quest.NewRegister(env, 3)
	if err != nil {
		t.Fatal(err)
	}

	_ = reg.Hadamard(0)
	_ = reg.Hadamard(5)
	if got := testutil.ToFloat64(c.live.WithLabelValues("statevector")); got != 1 {
		t.Errorf("live = %v while open", got)
	}

	if err := reg.Close(); err != nil {
		t.Fatal(err)
	}
	if err := env.Close(); err != nil {
		t.Fatal(err)
	}

	if got := testutil.ToFloat64(c.faults.WithLabelValues("hadamard")); got != 1 {
		t.Errorf("faults{hadamard} = %v", got)
	}
	if got := testutil.ToFloat64(c.calls.WithLabelValues("hadamard", OutcomeOK)); got != 1 {
		t.Errorf("ok hadamard calls = %v", got)
	}
	if got := testutil.ToFloat64(c.live.WithLabelValues("statevector")); got != 0 {
		t.Errorf("live = %v after close", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	c := testCollector()
	c.ObserveCall("pauliX", time.Millisecond, nil)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), `test_engine_calls_total{op="pauliX",outcome="ok"} 1`) {
		t.Fatalf("exposition missing call counter:\n%s", body)
	}
}

func TestNewCollector_Defaults(t *testing.T) {
	c := NewCollector(config.MetricsConfig{}, nil)
	if c.Registry() == nil {
		t.Fatal("nil registry")
	}
	c.ObserveCall("op", 0, nil)

	expected := `
# HELP questgo_engine_calls_total Guarded engine calls by operation and outcome.
# TYPE questgo_engine_calls_total counter
questgo_engine_calls_total{op="op",outcome="ok"} 1
`
	if err := testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "questgo_engine_calls_total"); err != nil {
		t.Fatal(err)
	}
}
