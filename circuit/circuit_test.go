package circuit

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wippyai/quest-go/errors"
	"github.com/wippyai/quest-go/quest"
)

func newEnv(t *testing.T) *quest.Env {
	t.Helper()
	env, err := quest.NewEnv(quest.WithSeeds(1, 2))
	if err != nil {
		t.Fatalf("NewEnv: %v", err)
	}
	t.Cleanup(func() {
		for _, r := range env.Registers() {
			_ = r.Close()
		}
		if err := env.Close(); err != nil {
			t.Errorf("env Close: %v", err)
		}
	})
	return env
}

const bellYAML = `
name: bell
qubits: 2
steps:
  - {op: h, qubits: [0]}
  - {op: cnot, qubits: [0, 1]}
  - {op: prob, qubits: [1], params: [1]}
  - {op: measure, qubits: [0]}
  - {op: measure, qubits: [1]}
`

func TestParseAndRunBell(t *testing.T) {
	c, err := Parse([]byte(bellYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Name != "bell" || c.Qubits != 2 || len(c.Steps) != 5 {
		t.Fatalf("circuit = %+v", c)
	}

	env := newEnv(t)
	reg, err := c.NewRegister(env)
	if err != nil {
		t.Fatal(err)
	}
	results, err := c.Run(reg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("got %d results", len(results))
	}
	if results[2].Output != "0.50000000" {
		t.Errorf("prob output = %q", results[2].Output)
	}
	m0, m1 := results[3].Output[:1], results[4].Output[:1]
	if m0 != m1 {
		t.Fatalf("Bell measurements differ: %q vs %q", results[3].Output, results[4].Output)
	}
}

func TestRunStopsAtEngineFault(t *testing.T) {
	c := &Circuit{Qubits: 3, Steps: []Step{
		{Op: "h", Qubits: []int{0}},
		{Op: "h", Qubits: []int{5}},
		{Op: "x", Qubits: []int{1}},
	}}

	env := newEnv(t)
	reg, err := c.NewRegister(env)
	if err != nil {
		t.Fatal(err)
	}
	results, err := c.Run(reg)
	if !errors.IsEngineFault(err) {
		t.Fatalf("Run error = %v, want engine fault", err)
	}
	if !strings.Contains(err.Error(), "step 2 (h 5)") || !strings.Contains(err.Error(), "Invalid target qubit 5") {
		t.Errorf("error %q", err)
	}
	if len(results) != 1 {
		t.Fatalf("ran %d steps before fault", len(results))
	}
	if err := reg.PauliX(1); err != nil {
		t.Fatalf("register unusable after fault: %v", err)
	}
}

func TestDensityCircuit(t *testing.T) {
	c, err := Parse([]byte(`
qubits: 1
density: true
steps:
  - {op: h, qubits: [0]}
  - {op: dephase, qubits: [0], params: [0.5]}
  - {op: purity}
  - {op: amp, params: [1]}
`))
	if err != nil {
		t.Fatal(err)
	}

	env := newEnv(t)
	reg, err := c.NewRegister(env)
	if err != nil {
		t.Fatal(err)
	}
	if !reg.IsDensityMatrix() {
		t.Fatal("expected density register")
	}
	results, err := c.Run(reg)
	if err != nil {
		t.Fatal(err)
	}
	if results[2].Output != "0.50000000" {
		t.Errorf("purity = %q", results[2].Output)
	}
	if !strings.HasPrefix(results[3].Output, "0.50000000") {
		t.Errorf("diagonal amp = %q", results[3].Output)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "qubits: [", "parse circuit"},
		{"no qubits", "steps: []", "at least one qubit"},
		{"unknown op", "qubits: 1\nsteps:\n  - {op: teleport}\n", `unknown op "teleport"`},
		{"wrong arity", "qubits: 2\nsteps:\n  - {op: cnot, qubits: [0]}\n", "takes 2 qubits, got 1"},
		{"missing param", "qubits: 1\nsteps:\n  - {op: rx, qubits: [0]}\n", "takes 1 parameters, got 0"},
		{"empty variadic", "qubits: 1\nsteps:\n  - {op: mcz}\n", "at least one qubit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bell.yaml")
	if err := os.WriteFile(path, []byte(bellYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil || c.Name != "bell" {
		t.Fatalf("Load = %+v, %v", c, err)
	}
	if _, err := Load(path + ".missing"); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line   string
		op     string
		qubits []int
		params []float64
	}{
		{"h 0", "h", []int{0}, nil},
		{"  CNOT 0 1  ", "cnot", []int{0, 1}, nil},
		{"rx 2 0.5", "rx", []int{2}, []float64{0.5}},
		{"cphase 0 1 pi/2", "cphase", []int{0, 1}, []float64{math.Pi / 2}},
		{"mcz 0 1 2", "mcz", []int{0, 1, 2}, nil},
		{"prob 0 1 # chance of |1>", "prob", []int{0}, []float64{1}},
		{"amp 3", "amp", nil, []float64{3}},
		{"axis 0 pi 0 0 1", "axis", []int{0}, []float64{math.Pi, 0, 0, 1}},
		{"report", "report", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s, ok, err := ParseLine(tt.line)
			if err != nil || !ok {
				t.Fatalf("ParseLine = %v, %v", ok, err)
			}
			if s.Op != tt.op || len(s.Qubits) != len(tt.qubits) || len(s.Params) != len(tt.params) {
				t.Fatalf("step = %+v", s)
			}
			for i := range tt.qubits {
				if s.Qubits[i] != tt.qubits[i] {
					t.Errorf("qubit %d = %d", i, s.Qubits[i])
				}
			}
			for i := range tt.params {
				if math.Abs(s.Params[i]-tt.params[i]) > 1e-12 {
					t.Errorf("param %d = %v", i, s.Params[i])
				}
			}
		})
	}
}

func TestParseLine_SkipsAndErrors(t *testing.T) {
	for _, line := range []string{"", "   ", "# comment"} {
		if _, ok, err := ParseLine(line); ok || err != nil {
			t.Errorf("ParseLine(%q) = %v, %v", line, ok, err)
		}
	}
	for _, line := range []string{"warp 0", "h x", "h 0 1", "rx 0 tau", "cnot 0"} {
		if _, _, err := ParseLine(line); err == nil {
			t.Errorf("ParseLine(%q) should fail", line)
		}
	}
}

func TestParseParam(t *testing.T) {
	tests := map[string]float64{
		"1.5":      1.5,
		"pi":       math.Pi,
		"-pi/4":    -math.Pi / 4,
		"3*pi/2":   3 * math.Pi / 2,
		"PI":       math.Pi,
		"-2*pi":    -2 * math.Pi,
		"1e-3":     1e-3,
		"0.5*pi/1": math.Pi / 2,
	}
	for in, want := range tests {
		got, err := ParseParam(in)
		if err != nil || math.Abs(got-want) > 1e-12 {
			t.Errorf("ParseParam(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, bad := range []string{"tau", "pi/0", "x*pi", "pi/y"} {
		if _, err := ParseParam(bad); err == nil {
			t.Errorf("ParseParam(%q) should fail", bad)
		}
	}
}

func TestStepString(t *testing.T) {
	s := Step{Op: "cphase", Qubits: []int{0, 1}, Params: []float64{0.25}}
	if s.String() != "cphase 0 1 0.25" {
		t.Fatalf("String = %q", s.String())
	}
}

func TestGrover(t *testing.T) {
	env := newEnv(t)
	const n = 5
	reg, err := quest.NewRegister(env, n)
	if err != nil {
		t.Fatal(err)
	}

	rounds := GroverIterations(n)
	if rounds != 5 {
		t.Fatalf("GroverIterations(%d) = %d", n, rounds)
	}
	probs, err := Grover(reg, 19, rounds)
	if err != nil {
		t.Fatal(err)
	}
	if len(probs) != rounds {
		t.Fatalf("got %d probabilities", len(probs))
	}
	if probs[0] <= 1.0/(1<<n) {
		t.Errorf("first round did not amplify: %v", probs[0])
	}
	best := probs[0]
	for _, p := range probs {
		best = max(best, p)
	}
	if best < 0.9 {
		t.Fatalf("best solution probability %v, probs %v", best, probs)
	}

	if _, err := Grover(reg, 1<<n, 1); !errors.IsEngineFault(err) {
		t.Fatalf("out-of-range solution: %v", err)
	}
}

func TestOpsListed(t *testing.T) {
	names := Ops()
	if len(names) != len(ops) {
		t.Fatalf("Ops() returned %d of %d", len(names), len(ops))
	}
}
