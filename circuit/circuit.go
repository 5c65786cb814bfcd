package circuit

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/quest-go/errors"
	"github.com/wippyai/quest-go/quest"
)

// Step is one operation in a circuit.
type Step struct {
	Op     string    `yaml:"op"`
	Qubits []int     `yaml:"qubits,omitempty"`
	Params []float64 `yaml:"params,omitempty"`
}

func (s Step) String() string {
	var b strings.Builder
	b.WriteString(s.Op)
	for _, q := range s.Qubits {
		fmt.Fprintf(&b, " %d", q)
	}
	for _, p := range s.Params {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p, 'g', -1, 64))
	}
	return b.String()
}

// Check verifies the op name and operand counts. Qubit ranges are left to
// the engine.
func (s Step) Check() error {
	shape, ok := ops[s.Op]
	if !ok {
		return errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Op(s.Op).
			Detail("unknown op %q", s.Op).
			Build()
	}
	if shape.qubits >= 0 && len(s.Qubits) != shape.qubits {
		return errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Op(s.Op).
			Value(len(s.Qubits)).
			Detail("takes %d qubits, got %d", shape.qubits, len(s.Qubits)).
			Build()
	}
	if shape.qubits < 0 && len(s.Qubits) == 0 {
		return errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Op(s.Op).
			Detail("takes at least one qubit").
			Build()
	}
	if len(s.Params) != shape.params {
		return errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Op(s.Op).
			Value(len(s.Params)).
			Detail("takes %d parameters, got %d", shape.params, len(s.Params)).
			Build()
	}
	return nil
}

// Apply runs the step against r. Output is non-empty for steps that read
// something back, such as measure or amp.
func (s Step) Apply(r *quest.Register) (string, error) {
	if err := s.Check(); err != nil {
		return "", err
	}
	return ops[s.Op].apply(r, s.Qubits, s.Params)
}

// Circuit is a named sequence of steps on a fixed number of qubits.
type Circuit struct {
	Name    string `yaml:"name"`
	Qubits  int    `yaml:"qubits"`
	Density bool   `yaml:"density"`
	Steps   []Step `yaml:"steps"`
}

// Result is the outcome of one executed step.
type Result struct {
	Step   Step
	Output string
}

// Parse decodes and checks a YAML circuit.
func Parse(data []byte) (*Circuit, error) {
	var c Circuit
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.ParseFailed("circuit", err)
	}
	if err := c.Check(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads and parses a YAML circuit file.
func Load(path string) (*Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "read "+path)
	}
	return Parse(data)
}

// Check verifies the register size and every step.
func (c *Circuit) Check() error {
	if c.Qubits < 1 {
		return errors.InvalidInput(errors.PhaseParse, fmt.Sprintf("circuit needs at least one qubit, got %d", c.Qubits))
	}
	for i, s := range c.Steps {
		if err := s.Check(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// NewRegister allocates a register of the circuit's size and kind.
func (c *Circuit) NewRegister(env *quest.Env) (*quest.Register, error) {
	if c.Density {
		return quest.NewDensityRegister(env, c.Qubits)
	}
	return quest.NewRegister(env, c.Qubits)
}

// Run applies every step in order and stops at the first error. The results
// of the steps that ran are returned either way.
func (c *Circuit) Run(r *quest.Register) ([]Result, error) {
	results := make([]Result, 0, len(c.Steps))
	for i, s := range c.Steps {
		out, err := s.Apply(r)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, s, err)
		}
		results = append(results, Result{Step: s, Output: out})
	}
	return results, nil
}

// ParseLine reads one step in the form "op q... p...", e.g. "cnot 0 1" or
// "rx 0 pi/2". Blank lines and lines starting with # yield ok == false.
func ParseLine(line string) (step Step, ok bool, err error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Step{}, false, nil
	}

	step.Op = strings.ToLower(fields[0])
	shape, known := ops[step.Op]
	if !known {
		return Step{}, false, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Op(step.Op).
			Detail("unknown op %q", fields[0]).
			Build()
	}

	args := fields[1:]
	nq := shape.qubits
	if nq < 0 {
		nq = len(args) - shape.params
	}
	if nq < 0 || nq > len(args) {
		nq = len(args)
	}
	for _, a := range args[:nq] {
		q, err := strconv.Atoi(a)
		if err != nil {
			return Step{}, false, errors.ParseFailed(fmt.Sprintf("qubit %q", a), err)
		}
		step.Qubits = append(step.Qubits, q)
	}
	for _, a := range args[nq:] {
		p, err := ParseParam(a)
		if err != nil {
			return Step{}, false, err
		}
		step.Params = append(step.Params, p)
	}

	if err := step.Check(); err != nil {
		return Step{}, false, err
	}
	return step, true, nil
}

// ParseParam reads a number, allowing pi with an optional sign, multiplier
// and divisor: "pi", "-pi/4", "3*pi/2", "0.25".
func ParseParam(s string) (float64, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	expr := strings.ToLower(s)
	sign := 1.0
	if strings.HasPrefix(expr, "-") {
		sign, expr = -1, expr[1:]
	}

	num, den := expr, ""
	if i := strings.IndexByte(expr, '/'); i >= 0 {
		num, den = expr[:i], expr[i+1:]
	}

	mult := 1.0
	if i := strings.IndexByte(num, '*'); i >= 0 {
		m, err := strconv.ParseFloat(num[:i], 64)
		if err != nil {
			return 0, errors.ParseFailed(fmt.Sprintf("parameter %q", s), err)
		}
		mult, num = m, num[i+1:]
	}
	if num != "pi" {
		return 0, errors.ParseFailed(fmt.Sprintf("parameter %q", s), strconv.ErrSyntax)
	}

	v := sign * mult * math.Pi
	if den != "" {
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, errors.ParseFailed(fmt.Sprintf("parameter %q", s), strconv.ErrSyntax)
		}
		v /= d
	}
	return v, nil
}
