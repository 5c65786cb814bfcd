package engine

import (
	"math"
	"math/cmplx"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

type testFault struct {
	msg string
	fn  string
}

func TestMain(m *testing.M) {
	SetFaultHandler(func(msg, fn string) {
		panic(testFault{msg: msg, fn: fn})
	})
	os.Exit(m.Run())
}

// catch runs f and returns the fault it raised, if any.
func catch(f func()) (fault *testFault) {
	defer func() {
		if r := recover(); r != nil {
			tf, ok := r.(testFault)
			if !ok {
				panic(r)
			}
			fault = &tf
		}
	}()
	f()
	return nil
}

func newEnv(t *testing.T) *Env {
	t.Helper()
	env := CreateEnv()
	SeedQuEST(env, []uint64{1, 2})
	t.Cleanup(func() { DestroyEnv(env) })
	return env
}

func approx(a, b Qreal) bool {
	return math.Abs(float64(a-b)) < 1e-9
}

func approxC(a, b Qcomplex) bool {
	return cmplx.Abs(complex128(a-b)) < 1e-9
}

func TestBellState(t *testing.T) {
	env := newEnv(t)
	q := CreateQureg(2, env)
	defer DestroyQureg(q, env)

	Hadamard(q, 0)
	ControlledNot(q, 0, 1)

	h := Qcomplex(complex(1/math.Sqrt2, 0))
	want := []Qcomplex{h, 0, 0, h}
	for i, w := range want {
		if got := GetAmp(q, int64(i)); !approxC(got, w) {
			t.Errorf("amp[%d] = %v, want %v", i, got, w)
		}
	}
	if p := CalcTotalProb(q); !approx(p, 1) {
		t.Errorf("total prob = %v, want 1", p)
	}
}

func TestDensityMatchesStateVector(t *testing.T) {
	env := newEnv(t)
	sv := CreateQureg(3, env)
	dm := CreateDensityQureg(3, env)
	defer DestroyQureg(sv, env)
	defer DestroyQureg(dm, env)

	circuit := func(q *Qureg) {
		Hadamard(q, 0)
		ControlledNot(q, 0, 2)
		RotateY(q, 1, 0.3)
		TGate(q, 2)
		ControlledPhaseShift(q, 1, 2, 0.7)
		SwapGate(q, 0, 1)
		RotateAroundAxis(q, 2, 1.1, Vector{X: 1, Y: 2, Z: 3})
		PauliY(q, 0)
	}
	circuit(sv)
	circuit(dm)

	for r := int64(0); r < 8; r++ {
		for c := int64(0); c < 8; c++ {
			want := GetAmp(sv, r) * conj(GetAmp(sv, c))
			if got := GetDensityAmp(dm, r, c); !approxC(got, want) {
				t.Fatalf("rho[%d][%d] = %v, want %v", r, c, got, want)
			}
		}
	}
	if f := CalcFidelity(dm, sv); !approx(f, 1) {
		t.Errorf("fidelity = %v, want 1", f)
	}
	if p := CalcPurity(dm); !approx(p, 1) {
		t.Errorf("purity = %v, want 1", p)
	}
}

func TestInitStates(t *testing.T) {
	env := newEnv(t)
	q := CreateQureg(2, env)
	defer DestroyQureg(q, env)

	InitPlusState(q)
	for i := int64(0); i < 4; i++ {
		if p := GetProbAmp(q, i); !approx(p, 0.25) {
			t.Errorf("plus prob[%d] = %v", i, p)
		}
	}

	InitClassicalState(q, 2)
	if p := GetProbAmp(q, 2); !approx(p, 1) {
		t.Errorf("classical prob = %v", p)
	}

	InitDebugState(q)
	if a := GetAmp(q, 3); !approxC(a, complex(0.6, 0.7)) {
		t.Errorf("debug amp[3] = %v", a)
	}

	InitBlankState(q)
	if p := CalcTotalProb(q); p != 0 {
		t.Errorf("blank total prob = %v", p)
	}

	InitStateFromAmps(q, []Qreal{0, 1, 0, 0}, []Qreal{0, 0, 0, 0})
	if r := GetRealAmp(q, 1); r != 1 {
		t.Errorf("real amp = %v", r)
	}
	SetAmps(q, 2, []Qreal{0.5}, []Qreal{-0.5}, 1)
	if im := GetImagAmp(q, 2); im != -0.5 {
		t.Errorf("imag amp = %v", im)
	}

	dm := CreateDensityQureg(2, env)
	defer DestroyQureg(dm, env)
	InitZeroState(q)
	Hadamard(q, 1)
	InitPureState(dm, q)
	if a := GetDensityAmp(dm, 2, 0); !approxC(a, 0.5) {
		t.Errorf("rho[2][0] = %v, want 0.5", a)
	}
	InitPlusState(dm)
	if a := GetDensityAmp(dm, 3, 1); !approxC(a, 0.25) {
		t.Errorf("plus rho[3][1] = %v, want 0.25", a)
	}
}

func TestMeasurement(t *testing.T) {
	env := newEnv(t)
	q := CreateQureg(2, env)
	defer DestroyQureg(q, env)

	Hadamard(q, 0)
	ControlledNot(q, 0, 1)
	if p := CalcProbOfOutcome(q, 1, 1); !approx(p, 0.5) {
		t.Fatalf("prob = %v, want 0.5", p)
	}

	m0, p0 := MeasureWithStats(q, 0)
	if !approx(p0, 0.5) {
		t.Errorf("outcome prob = %v, want 0.5", p0)
	}
	if m1 := Measure(q, 1); m1 != m0 {
		t.Errorf("bell outcomes differ: %d vs %d", m0, m1)
	}

	InitPlusState(q)
	if p := CollapseToOutcome(q, 0, 1); !approx(p, 0.5) {
		t.Errorf("collapse prob = %v", p)
	}
	if p := CalcProbOfOutcome(q, 0, 1); !approx(p, 1) {
		t.Errorf("post-collapse prob = %v", p)
	}
}

func TestMeasurementDeterministicWithSeed(t *testing.T) {
	env := newEnv(t)
	run := func() []int {
		q := CreateQureg(1, env)
		defer DestroyQureg(q, env)
		SeedQureg(q, []uint64{42})
		var out []int
		for i := 0; i < 16; i++ {
			InitPlusState(q)
			out = append(out, Measure(q, 0))
		}
		return out
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded runs diverge at %d: %v vs %v", i, a, b)
		}
	}
}

func TestDecoherence(t *testing.T) {
	env := newEnv(t)
	q := CreateDensityQureg(1, env)
	defer DestroyQureg(q, env)

	InitPlusState(q)
	MixDephasing(q, 0, 0.5)
	if a := GetDensityAmp(q, 0, 1); !approxC(a, 0) {
		t.Errorf("dephased off-diagonal = %v, want 0", a)
	}
	if p := CalcPurity(q); !approx(p, 0.5) {
		t.Errorf("purity = %v, want 0.5", p)
	}

	InitClassicalState(q, 1)
	MixDamping(q, 0, 1)
	if p := CalcProbOfOutcome(q, 0, 0); !approx(p, 1) {
		t.Errorf("fully damped prob(0) = %v, want 1", p)
	}

	InitZeroState(q)
	MixDepolarising(q, 0, 0.75)
	if p := CalcPurity(q); !approx(p, 0.5) {
		t.Errorf("depolarised purity = %v, want 0.5", p)
	}
	if p := CalcTotalProb(q); !approx(p, 1) {
		t.Errorf("trace = %v, want 1", p)
	}
}

func TestInnerProductAndClone(t *testing.T) {
	env := newEnv(t)
	a := CreateQureg(2, env)
	b := CreateQureg(2, env)
	defer DestroyQureg(a, env)
	defer DestroyQureg(b, env)

	Hadamard(a, 0)
	CloneQureg(b, a)
	if ip := CalcInnerProduct(a, b); !approxC(ip, 1) {
		t.Errorf("<a|a> = %v, want 1", ip)
	}
	PauliZ(b, 0)
	if ip := CalcInnerProduct(a, b); !approxC(ip, 0) {
		t.Errorf("<+|-> = %v, want 0", ip)
	}
}

func TestUnitaries(t *testing.T) {
	env := newEnv(t)
	q := CreateQureg(2, env)
	defer DestroyQureg(q, env)

	CompactUnitary(q, 0, 0, 1)
	if p := GetProbAmp(q, 1); !approx(p, 1) {
		t.Errorf("compact unitary prob = %v", p)
	}
	Unitary(q, 1, pauliX)
	if p := GetProbAmp(q, 3); !approx(p, 1) {
		t.Errorf("unitary prob = %v", p)
	}
	ControlledUnitary(q, 1, 0, pauliX)
	if p := GetProbAmp(q, 2); !approx(p, 1) {
		t.Errorf("controlled unitary prob = %v", p)
	}
	MultiQubitNot(q, []int{0, 1})
	if p := GetProbAmp(q, 1); !approx(p, 1) {
		t.Errorf("multi not prob = %v", p)
	}
	InitPlusState(q)
	MultiControlledPhaseFlip(q, []int{0, 1})
	if a := GetAmp(q, 3); !approxC(a, -0.5) {
		t.Errorf("phase flipped amp = %v", a)
	}
	SGate(q, 0)
	PhaseShift(q, 1, math.Pi)
	ControlledPhaseFlip(q, 0, 1)
	RotateX(q, 0, 0.2)
	RotateZ(q, 1, 0.4)
	PauliX(q, 1)
	if p := CalcTotalProb(q); !approx(p, 1) {
		t.Errorf("norm drifted to %v", p)
	}
}

func TestValidationFaults(t *testing.T) {
	env := newEnv(t)
	q := CreateQureg(3, env)
	dm := CreateDensityQureg(2, env)
	other := CreateQureg(2, env)
	defer DestroyQureg(q, env)
	defer DestroyQureg(dm, env)
	defer DestroyQureg(other, env)

	tests := []struct {
		name string
		call func()
		fn   string
		msg  string
	}{
		{"target out of range", func() { Hadamard(q, 5) }, "hadamard", "Invalid target qubit 5. Must be >=0 and <3."},
		{"negative target", func() { PauliX(q, -1) }, "pauliX", "Invalid target qubit -1"},
		{"control equals target", func() { ControlledNot(q, 1, 1) }, "controlledNot", "cannot equal target"},
		{"control out of range", func() { ControlledPhaseFlip(q, 7, 0) }, "controlledPhaseFlip", "Invalid control qubit 7"},
		{"duplicate swap", func() { SwapGate(q, 2, 2) }, "swapGate", "must be unique"},
		{"duplicate multi", func() { MultiQubitNot(q, []int{0, 0}) }, "multiQubitNot", "must be unique"},
		{"empty multi", func() { MultiControlledPhaseFlip(q, nil) }, "multiControlledPhaseFlip", "Invalid number of qubits 0"},
		{"bad outcome", func() { CalcProbOfOutcome(q, 0, 2) }, "calcProbOfOutcome", "Invalid measurement outcome 2"},
		{"zero prob collapse", func() { CollapseToOutcome(q, 0, 1) }, "collapseToOutcome", "zero probability"},
		{"classical index", func() { InitClassicalState(q, 8) }, "initClassicalState", "Invalid state index 8"},
		{"amp index", func() { GetAmp(q, 9) }, "getAmp", "Invalid amplitude index 9"},
		{"amp on density", func() { GetAmp(dm, 0) }, "getAmp", "state-vectors"},
		{"purity on vector", func() { CalcPurity(q) }, "calcPurity", "density matrices"},
		{"dephase prob", func() { MixDephasing(dm, 0, 0.6) }, "mixDephasing", "cannot exceed 1/2"},
		{"depol prob", func() { MixDepolarising(dm, 0, 0.8) }, "mixDepolarising", "cannot exceed 3/4"},
		{"damping prob", func() { MixDamping(dm, 0, 1.5) }, "mixDamping", "Probabilities must be in [0, 1]"},
		{"dims mismatch", func() { CalcInnerProduct(q, other) }, "calcInnerProduct", "don't match"},
		{"type mismatch", func() { CloneQureg(dm, other) }, "cloneQureg", "both be state-vectors"},
		{"fidelity density pure", func() { CalcFidelity(other, dm) }, "calcFidelity", "Second argument must be a state-vector"},
		{"not unitary", func() { Unitary(q, 0, ComplexMatrix2{{1, 1}, {0, 1}}) }, "unitary", "not unitary"},
		{"compact pair", func() { CompactUnitary(q, 0, 1, 1) }, "compactUnitary", "|alpha|^2 + |beta|^2"},
		{"zero axis", func() { RotateAroundAxis(q, 0, 1, Vector{}) }, "rotateAroundAxis", "Invalid axis vector"},
		{"amps length", func() { InitStateFromAmps(q, []Qreal{1}, []Qreal{0}) }, "initStateFromAmps", "Invalid number of amplitudes"},
		{"set amps range", func() { SetAmps(q, 6, []Qreal{1, 1, 1}, []Qreal{0, 0, 0}, 3) }, "setAmps", "Invalid number of amplitudes 3"},
		{"zero qubits", func() { CreateQureg(0, env) }, "createQureg", "Must create >0"},
		{"too many density qubits", func() { CreateDensityQureg(MaxStateVecQubits, env) }, "createDensityQureg", "Too many qubits"},
		{"no seeds", func() { SeedQuEST(env, nil) }, "seedQuEST", "random seeds"},
		{"second env", func() { CreateEnv() }, "createQuESTEnv", "already created"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := catch(tt.call)
			if f == nil {
				t.Fatal("expected fault")
			}
			if f.fn != tt.fn {
				t.Errorf("fn = %q, want %q", f.fn, tt.fn)
			}
			if !strings.Contains(f.msg, tt.msg) {
				t.Errorf("message %q does not contain %q", f.msg, tt.msg)
			}
		})
	}
}

func TestDestroyedQuregFaults(t *testing.T) {
	env := newEnv(t)
	q := CreateQureg(1, env)
	DestroyQureg(q, env)

	f := catch(func() { Hadamard(q, 0) })
	if f == nil || !strings.Contains(f.msg, "destroyed") {
		t.Fatalf("expected destroyed fault, got %+v", f)
	}
	f = catch(func() { DestroyQureg(q, env) })
	if f == nil || f.fn != "destroyQureg" {
		t.Fatalf("expected double destroy fault, got %+v", f)
	}
}

func TestQASMRecording(t *testing.T) {
	env := newEnv(t)
	q := CreateQureg(2, env)
	defer DestroyQureg(q, env)

	Hadamard(q, 0)
	StartRecordingQASM(q)
	ControlledNot(q, 0, 1)
	RotateX(q, 1, 0.5)
	Measure(q, 0)
	StopRecordingQASM(q)
	PauliX(q, 1)

	out := RecordedQASM(q)
	for _, want := range []string{"OPENQASM 2.0;", "qreg q[2];", "cx q[0],q[1];", "rx(0.5) q[1];", "measure q[0] -> c[0];"} {
		if !strings.Contains(out, want) {
			t.Errorf("qasm missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "h q[0]") || strings.Contains(out, "x q[1];") {
		t.Errorf("qasm recorded gates outside the recording window:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "circuit.qasm")
	WriteRecordedQASMToFile(q, path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read qasm: %v", err)
	}
	if string(data) != out {
		t.Error("file contents differ from transcript")
	}

	f := catch(func() { WriteRecordedQASMToFile(q, filepath.Join(t.TempDir(), "missing", "x.qasm")) })
	if f == nil || !strings.Contains(f.msg, "Could not open file") {
		t.Fatalf("expected file fault, got %+v", f)
	}

	ClearRecordedQASM(q)
	if RecordedQASM(q) != "OPENQASM 2.0;\nqreg q[2];\ncreg c[2];\n" {
		t.Errorf("clear left %q", RecordedQASM(q))
	}
}

func TestReports(t *testing.T) {
	env := newEnv(t)
	q := CreateDensityQureg(2, env)
	defer DestroyQureg(q, env)

	if r := ReportEnv(env); !strings.Contains(r, "Number of ranks is 1") {
		t.Errorf("env report: %q", r)
	}
	if r := ReportQuregParams(q); !strings.Contains(r, "Number of amps is 16.") {
		t.Errorf("qureg report: %q", r)
	}
	if s := env.Seeds(); len(s) != 2 || s[0] != 1 {
		t.Errorf("seeds = %v", s)
	}
}

// The default handler must terminate the process. Checked in a child process.
func TestDefaultFaultHandlerExits(t *testing.T) {
	if os.Getenv("ENGINE_DEFAULT_HANDLER_CHILD") == "1" {
		SetFaultHandler(nil)
		env := CreateEnv()
		q := CreateQureg(1, env)
		Hadamard(q, 3)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestDefaultFaultHandlerExits$")
	cmd.Env = append(os.Environ(), "ENGINE_DEFAULT_HANDLER_CHILD=1")
	out, err := cmd.CombinedOutput()
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit status 1, got %v\n%s", err, out)
	}
	if !strings.Contains(string(out), "QuEST Error in function hadamard: Invalid target qubit 3") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestReturningHandlerExits(t *testing.T) {
	if os.Getenv("ENGINE_RETURNING_HANDLER_CHILD") == "1" {
		SetFaultHandler(func(string, string) {})
		env := CreateEnv()
		q := CreateQureg(1, env)
		PauliZ(q, 9)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestReturningHandlerExits$")
	cmd.Env = append(os.Environ(), "ENGINE_RETURNING_HANDLER_CHILD=1")
	out, err := cmd.CombinedOutput()
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit status 1, got %v\n%s", err, out)
	}
	if !strings.Contains(string(out), "fault handler returned") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCurrentFaultHandler(t *testing.T) {
	if CurrentFaultHandler() == nil {
		t.Fatal("TestMain handler should be installed")
	}
}
