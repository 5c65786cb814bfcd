package engine

import (
	"fmt"
	"os"
	"strings"
)

// qasmLog accumulates an OPENQASM 2.0 transcript of applied operations.
type qasmLog struct {
	buf       strings.Builder
	header    string
	recording bool
}

func (l *qasmLog) setup(numQubits int) {
	l.header = fmt.Sprintf("OPENQASM 2.0;\nqreg q[%d];\ncreg c[%d];\n", numQubits, numQubits)
}

func (l *qasmLog) gate(name string, qubits ...int) {
	if !l.recording {
		return
	}
	l.buf.WriteString(name)
	l.buf.WriteByte(' ')
	writeQubits(&l.buf, qubits)
	l.buf.WriteString(";\n")
}

func (l *qasmLog) paramGate(name string, param Qreal, qubits ...int) {
	if !l.recording {
		return
	}
	fmt.Fprintf(&l.buf, "%s(%g) ", name, param)
	writeQubits(&l.buf, qubits)
	l.buf.WriteString(";\n")
}

func (l *qasmLog) measure(qubit int) {
	if !l.recording {
		return
	}
	fmt.Fprintf(&l.buf, "measure q[%d] -> c[%d];\n", qubit, qubit)
}

func (l *qasmLog) comment(format string, args ...any) {
	if !l.recording {
		return
	}
	l.buf.WriteString("// ")
	fmt.Fprintf(&l.buf, format, args...)
	l.buf.WriteByte('\n')
}

func writeQubits(b *strings.Builder, qubits []int) {
	for i, q := range qubits {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "q[%d]", q)
	}
}

// StartRecordingQASM begins appending applied gates to the transcript.
func StartRecordingQASM(q *Qureg) {
	const fn = "startRecordingQASM"
	validateQureg(q, fn)
	q.qasm.recording = true
}

// StopRecordingQASM pauses recording; the transcript is kept.
func StopRecordingQASM(q *Qureg) {
	const fn = "stopRecordingQASM"
	validateQureg(q, fn)
	q.qasm.recording = false
}

// ClearRecordedQASM discards the transcript.
func ClearRecordedQASM(q *Qureg) {
	const fn = "clearRecordedQASM"
	validateQureg(q, fn)
	q.qasm.buf.Reset()
}

// RecordedQASM returns the header followed by every recorded instruction.
func RecordedQASM(q *Qureg) string {
	const fn = "printRecordedQASM"
	validateQureg(q, fn)
	return q.qasm.header + q.qasm.buf.String()
}

// WriteRecordedQASMToFile writes the transcript to filename.
func WriteRecordedQASMToFile(q *Qureg, filename string) {
	const fn = "writeRecordedQASMToFile"
	validateQureg(q, fn)
	if err := os.WriteFile(filename, []byte(RecordedQASM(q)), 0o644); err != nil {
		raise(fn, "Could not open file (%s).", filename)
	}
}
