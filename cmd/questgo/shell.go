package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/quest-go/circuit"
	"github.com/wippyai/quest-go/quest"
)

// stateLimit bounds the number of amplitudes the state command prints.
const stateLimit = 64

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var shellFlags struct {
	qubits  int
	density bool
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Apply operations to a register interactively",
	Long: `Open a register and read one operation per line, e.g. "h 0", "cnot 0 1",
"rx 1 pi/4", "measure 0". "state" prints the amplitudes, "ops" lists the
operations and "quit" leaves. Without a terminal, lines are read from
stdin and results written to stdout.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)

	shellCmd.Flags().IntVar(&shellFlags.qubits, "qubits", 3, "register size")
	shellCmd.Flags().BoolVar(&shellFlags.density, "density", false, "use a density matrix register")
}

func runShell(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		r, err := s.newRegister(shellFlags.qubits, shellFlags.density)
		if err != nil {
			return err
		}
		defer r.Close()

		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return runScript(r, cmd.InOrStdin(), cmd.OutOrStdout())
		}
		p := tea.NewProgram(newShellModel(r), tea.WithAltScreen())
		_, err = p.Run()
		return err
	})
}

// runScript applies every line of in to r. Engine faults are printed and
// the script continues, like the interactive shell.
func runScript(r *quest.Register, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "quit" || line == "exit" {
			return nil
		}
		res, err := execLine(r, line)
		switch {
		case err != nil:
			fmt.Fprintf(out, "error: %v\n", err)
		case res != "":
			fmt.Fprintln(out, res)
		}
	}
	return sc.Err()
}

// execLine runs one shell command against r.
func execLine(r *quest.Register, line string) (string, error) {
	switch strings.TrimSpace(line) {
	case "ops":
		return strings.Join(circuit.Ops(), " "), nil
	case "state":
		return formatState(r)
	case "info":
		kind := "state vector"
		if r.IsDensityMatrix() {
			kind = "density matrix"
		}
		return fmt.Sprintf("register %s: %d qubits, %s", r.ID(), r.NumQubits(), kind), nil
	}

	step, ok, err := circuit.ParseLine(line)
	if err != nil || !ok {
		return "", err
	}
	if err := step.Check(); err != nil {
		return "", err
	}
	return step.Apply(r)
}

func formatState(r *quest.Register) (string, error) {
	if r.IsDensityMatrix() {
		return formatDensity(r)
	}
	n := min(r.NumAmps(), stateLimit)
	width := r.NumQubits()
	var b strings.Builder
	for i := int64(0); i < n; i++ {
		amp, err := r.Amp(i)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "|%0*b>  %.6f%+.6fi", width, i, real(amp), imag(amp))
	}
	if n < r.NumAmps() {
		fmt.Fprintf(&b, "\n... %d more", r.NumAmps()-n)
	}
	return b.String(), nil
}

// formatDensity prints the diagonal, i.e. the basis state populations.
func formatDensity(r *quest.Register) (string, error) {
	dim := int64(1) << uint(r.NumQubits())
	n := min(dim, stateLimit)
	var b strings.Builder
	for i := int64(0); i < n; i++ {
		amp, err := r.DensityAmp(i, i)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "|%0*b><%0*b|  %.6f", r.NumQubits(), i, r.NumQubits(), i, real(amp))
	}
	return b.String(), nil
}

type shellModel struct {
	reg      *quest.Register
	input    textinput.Model
	output   viewport.Model
	history  []string
	lines    []string
	histIdx  int
	ready    bool
	quitting bool
}

type lineResultMsg struct {
	err    error
	line   string
	result string
}

func newShellModel(r *quest.Register) *shellModel {
	ti := textinput.New()
	ti.Placeholder = "h 0"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()
	return &shellModel{reg: r, input: ti}
}

func (m *shellModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-5, 1)
		if !m.ready {
			m.output = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.output.Width = msg.Width
			m.output.Height = height
		}
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "up":
			if m.histIdx > 0 {
				m.histIdx--
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.histIdx < len(m.history)-1 {
				m.histIdx++
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			} else {
				m.histIdx = len(m.history)
				m.input.SetValue("")
			}
			return m, nil

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "exit" {
				m.quitting = true
				return m, tea.Quit
			}
			m.history = append(m.history, line)
			m.histIdx = len(m.history)
			return m, m.execute(line)
		}

	case lineResultMsg:
		m.lines = append(m.lines, stepStyle.Render("> "+msg.line))
		switch {
		case msg.err != nil:
			m.lines = append(m.lines, errorStyle.Render(fmt.Sprintf("Error: %v", msg.err)))
		case msg.result != "":
			m.lines = append(m.lines, resultStyle.Render(msg.result))
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *shellModel) execute(line string) tea.Cmd {
	r := m.reg
	return func() tea.Msg {
		res, err := execLine(r, line)
		return lineResultMsg{line: line, result: res, err: err}
	}
}

func (m *shellModel) refresh() {
	if !m.ready {
		return
	}
	m.output.SetContent(strings.Join(m.lines, "\n"))
	m.output.GotoBottom()
}

func (m *shellModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Starting..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("questgo shell"))
	fmt.Fprintf(&b, " %d qubits", m.reg.NumQubits())
	if m.reg.IsDensityMatrix() {
		b.WriteString(" (density)")
	}
	b.WriteString("\n\n")
	b.WriteString(m.output.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter apply • ↑/↓ history • state • ops • esc quit"))
	return b.String()
}
