package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

type model struct {
	cpu *CPU

	prevPC uint16
	lastOp string
	error  error
}

// Init satisfies tea.Model; the CPU is already constructed and reset by
// the time Debug is called, so there is no setup command to return.
func (m model) Init() tea.Cmd { return nil }

// Update steps the CPU by one instruction per "space" or "j" keypress.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.cpu.PC
			entry := baseOpcodes[m.cpu.Bus.Peek(m.cpu.PC)]
			if entry.Exec != nil {
				m.lastOp = entry.Name
			}
			if _, err := m.cpu.Step(); err != nil {
				m.error = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderPage renders 16 bytes of the address space as one line, with the
// byte at PC highlighted.
func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		b := m.cpu.Bus.Peek(addr)
		if addr == m.cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "page | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}
	lines := []string{header}

	base := m.cpu.PC &^ 0x000F
	for row := -2; row <= 2; row++ {
		start := uint16(int32(base) + int32(row)*16)
		lines = append(lines, m.renderPage(start))
	}
	return strings.Join(lines, "\n")
}

func flagGlyph(set bool, letter string) string {
	if set {
		return letter
	}
	return "_"
}

func (m model) status() string {
	c := m.cpu
	flags := strings.Join([]string{
		flagGlyph(c.Flags.Z, "Z"),
		flagGlyph(c.Flags.N, "N"),
		flagGlyph(c.Flags.H, "H"),
		flagGlyph(c.Flags.C, "C"),
	}, " ")

	return fmt.Sprintf(`
PC: %04x (was %04x)
AF: %04x  BC: %04x
DE: %04x  HL: %04x
SP: %04x
%s
IME: %v  Halted: %v
last: %s
`,
		c.PC, m.prevPC,
		c.AF(), c.BC(),
		c.DE(), c.HL(),
		c.SP,
		flags,
		c.IME, c.Halted,
		m.lastOp,
	)
}

// View renders the page table and register panel side by side, with the
// next opcode to execute dumped below via go-spew.
func (m model) View() string {
	next := baseOpcodes[m.cpu.Bus.Peek(m.cpu.PC)]
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(next),
	)
}

// Debug starts an interactive TUI over c, stepping one instruction per
// keypress.
func (c *CPU) Debug() {
	m, err := tea.NewProgram(model{cpu: c}).Run()
	if err != nil {
		panic(err)
	}
	x := m.(model)
	if x.error != nil {
		fmt.Println("Error:", x.error)
	}
}
