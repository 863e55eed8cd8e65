package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

type model struct {
	cpu     *Cpu
	program []uint16

	offset uint16 // only for drawing pageTable
	prevPC uint16
	error  error
}

const wordsPerRow = 8

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m model) Init() tea.Cmd {
	if err := m.cpu.Load(m.program, m.offset); err != nil {
		panic(err)
	}
	m.cpu.ProgramCounter = m.offset
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.cpu.ProgramCounter
			if err := m.cpu.Clock(); err != nil {
				m.error = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderRow renders one row of memory. The current PC is highlighted.
func (m model) renderRow(start uint16) string {
	if start%wordsPerRow != 0 {
		panic("start must be a multiple of the row width")
	}
	s := fmt.Sprintf("%04x | ", start)
	for i := range uint16(wordsPerRow) {
		addr := start + i
		if int(addr) >= m.cpu.Mem.Len() {
			break
		}
		if addr == m.cpu.ProgramCounter {
			s += fmt.Sprintf("[%04x] ", m.cpu.Mem.Get(int(addr)))
		} else {
			s += fmt.Sprintf(" %04x  ", m.cpu.Mem.Get(int(addr)))
		}
	}
	return s
}

func (m model) status() string {
	var flags string
	for _, flag := range []bool{
		m.cpu.Flags.Error,
		m.cpu.Flags.Overflow,
		m.cpu.Flags.Underflow,
	} {
		if flag {
			flags += "/ "
		} else {
			flags += "  "
		}
	}

	s := fmt.Sprintf("\nPC: %x (%x)\n", m.cpu.ProgramCounter, m.prevPC)
	for i, r := range m.cpu.Registers {
		s += fmt.Sprintf("r%d: %x\n", i, r)
	}
	s += fmt.Sprintf("stack: %x\n", m.cpu.CallStack)
	s += "E O U\n"
	return s + flags
}

func (m model) pageTable() string {
	header := "addr | "
	for i := range wordsPerRow {
		header += fmt.Sprintf("  %01x   ", i)
	}

	rows := []string{header}

	pc := m.cpu.ProgramCounter - m.cpu.ProgramCounter%wordsPerRow
	offsets := []uint16{
		m.offset - m.offset%wordsPerRow,
		m.offset - m.offset%wordsPerRow + wordsPerRow*1,
		m.offset - m.offset%wordsPerRow + wordsPerRow*2,
		m.offset - m.offset%wordsPerRow + wordsPerRow*3,
		pc,
	}
	for _, o := range offsets {
		if int(o) >= m.cpu.Mem.Len() {
			continue
		}
		rows = append(rows, m.renderRow(o))
	}
	return strings.Join(rows, "\n")
}

// currentOpcode describes the instruction under the PC, or the decode error
// an eventual Clock would hit.
func (m model) currentOpcode() string {
	if int(m.cpu.ProgramCounter) >= m.cpu.Mem.Len() {
		return "PC out of memory"
	}
	op, err := lookupOpcode(m.cpu.Mem.Get(int(m.cpu.ProgramCounter)))
	if err != nil {
		return err.Error()
	}
	return spew.Sdump(op)
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		m.currentOpcode(),
	)
}

// Debug loads the program into memory at the given offset, then starts an
// interactive TUI. Space or j steps one clock, q quits.
func (c *Cpu) Debug(program []uint16, offset uint16) {
	m, err := tea.NewProgram(model{
		cpu:     c,
		program: program,
		offset:  offset,
	}).Run()
	if err != nil {
		panic(err)
	}
	x := m.(model)
	if x.error != nil {
		fmt.Println("Error:", x.error)
	}
}
