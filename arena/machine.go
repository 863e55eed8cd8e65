package arena

import (
	"fmt"
	"os"

	"grind/cpu"
)

// A Machine is one competitor: a named Cpu plus its credit balance. The
// machine registers itself as the Cpu's syscall handler, so the relation is
// circular; the Cpu side of it is non-owning.
type Machine struct {
	Name   string
	Cpu    *cpu.Cpu
	Credit uint16

	tasks *taskQueue
}

// NewMachine creates a machine with the given memory size and starting
// credit.
func NewMachine(name string, memorySize uint16, credit uint16) *Machine {
	m := &Machine{
		Name:   name,
		Cpu:    cpu.New(memorySize),
		Credit: credit,
		tasks:  newTaskQueue(),
	}
	m.Cpu.RegisterSyscall(m)
	return m
}

// LoadBot reads a bot binary and loads it at address zero.
func (m *Machine) LoadBot(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.Cpu.LoadStream(f, 0)
}

// Clock advances the machine by one instruction and burns one credit. Any
// error means the machine is no longer in a valid state and should leave
// the arena.
//
// The credit is decremented after a successful clock, so a machine with n
// credits executes exactly n instructions before starving.
func (m *Machine) Clock() error {
	if err := m.Cpu.Clock(); err != nil {
		return fmt.Errorf("error in machine [%s]: %v", m.Name, err)
	}

	m.Credit--
	if m.Credit == 0 {
		return fmt.Errorf("machine has no more credit: [%s]", m.Name)
	}

	return nil
}

// Syscall implements cpu.SyscallHandler; see syscalls.go for the call
// numbers.
func (m *Machine) Syscall(state *cpu.CpuState) {
	handleSyscall(m, state)
}
