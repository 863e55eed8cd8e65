// Package cpu implements a simulated 16-bit word-addressed machine: eight
// general purpose registers, a program counter, a bounded call stack, and a
// single syscall instruction that bridges into the host.

package cpu

import (
	"errors"
	"io"

	"grind/mem"
)

// DefaultStackDepth bounds the call stack of a new Cpu. Deep enough for any
// sane bot; shallow enough that runaway recursion dies quickly.
const DefaultStackDepth = 256

// The Cpu owns its memory and registers exclusively. It is strictly
// sequential: one Clock call advances state by exactly one instruction, and
// there is no suspension point inside a Clock.
type Cpu struct {
	Mem *mem.Memory

	// r0..r7
	Registers [8]uint16

	// The ProgramCounter holds the memory address of the next instruction
	// to fetch. Only instruction handlers ever move it; Clock itself does
	// not.
	ProgramCounter uint16

	// Return addresses pushed by SUBROUTINE and popped by RETURN.
	CallStack []uint16

	// StackLimit is the maximum call stack depth. A SUBROUTINE past it
	// fails the clock and raises Overflow.
	StackLimit int

	// All three flags are visible to the host, not to the program; the
	// instruction set has no conditionals on them.
	Flags struct {
		// Error is sticky: once set, every further Clock refuses to
		// run. The Cpu never clears it.
		Error bool
		// Overflow records a call stack overflow or a saturated ADD.
		Overflow bool
		// Underflow records a RETURN from an empty call stack.
		Underflow bool
	}

	// non-owning; see RegisterSyscall
	handler SyscallHandler
}

// New creates a Cpu with the given memory size. Memory and registers are
// zeroed, the program counter is 0, the call stack is empty and all flags
// are clear.
func New(memorySize uint16) *Cpu {
	return &Cpu{
		Mem:        mem.New(memorySize),
		StackLimit: DefaultStackDepth,
	}
}

// Load copies words into memory starting at start. If the data does not
// fit, an error is returned and nothing is written.
func (c *Cpu) Load(words []uint16, start uint16) error {
	return c.Mem.Load(words, start)
}

// LoadStream decodes a bot binary (big-endian 16-bit words) from r and
// loads it into memory starting at start.
func (c *Cpu) LoadStream(r io.Reader, start uint16) error {
	words, err := mem.ReadWords(r)
	if err != nil {
		return err
	}
	return c.Mem.Load(words, start)
}

// IncreaseMemory grows memory by delta zero-filled words and returns the
// new size.
func (c *Cpu) IncreaseMemory(delta uint16) (int, error) {
	return c.Mem.Grow(delta)
}

// RegisterSyscall stores the host's syscall handler. The Cpu keeps a plain
// reference to it, so the handler stays reachable for as long as the Cpu
// does; the host revokes it by registering nil. A SYSCALL with no
// registered handler fails the clock.
func (c *Cpu) RegisterSyscall(h SyscallHandler) {
	c.handler = h
}

// Clock runs one fetch-decode-execute step. Any error is non-recoverable:
// the sticky error flag is raised and every later Clock fails immediately
// without fetching.
func (c *Cpu) Clock() error {
	if c.Flags.Error {
		return errors.New("cpu is in error state")
	}

	if int(c.ProgramCounter) >= c.Mem.Len() {
		c.Flags.Error = true
		return errors.New("program counter goes beyond the memory")
	}

	instruction := c.Mem.Get(int(c.ProgramCounter))

	op, err := lookupOpcode(instruction)
	if err != nil {
		c.Flags.Error = true
		return err
	}

	if err := op.Instruction(c, instruction); err != nil {
		c.Flags.Error = true
		return err
	}

	return nil
}
