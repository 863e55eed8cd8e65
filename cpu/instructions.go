package cpu

import (
	"errors"

	"grind/mask"
)

// Arithmetic never faults; it sticks at the rails instead.

func saturatingAdd(a uint16, b uint16) (uint16, bool) {
	sum := uint32(a) + uint32(b)
	if sum > 0xffff {
		return 0xffff, true
	}
	return uint16(sum), false
}

func saturatingSub(a uint16, b uint16) uint16 {
	if b > a {
		return 0
	}
	return a - b
}

// skip implements the SKIP_IF_* family: jump over the next word when the
// predicate holds, otherwise fall through.
func (c *Cpu) skip(predicate bool) {
	if predicate {
		c.ProgramCounter += 2
	} else {
		c.ProgramCounter++
	}
}

// NOP does nothing, slowly.
func (c *Cpu) nop(_ uint16) error {
	c.ProgramCounter++
	return nil
}

// SYSCALL hands a projection of the registers to the host and copies the
// registers back afterwards, whatever the host did to them. A handler that
// raises the projection's error flag kills the machine.
func (c *Cpu) syscall(_ uint16) error {
	if c.handler == nil {
		return errors.New("syscall with no registered handler")
	}

	state := newCpuState(c.Registers)
	c.handler.Syscall(state)
	c.Registers = state.registers

	if state.errorFlag {
		return errors.New("syscall handler reported an error")
	}

	c.ProgramCounter++
	return nil
}

// JUMP moves the program counter to the operand's value. All four modes are
// meaningful here: RPn is a computed target, the others read a cell.
func (c *Cpu) jump(instruction uint16) error {
	target, err := c.resolveOperand(secondOperand(instruction))
	if err != nil {
		return err
	}
	c.ProgramCounter = target.load(c)
	return nil
}

// SUBROUTINE is JUMP plus a pushed return address.
func (c *Cpu) subroutine(instruction uint16) error {
	target, err := c.resolveOperand(secondOperand(instruction))
	if err != nil {
		return err
	}

	if len(c.CallStack) >= c.StackLimit {
		c.Flags.Overflow = true
		return errors.New("call stack overflow")
	}

	c.CallStack = append(c.CallStack, c.ProgramCounter+1)
	c.ProgramCounter = target.load(c)
	return nil
}

func (c *Cpu) subroutineReturn(_ uint16) error {
	if len(c.CallStack) == 0 {
		c.Flags.Underflow = true
		return errors.New("return with an empty call stack")
	}

	c.ProgramCounter = c.CallStack[len(c.CallStack)-1]
	c.CallStack = c.CallStack[:len(c.CallStack)-1]
	return nil
}

func (c *Cpu) skipIfZero(instruction uint16) error {
	operand, err := c.resolveLocation(secondOperand(instruction))
	if err != nil {
		return err
	}
	c.skip(operand.load(c) == 0)
	return nil
}

// COPY writes the source value into the destination location. Both operands
// must be locations; a computed RPn number is nowhere to copy from or to.
func (c *Cpu) copyOp(instruction uint16) error {
	source, err := c.resolveLocation(firstOperand(instruction))
	if err != nil {
		return err
	}
	destination, err := c.resolveLocation(secondOperand(instruction))
	if err != nil {
		return err
	}

	destination.store(c, source.load(c))
	c.ProgramCounter++
	return nil
}

// ADD stores a+b into b, sticking at 0xffff. Saturation is not a fault, but
// it is recorded in the overflow flag for the host to see.
func (c *Cpu) add(instruction uint16) error {
	a, err := c.resolveLocation(firstOperand(instruction))
	if err != nil {
		return err
	}
	b, err := c.resolveLocation(secondOperand(instruction))
	if err != nil {
		return err
	}

	sum, saturated := saturatingAdd(a.load(c), b.load(c))
	if saturated {
		c.Flags.Overflow = true
	}
	b.store(c, sum)
	c.ProgramCounter++
	return nil
}

// SUBTRACT stores a-b into b, sticking at zero.
func (c *Cpu) subtract(instruction uint16) error {
	a, err := c.resolveLocation(firstOperand(instruction))
	if err != nil {
		return err
	}
	b, err := c.resolveLocation(secondOperand(instruction))
	if err != nil {
		return err
	}

	b.store(c, saturatingSub(a.load(c), b.load(c)))
	c.ProgramCounter++
	return nil
}

func (c *Cpu) skipIfEqual(instruction uint16) error {
	a, err := c.resolveLocation(firstOperand(instruction))
	if err != nil {
		return err
	}
	b, err := c.resolveLocation(secondOperand(instruction))
	if err != nil {
		return err
	}
	c.skip(a.load(c) == b.load(c))
	return nil
}

func (c *Cpu) skipIfGreater(instruction uint16) error {
	a, err := c.resolveLocation(firstOperand(instruction))
	if err != nil {
		return err
	}
	b, err := c.resolveLocation(secondOperand(instruction))
	if err != nil {
		return err
	}
	c.skip(a.load(c) > b.load(c))
	return nil
}

// SET is the odd one out: no operand fields. Bits 11..9 name a register and
// the low 9 bits are an immediate constant, so only values up to 511 can be
// set this way. The register index is 3 bits and cannot go out of range.
func (c *Cpu) set(instruction uint16) error {
	register := mask.Range(instruction, mask.I5, mask.I7)
	c.Registers[register] = mask.Last(instruction, mask.I9)
	c.ProgramCounter++
	return nil
}
