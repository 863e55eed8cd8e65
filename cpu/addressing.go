package cpu

import (
	"fmt"

	"grind/mask"
)

// An operand field is 6 bits: two mode bits then a register index. The four
// modes resolve to one of three Address variants:
//
//	00  Rn    the register itself
//	01  Mn    the memory cell the register points at
//	10  RPn   register + PC, as a plain value (saturating add)
//	11  RPMn  the memory cell at register + PC (overflow is fatal)
//
// The asymmetry between 10 and 11 is deliberate. Mode 10 never
// dereferences, so the sum may safely stick at 0xffff; mode 11 does
// dereference, and a wrapped address would point somewhere the program
// never asked for.
type addressKind int

const (
	registerAddress addressKind = iota // a register; readable and writable
	memoryAddress                      // a memory cell; readable and writable
	plainValue                         // a computed number; readable only
)

// An Address is a fully resolved operand: all register lookups, PC
// arithmetic and bounds checks already happened.
type Address struct {
	kind addressKind

	// register index for registerAddress, memory address for
	// memoryAddress, the computed value for plainValue
	value uint16
}

// resolveOperand turns a 6-bit operand field into an Address. A register
// index above 7, a dereference outside memory, or PC arithmetic wrapping in
// mode 11 is an error.
func (c *Cpu) resolveOperand(field uint16) (Address, error) {
	mode := mask.Range(field, mask.I11, mask.I12)
	register := mask.Last(field, mask.I4)

	if register > 7 {
		return Address{}, fmt.Errorf("invalid register number: [%d]", register)
	}

	switch mode {
	case 0b00:
		return Address{kind: registerAddress, value: register}, nil

	case 0b01:
		address := c.Registers[register]
		if int(address) >= c.Mem.Len() {
			return Address{}, fmt.Errorf(
				"address is out of memory: address was [%d] stored in register [%d]",
				address, register)
		}
		return Address{kind: memoryAddress, value: address}, nil

	case 0b10:
		value, _ := saturatingAdd(c.Registers[register], c.ProgramCounter)
		return Address{kind: plainValue, value: value}, nil

	default: // 0b11
		sum := uint32(c.Registers[register]) + uint32(c.ProgramCounter)
		if sum > 0xffff {
			return Address{}, fmt.Errorf(
				"memory address overflow: pc (%d) + register %d (%d)",
				c.ProgramCounter, register, c.Registers[register])
		}
		if int(sum) >= c.Mem.Len() {
			return Address{}, fmt.Errorf(
				"address is out of memory: address was [%d] stored in register [%d]",
				sum, register)
		}
		return Address{kind: memoryAddress, value: uint16(sum)}, nil
	}
}

// resolveLocation is resolveOperand for instructions whose operand must be
// somewhere a value can live. Mode 10 resolves to a bare number, so it is
// illegal here.
func (c *Cpu) resolveLocation(field uint16) (Address, error) {
	address, err := c.resolveOperand(field)
	if err != nil {
		return Address{}, err
	}
	if address.kind == plainValue {
		return Address{}, fmt.Errorf(
			"unsupported address type for this instruction: [%06b]", field)
	}
	return address, nil
}

// load reads the operand's value.
func (a Address) load(c *Cpu) uint16 {
	switch a.kind {
	case registerAddress:
		return c.Registers[a.value]
	case memoryAddress:
		return c.Mem.Get(int(a.value))
	default:
		return a.value
	}
}

// store writes into the operand's location. Only registerAddress and
// memoryAddress are storable; callers guarantee that via resolveLocation.
func (a Address) store(c *Cpu, value uint16) {
	switch a.kind {
	case registerAddress:
		c.Registers[a.value] = value
	case memoryAddress:
		c.Mem.Set(int(a.value), value)
	}
}
