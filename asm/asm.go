// Package asm translates the line-oriented assembly language into machine
// words. One non-empty line becomes exactly one 16-bit word; the bit
// patterns emitted here are the same ones the cpu package decodes, and any
// divergence between the two is a bug in this package.

package asm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// opcode templates; operand fields are OR-ed in
const (
	opNop           = 0x0000
	opSyscall       = 0x0001
	opReturn        = 0x0002
	opJump          = 0x0040
	opSkipIfZero    = 0x0080
	opSubroutine    = 0x00c0
	opCopy          = 0x1000
	opAdd           = 0x2000
	opSubtract      = 0x3000
	opSkipIfEqual   = 0x4000
	opSkipIfGreater = 0x5000
	opSet           = 0x6000
)

// An encoder turns a tokenized line (mnemonic first) into a word.
type encoder func(args []string) (uint16, error)

// A Translator maps mnemonics to their encoders.
type Translator struct {
	operations map[string]encoder
}

func NewTranslator() *Translator {
	return &Translator{operations: map[string]encoder{
		"data":            data,
		"nop":             noArguments("NOP", opNop),
		"syscall":         noArguments("SYSCALL", opSyscall),
		"return":          noArguments("RETURN", opReturn),
		"jump":            oneAddress("JUMP", opJump),
		"skip_if_zero":    oneAddress("SKIP_IF_ZERO", opSkipIfZero),
		"subroutine":      oneAddress("SUBROUTINE", opSubroutine),
		"copy":            twoAddresses("COPY", opCopy),
		"add":             twoAddresses("ADD", opAdd),
		"subtract":        twoAddresses("SUBTRACT", opSubtract),
		"skip_if_equal":   twoAddresses("SKIP_IF_EQUAL", opSkipIfEqual),
		"skip_if_greater": twoAddresses("SKIP_IF_GREATER", opSkipIfGreater),
		"set":             set,
	}}
}

// TranslateLine translates one line into its binary representation. ok is
// false when the line produces no word (blank, or comment only).
//
// The translator knows nothing about which addressing modes an instruction
// accepts at run time; a COPY of an RPn operand assembles fine and dies in
// the emulator.
func (t *Translator) TranslateLine(line string) (word uint16, ok bool, err error) {
	line = strings.TrimSpace(line)

	if strings.HasPrefix(line, ";") {
		// a comment line
		return 0, false, nil
	}

	parts := extractParts(line)
	if len(parts) == 0 {
		// nothing was in this line
		return 0, false, nil
	}

	encode, known := t.operations[parts[0]]
	if !known {
		return 0, false, fmt.Errorf("unknown operation: [%s]", parts[0])
	}

	word, err = encode(parts)
	if err != nil {
		return 0, false, err
	}
	return word, true, nil
}

// extractParts splits the line on spaces, drops empty tokens, stops at the
// first comment token and lowercases the rest.
func extractParts(line string) []string {
	var parts []string
	for _, part := range strings.Split(line, " ") {
		if part == "" {
			// two spaces together
			continue
		}
		if strings.HasPrefix(part, ";") {
			// there's a comment from now on
			break
		}
		parts = append(parts, strings.ToLower(part))
	}
	return parts
}

// translateAddress encodes an address token as a 6-bit operand field: two
// mode bits then a register number. Prefixes are matched longest first, so
// rp does not swallow rpm.
func translateAddress(token string) (uint16, error) {
	var mode uint16
	var rest string

	switch {
	case strings.HasPrefix(token, "rpm"):
		mode, rest = 0b110000, strings.TrimPrefix(token, "rpm")
	case strings.HasPrefix(token, "rp"):
		mode, rest = 0b100000, strings.TrimPrefix(token, "rp")
	case strings.HasPrefix(token, "m"):
		mode, rest = 0b010000, strings.TrimPrefix(token, "m")
	case strings.HasPrefix(token, "r"):
		mode, rest = 0b000000, strings.TrimPrefix(token, "r")
	default:
		return 0, fmt.Errorf("unknown address type: [%s]", token)
	}

	register, err := strconv.ParseUint(rest, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("[%s] is not a register number", rest)
	}
	if register > 7 {
		return 0, fmt.Errorf("expected a register between 0 and 7, found: [%d]", register)
	}

	return mode | uint16(register), nil
}

// data emits a literal word: a no-op that keeps a constant at this memory
// slot.
func data(args []string) (uint16, error) {
	if len(args) != 2 {
		return 0, errors.New("DATA requires exactly one argument")
	}
	value, err := strconv.ParseUint(args[1], 10, 16)
	if err != nil {
		return 0, fmt.Errorf("[%s] is not a 16 bit constant", args[1])
	}
	return uint16(value), nil
}

func noArguments(name string, template uint16) encoder {
	return func(args []string) (uint16, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("%s doesn't accept arguments", name)
		}
		return template, nil
	}
}

func oneAddress(name string, template uint16) encoder {
	return func(args []string) (uint16, error) {
		if len(args) != 2 {
			return 0, fmt.Errorf(
				"%s requires exactly one argument, %d given", name, len(args)-1)
		}
		address, err := translateAddress(args[1])
		if err != nil {
			return 0, err
		}
		return template | address, nil
	}
}

func twoAddresses(name string, template uint16) encoder {
	return func(args []string) (uint16, error) {
		if len(args) != 3 {
			return 0, fmt.Errorf(
				"%s requires exactly two arguments, %d given", name, len(args)-1)
		}
		first, err := translateAddress(args[1])
		if err != nil {
			return 0, err
		}
		second, err := translateAddress(args[2])
		if err != nil {
			return 0, err
		}
		return template | first<<6 | second, nil
	}
}

// set encodes SET Rn k. The destination must be a plain register and the
// constant must fit the 9-bit immediate field.
func set(args []string) (uint16, error) {
	if len(args) != 3 {
		return 0, fmt.Errorf("SET requires exactly two arguments, %d given", len(args)-1)
	}

	if !strings.HasPrefix(args[1], "r") {
		return 0, fmt.Errorf("SET destination must be a register, found: [%s]", args[1])
	}
	register, err := strconv.ParseUint(strings.TrimPrefix(args[1], "r"), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("[%s] is not a register number", args[1])
	}
	if register > 7 {
		return 0, fmt.Errorf("expected a register between 0 and 7, found: [%d]", register)
	}

	constant, err := strconv.ParseUint(args[2], 10, 16)
	if err != nil {
		return 0, fmt.Errorf("[%s] is not a constant", args[2])
	}
	if constant > 511 {
		return 0, fmt.Errorf("SET constant must be at most 511, found: [%d]", constant)
	}

	return opSet | uint16(register)<<9 | uint16(constant), nil
}
