package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// translate asserts that line assembles to word.
func translate(t *testing.T, line string, word uint16) {
	t.Helper()
	got, ok, err := NewTranslator().TranslateLine(line)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, got, word)
}

// translateError asserts that line does not assemble.
func translateError(t *testing.T, line string) {
	t.Helper()
	_, _, err := NewTranslator().TranslateLine(line)
	assert.Error(t, err)
}

// translateNothing asserts that line produces no word.
func translateNothing(t *testing.T, line string) {
	t.Helper()
	_, ok, err := NewTranslator().TranslateLine(line)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestComment(t *testing.T) {
	translateNothing(t, "; comment")
	translateNothing(t, "    ; comment")
	translateNothing(t, "")
	translateNothing(t, "      ")
}

func TestUnknownOperation(t *testing.T) {
	translateError(t, "jumpz r1")
	translateError(t, "120 14")
}

func TestNop(t *testing.T) {
	translate(t, "NOP", 0)
	translate(t, "nop  ", 0)
	translate(t, "nOp ; Comment", 0)

	translateError(t, "NOP  R1")
}

func TestSyscallReturn(t *testing.T) {
	translate(t, "SYSCALL", 0b0000000000_000001)
	translate(t, "return", 0b0000000000_000010)

	translateError(t, "SYSCALL R0")
	translateError(t, "RETURN R0")
}

func TestData(t *testing.T) {
	translate(t, "DATA 0", 0)
	translate(t, "data 1200", 1200)
	translate(t, "data 65535", 65535)

	translateError(t, "data 65536")
	translateError(t, "data -1")
	translateError(t, "data twelve")
	translateError(t, "data")
	translateError(t, "data 1 2")
}

func TestCopy(t *testing.T) {
	translate(t, "COPY R1 M6", 0b0001_000001_010110)
	translate(t, "COPY   RP2  RPM3", 0b0001_100010_110011)
	// the seed vector
	translate(t, "COPY   M1 R2", 0x1442)

	translateError(t, "COPY  M2")
	translateError(t, "COPY M20 M2")
	translateError(t, "COPY ;bad copy")
	translateError(t, "COPY 120 14")
}

func TestJump(t *testing.T) {
	translate(t, "JUMP R1  ", 0b0000_000001_000001)
	translate(t, "jump  m3 ;comment R2 ", 0b0000_000001_010011)
	translate(t, "JuMp Rp4", 0b0000_000001_100100)
	translate(t, "JUmP RPm5", 0b0000_000001_110101)

	translateError(t, "JUMP ")
	translateError(t, "JUMP ; comment")
	translateError(t, "JUMP R1 R4")
	translateError(t, "JUMP 14")
}

func TestSubroutine(t *testing.T) {
	translate(t, "SUBROUTINE R2", 0b0000_000011_000010)
	translate(t, "subroutine rpm0", 0b0000_000011_110000)

	translateError(t, "SUBROUTINE")
	translateError(t, "SUBROUTINE R1 R2")
	translateError(t, "SUBROUTINE R8")
}

func TestSkipIfZero(t *testing.T) {
	translate(t, "SKIP_IF_ZERO R1  ", 0b0000_000010_000001)
	translate(t, "skip_if_zero  m7 ;comment R2 ", 0b0000_000010_010111)
	translate(t, "skip_IF_zero Rp0", 0b0000_000010_100000)
	translate(t, "SKIP_IF_ZERO RPm5", 0b0000_000010_110101)

	translateError(t, "SKIP_IF_ZERO ")
	translateError(t, "SKIP_IF_ZERO ; comment")
	translateError(t, "SKIP_IF_ZERO M1 RP4")
	translateError(t, "SKIP_IF_ZERO R12")
	translateError(t, "SKIP_IF_ZERO 0")
}

func TestAdd(t *testing.T) {
	translate(t, "ADD R1 M6", 0b0010_000001_010110)
	translate(t, "ADD   RP2  RPM3", 0b0010_100010_110011)

	translateError(t, "ADD  M2")
	translateError(t, "ADD M20 M2")
	translateError(t, "ADD 120 14")
	translateError(t, "ADD")
}

func TestSubtract(t *testing.T) {
	translate(t, "SUBTRACT R3 M5", 0b0011_000011_010101)
	translate(t, "subtract   RP7  RPM3", 0b0011_100111_110011)

	translateError(t, "SUBTRACT  M2")
	translateError(t, "SUBTRACT M20 M2")
	translateError(t, "SUBTRACT 120 14")
	translateError(t, "SUBTRACT")
}

func TestSkipIfEqual(t *testing.T) {
	translate(t, "SKIP_IF_EQUAL R3 M6", 0b0100_000011_010110)
	translate(t, "skip_if_equal   M2  RPM3", 0b0100_010010_110011)

	translateError(t, "SKIP_IF_EQUAL  M2")
	translateError(t, "SKIP_IF_EQUAL M2 RPM8")
	translateError(t, "SKIP_IF_EQUAL 120 14")
	translateError(t, "SKIP_IF_EQUAL")
}

func TestSkipIfGreater(t *testing.T) {
	translate(t, "   SKIP_IF_GREATER  R3 M6 ;M80", 0b0101_000011_010110)
	translate(t, "skip_if_greater   M0  RPM3", 0b0101_010000_110011)

	translateError(t, "SKIP_IF_GREATER  M2")
	translateError(t, "SKIP_IF_GREATER M2 R9")
	translateError(t, "SKIP_IF_GREATER 120 14")
	translateError(t, "SKIP_IF_GREATER")
}

func TestSet(t *testing.T) {
	translate(t, "SET R1 120", 0b0110_001_001111000)
	translate(t, "set r4 9", 0b0110_100_000001001)
	translate(t, "SET R0 511", 0b0110_000_111111111)
	translate(t, "SET R7 0", 0b0110_111_000000000)

	// destination must be a plain register
	translateError(t, "SET M1 20")
	translateError(t, "SET RP1 20")
	translateError(t, "SET RPM1 20")
	translateError(t, "SET R9 10")
	// immediate too large
	translateError(t, "SET R0 512")
	translateError(t, "SET R0")
	translateError(t, "SET R0 1 2")
}

func TestCaseAndWhitespace(t *testing.T) {
	// assembling any casing or spacing variant of a line produces the
	// same word
	variants := []string{
		"add r1 m6",
		"ADD R1 M6",
		"aDd    r1      M6",
		"  add r1 m6 ; trailing commentary",
	}
	for _, v := range variants {
		translate(t, v, 0b0010_000001_010110)
	}
}
