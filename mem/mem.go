// Package mem implements the word-addressed memory of a machine, and the
// binary format bots are stored in on disk.

package mem

import (
	"encoding/binary"
	"errors"
	"io"
)

// MaxWords is the largest memory a machine can ever own. Addresses are 16
// bits wide, so growing past this would leave cells no instruction can
// reach.
const MaxWords = 65536

// A Memory is a contiguous run of 16-bit words, zeroed on creation. Every
// cell is both data and a potential instruction; there is no separation of
// code and data segments.
//
// Memory performs no bounds checking of its own on Get/Set. The cpu package
// owns the checks, because only it can say which register an offending
// address came from.
type Memory struct {
	cells []uint16
}

// New creates a zero-filled memory of the given size.
func New(size uint16) *Memory {
	return &Memory{cells: make([]uint16, size)}
}

// Len returns the current number of words.
func (m *Memory) Len() int { return len(m.cells) }

// Get reads the word at addr.
func (m *Memory) Get(addr int) uint16 { return m.cells[addr] }

// Set writes the word at addr.
func (m *Memory) Set(addr int, data uint16) { m.cells[addr] = data }

// Load copies words into memory starting at start. If the data does not fit,
// an error is returned and memory is left untouched.
func (m *Memory) Load(words []uint16, start uint16) error {
	if int(start)+len(words) > len(m.cells) {
		return errors.New("out of memory: data won't fit in memory starting from the specified address")
	}
	copy(m.cells[start:], words)
	return nil
}

// Grow extends the memory by delta zero-filled words and returns the new
// size. Growing by zero, or past MaxWords, is an error and leaves memory
// untouched.
func (m *Memory) Grow(delta uint16) (int, error) {
	if delta == 0 {
		return 0, errors.New("cannot grow memory by zero words")
	}
	if len(m.cells)+int(delta) > MaxWords {
		return 0, errors.New("out of memory: cannot grow past the 16 bit address space")
	}
	m.cells = append(m.cells, make([]uint16, delta)...)
	return len(m.cells), nil
}

// ReadWords decodes a bot binary: a headerless stream of 16-bit words, high
// byte first. A stream with an odd number of bytes is corrupt.
func ReadWords(r io.Reader) ([]uint16, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(raw)%2 != 0 {
		return nil, errors.New("odd number of bytes: not a stream of 16 bit words")
	}
	words := make([]uint16, len(raw)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(raw[i*2:])
	}
	return words, nil
}

// WriteWords encodes words in the bot binary format, high byte first.
func WriteWords(w io.Writer, words []uint16) error {
	raw := make([]byte, len(words)*2)
	for i, word := range words {
		binary.BigEndian.PutUint16(raw[i*2:], word)
	}
	_, err := w.Write(raw)
	return err
}
