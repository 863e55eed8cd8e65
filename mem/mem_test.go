package mem

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	m := New(12)

	assert.NoError(t, m.Load([]uint16{128, 255, 0, 46, 72}, 7))
	assert.Equal(t, m.Get(6), uint16(0))
	assert.Equal(t, m.Get(7), uint16(128))
	assert.Equal(t, m.Get(8), uint16(255))
	assert.Equal(t, m.Get(9), uint16(0))
	assert.Equal(t, m.Get(10), uint16(46))
	assert.Equal(t, m.Get(11), uint16(72))

	// a second load overlaps the first
	assert.NoError(t, m.Load([]uint16{72, 0, 0, 1}, 6))
	assert.Equal(t, m.Get(6), uint16(72))
	assert.Equal(t, m.Get(7), uint16(0))
	assert.Equal(t, m.Get(8), uint16(0))
	assert.Equal(t, m.Get(9), uint16(1))
	assert.Equal(t, m.Get(10), uint16(46))
}

func TestLoadOutOfMemory(t *testing.T) {
	m := New(1024)
	assert.Error(t, m.Load([]uint16{1, 2, 3, 4, 5}, 1022))
	// nothing was written
	assert.Equal(t, m.Get(1022), uint16(0))
	assert.Equal(t, m.Get(1023), uint16(0))
}

func TestGrow(t *testing.T) {
	m := New(8)

	size, err := m.Grow(4)
	assert.NoError(t, err)
	assert.Equal(t, size, 12)
	assert.Equal(t, m.Len(), 12)
	assert.Equal(t, m.Get(11), uint16(0))

	_, err = m.Grow(0)
	assert.Error(t, err)
	assert.Equal(t, m.Len(), 12)

	_, err = m.Grow(65535)
	assert.Error(t, err)
	assert.Equal(t, m.Len(), 12)
}

func TestReadWords(t *testing.T) {
	words, err := ReadWords(bytes.NewReader([]byte{
		0x62, 0x78, // SET R1 120
		0x64, 0x8c, // SET R2 140
		0x20, 0x42, // ADD R1 R2
	}))
	assert.NoError(t, err)
	assert.Equal(t, words, []uint16{0x6278, 0x648c, 0x2042})

	_, err = ReadWords(bytes.NewReader([]byte{0x62, 0x78, 0x64}))
	assert.Error(t, err)

	words, err = ReadWords(bytes.NewReader(nil))
	assert.NoError(t, err)
	assert.Empty(t, words)
}

func TestWriteWords(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteWords(&buf, []uint16{0x1442, 0x0002}))
	assert.Equal(t, buf.Bytes(), []byte{0x14, 0x42, 0x00, 0x02})
}
