package arena

import "math/rand"

// A Task is a small piece of busywork a machine can earn credit with: three
// data words and a result the host already knows. The expected result is
// (3*d1 + d2) - 2*d3; the operand ranges keep that inside a word.
type Task struct {
	ID       uint16
	Data     [3]uint16
	Expected uint16
}

// NewSmallTask creates a random small task.
func NewSmallTask() *Task {
	d1 := uint16(1 + rand.Intn(999))
	d2 := uint16(1000 + rand.Intn(1000))
	d3 := uint16(1 + rand.Intn(499))

	return &Task{
		ID:       uint16(1 + rand.Intn(65534)),
		Data:     [3]uint16{d1, d2, d3},
		Expected: (3*d1 + d2) - 2*d3,
	}
}

// Code emits the task as a runnable subroutine: it fetches the three data
// words PC-relative, computes the expected result into r2 and returns. Used
// by bots that would rather run the work than do the arithmetic themselves,
// and by the arena's own tests as a known-good program.
func (t *Task) Code() []uint16 {
	return []uint16{
		0b0110_100_000001010, // SET R4 10
		0b0001_110100_000001, // COPY RPM4 R1        d1
		0b0001_110100_000010, // COPY RPM4 R2        d2
		0b0001_110100_000011, // COPY RPM4 R3        d3
		0b0010_000001_000010, // ADD R1 R2
		0b0010_000001_000010, // ADD R1 R2
		0b0010_000001_000010, // ADD R1 R2           r2 = 3*d1 + d2
		0b0010_000011_000011, // ADD R3 R3           r3 = 2*d3
		0b0011_000010_000011, // SUBTRACT R2 R3      r3 = r2 - r3
		0b0001_000011_000010, // COPY R3 R2
		0b0000000000_000010,  // RETURN
		t.Data[0],
		t.Data[1],
		t.Data[2],
	}
}
