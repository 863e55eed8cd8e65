package arena

import "grind/cpu"

// The syscall convention of this arena. The core does not care which
// register means what; here r0 selects the call and r1..r4 carry arguments
// and results. Everything fits through the register projection, so a
// syscall never touches machine memory.
const (
	// SysNop does nothing. Costs a credit like everything else.
	SysNop = 0

	// SysCredit answers the machine's remaining credit in r1.
	SysCredit = 1

	// SysRequestTask issues a random task: id in r1, operands in r2..r4.
	SysRequestTask = 2

	// SysSubmitResult takes a task id in r1 and a result in r2. A correct
	// answer earns TaskReward credits; a wrong answer, or an id that was
	// never issued, kills the machine.
	SysSubmitResult = 3
)

// TaskReward is the credit earned per solved task. Solving the small task
// takes at most 11 instructions (the Task.Code subroutine) plus the syscall
// overhead, so honest work turns a profit.
const TaskReward = 20

func handleSyscall(m *Machine, state *cpu.CpuState) {
	switch state.GetRegister(0) {
	case SysNop:

	case SysCredit:
		state.SetRegister(1, m.Credit)

	case SysRequestTask:
		task := m.tasks.issue()
		state.SetRegister(1, task.ID)
		state.SetRegister(2, task.Data[0])
		state.SetRegister(3, task.Data[1])
		state.SetRegister(4, task.Data[2])

	case SysSubmitResult:
		task, ok := m.tasks.take(state.GetRegister(1))
		if !ok || task.Expected != state.GetRegister(2) {
			state.SetErrorFlag(true)
			return
		}
		m.Credit += TaskReward

	default:
		state.SetErrorFlag(true)
	}
}
