package cpu

// Registers holds the 6502's architectural register file. It's plain value
// data — copying a Registers copies the entire register state, which the
// test suite relies on to snapshot state before/after a step.
type Registers struct {
	PC uint16 // Program counter.
	AC uint8  // Accumulator.
	X  uint8  // X index register.
	Y  uint8  // Y index register.
	SP uint8  // Stack pointer (index into the stack page).
	SR uint8  // Status register (flags).
}
