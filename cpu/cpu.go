// Package cpu implements the MOS 6502 instruction interpreter: the
// bit-field opcode decoder, the addressing-mode operand fetcher, the 56
// documented instructions, and the time-bounded run loop that ticks them.
package cpu

import (
	"time"

	"github.com/kjellberg/mos6502/memory"
)

// VM is the complete interpreter state: registers, memory, the current
// addressing mode, the cumulative cycle count and the halted flag. It is
// a self-contained mutable aggregate; all operations on it are blocking
// calls on the owner's goroutine and concurrent mutation is undefined.
type VM struct {
	Reg    Registers
	Mem    *memory.Memory
	Mode   Mode // Addressing mode of the most recently dispatched opcode.
	Cycles uint64
	Halted bool

	// Strict enables OutOfBoundsAccessError on program loads that land
	// outside the declared heap window [memory.HeapBase, 0xFFFF]. Off by
	// default: normal instruction execution never consults this and modular
	// 16 bit arithmetic handles wraparound everywhere else.
	Strict bool
}

// New constructs a VM with zeroed memory and registers, a 64 KiB address
// space, zero cycles and not halted.
func New() *VM {
	return &VM{
		Mem:  memory.New(),
		Mode: Absolute, // sentinel, always overwritten before first use.
	}
}

// Reset zeroes memory, registers and cycles, and clears halted.
func (vm *VM) Reset() {
	vm.Mem.Reset()
	vm.Reg = Registers{}
	vm.Cycles = 0
	vm.Halted = false
	vm.Mode = Absolute
}

// Read returns the byte at addr.
func (vm *VM) Read(addr uint16) uint8 { return vm.Mem.Read(addr) }

// Write stores val at addr.
func (vm *VM) Write(addr uint16, val uint8) { vm.Mem.Write(addr, val) }

// BulkWrite writes data starting at addr, bypassing the heap-offset
// convention InsertProgram/SetProgram apply.
func (vm *VM) BulkWrite(addr uint16, data []uint8) { vm.Mem.Bulk(addr, data) }

// Window returns a copy of length bytes starting at addr.
func (vm *VM) Window(addr uint16, length int) []uint8 { return vm.Mem.Window(addr, length) }

// checkHeapBounds reports an OutOfBoundsAccessError when Strict is enabled
// and the [addr, addr+length) span falls outside the heap window. Disabled
// by default, per spec: ordinary 16 bit wraparound is the normal behavior.
func (vm *VM) checkHeapBounds(addr uint16, length int) error {
	if !vm.Strict {
		return nil
	}
	if addr < memory.HeapBase || int(addr)+length > memory.Size {
		return OutOfBoundsAccessError{Addr: addr}
	}
	return nil
}

// InsertProgram writes bytes starting at heap_base+offset, leaving PC
// untouched.
func (vm *VM) InsertProgram(offset uint16, bytes []uint8) error {
	addr := memory.HeapBase + offset
	if err := vm.checkHeapBounds(addr, len(bytes)); err != nil {
		return err
	}
	vm.Mem.Bulk(addr, bytes)
	return nil
}

// SetProgram writes bytes starting at heap_base+offset and sets PC to
// offset. This preserves, offset included, the quirk of the
// ProgramController semantics it was modeled on: PC is set to the raw
// offset, not to heap_base+offset, so a caller intending to run the
// program it just loaded must pass an offset already expressed in
// absolute terms (typically memory.HeapBase itself).
func (vm *VM) SetProgram(offset uint16, bytes []uint8) error {
	if err := vm.InsertProgram(offset, bytes); err != nil {
		return err
	}
	vm.Reg.PC = offset
	return nil
}

// SetInterruptVectors writes the NMI vector and the shared IRQ/BRK vector.
// Real 6502 hardware has no separate BRK vector; brkTarget is accepted for
// callers that want to express the two as distinct sources and is written
// to the same IRQ/BRK slot as irq.
func (vm *VM) SetInterruptVectors(nmi, irq, brkTarget uint16) {
	vm.Mem.SetInterruptVectors(nmi, irq)
	vm.Mem.Write(memory.IRQVectorLow, uint8(brkTarget&0xFF))
	vm.Mem.Write(memory.IRQVectorHigh, uint8(brkTarget>>8))
}

// DefaultInterruptVectors points every vector at its own slot address, a
// convenient sentinel for callers that never intend to take an interrupt.
func (vm *VM) DefaultInterruptVectors() {
	vm.SetInterruptVectors(memory.NMIVectorLow, memory.IRQVectorLow, memory.IRQVectorLow)
}

// Step executes exactly one instruction and returns the cumulative cycle
// count. If the VM is already halted it returns immediately without
// advancing anything.
func (vm *VM) Step() (uint64, error) {
	if vm.Halted {
		return vm.Cycles, nil
	}

	opAddr := vm.Reg.PC
	op := vm.Mem.Read(opAddr)
	vm.Reg.PC++

	mode, err := decodeMode(op)
	if err != nil {
		// Undocumented/illegal opcode: treated uniformly as NOP, not
		// surfaced as a fatal decode error.
		vm.Cycles++
		return vm.Cycles, nil
	}
	vm.Mode = mode

	if dispatchErr := vm.dispatch(op, mode); dispatchErr != nil {
		vm.Halted = true
		return vm.Cycles, dispatchErr
	}

	vm.Cycles++
	if vm.Reg.PC == memory.IRQVectorLow {
		// PC landed on the vector table itself: nothing legal lives past
		// the user program, so treat this as "ran off the end".
		vm.Halted = true
	}
	if op == 0x00 && opAddr >= memory.IRQVectorLow {
		// A BRK fetched from the vector slots would wrap PC forever;
		// stop instead.
		vm.Halted = true
	}
	return vm.Cycles, nil
}

// Run steps the VM until either budget elapses, the VM halts, or an
// instruction reports an error. It returns the cycles executed during
// this call and the wall-clock time actually spent. Because the loop is
// bounded by wall clock, the instruction count is not deterministic
// across runs; tests that need determinism should drive Step directly.
func (vm *VM) Run(budget time.Duration) (uint64, time.Duration) {
	start := time.Now()
	startCycles := vm.Cycles
	for {
		if vm.Halted {
			break
		}
		if time.Since(start) >= budget {
			break
		}
		if _, err := vm.Step(); err != nil {
			break
		}
	}
	return vm.Cycles - startCycles, time.Since(start)
}

// Execute runs the VM until it halts, with no wall-clock bound.
func (vm *VM) Execute() error {
	for !vm.Halted {
		if _, err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}

// dispatch selects and runs the instruction handler for op under mode.
// Singletons, the branch family, and the aaabbbcc-indexed ALU/RMW/load-
// store groups are folded into one switch, matching the shape of the
// opcode table this core's decoder was modeled on.
func (vm *VM) dispatch(op uint8, mode Mode) error {
	switch op {
	case 0x00:
		vm.iBRK()
	case 0x20:
		vm.iJSR()
	case 0x40:
		vm.iRTI()
	case 0x60:
		vm.iRTS()

	case 0x08:
		vm.iPHP()
	case 0x28:
		vm.iPLP()
	case 0x48:
		vm.iPHA()
	case 0x68:
		vm.iPLA()

	case 0x18:
		vm.iCLC()
	case 0x38:
		vm.iSEC()
	case 0x58:
		vm.iCLI()
	case 0x78:
		vm.iSEI()
	case 0x98:
		vm.iTYA()
	case 0xB8:
		vm.iCLV()
	case 0xD8:
		vm.iCLD()
	case 0xF8:
		vm.iSED()

	case 0x8A:
		vm.iTXA()
	case 0x9A:
		vm.iTXS()
	case 0xA8:
		vm.iTAY()
	case 0xAA:
		vm.iTAX()
	case 0xBA:
		vm.iTSX()
	case 0xC8:
		vm.iINY()
	case 0xCA:
		vm.iDEX()
	case 0x88:
		vm.iDEY()
	case 0xE8:
		vm.iINX()
	case 0xEA:
		vm.iNOP()

	case 0x10:
		vm.iBPL()
	case 0x30:
		vm.iBMI()
	case 0x50:
		vm.iBVC()
	case 0x70:
		vm.iBVS()
	case 0x90:
		vm.iBCC()
	case 0xB0:
		vm.iBCS()
	case 0xD0:
		vm.iBNE()
	case 0xF0:
		vm.iBEQ()

	// cc=01 ALU family, indexed by a (ORA,AND,EOR,ADC,STA,LDA,CMP,SBC).
	case 0x01, 0x05, 0x09, 0x0D, 0x11, 0x15, 0x19, 0x1D:
		vm.iORA(mode)
	case 0x21, 0x25, 0x29, 0x2D, 0x31, 0x35, 0x39, 0x3D:
		vm.iAND(mode)
	case 0x41, 0x45, 0x49, 0x4D, 0x51, 0x55, 0x59, 0x5D:
		vm.iEOR(mode)
	case 0x61, 0x65, 0x69, 0x6D, 0x71, 0x75, 0x79, 0x7D:
		vm.iADC(mode)
	case 0x81, 0x85, 0x8D, 0x91, 0x95, 0x99, 0x9D:
		return vm.iSTA(op, mode)
	case 0xA1, 0xA5, 0xA9, 0xAD, 0xB1, 0xB5, 0xB9, 0xBD:
		vm.iLDA(mode)
	case 0xC1, 0xC5, 0xC9, 0xCD, 0xD1, 0xD5, 0xD9, 0xDD:
		vm.iCMP(mode)
	case 0xE1, 0xE5, 0xE9, 0xED, 0xF1, 0xF5, 0xF9, 0xFD:
		vm.iSBC(mode)

	// cc=10 shift/store-X/load-X/inc/dec family, indexed by a.
	case 0x06, 0x0A, 0x0E, 0x16, 0x1E:
		vm.iASL(mode)
	case 0x26, 0x2A, 0x2E, 0x36, 0x3E:
		vm.iROL(mode)
	case 0x46, 0x4A, 0x4E, 0x56, 0x5E:
		vm.iLSR(mode)
	case 0x66, 0x6A, 0x6E, 0x76, 0x7E:
		vm.iROR(mode)
	case 0x86, 0x8E, 0x96:
		return vm.iSTX(op, mode)
	case 0xA2, 0xA6, 0xAE, 0xB6, 0xBE:
		vm.iLDX(mode)
	case 0xC6, 0xCE, 0xD6, 0xDE:
		vm.iDEC(mode)
	case 0xE6, 0xEE, 0xF6, 0xFE:
		vm.iINC(mode)

	// cc=00 group: BIT, JMP(abs), JMP(ind), STY, LDY, CPY, CPX.
	case 0x24, 0x2C:
		vm.iBIT(mode)
	case 0x4C:
		vm.iJMP(Absolute)
	case 0x6C:
		vm.iJMP(Indirect)
	case 0x84, 0x8C, 0x94:
		return vm.iSTY(op, mode)
	case 0xA0, 0xA4, 0xAC, 0xB4, 0xBC:
		vm.iLDY(mode)
	case 0xC0, 0xC4, 0xCC:
		vm.iCPY(mode)
	case 0xE0, 0xE4, 0xEC:
		vm.iCPX(mode)

	default:
		// The ghost slots the decoder admits (0x02, the 0x12/0x32/...
		// column and 0x9E) land here and behave as NOP.
		vm.iNOP()
	}
	return nil
}
