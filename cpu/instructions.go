package cpu

import "github.com/kjellberg/mos6502/memory"

// This file implements the 56 documented 6502 instructions. Each operates
// on a pre-decoded Mode (stored on the VM by the dispatcher in cpu.go)
// which callers have already validated is legal for that opcode slot via
// decodeMode.

// --- Arithmetic -------------------------------------------------------

// adcCore is shared by ADC and SBC: SBC(v) is ADC(^v), the standard 6502
// identity for "subtract with borrow" expressed as "add with carry".
func (vm *VM) adcCore(val uint8) {
	acc := vm.Reg.AC
	carryIn := uint16(0)
	if vm.GetFlag(FlagCarry) {
		carryIn = 1
	}
	sum := uint16(acc) + uint16(val) + carryIn
	result := uint8(sum)
	vm.SetFlag(FlagCarry, sum >= 0x100)
	vm.overflowCheck(acc, val, result)
	vm.setZN(result)
	vm.Reg.AC = result
}

func (vm *VM) overflowCheck(reg, arg, res uint8) {
	vm.SetFlag(FlagOverflow, (reg^res)&(arg^res)&0x80 != 0)
}

func (vm *VM) iADC(mode Mode) { vm.adcCore(vm.fetchValue(mode)) }
func (vm *VM) iSBC(mode Mode) { vm.adcCore(^vm.fetchValue(mode)) }

// --- Bitwise ------------------------------------------------------------

func (vm *VM) iAND(mode Mode) {
	vm.Reg.AC &= vm.fetchValue(mode)
	vm.setZN(vm.Reg.AC)
}

func (vm *VM) iORA(mode Mode) {
	vm.Reg.AC |= vm.fetchValue(mode)
	vm.setZN(vm.Reg.AC)
}

func (vm *VM) iEOR(mode Mode) {
	vm.Reg.AC ^= vm.fetchValue(mode)
	vm.setZN(vm.Reg.AC)
}

func (vm *VM) iBIT(mode Mode) {
	val := vm.fetchValue(mode)
	vm.SetFlag(FlagZero, vm.Reg.AC&val == 0)
	vm.SetFlag(FlagNegative, val&0x80 != 0)
	vm.SetFlag(FlagOverflow, val&0x40 != 0)
}

// --- Shift/rotate (Accumulator or memory cell) ---------------------------

// rmw applies f to either AC (Accumulator mode) or the memory cell
// addressed by mode, writing the result back in place. This collapses the
// five ASL/LSR/ROL/ROR/INC/DEC match arms the addressing modes would
// otherwise repeat into a single dispatch.
func (vm *VM) rmw(mode Mode, f func(uint8) uint8) {
	if mode == Accumulator {
		vm.Reg.AC = f(vm.Reg.AC)
		return
	}
	addr := vm.effectiveAddress(mode)
	vm.Mem.Write(addr, f(vm.Mem.Read(addr)))
}

func (vm *VM) iASL(mode Mode) {
	vm.rmw(mode, func(v uint8) uint8 {
		vm.SetFlag(FlagCarry, v&0x80 != 0)
		r := v << 1
		vm.setZN(r)
		return r
	})
}

func (vm *VM) iLSR(mode Mode) {
	vm.rmw(mode, func(v uint8) uint8 {
		vm.SetFlag(FlagCarry, v&0x01 != 0)
		r := v >> 1
		vm.setZN(r)
		return r
	})
}

func (vm *VM) iROL(mode Mode) {
	vm.rmw(mode, func(v uint8) uint8 {
		carryIn := uint8(0)
		if vm.GetFlag(FlagCarry) {
			carryIn = 1
		}
		vm.SetFlag(FlagCarry, v&0x80 != 0)
		r := (v << 1) | carryIn
		vm.setZN(r)
		return r
	})
}

func (vm *VM) iROR(mode Mode) {
	vm.rmw(mode, func(v uint8) uint8 {
		carryIn := uint8(0)
		if vm.GetFlag(FlagCarry) {
			carryIn = 0x80
		}
		vm.SetFlag(FlagCarry, v&0x01 != 0)
		r := (v >> 1) | carryIn
		vm.setZN(r)
		return r
	})
}

func (vm *VM) iINC(mode Mode) {
	vm.rmw(mode, func(v uint8) uint8 {
		r := v + 1
		vm.setZN(r)
		return r
	})
}

func (vm *VM) iDEC(mode Mode) {
	vm.rmw(mode, func(v uint8) uint8 {
		r := v - 1
		vm.setZN(r)
		return r
	})
}

// --- Register increment/decrement ---------------------------------------

func (vm *VM) iINX() { vm.Reg.X++; vm.setZN(vm.Reg.X) }
func (vm *VM) iINY() { vm.Reg.Y++; vm.setZN(vm.Reg.Y) }
func (vm *VM) iDEX() { vm.Reg.X--; vm.setZN(vm.Reg.X) }
func (vm *VM) iDEY() { vm.Reg.Y--; vm.setZN(vm.Reg.Y) }

// --- Compare --------------------------------------------------------------

func (vm *VM) compare(reg, val uint8) {
	vm.SetFlag(FlagCarry, reg >= val)
	vm.SetFlag(FlagZero, reg == val)
	vm.SetFlag(FlagNegative, (reg-val)&0x80 != 0)
}

func (vm *VM) iCMP(mode Mode) { vm.compare(vm.Reg.AC, vm.fetchValue(mode)) }
func (vm *VM) iCPX(mode Mode) { vm.compare(vm.Reg.X, vm.fetchValue(mode)) }
func (vm *VM) iCPY(mode Mode) { vm.compare(vm.Reg.Y, vm.fetchValue(mode)) }

// --- Branches -------------------------------------------------------------

// branch reads the relative displacement (always, whether or not the
// branch is taken) and, if cond holds, retargets PC and charges the extra
// cycles: +1 for the taken branch, +1 more if it crosses a page.
func (vm *VM) branch(cond bool) {
	disp := vm.fetchDisplacement()
	if !cond {
		return
	}
	origin := vm.Reg.PC
	target := uint16(int32(origin) + int32(disp))
	vm.Cycles++
	if target&0xFF00 != origin&0xFF00 {
		vm.Cycles++
	}
	vm.Reg.PC = target
}

func (vm *VM) iBPL() { vm.branch(!vm.GetFlag(FlagNegative)) }
func (vm *VM) iBMI() { vm.branch(vm.GetFlag(FlagNegative)) }
func (vm *VM) iBVC() { vm.branch(!vm.GetFlag(FlagOverflow)) }
func (vm *VM) iBVS() { vm.branch(vm.GetFlag(FlagOverflow)) }
func (vm *VM) iBCC() { vm.branch(!vm.GetFlag(FlagCarry)) }
func (vm *VM) iBCS() { vm.branch(vm.GetFlag(FlagCarry)) }
func (vm *VM) iBNE() { vm.branch(!vm.GetFlag(FlagZero)) }
func (vm *VM) iBEQ() { vm.branch(vm.GetFlag(FlagZero)) }

// --- Jumps, calls and returns ----------------------------------------------

// iJMP jumps to the operand address. For Indirect, the high byte of the
// target is read from ptr+1 with ordinary 16 bit carry; the 6502's
// page-wrap bug on that fetch is not reproduced.
func (vm *VM) iJMP(mode Mode) {
	if mode == Indirect {
		ptr := vm.effectiveAddress(Indirect)
		lo := vm.Mem.Read(ptr)
		hi := vm.Mem.Read(ptr + 1)
		vm.Reg.PC = uint16(lo) | uint16(hi)<<8
		return
	}
	vm.Reg.PC = vm.effectiveAddress(Absolute)
}

func (vm *VM) iJSR() {
	entry := vm.Reg.PC
	target := vm.effectiveAddress(Absolute)
	ret := entry + 1
	vm.push(uint8(ret >> 8))
	vm.push(uint8(ret & 0xFF))
	vm.Reg.PC = target
}

func (vm *VM) iRTS() {
	lo := vm.pop()
	hi := vm.pop()
	vm.Reg.PC = (uint16(hi)<<8 | uint16(lo)) + 1
}

func (vm *VM) iBRK() {
	vm.Reg.PC++
	vm.push(uint8(vm.Reg.PC >> 8))
	vm.push(uint8(vm.Reg.PC & 0xFF))
	vm.push(vm.Reg.SR | uint8(FlagBreak))
	vm.SetFlag(FlagInterrupt, true)
	vm.Reg.PC = vm.Mem.ReadWord(memory.IRQVectorLow)
}

func (vm *VM) iRTI() {
	sr := vm.pop()
	sr &^= uint8(FlagBreak) | uint8(FlagUnused)
	vm.Reg.SR = sr
	lo := vm.pop()
	hi := vm.pop()
	vm.Reg.PC = uint16(hi)<<8 | uint16(lo)
}

// --- Flag instructions ------------------------------------------------------

func (vm *VM) iCLC() { vm.SetFlag(FlagCarry, false) }
func (vm *VM) iSEC() { vm.SetFlag(FlagCarry, true) }
func (vm *VM) iCLD() { vm.SetFlag(FlagDecimal, false) }
func (vm *VM) iSED() { vm.SetFlag(FlagDecimal, true) }
func (vm *VM) iCLI() { vm.SetFlag(FlagInterrupt, false) }
func (vm *VM) iSEI() { vm.SetFlag(FlagInterrupt, true) }
func (vm *VM) iCLV() { vm.SetFlag(FlagOverflow, false) }

// --- Register transfers ------------------------------------------------------

func (vm *VM) iTAX() { vm.Reg.X = vm.Reg.AC; vm.setZN(vm.Reg.X) }
func (vm *VM) iTAY() { vm.Reg.Y = vm.Reg.AC; vm.setZN(vm.Reg.Y) }
func (vm *VM) iTXA() { vm.Reg.AC = vm.Reg.X; vm.setZN(vm.Reg.AC) }
func (vm *VM) iTYA() { vm.Reg.AC = vm.Reg.Y; vm.setZN(vm.Reg.AC) }
func (vm *VM) iTSX() { vm.Reg.X = vm.Reg.SP; vm.setZN(vm.Reg.X) }
func (vm *VM) iTXS() { vm.Reg.SP = vm.Reg.X }

// --- Loads --------------------------------------------------------------------

func (vm *VM) iLDA(mode Mode) { vm.Reg.AC = vm.fetchValue(mode); vm.setZN(vm.Reg.AC) }
func (vm *VM) iLDX(mode Mode) { vm.Reg.X = vm.fetchValue(mode); vm.setZN(vm.Reg.X) }
func (vm *VM) iLDY(mode Mode) { vm.Reg.Y = vm.fetchValue(mode); vm.setZN(vm.Reg.Y) }

// --- Stores -------------------------------------------------------------------

// storeModeOK reports whether mode is one a store instruction can legally
// address: anything that resolves to a memory location other than via
// Immediate/Accumulator/Implied/Relative/Indirect.
func storeModeOK(mode Mode) bool {
	switch mode {
	case ZeroPage, ZeroPageX, ZeroPageY, Absolute, AbsoluteX, AbsoluteY, IndirectX, IndirectY:
		return true
	default:
		return false
	}
}

func (vm *VM) store(op uint8, mode Mode, v uint8) error {
	if !storeModeOK(mode) {
		return InvalidStoreModeError{Opcode: op, Mode: mode}
	}
	vm.Mem.Write(vm.effectiveAddress(mode), v)
	return nil
}

func (vm *VM) iSTA(op uint8, mode Mode) error { return vm.store(op, mode, vm.Reg.AC) }
func (vm *VM) iSTX(op uint8, mode Mode) error { return vm.store(op, mode, vm.Reg.X) }
func (vm *VM) iSTY(op uint8, mode Mode) error { return vm.store(op, mode, vm.Reg.Y) }

// --- Stack --------------------------------------------------------------------

func (vm *VM) iPHA() { vm.push(vm.Reg.AC) }
func (vm *VM) iPHP() { vm.push(vm.Reg.SR | uint8(FlagBreak)) }
func (vm *VM) iPLA() { vm.Reg.AC = vm.pop(); vm.setZN(vm.Reg.AC) }
func (vm *VM) iPLP() {
	vm.Reg.SR = vm.pop()
	vm.Reg.SR &^= uint8(FlagBreak) | uint8(FlagUnused)
}

// --- No-op ----------------------------------------------------------------------

func (vm *VM) iNOP() {}
