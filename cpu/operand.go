package cpu

// effectiveAddress resolves the operand address for mode, reading however
// many bytes that mode consumes from the instruction stream and advancing
// PC past them. Accumulator, Implied and Relative have no memory address
// and return 0; callers for those modes use the register or the raw
// displacement byte directly instead.
//
// Page-boundary carry is ignored for the two indexed zero-page modes (the
// addition wraps within the zero page, matching real 6502 behavior); it is
// honored (ordinary 16 bit wraparound) for the indexed absolute and
// indirect-indexed modes.
func (vm *VM) effectiveAddress(mode Mode) uint16 {
	p := vm.Reg.PC
	switch mode {
	case Immediate:
		vm.Reg.PC = p + 1
		return p
	case ZeroPage:
		zp := vm.Mem.Read(p)
		vm.Reg.PC = p + 1
		return uint16(zp)
	case ZeroPageX:
		zp := vm.Mem.Read(p)
		vm.Reg.PC = p + 1
		return uint16(zp + vm.Reg.X)
	case ZeroPageY:
		zp := vm.Mem.Read(p)
		vm.Reg.PC = p + 1
		return uint16(zp + vm.Reg.Y)
	case Absolute:
		lo := vm.Mem.Read(p)
		hi := vm.Mem.Read(p + 1)
		vm.Reg.PC = p + 2
		return uint16(lo) | uint16(hi)<<8
	case AbsoluteX:
		lo := vm.Mem.Read(p)
		hi := vm.Mem.Read(p + 1)
		vm.Reg.PC = p + 2
		return (uint16(lo) | uint16(hi)<<8) + uint16(vm.Reg.X)
	case AbsoluteY:
		lo := vm.Mem.Read(p)
		hi := vm.Mem.Read(p + 1)
		vm.Reg.PC = p + 2
		return (uint16(lo) | uint16(hi)<<8) + uint16(vm.Reg.Y)
	case Indirect:
		// Only JMP uses this mode. The "address" here is the pointer
		// itself; JMP dereferences it (with its own page-wrap choice).
		lo := vm.Mem.Read(p)
		hi := vm.Mem.Read(p + 1)
		vm.Reg.PC = p + 2
		return uint16(lo) | uint16(hi)<<8
	case IndirectX:
		zp := vm.Mem.Read(p)
		vm.Reg.PC = p + 1
		ptr := zp + vm.Reg.X
		lo := vm.Mem.Read(uint16(ptr))
		hi := vm.Mem.Read(uint16(ptr + 1))
		return uint16(lo) | uint16(hi)<<8
	case IndirectY:
		zp := vm.Mem.Read(p)
		vm.Reg.PC = p + 1
		lo := vm.Mem.Read(uint16(zp))
		hi := vm.Mem.Read(uint16(zp + 1))
		base := uint16(lo) | uint16(hi)<<8
		return base + uint16(vm.Reg.Y)
	default:
		return 0
	}
}

// fetchValue resolves the 8 bit operand value for mode, advancing PC as
// effectiveAddress does for every mode except Accumulator and Implied.
func (vm *VM) fetchValue(mode Mode) uint8 {
	switch mode {
	case Accumulator:
		return vm.Reg.AC
	case Implied:
		return 0
	default:
		return vm.Mem.Read(vm.effectiveAddress(mode))
	}
}

// fetchDisplacement reads the signed 8 bit branch displacement for
// Relative mode and advances PC past it.
func (vm *VM) fetchDisplacement() int8 {
	d := int8(vm.Mem.Read(vm.Reg.PC))
	vm.Reg.PC++
	return d
}
