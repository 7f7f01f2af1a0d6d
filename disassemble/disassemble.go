// Package disassemble prints the single documented 6502 instruction at a
// given address. Unlike a full debugger disassembler it has nothing to say
// about the undocumented opcode space: those slots are dispatched as NOP by
// cpu.VM.Step and are printed here as "NOP" too, so the trace matches what
// actually ran.
package disassemble

import (
	"fmt"

	"github.com/kjellberg/mos6502/cpu"
)

// Reader is the minimal memory surface Step needs. *memory.Memory and
// *cpu.VM both implement it.
type Reader interface {
	Read(addr uint16) uint8
}

// mnemonics maps every documented opcode to its instruction name. Opcodes
// absent from this table print as undocumented NOPs, whether or not the
// decoder assigns them an addressing mode.
var mnemonics = map[uint8]string{
	0x00: "BRK", 0x20: "JSR", 0x40: "RTI", 0x60: "RTS",
	0x08: "PHP", 0x28: "PLP", 0x48: "PHA", 0x68: "PLA",
	0x18: "CLC", 0x38: "SEC", 0x58: "CLI", 0x78: "SEI",
	0x98: "TYA", 0xB8: "CLV", 0xD8: "CLD", 0xF8: "SED",
	0x8A: "TXA", 0x9A: "TXS", 0xA8: "TAY", 0xAA: "TAX", 0xBA: "TSX",
	0xC8: "INY", 0xCA: "DEX", 0x88: "DEY", 0xE8: "INX", 0xEA: "NOP",
	0x10: "BPL", 0x30: "BMI", 0x50: "BVC", 0x70: "BVS",
	0x90: "BCC", 0xB0: "BCS", 0xD0: "BNE", 0xF0: "BEQ",

	0x01: "ORA", 0x05: "ORA", 0x09: "ORA", 0x0D: "ORA", 0x11: "ORA", 0x15: "ORA", 0x19: "ORA", 0x1D: "ORA",
	0x21: "AND", 0x25: "AND", 0x29: "AND", 0x2D: "AND", 0x31: "AND", 0x35: "AND", 0x39: "AND", 0x3D: "AND",
	0x41: "EOR", 0x45: "EOR", 0x49: "EOR", 0x4D: "EOR", 0x51: "EOR", 0x55: "EOR", 0x59: "EOR", 0x5D: "EOR",
	0x61: "ADC", 0x65: "ADC", 0x69: "ADC", 0x6D: "ADC", 0x71: "ADC", 0x75: "ADC", 0x79: "ADC", 0x7D: "ADC",
	0x81: "STA", 0x85: "STA", 0x8D: "STA", 0x91: "STA", 0x95: "STA", 0x99: "STA", 0x9D: "STA",
	0xA1: "LDA", 0xA5: "LDA", 0xA9: "LDA", 0xAD: "LDA", 0xB1: "LDA", 0xB5: "LDA", 0xB9: "LDA", 0xBD: "LDA",
	0xC1: "CMP", 0xC5: "CMP", 0xC9: "CMP", 0xCD: "CMP", 0xD1: "CMP", 0xD5: "CMP", 0xD9: "CMP", 0xDD: "CMP",
	0xE1: "SBC", 0xE5: "SBC", 0xE9: "SBC", 0xED: "SBC", 0xF1: "SBC", 0xF5: "SBC", 0xF9: "SBC", 0xFD: "SBC",

	0x06: "ASL", 0x0A: "ASL", 0x0E: "ASL", 0x16: "ASL", 0x1E: "ASL",
	0x26: "ROL", 0x2A: "ROL", 0x2E: "ROL", 0x36: "ROL", 0x3E: "ROL",
	0x46: "LSR", 0x4A: "LSR", 0x4E: "LSR", 0x56: "LSR", 0x5E: "LSR",
	0x66: "ROR", 0x6A: "ROR", 0x6E: "ROR", 0x76: "ROR", 0x7E: "ROR",
	0x86: "STX", 0x8E: "STX", 0x96: "STX",
	0xA2: "LDX", 0xA6: "LDX", 0xAE: "LDX", 0xB6: "LDX", 0xBE: "LDX",
	0xC6: "DEC", 0xCE: "DEC", 0xD6: "DEC", 0xDE: "DEC",
	0xE6: "INC", 0xEE: "INC", 0xF6: "INC", 0xFE: "INC",

	0x24: "BIT", 0x2C: "BIT", 0x4C: "JMP", 0x6C: "JMP",
	0x84: "STY", 0x8C: "STY", 0x94: "STY",
	0xA0: "LDY", 0xA4: "LDY", 0xAC: "LDY", 0xB4: "LDY", 0xBC: "LDY",
	0xC0: "CPY", 0xC4: "CPY", 0xCC: "CPY",
	0xE0: "CPX", 0xE4: "CPX", 0xEC: "CPX",
}

// Step disassembles the instruction at pc, returning the printable line and
// how many bytes forward the next instruction starts. It always reads the
// two bytes after pc, whatever the mode, so the caller must ensure those
// addresses are valid memory.
func Step(pc uint16, r Reader) (string, int) {
	op := r.Read(pc)
	b1 := r.Read(pc + 1)
	b2 := r.Read(pc + 2)

	name, known := mnemonics[op]
	if !known {
		return fmt.Sprintf("%.4X %.2X       NOP (undocumented)", pc, op), 1
	}
	if op == 0xEA {
		return fmt.Sprintf("%.4X %.2X       NOP", pc, op), 1
	}

	mode, err := cpu.DecodeMode(op)
	if err != nil {
		return fmt.Sprintf("%.4X %.2X       NOP (undocumented)", pc, op), 1
	}

	switch mode {
	case cpu.Implied:
		return fmt.Sprintf("%.4X %.2X       %s", pc, op, name), 1
	case cpu.Accumulator:
		return fmt.Sprintf("%.4X %.2X       %s A", pc, op, name), 1
	case cpu.Immediate:
		return fmt.Sprintf("%.4X %.2X %.2X    %s #%.2X", pc, op, b1, name, b1), 2
	case cpu.ZeroPage:
		return fmt.Sprintf("%.4X %.2X %.2X    %s %.2X", pc, op, b1, name, b1), 2
	case cpu.ZeroPageX:
		return fmt.Sprintf("%.4X %.2X %.2X    %s %.2X,X", pc, op, b1, name, b1), 2
	case cpu.ZeroPageY:
		return fmt.Sprintf("%.4X %.2X %.2X    %s %.2X,Y", pc, op, b1, name, b1), 2
	case cpu.IndirectX:
		return fmt.Sprintf("%.4X %.2X %.2X    %s (%.2X,X)", pc, op, b1, name, b1), 2
	case cpu.IndirectY:
		return fmt.Sprintf("%.4X %.2X %.2X    %s (%.2X),Y", pc, op, b1, name, b1), 2
	case cpu.Relative:
		target := uint16(int32(pc) + 2 + int32(int8(b1)))
		return fmt.Sprintf("%.4X %.2X %.2X    %s %.2X (%.4X)", pc, op, b1, name, b1, target), 2
	case cpu.Absolute:
		return fmt.Sprintf("%.4X %.2X %.2X %.2X %s %.2X%.2X", pc, op, b1, b2, name, b2, b1), 3
	case cpu.AbsoluteX:
		return fmt.Sprintf("%.4X %.2X %.2X %.2X %s %.2X%.2X,X", pc, op, b1, b2, name, b2, b1), 3
	case cpu.AbsoluteY:
		return fmt.Sprintf("%.4X %.2X %.2X %.2X %s %.2X%.2X,Y", pc, op, b1, b2, name, b2, b1), 3
	case cpu.Indirect:
		return fmt.Sprintf("%.4X %.2X %.2X %.2X %s (%.2X%.2X)", pc, op, b1, b2, name, b2, b1), 3
	default:
		return fmt.Sprintf("%.4X %.2X       %s ?", pc, op, name), 1
	}
}
