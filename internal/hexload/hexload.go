// Package hexload decodes hex-encoded program text into bytes and loads it
// into a cpu.VM, the way a small demo CLI wants to accept "-program" input
// on the command line without committing the VM itself to a string format.
package hexload

import (
	"encoding/hex"
	"strings"

	"github.com/kjellberg/mos6502/cpu"
)

// Decode turns a hex string (whitespace tolerated between bytes, "0x"
// prefix tolerated, case insensitive) into bytes. It returns
// cpu.BadHexProgramError without touching any VM state if the input is
// malformed.
func Decode(input string) ([]uint8, error) {
	clean := strings.ToLower(input)
	clean = strings.TrimPrefix(clean, "0x")
	clean = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ',', '_':
			return -1
		default:
			return r
		}
	}, clean)

	if len(clean)%2 != 0 {
		return nil, cpu.BadHexProgramError{Input: input, Reason: "odd number of hex digits"}
	}

	bytes, err := hex.DecodeString(clean)
	if err != nil {
		return nil, cpu.BadHexProgramError{Input: input, Reason: err.Error()}
	}
	return bytes, nil
}

// Insert decodes input and writes it at heap_base+offset, leaving PC
// untouched. It is the hex-string counterpart of VM.InsertProgram.
func Insert(vm *cpu.VM, offset uint16, input string) error {
	bytes, err := Decode(input)
	if err != nil {
		return err
	}
	return vm.InsertProgram(offset, bytes)
}

// Set decodes input, writes it at heap_base+offset and sets PC to offset.
// It is the hex-string counterpart of VM.SetProgram, including that
// method's raw-offset PC quirk.
func Set(vm *cpu.VM, offset uint16, input string) error {
	bytes, err := Decode(input)
	if err != nil {
		return err
	}
	return vm.SetProgram(offset, bytes)
}
