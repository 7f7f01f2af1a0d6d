package disassemble

import (
	"strings"
	"testing"

	"github.com/kjellberg/mos6502/memory"
)

func TestStepImmediate(t *testing.T) {
	m := memory.New()
	m.Write(0x0200, 0xA9)
	m.Write(0x0201, 0x42)
	line, count := Step(0x0200, m)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if !strings.Contains(line, "LDA") || !strings.Contains(line, "#42") {
		t.Errorf("Step() = %q, want LDA immediate of 42", line)
	}
}

func TestStepAbsolute(t *testing.T) {
	m := memory.New()
	m.Write(0x0200, 0x4C)
	m.Write(0x0201, 0x00)
	m.Write(0x0202, 0x06)
	line, count := Step(0x0200, m)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if !strings.Contains(line, "JMP") || !strings.Contains(line, "0600") {
		t.Errorf("Step() = %q, want JMP 0600", line)
	}
}

func TestStepImplied(t *testing.T) {
	m := memory.New()
	m.Write(0x0200, 0xEA)
	line, count := Step(0x0200, m)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if !strings.Contains(line, "NOP") {
		t.Errorf("Step() = %q, want NOP", line)
	}
}

func TestStepUndocumentedOpcodeReportsAsNOP(t *testing.T) {
	m := memory.New()
	m.Write(0x0200, 0x02) // undocumented opcode, absent from the mnemonic table
	line, count := Step(0x0200, m)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if !strings.Contains(line, "NOP") {
		t.Errorf("Step() = %q, want undocumented NOP", line)
	}
}

func TestStepRelativeComputesTarget(t *testing.T) {
	m := memory.New()
	m.Write(0x0200, 0xF0) // BEQ
	m.Write(0x0201, 0x05)
	line, count := Step(0x0200, m)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if !strings.Contains(line, "0207") {
		t.Errorf("Step() = %q, want branch target 0207", line)
	}
}
