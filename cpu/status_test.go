package cpu

import "testing"

var allFlags = []Flag{
	FlagCarry, FlagZero, FlagInterrupt, FlagDecimal,
	FlagBreak, FlagOverflow, FlagNegative,
}

func TestSetFlagThenGetFlag(t *testing.T) {
	for _, f := range allFlags {
		for sr := 0; sr <= 0xFF; sr++ {
			vm := newTestVM()
			vm.Reg.SR = uint8(sr)
			vm.SetFlag(f, true)
			if !vm.GetFlag(f) {
				t.Fatalf("SetFlag(0x%.2X, true) from SR=0x%.2X: GetFlag = false", uint8(f), sr)
			}
			vm.SetFlag(f, false)
			if vm.GetFlag(f) {
				t.Fatalf("SetFlag(0x%.2X, false) from SR=0x%.2X: GetFlag = true", uint8(f), sr)
			}
		}
	}
}

func TestFlipFlagIsSelfInverse(t *testing.T) {
	for _, f := range allFlags {
		for sr := 0; sr <= 0xFF; sr++ {
			vm := newTestVM()
			vm.Reg.SR = uint8(sr)
			before := vm.GetFlag(f)
			vm.FlipFlag(f)
			if vm.GetFlag(f) == before {
				t.Fatalf("FlipFlag(0x%.2X) from SR=0x%.2X did not toggle", uint8(f), sr)
			}
			vm.FlipFlag(f)
			if vm.GetFlag(f) != before {
				t.Fatalf("FlipFlag(0x%.2X) twice from SR=0x%.2X did not restore", uint8(f), sr)
			}
			if vm.Reg.SR != uint8(sr) {
				t.Fatalf("double FlipFlag(0x%.2X) changed SR: 0x%.2X -> 0x%.2X", uint8(f), sr, vm.Reg.SR)
			}
		}
	}
}

func TestResetFlagsClearsSR(t *testing.T) {
	vm := newTestVM()
	vm.Reg.SR = 0xFF
	vm.ResetFlags()
	if vm.Reg.SR != 0x00 {
		t.Errorf("SR after ResetFlags() = 0x%.2X, want 0x00", vm.Reg.SR)
	}
}
