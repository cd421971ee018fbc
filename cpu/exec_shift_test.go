package cpu

import "testing"

func TestApplyShiftASL(t *testing.T) {
	// ASL.B #1, value 0x40: shifts into the sign bit, so V must set
	// because the sign changed partway through the shift.
	result, carry, extend, overflow := (&CPU{}).applyShift(OPASL, 0x40, SizeByte, 1, false)
	if result != 0x80 {
		t.Fatalf("result = %#02x, want 0x80", result)
	}
	if carry || extend {
		t.Fatalf("carry=%v extend=%v, want both false (no bit shifted out)", carry, extend)
	}
	if !overflow {
		t.Fatalf("expected overflow when the sign bit changes under ASL")
	}
}

func TestApplyShiftLSRCarryOut(t *testing.T) {
	result, carry, extend, _ := (&CPU{}).applyShift(OPLSR, 0x01, SizeByte, 1, false)
	if result != 0 {
		t.Fatalf("result = %#02x, want 0", result)
	}
	if !carry || !extend {
		t.Fatalf("carry=%v extend=%v, want both true (bit 0 shifted out)", carry, extend)
	}
}

func TestApplyShiftZeroCountLeavesFlagsAlone(t *testing.T) {
	result, carry, extend, overflow := (&CPU{}).applyShift(OPLSL, 0xFF, SizeByte, 0, true)
	if result != 0xFF {
		t.Fatalf("result = %#02x, want unchanged 0xff", result)
	}
	if carry || overflow {
		t.Fatalf("a zero-count shift must not touch C/V")
	}
	if !extend {
		t.Fatalf("a zero-count shift must leave X exactly as it was (true)")
	}
}

func TestApplyShiftRolWraps(t *testing.T) {
	result, carry, _, _ := (&CPU{}).applyShift(OPROL, 0x80, SizeByte, 1, false)
	if result != 0x01 {
		t.Fatalf("result = %#02x, want 0x01 (bit 7 wrapped to bit 0)", result)
	}
	if !carry {
		t.Fatalf("expected carry out of the rotated bit")
	}
}

func TestApplyShiftRoxlUsesIncomingExtend(t *testing.T) {
	// ROXL.B by 1 with X=1 rotates the extend bit in at position 0.
	result, _, extend, _ := (&CPU{}).applyShift(OPROXL, 0x00, SizeByte, 1, true)
	if result != 0x01 {
		t.Fatalf("result = %#02x, want 0x01 (incoming X rotated into bit 0)", result)
	}
	if extend {
		t.Fatalf("expected X to become the bit shifted out (0), got true")
	}
}

func TestExecShiftRegisterForm(t *testing.T) {
	c := &CPU{variant: MC68000{}}
	c.d[0] = 0x00000001
	ops := Operands{Kind: KindShiftRotateReg, OpBase: OPASL, Reg: 0, Size: SizeByte, Data: 3}
	c.execShift(ops)
	if got := c.d[0] & 0xFF; got != 0x08 {
		t.Fatalf("D0 low byte = %#02x, want 0x08 (1 << 3)", got)
	}
	if c.sr&SRZ != 0 {
		t.Fatalf("result is nonzero, Z must be clear")
	}
}
