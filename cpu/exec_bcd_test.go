package cpu

import "testing"

func TestBcdAdd(t *testing.T) {
	cases := []struct {
		dst, src   uint8
		extend     bool
		result     uint8
		carry      bool
	}{
		{0x09, 0x01, false, 0x10, false},
		{0x99, 0x01, false, 0x00, true},
		{0x15, 0x26, false, 0x41, false},
		{0x09, 0x00, true, 0x10, false}, // extend carries an extra 1 in
		{0x99, 0x00, true, 0x00, true},
	}
	for _, c := range cases {
		result, carry := bcdAdd(c.dst, c.src, c.extend)
		if result != c.result || carry != c.carry {
			t.Errorf("bcdAdd(%#02x, %#02x, %v) = %#02x, %v; want %#02x, %v",
				c.dst, c.src, c.extend, result, carry, c.result, c.carry)
		}
	}
}

func TestBcdSub(t *testing.T) {
	cases := []struct {
		dst, src uint8
		extend   bool
		result   uint8
		borrow   bool
	}{
		{0x10, 0x01, false, 0x09, false},
		{0x00, 0x01, false, 0x99, true},
		{0x41, 0x26, false, 0x15, false},
		{0x10, 0x00, true, 0x09, false},
		{0x00, 0x00, true, 0x99, true},
	}
	for _, c := range cases {
		result, borrow := bcdSub(c.dst, c.src, c.extend)
		if result != c.result || borrow != c.borrow {
			t.Errorf("bcdSub(%#02x, %#02x, %v) = %#02x, %v; want %#02x, %v",
				c.dst, c.src, c.extend, result, borrow, c.result, c.borrow)
		}
	}
}

// TestAbcdRegisterForm exercises execAbcd end to end through the register
// (Dy,Dx) form, which touches no bus, so a zero-value CPU is sufficient.
func TestAbcdRegisterForm(t *testing.T) {
	c := &CPU{variant: MC68000{}}
	c.d[0] = 0x00000009
	c.d[1] = 0x00000001

	ops := Operands{OpBase: 0, Reg: 0, Reg2: 1}
	c.execAbcd(ops)

	if got := c.d[0] & 0xFF; got != 0x10 {
		t.Fatalf("D0 low byte = %#02x, want 0x10", got)
	}
	if c.sr&SRX != 0 || c.sr&SRC != 0 {
		t.Fatalf("expected X and C clear: 0x09+0x01 carries only between digits, SR=%#04x", c.sr)
	}
}
