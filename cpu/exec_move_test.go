package cpu_test

import "testing"

// TestExecMovemPreDecStoresAscendingOrder exercises the assembler-and-decoder
// round trip for MOVEM's predecrement register list: a hardware-correct
// -(An) encoding (bit0=A7,...,bit15=D0) must still land D0 at the lowest
// resulting address, D1 above it, and A0 above that, mirroring the register
// list's canonical D0..D7/A0..A7 order even though the store walks memory
// downward.
func TestExecMovemPreDecStoresAscendingOrder(t *testing.T) {
	// movem.l d0/d1/a0,-(a7): opcode 0x48E7, extension 0xC080 (A0 -> bit7,
	// D1 -> bit14, D0 -> bit15).
	c, ram := newTestCPU(t, 0x400, []byte{0x48, 0xE7, 0xC0, 0x80})

	r := c.Registers()
	r.D[0] = 0x11111111
	r.D[1] = 0x22222222
	r.A[0] = 0x33333333
	r.A[7] = 0x2000
	r.SSP = 0x2000 // in supervisor mode SetState loads A7 from SSP
	c.SetState(r)

	c.Step()

	if got := c.Registers().A[7]; got != 0x1FF4 {
		t.Fatalf("A7 after MOVEM = %#x, want 0x1ff4 (three longs pushed)", got)
	}

	d0, _ := ram.ReadLong(0x1FF4)
	d1, _ := ram.ReadLong(0x1FF8)
	a0, _ := ram.ReadLong(0x1FFC)
	if d0 != 0x11111111 {
		t.Fatalf("D0 landed at %#x = %#x, want 0x11111111", uint32(0x1FF4), d0)
	}
	if d1 != 0x22222222 {
		t.Fatalf("D1 landed at %#x = %#x, want 0x22222222", uint32(0x1FF8), d1)
	}
	if a0 != 0x33333333 {
		t.Fatalf("A0 landed at %#x = %#x, want 0x33333333", uint32(0x1FFC), a0)
	}
}
