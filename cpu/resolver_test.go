package cpu

import "testing"

func TestResolveEAPostIncByteThroughA7MovesByTwo(t *testing.T) {
	c := &CPU{}
	c.a[7] = 0x1000
	c.resolveEA(EAField{Mode: uint8(ModeAddrPostInc), Reg: 7}, SizeByte)
	if c.a[7] != 0x1002 {
		t.Fatalf("A7 = %#x after byte (A7)+, want 0x1002 (word-aligned bump)", c.a[7])
	}
}

func TestResolveEAPostIncByteOtherRegMovesByOne(t *testing.T) {
	c := &CPU{}
	c.a[3] = 0x2000
	c.resolveEA(EAField{Mode: uint8(ModeAddrPostInc), Reg: 3}, SizeByte)
	if c.a[3] != 0x2001 {
		t.Fatalf("A3 = %#x after byte (A3)+, want 0x2001", c.a[3])
	}
}

func TestResolveEAPreDecLongMovesByFour(t *testing.T) {
	c := &CPU{}
	c.a[2] = 0x3000
	e := c.resolveEA(EAField{Mode: uint8(ModeAddrPreDec), Reg: 2}, SizeLong)
	if c.a[2] != 0x2FFC {
		t.Fatalf("A2 = %#x after -(A2) long, want 0x2ffc", c.a[2])
	}
	if e.addr != 0x2FFC {
		t.Fatalf("resolved address = %#x, want the already-decremented 0x2ffc", e.addr)
	}
}

func TestIndexedDisplacementSignExtendsWordIndexedges(t *testing.T) {
	c := &CPU{}
	c.d[1] = 0xFFFFFFF0 // -16 as a word-sized index
	// ext word: index reg D1, word-sized (bit 0x0800 clear), disp8 = 4.
	ext := uint16(1)<<12 | 0x04
	got := c.indexedDisplacement(ext)
	idx := int32(-16)
	want := uint32(idx + 4)
	if got != want {
		t.Fatalf("indexedDisplacement = %#x, want %#x (sign-extended index + disp)", got, want)
	}
}

func TestIndexedDisplacementLongIndexNotSignExtended(t *testing.T) {
	c := &CPU{}
	c.d[2] = 0x0000FFF0
	// long-sized index (bit 0x0800 set), index reg D2, disp8 = 0.
	ext := uint16(2)<<12 | 0x0800
	got := c.indexedDisplacement(ext)
	if got != 0x0000FFF0 {
		t.Fatalf("indexedDisplacement = %#x, want 0xfff0 unchanged (long index, no sign extension)", got)
	}
}

func TestEAReadWriteRegisterDirect(t *testing.T) {
	c := &CPU{}
	c.d[4] = 0xAABBCCDD
	e := c.resolveEA(EAField{Mode: uint8(ModeData), Reg: 4}, SizeByte)
	v, ok := e.read(EAField{Mode: uint8(ModeData), Reg: 4})
	if !ok || v != 0xDD {
		t.Fatalf("byte read of D4 = %#x, ok=%v; want 0xdd, true", v, ok)
	}
	e.write(0x11)
	if c.d[4] != 0xAABBCC11 {
		t.Fatalf("D4 after byte write = %#x, want 0xaabbcc11 (only the low byte changes)", c.d[4])
	}
}

func TestEAWriteAddressRegisterSignExtendsWord(t *testing.T) {
	c := &CPU{}
	e := c.resolveEA(EAField{Mode: uint8(ModeAddr), Reg: 5}, SizeWord)
	e.write(0xFFFE) // -2 as a word
	if c.a[5] != 0xFFFFFFFE {
		t.Fatalf("A5 after word write 0xfffe = %#x, want 0xfffffffe (sign-extended)", c.a[5])
	}
}
